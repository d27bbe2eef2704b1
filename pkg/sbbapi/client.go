package sbbapi

import (
	"context"
	"io"
	"net/url"

	"github.com/travigo/sbb/pkg/authenticator"
)

// Client is the entry point for library consumers. It holds no state between
// calls and is safe for concurrent use.
type Client struct {
	Endpoint  string
	Transport *Transport
}

func NewClient(endpoint string, userAgent string, signer authenticator.Signer) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{
		Endpoint:  endpoint,
		Transport: NewTransport(userAgent, signer),
	}
}

func (c *Client) get(ctx context.Context, requestURL *url.URL, signedPath string) ([]byte, error) {
	resp, err := c.Transport.Execute(ctx, requestURL, signedPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newHTTPError(resp.StatusCode, body)
	}

	return body, nil
}
