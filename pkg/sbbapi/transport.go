package sbbapi

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/travigo/sbb/pkg/authenticator"
)

// Transport sends signed requests over TLS connections that only trust the
// pinned root certificate.
type Transport struct {
	UserAgent string
	Signer    authenticator.Signer

	// roots replaces the pinned pool, only set by tests
	roots *x509.CertPool
}

func NewTransport(userAgent string, signer authenticator.Signer) *Transport {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Transport{
		UserAgent: userAgent,
		Signer:    signer,
	}
}

func (t *Transport) newClient() (*http.Client, error) {
	roots := t.roots
	if roots == nil {
		var err error
		roots, err = PinnedCertPool()
		if err != nil {
			return nil, err
		}
	}

	tp := http.DefaultTransport.(*http.Transport).Clone()
	tp.TLSClientConfig = &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}
	// The client is thrown away after one request
	tp.DisableKeepAlives = true

	return &http.Client{Transport: tp}, nil
}

func (t *Transport) setHeaders(header http.Header, signedPath string) {
	signingContext := authenticator.NewSigningContext(t.Signer, signedPath)

	header.Set("User-Agent", t.UserAgent)
	header.Set(HeaderUseCase, UseCaseTimetable)
	header.Set(HeaderAppToken, signingContext.AppToken)
	header.Set(HeaderAPIDate, signingContext.Date)
	header.Set(HeaderAuthorization, signingContext.Signature)
}

// Execute performs exactly one GET. The caller closes the response body.
func (t *Transport) Execute(ctx context.Context, requestURL *url.URL, signedPath string) (*http.Response, error) {
	client, err := t.newClient()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return nil, &BuildError{Field: "url", Reason: "invalid request", Err: err}
	}
	t.setHeaders(req.Header, signedPath)

	log.Debug().
		Str("url", requestURL.String()).
		Str("signedpath", signedPath).
		Msg("Sending request")

	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Str("url", requestURL.String()).
		Msg("Received response")

	return resp, nil
}

func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}

	return &NetworkError{Err: err}
}
