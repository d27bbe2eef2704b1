package sbbapi

import (
	"crypto/x509"
	_ "embed"
	"errors"
	"sync"
)

//go:embed resources/ca_cert.pem
var pinnedCertificate []byte

var pinnedCertPool = sync.OnceValues(func() (*x509.CertPool, error) {
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pinnedCertificate) {
		return nil, errors.New("unable to decode pinned certificate")
	}

	return pool, nil
})

// PinnedCertificate returns a copy of the embedded root certificate (PEM).
func PinnedCertificate() []byte {
	certificate := make([]byte, len(pinnedCertificate))
	copy(certificate, pinnedCertificate)

	return certificate
}

// PinnedCertPool is a pool holding only the embedded root certificate.
func PinnedCertPool() (*x509.CertPool, error) {
	return pinnedCertPool()
}
