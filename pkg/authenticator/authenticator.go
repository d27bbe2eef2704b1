package authenticator

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HMAC key of the vnext API, taken from the SBB Android app
const staticKey = `GY>b+.[0]S@b~f!2;4MU&GK<xQpO#;mG>"VuxE^,nh~Ev6!_cr\[rL'zL5<qX'D]`

// LegacyFingerprint is the fingerprint of the certificate the older API
// generation pins, not the vnext root
const LegacyFingerprint = "WdfnzdQugRFUF5b812hZl3lAahM="

// VendorConstant is mixed with the pinned certificate fingerprint by the older API generation
const VendorConstant = "c3eAd3eC3a7845dE98f73942b3d5f9c0"

type Signer interface {
	// Sign computes the X-API-AUTHORIZATION value for a request path (no query
	// string) on a local calendar date (YYYY-MM-DD).
	Sign(path string, date string) string
}

type HMACSigner struct {
	key []byte
}

func (s *HMACSigner) Sign(path string, date string) string {
	mac := hmac.New(sha1.New, s.key)
	mac.Write([]byte(path))
	mac.Write([]byte(date))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func NewStaticSigner() *HMACSigner {
	return &HMACSigner{key: []byte(staticKey)}
}

// NewFingerprintSigner derives the signing key as
// hex(sha256(fingerprint + vendorConstant)).
func NewFingerprintSigner(fingerprint string, vendorConstant string) *HMACSigner {
	sum := sha256.Sum256([]byte(fingerprint + vendorConstant))

	return &HMACSigner{key: []byte(hex.EncodeToString(sum[:]))}
}

// NewCertificateSigner derives the signing key from a PEM or DER encoded certificate.
func NewCertificateSigner(certificate []byte, vendorConstant string) (*HMACSigner, error) {
	fingerprint, err := CertificateFingerprint(certificate)
	if err != nil {
		return nil, err
	}

	return NewFingerprintSigner(fingerprint, vendorConstant), nil
}

// CertificateFingerprint is base64(sha1(DER)).
func CertificateFingerprint(certificate []byte) (string, error) {
	der := certificate
	if block, _ := pem.Decode(certificate); block != nil {
		if block.Type != "CERTIFICATE" {
			return "", fmt.Errorf("unexpected PEM block %q", block.Type)
		}
		der = block.Bytes
	}

	if len(der) == 0 {
		return "", errors.New("empty certificate")
	}
	if _, err := x509.ParseCertificate(der); err != nil {
		return "", fmt.Errorf("parse certificate: %w", err)
	}

	sum := sha1.Sum(der)

	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

func GenerateAppToken() string {
	return uuid.NewString()
}

// GetDate is the local calendar date, the server expires signatures at local midnight.
func GetDate() string {
	return time.Now().Format("2006-01-02")
}

// SigningContext holds everything that goes into the authentication headers of one request.
type SigningContext struct {
	SignedPath string
	Date       string
	AppToken   string
	Signature  string
}

func NewSigningContext(signer Signer, signedPath string) SigningContext {
	date := GetDate()

	return SigningContext{
		SignedPath: signedPath,
		Date:       date,
		AppToken:   GenerateAppToken(),
		Signature:  signer.Sign(signedPath, date),
	}
}
