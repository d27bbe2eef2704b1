package authenticator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintSigner(t *testing.T) {
	signer := NewFingerprintSigner(LegacyFingerprint, VendorConstant)

	tests := []struct {
		name     string
		path     string
		date     string
		expected string
	}{
		{
			name:     "features",
			path:     "/unauth/ticketingservice/zvs/v0/features",
			date:     "2019-09-05",
			expected: "wqhPBCfC9oc8gp62FVVIiNIADzg=",
		},
		{
			name:     "ghettobox",
			path:     "/unauth/ticketingservice/zvs/v0/ghettobox/",
			date:     "2019-09-05",
			expected: "3fgUyXQoMieevNYULWbo3OPsd4w=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, signer.Sign(tt.path, tt.date))
		})
	}
}

func TestFingerprintSignerKey(t *testing.T) {
	signer := NewFingerprintSigner(LegacyFingerprint, VendorConstant)

	assert.Equal(t, "b31915ace892f5a826fafe260c6547a4deda9597dd49595149014e973556145f", string(signer.key))
}

func TestStaticSigner(t *testing.T) {
	signer := NewStaticSigner()

	assert.Equal(t, "e8aGBzs71xsMpdQhKFflvITHVNM=", signer.Sign("/api/timetable/v2/trips", "2025-02-22"))
}

func TestSignatureDependsOnDate(t *testing.T) {
	signer := NewStaticSigner()

	assert.NotEqual(t,
		signer.Sign("/api/timetable/v2/trips", "2025-02-22"),
		signer.Sign("/api/timetable/v2/trips", "2025-02-23"),
	)
}

func TestSignerIsDeterministic(t *testing.T) {
	signer := NewStaticSigner()

	first := signer.Sign("/api/timetable/v2/trips", "2025-02-22")
	second := signer.Sign("/api/timetable/v2/trips", "2025-02-22")

	assert.Equal(t, first, second)
}

func TestCertificateSignerMatchesFingerprintSigner(t *testing.T) {
	der := generateCertificate(t)
	sum := sha1.Sum(der)
	fingerprint := base64.StdEncoding.EncodeToString(sum[:])

	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})

	for name, encoded := range map[string][]byte{"DER": der, "PEM": pemBytes} {
		t.Run(name, func(t *testing.T) {
			signer, err := NewCertificateSigner(encoded, VendorConstant)
			require.NoError(t, err)

			expected := NewFingerprintSigner(fingerprint, VendorConstant)
			assert.Equal(t, expected.Sign("/path", "2025-02-22"), signer.Sign("/path", "2025-02-22"))
		})
	}
}

func TestCertificateSignerChangesWithVendorConstant(t *testing.T) {
	der := generateCertificate(t)

	first, err := NewCertificateSigner(der, VendorConstant)
	require.NoError(t, err)
	second, err := NewCertificateSigner(der, "another-constant")
	require.NoError(t, err)

	assert.NotEqual(t, first.Sign("/path", "2025-02-22"), second.Sign("/path", "2025-02-22"))
}

func TestCertificateSignerRejectsGarbage(t *testing.T) {
	_, err := NewCertificateSigner([]byte("not a certificate"), VendorConstant)
	assert.Error(t, err)

	_, err = NewCertificateSigner(nil, VendorConstant)
	assert.Error(t, err)

	key := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}})
	_, err = NewCertificateSigner(key, VendorConstant)
	assert.Error(t, err)
}

func TestGenerateAppToken(t *testing.T) {
	first := GenerateAppToken()
	second := GenerateAppToken()

	assert.NotEqual(t, first, second)

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
}

func TestGetDate(t *testing.T) {
	date := GetDate()

	_, err := time.ParseInLocation("2006-01-02", date, time.Local)
	require.NoError(t, err)
	assert.Len(t, date, 10)
}

func TestNewSigningContext(t *testing.T) {
	signer := NewStaticSigner()

	signingContext := NewSigningContext(signer, "/api/timetable/v2/trips")

	assert.Equal(t, "/api/timetable/v2/trips", signingContext.SignedPath)
	assert.Equal(t, signer.Sign(signingContext.SignedPath, signingContext.Date), signingContext.Signature)
	assert.NotEmpty(t, signingContext.AppToken)

	other := NewSigningContext(signer, "/api/timetable/v2/trips")
	assert.NotEqual(t, signingContext.AppToken, other.AppToken)
}

func generateCertificate(t *testing.T) []byte {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "pinned.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}

	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return der
}
