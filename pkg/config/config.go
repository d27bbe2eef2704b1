package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/travigo/sbb/pkg/authenticator"
	"github.com/travigo/sbb/pkg/sbbapi"
)

const (
	GenerationVNext  = "vnext"
	GenerationLegacy = "legacy"
)

type Config struct {
	Endpoint  string `env:"SBB_API_ENDPOINT" envDefault:"https://p1.sbbmobile.ch"`
	UserAgent string `env:"SBB_USER_AGENT"`

	// vnext signs with the static app secret, legacy with the key derived from
	// the legacy certificate fingerprint
	Generation string `env:"SBB_API_GENERATION" envDefault:"vnext"`
	// LegacyCertificate is an optional PEM or DER file replacing the built in
	// legacy fingerprint
	LegacyCertificate string `env:"SBB_LEGACY_CERTIFICATE"`

	Timeout time.Duration `env:"SBB_TIMEOUT" envDefault:"15s"`

	LogFormat string `env:"SBB_LOG_FORMAT"` // JSON or empty for console
	Debug     string `env:"SBB_DEBUG"`

	BatchConcurrency int     `env:"SBB_BATCH_CONCURRENCY" envDefault:"4"`
	BatchRate        float64 `env:"SBB_BATCH_RATE" envDefault:"2"` // requests per second
}

// Load reads an optional .env file from the working directory and then the
// environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	return Parse()
}

// Parse reads the config from the environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	c.Generation = strings.ToLower(strings.TrimSpace(c.Generation))
	if c.Generation != GenerationVNext && c.Generation != GenerationLegacy {
		return fmt.Errorf("SBB_API_GENERATION must be %s or %s, got %q", GenerationVNext, GenerationLegacy, c.Generation)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("SBB_TIMEOUT must be positive, got %s", c.Timeout)
	}

	if c.BatchConcurrency < 1 {
		return fmt.Errorf("SBB_BATCH_CONCURRENCY must be at least 1, got %d", c.BatchConcurrency)
	}

	if c.BatchRate <= 0 {
		return fmt.Errorf("SBB_BATCH_RATE must be positive, got %v", c.BatchRate)
	}

	return nil
}

func (c *Config) IsDebug() bool {
	if c.Debug == "YES" {
		return true
	}

	debug, _ := strconv.ParseBool(c.Debug)
	return debug
}

func (c *Config) IsJSONLog() bool {
	return strings.EqualFold(c.LogFormat, "JSON")
}

// Signer returns the signing strategy for the configured API generation.
func (c *Config) Signer() (authenticator.Signer, error) {
	if c.Generation != GenerationLegacy {
		return authenticator.NewStaticSigner(), nil
	}

	if c.LegacyCertificate == "" {
		return authenticator.NewFingerprintSigner(authenticator.LegacyFingerprint, authenticator.VendorConstant), nil
	}

	certificate, err := os.ReadFile(c.LegacyCertificate)
	if err != nil {
		return nil, fmt.Errorf("read SBB_LEGACY_CERTIFICATE: %w", err)
	}

	signer, err := authenticator.NewCertificateSigner(certificate, authenticator.VendorConstant)
	if err != nil {
		return nil, fmt.Errorf("derive legacy signing key: %w", err)
	}

	return signer, nil
}

func (c *Config) NewClient() (*sbbapi.Client, error) {
	signer, err := c.Signer()
	if err != nil {
		return nil, err
	}

	return sbbapi.NewClient(c.Endpoint, c.UserAgent, signer), nil
}
