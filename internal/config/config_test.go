package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/credprobe/credprobe/internal/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN", "COMPANY", "ENTERPRISE_SLUG", "GITHUB_BASE_URL",
		"HTTPS_PROXY", "AUDIT_TIMEOUT", "AUDIT_CONCURRENCY", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_example")
	t.Setenv("COMPANY", "acme")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_example", cfg.Token)
	assert.Equal(t, "acme", cfg.Company)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", " ghp_example ")
	t.Setenv("COMPANY", "acme")
	t.Setenv("ENTERPRISE_SLUG", "megacorp")
	t.Setenv("GITHUB_BASE_URL", "https://ghe.example.com/api/v3/")
	t.Setenv("AUDIT_TIMEOUT", "90s")
	t.Setenv("AUDIT_CONCURRENCY", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_example", cfg.Token, "token is trimmed")
	assert.Equal(t, "megacorp", cfg.Enterprise)
	assert.Equal(t, "https://ghe.example.com/api/v3", cfg.BaseURL, "trailing slash stripped")
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 12, cfg.Concurrency)
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "t")
	t.Setenv("COMPANY", "acme")

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("AUDIT_TIMEOUT", "soon")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad concurrency", func(t *testing.T) {
		t.Setenv("AUDIT_CONCURRENCY", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "complete",
			cfg:  Config{Token: "t", Company: "acme", Concurrency: 5},
		},
		{
			name:    "missing token",
			cfg:     Config{Company: "acme", Concurrency: 5},
			wantErr: apierrors.ErrMissingToken,
		},
		{
			name:    "missing company",
			cfg:     Config{Token: "t", Concurrency: 5},
			wantErr: apierrors.ErrMissingCompany,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
