package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, "@midnight", cfg.RollupSchedule)
	require.Equal(t, "gallery", cfg.S3.Bucket)
}

func TestLoad_EnvOverlay(t *testing.T) {
	t.Setenv("AQUA_LISTEN_ADDR", ":9999")
	t.Setenv("AQUA_ACCESS_TOKEN_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":9999", cfg.ListenAddr)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
}

func TestValidate_RejectsEmptySecret(t *testing.T) {
	cfg := &Config{ListenAddr: ":8080", DatabaseDSN: "dsn", SecretKey: "", AccessTokenTTL: time.Minute}
	require.Error(t, validate(cfg))
}
