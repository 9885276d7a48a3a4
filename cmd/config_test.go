package cmd_test

import (
	"testing"
	"time"

	"parcel/cmd"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	cmd.SetDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(newViper(nil))

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.HTTPPort)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "GMC", cfg.OrderNumberPrefix)
		assert.Equal(t, "EUR", cfg.PaymentCurrency)
		assert.False(t, cfg.RequireVerifiedDriver)
		assert.Equal(t, cmd.StorageDriverLocal, cfg.StorageDriver)
		assert.Equal(t, 100, cfg.OutboxBatchSize)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := cmd.LoadConfig(newViper(map[string]any{
			"REQUIRE_VERIFIED_DRIVER": "true",
			"PAYMENT_CURRENCY":        "usd",
			"STORAGE_DRIVER":          "S3",
			"S3_BUCKET":               "documents",
			"REQUEST_TIMEOUT":         "3s",
		}))

		require.NoError(t, err)
		assert.True(t, cfg.RequireVerifiedDriver)
		assert.Equal(t, "USD", cfg.PaymentCurrency)
		assert.Equal(t, cmd.StorageDriverS3, cfg.StorageDriver)
		assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	})

	t.Run("s3 needs a bucket", func(t *testing.T) {
		_, err := cmd.LoadConfig(newViper(map[string]any{"STORAGE_DRIVER": "s3"}))

		require.ErrorContains(t, err, "S3_BUCKET")
	})

	t.Run("unknown storage driver", func(t *testing.T) {
		_, err := cmd.LoadConfig(newViper(map[string]any{"STORAGE_DRIVER": "ftp"}))

		require.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		_, err := cmd.LoadConfig(newViper(map[string]any{"TOKEN_TTL": "forever"}))

		require.Error(t, err)
	})
}

func TestConfig_DSN(t *testing.T) {
	cfg := cmd.Config{
		DBHost:     "db",
		DBPort:     "5432",
		DBUser:     "u",
		DBPassword: "p",
		DBName:     "parcel",
		DBSslMode:  "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=parcel sslmode=disable", cfg.DSN())
}
