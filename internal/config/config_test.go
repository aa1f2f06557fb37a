package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/b2-orders-service/internal/export"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carrier.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "orders.intake", cfg.Kafka.IntakeTopic)
	assert.Equal(t, export.DefaultConstants(), cfg.Carrier)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("CARRIER_SENDER_NAME", "テスト花店")
	t.Setenv("CARRIER_SHIP_DATE_POLICY", export.ShipDateRunDate)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, "テスト花店", cfg.Carrier.SenderName)
	assert.Equal(t, export.ShipDateRunDate, cfg.Carrier.ShipDatePolicy)
	// не заданное остаётся по умолчанию
	assert.Equal(t, "フラワーギフト", cfg.Carrier.ItemName)
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	path := writeFile(t, `
sender_name: "file sender"
sender_phone: "0611112222"
billing_customer_code: "012345678901"
`)
	t.Setenv("CARRIER_CONFIG", path)
	t.Setenv("CARRIER_SENDER_PHONE", "0633334444")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "file sender", cfg.Carrier.SenderName)
	assert.Equal(t, "012345678901", cfg.Carrier.BillingCustomerCode)
	assert.Equal(t, "0633334444", cfg.Carrier.SenderPhone)
	assert.Equal(t, "orders_b2", cfg.Carrier.FileBaseName)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CARRIER_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		t.Setenv("CARRIER_CONFIG", writeFile(t, "sender_nmae: typo\n"))
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("invalid service code", func(t *testing.T) {
		t.Setenv("CARRIER_DEFAULT_SERVICE_TYPE", "7")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "default_service_type")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
