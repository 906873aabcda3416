package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	Env         string `mapstructure:"ENV"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbName string `mapstructure:"POSTGRES_DB"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	AuthTokenKey string `mapstructure:"AUTH_TOKEN_KEY"`

	VnpTmnCode    string `mapstructure:"VNP_TMN_CODE"`
	VnpHashSecret string `mapstructure:"VNP_HASH_SECRET"`
	VnpBaseURL    string `mapstructure:"VNP_BASE_URL"`
	VnpReturnURL  string `mapstructure:"VNP_RETURN_URL"`
}

// Load reads configuration from the given env file when present, letting real
// environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	// A missing file is fine; env vars and defaults still apply.
	if _, statErr := os.Stat(path); statErr == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "floramart")
	v.SetDefault("ENV", "dev")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_DB", "floramart")
	v.SetDefault("POSTGRES_USER", "floramart")
	v.SetDefault("POSTGRES_PASSWORD", "")
	v.SetDefault("AUTH_TOKEN_KEY", "")
	v.SetDefault("VNP_TMN_CODE", "")
	v.SetDefault("VNP_HASH_SECRET", "")
	v.SetDefault("VNP_BASE_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html")
	v.SetDefault("VNP_RETURN_URL", "http://localhost:8080/api/v1/payment/vnpay-return")
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DbHost, c.DbPort, c.DbUser, c.DbPas, c.DbName)
}
