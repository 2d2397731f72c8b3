package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	Port          string `mapstructure:"PORT"`
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// OriginURL is the static-content origin that non-redirected traffic
	// is proxied to.
	OriginURL string `mapstructure:"ORIGIN_URL"`
	// RedirectURL is the affiliate destination for referral traffic.
	RedirectURL string `mapstructure:"REDIRECT_URL"`
	// RefSentinel is the `ref` query value that marks referral traffic.
	RefSentinel string `mapstructure:"REF_SENTINEL"`

	DashboardRate  float64 `mapstructure:"DASHBOARD_RATE"`
	DashboardBurst int     `mapstructure:"DASHBOARD_BURST"`

	MaxMindAccountID  string `mapstructure:"MAXMIND_ACCOUNT_ID"`
	MaxMindLicenseKey string `mapstructure:"MAXMIND_LICENSE_KEY"`
	MaxMindEditionIDs string `mapstructure:"MAXMIND_EDITION_IDS"`
	MaxMindDBPath     string `mapstructure:"GEOIP_DB_PATH"`
}

func LoadConfig() (config Config, err error) {
	// .env is optional, mainly for local development
	_ = godotenv.Load()

	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("MAXMIND_ACCOUNT_ID", "")
	viper.SetDefault("MAXMIND_LICENSE_KEY", "")
	viper.SetDefault("ORIGIN_URL", "http://localhost:8081")
	viper.SetDefault("REDIRECT_URL", "https://go.fiverr.com/visit/?bta=1144956&brand=fp")
	viper.SetDefault("REF_SENTINEL", "ppp")
	viper.SetDefault("DASHBOARD_RATE", 5)
	viper.SetDefault("DASHBOARD_BURST", 10)
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-Country.mmdb")
	viper.SetDefault("MAXMIND_EDITION_IDS", "GeoLite2-Country")

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
