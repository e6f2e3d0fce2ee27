package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string
	RedisURL            string
	SupabaseURL         string // storage base for signed upload/public URLs
	SupabaseSecretKey   string // service_role key (Dashboard → API), not anon key
	NominatimURL        string
	GeocoderContact     string // Nominatim requires a way to reach the operator
	GeocodeCacheTTL     time.Duration
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	nominatim := viper.GetString("NOMINATIM_URL")
	if nominatim == "" {
		nominatim = "https://nominatim.openstreetmap.org"
	}
	contact := viper.GetString("GEOCODER_CONTACT")
	if contact == "" {
		contact = "contact@easybazar.example"
	}

	cacheTTL := 24 * time.Hour
	if h := viper.GetInt("GEOCODE_CACHE_TTL_HOURS"); h > 0 {
		cacheTTL = time.Duration(h) * time.Hour
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		RedisURL:            viper.GetString("REDIS_URL"),
		SupabaseURL:         viper.GetString("SUPABASE_URL"),
		SupabaseSecretKey:   viper.GetString("SUPABASE_SECRET_KEY"),
		NominatimURL:        nominatim,
		GeocoderContact:     contact,
		GeocodeCacheTTL:     cacheTTL,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
	}, nil
}
