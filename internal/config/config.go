package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	DB struct {
		DSN      string `mapstructure:"dsn"`
		MaxConns int32  `mapstructure:"max_conns"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
		Folder    string `mapstructure:"folder"`
	} `mapstructure:"cloudinary"`
	Jaeger struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"jaeger"`
}

var envBindings = map[string]string{
	"app.port":              "APP_PORT",
	"app.env":               "APP_ENV",
	"db.dsn":                "DB_DSN",
	"db.max_conns":          "DB_MAX_CONNS",
	"redis.addr":            "REDIS_ADDR",
	"redis.password":        "REDIS_PASSWORD",
	"redis.db":              "REDIS_DB",
	"kafka.brokers":         "KAFKA_BROKERS",
	"auth.jwt_secret":       "JWT_SECRET",
	"auth.token_lifespan":   "TOKEN_LIFESPAN",
	"cloudinary.cloud_name": "CLOUDINARY_CLOUD_NAME",
	"cloudinary.api_key":    "CLOUDINARY_API_KEY",
	"cloudinary.api_secret": "CLOUDINARY_API_SECRET",
	"cloudinary.folder":     "CLOUDINARY_FOLDER",
	"jaeger.otlp_endpoint":  "JAEGER_OTLP_ENDPOINT",
}

// LoadConfig reads .env and config.yaml from the given directories (the
// working directory when none), then lets environment variables win.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("auth.token_lifespan", time.Hour)
	v.SetDefault("cloudinary.folder", "resumes")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return cfg, err
		}
	}

	err = v.Unmarshal(&cfg)
	return
}

// Validate reports every missing setting the service cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.DB.DSN == "" {
		errs = append(errs, errors.New("db.dsn (DB_DSN) is required"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret (JWT_SECRET) is required"))
	}
	if c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr (REDIS_ADDR) is required"))
	}
	if c.Cloudinary.CloudName == "" || c.Cloudinary.ApiKey == "" || c.Cloudinary.ApiSecret == "" {
		errs = append(errs, errors.New("cloudinary cloud_name, api_key and api_secret are required"))
	}
	return errors.Join(errs...)
}
