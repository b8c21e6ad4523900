package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string   `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`

	// Record store
	Backend           string `yaml:"backend"` // memory, local, mongo, postgres, dynamo
	LocalPath         string `yaml:"local_path"`
	MongoURI          string `yaml:"mongo_uri"`
	DBName            string `yaml:"db_name"`
	DatabaseURL       string `yaml:"database_url"`
	AWSRegion         string `yaml:"aws_region"`
	DynamoTablePrefix string `yaml:"dynamo_table_prefix"`
	SeedDemoData      bool   `yaml:"seed_demo_data"`

	// Auth
	TokenMode string        `yaml:"token_mode"` // demo, jwt
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	// Supporting documents
	DocumentStorage     string `yaml:"document_storage"` // none, cloudinary, s3
	CloudinaryCloudName string `yaml:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `yaml:"cloudinary_api_key"`
	CloudinaryAPISecret string `yaml:"cloudinary_api_secret"`
	S3Bucket            string `yaml:"s3_bucket"`

	// E-mail notifications (ZeptoMail)
	MailAPIURL string `yaml:"mail_api_url"`
	MailAPIKey string `yaml:"mail_api_key"`
	MailFrom   string `yaml:"mail_from"`
}

func Default() *Config {
	return &Config{
		Port:              "8080",
		CORSOrigins:       []string{"*"},
		LogLevel:          "info",
		Backend:           "local",
		LocalPath:         "data/venturelink.db",
		MongoURI:          "mongodb://localhost:27017",
		DBName:            "venturelink",
		DynamoTablePrefix: "venturelink_",
		SeedDemoData:      true,
		TokenMode:         "demo",
		TokenTTL:          7 * 24 * time.Hour,
		DocumentStorage:   "none",
	}
}

// Load reads .env (if present), then the YAML file at path (if set), then applies
// environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = os.Getenv("VENTURELINK_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	str := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str("PORT", &c.Port)
	str("LOG_LEVEL", &c.LogLevel)
	str("STORE_BACKEND", &c.Backend)
	str("LOCAL_DB_PATH", &c.LocalPath)
	str("MONGO_URI", &c.MongoURI)
	str("DB_NAME", &c.DBName)
	str("DATABASE_URL", &c.DatabaseURL)
	str("AWS_REGION", &c.AWSRegion)
	str("DYNAMO_TABLE_PREFIX", &c.DynamoTablePrefix)
	str("TOKEN_MODE", &c.TokenMode)
	str("JWT_SECRET", &c.JWTSecret)
	str("DOCUMENT_STORAGE", &c.DocumentStorage)
	str("CLOUDINARY_CLOUD_NAME", &c.CloudinaryCloudName)
	str("CLOUDINARY_API_KEY", &c.CloudinaryAPIKey)
	str("CLOUDINARY_API_SECRET", &c.CloudinaryAPISecret)
	str("S3_BUCKET_NAME", &c.S3Bucket)
	str("ZEPTO_API_URL", &c.MailAPIURL)
	str("ZEPTO_API_KEY", &c.MailAPIKey)
	str("EMAIL_FROM", &c.MailFrom)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SEED_DEMO_DATA: %w", err)
		}
		c.SeedDemoData = b
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TOKEN_TTL: %w", err)
		}
		c.TokenTTL = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case "memory", "local", "mongo", "postgres", "dynamo":
	default:
		return fmt.Errorf("unknown store backend %q", c.Backend)
	}
	switch c.TokenMode {
	case "demo":
	case "jwt":
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required when TOKEN_MODE=jwt")
		}
	default:
		return fmt.Errorf("unknown token mode %q", c.TokenMode)
	}
	switch c.DocumentStorage {
	case "", "none", "cloudinary":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET_NAME is required when DOCUMENT_STORAGE=s3")
		}
	default:
		return fmt.Errorf("unknown document storage %q", c.DocumentStorage)
	}
	if c.Backend == "postgres" && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when STORE_BACKEND=postgres")
	}
	return nil
}

func (c *Config) MailEnabled() bool {
	return c.MailAPIURL != "" && c.MailAPIKey != "" && c.MailFrom != ""
}
