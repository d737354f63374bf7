package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // minutes
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base
		Bucket    string `yaml:"bucket"`     // for S3/R2
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3/R2
		SecretKey string `yaml:"secret_key"` // for S3/R2
		Endpoint  string `yaml:"endpoint"`   // for R2 or custom S3
	} `yaml:"storage"`

	Upload struct {
		MaxScreenshotSize int64    `yaml:"max_screenshot_size"` // bytes
		AllowedImageTypes []string `yaml:"allowed_image_types"` // MIME types
	} `yaml:"upload"`

	// Premium holds the default premium configuration. Individual keys can be
	// overridden at runtime through the settings table; see
	// services.SettingService.PremiumSettings.
	Premium struct {
		Plans                map[string]float64 `yaml:"plans"` // plan name -> price
		Currency             string             `yaml:"currency"`
		UPIID                string             `yaml:"upi_id"`
		PayeeName            string             `yaml:"payee_name"`
		AdminEmail           string             `yaml:"admin_email"`
		RequireVerifiedEmail bool               `yaml:"require_verified_email"`
	} `yaml:"premium"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`

	PublicBaseURL string `yaml:"public_base_url"` // used in email links
}

var AppConfig *Config

// LoadConfig reads config.yaml, or falls back to environment variables when
// DATABASE_URL is set (test mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.local"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@guidehub.test"
	cfg.Email.FromName = "GuideHub"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Upload.MaxScreenshotSize == 0 {
		cfg.Upload.MaxScreenshotSize = 5 * 1024 * 1024 // 5MB
	}
	if len(cfg.Upload.AllowedImageTypes) == 0 {
		cfg.Upload.AllowedImageTypes = []string{
			"image/jpeg", "image/png", "image/gif", "image/webp",
		}
	}
	if cfg.Premium.Plans == nil {
		cfg.Premium.Plans = map[string]float64{
			"basic":    499,
			"advanced": 999,
			"pro":      1999,
		}
	}
	if cfg.Premium.Currency == "" {
		cfg.Premium.Currency = "INR"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
