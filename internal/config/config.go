package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type OTPConfig struct {
	Digits         int           `yaml:"digits"`
	TTL            time.Duration `yaml:"ttl"`
	ResendInterval time.Duration `yaml:"resend_interval"`
	MaxAttempts    int           `yaml:"max_attempts"`
}

type MuseumConfig struct {
	BaseURL string `yaml:"base_url"`
	DryRun  bool   `yaml:"dry_run"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		DryRun       bool   `yaml:"dry_run"`
	} `yaml:"email"`
	Auth struct {
		JWTSecret  string        `yaml:"jwt_secret"`
		AccessTTL  time.Duration `yaml:"access_ttl"`
		RefreshTTL time.Duration `yaml:"refresh_ttl"`
		// window during which a confirmed step-up grant stays usable
		StepUpGrantTTL time.Duration `yaml:"step_up_grant_ttl"`
	} `yaml:"auth"`
	OTP    OTPConfig    `yaml:"otp"`
	Museum MuseumConfig `yaml:"museum"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Auth.AccessTTL <= 0 {
		c.Auth.AccessTTL = 15 * time.Minute
	}
	if c.Auth.RefreshTTL <= 0 {
		c.Auth.RefreshTTL = 30 * 24 * time.Hour
	}
	if c.Auth.StepUpGrantTTL <= 0 {
		c.Auth.StepUpGrantTTL = 10 * time.Minute
	}
	if c.OTP.Digits <= 0 {
		c.OTP.Digits = 6
	}
	if c.OTP.TTL <= 0 {
		c.OTP.TTL = 10 * time.Minute
	}
	if c.OTP.ResendInterval <= 0 {
		c.OTP.ResendInterval = 60 * time.Second
	}
	if c.OTP.MaxAttempts <= 0 {
		c.OTP.MaxAttempts = 5
	}
	if c.Museum.BaseURL == "" {
		c.Museum.BaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"
	}
}
