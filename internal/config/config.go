package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type SMSConfig struct {
	APIURL   string `yaml:"api_url"`
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

// AuthConfig carries the token secret and the two TTL windows. The raw
// yaml values are duration strings ("24h", "5m"); LoadConfig parses them
// once so the rest of the code only sees time.Duration.
type AuthConfig struct {
	Secret   string `yaml:"secret"`
	TokenTTL string `yaml:"token_ttl"`
	OTPTTL   string `yaml:"otp_ttl"`

	tokenTTL time.Duration
	otpTTL   time.Duration
}

func (a *AuthConfig) TokenDuration() time.Duration { return a.tokenTTL }
func (a *AuthConfig) OTPDuration() time.Duration   { return a.otpTTL }

type TelegramConfig struct {
	BotToken  string `yaml:"bot_token"`
	OpsChatID int64  `yaml:"ops_chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth  AuthConfig `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		SupportInbox string `yaml:"support_inbox"`
	} `yaml:"email"`
	Files    FilesConfig    `yaml:"files"`
	SMS      SMSConfig      `yaml:"sms"`
	Telegram TelegramConfig `yaml:"telegram"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	cfg.Auth.tokenTTL = parseDuration(cfg.Auth.TokenTTL, 24*time.Hour)
	cfg.Auth.otpTTL = parseDuration(cfg.Auth.OTPTTL, 5*time.Minute)
	return &cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		panic("Failed to parse duration " + s + ": " + err.Error())
	}
	return d
}
