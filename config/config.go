package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string   `json:"port"`
	DatabaseUrl string   `json:"database_url"`
	CORSOrigins []string `json:"cors_origins"`

	KnowledgeFile string `json:"knowledge_file"`

	TypingDelayMin time.Duration `json:"typing_delay_min"`
	TypingDelayMax time.Duration `json:"typing_delay_max"`

	SessionTTL           time.Duration `json:"session_ttl"`
	SessionSweepInterval time.Duration `json:"session_sweep_interval"`

	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	NotifyWebhookURL string `json:"notify_webhook_url"`
	NotifyToken      string `json:"notify_token"`
}

// Load reads the configuration from the environment, after loading a .env
// file when one is present.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		log.Println("no .env file found, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	p := parser{getenv: getenv}

	cfg := Config{
		Port:                 p.str("PORT", "8080"),
		DatabaseUrl:          p.str("DATABASE_URL", ""),
		CORSOrigins:          splitList(p.str("CORS_ORIGINS", "*")),
		KnowledgeFile:        p.str("KNOWLEDGE_FILE", ""),
		TypingDelayMin:       p.duration("TYPING_DELAY_MIN", 600*time.Millisecond),
		TypingDelayMax:       p.duration("TYPING_DELAY_MAX", 1200*time.Millisecond),
		SessionTTL:           p.duration("SESSION_TTL", 30*time.Minute),
		SessionSweepInterval: p.duration("SESSION_SWEEP_INTERVAL", time.Minute),
		RateLimitRPS:         p.number("RATE_LIMIT_RPS", 1),
		RateLimitBurst:       p.integer("RATE_LIMIT_BURST", 5),
		NotifyWebhookURL:     p.str("NOTIFY_WEBHOOK_URL", ""),
		NotifyToken:          p.str("NOTIFY_TOKEN", ""),
	}
	if p.err != nil {
		return Config{}, p.err
	}

	if cfg.TypingDelayMin < 0 || cfg.TypingDelayMax < cfg.TypingDelayMin {
		return Config{}, fmt.Errorf("invalid typing delay window [%s, %s)", cfg.TypingDelayMin, cfg.TypingDelayMax)
	}
	if cfg.SessionSweepInterval <= 0 {
		return Config{}, errors.New("SESSION_SWEEP_INTERVAL must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return Config{}, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return d
}

func (p *parser) number(key string, def float64) float64 {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return f
}

func (p *parser) integer(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return def
	}
	return n
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid value for %s (%q): %w", key, value, err)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
