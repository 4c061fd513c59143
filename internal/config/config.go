package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hudsonrx/claimsight/internal/model"
	"github.com/hudsonrx/claimsight/internal/normalize"
)

// Defaults that hold unless overridden by flag, env, or config file.
const (
	DefaultStartDate          = "2025-01-01"
	DefaultShareRate          = 0.30
	DefaultEstPaidPerInfusion = 37500
	DefaultNPICachePath       = "npi_cache.json"
)

// Config holds all runtime configuration for a claimsight run.
type Config struct {
	ClaimsFile   string `yaml:"claims_file"`
	RosterFile   string `yaml:"roster_file"`
	PaymentsFile string `yaml:"payments_file"`
	OutputDir    string `yaml:"output_dir"`
	NPICachePath string `yaml:"npi_cache"`

	StartDate          string  `yaml:"start_date"` // YYYY-MM-DD analysis floor
	ShareRate          float64 `yaml:"share_rate"`
	EstPaidPerInfusion float64 `yaml:"est_paid_per_infusion"`

	LogFormat string `yaml:"log_format"` // "text" or "json"

	// Identity and access, normally supplied through the environment.
	AdminEmails  []string `yaml:"admin_emails"`
	BizDevUsers  string   `yaml:"bizdev_users"` // email:Name:Rep|email:Name:Rep
	ViewerUsers  string   `yaml:"viewer_users"` // email:Name:doc1;doc2|...
	AppPassword  string   `yaml:"-"`
	SkipPassword bool     `yaml:"-"`

	SMTP SMTPConfig `yaml:"smtp"`
}

// SMTPConfig configures login notification mail. An empty Host disables it.
type SMTPConfig struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username"`
	Password string   `yaml:"-"`
	From     string   `yaml:"from"`
	To       []string `yaml:"to"`
}

// Default returns a Config with baked-in program defaults applied.
func Default() Config {
	return Config{
		NPICachePath:       DefaultNPICachePath,
		StartDate:          DefaultStartDate,
		ShareRate:          DefaultShareRate,
		EstPaidPerInfusion: DefaultEstPaidPerInfusion,
		LogFormat:          "text",
		SMTP:               SMTPConfig{Port: 587},
	}
}

// LoadFromFile reads a YAML config file and merges its values into Config.
// Fields absent from the file keep their current values.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// LoadFromEnv merges environment variables into Config. Env values win over
// file values because secrets are only accepted from the environment.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		c.AdminEmails = splitList(v, ",")
	}
	if v := os.Getenv("BIZDEV_USERS"); v != "" {
		c.BizDevUsers = v
	}
	if v := os.Getenv("VIEWER_USERS"); v != "" {
		c.ViewerUsers = v
	}
	if v := os.Getenv("APP_PASSWORD"); v != "" {
		c.AppPassword = v
	}
	if v := os.Getenv("DEBUG_SKIP_PASSWORD"); v != "" {
		c.SkipPassword, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = p
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		c.SMTP.From = v
	}
	if v := os.Getenv("SMTP_TO"); v != "" {
		c.SMTP.To = splitList(v, ",")
	}
}

// Start parses the configured analysis floor date.
func (c *Config) Start() (time.Time, error) {
	t, ok := normalize.ParseDate(c.StartDate)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid start_date %q", c.StartDate)
	}
	return t, nil
}

// Users builds the directory from the three access tables. Malformed user
// entries are reported as errors rather than silently dropped so a typo in
// BIZDEV_USERS cannot lock a rep out unnoticed.
func (c *Config) Users() ([]model.User, error) {
	var users []model.User
	for _, email := range c.AdminEmails {
		users = append(users, model.User{Email: email, Name: email, Role: model.RoleAdmin})
	}

	for _, entry := range splitList(c.BizDevUsers, "|") {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed bizdev user entry %q (want email:Name:Rep)", entry)
		}
		users = append(users, model.User{
			Email:   strings.TrimSpace(parts[0]),
			Name:    strings.TrimSpace(parts[1]),
			Role:    model.RoleBizDev,
			RepName: strings.TrimSpace(parts[2]),
		})
	}

	for _, entry := range splitList(c.ViewerUsers, "|") {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed viewer user entry %q (want email:Name:doctor;doctor)", entry)
		}
		users = append(users, model.User{
			Email:      strings.TrimSpace(parts[0]),
			Name:       strings.TrimSpace(parts[1]),
			Role:       model.RoleViewer,
			DoctorList: splitList(parts[2], ";"),
		})
	}
	return users, nil
}

// Validate checks the fields every subcommand needs.
func (c *Config) Validate() error {
	if c.ClaimsFile == "" {
		return fmt.Errorf("--claims is required")
	}
	if _, err := os.Stat(c.ClaimsFile); err != nil {
		return fmt.Errorf("claims file not accessible: %w", err)
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	if c.ShareRate < 0 || c.ShareRate > 1 {
		return fmt.Errorf("share_rate %v out of range [0, 1]", c.ShareRate)
	}
	return nil
}

// ValidateWithRoster additionally requires the roster file.
func (c *Config) ValidateWithRoster() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.RosterFile == "" {
		return fmt.Errorf("--roster is required")
	}
	if _, err := os.Stat(c.RosterFile); err != nil {
		return fmt.Errorf("roster file not accessible: %w", err)
	}
	return nil
}

// ValidatePayments requires only the payments workbook.
func (c *Config) ValidatePayments() error {
	if c.PaymentsFile == "" {
		return fmt.Errorf("--payments is required")
	}
	if _, err := os.Stat(c.PaymentsFile); err != nil {
		return fmt.Errorf("payments file not accessible: %w", err)
	}
	if c.EstPaidPerInfusion <= 0 {
		return fmt.Errorf("est_paid_per_infusion must be positive")
	}
	return nil
}

func splitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
