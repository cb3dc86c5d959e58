package portfolio

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds everything the site reads from the environment.
type Config struct {
	Addr      string
	LogLevel  slog.Level
	AssetsDir string
	Resume    ResumeConfig
	Mail      MailConfig
}

// ResumeConfig controls where the resume page gets its entries.
type ResumeConfig struct {
	// Path of the resume PDF, also offered for download under /assets/.
	Path string
	// Parse turns PDF text extraction on. When false the extractor runs
	// without a text source and yields nothing.
	Parse bool
	// PreferCurated uses the curated entries from the content file when
	// there are any.
	PreferCurated bool
}

// MailConfig is the SMTP relay used by the contact form.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	To       string
}

// ConfigFromEnv reads the configuration from environment variables, applying
// development defaults where a value is not set.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Addr:      ":" + getenv("PORT", "8080"),
		AssetsDir: getenv("ASSETS_DIR", "./assets"),
		Mail: MailConfig{
			Host:     getenv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getenv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			To:       os.Getenv("TO_EMAIL"),
		},
	}
	cfg.Resume.Path = getenv("RESUME_PDF", filepath.Join(cfg.AssetsDir, "JEFFREY_SMITH.pdf"))
	if _, err := cfg.ResumeURL(); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.Resume.Parse, err = getbool("RESUME_PARSE", true); err != nil {
		return Config{}, err
	}
	if cfg.Resume.PreferCurated, err = getbool("RESUME_CURATED", true); err != nil {
		return Config{}, err
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

// ResumeURL is where the resume PDF is downloaded from. The PDF has to live
// under AssetsDir, which is served at /assets/.
func (c Config) ResumeURL() (string, error) {
	rel, err := filepath.Rel(c.AssetsDir, c.Resume.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("RESUME_PDF %q is not inside ASSETS_DIR %q", c.Resume.Path, c.AssetsDir)
	}
	return "/assets/" + filepath.ToSlash(rel), nil
}

// Configured reports whether credentials for the relay are present.
func (c MailConfig) Configured() bool {
	return c.Username != "" && c.Password != ""
}

// Recipient is the address contact messages go to, the account itself when
// no TO_EMAIL is set.
func (c MailConfig) Recipient() string {
	if c.To != "" {
		return c.To
	}
	return c.Username
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getbool(k string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
