package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where the gateway stores its own data
	DSN string
	// Driver is the database driver (sqlite, mysql or postgres)
	Driver string
	// Version is the current version of server
	Version string

	// LLM backend configuration
	LLMProvider        string  // ADVISOR_LLM_PROVIDER (openai, ollama or googleai)
	LLMAPIKey          string  // ADVISOR_LLM_API_KEY
	LLMBaseURL         string  // ADVISOR_LLM_BASE_URL
	LLMModel           string  // ADVISOR_LLM_MODEL (default: gpt-4o-mini)
	LLMClassifierModel string  // ADVISOR_LLM_CLASSIFIER_MODEL (defaults to LLMModel)
	LLMMaxTokens       int     // ADVISOR_LLM_MAX_TOKENS
	LLMTemperature     float64 // ADVISOR_LLM_TEMPERATURE
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

// Validate normalizes the profile and fills in derived defaults.
func (p *Profile) Validate() error {
	if p.Mode != "prod" && p.Mode != "dev" {
		p.Mode = "dev"
	}
	if p.Mode == "prod" && p.Data == "" {
		p.Data = "/var/opt/advisor"
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("advisor_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.DSN == "" {
		return errors.Errorf("dsn is required for driver %s", p.Driver)
	}

	if p.LLMProvider == "" {
		p.LLMProvider = "openai"
	}
	if p.LLMModel == "" {
		p.LLMModel = "gpt-4o-mini"
	}
	if p.LLMClassifierModel == "" {
		p.LLMClassifierModel = p.LLMModel
	}
	return nil
}
