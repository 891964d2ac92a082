package oracle

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvProviderName     = "COURIER_ORACLE_PROVIDER_NAME"
	EnvBaseURL          = "COURIER_ORACLE_BASE_URL"
	EnvToken            = "COURIER_ORACLE_TOKEN"
	EnvDeployment       = "COURIER_ORACLE_DEPLOYMENT"
	EnvAPIVersion       = "COURIER_ORACLE_API_VERSION"
	EnvAuthType         = "COURIER_ORACLE_AUTH_TYPE"
	EnvModelName        = "COURIER_ORACLE_MODEL_NAME"
	EnvClassifyTimeout  = "COURIER_ORACLE_CLASSIFY_TIMEOUT"
	EnvIntentTimeout    = "COURIER_ORACLE_INTENT_TIMEOUT"
	EnvPDFIntentTimeout = "COURIER_ORACLE_PDF_INTENT_TIMEOUT"
)

// Config describes the oracle agent and the per-query deadlines. Enabled
// gates the oracle entirely: when false the pipeline runs on heuristics
// alone and none of the agent fields are required.
type Config struct {
	Enabled          bool                 `toml:"enabled"`
	Agent            gaconfig.AgentConfig `toml:"agent"`
	ClassifyTimeout  string               `toml:"classify_timeout"`
	IntentTimeout    string               `toml:"intent_timeout"`
	PDFIntentTimeout string               `toml:"pdf_intent_timeout"`
}

func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *Config) Merge(overlay *Config) {
	if overlay == nil {
		return
	}
	if overlay.Enabled {
		c.Enabled = true
	}
	c.Agent.Merge(&overlay.Agent)
	if overlay.ClassifyTimeout != "" {
		c.ClassifyTimeout = overlay.ClassifyTimeout
	}
	if overlay.IntentTimeout != "" {
		c.IntentTimeout = overlay.IntentTimeout
	}
	if overlay.PDFIntentTimeout != "" {
		c.PDFIntentTimeout = overlay.PDFIntentTimeout
	}
}

func (c *Config) loadDefaults() {
	agentDefaults := gaconfig.DefaultAgentConfig()
	agentDefaults.Merge(&c.Agent)
	c.Agent = agentDefaults

	if c.ClassifyTimeout == "" {
		c.ClassifyTimeout = "20s"
	}
	if c.IntentTimeout == "" {
		c.IntentTimeout = "10s"
	}
	if c.PDFIntentTimeout == "" {
		c.PDFIntentTimeout = "5s"
	}
}

func (c *Config) loadEnv() {
	if c.Agent.Provider == nil {
		c.Agent.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Agent.Provider.Options == nil {
		c.Agent.Provider.Options = make(map[string]any)
	}
	if c.Agent.Model == nil {
		c.Agent.Model = &gaconfig.ModelConfig{}
	}

	if v := os.Getenv(EnvProviderName); v != "" {
		c.Agent.Provider.Name = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Agent.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvModelName); v != "" {
		c.Agent.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Agent.Provider.Options[key] = v
		}
	}

	setOption(EnvToken, "token")
	setOption(EnvDeployment, "deployment")
	setOption(EnvAPIVersion, "api_version")
	setOption(EnvAuthType, "auth_type")

	if v := os.Getenv(EnvClassifyTimeout); v != "" {
		c.ClassifyTimeout = v
	}
	if v := os.Getenv(EnvIntentTimeout); v != "" {
		c.IntentTimeout = v
	}
	if v := os.Getenv(EnvPDFIntentTimeout); v != "" {
		c.PDFIntentTimeout = v
	}
}

func (c *Config) validate() error {
	for _, timeout := range []struct {
		name  string
		value string
	}{
		{"classify_timeout", c.ClassifyTimeout},
		{"intent_timeout", c.IntentTimeout},
		{"pdf_intent_timeout", c.PDFIntentTimeout},
	} {
		if _, err := time.ParseDuration(timeout.value); err != nil {
			return fmt.Errorf("oracle %s: %w", timeout.name, err)
		}
	}

	if !c.Enabled {
		return nil
	}

	if c.Agent.Name == "" {
		return fmt.Errorf("oracle agent name required")
	}
	if c.Agent.Provider == nil || c.Agent.Provider.Name == "" {
		return fmt.Errorf("oracle provider name required")
	}
	if c.Agent.Model == nil {
		return fmt.Errorf("oracle model required")
	}

	return nil
}
