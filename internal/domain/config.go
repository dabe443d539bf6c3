package domain

// Config mirrors ~/.local-warp/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Model               ModelSettings     `yaml:"model"`
	Execution           ExecutionSettings `yaml:"execution"`
	Security            SecuritySettings  `yaml:"security"`
}

// Preferences captures user level toggles.
type Preferences struct {
	MaxHistory int  `yaml:"max_history"`
	Verbose    bool `yaml:"verbose"`
}

// ModelSettings describes the remote completion endpoint.
type ModelSettings struct {
	BaseURL           string  `yaml:"base_url"`
	ModelID           string  `yaml:"model_id"`
	AuthEnvVar        string  `yaml:"auth_env_var"`
	TimeoutSeconds    int     `yaml:"timeout"`
	MaxRetries        int     `yaml:"max_retries"`
	RetryDelaySeconds float64 `yaml:"retry_delay"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float64 `yaml:"temperature"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	Shell                string `yaml:"shell"`
	TimeoutSeconds       int    `yaml:"timeout"`
	ConfirmBeforeExecute bool   `yaml:"confirm_before_execute"`
}

// SecuritySettings defines the advisory guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}
