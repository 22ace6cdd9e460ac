package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Search backend names
const (
	BackendDuckDuckGo = "duckduckgo"
	BackendBrave      = "brave"
	BackendTavily     = "tavily"
	BackendMCP        = "mcp"
)

// Config represents the complete deepagent configuration
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Search   SearchConfig   `yaml:"search"`
	Agent    AgentConfig    `yaml:"agent"`
	Hooks    HooksConfig    `yaml:"hooks"`
	Download DownloadConfig `yaml:"download"`
}

// LLMConfig selects the OpenAI-compatible endpoint and sampling settings
type LLMConfig struct {
	BaseURL     string   `yaml:"base_url"`
	APIKey      string   `yaml:"api_key"`
	Model       string   `yaml:"model"`
	Temperature float32  `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
	Stop        []string `yaml:"stop"`
}

// SearchConfig selects the DeepSearch backend
type SearchConfig struct {
	Backend    string          `yaml:"backend"` // duckduckgo, brave, tavily or mcp
	APIKey     string          `yaml:"api_key"`
	Depth      string          `yaml:"depth"` // tavily only: basic or advanced
	MaxResults int             `yaml:"max_results"`
	Timeout    time.Duration   `yaml:"timeout"`
	MCP        MCPSearchConfig `yaml:"mcp"`
}

// MCPSearchConfig runs DeepSearch through a tool exposed by an MCP server
type MCPSearchConfig struct {
	Server MCPServerConfig `yaml:"server"`
	// Tool is the server-side tool name
	Tool string `yaml:"tool"`
	// Argument is the name of the tool's query parameter
	Argument string `yaml:"argument"`
}

// MCPServerConfig defines a single MCP server
type MCPServerConfig struct {
	Name      string            `yaml:"name"`      // Unique server identifier
	Transport string            `yaml:"transport"` // "stdio" (only supported initially)
	Command   string            `yaml:"command"`   // Executable to run
	Args      []string          `yaml:"args"`      // Command arguments
	Env       map[string]string `yaml:"env"`       // Environment variables with ${VAR} support
}

// AgentConfig tunes the agent loop
type AgentConfig struct {
	// AlwaysSearch skips the first model call and searches the question directly
	AlwaysSearch bool `yaml:"always_search"`
}

// HooksConfig contains hook-related settings
type HooksConfig struct {
	// SearchConfirm asks the user before every search
	SearchConfirm bool `yaml:"search_confirm"`
}

// DownloadConfig configures the model download helper
type DownloadConfig struct {
	CLI      string        `yaml:"cli"`
	Repo     string        `yaml:"repo"`
	LocalDir string        `yaml:"local_dir"`
	Endpoint string        `yaml:"endpoint"` // exported as HF_ENDPOINT, e.g. a mirror
	Timeout  time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       "gpt-4-turbo",
			Temperature: 0.7,
			Stop:        []string{"\nObservation:"},
		},
		Search: SearchConfig{
			Backend:    BackendDuckDuckGo,
			Depth:      "basic",
			MaxResults: 5,
			Timeout:    15 * time.Second,
			MCP: MCPSearchConfig{
				Argument: "query",
				Server: MCPServerConfig{
					Transport: "stdio",
				},
			},
		},
		Download: DownloadConfig{
			CLI:      "huggingface-cli",
			Repo:     "sentence-transformers/paraphrase-multilingual-MiniLM-L12-v2",
			LocalDir: "./model/sentence-transformer",
			Timeout:  30 * time.Minute,
		},
	}
}

// Load reads and parses the YAML config file on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.expand()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads config with fallback to default locations
// Checks: ./deepagent.yaml, ./configs/deepagent.yaml, ~/.config/deepagent/deepagent.yaml, /etc/deepagent/deepagent.yaml
func LoadWithDefaults() (*Config, error) {
	locations := []string{
		"./deepagent.yaml",
		"./configs/deepagent.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".config", "deepagent", "deepagent.yaml"))
	}

	locations = append(locations, "/etc/deepagent/deepagent.yaml")

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return Load(loc)
		}
	}

	// No config found - defaults are fine
	return Default(), nil
}

// expand resolves ${VAR} references in fields that usually hold secrets
func (c *Config) expand() {
	c.LLM.APIKey = ExpandEnv(c.LLM.APIKey)
	c.LLM.BaseURL = ExpandEnv(c.LLM.BaseURL)
	c.Search.APIKey = ExpandEnv(c.Search.APIKey)
	c.Download.Endpoint = ExpandEnv(c.Download.Endpoint)
	c.Search.MCP.Server.Env = ExpandEnvMap(c.Search.MCP.Server.Env)
}

// Validate checks config correctness
func (c *Config) Validate() error {
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2, got %.2f", c.LLM.Temperature)
	}

	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens cannot be negative")
	}

	if err := c.Search.Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return nil
}

// Validate checks the search section. API keys are checked when the backend
// is opened because they may still come from flags or the environment.
func (s *SearchConfig) Validate() error {
	switch s.Backend {
	case BackendDuckDuckGo, BackendBrave:
	case BackendTavily:
		if s.Depth != "" && s.Depth != "basic" && s.Depth != "advanced" {
			return fmt.Errorf("unsupported tavily depth: %s (use 'basic' or 'advanced')", s.Depth)
		}
	case BackendMCP:
		if s.MCP.Tool == "" {
			return fmt.Errorf("mcp.tool is required")
		}
		if err := s.MCP.Server.Validate(); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
	case "":
		return fmt.Errorf("backend is required")
	default:
		return fmt.Errorf("unsupported backend: %s", s.Backend)
	}

	if s.MaxResults < 0 {
		return fmt.Errorf("max_results cannot be negative")
	}

	return nil
}

// Validate checks a single server config
func (s *MCPServerConfig) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	for _, ch := range s.Name {
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '-') {
			return fmt.Errorf("server name '%s' contains invalid character '%c' (only alphanumeric, underscore, and hyphen allowed)", s.Name, ch)
		}
	}

	if s.Transport == "" {
		return fmt.Errorf("transport is required")
	}

	if s.Transport != "stdio" {
		return fmt.Errorf("unsupported transport: %s (only 'stdio' is supported)", s.Transport)
	}

	if s.Command == "" {
		return fmt.Errorf("command is required")
	}

	return nil
}
