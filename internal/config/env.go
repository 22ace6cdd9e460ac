package config

import "os"

// ExpandEnv replaces ${VAR} and $VAR with environment variables.
// Unset variables expand to the empty string.
// Example: "Bearer ${TAVILY_API_KEY}" → "Bearer tvly-abc123..."
func ExpandEnv(s string) string {
	return os.Expand(s, os.Getenv)
}

// ExpandEnvMap expands all values in a map
func ExpandEnvMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}

	expanded := make(map[string]string, len(m))
	for key, value := range m {
		expanded[key] = ExpandEnv(value)
	}
	return expanded
}
