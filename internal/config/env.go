package config

import (
	"os"
	"regexp"
)

// Matches ${VAR} and ${VAR:-fallback}.
var envVarRegex = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

func substituteEnvVars(content []byte) []byte {
	return envVarRegex.ReplaceAllFunc(content, func(match []byte) []byte {
		loc := envVarRegex.FindSubmatchIndex(match)
		varName := string(match[loc[2]:loc[3]])
		if value, exists := os.LookupEnv(varName); exists {
			return []byte(value)
		}
		if loc[6] >= 0 {
			return match[loc[6]:loc[7]]
		}
		return match
	})
}
