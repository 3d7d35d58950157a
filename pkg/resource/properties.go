package resource

import (
	"bytes"
	_ "embed"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"
)

//go:embed application.yml
var defaultProperties []byte

var properties *viper.Viper
var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// init loads the embedded application.yml and merges PROPERTIES_FILE_PATH on top when set
func init() {
	properties = viper.New()
	properties.SetConfigType("yml")
	if err := properties.ReadConfig(bytes.NewReader(defaultProperties)); err != nil {
		log.Fatalf("Fail to read embedded properties: %v", err)
	}

	if value, ok := os.LookupEnv("PROPERTIES_FILE_PATH"); ok {
		Init(value)
		return
	}
	resolve()
}

// Init merges the properties found in the YAML file at filepath.
func Init(filepath string) {
	properties.SetConfigFile(filepath)
	properties.SetConfigType("yml")

	if err := properties.MergeInConfig(); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
	resolve()
}

// resolve replaces every ${ENV:default} value with its environment value
func resolve() {
	resolved := make(map[string]any)
	parsePropertiesMap("", properties.AllSettings(), resolved)
	for key, value := range resolved {
		properties.Set(key, value)
	}
}

// parsePropertiesMap reads recursively the YAML tree collecting interpolated strings
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			if resolvedValue, ok := resolveEnvVariable(v); ok {
				result[fullKey] = resolvedValue
			}
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		}
	}
}

// resolveEnvVariable resolves a ${ENV:default} value. ok is false when value is not a placeholder.
func resolveEnvVariable(value string) (string, bool) {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return "", false
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue, true
	}
	return matches[2], true
}

// Set overrides a property at runtime.
func Set(key string, value any) {
	properties.Set(key, value)
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

func GetFloat64(key string) float64 {
	return properties.GetFloat64(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}

// UnmarshalKey decodes the subtree at key into rawVal.
func UnmarshalKey(key string, rawVal any) error {
	return properties.UnmarshalKey(key, rawVal)
}
