package helper

import (
	"os"
	"strings"

	"github.com/yaoapp/kun/any"
)

// EnvPrefix marks a DSL value read from the environment, e.g. $ENV.NEO4J_HOST
const EnvPrefix = "$ENV."

// EnvString replace $ENV.xxx with the env
func EnvString(value interface{}, defaults ...string) string {
	v, ok := value.(string)
	if !ok || v == "" {
		if len(defaults) > 0 {
			return defaults[0]
		}
		if value == nil {
			return ""
		}
		return any.Of(value).CString()
	}

	if strings.HasPrefix(v, EnvPrefix) {
		v = os.Getenv(strings.TrimPrefix(v, EnvPrefix))
		if v == "" && len(defaults) > 0 {
			return defaults[0]
		}
	}
	return v
}

// EnvInt replace $ENV.xxx with the env and cast to the integer
func EnvInt(value interface{}, defaults ...int) int {
	if v, ok := value.(string); ok && strings.HasPrefix(v, EnvPrefix) {
		v = os.Getenv(strings.TrimPrefix(v, EnvPrefix))
		if v == "" {
			if len(defaults) > 0 {
				return defaults[0]
			}
			return 0
		}
		return any.Of(v).CInt()
	}

	if value == nil || value == "" {
		if len(defaults) > 0 {
			return defaults[0]
		}
		return 0
	}

	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return any.Of(value).CInt()
}
