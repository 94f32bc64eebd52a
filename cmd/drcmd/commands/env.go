package commands

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var envKeyRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// parseEnvSpecs turns --env flag values into an environment map. A spec is
// either KEY=VALUE, or a bare KEY that inherits the value from the host
// environment. Later entries override earlier ones.
func parseEnvSpecs(specs []string) (map[string]string, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	env := map[string]string{}
	for _, spec := range specs {
		key, value, hasValue := strings.Cut(spec, "=")
		if !envKeyRegexp.MatchString(key) {
			return nil, fmt.Errorf("invalid environment variable name %q", key)
		}

		if !hasValue {
			hostValue, ok := os.LookupEnv(key)
			if !ok {
				return nil, fmt.Errorf("environment variable %q is not set on the host", key)
			}
			value = hostValue
		}

		env[key] = value
	}

	return env, nil
}
