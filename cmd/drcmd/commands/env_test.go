package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvSpecs(t *testing.T) {
	t.Setenv("FROM_HOST", "host-value")

	tests := map[string]struct {
		specs  []string
		expEnv map[string]string
		expErr bool
	}{
		"No specs should return a nil map": {
			specs:  nil,
			expEnv: nil,
		},
		"KEY=VALUE should parse": {
			specs:  []string{"PGDATA=/var/lib/db"},
			expEnv: map[string]string{"PGDATA": "/var/lib/db"},
		},
		"An empty value should be kept": {
			specs:  []string{"EMPTY="},
			expEnv: map[string]string{"EMPTY": ""},
		},
		"A value containing equals signs should not be split further": {
			specs:  []string{"DSN=host=a port=5432"},
			expEnv: map[string]string{"DSN": "host=a port=5432"},
		},
		"KEY should inherit from host": {
			specs:  []string{"FROM_HOST"},
			expEnv: map[string]string{"FROM_HOST": "host-value"},
		},
		"Later entries should override earlier ones": {
			specs:  []string{"REGION=one", "REGION=two"},
			expEnv: map[string]string{"REGION": "two"},
		},
		"Missing inherited var should fail": {
			specs:  []string{"DOES_NOT_EXIST"},
			expErr: true,
		},
		"Invalid key should fail": {
			specs:  []string{"1INVALID=value"},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			env, err := parseEnvSpecs(tc.specs)

			if tc.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expEnv, env)
		})
	}
}
