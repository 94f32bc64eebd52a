package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorops/drcmd/internal/command"
)

func TestBuilderRender(t *testing.T) {
	tests := map[string]struct {
		build     func() command.Command
		expList   []string
		expString string
	}{
		"A single token should render as itself": {
			build:     func() command.Command { return command.New("/usr/bin/ls") },
			expList:   []string{"/usr/bin/ls"},
			expString: "/usr/bin/ls",
		},

		"Tokens should keep insertion order and join with single spaces": {
			build:     func() command.Command { return command.New("/usr/bin/ls").Add("-l", "/tmp") },
			expList:   []string{"/usr/bin/ls", "-l", "/tmp"},
			expString: "/usr/bin/ls -l /tmp",
		},

		"AddPair should append two tokens": {
			build:     func() command.Command { return command.New("/usr/bin/grep").AddPair("--invert-match", "x") },
			expList:   []string{"/usr/bin/grep", "--invert-match", "x"},
			expString: "/usr/bin/grep --invert-match x",
		},

		"AddWithEqual should append a single key=value token": {
			build:     func() command.Command { return command.New("/usr/bin/ssh").AddWithEqual("-oConnectTimeout", "30") },
			expList:   []string{"/usr/bin/ssh", "-oConnectTimeout=30"},
			expString: "/usr/bin/ssh -oConnectTimeout=30",
		},

		"Exports should render as sorted export prefixes": {
			build: func() command.Command {
				return command.New("/usr/bin/env").Export("ZZZ", "1").Export("AAA", "2")
			},
			expList:   []string{"/usr/bin/env"},
			expString: "export AAA=2; export ZZZ=1; /usr/bin/env",
		},

		"Pipe should append the pipe operator and the other command's rendering": {
			build: func() command.Command {
				return command.New("/usr/bin/ps").Add("-A").Pipe(command.New("/usr/bin/grep").Add("sshd"))
			},
			expList:   []string{"/usr/bin/ps", "-A", "|", "/usr/bin/grep sshd"},
			expString: "/usr/bin/ps -A | /usr/bin/grep sshd",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := tc.build()

			assert.Equal(t, tc.expList, cmd.AsList())
			assert.Equal(t, tc.expString, cmd.AsString())
		})
	}
}

func TestBuilderRenderIsDeterministic(t *testing.T) {
	cmd := command.New("/usr/bin/env").
		Export("B", "2").
		Export("A", "1").
		Export("C", "3").
		Add("-i")

	first := cmd.AsString()
	second := cmd.AsString()

	assert.Equal(t, first, second)
	assert.Equal(t, "export A=1; export B=2; export C=3; /usr/bin/env -i", first)
}

func TestBuilderWithoutExportsRendersNoExportKeyword(t *testing.T) {
	cmd := command.New("/usr/bin/ls").Add("-l")

	assert.NotContains(t, cmd.AsString(), "export")
}

func TestBuilderReadsReturnCopies(t *testing.T) {
	cmd := command.New("/usr/bin/ls").Export("KEY", "value")

	tokens := cmd.AsList()
	tokens[0] = "mutated"
	exports := cmd.Exports()
	exports["KEY"] = "mutated"

	assert.Equal(t, []string{"/usr/bin/ls"}, cmd.AsList())
	assert.Equal(t, map[string]string{"KEY": "value"}, cmd.Exports())
}

func TestBuilderLastExportWins(t *testing.T) {
	cmd := command.New("/usr/bin/env").
		Export("KEY", "first").
		Export("KEY", "second")

	require.Equal(t, map[string]string{"KEY": "second"}, cmd.Exports())
	assert.Equal(t, "export KEY=second; /usr/bin/env", cmd.AsString())
}
