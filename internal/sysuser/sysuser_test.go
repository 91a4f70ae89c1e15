package sysuser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lavroovich/aviator-winelink/internal/execx/execxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAccount_CreatesWhenAbsent(t *testing.T) {
	// no getent outputs configured: every lookup misses
	runner := &execxtest.FakeRunner{}

	warning, err := NewProvisioner(runner).EnsureAccount("winelink", "winelink")
	require.NoError(t, err)
	assert.Empty(t, warning)

	lines := runner.CommandLines()
	assert.Contains(t, lines, "groupadd --system winelink")
	assert.Contains(t, lines, "useradd --system --gid winelink --no-create-home --shell /usr/sbin/nologin winelink")
	assert.Contains(t, lines, "usermod -aG winelink winelink")
}

func TestEnsureAccount_SkipsExisting(t *testing.T) {
	runner := &execxtest.FakeRunner{
		Outputs: map[string]string{
			"getent passwd winelink": "winelink:x:998:998::/opt/winelink:/usr/sbin/nologin",
			"getent group winelink":  "winelink:x:998:",
		},
	}

	warning, err := NewProvisioner(runner).EnsureAccount("winelink", "winelink")
	require.NoError(t, err)
	assert.Empty(t, warning)

	for _, line := range runner.CommandLines() {
		assert.False(t, strings.HasPrefix(line, "groupadd"), "group already exists")
		assert.False(t, strings.HasPrefix(line, "useradd"), "user already exists")
	}
	assert.Contains(t, runner.CommandLines(), "usermod -aG winelink winelink")
}

func TestEnsureAccount_MembershipFailureIsWarning(t *testing.T) {
	runner := &execxtest.FakeRunner{
		Outputs: map[string]string{
			"getent passwd winelink": "winelink:x:998:998::/opt/winelink:/usr/sbin/nologin",
			"getent group winelink":  "winelink:x:998:",
		},
		RunErr: func(name string, args []string) error {
			if name == "usermod" {
				return fmt.Errorf("exit status 6")
			}
			return nil
		},
	}

	warning, err := NewProvisioner(runner).EnsureAccount("winelink", "winelink")
	require.NoError(t, err, "membership failure must not abort the run")
	assert.Contains(t, warning, "could not add winelink to group winelink")
}

func TestEnsureAccount_NoUseradd(t *testing.T) {
	runner := &execxtest.FakeRunner{Paths: map[string]string{"getent": "/usr/bin/getent"}}

	_, err := NewProvisioner(runner).EnsureAccount("winelink", "winelink")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "useradd not found")
}

func TestExists(t *testing.T) {
	runner := &execxtest.FakeRunner{
		Outputs: map[string]string{
			"getent passwd winelink": "winelink:x:998:998::/opt/winelink:/usr/sbin/nologin",
		},
	}

	p := NewProvisioner(runner)
	assert.False(t, p.Exists("winelink", "winelink"), "group lookup misses")

	runner.Outputs["getent group winelink"] = "winelink:x:998:"
	assert.True(t, p.Exists("winelink", "winelink"))
}
