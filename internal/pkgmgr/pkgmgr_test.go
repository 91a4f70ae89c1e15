package pkgmgr

import (
	"fmt"
	"testing"

	"github.com/lavroovich/aviator-winelink/internal/execx/execxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_PreferenceOrder(t *testing.T) {
	tests := []struct {
		name  string
		paths map[string]string
		want  Manager
	}{
		{
			"apt wins when everything is present",
			map[string]string{"apt-get": "/usr/bin/apt-get", "dnf": "/usr/bin/dnf", "pacman": "/usr/bin/pacman"},
			Apt,
		},
		{
			"dnf when apt is missing",
			map[string]string{"dnf": "/usr/bin/dnf", "yum": "/usr/bin/yum"},
			Dnf,
		},
		{
			"yum on older rpm hosts",
			map[string]string{"yum": "/usr/bin/yum"},
			Yum,
		},
		{
			"pacman",
			map[string]string{"pacman": "/usr/bin/pacman"},
			Pacman,
		},
		{
			"zypper last",
			map[string]string{"zypper": "/usr/bin/zypper"},
			Zypper,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &execxtest.FakeRunner{Paths: tt.paths}
			manager, err := Detect(runner)
			require.NoError(t, err)
			assert.Equal(t, tt.want, manager)
		})
	}
}

func TestDetect_NoneFound(t *testing.T) {
	runner := &execxtest.FakeRunner{Paths: map[string]string{"ls": "/bin/ls"}}

	_, err := Detect(runner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-get, dnf, yum, pacman, zypper")
	assert.Empty(t, runner.Calls, "detection must not execute anything")
}

func TestInstall_Apt(t *testing.T) {
	runner := &execxtest.FakeRunner{}

	require.NoError(t, Apt.Install(runner))

	lines := runner.CommandLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "env DEBIAN_FRONTEND=noninteractive apt-get update", lines[0])
	assert.Contains(t, lines[1], "env DEBIAN_FRONTEND=noninteractive apt-get install -y")
	assert.Contains(t, lines[1], "python3-venv")
	assert.Contains(t, lines[1], "nginx")
	assert.Contains(t, lines[1], "build-essential")
}

func TestInstall_NonInteractiveFlags(t *testing.T) {
	tests := []struct {
		manager Manager
		want    string
	}{
		{Dnf, "dnf install -y"},
		{Yum, "yum install -y"},
		{Pacman, "pacman -S --noconfirm --needed"},
		{Zypper, "zypper --non-interactive install"},
	}

	for _, tt := range tests {
		t.Run(string(tt.manager), func(t *testing.T) {
			runner := &execxtest.FakeRunner{}
			require.NoError(t, tt.manager.Install(runner))
			require.Len(t, runner.Calls, 1)
			assert.Contains(t, runner.CommandLines()[0], tt.want)
			assert.Contains(t, runner.CommandLines()[0], "nginx")
		})
	}
}

func TestInstall_PropagatesToolFailure(t *testing.T) {
	runner := &execxtest.FakeRunner{
		RunErr: func(name string, args []string) error {
			return fmt.Errorf("exit status 100")
		},
	}

	err := Apt.Install(runner)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 100")
}
