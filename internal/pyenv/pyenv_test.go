package pyenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx/execxtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		User:    "winelink",
		Group:   "winelink",
		AppRoot: t.TempDir(),
	}
}

func TestBuild_FreshHost(t *testing.T) {
	cfg := testConfig(t)
	runner := &execxtest.FakeRunner{}

	require.NoError(t, NewBuilder(runner, cfg).Build())

	pip := filepath.Join(cfg.VenvDir(), "bin", "pip")
	lines := runner.CommandLines()
	assert.Equal(t, []string{
		"chown -R winelink:winelink " + cfg.AppRoot,
		"winelink! python3 -m venv " + cfg.VenvDir(),
		"winelink! " + pip + " install --upgrade pip",
		"winelink! " + pip + " install gunicorn",
	}, lines)
}

func TestBuild_ManifestIsOptional(t *testing.T) {
	cfg := testConfig(t)
	runner := &execxtest.FakeRunner{}

	require.NoError(t, NewBuilder(runner, cfg).Build())

	for _, line := range runner.CommandLines() {
		assert.NotContains(t, line, "install -r")
	}
}

func TestBuild_InstallsManifestWhenPresent(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.RequirementsFile(), []byte("flask\n"), 0644))
	runner := &execxtest.FakeRunner{}

	require.NoError(t, NewBuilder(runner, cfg).Build())

	pip := filepath.Join(cfg.VenvDir(), "bin", "pip")
	assert.Contains(t, runner.CommandLines(), "winelink! "+pip+" install -r "+cfg.RequirementsFile())
}

func TestBuild_SkipsExistingVenv(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.VenvDir(), 0755))
	runner := &execxtest.FakeRunner{}

	require.NoError(t, NewBuilder(runner, cfg).Build())

	for _, line := range runner.CommandLines() {
		assert.NotContains(t, line, "-m venv")
	}
}

func TestBuild_RunsAsServiceAccount(t *testing.T) {
	cfg := testConfig(t)
	runner := &execxtest.FakeRunner{}

	require.NoError(t, NewBuilder(runner, cfg).Build())

	for _, call := range runner.Calls {
		if call.Name == "chown" {
			continue
		}
		assert.Equal(t, "winelink", call.User, "%s must run as the service account", call.Name)
	}
}
