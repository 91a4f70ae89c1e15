package pyenv

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
)

// Builder sets up the isolated runtime environment under the app
// root. Every command runs as the service account, not as root, so
// the venv stays owned by the account that will execute gunicorn.
type Builder struct {
	runner execx.Runner
	cfg    *config.Config
}

func NewBuilder(runner execx.Runner, cfg *config.Config) *Builder {
	return &Builder{runner: runner, cfg: cfg}
}

func (b *Builder) Build() error {
	if err := os.MkdirAll(b.cfg.AppRoot, 0755); err != nil {
		return fmt.Errorf("failed to create app root %s: %w", b.cfg.AppRoot, err)
	}

	owner := fmt.Sprintf("%s:%s", b.cfg.User, b.cfg.Group)
	if err := b.runner.Run("chown", "-R", owner, b.cfg.AppRoot); err != nil {
		return fmt.Errorf("failed to chown %s: %w", b.cfg.AppRoot, err)
	}

	venv := b.cfg.VenvDir()
	if _, err := os.Stat(venv); os.IsNotExist(err) {
		if err := b.runner.RunAs(b.cfg.User, "python3", "-m", "venv", venv); err != nil {
			return fmt.Errorf("failed to create virtualenv: %w", err)
		}
	}

	pip := filepath.Join(venv, "bin", "pip")
	if err := b.runner.RunAs(b.cfg.User, pip, "install", "--upgrade", "pip"); err != nil {
		return fmt.Errorf("failed to upgrade pip: %w", err)
	}

	// the manifest is optional; a missing file is not an error
	if _, err := os.Stat(b.cfg.RequirementsFile()); err == nil {
		if err := b.runner.RunAs(b.cfg.User, pip, "install", "-r", b.cfg.RequirementsFile()); err != nil {
			return fmt.Errorf("failed to install requirements: %w", err)
		}
	}

	if err := b.runner.RunAs(b.cfg.User, pip, "install", "gunicorn"); err != nil {
		return fmt.Errorf("failed to install gunicorn: %w", err)
	}

	return nil
}
