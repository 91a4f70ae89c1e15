package systemd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
	"github.com/lavroovich/aviator-winelink/internal/utils"
)

const unitTemplate = `[Unit]
Description=gunicorn daemon for {{.Service}}
After=network.target

[Service]
Type=simple
User={{.User}}
Group={{.Group}}
WorkingDirectory={{.WorkingDir}}
ExecStart={{.Gunicorn}} --workers {{.Workers}} --timeout {{.Timeout}} --bind {{.BindAddr}} {{.Entrypoint}}
Restart=on-failure
RestartSec=5s

[Install]
WantedBy=multi-user.target
`

type unitData struct {
	Service    string
	User       string
	Group      string
	WorkingDir string
	Gunicorn   string
	Workers    int
	Timeout    int
	BindAddr   string
	Entrypoint string
}

type Manager struct {
	runner execx.Runner

	// overridable for tests
	UnitDir string
	RunDir  string
}

func NewManager(runner execx.Runner) *Manager {
	return &Manager{
		runner:  runner,
		UnitDir: "/etc/systemd/system",
		RunDir:  "/run/systemd/system",
	}
}

// Available reports whether this host is supervised by systemd.
func (m *Manager) Available() bool {
	if _, err := m.runner.LookPath("systemctl"); err != nil {
		return false
	}
	info, err := os.Stat(m.RunDir)
	return err == nil && info.IsDir()
}

func RenderUnit(cfg *config.Config) (string, error) {
	tmpl, err := template.New("unit").Option("missingkey=error").Parse(unitTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse unit template: %w", err)
	}

	data := unitData{
		Service:    cfg.ServiceName,
		User:       cfg.User,
		Group:      cfg.Group,
		WorkingDir: cfg.AppRoot,
		Gunicorn:   cfg.GunicornPath(),
		Workers:    cfg.Workers,
		Timeout:    cfg.TimeoutSecs,
		BindAddr:   cfg.BindAddr(),
		Entrypoint: cfg.Entrypoint,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render unit: %w", err)
	}
	return buf.String(), nil
}

// InstallUnit regenerates the unit file from config and overwrites
// whatever is there; the unit is always derived, never edited.
func (m *Manager) InstallUnit(cfg *config.Config) (string, error) {
	text, err := RenderUnit(cfg)
	if err != nil {
		return "", err
	}

	path := filepath.Join(m.UnitDir, cfg.UnitName())
	if err := utils.AtomicWriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write unit file %s: %w", path, err)
	}
	return path, nil
}

func (m *Manager) Activate(cfg *config.Config) error {
	if err := m.runner.Run("systemctl", "daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd units: %w", err)
	}
	if err := m.runner.Run("systemctl", "enable", "--now", cfg.UnitName()); err != nil {
		return fmt.Errorf("failed to enable %s: %w", cfg.UnitName(), err)
	}
	return nil
}
