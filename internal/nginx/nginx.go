package nginx

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

const vhostTemplate = `server {
    listen 80;
    server_name {{.Domain}};

    location /static/ {
        alias {{.StaticDir}}/;
    }

    location / {
        proxy_pass http://{{.BindAddr}};
        proxy_set_header Host $host;
        proxy_set_header X-Real-IP $remote_addr;
        proxy_set_header X-Forwarded-For $proxy_add_x_forwarded_for;
        proxy_set_header X-Forwarded-Proto $scheme;
        proxy_read_timeout {{.Timeout}}s;
    }
}
`

type vhostData struct {
	Domain    string
	StaticDir string
	BindAddr  string
	Timeout   int
}

type Layout string

const (
	LayoutSites Layout = "sites"
	LayoutConfD Layout = "conf.d"
)

type Manager struct {
	runner execx.Runner

	// overridable for tests
	AvailableDir string
	EnabledDir   string
	ConfDir      string
}

func NewManager(runner execx.Runner) *Manager {
	return &Manager{
		runner:       runner,
		AvailableDir: "/etc/nginx/sites-available",
		EnabledDir:   "/etc/nginx/sites-enabled",
		ConfDir:      "/etc/nginx/conf.d",
	}
}

// DetectLayout prefers the Debian sites-available/sites-enabled
// layout; anything else falls back to a flat conf.d drop-in.
func (m *Manager) DetectLayout() Layout {
	if dirExists(m.AvailableDir) {
		return LayoutSites
	}
	return LayoutConfD
}

func (m *Manager) VhostPath(cfg *config.Config) string {
	if m.DetectLayout() == LayoutSites {
		return filepath.Join(m.AvailableDir, cfg.Domain)
	}
	return filepath.Join(m.ConfDir, cfg.Domain+".conf")
}

func RenderVhost(cfg *config.Config) (string, error) {
	tmpl, err := template.New("vhost").Option("missingkey=error").Parse(vhostTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse vhost template: %w", err)
	}

	data := vhostData{
		Domain:    cfg.Domain,
		StaticDir: cfg.StaticDir(),
		BindAddr:  cfg.BindAddr(),
		Timeout:   cfg.TimeoutSecs,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render vhost: %w", err)
	}
	return buf.String(), nil
}

// InstallVhost regenerates the virtual host file and, on the sites
// layout, links it into sites-enabled, dropping the distribution's
// default site if it is still linked.
func (m *Manager) InstallVhost(cfg *config.Config) (string, error) {
	text, err := RenderVhost(cfg)
	if err != nil {
		return "", err
	}

	path := m.VhostPath(cfg)
	if err := utils.AtomicWriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write vhost file %s: %w", path, err)
	}

	if m.DetectLayout() == LayoutSites && dirExists(m.EnabledDir) {
		link := filepath.Join(m.EnabledDir, cfg.Domain)
		_ = os.Remove(link)
		if err := os.Symlink(path, link); err != nil {
			return "", fmt.Errorf("failed to enable vhost: %w", err)
		}
		_ = os.Remove(filepath.Join(m.EnabledDir, "default"))
	}

	return path, nil
}

// Validate runs the proxy's own syntax check. Callers must not reload
// when this fails so the last-known-good configuration stays active.
func (m *Manager) Validate() error {
	return m.runner.Run("nginx", "-t")
}

func (m *Manager) Reload() error {
	if err := m.runner.Run("systemctl", "reload", "nginx"); err != nil {
		return fmt.Errorf("failed to reload nginx: %w", err)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
