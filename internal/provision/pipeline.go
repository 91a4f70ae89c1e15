package provision

import (
	"fmt"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
	"github.com/lavroovich/aviator-winelink/internal/nginx"
	"github.com/lavroovich/aviator-winelink/internal/pkgmgr"
	"github.com/lavroovich/aviator-winelink/internal/pyenv"
	"github.com/lavroovich/aviator-winelink/internal/systemd"
	"github.com/lavroovich/aviator-winelink/internal/sysuser"
)

// Observer receives pipeline progress for the command layer to style.
type Observer struct {
	OnStep func(name string)
	OnWarn func(msg string)
}

// Pipeline runs the provisioning steps strictly in order. Every step
// is safe to re-run; failure aborts the run with no rollback.
type Pipeline struct {
	cfg    *config.Config
	runner execx.Runner
	obs    Observer

	Systemd *systemd.Manager
	Nginx   *nginx.Manager

	manager pkgmgr.Manager
}

func New(cfg *config.Config, runner execx.Runner, obs Observer) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		runner:  runner,
		obs:     obs,
		Systemd: systemd.NewManager(runner),
		Nginx:   nginx.NewManager(runner),
	}
}

type step struct {
	name string
	run  func() error
}

func (p *Pipeline) steps() []step {
	return []step{
		{"detecting package manager", p.detectManager},
		{"installing system packages", p.installPackages},
		{"checking service supervisor", p.checkSupervisor},
		{"creating service account", p.ensureAccount},
		{"building runtime environment", p.buildRuntime},
		{"installing supervisor unit", p.installUnit},
		{"configuring reverse proxy", p.configureProxy},
	}
}

func (p *Pipeline) Run() error {
	for _, s := range p.steps() {
		if p.obs.OnStep != nil {
			p.obs.OnStep(s.name)
		}
		if err := s.run(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func (p *Pipeline) warn(msg string) {
	if p.obs.OnWarn != nil {
		p.obs.OnWarn(msg)
	}
}

func (p *Pipeline) detectManager() error {
	manager, err := pkgmgr.Detect(p.runner)
	if err != nil {
		return err
	}
	p.manager = manager
	return nil
}

func (p *Pipeline) installPackages() error {
	return p.manager.Install(p.runner)
}

func (p *Pipeline) checkSupervisor() error {
	if !p.Systemd.Available() {
		return fmt.Errorf("systemd not available - this host cannot supervise the service")
	}
	return nil
}

func (p *Pipeline) ensureAccount() error {
	warning, err := sysuser.NewProvisioner(p.runner).EnsureAccount(p.cfg.User, p.cfg.Group)
	if err != nil {
		return err
	}
	if warning != "" {
		p.warn(warning)
	}
	return nil
}

func (p *Pipeline) buildRuntime() error {
	return pyenv.NewBuilder(p.runner, p.cfg).Build()
}

func (p *Pipeline) installUnit() error {
	if _, err := p.Systemd.InstallUnit(p.cfg); err != nil {
		return err
	}
	return p.Systemd.Activate(p.cfg)
}

func (p *Pipeline) configureProxy() error {
	path, err := p.Nginx.InstallVhost(p.cfg)
	if err != nil {
		return err
	}
	if err := p.Nginx.Validate(); err != nil {
		return fmt.Errorf("nginx rejected %s, proxy not reloaded: %w", path, err)
	}
	return p.Nginx.Reload()
}
