package sysuser

import (
	"fmt"

	"github.com/lavroovich/aviator-winelink/internal/execx"
)

type Provisioner struct {
	runner execx.Runner
}

func NewProvisioner(runner execx.Runner) *Provisioner {
	return &Provisioner{runner: runner}
}

func (p *Provisioner) userExists(name string) bool {
	_, err := p.runner.Output("getent", "passwd", name)
	return err == nil
}

func (p *Provisioner) groupExists(name string) bool {
	_, err := p.runner.Output("getent", "group", name)
	return err == nil
}

// EnsureAccount creates the service group and non-login system user
// if absent, then ensures group membership. Safe to call when both
// already exist. A failed membership add comes back as a warning
// rather than an error: membership may already be satisfied in a way
// the tools do not report cleanly, but the operator should see it.
func (p *Provisioner) EnsureAccount(user, group string) (warning string, err error) {
	if _, err := p.runner.LookPath("useradd"); err != nil {
		return "", fmt.Errorf("useradd not found - cannot create service accounts on this host")
	}

	if !p.groupExists(group) {
		if err := p.runner.Run("groupadd", "--system", group); err != nil {
			return "", fmt.Errorf("failed to create group %s: %w", group, err)
		}
	}

	if !p.userExists(user) {
		if err := p.runner.Run("useradd", "--system", "--gid", group,
			"--no-create-home", "--shell", "/usr/sbin/nologin", user); err != nil {
			return "", fmt.Errorf("failed to create user %s: %w", user, err)
		}
	}

	if err := p.runner.Run("usermod", "-aG", group, user); err != nil {
		return fmt.Sprintf("could not add %s to group %s: %v", user, group, err), nil
	}

	return "", nil
}

// Exists reports whether both the user and the group are present.
func (p *Provisioner) Exists(user, group string) bool {
	return p.userExists(user) && p.groupExists(group)
}
