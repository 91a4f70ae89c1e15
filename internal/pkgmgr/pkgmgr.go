package pkgmgr

import (
	"fmt"

	"github.com/lavroovich/aviator-winelink/internal/execx"
)

type Manager string

const (
	Apt    Manager = "apt-get"
	Dnf    Manager = "dnf"
	Yum    Manager = "yum"
	Pacman Manager = "pacman"
	Zypper Manager = "zypper"
)

// preference order: first binary found on PATH wins
var probeOrder = []Manager{Apt, Dnf, Yum, Pacman, Zypper}

func Detect(runner execx.Runner) (Manager, error) {
	for _, m := range probeOrder {
		if _, err := runner.LookPath(string(m)); err == nil {
			return m, nil
		}
	}
	return "", fmt.Errorf("no supported package manager found (tried apt-get, dnf, yum, pacman, zypper)")
}

// Packages returns the system dependency set for this manager:
// the application runtime, the reverse proxy, version control, and a
// compiler toolchain for native wheels.
func (m Manager) Packages() []string {
	switch m {
	case Apt:
		return []string{"python3", "python3-venv", "python3-pip", "nginx", "git", "build-essential"}
	case Pacman:
		return []string{"python", "python-pip", "nginx", "git", "base-devel"}
	default:
		return []string{"python3", "python3-pip", "nginx", "git", "gcc", "make"}
	}
}

// Install runs the manager's non-interactive install invocation for
// the fixed dependency set. Already-installed packages are a no-op at
// the tool level; a failing tool propagates its exit status.
func (m Manager) Install(runner execx.Runner) error {
	pkgs := m.Packages()

	switch m {
	case Apt:
		if err := runner.Run("env", "DEBIAN_FRONTEND=noninteractive", "apt-get", "update"); err != nil {
			return fmt.Errorf("failed to update package index: %w", err)
		}
		args := append([]string{"DEBIAN_FRONTEND=noninteractive", "apt-get", "install", "-y"}, pkgs...)
		if err := runner.Run("env", args...); err != nil {
			return fmt.Errorf("failed to install system packages: %w", err)
		}
		return nil
	case Dnf, Yum:
		args := append([]string{"install", "-y"}, pkgs...)
		if err := runner.Run(string(m), args...); err != nil {
			return fmt.Errorf("failed to install system packages: %w", err)
		}
		return nil
	case Pacman:
		args := append([]string{"-S", "--noconfirm", "--needed"}, pkgs...)
		if err := runner.Run("pacman", args...); err != nil {
			return fmt.Errorf("failed to install system packages: %w", err)
		}
		return nil
	case Zypper:
		args := append([]string{"--non-interactive", "install"}, pkgs...)
		if err := runner.Run("zypper", args...); err != nil {
			return fmt.Errorf("failed to install system packages: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unknown package manager %q", string(m))
}
