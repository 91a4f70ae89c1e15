package execx

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner abstracts shelling out to system tools so the provisioning
// steps can be exercised without touching the host.
type Runner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) (string, error)
	RunAs(user string, name string, args ...string) error
	LookPath(name string) (string, error)
}

// SystemRunner executes commands on the host, streaming stdout and
// stderr so external tool output stays visible to the operator.
type SystemRunner struct{}

func NewSystemRunner() *SystemRunner {
	return &SystemRunner{}
}

func (r *SystemRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (r *SystemRunner) Output(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(output)), nil
}

func (r *SystemRunner) RunAs(user string, name string, args ...string) error {
	sudoArgs := append([]string{"-u", user, "-H", name}, args...)
	return r.Run("sudo", sudoArgs...)
}

func (r *SystemRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
