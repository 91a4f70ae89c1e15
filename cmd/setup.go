package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
	"github.com/lavroovich/aviator-winelink/internal/provision"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision this host to run winelink",
	Long: "Install system packages, create the service account, build the\n" +
		"virtualenv, and activate the systemd unit and nginx virtual host",
	Args: cobra.ArbitraryArgs,
	Run:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) {
	if os.Geteuid() != 0 {
		reexecWithSudo()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] %v", err)))
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("==> provisioning host for " + cfg.Domain))
	fmt.Println()

	pipe := provision.New(cfg, execx.NewSystemRunner(), provision.Observer{
		OnStep: func(name string) {
			fmt.Println(progressStyle.Render("  --> " + name + "..."))
		},
		OnWarn: func(msg string) {
			fmt.Println(warnStyle.Render("  [!] " + msg))
		},
	})

	if err := pipe.Run(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] %v", err)))
		// keep the failing tool's exit status visible to callers
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("  [done] %s serving %s on %s",
		cfg.ServiceName, cfg.Domain, cfg.BindAddr())))
}

// reexecWithSudo replaces the current process with a privileged copy
// of itself, preserving environment and arguments. Only returns on
// failure.
func reexecWithSudo() {
	sudoPath, err := exec.LookPath("sudo")
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[error] root privileges required and sudo not found"))
		fmt.Println(dimStyle.Render("  re-run this command as root"))
		os.Exit(1)
	}

	argv := append([]string{"sudo", "-E"}, os.Args...)
	if err := syscall.Exec(sudoPath, argv, os.Environ()); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] failed to re-exec with sudo: %v", err)))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
