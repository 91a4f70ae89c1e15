package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
	"github.com/lavroovich/aviator-winelink/internal/nginx"
	"github.com/lavroovich/aviator-winelink/internal/systemd"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show service and proxy status",
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] %v", err)))
		os.Exit(1)
	}

	runner := execx.NewSystemRunner()

	fmt.Println(titleStyle.Render("==> " + cfg.ServiceName))
	fmt.Println()

	printActive := func(label, unit string) {
		state, err := runner.Output("systemctl", "is-active", unit)
		if err != nil {
			state = "inactive"
		}
		marker := successStyle.Render("[✓]")
		if state != "active" {
			marker = errorStyle.Render("[✗]")
		}
		fmt.Printf("  %s %s %s\n", marker, labelStyle.Render(label), valueStyle.Render(state))
	}

	printActive("service:", cfg.UnitName())
	printActive("proxy:  ", "nginx")

	fmt.Println()
	fmt.Printf("  %s %s\n", labelStyle.Render("domain: "), valueStyle.Render(cfg.Domain))
	fmt.Printf("  %s %s\n", labelStyle.Render("backend:"), valueStyle.Render(cfg.BindAddr()))

	unitPath := filepath.Join(systemd.NewManager(runner).UnitDir, cfg.UnitName())
	vhostPath := nginx.NewManager(runner).VhostPath(cfg)
	fmt.Println()
	for _, path := range []string{unitPath, vhostPath} {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  %s %s\n", dimStyle.Render("artifact:"), dimStyle.Render(path))
		} else {
			fmt.Printf("  %s %s %s\n", dimStyle.Render("artifact:"), dimStyle.Render(path), warnStyle.Render("(missing)"))
		}
	}
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
