package cmd

import (
	"fmt"
	"os"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect winelink configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  "Show the configuration after defaults, winelink.toml, .env, and WINELINK_* variables are applied",
	Run:   runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] %v", err)))
		os.Exit(1)
	}

	fmt.Println(titleStyle.Render("==> effective configuration"))
	fmt.Println()

	rows := []struct{ label, value string }{
		{"domain:", cfg.Domain},
		{"service:", cfg.ServiceName},
		{"user:", cfg.User},
		{"group:", cfg.Group},
		{"bind:", cfg.BindAddr()},
		{"workers:", fmt.Sprintf("%d", cfg.Workers)},
		{"timeout:", fmt.Sprintf("%ds", cfg.TimeoutSecs)},
		{"entrypoint:", cfg.Entrypoint},
		{"app root:", cfg.AppRoot},
		{"venv:", cfg.VenvDir()},
		{"manifest:", cfg.RequirementsFile()},
	}
	for _, row := range rows {
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", row.label)), valueStyle.Render(row.value))
	}
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
