package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lavroovich/aviator-winelink/internal/config"
	"github.com/lavroovich/aviator-winelink/internal/execx"
	"github.com/lavroovich/aviator-winelink/internal/nginx"
	"github.com/lavroovich/aviator-winelink/internal/pkgmgr"
	"github.com/lavroovich/aviator-winelink/internal/systemd"
	"github.com/lavroovich/aviator-winelink/internal/sysuser"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check host readiness without changing anything",
	Long:  "Verify the package manager, service supervisor, proxy, runtime, and generated artifacts",
	Run:   runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(titleStyle.Render("==> checking host readiness"))
	fmt.Println()

	runner := execx.NewSystemRunner()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("[error] %v", err)))
		os.Exit(1)
	}

	allGood := true

	allGood = checkPackageManager(runner) && allGood
	allGood = checkSupervisor(runner) && allGood
	allGood = checkProxy(runner) && allGood
	allGood = checkPython(runner) && allGood
	allGood = checkAccount(runner, cfg) && allGood
	allGood = checkArtifacts(runner, cfg) && allGood

	fmt.Println()
	if allGood {
		fmt.Println(successStyle.Render("  [done] all checks passed"))
		fmt.Println()
		fmt.Println(dimStyle.Render("  this host is ready - run 'winelink setup' to provision"))
	} else {
		fmt.Println(errorStyle.Render("  [error] some checks failed"))
		fmt.Println()
		fmt.Println(dimStyle.Render("  fix the issues above before running 'winelink setup'"))
		os.Exit(1)
	}
}

func checkPackageManager(runner execx.Runner) bool {
	fmt.Println(labelStyle.Render("  package manager"))

	manager, err := pkgmgr.Detect(runner)
	if err != nil {
		fmt.Printf("    %s no supported package manager\n", errorStyle.Render("[✗]"))
		fmt.Printf("      %s\n", dimStyle.Render(err.Error()))
		fmt.Println()
		return false
	}

	fmt.Printf("    %s %s detected\n", successStyle.Render("[✓]"), valueStyle.Render(string(manager)))
	fmt.Println()
	return true
}

func checkSupervisor(runner execx.Runner) bool {
	fmt.Println(labelStyle.Render("  service supervisor"))

	if !systemd.NewManager(runner).Available() {
		fmt.Printf("    %s systemd not available\n", errorStyle.Render("[✗]"))
		fmt.Printf("      %s\n", dimStyle.Render("winelink requires systemd to supervise gunicorn"))
		fmt.Println()
		return false
	}

	fmt.Printf("    %s systemd available\n", successStyle.Render("[✓]"))
	fmt.Println()
	return true
}

func checkProxy(runner execx.Runner) bool {
	fmt.Println(labelStyle.Render("  reverse proxy"))

	if _, err := runner.LookPath("nginx"); err != nil {
		fmt.Printf("    %s nginx not installed\n", errorStyle.Render("[!]"))
		fmt.Printf("      %s\n", dimStyle.Render("'winelink setup' will install it"))
		fmt.Println()
		return true
	}

	layout := nginx.NewManager(runner).DetectLayout()
	fmt.Printf("    %s nginx installed\n", successStyle.Render("[✓]"))
	fmt.Printf("      %s %s\n", dimStyle.Render("layout:"), dimStyle.Render(string(layout)))
	fmt.Println()
	return true
}

func checkPython(runner execx.Runner) bool {
	fmt.Println(labelStyle.Render("  runtime"))

	path, err := runner.LookPath("python3")
	if err != nil {
		fmt.Printf("    %s python3 not installed\n", errorStyle.Render("[!]"))
		fmt.Printf("      %s\n", dimStyle.Render("'winelink setup' will install it"))
		fmt.Println()
		return true
	}

	fmt.Printf("    %s python3 found\n", successStyle.Render("[✓]"))
	fmt.Printf("      %s %s\n", dimStyle.Render("path:"), dimStyle.Render(path))
	fmt.Println()
	return true
}

func checkAccount(runner execx.Runner, cfg *config.Config) bool {
	fmt.Println(labelStyle.Render("  service account"))

	if sysuser.NewProvisioner(runner).Exists(cfg.User, cfg.Group) {
		fmt.Printf("    %s %s exists\n", successStyle.Render("[✓]"), valueStyle.Render(cfg.User))
	} else {
		fmt.Printf("    %s %s missing\n", errorStyle.Render("[!]"), valueStyle.Render(cfg.User))
		fmt.Printf("      %s\n", dimStyle.Render("will be created by 'winelink setup'"))
	}

	fmt.Println()
	return true
}

func checkArtifacts(runner execx.Runner, cfg *config.Config) bool {
	fmt.Println(labelStyle.Render("  generated artifacts"))

	unitPath := filepath.Join(systemd.NewManager(runner).UnitDir, cfg.UnitName())
	if _, err := os.Stat(unitPath); err == nil {
		fmt.Printf("    %s %s\n", successStyle.Render("[✓]"), dimStyle.Render(unitPath))
	} else {
		fmt.Printf("    %s %s missing\n", errorStyle.Render("[!]"), dimStyle.Render(cfg.UnitName()))
	}

	vhostPath := nginx.NewManager(runner).VhostPath(cfg)
	if _, err := os.Stat(vhostPath); err == nil {
		fmt.Printf("    %s %s\n", successStyle.Render("[✓]"), dimStyle.Render(vhostPath))
	} else {
		fmt.Printf("    %s vhost for %s missing\n", errorStyle.Render("[!]"), dimStyle.Render(cfg.Domain))
	}

	fmt.Println()
	return true
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
