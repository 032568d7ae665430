// Package main provides the entry point for GhostCAT.
// GhostCAT is a GTK4 configuration tool for programmable mice. It talks to
// the ghostcatd daemon over D-Bus to switch profiles, resolutions and the
// DPI-shift target.
//
// Features:
//   - One page per profile with live resolution state
//   - Labels for buttons bound to resolution actions
//   - Detection of DPI changes made with the mouse's own buttons
//   - Terminal interface and command-line listing for scripting
//
// Usage:
//
//	ghostcat [options]
//
// Environment:
//
//	ghostcatd must be running on the system bus, or on the session bus
//	when developer_mode is enabled in the configuration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghostcat/ghostcat/cli"
	"github.com/ghostcat/ghostcat/common"
	"github.com/ghostcat/ghostcat/config"
	"github.com/ghostcat/ghostcat/tui"
	"github.com/ghostcat/ghostcat/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	configPath  = flag.String("config", "", "Path to an alternative config file")

	// CLI flags
	listDevices = flag.Bool("list", false, "List devices, profiles and resolutions")
	setActive   = flag.String("set-active", "", "Activate a resolution: DEVICE:PROFILE:RES")
	runTUI      = flag.Bool("tui", false, "Run the terminal interface")
)

func main() {
	flag.Parse()
	os.Exit(run())
}

// run executes the selected mode and returns the process exit code. Every
// deferred cleanup has run by the time it returns.
func run() int {
	if *showHelp {
		cli.PrintHelp()
		return 0
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		return 0
	}

	// Initialize logger with structured logging and file output
	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	cfg := loadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *listDevices || *setActive != "" {
		return runCLI(ctx, cfg)
	}

	if *runTUI {
		if err := tui.Run(ctx, cfg); err != nil {
			if errors.Is(err, common.ErrNotTerminal) {
				fmt.Fprintln(os.Stderr, "Error: --tui needs an interactive terminal.")
			} else {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			return 1
		}
		return 0
	}

	// Start the GTK application (GUI mode)
	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(cfg, appVersion)
	exitCode := app.Run(os.Args[:1])

	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	return exitCode
}

// loadConfig reads the configuration, falling back to defaults when it
// cannot be parsed.
func loadConfig() *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFrom(common.ExpandHome(*configPath))
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		common.LogWarn("Using default configuration: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// runCLI handles command-line interface operations and returns the exit
// code.
func runCLI(ctx context.Context, cfg *config.Config) int {
	cliApp, err := cli.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer cliApp.Close()

	var cliErr error
	switch {
	case *listDevices:
		cliErr = cliApp.ListDevices(ctx)
	case *setActive != "":
		cliErr = cliApp.SetActive(ctx, *setActive)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		return 1
	}
	return 0
}
