package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/smarthydra/hydrasvc/internal/app"
	"github.com/smarthydra/hydrasvc/internal/log"
	"github.com/smarthydra/hydrasvc/internal/settings"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "", "Path to the TOML configuration file (defaults to CONFIG_PATH or config.toml)")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("hydrasvc %s\n", version)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := settings.Load(*cfgFile)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Set up logging
	if err := log.Init(cfg.Logging.Level, *debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Create and run the application
	application := app.New(cfg, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}
