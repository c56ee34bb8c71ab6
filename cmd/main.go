package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/richard-senior/barchart/internal/config"
	"github.com/richard-senior/barchart/internal/logger"
	"github.com/richard-senior/barchart/internal/server"
)

var configPath string

// flags mirror the config file keys; only the ones given on the command
// line override it
var overrides = config.Config{}

var rootCmd = &cobra.Command{
	Use:   "barchart",
	Short: "Serve a bar chart of employee ages",
	Long: `barchart reads a CSV (or .xlsx) file of employees on every request to /
and renders a Plotly bar chart of age by name, colored by gender.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "configuration file (default "+config.DefaultFile+" if present)")
	f.StringVar(&overrides.ServerHost, "host", "", "listen host")
	f.IntVarP(&overrides.ServerPort, "port", "p", 0, "listen port")
	f.StringVarP(&overrides.DataFile, "data", "d", "", "employee data file")
	f.StringVar(&overrides.TemplateDir, "templates", "", "directory of HTML templates to use instead of the built-in ones")
	f.StringVar(&overrides.Template, "template", "", "template to render")
	f.BoolVar(&overrides.Debug, "debug", false, "development logging and template auto-reload")
	f.StringVar(&overrides.LogLevel, "log-level", "", "debug, info, warn or error")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logger.ParseLevel(cfg.LogLevel)
	logger.Init(level, cfg.Debug)
	defer logger.Sync()

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.ServerHost = overrides.ServerHost
	}
	if flags.Changed("port") {
		cfg.ServerPort = overrides.ServerPort
	}
	if flags.Changed("data") {
		cfg.DataFile = overrides.DataFile
	}
	if flags.Changed("templates") {
		cfg.TemplateDir = overrides.TemplateDir
	}
	if flags.Changed("template") {
		cfg.Template = overrides.Template
	}
	if flags.Changed("debug") {
		cfg.Debug = overrides.Debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = overrides.LogLevel
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
