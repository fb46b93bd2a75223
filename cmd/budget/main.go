// Command budget is the terminal client for the GoBudget API.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shandysiswandi/gobudget/internal/client/api"
	"github.com/shandysiswandi/gobudget/internal/client/shell"
	"github.com/spf13/pflag"
)

const envPrefix = "BUDGET_"

func main() {
	fs := pflag.NewFlagSet("budget", pflag.ExitOnError)
	envFile := fs.String("env-file", ".env", "optional dotenv file")
	apiURL := fs.String("api-url", "", "API base URL including the /api prefix (env "+envPrefix+"API_URL)")
	timeout := fs.Duration("timeout", 0, "request timeout (env "+envPrefix+"TIMEOUT)")
	noColor := fs.Bool("no-color", false, "disable coloured output")
	_ = fs.Parse(os.Args[1:])

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if *noColor {
		color.Disable()
	}

	k, err := loadConfig(*envFile)
	if err != nil {
		color.Red.Println("failed to load configuration: " + err.Error())
		os.Exit(1)
	}

	cfg := api.Config{
		BaseURL: k.String(envPrefix + "API_URL"),
		Timeout: k.Duration(envPrefix + "TIMEOUT"),
	}
	if *apiURL != "" {
		cfg.BaseURL = *apiURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	client, err := api.New(cfg)
	if err != nil {
		color.Red.Println("failed to create api client: " + err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shell.New(shell.Config{API: client, In: os.Stdin, Out: os.Stdout})
	if err := sh.Run(ctx); err != nil {
		slog.Error("shell stopped", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the optional dotenv file and then the BUDGET_ environment
// variables, which take precedence.
func loadConfig(envPath string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	if _, err := os.Stat(envPath); err == nil {
		if err := k.Load(file.Provider(envPath), dotenv.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", nil), nil); err != nil {
		return nil, err
	}

	return k, nil
}
