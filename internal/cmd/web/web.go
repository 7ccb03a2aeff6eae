// Package web parses web service flags and launches the service.
package web

import (
	"context"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/tastebuds/internal/platform/cmd"
	server "github.com/louisbranch/tastebuds/internal/services/web/app"
)

// Config holds web command configuration.
type Config struct {
	Port            int      `env:"TASTEBUDS_WEB_PORT" envDefault:"8080"`
	DBPath          string   `env:"TASTEBUDS_MENU_DB_PATH" envDefault:"tastebuds.db"`
	ShareBaseURL    string   `env:"TASTEBUDS_SHARE_BASE_URL" envDefault:"https://tastebuds.app"`
	AvailabilityURL string   `env:"TASTEBUDS_AVAILABILITY_URL"`
	AllowedOrigins  []string `env:"TASTEBUDS_ALLOWED_ORIGINS" envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The web HTTP server port")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "Path to the menu sqlite database")
	fs.StringVar(&cfg.ShareBaseURL, "share-base-url", cfg.ShareBaseURL, "Base URL for canonical share links")
	fs.StringVar(&cfg.AvailabilityURL, "availability-url", cfg.AvailabilityURL, "Availability service base URL (empty disables lookups)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web HTTP service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(runCtx context.Context) error {
		srv, err := server.NewServer(server.Config{
			HTTPAddr:        fmt.Sprintf(":%d", cfg.Port),
			DBPath:          cfg.DBPath,
			ShareBaseURL:    cfg.ShareBaseURL,
			AvailabilityURL: cfg.AvailabilityURL,
			AllowedOrigins:  cfg.AllowedOrigins,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer srv.Close()

		if err := srv.ListenAndServe(runCtx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
