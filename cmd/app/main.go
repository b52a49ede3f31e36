package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Archis03007/linked-notes-app/internal"
	pkgconfig "github.com/Archis03007/linked-notes-app/pkg/config"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

func loadConfig(cmd *cli.Command) (*internal.Config, string, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(configPath, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, configPath, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
		internal.WithConfigFile(configPath),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(cfg); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "linked-notes",
		Usage:  "Personal note-taking server with backlink-aware notes, checklists, and tags",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serve,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the note tools over MCP stdio",
				Action: serveMCP,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
