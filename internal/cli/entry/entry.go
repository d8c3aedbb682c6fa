// Package entry wires argument parsing, logging bootstrap, and TUI
// startup for the workbench binary.
package entry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/muesli/termenv"
	"github.com/urfave/cli/v3"

	"github.com/steferic/workbench/internal/audio"
	"github.com/steferic/workbench/internal/identity"
	"github.com/steferic/workbench/internal/logging"
	"github.com/steferic/workbench/internal/registry"
	"github.com/steferic/workbench/internal/tui"
	"github.com/steferic/workbench/internal/workspace"
)

// Run starts the CLI and returns the process exit code.
func Run(args []string, version string) int {
	appName := identity.CLIName

	logCfg := logging.Config{}
	if configPath, err := DefaultConfigPath(); err == nil && configPath != "" {
		if cfg, err := LoadConfig(configPath); err == nil && cfg != nil {
			logCfg = cfg.Logging
		} else if err != nil {
			fmt.Fprintf(os.Stderr, "%s: load config: %v\n", appName, err)
			return 1
		}
	}
	closeLogger, err := logging.Init(logCfg, logging.InitOptions{
		App:     identity.AppSlug,
		Version: version,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	cmd := buildCommand(version)
	if err := cmd.Run(context.Background(), args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	return 0
}

func buildCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    identity.CLIName,
		Usage:   "control surface for AI-agent terminal sessions",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "workspace",
				Usage: "open with this workspace `PATH` selected (added if unknown)",
			},
		},
		Commands: []*cli.Command{
			addCommand(),
			listCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runTUI(cmd.String("workspace"))
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "register a directory as a workspace",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "display `NAME` (defaults to the directory name)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return cli.Exit("add: PATH required", 2)
			}
			store, err := loadStore()
			if err != nil {
				return err
			}
			ws, err := store.Add(path, cmd.String("name"))
			if err != nil {
				return err
			}
			if err := store.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.Root().Writer, "added %s (%s)\n", ws.Name, ws.Path)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "list registered workspaces",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := loadStore()
			if err != nil {
				return err
			}
			workspaces := store.List()
			if len(workspaces) == 0 {
				fmt.Fprintln(cmd.Root().Writer, "no workspaces; run: workbench add PATH")
				return nil
			}
			for _, ws := range workspaces {
				status := ""
				if ws.Status == workspace.StatusPaused {
					status = " [paused]"
				}
				fmt.Fprintf(cmd.Root().Writer, "%s\t%s\t%s%s\n", ws.Name, ws.Path, ws.LastActiveDisplay(), status)
			}
			return nil
		},
	}
}

func loadStore() (*workspace.Store, error) {
	path, err := workspace.DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return workspace.Load(path)
}

func runTUI(workspacePath string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	initialID := ""
	if workspacePath != "" {
		ws, err := store.FindByPath(workspacePath)
		if errors.Is(err, workspace.ErrNotFound) {
			added, addErr := store.Add(workspacePath, "")
			if addErr != nil {
				return addErr
			}
			if saveErr := store.Save(); saveErr != nil {
				return saveErr
			}
			initialID = added.ID
		} else if err != nil {
			return err
		} else {
			initialID = ws.ID
		}
	}

	reg := registry.New(80, 24)

	noise, err := audio.NewPlayer()
	if err != nil {
		slog.Warn("entry.audio.unavailable", "error", err)
		noise = nil
	}

	return tui.Run(store, reg, noise, tui.Options{
		Profile:          termenv.ColorProfile(),
		InitialWorkspace: initialID,
	})
}
