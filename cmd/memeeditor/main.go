package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bradbev/memeland/src/asset"
	"github.com/bradbev/memeland/src/config"
	"github.com/bradbev/memeland/src/editor"
	"github.com/bradbev/memeland/src/meme"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var configPath string

	cmd := &cobra.Command{
		Use:           "memeeditor",
		Short:         "Compose a meme from a background, a person and a caption",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFrom(v, configPath)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file (default: ./memeland.yaml or the user config dir)")
	flags.String("content", "", "directory holding the assets/ folder")
	flags.String("out", "", "directory the meme is downloaded to")
	flags.String("log-level", "", "debug, info, warn or error")
	for key, flag := range map[string]string{
		config.KeyContentDir: "content",
		config.KeyOutputDir:  "out",
		config.KeyLogLevel:   "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("binding --%s: %v", flag, err))
		}
	}
	return cmd
}

func run(cfg config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	meme.SetLogger(logger)
	asset.SetLogger(logger)
	editor.SetLogger(logger)

	if err := asset.RegisterFileSystem(os.DirFS(cfg.ContentDir), 0); err != nil {
		return err
	}
	asset.RegisterWritableFileSystem(asset.NewWritableFS(asset.Path(cfg.OutputDir)))
	logger.Info("memeeditor: starting", "content", cfg.ContentDir, "output", cfg.OutputPath())

	game := editor.NewEbitengineWrapper(cfg)
	defer game.Editor.Close()
	return ebiten.RunGame(game)
}
