package cmd

import (
	"context"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally",
	Long: `The serve command discovers the content directory once and renders pages
on request. Category images and metadata are re-read on every request, new
pages and categories need a restart. The content root, the export output and
the static directory are served as plain files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, appConfig)
	},
}

func runServe(ctx context.Context, cfg config.Config) error {
	loader, err := newLoader(cfg, contentMount(cfg))
	if err != nil {
		return err
	}

	mounts := []server.Mount{{Prefix: contentMount(cfg), FS: loader.FS()}}
	if isDir(cfg.OutputDir) {
		mounts = append(mounts, server.Mount{Prefix: "/" + path.Base(cfg.OutputDir), FS: os.DirFS(cfg.OutputDir)})
	}
	if isDir(cfg.StaticDir) {
		mounts = append(mounts, server.Mount{Prefix: cfg.StaticMount(), FS: os.DirFS(cfg.StaticDir)})
	} else {
		logger.Debug("Static assets directory not found, not serving it", zap.String("dir", cfg.StaticDir))
	}

	srv, err := server.New(loader, server.Options{
		CategoryDir: cfg.CategoryDir,
		Mounts:      mounts,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("Press Ctrl+C to stop the server.")
	return srv.ListenAndServe(ctx, cfg.Addr())
}

func init() {
	serveCmd.Flags().IntP("port", "p", 3000, "port to serve the site on")
	serveCmd.Flags().String("host", "127.0.0.1", "host to bind to")
	rootCmd.AddCommand(serveCmd)
}
