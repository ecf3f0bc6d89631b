package cmd

import (
	"os"
	"path"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/export"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"export"},
	Short:   "Exports the site as static files",
	Long: `The build command discovers every page and category under the content
directory, renders them with the base layout, rewrites root-relative links
under the project sub-path and writes one index.html per route into the
output directory together with the images, backgrounds and static assets.

A category with more than one background image fails the build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(appConfig)
	},
}

func runBuild(cfg config.Config) error {
	loader, err := newLoader(cfg, "")
	if err != nil {
		return err
	}

	opts := export.Options{
		OutputDir:   cfg.OutputDir,
		CategoryDir: cfg.CategoryDir,
		StaticDir:   path.Base(cfg.StaticDir),
		Project:     cfg.Project,
		Revision:    cfg.ResolveRevision(),
		Stylesheet:  cfg.Stylesheet,
		Clean:       cfg.Clean,
	}
	if isDir(cfg.StaticDir) {
		opts.StaticFS = os.DirFS(cfg.StaticDir)
	} else {
		logger.Info("Static assets directory not found, skipping copy", zap.String("dir", cfg.StaticDir))
	}

	logger.Info("Starting export",
		zap.String("content", cfg.ContentDir),
		zap.String("output", cfg.OutputDir),
		zap.String("project", cfg.Project),
		zap.String("revision", opts.Revision))

	result, err := export.New(loader, opts, logger).Run()
	if err != nil {
		return err
	}
	if len(result.Findings) > 0 {
		logger.Warn("Some exported links are not under the project path", zap.Int("count", len(result.Findings)))
	}
	return nil
}

func init() {
	buildCmd.Flags().StringP("output", "o", "docs", "output directory")
	buildCmd.Flags().String("project", "", "project sub-path the site is hosted under")
	buildCmd.Flags().Bool("clean", true, "remove the output directory before writing")
	rootCmd.AddCommand(buildCmd)
}
