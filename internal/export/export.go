// Package export pre-renders every page of the content tree into a static
// file tree hosted under a project sub-path.
package export

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/model"
	"github.com/Bitlatte/folio/internal/render"
	"go.uber.org/zap"
)

type Options struct {
	OutputDir   string
	CategoryDir string
	// StaticFS is copied to OutputDir/StaticDir when set.
	StaticFS  fs.FS
	StaticDir string
	// Project is the deployment sub-path segment.
	Project    string
	Revision   string
	Stylesheet string
	// Clean removes OutputDir before writing.
	Clean bool
}

// Result summarises a finished export.
type Result struct {
	Pages        []string
	AssetsCopied int
	AssetsFailed int
	Findings     []Finding
}

// Exporter is the export driver. Runs are sequential: one page, one file at
// a time.
type Exporter struct {
	loader *content.Loader
	opts   Options
	logger *zap.Logger
}

func New(loader *content.Loader, opts Options, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{loader: loader, opts: opts, logger: logger}
}

// Run discovers the site under the strict background policy and writes every
// page. The first fatal error aborts the run; files written before it are
// left in place.
func (e *Exporter) Run() (*Result, error) {
	site, err := e.loader.Discover(content.Strict)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}
	layout, err := e.loader.Layout()
	if err != nil {
		return nil, err
	}

	if err := e.prepareOutput(); err != nil {
		return nil, err
	}
	if e.opts.StaticFS != nil {
		dst := filepath.Join(e.opts.OutputDir, filepath.FromSlash(e.opts.StaticDir))
		if err := copyTree(e.opts.StaticFS, dst); err != nil {
			return nil, fmt.Errorf("failed to copy static assets: %w", err)
		}
		e.logger.Info("Static assets copied", zap.String("dest", dst))
	}

	renderer, err := render.NewRenderer(layout, site, e.opts.CategoryDir, e.rewriter(site))
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, c := range site.Categories {
		e.copyAssets(result, e.loader.CategoryAssetFiles(c.Key))
	}

	for _, route := range site.Routes() {
		node := site.Pages[route]

		var category *model.CategoryManifest
		if node.Kind == model.KindCategory {
			category = site.Category(node.CategoryKey)
		}

		out, err := e.writePage(route, renderer.Page(node, category))
		if err != nil {
			return nil, err
		}
		result.Pages = append(result.Pages, out)
		e.logger.Info("Generated page", zap.String("route", route), zap.String("file", out))
	}

	if site.Feature != nil {
		e.copyAssets(result, e.loader.FeatureAssetFiles())
	}

	notFound := filepath.Join(e.opts.OutputDir, "404.html")
	if err := os.WriteFile(notFound, []byte(renderer.NotFound()), 0644); err != nil {
		return nil, fmt.Errorf("failed to write page '%s': %w", notFound, err)
	}
	result.Pages = append(result.Pages, notFound)

	if e.opts.Project != "" {
		result.Findings = e.audit(result.Pages)
	}

	e.logger.Info("Export finished",
		zap.Int("pages", len(result.Pages)),
		zap.Int("assets_copied", result.AssetsCopied),
		zap.Int("assets_failed", result.AssetsFailed),
		zap.Int("audit_findings", len(result.Findings)))
	return result, nil
}

// rewriter enumerates every navigation target and asset root of site.
func (e *Exporter) rewriter(site *model.Site) render.Rewriter {
	roots := []string{"/" + e.opts.CategoryDir + "/"}
	if site.Feature != nil {
		roots = append(roots, "/"+site.Feature.Key+"/")
	}
	if e.opts.StaticFS != nil {
		roots = append(roots, "/"+strings.Trim(e.opts.StaticDir, "/")+"/")
	}

	return render.ForMode(model.Export, render.ExportOptions{
		Project:    e.opts.Project,
		Revision:   e.opts.Revision,
		Stylesheet: e.opts.Stylesheet,
		Routes:     site.Routes(),
		AssetRoots: roots,
	})
}

func (e *Exporter) prepareOutput() error {
	if e.opts.Clean {
		e.logger.Info("Cleaning output directory", zap.String("dir", e.opts.OutputDir))
		if err := os.RemoveAll(e.opts.OutputDir); err != nil {
			return fmt.Errorf("failed to remove output directory '%s': %w", e.opts.OutputDir, err)
		}
	}
	if err := os.MkdirAll(e.opts.OutputDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", e.opts.OutputDir, err)
	}
	return nil
}

// copyAssets copies content files into the same relative location of the
// output tree. Failures are logged and counted, never fatal.
func (e *Exporter) copyAssets(result *Result, files []string) {
	for _, p := range files {
		dst := filepath.Join(e.opts.OutputDir, filepath.FromSlash(p))
		if err := copyFile(e.loader.FS(), p, dst); err != nil {
			result.AssetsFailed++
			e.logger.Warn("Failed to copy asset", zap.String("file", p), zap.Error(err))
			continue
		}
		result.AssetsCopied++
		e.logger.Debug("Copied asset", zap.String("file", p))
	}
}

func (e *Exporter) writePage(route, html string) (string, error) {
	dir := filepath.Join(e.opts.OutputDir, filepath.FromSlash(strings.Trim(route, "/")))
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create directory '%s' for route '%s': %w", dir, route, err)
	}
	out := filepath.Join(dir, "index.html")
	if err := os.WriteFile(out, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("failed to write page '%s': %w", out, err)
	}
	return out, nil
}

func (e *Exporter) audit(pages []string) []Finding {
	prefix := "/" + e.opts.Project
	var findings []Finding
	for _, page := range pages {
		found, err := auditPage(page, prefix)
		if err != nil {
			e.logger.Warn("Failed to audit page", zap.String("file", page), zap.Error(err))
			continue
		}
		for _, f := range found {
			e.logger.Warn("Unprefixed root path in exported page",
				zap.String("file", f.Page), zap.String("attr", f.Attr), zap.String("value", f.Value))
		}
		findings = append(findings, found...)
	}
	return findings
}
