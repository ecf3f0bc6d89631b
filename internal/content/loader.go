// Package content discovers pages and categories in a content tree and
// resolves their images and metadata files.
//
// A content tree looks like:
//
//	index.html                      home page
//	bio.html                        standalone page /bio/
//	modeling/index.html             category listing /modeling/
//	modeling/<key>/<key>.html       category page /modeling/<key>/
//	modeling/<key>/images/*.png     category images (required)
//	modeling/<key>/images/Links.txt optional "name,url" lines
//	modeling/<key>/Background/*.jpg optional single background
//	modeling/<key>/subtitle.txt     optional subtitle
//	bts/youtubeLinks.txt            optional feature videos
//
// All paths are slash separated and relative to the [fs.FS] the [Loader] is
// built on.
package content

import (
	"io/fs"
	"path"

	"go.uber.org/zap"
)

const (
	imagesDir      = "images"
	backgroundDir  = "Background"
	subtitleFile   = "subtitle.txt"
	linksFile      = "Links.txt"
	videoLinksFile = "youtubeLinks.txt"
	indexFile      = "index.html"
	sharedCategory = "category.html"
)

// Options configures where a Loader looks for things and how asset URLs are
// built.
type Options struct {
	// CategoryDir is the directory holding one subdirectory per category.
	CategoryDir string
	// FeatureDir is the directory holding the feature assets.
	FeatureDir string
	// Layout is the base layout file, never discovered as a page.
	Layout string
	// AssetPrefix is prepended to every asset URL, e.g. "/templates" when
	// the content root is served under that path.
	AssetPrefix string
}

// Loader reads a content tree. It holds no mutable state and is safe for
// concurrent use.
type Loader struct {
	fsys     fs.FS
	opts     Options
	markdown *Markdown
	logger   *zap.Logger
}

func NewLoader(fsys fs.FS, opts Options, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		fsys:     fsys,
		opts:     opts,
		markdown: NewMarkdown(),
		logger:   logger,
	}
}

// FS returns the underlying content filesystem.
func (l *Loader) FS() fs.FS {
	return l.fsys
}

func (l *Loader) Options() Options {
	return l.opts
}

// Layout reads the base layout. A missing layout is an error.
func (l *Loader) Layout() (string, error) {
	return readRequired(l.fsys, l.opts.Layout, "layout")
}

// CategoryPath returns the content path of a category directory.
func (l *Loader) CategoryPath(key string) string {
	return path.Join(l.opts.CategoryDir, key)
}

// assetURL builds the URL of a file in dir; only the filename is encoded.
func (l *Loader) assetURL(dir, name string) string {
	return l.opts.AssetPrefix + "/" + path.Join(dir, EncodeFilename(name))
}

func isDir(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && info.IsDir()
}
