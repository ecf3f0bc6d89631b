package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Bitlatte/folio/internal/model"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var upper = cases.Upper(language.Und)

// Title upper-cases the first character of s and leaves the rest untouched.
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return upper.String(string(r)) + s[size:]
}

// CategoryRoute is the route of a category page.
func CategoryRoute(categoryDir, key string) string {
	return "/" + categoryDir + "/" + key + "/"
}

// Category builds the manifest of one category directory. It returns nil
// when the directory has no images directory or no images in it. Under the
// Strict policy a background conflict is returned as an error.
func (l *Loader) Category(key string, policy Policy) (*model.CategoryManifest, error) {
	dir := l.CategoryPath(key)
	imgDir := path.Join(dir, imagesDir)
	if !isDir(l.fsys, imgDir) {
		return nil, nil
	}

	images := l.Images(imgDir)
	if len(images) == 0 {
		l.logger.Debug("Skipping category without images", zap.String("category", key))
		return nil, nil
	}

	bg, _, err := l.Background(dir, key, policy)
	if err != nil {
		return nil, err
	}

	return &model.CategoryManifest{
		Key:         key,
		Title:       Title(key),
		Subtitle:    l.Subtitle(dir, key),
		CustomTitle: l.CustomTitle(dir),
		Images:      images,
		Links:       l.Links(imgDir),
		Background:  bg,
	}, nil
}

// Categories walks the category root one level deep and returns the
// manifests sorted by key.
func (l *Loader) Categories(policy Policy) ([]*model.CategoryManifest, error) {
	entries, err := fs.ReadDir(l.fsys, l.opts.CategoryDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read category directory '%s': %w", l.opts.CategoryDir, err)
	}

	var categories []*model.CategoryManifest
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		c, err := l.Category(e.Name(), policy)
		if err != nil {
			return nil, err
		}
		if c != nil {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Key < categories[j].Key })
	return categories, nil
}

// Feature reads the feature folder, or returns nil when it does not exist.
func (l *Loader) Feature() *model.FeatureManifest {
	dir := l.opts.FeatureDir
	if dir == "" || !isDir(l.fsys, dir) {
		return nil
	}
	subtitle, ok := l.readOptional(path.Join(dir, subtitleFile))
	if !ok {
		subtitle = DefaultFeatureSubtitle
	}
	return &model.FeatureManifest{
		Key:      dir,
		Subtitle: subtitle,
		Images:   l.Images(path.Join(dir, imagesDir)),
		Videos:   l.Videos(dir),
	}
}

// Discover runs a full discovery pass and returns the resulting site.
func (l *Loader) Discover(policy Policy) (*model.Site, error) {
	categories, err := l.Categories(policy)
	if err != nil {
		return nil, err
	}

	site := &model.Site{
		Pages:      make(map[string]*model.ContentNode),
		Categories: categories,
		Feature:    l.Feature(),
	}

	if err := l.discoverPages(site); err != nil {
		return nil, err
	}
	for _, c := range categories {
		if err := l.addCategoryPage(site, c); err != nil {
			return nil, err
		}
	}

	l.logger.Info("Discovery finished",
		zap.Int("pages", len(site.Pages)),
		zap.Int("categories", len(site.Categories)),
		zap.Stringer("policy", policy))
	return site, nil
}

// discoverPages collects the standalone pages of the tree.
func (l *Loader) discoverPages(site *model.Site) error {
	return fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("error accessing path '%s' during discovery: %w", p, err)
		}

		name := d.Name()
		if d.IsDir() {
			if p == "." {
				return nil
			}
			if name == imagesDir || name == backgroundDir || strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}

		if p == l.opts.Layout {
			return nil
		}
		ext := path.Ext(name)
		if ext != ".html" && ext != ".md" {
			return nil
		}

		dir := path.Dir(p)
		stem := strings.TrimSuffix(name, ext)
		var route string
		switch {
		case dir == "." && stem == "index":
			route = "/"
		case dir == ".":
			route = "/" + stem + "/"
		case dir == l.opts.CategoryDir && name == indexFile:
			route = "/" + dir + "/"
		case dir == l.opts.CategoryDir || strings.HasPrefix(dir, l.opts.CategoryDir+"/"):
			// category fragments are attached to manifests
			return nil
		default:
			route = "/" + dir + "/"
		}

		if _, exists := site.Pages[route]; exists {
			l.logger.Warn("Duplicate page fragment ignored", zap.String("route", route), zap.String("file", p))
			return nil
		}

		node, err := l.loadNode(p, route, stem)
		if err != nil {
			return err
		}
		site.Pages[route] = node
		return nil
	})
}

func (l *Loader) loadNode(p, route, stem string) (*model.ContentNode, error) {
	body, err := readRequired(l.fsys, p, "page fragment")
	if err != nil {
		return nil, err
	}

	title := Title(stem)
	switch {
	case route == "/":
		title = "Home"
	case p == path.Join(l.opts.CategoryDir, indexFile):
		title = Title(l.opts.CategoryDir)
	}

	if path.Ext(p) == ".md" {
		mdTitle, html, err := l.markdown.Convert([]byte(body))
		if err != nil {
			return nil, fmt.Errorf("page fragment '%s': %w", p, err)
		}
		if mdTitle != "" {
			title = mdTitle
		}
		body = html
	}

	return &model.ContentNode{
		Route: route,
		Title: title,
		Body:  body,
		Kind:  model.KindStandalone,
		Dir:   path.Dir(p),
	}, nil
}

// categoryFragment finds the page body of a category.
func (l *Loader) categoryFragment(key string) (string, bool) {
	dir := l.CategoryPath(key)
	candidates := []string{
		path.Join(dir, key+".html"),
		path.Join(dir, indexFile),
		path.Join(l.opts.CategoryDir, key+".html"),
		path.Join(l.opts.CategoryDir, sharedCategory),
	}
	for _, c := range candidates {
		if info, err := fs.Stat(l.fsys, c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

func (l *Loader) addCategoryPage(site *model.Site, c *model.CategoryManifest) error {
	fragment, ok := l.categoryFragment(c.Key)
	if !ok {
		l.logger.Warn("Category has no page fragment", zap.String("category", c.Key))
		return nil
	}
	body, err := readRequired(l.fsys, fragment, "page fragment")
	if err != nil {
		return err
	}
	route := CategoryRoute(l.opts.CategoryDir, c.Key)
	site.Pages[route] = &model.ContentNode{
		Route:       route,
		Title:       c.Title,
		Body:        body,
		Kind:        model.KindCategory,
		CategoryKey: c.Key,
		Dir:         l.CategoryPath(c.Key),
	}
	return nil
}
