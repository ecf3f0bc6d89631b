package model

import "sort"

// Kind distinguishes standalone pages from pages that belong to a category.
type Kind int

const (
	KindStandalone Kind = iota
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	default:
		return "standalone"
	}
}

// RenderMode is fixed for a whole run and selects the path rewriting rules.
type RenderMode int

const (
	Live RenderMode = iota
	Export
)

func (m RenderMode) String() string {
	if m == Export {
		return "export"
	}
	return "live"
}

// AssetRef is a root-relative URL pointing at a served or copied image.
type AssetRef string

// ContentNode represents a single route-addressable page.
type ContentNode struct {
	Route       string
	Title       string
	Body        string
	Kind        Kind
	CategoryKey string
	// Dir is the directory of the source fragment, relative to the content root.
	Dir string
}

// LinkEntry is one "name,url" record of a links file.
type LinkEntry struct {
	Name string
	URL  string
}

// VideoRef is a YouTube video identifier.
type VideoRef string

// CategoryManifest is the resolved summary of one category directory.
type CategoryManifest struct {
	Key         string            `json:"-" yaml:"-"`
	Title       string            `json:"title" yaml:"title"`
	Subtitle    string            `json:"subtitle" yaml:"subtitle"`
	CustomTitle string            `json:"-" yaml:"customTitle"`
	Images      []AssetRef        `json:"images" yaml:"images"`
	Links       map[string]string `json:"links" yaml:"links"`
	Background  AssetRef          `json:"background,omitempty" yaml:"background,omitempty"`
}

// HasBackground reports whether a background image was resolved.
func (c *CategoryManifest) HasBackground() bool {
	return c.Background != ""
}

// FeatureManifest holds the assets of the feature folder (behind the scenes
// images, subtitle and video links).
type FeatureManifest struct {
	Key      string     `yaml:"key"`
	Subtitle string     `yaml:"subtitle"`
	Images   []AssetRef `yaml:"images"`
	Videos   []VideoRef `yaml:"videos"`
}

// Site is the immutable result of one discovery pass.
type Site struct {
	Pages      map[string]*ContentNode
	Categories []*CategoryManifest
	Feature    *FeatureManifest
}

// Category returns the manifest for key, or nil.
func (s *Site) Category(key string) *CategoryManifest {
	for _, c := range s.Categories {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Routes returns page routes in a stable order.
func (s *Site) Routes() []string {
	routes := make([]string, 0, len(s.Pages))
	for r := range s.Pages {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}
