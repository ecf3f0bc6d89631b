package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Bitlatte/folio/internal/model"
	"github.com/google/go-cmp/cmp"
)

const testLayout = `<html><head><title>{{TITLE}}</title>
<link rel="stylesheet" href="/static/style.css">
<style>body { background: linear-gradient(45deg, #ff6b9d, #c44faf, #8b5fbf, #6b73ff); background-size: 400% 400%; animation: gradientShift 15s ease infinite; }</style>
</head><body><nav><a href="/">Home</a>
{{NAVIGATION_ITEMS}}
<a href="/bio/">Bio</a></nav>{{CONTENT}}</body></html>`

func testCategories() []*model.CategoryManifest {
	return []*model.CategoryManifest{
		{
			Key:         "fitness",
			Title:       "Fitness",
			Subtitle:    "Editorial \"&\" Beauty\\\nline",
			CustomTitle: "Editorial",
			Images:      []model.AssetRef{"/modeling/fitness/images/1.png", "/modeling/fitness/images/2.png"},
			Links:       map[string]string{"Instagram": "https://instagram.com/x"},
			Background:  "/modeling/fitness/Background/bg.png",
		},
		{
			Key:      "headshots",
			Title:    "Headshots",
			Subtitle: "Professional headshots photography",
			Images:   []model.AssetRef{"/modeling/headshots/images/a%20b.png"},
		},
	}
}

func TestSerializeCategories_RoundTrip(t *testing.T) {
	categories := testCategories()

	out, err := SerializeCategories(categories)
	if err != nil {
		t.Fatalf("SerializeCategories() error = %v", err)
	}
	if strings.ContainsAny(out, "\n\r") {
		t.Errorf("serialized manifest contains line breaks: %q", out)
	}

	var parsed map[string]struct {
		Title      string            `json:"title"`
		Subtitle   string            `json:"subtitle"`
		Images     []string          `json:"images"`
		Links      map[string]string `json:"links"`
		Background *string           `json:"background"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(parsed) != len(categories) {
		t.Fatalf("parsed %d categories, want %d", len(parsed), len(categories))
	}
	for _, c := range categories {
		got, ok := parsed[c.Key]
		if !ok {
			t.Fatalf("missing key %q", c.Key)
		}
		if diff := cmp.Diff(assetStrings(c.Images), got.Images); diff != "" {
			t.Errorf("%s images mismatch (-want +got):\n%s", c.Key, diff)
		}
		wantLinks := c.Links
		if wantLinks == nil {
			wantLinks = map[string]string{}
		}
		if diff := cmp.Diff(wantLinks, got.Links); diff != "" {
			t.Errorf("%s links mismatch (-want +got):\n%s", c.Key, diff)
		}
		if c.HasBackground() != (got.Background != nil) {
			t.Errorf("%s background presence = %v", c.Key, got.Background != nil)
		}
	}
	if got := parsed["fitness"].Subtitle; got != "Editorial \"&\" Beauty\\ line" {
		t.Errorf("subtitle = %q", got)
	}
}

func TestAssetArray(t *testing.T) {
	if got := AssetArray(nil); got != "[]" {
		t.Errorf("AssetArray(nil) = %q", got)
	}
	if got := AssetArray([]model.AssetRef{"/a.png", "/b.png"}); got != `["/a.png","/b.png"]` {
		t.Errorf("AssetArray() = %q", got)
	}
}

func TestCompose(t *testing.T) {
	got := Compose(model.PageData{
		PageTitle: "Bio",
		Content:   "<p>{{BTS_SUBTITLE}}</p>{{UNKNOWN}}{{IMAGE_PATHS}}",
		Layout:    "<title>{{TITLE}}</title>{{CONTENT}}{{NAVIGATION_ITEMS}}",
		Params: map[string]string{
			TokenBTSSubtitle: "Behind {{TITLE}}",
			TokenNavigation:  "<nav/>",
		},
	})
	want := "<title>Bio</title><p>Behind {{TITLE}}</p>{{UNKNOWN}}{{IMAGE_PATHS}}<nav/>"
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestApplyBackground(t *testing.T) {
	page := Compose(model.PageData{
		PageTitle:  "Fitness",
		Layout:     testLayout,
		Background: "/modeling/fitness/Background/bg.png",
	})
	if !strings.Contains(page, "background: url('/modeling/fitness/Background/bg.png') center center/cover no-repeat fixed;") {
		t.Errorf("missing url() background in %q", page)
	}
	for _, decl := range []string{GradientBackground, GradientSize, GradientAnimation} {
		if strings.Contains(page, decl) {
			t.Errorf("page still contains %q", decl)
		}
	}

	plain := Compose(model.PageData{PageTitle: "Headshots", Layout: testLayout})
	for _, decl := range []string{GradientBackground, GradientSize, GradientAnimation} {
		if !strings.Contains(plain, decl) {
			t.Errorf("page without background lost %q", decl)
		}
	}
}

func TestNavigationItems(t *testing.T) {
	got := NavigationItems("modeling", testCategories())
	want := `                    <a href="/modeling/fitness/">Fitness</a>` + "\n" +
		`                    <a href="/modeling/headshots/">Headshots</a>`
	if got != want {
		t.Errorf("NavigationItems() = %q, want %q", got, want)
	}
}

func TestYouTubeEmbeds(t *testing.T) {
	got := YouTubeEmbeds([]model.VideoRef{"abc", "def"})
	if strings.Count(got, "<iframe") != 2 || !strings.Contains(got, "https://www.youtube.com/embed/def") {
		t.Errorf("YouTubeEmbeds() = %q", got)
	}
	if got := YouTubeEmbeds(nil); got != "" {
		t.Errorf("YouTubeEmbeds(nil) = %q", got)
	}
}

func TestExportRewriter(t *testing.T) {
	rw := NewExportRewriter(ExportOptions{
		Project:    "portfolio",
		Revision:   "abc1234",
		Stylesheet: "/static/style.css",
		Routes:     []string{"/", "/bio/", "/modeling/fitness/"},
		AssetRoots: []string{"/modeling/", "/static/"},
	})

	in := `<link rel="stylesheet" href="/static/style.css">` +
		`<a href="/">Home</a><a href="/bio/">Bio</a><a href="/modeling/fitness/">Fitness</a>` +
		`<script>const images = ["/modeling/fitness/images/1.png"]; const bg = '/modeling/x.png';</script>` +
		`<div style="background: url('/modeling/fitness/Background/bg.png')"></div>` +
		`<img src="/static/logo.png"><a href="https://example.com/modeling/">ext</a>`
	want := `<link rel="stylesheet" href="/portfolio/static/style.css?v=abc1234">` +
		`<a href="/portfolio/">Home</a><a href="/portfolio/bio/">Bio</a><a href="/portfolio/modeling/fitness/">Fitness</a>` +
		`<script>const images = ["/portfolio/modeling/fitness/images/1.png"]; const bg = '/portfolio/modeling/x.png';</script>` +
		`<div style="background: url('/portfolio/modeling/fitness/Background/bg.png')"></div>` +
		`<img src="/portfolio/static/logo.png"><a href="https://example.com/modeling/">ext</a>`

	if got := rw.Rewrite(in); got != want {
		t.Errorf("Rewrite() mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestExportRewriter_DevRevision(t *testing.T) {
	rw := NewExportRewriter(ExportOptions{Project: "p", Stylesheet: "/static/style.css"})
	if got := rw.Rewrite(`href="/static/style.css"`); got != `href="/p/static/style.css?v=dev"` {
		t.Errorf("Rewrite() = %q", got)
	}
}

func TestForMode_LiveIsIdentity(t *testing.T) {
	rw := ForMode(model.Live, ExportOptions{Project: "p", Routes: []string{"/"}})
	in := `<a href="/">Home</a>`
	if got := rw.Rewrite(in); got != in {
		t.Errorf("Rewrite() = %q, want unchanged", got)
	}
}

func TestRenderer(t *testing.T) {
	site := &model.Site{
		Categories: testCategories(),
		Pages: map[string]*model.ContentNode{
			"/modeling/headshots/": {Route: "/modeling/headshots/", Kind: model.KindCategory, CategoryKey: "headshots"},
		},
		Feature: &model.FeatureManifest{
			Key:      "bts",
			Subtitle: "On set",
			Images:   []model.AssetRef{"/bts/images/a.png"},
			Videos:   []model.VideoRef{"abc"},
		},
	}
	r, err := NewRenderer(testLayout, site, "modeling", ForMode(model.Live, ExportOptions{}))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	c := site.Categories[0]
	page := r.Page(&model.ContentNode{
		Title: "Fitness",
		Body:  "{{CUSTOM_TITLE}}|{{IMAGE_PATHS}}|{{BTS_SUBTITLE}}|{{BTS_IMAGES_JSON}}",
		Kind:  model.KindCategory,
	}, c)
	for _, want := range []string{
		"<title>Fitness</title>",
		`Editorial|["/modeling/fitness/images/1.png","/modeling/fitness/images/2.png"]|On set|["/bts/images/a.png"]`,
		`<a href="/modeling/headshots/">Headshots</a>`,
		"url('/modeling/fitness/Background/bg.png')",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// fitness has no page of its own
	if strings.Contains(page, `href="/modeling/fitness/"`) {
		t.Errorf("navigation links a category without a page")
	}

	standalone := r.Page(&model.ContentNode{Title: "Bio", Body: "{{CUSTOM_TITLE}}{{YOUTUBE_EMBEDS}}"}, nil)
	if !strings.Contains(standalone, "{{CUSTOM_TITLE}}") || !strings.Contains(standalone, "embed/abc") {
		t.Errorf("standalone page = %q", standalone)
	}

	notFound := r.NotFound()
	if !strings.Contains(notFound, "404") || !strings.Contains(notFound, "<title>"+NotFoundTitle+"</title>") {
		t.Errorf("NotFound() = %q", notFound)
	}
}
