package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/Bitlatte/folio/internal/content"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const testLayout = `<html><head><title>{{TITLE}}</title>
<style>body { background: linear-gradient(45deg, #ff6b9d, #c44faf, #8b5fbf, #6b73ff); background-size: 400% 400%; animation: gradientShift 15s ease infinite; }</style>
</head><body><nav>{{NAVIGATION_ITEMS}}</nav><main>{{CONTENT}}</main></body></html>`

func createTestFS() fstest.MapFS {
	return fstest.MapFS{
		"base.html":                           {Data: []byte(testLayout)},
		"index.html":                          {Data: []byte(`<h1 id="home">Welcome</h1><script>const all = {{CATEGORIES_JSON}};</script>`)},
		"bio.html":                            {Data: []byte(`<p id="bio">About</p>`)},
		"modeling/headshots/headshots.html":   {Data: []byte(`<script>const images = {{IMAGE_PATHS}};</script><p id="custom">{{CUSTOM_TITLE}}</p>`)},
		"modeling/headshots/images/1.png":     {Data: []byte("png")},
		"modeling/fitness/fitness.html":       {Data: []byte(`<p>fitness</p>`)},
		"modeling/fitness/images/1.jpg":       {Data: []byte("jpg")},
		"modeling/fitness/Background/bg1.png": {Data: []byte("png")},
		"modeling/fitness/Background/bg2.png": {Data: []byte("png")},
		"modeling/editorial/images/e1.png":    {Data: []byte("png")},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	fsys := createTestFS()
	loader := content.NewLoader(fsys, content.Options{
		CategoryDir: "modeling",
		FeatureDir:  "bts",
		Layout:      "base.html",
		AssetPrefix: "/templates",
	}, zap.NewNop())

	s, err := New(loader, Options{
		CategoryDir: "modeling",
		Mounts:      []Mount{{Prefix: "/templates/", FS: fsys}},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	res := rec.Result()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	return res, string(b)
}

func TestServe_Pages(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		target   string
		selector string
		text     string
	}{
		{"/", "#home", "Welcome"},
		{"/bio/", "#bio", "About"},
		{"/bio", "#bio", "About"},
		{"/modeling/headshots/", "#custom", content.DefaultCustomTitle},
	}
	for _, tt := range tests {
		res, body := get(t, h, tt.target)
		if res.StatusCode != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", tt.target, res.StatusCode)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
		if err != nil {
			t.Fatalf("NewDocumentFromReader() error = %v", err)
		}
		if got := doc.Find(tt.selector).Text(); got != tt.text {
			t.Errorf("GET %s %s = %q, want %q", tt.target, tt.selector, got, tt.text)
		}
		if got := res.Header.Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
			t.Errorf("GET %s Cache-Control = %q", tt.target, got)
		}
	}
}

func TestServe_CategoryPage(t *testing.T) {
	h := newTestServer(t).Handler()

	_, body := get(t, h, "/modeling/headshots/")
	if !strings.Contains(body, `const images = ["/templates/modeling/headshots/images/1.png"];`) {
		t.Errorf("headshots page missing image paths: %s", body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewDocumentFromReader() error = %v", err)
	}
	var hrefs []string
	doc.Find("nav a").Each(func(_ int, a *goquery.Selection) {
		hrefs = append(hrefs, a.AttrOr("href", ""))
	})
	if strings.Join(hrefs, " ") != "/modeling/fitness/ /modeling/headshots/" {
		t.Errorf("navigation = %v", hrefs)
	}
}

func TestServe_CategoryWithoutPage(t *testing.T) {
	h := newTestServer(t).Handler()

	_, home := get(t, h, "/")
	if strings.Contains(home, `href="/modeling/editorial/"`) {
		t.Errorf("home page links editorial, which has no page")
	}
	if !strings.Contains(home, "/templates/modeling/editorial/images/e1.png") {
		t.Errorf("home page manifest missing editorial images")
	}

	if res, _ := get(t, h, "/modeling/editorial/"); res.StatusCode != http.StatusNotFound {
		t.Errorf("GET /modeling/editorial/ status = %d, want 404", res.StatusCode)
	}
	if res, _ := get(t, h, "/templates/modeling/editorial/images/e1.png"); res.StatusCode != http.StatusOK {
		t.Errorf("editorial image status = %d, want 200", res.StatusCode)
	}
}

func TestServe_LenientBackground(t *testing.T) {
	h := newTestServer(t).Handler()

	res, body := get(t, h, "/modeling/fitness/")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if !strings.Contains(body, "url('/templates/modeling/fitness/Background/bg1.png')") {
		t.Errorf("fitness page missing background: %s", body)
	}
	if strings.Contains(body, "animation: gradientShift") {
		t.Errorf("fitness page still animates the gradient")
	}
}

func TestServe_NotFound(t *testing.T) {
	h := newTestServer(t).Handler()

	for _, target := range []string{"/modeling/unknown-category/", "/nope/"} {
		res, body := get(t, h, target)
		if res.StatusCode != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", target, res.StatusCode)
		}
		if !strings.Contains(body, "404") {
			t.Errorf("GET %s body missing 404: %s", target, body)
		}
		if strings.Contains(body, "modeling/unknown") {
			t.Errorf("GET %s leaks the request path", target)
		}
	}
}

func TestServe_Assets(t *testing.T) {
	h := newTestServer(t).Handler()

	res, body := get(t, h, "/templates/modeling/headshots/images/1.png")
	if res.StatusCode != http.StatusOK || body != "png" {
		t.Errorf("asset status = %d body = %q", res.StatusCode, body)
	}
}

func TestNormalizeRoute(t *testing.T) {
	for in, want := range map[string]string{
		"":            "/",
		"/":           "/",
		"/bio":        "/bio/",
		"/bio/":       "/bio/",
		"//a/../bio/": "/bio/",
	} {
		if got := NormalizeRoute(in); got != want {
			t.Errorf("NormalizeRoute(%q) = %q, want %q", in, got, want)
		}
	}
}
