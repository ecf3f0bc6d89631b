package render

import (
	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/model"
)

const (
	NotFoundTitle = "404 - Page Not Found"
	notFoundBody  = `<div style='text-align: center; padding: 50px;'>
                <h1>404 - Page Not Found</h1>
                <p>The page you're looking for doesn't exist.</p>
                <a href="/">Return to Home</a>
             </div>`
)

// Renderer composes the pages of one discovered site. It is read-only after
// construction and safe for concurrent use.
type Renderer struct {
	layout   string
	site     *model.Site
	rewriter Rewriter
	shared   map[string]string
}

// NewRenderer precomputes the values shared by every page of site. Only
// categories with a page are linked from the navigation.
func NewRenderer(layout string, site *model.Site, categoryDir string, rewriter Rewriter) (*Renderer, error) {
	categoriesJSON, err := SerializeCategories(site.Categories)
	if err != nil {
		return nil, err
	}

	var linked []*model.CategoryManifest
	for _, c := range site.Categories {
		if _, ok := site.Pages[content.CategoryRoute(categoryDir, c.Key)]; ok {
			linked = append(linked, c)
		}
	}

	shared := map[string]string{
		TokenNavigation:     NavigationItems(categoryDir, linked),
		TokenCategoriesJSON: categoriesJSON,
		TokenYouTubeEmbeds:  "",
		TokenBTSImagesJSON:  "[]",
		TokenBTSSubtitle:    content.DefaultFeatureSubtitle,
	}
	if f := site.Feature; f != nil {
		shared[TokenYouTubeEmbeds] = YouTubeEmbeds(f.Videos)
		shared[TokenBTSImagesJSON] = AssetArray(f.Images)
		shared[TokenBTSSubtitle] = f.Subtitle
	}

	return &Renderer{
		layout:   layout,
		site:     site,
		rewriter: rewriter,
		shared:   shared,
	}, nil
}

// Site returns the site the renderer was built for.
func (r *Renderer) Site() *model.Site {
	return r.site
}

// Page renders node. category carries the resolved assets of a category
// page and is nil for standalone pages.
func (r *Renderer) Page(node *model.ContentNode, category *model.CategoryManifest) string {
	params := make(map[string]string, len(r.shared)+2)
	for k, v := range r.shared {
		params[k] = v
	}

	data := model.PageData{
		PageTitle: node.Title,
		Content:   node.Body,
		Layout:    r.layout,
		Params:    params,
	}
	if category != nil {
		params[TokenImagePaths] = AssetArray(category.Images)
		params[TokenCustomTitle] = category.CustomTitle
		data.Background = category.Background
	}

	return r.rewriter.Rewrite(Compose(data))
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound() string {
	return r.Page(&model.ContentNode{Title: NotFoundTitle, Body: notFoundBody}, nil)
}
