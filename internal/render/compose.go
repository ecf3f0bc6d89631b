package render

import (
	"fmt"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
)

// Placeholder tokens understood by Compose.
const (
	TokenTitle          = "{{TITLE}}"
	TokenContent        = "{{CONTENT}}"
	TokenImagePaths     = "{{IMAGE_PATHS}}"
	TokenCustomTitle    = "{{CUSTOM_TITLE}}"
	TokenCategoriesJSON = "{{CATEGORIES_JSON}}"
	TokenYouTubeEmbeds  = "{{YOUTUBE_EMBEDS}}"
	TokenBTSImagesJSON  = "{{BTS_IMAGES_JSON}}"
	TokenBTSSubtitle    = "{{BTS_SUBTITLE}}"
	TokenNavigation     = "{{NAVIGATION_ITEMS}}"
)

// Placeholders lists every token Compose substitutes. Other {{...}} markers
// are left alone.
var Placeholders = []string{
	TokenTitle,
	TokenContent,
	TokenImagePaths,
	TokenCustomTitle,
	TokenCategoriesJSON,
	TokenYouTubeEmbeds,
	TokenBTSImagesJSON,
	TokenBTSSubtitle,
	TokenNavigation,
}

// Declarations swapped when a category has a background image.
const (
	GradientBackground = "background: linear-gradient(45deg, #ff6b9d, #c44faf, #8b5fbf, #6b73ff);"
	GradientSize       = "background-size: 400% 400%;"
	GradientAnimation  = "animation: gradientShift 15s ease infinite;"
)

// Compose substitutes data.Params into the page body, then places the body
// and title into the layout. Unknown or unset placeholders stay verbatim.
func Compose(data model.PageData) string {
	body := substitute(data.Content, data.Params)

	params := make(map[string]string, len(data.Params)+2)
	for k, v := range data.Params {
		params[k] = v
	}
	params[TokenTitle] = data.PageTitle
	params[TokenContent] = body

	page := substitute(data.Layout, params)
	if data.Background != "" {
		page = ApplyBackground(page, data.Background)
	}
	return page
}

// substitute replaces the enumerated placeholders present in params in a
// single pass, so inserted values are never scanned again.
func substitute(s string, params map[string]string) string {
	var pairs []string
	for _, token := range Placeholders {
		if v, ok := params[token]; ok {
			pairs = append(pairs, token, v)
		}
	}
	if len(pairs) == 0 {
		return s
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// ApplyBackground replaces the animated gradient with a static image.
func ApplyBackground(html string, bg model.AssetRef) string {
	return strings.NewReplacer(
		GradientBackground, fmt.Sprintf("background: url('%s') center center/cover no-repeat fixed;", bg),
		GradientSize, "",
		GradientAnimation, "",
	).Replace(html)
}

// NavigationItems renders one link per category.
func NavigationItems(categoryDir string, categories []*model.CategoryManifest) string {
	items := make([]string, 0, len(categories))
	for _, c := range categories {
		items = append(items, fmt.Sprintf(`                    <a href="/%s/%s/">%s</a>`, categoryDir, c.Key, c.Title))
	}
	return strings.Join(items, "\n")
}

// YouTubeEmbeds renders one embedded player per video.
func YouTubeEmbeds(videos []model.VideoRef) string {
	embeds := make([]string, 0, len(videos))
	for _, id := range videos {
		embeds = append(embeds, fmt.Sprintf(`<div class="video-container"><iframe src="https://www.youtube.com/embed/%s" title="YouTube video player" frameborder="0" allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen></iframe></div>`, id))
	}
	return strings.Join(embeds, "\n")
}
