package render

import (
	"sort"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
)

// Rewriter post-processes a composed page.
type Rewriter interface {
	Rewrite(html string) string
}

type liveRewriter struct{}

// Rewrite implements Rewriter. Root paths are served as-is.
func (liveRewriter) Rewrite(html string) string { return html }

// Rule is one literal substring replacement.
type Rule struct {
	From string
	To   string
}

// ExportOptions lists everything the export rewriter needs to enumerate.
type ExportOptions struct {
	// Project is the deployment sub-path segment, e.g. "portfolio".
	Project string
	// Revision is appended to the stylesheet link as ?v=.
	Revision string
	// Stylesheet is the root path of the stylesheet, e.g. "/static/style.css".
	Stylesheet string
	// Routes are the navigation targets, e.g. "/", "/bio/".
	Routes []string
	// AssetRoots are root path prefixes of copied assets, e.g. "/modeling/".
	AssetRoots []string
}

// ExportRewriter prefixes every known root path with the project segment.
type ExportRewriter struct {
	rules    []Rule
	replacer *strings.Replacer
}

// quoteChars open an attribute value, a JS string or a CSS url().
var quoteChars = []string{`"`, `'`, `(`}

func NewExportRewriter(opts ExportOptions) *ExportRewriter {
	prefix := ""
	if opts.Project != "" {
		prefix = "/" + opts.Project
	}

	var rules []Rule
	if opts.Stylesheet != "" {
		rev := opts.Revision
		if rev == "" {
			rev = "dev"
		}
		rules = append(rules, Rule{
			From: `href="` + opts.Stylesheet + `"`,
			To:   `href="` + prefix + opts.Stylesheet + `?v=` + rev + `"`,
		})
	}

	routes := append([]string(nil), opts.Routes...)
	sort.Slice(routes, func(i, j int) bool {
		if len(routes[i]) != len(routes[j]) {
			return len(routes[i]) > len(routes[j])
		}
		return routes[i] < routes[j]
	})
	for _, r := range routes {
		rules = append(rules, Rule{From: `href="` + r + `"`, To: `href="` + prefix + r + `"`})
	}

	for _, root := range opts.AssetRoots {
		for _, q := range quoteChars {
			rules = append(rules, Rule{From: q + root, To: q + prefix + root})
		}
	}

	pairs := make([]string, 0, 2*len(rules))
	for _, r := range rules {
		pairs = append(pairs, r.From, r.To)
	}
	return &ExportRewriter{rules: rules, replacer: strings.NewReplacer(pairs...)}
}

// Rules returns the rewrite rules in priority order.
func (e *ExportRewriter) Rules() []Rule {
	return e.rules
}

// Rewrite implements Rewriter. Replacements happen in one left-to-right pass,
// so a rewritten path is never rewritten twice.
func (e *ExportRewriter) Rewrite(html string) string {
	return e.replacer.Replace(html)
}

// ForMode returns the rewriter of mode. opts is only used in Export mode.
func ForMode(mode model.RenderMode, opts ExportOptions) Rewriter {
	if mode == model.Export {
		return NewExportRewriter(opts)
	}
	return liveRewriter{}
}
