package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Finding is a root-relative reference that escaped the path rewriter.
type Finding struct {
	Page  string
	Attr  string
	Value string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s=%q", f.Page, f.Attr, f.Value)
}

// auditPage returns the href and src values of page that point at the site
// root instead of the project prefix.
func auditPage(page, prefix string) ([]Finding, error) {
	f, err := os.Open(page)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", page, err)
	}

	var findings []Finding
	for _, attr := range []string{"href", "src"} {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			v := s.AttrOr(attr, "")
			if escapesPrefix(v, prefix) {
				findings = append(findings, Finding{Page: page, Attr: attr, Value: v})
			}
		})
	}
	return findings, nil
}

func escapesPrefix(v, prefix string) bool {
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return false
	}
	return v != prefix && !strings.HasPrefix(v, prefix+"/")
}
