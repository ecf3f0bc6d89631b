package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
)

type categoryEntry struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Images     []string          `json:"images"`
	Links      map[string]string `json:"links"`
	Background string            `json:"background,omitempty"`
}

// scriptString drops line breaks so values stay on one line inside a script.
var scriptString = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// SerializeCategories encodes the manifests as one JSON object keyed by
// category key, safe to embed in a script element.
func SerializeCategories(categories []*model.CategoryManifest) (string, error) {
	entries := make(map[string]categoryEntry, len(categories))
	for _, c := range categories {
		links := make(map[string]string, len(c.Links))
		for k, v := range c.Links {
			links[scriptString.Replace(k)] = scriptString.Replace(v)
		}
		entries[c.Key] = categoryEntry{
			Title:      scriptString.Replace(c.Title),
			Subtitle:   scriptString.Replace(c.Subtitle),
			Images:     assetStrings(c.Images),
			Links:      links,
			Background: string(c.Background),
		}
	}

	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to serialize category manifest: %w", err)
	}
	return string(b), nil
}

// AssetArray encodes refs as a JSON array literal.
func AssetArray(refs []model.AssetRef) string {
	// marshaling a string slice cannot fail
	b, _ := json.Marshal(assetStrings(refs))
	return string(b)
}

func assetStrings(refs []model.AssetRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, string(r))
	}
	return out
}
