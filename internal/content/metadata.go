package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
	"go.uber.org/zap"
)

const (
	// DefaultCustomTitle replaces {{CUSTOM_TITLE}} when a category has no
	// subtitle file.
	DefaultCustomTitle = "Professional portrait photography for actors, models, and business professionals"
	// DefaultFeatureSubtitle replaces {{BTS_SUBTITLE}} when the feature folder
	// has no subtitle file.
	DefaultFeatureSubtitle = "Behind the scenes"
)

// DefaultSubtitle is the subtitle of a category without subtitle.txt.
func DefaultSubtitle(key string) string {
	return fmt.Sprintf("Professional %s photography", key)
}

// readOptional returns the trimmed content of name. ok is false when the file
// is missing or unreadable.
func (l *Loader) readOptional(name string) (string, bool) {
	b, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Debug("Ignoring unreadable metadata file", zap.String("file", name), zap.Error(err))
		}
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

func readRequired(fsys fs.FS, name, what string) (string, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("failed to read %s '%s': %w", what, name, err)
	}
	return string(b), nil
}

// Subtitle reads subtitle.txt in dir, defaulting to DefaultSubtitle(key).
func (l *Loader) Subtitle(dir, key string) string {
	if s, ok := l.readOptional(path.Join(dir, subtitleFile)); ok {
		return s
	}
	return DefaultSubtitle(key)
}

// CustomTitle reads the same subtitle.txt for the long-form description of a
// category page.
func (l *Loader) CustomTitle(dir string) string {
	if s, ok := l.readOptional(path.Join(dir, subtitleFile)); ok {
		return s
	}
	return DefaultCustomTitle
}

// Links reads Links.txt inside the images directory of a category.
func (l *Loader) Links(imagesDir string) map[string]string {
	links := make(map[string]string)
	s, ok := l.readOptional(path.Join(imagesDir, linksFile))
	if !ok {
		return links
	}
	for _, e := range ParseLinks(s) {
		links[e.Name] = e.URL
	}
	return links
}

// Videos reads youtubeLinks.txt in dir.
func (l *Loader) Videos(dir string) []model.VideoRef {
	s, ok := l.readOptional(path.Join(dir, videoLinksFile))
	if !ok {
		return nil
	}
	return ParseVideoLinks(s)
}

// ParseLinks parses "name,url" lines, splitting on the first comma. Lines
// without a comma are skipped.
func ParseLinks(s string) []model.LinkEntry {
	var entries []model.LinkEntry
	for _, line := range lines(s) {
		name, url, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		entries = append(entries, model.LinkEntry{
			Name: strings.TrimSpace(name),
			URL:  strings.TrimSpace(url),
		})
	}
	return entries
}

// ParseVideoLinks extracts video ids from youtu.be and youtube.com/watch
// links, one per line. Other lines are skipped.
func ParseVideoLinks(s string) []model.VideoRef {
	var videos []model.VideoRef
	for _, line := range lines(s) {
		if id, ok := ParseVideoID(line); ok {
			videos = append(videos, id)
		}
	}
	return videos
}

// ParseVideoID extracts the id of a single YouTube link.
func ParseVideoID(link string) (model.VideoRef, bool) {
	if _, rest, ok := strings.Cut(link, "youtu.be/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		return model.VideoRef(id), id != ""
	}
	if _, rest, ok := strings.Cut(link, "youtube.com/watch?"); ok {
		rest, _, _ = strings.Cut(rest, "#")
		for _, param := range strings.Split(rest, "&") {
			if id, ok := strings.CutPrefix(param, "v="); ok {
				return model.VideoRef(id), id != ""
			}
		}
	}
	return "", false
}

// lines returns the trimmed, non-empty lines of s.
func lines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
