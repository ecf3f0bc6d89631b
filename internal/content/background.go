package content

import (
	"fmt"
	"path"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
	"go.uber.org/zap"
)

// Policy decides what happens when a Background directory holds more than
// one image.
type Policy int

const (
	// Lenient picks the first image in directory-listing order.
	Lenient Policy = iota
	// Strict fails with a *BackgroundConflictError.
	Strict
)

func (p Policy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// BackgroundConflictError reports a Background directory with several images.
type BackgroundConflictError struct {
	Category string
	Dir      string
	Files    []string
}

func (e *BackgroundConflictError) Error() string {
	return fmt.Sprintf("category '%s': multiple background images in '%s', keep exactly one: %s",
		e.Category, e.Dir, strings.Join(e.Files, ", "))
}

// Background resolves the background image of a category directory. ok is
// false when there is none.
func (l *Loader) Background(categoryDir, key string, policy Policy) (ref model.AssetRef, ok bool, err error) {
	dir := path.Join(categoryDir, backgroundDir)
	names, err := l.imageNames(dir)
	if err != nil {
		l.logger.Warn("Failed to read background directory", zap.String("dir", dir), zap.Error(err))
		return "", false, nil
	}

	switch {
	case len(names) == 0:
		return "", false, nil
	case len(names) > 1 && policy == Strict:
		return "", false, &BackgroundConflictError{Category: key, Dir: dir, Files: names}
	case len(names) > 1:
		l.logger.Debug("Multiple background images, using the first",
			zap.String("dir", dir), zap.Strings("files", names))
	}
	return model.AssetRef(l.assetURL(dir, names[0])), true, nil
}

// CategoryAssetFiles returns the content paths of the images and background
// images of a category, for copying.
func (l *Loader) CategoryAssetFiles(key string) []string {
	dir := l.CategoryPath(key)
	files := l.ImageFiles(path.Join(dir, imagesDir))
	return append(files, l.ImageFiles(path.Join(dir, backgroundDir))...)
}

// FeatureAssetFiles returns the content paths of the feature images.
func (l *Loader) FeatureAssetFiles() []string {
	return l.ImageFiles(path.Join(l.opts.FeatureDir, imagesDir))
}
