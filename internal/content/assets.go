package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Bitlatte/folio/internal/model"
	"go.uber.org/zap"
)

// imageExts are matched exactly, so "PNG" or "webp" files are ignored.
var imageExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
}

// IsImage reports whether name carries one of the supported image extensions.
func IsImage(name string) bool {
	return imageExts[strings.TrimPrefix(path.Ext(name), ".")]
}

// EncodeFilename percent-encodes everything but RFC 3986 unreserved
// characters, byte by byte with upper-case hex.
func EncodeFilename(name string) string {
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}

// imageNames lists the image files of dir in directory-listing order. A
// missing directory yields no names and no error.
func (l *Loader) imageNames(dir string) ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Images returns the URLs of the images in dir sorted byte-wise. Numeric
// names are not ordered numerically: "10.png" sorts before "2.png".
func (l *Loader) Images(dir string) []model.AssetRef {
	names, err := l.imageNames(dir)
	if err != nil {
		l.logger.Warn("Failed to read image directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}

	images := make([]model.AssetRef, 0, len(names))
	for _, name := range names {
		images = append(images, model.AssetRef(l.assetURL(dir, name)))
	}
	sort.Slice(images, func(i, j int) bool { return images[i] < images[j] })
	return images
}

// ImageFiles returns the content paths of the image files in dir, for
// copying. Errors are logged and yield an empty list.
func (l *Loader) ImageFiles(dir string) []string {
	names, err := l.imageNames(dir)
	if err != nil {
		l.logger.Warn("Failed to read image directory", zap.String("dir", dir), zap.Error(err))
		return nil
	}
	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, path.Join(dir, name))
	}
	return files
}
