package media

import (
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder
)

const (
	thumbMaxWidth  = 400
	thumbMaxHeight = 400
	thumbQuality   = 80
)

// isThumbnailable: raster images only, vector formats are served as-is.
func isThumbnailable(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/") && !strings.Contains(mimeType, "svg")
}

// generateThumbnail writes a bounded-dimension JPEG next to the original
// and returns the source dimensions. Aspect ratio is preserved; images
// smaller than the bounds are not scaled up.
func generateThumbnail(srcPath, dstPath string) (width, height int, err error) {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return 0, 0, err
	}

	bounds := img.Bounds()
	width = bounds.Dx()
	height = bounds.Dy()

	thumb := imaging.Fit(img, thumbMaxWidth, thumbMaxHeight, imaging.Lanczos)
	if err := imaging.Save(thumb, dstPath, imaging.JPEGQuality(thumbQuality)); err != nil {
		return width, height, err
	}
	return width, height, nil
}
