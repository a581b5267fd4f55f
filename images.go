package web2pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Image download defaults.
const (
	defaultImageWorkers = 4
	imageDirName        = "img"
	maxImageSize        = 20 << 20 // 20MB per image
	jpegQuality         = 90

	// placeholderImage is the LaTeX example image used for downloads that
	// failed; the document still compiles with a visible stand-in.
	placeholderImage = "example-image-a"
)

// imgTag matches the HTML image tags Pandoc leaves embedded in Markdown.
var imgTag = regexp.MustCompile(`<img[^>]*src="([^"]*)"[^>]*alt="([^"]*)"[^>]*>`)

// ImageInfo records where a downloaded image landed.
type ImageInfo struct {
	Path     string // document-relative path, e.g. "img/slug_image_1.jpg"
	Alt      string
	Filename string
}

// ImageDownloader fetches article images into a local directory so the
// typeset document does not depend on the network.
type ImageDownloader struct {
	Client  *http.Client
	Workers int
}

// NewImageDownloader creates a downloader with a bounded client.
func NewImageDownloader(timeout time.Duration, workers int) *ImageDownloader {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	if workers <= 0 {
		workers = defaultImageWorkers
	}
	return &ImageDownloader{
		Client:  &http.Client{Timeout: timeout},
		Workers: workers,
	}
}

// Download scans Markdown for image tags and downloads each remote image
// into dir/img, converting GIFs to JPEG for LaTeX compatibility. Downloads
// run concurrently with a bounded worker count. A failed download maps to
// the placeholder image rather than failing the pipeline; only directory
// creation and context cancellation are reported as errors.
func (d *ImageDownloader) Download(ctx context.Context, markdown, slug, dir string) (map[string]ImageInfo, error) {
	matches := imgTag.FindAllStringSubmatch(markdown, -1)
	if len(matches) == 0 {
		return map[string]ImageInfo{}, nil
	}

	imgDir := filepath.Join(dir, imageDirName)
	if err := os.MkdirAll(imgDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}

	var mu sync.Mutex
	images := make(map[string]ImageInfo, len(matches))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(d.Workers)

	for i, match := range matches {
		imgURL, alt := match[1], match[2]
		if !strings.HasPrefix(imgURL, "http") {
			continue
		}

		mu.Lock()
		if _, seen := images[imgURL]; seen {
			mu.Unlock()
			continue
		}
		images[imgURL] = ImageInfo{} // reserve before spawning
		mu.Unlock()

		index := i + 1
		group.Go(func() error {
			info := d.fetchOne(groupCtx, imgURL, alt, slug, index, imgDir)
			mu.Lock()
			images[imgURL] = info
			mu.Unlock()
			return groupCtx.Err()
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// fetchOne downloads a single image, normalizing GIFs to JPEG. Failures
// degrade to the placeholder.
func (d *ImageDownloader) fetchOne(ctx context.Context, imgURL, alt, slug string, index int, imgDir string) ImageInfo {
	placeholder := ImageInfo{Path: placeholderImage, Alt: alt, Filename: placeholderImage}

	data, err := d.get(ctx, imgURL)
	if err != nil {
		return placeholder
	}

	ext := imageExtension(imgURL)
	isGIF := strings.EqualFold(ext, ".gif")
	if isGIF {
		// LaTeX cannot include GIFs; re-encode the first frame as JPEG.
		if converted, convErr := gifToJPEG(data); convErr == nil {
			data = converted
			ext = ".jpg"
		}
		// Conversion failure falls back to the original bytes.
	}

	filename := fmt.Sprintf("%s_image_%d%s", slug, index, ext)
	if err := os.WriteFile(filepath.Join(imgDir, filename), data, 0o644); err != nil {
		return placeholder
	}

	return ImageInfo{
		Path:     path.Join(imageDirName, filename),
		Alt:      alt,
		Filename: filename,
	}
}

// get downloads one image body with a size cap.
func (d *ImageDownloader) get(ctx context.Context, imgURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image download: %s returned %s", imgURL, resp.Status)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
}

// imageExtension derives a file extension from an image URL, defaulting
// to .jpg when the URL path carries none.
func imageExtension(imgURL string) string {
	parsed, err := url.Parse(imgURL)
	if err != nil {
		return ".jpg"
	}
	ext := path.Ext(parsed.Path)
	if ext == "" {
		return ".jpg"
	}
	return ext
}

// gifToJPEG re-encodes the first GIF frame as an RGB JPEG.
func gifToJPEG(data []byte) ([]byte, error) {
	img, err := gif.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// JPEG has no alpha channel; flatten onto an opaque RGBA canvas.
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
