package webscraper

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/afero"

	"github.com/mtvnnb/vie-driver-license-test-anki/pkg/domain"
)

// ImageFetcher saves a question's image and returns the local path.
type ImageFetcher interface {
	Fetch(ctx context.Context, questionNumber int, pageURL, src string) (string, error)
}

// ImageDownloader downloads images over HTTP into Dir, named q{n}_{basename}.
type ImageDownloader struct {
	client *resty.Client
	fs     afero.Fs
	dir    string
}

func NewImageDownloader(fs afero.Fs, dir string, timeout time.Duration, userAgent string) *ImageDownloader {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "image/*")
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &ImageDownloader{client: client, fs: fs, dir: dir}
}

// Path returns where the image for questionNumber with the given source URL is stored.
func (d *ImageDownloader) Path(questionNumber int, imageURL string) (string, error) {
	name, err := domain.FileName(imageURL)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.dir, fmt.Sprintf("q%d_%s", questionNumber, name)), nil
}

func (d *ImageDownloader) Fetch(ctx context.Context, questionNumber int, pageURL, src string) (string, error) {
	imageURL, err := domain.ResolveURL(pageURL, src)
	if err != nil {
		return "", fmt.Errorf("resolving image src %q: %w", src, err)
	}
	path, err := d.Path(questionNumber, imageURL)
	if err != nil {
		return "", fmt.Errorf("naming image %s: %w", imageURL, err)
	}

	resp, err := d.client.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", imageURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("downloading %s: unexpected status %s", imageURL, resp.Status())
	}

	if err := d.fs.MkdirAll(d.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image dir: %w", err)
	}
	if err := afero.WriteFile(d.fs, path, resp.Body(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
