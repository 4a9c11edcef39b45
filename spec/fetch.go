// Package spec deals with the specification document itself: fetching it,
// extracting the grammar-notation regions out of its HTML, and selecting
// the regions that belong to the core language grammar.
package spec

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Fetcher retrieves the specification document, caching the raw bytes on
// disk so repeat runs never touch the network.
type Fetcher struct {
	Fs       afero.Fs
	Client   *http.Client
	CacheDir string
	Log      logrus.FieldLogger
}

// Fetch returns the document at url, from cache when present. A nil Log
// or Client falls back to a silent logger and http.DefaultClient, so a
// zero-value Fetcher with just Fs and CacheDir set is usable.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	log := f.logger()
	path := filepath.Join(f.CacheDir, cacheKey(url))
	if b, err := afero.ReadFile(f.Fs, path); err == nil {
		log.WithField("path", path).Debug("specification cache hit")
		return b, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading cached specification: %w", err)
	}

	log.WithField("url", url).Info("fetching specification")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching specification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching specification: unexpected status %s", resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading specification body: %w", err)
	}

	if err := f.Fs.MkdirAll(f.CacheDir, 0o755); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(f.Fs, path, b, 0o644); err != nil {
		return nil, fmt.Errorf("caching specification: %w", err)
	}
	return b, nil
}

func (f *Fetcher) logger() logrus.FieldLogger {
	if f.Log != nil {
		return f.Log
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.html", sum[:8])
}
