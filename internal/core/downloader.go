package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"samm/internal/domain"

	"github.com/cavaliergopher/grab/v3"
)

// DownloadProgress represents the current state of a download
type DownloadProgress struct {
	Name       string  // Display name of what is being fetched
	TotalBytes int64   // Total size in bytes (0 if unknown)
	Downloaded int64   // Bytes downloaded so far
	Percentage float64 // Completion percentage (0-100)
}

// ProgressFunc is called periodically during download with progress updates
type ProgressFunc func(DownloadProgress)

// DownloadResult contains the outcome of a download
type DownloadResult struct {
	Path string // Final file path
	Size int64  // Bytes downloaded
}

// Transfer describes one remote file to fetch
type Transfer struct {
	URL      string
	Name     string // Display name
	FileName string // Written as <Dir>/<FileName>
	Dir      string
	Mode     domain.TransferMode
}

// Dest is the final path of the transfer
func (t Transfer) Dest() string {
	return filepath.Join(t.Dir, t.FileName)
}

// Fetcher downloads remote files
type Fetcher interface {
	Fetch(ctx context.Context, t Transfer, progressFn ProgressFunc) (*DownloadResult, error)
}

// Downloader fetches files over HTTP with progress reporting
type Downloader struct {
	client   *grab.Client
	interval time.Duration
}

// NewDownloader creates a new Downloader with the given HTTP client
// If httpClient is nil, grab's default client is used
func NewDownloader(httpClient *http.Client) *Downloader {
	client := grab.NewClient()
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	client.UserAgent = "samm"
	return &Downloader{
		client:   client,
		interval: 100 * time.Millisecond,
	}
}

// Fetch downloads a transfer to its destination
func (d *Downloader) Fetch(ctx context.Context, t Transfer, progressFn ProgressFunc) (*DownloadResult, error) {
	if progressFn != nil && t.Name != "" {
		inner := progressFn
		progressFn = func(p DownloadProgress) {
			p.Name = t.Name
			inner(p)
		}
	}
	return d.Download(ctx, t.URL, t.Dest(), progressFn)
}

// Download fetches a file from the URL and saves it to destPath. The file is
// written next to destPath first and only renamed into place once complete,
// so a failed download never leaves a truncated file behind.
func (d *Downloader) Download(ctx context.Context, url, destPath string, progressFn ProgressFunc) (*DownloadResult, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	tempPath := destPath + ".part"
	os.Remove(tempPath)

	req, err := grab.NewRequest(tempPath, url)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request for %s: %v", domain.ErrDownloadFailed, url, err)
	}
	req.NoResume = true
	req = req.WithContext(ctx)

	resp := d.client.Do(req)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			report(progressFn, resp)
		case <-resp.Done:
			break loop
		}
	}

	if err := resp.Err(); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDownloadFailed, url, err)
	}
	report(progressFn, resp)

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return nil, fmt.Errorf("renaming file: %w", err)
	}

	return &DownloadResult{
		Path: destPath,
		Size: resp.BytesComplete(),
	}, nil
}

func report(progressFn ProgressFunc, resp *grab.Response) {
	if progressFn == nil {
		return
	}
	p := DownloadProgress{
		TotalBytes: resp.Size(),
		Downloaded: resp.BytesComplete(),
	}
	if p.TotalBytes > 0 {
		p.Percentage = resp.Progress() * 100
	}
	progressFn(p)
}
