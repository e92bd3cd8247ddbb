package model

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"
)

// tmpSuffix marks the in-flight download file next to the final path.
const tmpSuffix = ".tmp"

// downloadClient mirrors the artifact endpoint contract: generous read
// window for a multi-gigabyte stream, bounded connect time.
var downloadClient = &http.Client{
	Transport: &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{Timeout: 15 * time.Second}).DialContext,
	},
}

// download streams the artifact to the temp file and atomically renames it
// into place. On any error the temp file is removed so no partial artifact
// is ever visible at the final path.
func (b *Bootstrap) download(ctx context.Context) (err error) {
	final := b.savePath()
	tmp := final + tmpSuffix

	if err := os.MkdirAll(b.searchPaths[0], 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch artifact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("server error: %s", resp.Status)
	}

	total := resp.ContentLength
	b.mu.Lock()
	b.rec.TotalBytes = total
	b.mu.Unlock()

	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	start := b.now()
	lastEmit := start
	var downloaded int64
	buf := make([]byte, 8192)

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				out.Close()
				return fmt.Errorf("write temp file: %w", werr)
			}
			downloaded += int64(n)

			b.mu.Lock()
			b.rec.DownloadedBytes = downloaded
			b.mu.Unlock()

			if now := b.now(); now.Sub(lastEmit) > b.progressInterval {
				lastEmit = now
				b.emitProgress(downloaded, total, now.Sub(start))
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			out.Close()
			return fmt.Errorf("stream artifact: %w", readErr)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// The rename is the commit point; failure leaves no final artifact.
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	b.emitProgress(downloaded, total, b.now().Sub(start))
	return nil
}

func (b *Bootstrap) emitProgress(downloaded, total int64, elapsed time.Duration) {
	if b.onProgress == nil {
		return
	}
	p := Progress{
		DownloadedBytes: downloaded,
		TotalBytes:      total,
	}
	if total > 0 {
		p.Percent = int(downloaded * 100 / total)
	}
	if secs := elapsed.Seconds(); secs > 0 {
		p.BytesPerSec = float64(downloaded) / secs
	}
	b.onProgress(p)
}
