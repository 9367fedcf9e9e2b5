package downloader

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/brogergvhs/sanpid/internal/providers"
	"github.com/brogergvhs/sanpid/internal/ui"
	"github.com/brogergvhs/sanpid/internal/util"
)

const maxNameRunes = 40

type Downloader struct {
	client     *http.Client
	log        *ui.Logger
	skipBroken bool
	backoff    time.Duration
}

func New(c *http.Client, log *ui.Logger, skipBroken bool) *Downloader {
	return &Downloader{
		client:     c,
		log:        log,
		skipBroken: skipBroken,
		backoff:    time.Second,
	}
}

// FileName names a saved illustration after its sort key, so files list in
// publication order.
func FileName(ill providers.Illustration) string {
	name := []rune(util.SafeName(ill.ArticleTitle))
	if len(name) > maxNameRunes {
		name = name[:maxNameRunes]
	}

	ext := filepath.Ext(ill.ImageURL)
	if ext == "" {
		ext = ".png"
	}

	if len(name) == 0 {
		return ill.SortKey + ext
	}

	return ill.SortKey + "_" + string(name) + ext
}

// Save downloads every illustration into folder with up to maxParallel
// workers. It returns the written paths and the byte total.
func (d *Downloader) Save(
	ctx context.Context,
	items []providers.Illustration,
	folder string,
	maxParallel int,
	ph *ui.ProgressHandle,
) ([]string, int64, error) {

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, 0, err
	}

	total := len(items)
	if maxParallel < 1 {
		maxParallel = 1
	}
	if maxParallel > total && total > 0 {
		maxParallel = total
	}

	if ph != nil {
		ph.SetTotal(total)
	}

	var mu sync.Mutex
	files := make([]string, 0, total)
	errs := make([]error, 0, 4)
	var written int64

	jobs := make(chan int)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for i := range jobs {
			ill := items[i]
			path := filepath.Join(folder, FileName(ill))

			n, err := d.downloadWithRetry(ctx, ill.ImageURL, path, ill.ArticleURL)

			mu.Lock()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ill.ImageURL, err))
				d.log.Debugf("Download %s failed: %v\n", ill.ImageURL, err)
			} else {
				files = append(files, path)
				written += n
			}
			mu.Unlock()

			if ph != nil {
				ph.Increment(n)
			}
		}
	}

	wg.Add(maxParallel)
	for w := 0; w < maxParallel; w++ {
		go worker()
	}

	for i := range items {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			if ph != nil {
				ph.MarkDone()
			}
			return files, written, ctx.Err()
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	if ph != nil {
		ph.MarkDone()
	}

	if err := ctx.Err(); err != nil {
		return files, written, err
	}
	if len(errs) > 0 && !d.skipBroken {
		return files, written, fmt.Errorf("failed %d/%d illustrations (use --skip-broken to continue): %w", len(errs), total, errs[0])
	}

	return files, written, nil
}

func (d *Downloader) downloadWithRetry(ctx context.Context, url, output, referer string) (int64, error) {
	var (
		n   int64
		err error
	)
	for attempt := 1; attempt <= 3; attempt++ {
		n, err = d.download(ctx, url, output, referer)
		if err == nil {
			return n, nil
		}
		if attempt == 3 {
			break
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Duration(attempt) * d.backoff):
		}
	}

	return 0, err
}

func (d *Downloader) download(ctx context.Context, u, output, referer string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}

	req.Header.Set("Referer", referer)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/*,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.8,en;q=0.6")

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, _ := mime.ParseMediaType(ct); !strings.HasPrefix(mt, "image/") {
			return 0, fmt.Errorf("unexpected MIME: %s", ct)
		}
	}

	f, err := os.Create(output)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(output)
		return 0, err
	}

	return n, nil
}
