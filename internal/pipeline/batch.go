package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
)

const defaultBatchWorkers = 4

// BatchItem is the per-file result of a batch run.
type BatchItem struct {
	Path    string   `json:"path"`
	Outcome *Outcome `json:"outcome,omitempty"`
	Err     error    `json:"-"`
}

// BatchResult aggregates one directory walk.
type BatchResult struct {
	Items     []BatchItem `json:"items"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// InjectBatch walks dir for .html files and injects each with a bounded
// worker pool. Every worker parses its own Document; nothing mutable is
// shared. The context cancels the walk between files, not mid-document.
func (p *Pipeline) InjectBatch(ctx context.Context, dir string, cfg *config.SeoConfig, workers int) (*BatchResult, error) {
	start := time.Now()

	if workers <= 0 {
		workers = defaultBatchWorkers
	}

	paths, err := htmlFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .html files under %s", dir)
	}

	items := make([]BatchItem, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				items[i] = p.injectFile(paths[i], cfg)
			}
		}()
	}

	for i := range paths {
		if err := ctx.Err(); err != nil {
			close(jobs)
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	result := &BatchResult{Items: items}
	for _, item := range items {
		if item.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	p.collector.RecordPipelineDuration("batch", time.Since(start))
	p.logger.Info("Batch finished",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (p *Pipeline) injectFile(path string, cfg *config.SeoConfig) BatchItem {
	item := BatchItem{Path: path}

	markup, err := os.ReadFile(path)
	if err != nil {
		item.Err = fmt.Errorf("read %s: %w", path, err)
		return item
	}

	outcome, err := p.Inject(string(markup), cfg)
	if err != nil {
		item.Err = fmt.Errorf("inject %s: %w", path, err)
		return item
	}
	item.Outcome = outcome
	return item
}

// htmlFiles lists .html and .htm files under dir, sorted for deterministic
// batch ordering.
func htmlFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".html" || ext == ".htm" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}
