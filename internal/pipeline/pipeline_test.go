package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

const sampleMarkup = `<!DOCTYPE html><html lang="en"><head></head><body>
<h1>Workshop Tools</h1>
<p>Quality workshop tools with fast shipping. Add to cart and checkout securely.
Every order ships with a lifetime guarantee. Shop the full catalog of hand tools
and power tools for any project or workshop.</p>
</body></html>`

func testPipeline() *Pipeline {
	return New(zap.NewNop(), nil)
}

func testConfig(t *testing.T) *config.SeoConfig {
	t.Helper()
	cfg, err := config.NewBuilder().
		SiteName("Acme").
		SiteURL("https://acme.com").
		DefaultImage("https://acme.com/share.png").
		Build()
	require.NoError(t, err)
	return cfg
}

func TestAnalyze(t *testing.T) {
	p := testPipeline()

	t.Run("without config", func(t *testing.T) {
		analysis, err := p.Analyze(sampleMarkup, nil)
		require.NoError(t, err)

		assert.NotEmpty(t, analysis.RunID)
		assert.Equal(t, types.BusinessEcommerce, analysis.Result.BusinessType)
		assert.Equal(t, "en", analysis.Result.Language)
		assert.NotEmpty(t, analysis.Result.Keywords)
		assert.NotEmpty(t, analysis.Result.Findings)
		assert.Less(t, analysis.Result.SEOScore, 100)
		assert.NotEmpty(t, analysis.Ml.TitleCandidates)
		assert.NotEmpty(t, analysis.Recommendations)
	})

	t.Run("parse failure surfaces typed error", func(t *testing.T) {
		_, err := p.Analyze("bad \xff\xfe bytes", nil)
		require.Error(t, err)
	})

	t.Run("fresh run id per call", func(t *testing.T) {
		a, err := p.Analyze(sampleMarkup, nil)
		require.NoError(t, err)
		b, err := p.Analyze(sampleMarkup, nil)
		require.NoError(t, err)
		assert.NotEqual(t, a.RunID, b.RunID)
	})
}

func TestInject(t *testing.T) {
	p := testPipeline()
	cfg := testConfig(t)

	t.Run("requires config", func(t *testing.T) {
		_, err := p.Inject(sampleMarkup, nil)
		require.Error(t, err)
	})

	t.Run("score becomes maximal", func(t *testing.T) {
		outcome, err := p.Inject(sampleMarkup, cfg)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, outcome.PostScore, outcome.Analysis.Result.SEOScore)
		assert.Equal(t, 100, outcome.PostScore)
		assert.False(t, outcome.Log.Unchanged)
		assert.Zero(t, outcome.Log.Failed)
	})

	t.Run("second pass is a content no-op", func(t *testing.T) {
		first, err := p.Inject(sampleMarkup, cfg)
		require.NoError(t, err)

		second, err := p.Inject(first.HTML, cfg)
		require.NoError(t, err)

		assert.Equal(t, first.HTML, second.HTML)
		assert.True(t, second.Log.Unchanged)
		assert.Equal(t, second.Log.PreHash, second.Log.PostHash)
	})

	t.Run("body svg title stays body content", func(t *testing.T) {
		markup := `<!DOCTYPE html><html lang="en"><head></head><body>
<h1>Workshop Tools</h1>
<svg viewBox="0 0 24 24"><title>cart icon</title></svg>
<p>Quality workshop tools with fast shipping. Add to cart and checkout securely.</p>
</body></html>`

		first, err := p.Inject(markup, cfg)
		require.NoError(t, err)

		head := first.HTML[:strings.Index(first.HTML, "<body")]
		assert.Contains(t, head, "<title>")
		assert.NotContains(t, head, "<title>cart icon</title>")
		assert.Contains(t, first.HTML, "<title>cart icon</title>")

		second, err := p.Inject(first.HTML, cfg)
		require.NoError(t, err)
		assert.Equal(t, first.HTML, second.HTML)
		assert.True(t, second.Log.Unchanged)
	})

	t.Run("minimal config falls back to a body image", func(t *testing.T) {
		minimal, err := config.NewBuilder().
			SiteName("Acme").
			SiteURL("https://acme.com").
			Build()
		require.NoError(t, err)

		withImage := strings.Replace(sampleMarkup, "<h1>Workshop Tools</h1>",
			`<h1>Workshop Tools</h1><img src="/img/hero.jpg" alt="workbench">`, 1)
		outcome, err := p.Inject(withImage, minimal)
		require.NoError(t, err)
		assert.Contains(t, outcome.HTML, `property="og:image" content="https://acme.com/img/hero.jpg"`)
		assert.Equal(t, 100, outcome.PostScore)

		// No image anywhere: the tag is omitted and only the Open Graph
		// check stays unsatisfied.
		bare, err := p.Inject(sampleMarkup, minimal)
		require.NoError(t, err)
		assert.NotContains(t, bare.HTML, "og:image")
		assert.Equal(t, 80, bare.PostScore)
	})
}

func TestRunAndReport(t *testing.T) {
	p := testPipeline()
	cfg := testConfig(t)

	outcome, report, err := p.Run(sampleMarkup, cfg)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Contains(t, report, "# SEO Analysis Report")
	assert.Contains(t, report, "ecommerce")
	assert.Contains(t, report, "Post-injection SEO score: 100/100")

	analyzeOnly, err := p.Report(sampleMarkup, cfg)
	require.NoError(t, err)
	assert.Contains(t, analyzeOnly, "## Findings")
	assert.NotContains(t, analyzeOnly, "## Injection")
}

func TestInjectBatch(t *testing.T) {
	p := testPipeline()
	cfg := testConfig(t)

	t.Run("processes directory tree", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte(sampleMarkup), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.html"), []byte(sampleMarkup), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.txt"), []byte("not html"), 0o644))

		result, err := p.InjectBatch(context.Background(), dir, cfg, 2)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Succeeded)
		assert.Zero(t, result.Failed)
		require.Len(t, result.Items, 2)
		assert.True(t, strings.HasSuffix(result.Items[0].Path, "a.html"))
		for _, item := range result.Items {
			require.NoError(t, item.Err)
			assert.Contains(t, item.Outcome.HTML, "application/ld+json")
		}
	})

	t.Run("unreadable file counted as failure", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "good.html"), []byte(sampleMarkup), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.html"), []byte("broken \xff\xfe bytes"), 0o644))

		result, err := p.InjectBatch(context.Background(), dir, cfg, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("empty directory errors", func(t *testing.T) {
		_, err := p.InjectBatch(context.Background(), t.TempDir(), cfg, 2)
		require.Error(t, err)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.html"), []byte(sampleMarkup), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.InjectBatch(ctx, dir, cfg, 1)
		require.ErrorIs(t, err, context.Canceled)
	})
}
