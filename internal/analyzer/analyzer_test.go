package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

func parseDoc(t *testing.T, markup string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.Parse(markup)
	require.NoError(t, err)
	return doc
}

func TestDetectFramework(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   types.Framework
	}{
		{
			name:   "nextjs root container",
			markup: `<html><body><div id="__next">app</div><script src="/static/app.js"></script></body></html>`,
			want:   types.FrameworkNextJS,
		},
		{
			name:   "nextjs bundle path",
			markup: `<html><body><script src="/_next/static/chunks/main.js"></script></body></html>`,
			want:   types.FrameworkNextJS,
		},
		{
			name:   "nextjs wins over react bundle",
			markup: `<html><body><div id="__next"></div><script src="/js/react-dom.min.js"></script></body></html>`,
			want:   types.FrameworkNextJS,
		},
		{
			name:   "react root marker",
			markup: `<html><body><div data-reactroot="">app</div><script src="/bundle.js"></script></body></html>`,
			want:   types.FrameworkReact,
		},
		{
			name:   "react bundle src",
			markup: `<html><body><script src="https://cdn.example.com/react.production.min.js"></script></body></html>`,
			want:   types.FrameworkReact,
		},
		{
			name:   "vue app marker",
			markup: `<html><body><div data-v-app="">app</div></body></html>`,
			want:   types.FrameworkVue,
		},
		{
			name:   "vue generator meta",
			markup: `<html><head><meta name="generator" content="Vue 3"></head><body><script src="/app.js"></script></body></html>`,
			want:   types.FrameworkVue,
		},
		{
			name:   "vite dev client",
			markup: `<html><body><script type="module" src="/@vite/client"></script></body></html>`,
			want:   types.FrameworkVite,
		},
		{
			name:   "no scripts is vanilla",
			markup: `<html><body><h1>Plain page</h1><p>Hand written.</p></body></html>`,
			want:   types.FrameworkVanilla,
		},
		{
			name:   "unrecognized script is unknown",
			markup: `<html><body><script src="/js/legacy.js"></script></body></html>`,
			want:   types.FrameworkUnknown,
		},
	}

	extractor := New(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := extractor.Extract(parseDoc(t, tt.markup))
			assert.Equal(t, tt.want, features.Framework)
		})
	}
}

func TestClassifyBusiness(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   types.BusinessType
	}{
		{
			name: "saas from pricing and trial vocabulary",
			markup: `<html><body><h1>The Workflow Platform</h1>
				<p>Start your free trial. Flexible pricing plans for every team.
				Powerful dashboard, API access and integration with your workflow.</p>
				<div class="pricing-table">Plans</div></body></html>`,
			want: types.BusinessSaaS,
		},
		{
			name: "ecommerce from cart and checkout",
			markup: `<html><body><h1>Summer Sale</h1>
				<p>Add to cart and enjoy free shipping on every order.
				Secure checkout with any payment method. Shop the full catalog.</p>
				<form action="/cart/add"><button>Add to cart</button></form></body></html>`,
			want: types.BusinessEcommerce,
		},
		{
			name: "blog from editorial structure",
			markup: `<html><body><article><h1>My Post</h1>
				<time datetime="2026-01-10">Jan 10</time>
				<p>Published by the author. Read more articles in the archive.
				Browse posts by category or tags and leave comments.</p></article></body></html>`,
			want: types.BusinessBlog,
		},
		{
			name: "local business from contact markers",
			markup: `<html><body><h1>Visit us today</h1>
				<p>Opening hours, directions and location details below. Call us
				for an appointment.</p>
				<address>12 Main St</address><a href="tel:+15551234">Call</a></body></html>`,
			want: types.BusinessLocalBusiness,
		},
		{
			name:   "bland content is unknown",
			markup: `<html><body><p>Hello there, welcome along.</p></body></html>`,
			want:   types.BusinessUnknown,
		},
	}

	extractor := New(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := extractor.Extract(parseDoc(t, tt.markup))
			assert.Equal(t, tt.want, features.BusinessType)
		})
	}
}

func TestExtractKeywords(t *testing.T) {
	markup := `<html><body>
		<h1>Cloud Accounting Software</h1>
		<p>Our cloud accounting software automates invoicing. Accounting teams
		trust our cloud accounting software for compliance, invoicing and
		reporting. Modern accounting starts with reliable software.</p>
	</body></html>`

	extractor := New(zap.NewNop())

	t.Run("deterministic across runs", func(t *testing.T) {
		first := extractor.Extract(parseDoc(t, markup)).Keywords
		second := extractor.Extract(parseDoc(t, markup)).Keywords
		assert.Equal(t, first, second)
	})

	t.Run("stop words never appear", func(t *testing.T) {
		for _, kw := range extractor.Extract(parseDoc(t, markup)).Keywords {
			for _, word := range strings.Fields(kw.Phrase) {
				assert.False(t, stopWords[word], "stop word %q leaked into keywords", word)
			}
		}
	})

	t.Run("scores sorted descending", func(t *testing.T) {
		keywords := extractor.Extract(parseDoc(t, markup)).Keywords
		require.NotEmpty(t, keywords)
		for i := 1; i < len(keywords); i++ {
			assert.GreaterOrEqual(t, keywords[i-1].Score, keywords[i].Score)
		}
	})

	t.Run("heading phrase outranks body-only phrase", func(t *testing.T) {
		keywords := extractor.Extract(parseDoc(t, markup)).Keywords
		rank := func(phrase string) int {
			for i, kw := range keywords {
				if kw.Phrase == phrase {
					return i
				}
			}
			return -1
		}
		accounting := rank("accounting")
		invoicing := rank("invoicing")
		require.GreaterOrEqual(t, accounting, 0)
		require.GreaterOrEqual(t, invoicing, 0)
		assert.Less(t, accounting, invoicing)
	})

	t.Run("capped at twenty", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("<html><body><p>")
		for _, w := range []string{
			"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf",
			"hotel", "india", "juliett", "kilo", "lima", "mike", "november",
			"oscar", "papa", "quebec", "romeo", "sierra", "tango", "uniform",
			"victor", "whiskey", "xray", "yankee", "zulu",
		} {
			sb.WriteString(w + ". ")
		}
		sb.WriteString("</p></body></html>")
		keywords := extractor.Extract(parseDoc(t, sb.String())).Keywords
		assert.LessOrEqual(t, len(keywords), 20)
	})

	t.Run("empty body yields no keywords", func(t *testing.T) {
		keywords := extractor.Extract(parseDoc(t, `<html><body></body></html>`)).Keywords
		assert.Empty(t, keywords)
	})
}

func TestHeadExcludedFromSignals(t *testing.T) {
	// Title and meta text must not feed extraction; injection rewrites the
	// head and analysis has to stay stable across that rewrite.
	markup := `<html><head>
		<title>Zebra Zeppelin Zirconium</title>
		<meta name="description" content="quixotic quinoa quasar">
	</head><body><p>Simple visible sentence about gardening tools and gardening tips.</p></body></html>`

	extractor := New(zap.NewNop())
	features := extractor.Extract(parseDoc(t, markup))

	for _, kw := range features.Keywords {
		assert.NotContains(t, kw.Phrase, "zebra")
		assert.NotContains(t, kw.Phrase, "quixotic")
	}
	assert.NotContains(t, features.BodyText, "Zeppelin")
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"html lang attribute", `<html lang="en-US"><body></body></html>`, "en"},
		{"plain subtag", `<html lang="de"><body></body></html>`, "de"},
		{
			"content-language fallback",
			`<html><head><meta http-equiv="Content-Language" content="fr-CA"></head><body></body></html>`,
			"fr",
		},
		{"absent", `<html><body></body></html>`, ""},
	}

	extractor := New(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := extractor.Extract(parseDoc(t, tt.markup))
			assert.Equal(t, tt.want, features.Language)
		})
	}
}

func TestSummary(t *testing.T) {
	markup := `<html><body>
		<p>Short. This sentence is long enough to qualify for the summary.
		Another qualifying sentence describes the product in enough detail.
		No! A third qualifying sentence rounds out the generated summary text.
		A fourth qualifying sentence should never make it into the output.</p>
	</body></html>`

	extractor := New(zap.NewNop())
	features := extractor.Extract(parseDoc(t, markup))

	assert.Contains(t, features.Summary, "long enough to qualify")
	assert.NotContains(t, features.Summary, "fourth qualifying")
	assert.NotContains(t, features.Summary, "Short.")
}
