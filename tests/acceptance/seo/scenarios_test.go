package seo_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Metadata Injection Scenarios", func() {
	Context("when processing a page with no SEO metadata", func() {
		const bareDoc = `<!DOCTYPE html><html><head></head><body>
<h1>Workshop Tools</h1>
<p>Quality workshop tools with fast shipping. Add to cart and checkout securely.
Every order ships with a lifetime guarantee. Shop the full catalog of hand tools.</p>
</body></html>`

		It("should inject the complete tag set", func() {
			By("Running the full pipeline")
			outcome, err := pipe.Inject(bareDoc, siteCfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(outcome.Log.Failed).To(BeZero())

			By("Verifying the title and description were generated")
			Expect(outcome.HTML).To(ContainSubstring("<title>"))
			Expect(outcome.HTML).To(ContainSubstring(`name="description"`))

			By("Verifying the canonical link points at the site root")
			Expect(outcome.HTML).To(ContainSubstring(`rel="canonical" href="https://acme.com"`))

			By("Verifying Open Graph tags were added")
			Expect(outcome.HTML).To(ContainSubstring(`property="og:title"`))
			Expect(outcome.HTML).To(ContainSubstring(`property="og:description"`))
			Expect(outcome.HTML).To(ContainSubstring(`property="og:image" content="https://acme.com/share.png"`))
			Expect(outcome.HTML).To(ContainSubstring(`property="og:url" content="https://acme.com"`))

			By("Verifying Twitter Card tags were added")
			Expect(outcome.HTML).To(ContainSubstring(`name="twitter:card" content="summary_large_image"`))
			Expect(outcome.HTML).To(ContainSubstring(`name="twitter:site" content="@acmehq"`))

			By("Verifying structured data carries the organization identity")
			Expect(outcome.HTML).To(ContainSubstring(`application/ld+json`))
			Expect(outcome.HTML).To(ContainSubstring(`"@type":"Organization"`))
			Expect(outcome.HTML).To(ContainSubstring(`"url":"https://acme.com"`))

			By("Verifying the audit score reached the maximum")
			Expect(outcome.PostScore).To(Equal(100))
			Expect(outcome.PostScore).To(BeNumerically(">=", outcome.Analysis.Result.SEOScore))
		})

		It("should be idempotent across repeated runs", func() {
			first, err := pipe.Inject(bareDoc, siteCfg)
			Expect(err).NotTo(HaveOccurred())

			second, err := pipe.Inject(first.HTML, siteCfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.HTML).To(Equal(first.HTML))
			Expect(second.Log.Unchanged).To(BeTrue())
			Expect(second.Log.PreHash).To(Equal(second.Log.PostHash))
		})
	})

	Context("when processing a page with stale metadata", func() {
		const staleDoc = `<!DOCTYPE html><html><head>
<title>Old Title</title>
<meta name="description" content="An old, outdated description.">
<meta property="og:title" content="Stale Share Title">
<link rel="canonical" href="https://legacy.example.net/old-path">
</head><body>
<h1>Workshop Tools</h1>
<p>Quality workshop tools with fast shipping. Add to cart and checkout securely.</p>
</body></html>`

		It("should overwrite existing tags instead of duplicating them", func() {
			outcome, err := pipe.Inject(staleDoc, siteCfg)
			Expect(err).NotTo(HaveOccurred())

			By("Verifying stale values are gone")
			Expect(outcome.HTML).NotTo(ContainSubstring("Stale Share Title"))
			Expect(outcome.HTML).NotTo(ContainSubstring("legacy.example.net"))
			Expect(outcome.HTML).NotTo(ContainSubstring("<title>Old Title</title>"))

			By("Verifying each tag appears exactly once")
			Expect(strings.Count(outcome.HTML, "<title>")).To(Equal(1))
			Expect(strings.Count(outcome.HTML, `property="og:title"`)).To(Equal(1))
			Expect(strings.Count(outcome.HTML, `rel="canonical"`)).To(Equal(1))
			Expect(strings.Count(outcome.HTML, "application/ld+json")).To(Equal(1))
		})
	})

	Context("when analyzing without mutating", func() {
		It("should leave the analysis deterministic", func() {
			const doc = `<!DOCTYPE html><html><head></head><body>
<h1>Cloud Accounting</h1>
<p>Our cloud accounting platform offers a free trial, flexible pricing plans
and a powerful dashboard with API integration for every workflow.</p>
</body></html>`

			first, err := pipe.Analyze(doc, siteCfg)
			Expect(err).NotTo(HaveOccurred())
			second, err := pipe.Analyze(doc, siteCfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(second.Result.Keywords).To(Equal(first.Result.Keywords))
			Expect(second.Result.BusinessType).To(Equal(first.Result.BusinessType))
			Expect(second.Ml).To(Equal(first.Ml))
			Expect(second.Recommendations).To(Equal(first.Recommendations))
		})
	})
})
