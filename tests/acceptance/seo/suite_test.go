package seo_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/internal/pipeline"
)

var (
	pipe    *pipeline.Pipeline
	siteCfg *config.SeoConfig
)

func TestSeoAcceptance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SEO Pipeline Acceptance Suite")
}

var _ = BeforeSuite(func() {
	pipe = pipeline.New(zap.NewNop(), nil)

	var err error
	siteCfg, err = config.NewBuilder().
		SiteName("Acme").
		SiteURL("https://acme.com").
		TwitterHandle("acmehq").
		DefaultImage("https://acme.com/share.png").
		ContactEmail("hello@acme.com").
		Build()
	Expect(err).NotTo(HaveOccurred())
})
