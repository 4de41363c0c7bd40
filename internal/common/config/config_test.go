package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderValidation(t *testing.T) {
	t.Run("minimal valid config", func(t *testing.T) {
		cfg, err := NewBuilder().
			SiteName("Acme").
			SiteURL("https://acme.com").
			Build()
		require.NoError(t, err)
		assert.Equal(t, "Acme", cfg.SiteName)
		assert.Equal(t, "https://acme.com", cfg.SiteURL)
		assert.Equal(t, "en_US", cfg.Locale)
	})

	t.Run("missing site name", func(t *testing.T) {
		_, err := NewBuilder().SiteURL("https://acme.com").Build()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "site_name", verr.Fields[0].Field)
	})

	t.Run("relative site url rejected", func(t *testing.T) {
		_, err := NewBuilder().SiteName("Acme").SiteURL("/about").Build()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "site_url", verr.Fields[0].Field)
	})

	t.Run("non-http scheme rejected", func(t *testing.T) {
		_, err := NewBuilder().SiteName("Acme").SiteURL("ftp://acme.com").Build()
		require.Error(t, err)
	})

	t.Run("problems collected together", func(t *testing.T) {
		_, err := NewBuilder().
			SiteURL("not a url").
			DefaultImage("also-relative.png").
			ContactEmail("not-an-email").
			Build()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		cfg, err := NewBuilder().SiteName("Acme").SiteURL("https://acme.com/").Build()
		require.NoError(t, err)
		assert.Equal(t, "https://acme.com", cfg.SiteURL)
	})

	t.Run("twitter handle normalized", func(t *testing.T) {
		cfg, err := NewBuilder().
			SiteName("Acme").
			SiteURL("https://acme.com").
			TwitterHandle("acmehq").
			Build()
		require.NoError(t, err)
		assert.Equal(t, "@acmehq", cfg.TwitterHandle)

		cfg, err = NewBuilder().
			SiteName("Acme").
			SiteURL("https://acme.com").
			TwitterHandle("@already").
			Build()
		require.NoError(t, err)
		assert.Equal(t, "@already", cfg.TwitterHandle)
	})

	t.Run("valid optional fields pass", func(t *testing.T) {
		cfg, err := NewBuilder().
			SiteName("Acme").
			SiteURL("https://acme.com").
			DefaultImage("https://acme.com/share.png").
			ContactEmail("hello@acme.com").
			Phone("+1-555-0100").
			Address(Address{Street: "12 Main St", City: "Springfield"}).
			Build()
		require.NoError(t, err)
		require.NotNil(t, cfg.Address)
		assert.Equal(t, "Springfield", cfg.Address.City)
	})
}

func TestLoad(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "seo.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := writeConfig(t, `
site_name: Acme
site_url: https://acme.com
twitter_handle: acmehq
locale: en_GB
extra_keywords:
  - widgets
  - tools
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme", cfg.SiteName)
		assert.Equal(t, "@acmehq", cfg.TwitterHandle)
		assert.Equal(t, "en_GB", cfg.Locale)
		assert.Equal(t, []string{"widgets", "tools"}, cfg.ExtraKeywords)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := writeConfig(t, `
site_name: Acme
site_url: https://acme.com
sitename_typo: oops
`)
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("invalid content surfaces validation error", func(t *testing.T) {
		path := writeConfig(t, `
site_name: Acme
site_url: not-absolute
`)
		_, err := Load(path)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}
