package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"os"
	"strings"

	"github.com/isgo-golgo13/seo-elevator/internal/common/yamlutil"
)

const defaultLocale = "en_US"

// Address is the postal address used in the Organization JSON-LD entity.
type Address struct {
	Street     string `yaml:"street" json:"street"`
	City       string `yaml:"city" json:"city"`
	State      string `yaml:"state" json:"state"`
	PostalCode string `yaml:"postal_code" json:"postal_code"`
	Country    string `yaml:"country" json:"country"`
}

// SeoConfig is the canonical site identity used for metadata generation.
// Immutable once built; construct it through Builder.
type SeoConfig struct {
	SiteName            string   `yaml:"site_name" json:"site_name"`
	SiteURL             string   `yaml:"site_url" json:"site_url"`
	TwitterHandle       string   `yaml:"twitter_handle" json:"twitter_handle,omitempty"`
	DefaultImage        string   `yaml:"default_image" json:"default_image,omitempty"`
	ContactEmail        string   `yaml:"contact_email" json:"contact_email,omitempty"`
	Phone               string   `yaml:"phone" json:"phone,omitempty"`
	Address             *Address `yaml:"address" json:"address,omitempty"`
	Locale              string   `yaml:"locale" json:"locale"`
	TitleOverride       string   `yaml:"title_override" json:"title_override,omitempty"`
	DescriptionOverride string   `yaml:"description_override" json:"description_override,omitempty"`
	ExtraKeywords       []string `yaml:"extra_keywords" json:"extra_keywords,omitempty"`
}

// Builder assembles and validates a SeoConfig.
type Builder struct {
	cfg SeoConfig
}

// NewBuilder creates a Builder with defaults applied.
func NewBuilder() *Builder {
	return &Builder{cfg: SeoConfig{Locale: defaultLocale}}
}

func (b *Builder) SiteName(name string) *Builder {
	b.cfg.SiteName = name
	return b
}

func (b *Builder) SiteURL(u string) *Builder {
	b.cfg.SiteURL = u
	return b
}

func (b *Builder) TwitterHandle(handle string) *Builder {
	b.cfg.TwitterHandle = handle
	return b
}

func (b *Builder) DefaultImage(image string) *Builder {
	b.cfg.DefaultImage = image
	return b
}

func (b *Builder) ContactEmail(email string) *Builder {
	b.cfg.ContactEmail = email
	return b
}

func (b *Builder) Phone(phone string) *Builder {
	b.cfg.Phone = phone
	return b
}

func (b *Builder) Address(addr Address) *Builder {
	b.cfg.Address = &addr
	return b
}

func (b *Builder) Locale(locale string) *Builder {
	b.cfg.Locale = locale
	return b
}

func (b *Builder) TitleOverride(title string) *Builder {
	b.cfg.TitleOverride = title
	return b
}

func (b *Builder) DescriptionOverride(desc string) *Builder {
	b.cfg.DescriptionOverride = desc
	return b
}

func (b *Builder) ExtraKeywords(keywords []string) *Builder {
	b.cfg.ExtraKeywords = keywords
	return b
}

// Build validates the assembled config and returns it.
// All field problems are collected into a single ValidationError.
func (b *Builder) Build() (*SeoConfig, error) {
	cfg := b.cfg
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	cfg.TwitterHandle = normalizeTwitterHandle(cfg.TwitterHandle)

	ec := newErrorCollector()

	if strings.TrimSpace(cfg.SiteName) == "" {
		ec.add("site_name", "is required")
	}
	validateSiteURL(ec, cfg.SiteURL)
	if cfg.DefaultImage != "" && !isAbsoluteURL(cfg.DefaultImage) {
		ec.add("default_image", "must be an absolute URL, got %q", cfg.DefaultImage)
	}
	if cfg.ContactEmail != "" {
		if _, err := mail.ParseAddress(cfg.ContactEmail); err != nil {
			ec.add("contact_email", "is not a valid email address: %q", cfg.ContactEmail)
		}
	}

	if ec.hasErrors() {
		return nil, ec.toError()
	}

	// Canonical form: no trailing slash on the site root.
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	return &cfg, nil
}

// Load reads a SeoConfig from a YAML file and validates it.
// Unknown fields are rejected to catch typos.
func Load(path string) (*SeoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg SeoConfig
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	b := &Builder{cfg: cfg}
	built, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return built, nil
}

func validateSiteURL(ec *errorCollector, raw string) {
	if strings.TrimSpace(raw) == "" {
		ec.add("site_url", "is required")
		return
	}
	if !isAbsoluteURL(raw) {
		ec.add("site_url", "must be an absolute http(s) URL, got %q", raw)
	}
}

func isAbsoluteURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// normalizeTwitterHandle ensures a leading @ on non-empty handles.
func normalizeTwitterHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	if handle == "" || strings.HasPrefix(handle, "@") {
		return handle
	}
	return "@" + handle
}
