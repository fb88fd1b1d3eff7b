// Package endpoints computes the ordered list of URLs a site form submits to.
package endpoints

import (
	"strings"

	"github.com/North-Head-Digital/nhd-website/pkg/utils"
)

const (
	// LocalBaseURL is the API base used while the site is served from a development host.
	LocalBaseURL = "http://localhost:5000"
	// ProductionBaseURL is the API base used everywhere else.
	ProductionBaseURL = "https://nhd-api-production.up.railway.app"
)

// Kind identifies which site form an endpoint list is built for.
type Kind string

const (
	Contact    Kind = "contact"
	Newsletter Kind = "newsletter"
)

// Path returns the API path suffix appended to the base URL.
func (k Kind) Path() string {
	switch k {
	case Newsletter:
		return "/api/newsletter/subscribe"
	default:
		return "/api/contact"
	}
}

// SiteConfig mirrors the configuration object a page may publish for its forms.
// Every field is optional.
type SiteConfig struct {
	APIBaseURL         string `mapstructure:"api_base_url" yaml:"apiBaseUrl" json:"apiBaseUrl"`
	ContactEndpoint    string `mapstructure:"contact_endpoint" yaml:"contactEndpoint" json:"contactEndpoint"`
	NewsletterEndpoint string `mapstructure:"newsletter_endpoint" yaml:"newsletterEndpoint" json:"newsletterEndpoint"`
}

// Endpoint returns the form-specific override for kind.
func (c SiteConfig) Endpoint(kind Kind) string {
	if kind == Newsletter {
		return c.NewsletterEndpoint
	}
	return c.ContactEndpoint
}

// Normalize trims whitespace and trailing slashes. An empty result means absent.
func Normalize(endpoint string) string {
	return strings.TrimRight(strings.TrimSpace(endpoint), "/")
}

// DefaultBaseURL picks the API base for the host the page is served from.
func DefaultBaseURL(host string) string {
	if utils.IsLocalHost(host) {
		return LocalBaseURL
	}
	return ProductionBaseURL
}

// APIBaseURL returns the configured API base, falling back to DefaultBaseURL.
func APIBaseURL(cfg SiteConfig, host string) string {
	if base := Normalize(cfg.APIBaseURL); base != "" {
		return base
	}
	return Normalize(DefaultBaseURL(host))
}

// Resolve builds the candidate endpoints for kind. The explicit per-form
// override takes precedence over the config override; the API base plus the
// kind's path always follows. Empty entries and repeats are dropped.
func Resolve(kind Kind, explicit string, cfg SiteConfig, host string) []string {
	override := Normalize(explicit)
	if override == "" {
		override = Normalize(cfg.Endpoint(kind))
	}

	return Dedupe([]string{override, APIBaseURL(cfg, host) + kind.Path()})
}

// Dedupe removes empty strings and exact duplicates, keeping first-seen order.
func Dedupe(candidates []string) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
