package endpoints

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "https://api.example.com", Normalize("  https://api.example.com///  "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "", Normalize("/"))
	assert.Equal(t, "http://x/api", Normalize("http://x/api"))
}

func TestDefaultBaseURL(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"localhost", LocalBaseURL},
		{"localhost:3001", LocalBaseURL},
		{"127.0.0.1", LocalBaseURL},
		{"northheaddigital.com", ProductionBaseURL},
		{"", ProductionBaseURL},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultBaseURL(tt.host))
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		explicit string
		cfg      SiteConfig
		host     string
		want     []string
	}{
		{
			name: "empty config on localhost",
			kind: Contact,
			host: "localhost",
			want: []string{"http://localhost:5000/api/contact"},
		},
		{
			name: "empty config in production",
			kind: Newsletter,
			host: "northheaddigital.com",
			want: []string{"https://nhd-api-production.up.railway.app/api/newsletter/subscribe"},
		},
		{
			name:     "explicit override comes first",
			kind:     Contact,
			explicit: " https://forms.example.com/contact/ ",
			host:     "localhost",
			want:     []string{"https://forms.example.com/contact", "http://localhost:5000/api/contact"},
		},
		{
			name:     "explicit override wins over config endpoint",
			kind:     Contact,
			explicit: "https://a.example.com/contact",
			cfg:      SiteConfig{ContactEndpoint: "https://b.example.com/contact"},
			host:     "localhost",
			want:     []string{"https://a.example.com/contact", "http://localhost:5000/api/contact"},
		},
		{
			name: "config endpoint and api base",
			kind: Newsletter,
			cfg: SiteConfig{
				APIBaseURL:         "https://api.example.com/",
				NewsletterEndpoint: "https://hooks.example.com/subscribe",
			},
			host: "localhost",
			want: []string{"https://hooks.example.com/subscribe", "https://api.example.com/api/newsletter/subscribe"},
		},
		{
			name:     "duplicate of computed endpoint is dropped",
			kind:     Contact,
			explicit: "http://localhost:5000/api/contact/",
			host:     "127.0.0.1",
			want:     []string{"http://localhost:5000/api/contact"},
		},
		{
			name:     "whitespace override is absent",
			kind:     Contact,
			explicit: "   ",
			cfg:      SiteConfig{ContactEndpoint: "  "},
			host:     "example.org",
			want:     []string{"https://nhd-api-production.up.railway.app/api/contact"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.kind, tt.explicit, tt.cfg, tt.host))
		})
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"b", "", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)

	seen := map[string]bool{}
	for _, e := range got {
		assert.False(t, seen[e], "duplicate %q", e)
		seen[e] = true
	}
	assert.Empty(t, Dedupe(nil))
}
