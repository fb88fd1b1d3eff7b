package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"

	"github.com/North-Head-Digital/nhd-website/pkg/endpoints"
)

// LoadSiteConfig reads the page-level form configuration (the object a page
// publishes as NHD_CONFIG) from a YAML or JSON file.
func LoadSiteConfig(path string) (endpoints.SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return endpoints.SiteConfig{}, fmt.Errorf("failed to read site config: %w", err)
	}

	raw := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := sonic.Unmarshal(data, &raw); err != nil {
			return endpoints.SiteConfig{}, fmt.Errorf("failed to unmarshal site config: %w", err)
		}
	default:
		var doc map[interface{}]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return endpoints.SiteConfig{}, fmt.Errorf("failed to unmarshal site config: %w", err)
		}
		for k, v := range doc {
			raw[fmt.Sprint(k)] = v
		}
	}

	return SiteConfigFromMap(raw)
}

// SiteConfigFromMap decodes a loosely typed page configuration object.
// Unknown keys are ignored and non-string values are rejected.
func SiteConfigFromMap(raw map[string]interface{}) (endpoints.SiteConfig, error) {
	var site endpoints.SiteConfig
	if len(raw) == 0 {
		return site, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &site,
	})
	if err != nil {
		return site, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return endpoints.SiteConfig{}, fmt.Errorf("failed to decode site config: %w", err)
	}

	return site, nil
}

// SiteSource returns a function yielding the site configuration for one
// submission. When file is set it is re-read on every call and read errors
// fall back to the static value.
func SiteSource(static endpoints.SiteConfig, file string, onError func(error)) func() endpoints.SiteConfig {
	if file == "" {
		return func() endpoints.SiteConfig { return static }
	}

	return func() endpoints.SiteConfig {
		site, err := LoadSiteConfig(file)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return static
		}
		return site
	}
}
