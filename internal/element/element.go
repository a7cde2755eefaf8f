// Package element adapts the external theming host to the client shell.
//
// The host pushes site copy, colors, and font overrides at arbitrary times,
// before or after the first render. Overrides feed the same state projection
// pipeline as user interactions, and applying the same override twice is a
// no-op.
package element

import (
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"
)

// SiteConfig is the themable site configuration.
type SiteConfig struct {
	SiteTitle            string  `toml:"site_title"`
	Tagline              string  `toml:"tagline"`
	HeroDescription      string  `toml:"hero_description"`
	CTAButton            string  `toml:"cta_button"`
	ContactEmail         string  `toml:"contact_email"`
	ContactPhone         string  `toml:"contact_phone"`
	BackgroundColor      string  `toml:"background_color"`
	SurfaceColor         string  `toml:"surface_color"`
	TextColor            string  `toml:"text_color"`
	PrimaryActionColor   string  `toml:"primary_action_color"`
	SecondaryActionColor string  `toml:"secondary_action_color"`
	FontFamily           string  `toml:"font_family"`
	FontSize             float64 `toml:"font_size"`
}

// DefaultConfig returns the shipped site configuration.
func DefaultConfig() SiteConfig {
	return SiteConfig{
		SiteTitle:            "Agrovision",
		Tagline:              "Future of Farming",
		HeroDescription:      "Revolutionize your agricultural practices with cutting-edge AI technology. Monitor, analyze, and optimize your crops like never before.",
		CTAButton:            "Start Free Trial",
		ContactEmail:         "hello@agrovision.io",
		ContactPhone:         "+1 (888) 555-FARM",
		BackgroundColor:      "#f9fafb",
		SurfaceColor:         "#ffffff",
		TextColor:            "#111827",
		PrimaryActionColor:   "#22c55e",
		SecondaryActionColor: "#f97316",
		FontFamily:           "Poppins",
		FontSize:             16,
	}
}

// Overrides carries the host-provided values. Unset fields keep the default.
type Overrides struct {
	SiteTitle            *string  `toml:"site_title"`
	Tagline              *string  `toml:"tagline"`
	HeroDescription      *string  `toml:"hero_description"`
	CTAButton            *string  `toml:"cta_button"`
	ContactEmail         *string  `toml:"contact_email"`
	ContactPhone         *string  `toml:"contact_phone"`
	BackgroundColor      *string  `toml:"background_color"`
	SurfaceColor         *string  `toml:"surface_color"`
	TextColor            *string  `toml:"text_color"`
	PrimaryActionColor   *string  `toml:"primary_action_color"`
	SecondaryActionColor *string  `toml:"secondary_action_color"`
	FontFamily           *string  `toml:"font_family"`
	FontSize             *float64 `toml:"font_size"`
}

// Merge applies overrides on top of a base configuration.
func Merge(base SiteConfig, ov Overrides) SiteConfig {
	applyString := func(target *string, value *string) {
		if value != nil && *value != "" {
			*target = *value
		}
	}
	applyString(&base.SiteTitle, ov.SiteTitle)
	applyString(&base.Tagline, ov.Tagline)
	applyString(&base.HeroDescription, ov.HeroDescription)
	applyString(&base.CTAButton, ov.CTAButton)
	applyString(&base.ContactEmail, ov.ContactEmail)
	applyString(&base.ContactPhone, ov.ContactPhone)
	applyString(&base.BackgroundColor, ov.BackgroundColor)
	applyString(&base.SurfaceColor, ov.SurfaceColor)
	applyString(&base.TextColor, ov.TextColor)
	applyString(&base.PrimaryActionColor, ov.PrimaryActionColor)
	applyString(&base.SecondaryActionColor, ov.SecondaryActionColor)
	applyString(&base.FontFamily, ov.FontFamily)
	if ov.FontSize != nil && *ov.FontSize > 0 {
		base.FontSize = *ov.FontSize
	}
	return base
}

// LoadOverrides reads a TOML overrides file. Missing file means no overrides.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, fmt.Errorf("overrides path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("failed to stat overrides: %w", err)
	}
	var ov Overrides
	if _, err := toml.DecodeFile(path, &ov); err != nil {
		return Overrides{}, fmt.Errorf("failed to decode overrides: %w", err)
	}
	return ov, nil
}

// Hook holds the registered change handler and the active configuration.
type Hook struct {
	mu       sync.Mutex
	current  SiteConfig
	onChange func(SiteConfig)
}

// NewHook registers a change handler seeded with the default configuration.
// The handler is invoked once with the defaults.
func NewHook(onChange func(SiteConfig)) *Hook {
	h := &Hook{current: DefaultConfig(), onChange: onChange}
	if onChange != nil {
		onChange(h.current)
	}
	return h
}

// Current returns the active configuration.
func (h *Hook) Current() SiteConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Apply merges overrides over the defaults and notifies the handler when the
// result changed. Calling it repeatedly with the same overrides is safe.
func (h *Hook) Apply(ov Overrides) {
	merged := Merge(DefaultConfig(), ov)
	h.mu.Lock()
	changed := merged != h.current
	h.current = merged
	onChange := h.onChange
	h.mu.Unlock()
	if changed && onChange != nil {
		onChange(merged)
	}
}
