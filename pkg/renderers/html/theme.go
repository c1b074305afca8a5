package html

import (
	"fmt"

	theme "github.com/goliatone/go-theme"
)

// themeState is the renderer's merged view of a go-theme selection: base
// manifest values overlaid with the selected variant's.
type themeState struct {
	name           string
	variantName    string
	defaultVariant string
	templates      map[string]string
	tokens         map[string]string
}

func resolveTheme(selector theme.ThemeSelector, name, variant string) (*themeState, error) {
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("theme selection for %q has no manifest", name)
	}

	manifest := selection.Manifest
	state := &themeState{
		name:           selection.Theme,
		variantName:    selection.Variant,
		defaultVariant: selection.Variant,
		templates:      make(map[string]string, len(manifest.Templates)),
		tokens:         make(map[string]string, len(manifest.Tokens)),
	}
	for key, value := range manifest.Templates {
		state.templates[key] = value
	}
	for key, value := range manifest.Tokens {
		state.tokens[key] = value
	}

	if selection.Variant != "" {
		if v, ok := manifest.Variants[selection.Variant]; ok {
			for key, value := range v.Templates {
				state.templates[key] = value
			}
			for key, value := range v.Tokens {
				state.tokens[key] = value
			}
		}
	}

	return state, nil
}
