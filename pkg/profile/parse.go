// Package profile loads device profiles from disk and keeps them indexed
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devsim/devsim/pkg/types"
	"github.com/devsim/devsim/pkg/validation"
	"gopkg.in/yaml.v3"
)

// Profile file suffixes, matched case-insensitively
var fileSuffixes = []string{".device.json", ".device.yaml", ".device.yml"}

// IsProfileFile reports whether name looks like a device profile file
func IsProfileFile(name string) bool {
	lower := strings.ToLower(filepath.Base(name))
	for _, suffix := range fileSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Parse decodes, validates and completes a device profile. source names the
// input in error messages.
func Parse(data []byte, source string) (*types.DeviceProfile, error) {
	p, _, err := Check(data, source)
	return p, err
}

// Check is Parse that also returns the full validation result, including
// warnings. The result is nil when the document could not be decoded.
func Check(data []byte, source string) (*types.DeviceProfile, *validation.ValidationResult, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, nil, &validation.ProfileError{
			Source: source,
			Errors: []validation.ValidationError{{
				Field:   "document",
				Message: err.Error(),
				Level:   validation.ValidationLevelError,
			}},
		}
	}

	result := validation.NewProfileValidator().Validate(doc)
	if err := result.Err(source); err != nil {
		return nil, result, err
	}

	// Round trip through JSON so YAML and JSON share one decoder
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, result, fmt.Errorf("failed to normalize profile %s: %w", source, err)
	}

	var p types.DeviceProfile
	if err := json.Unmarshal(normalized, &p); err != nil {
		return nil, result, &validation.ProfileError{
			Source: source,
			Errors: []validation.ValidationError{{
				Target:  p.FriendlyName,
				Field:   "document",
				Message: err.Error(),
				Level:   validation.ValidationLevelError,
			}},
		}
	}

	p.Source = source
	applyDefaults(&p)
	return &p, result, nil
}

// LoadFile reads and parses one profile file
func LoadFile(path string) (*types.DeviceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return Parse(data, path)
}

// decodeDocument tries JSON first and falls back to YAML
func decodeDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr == nil {
		return doc, nil
	}

	var yamlDoc map[string]any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil || yamlDoc == nil {
		return nil, fmt.Errorf("failed to parse profile as JSON or YAML: %v", jsonErr)
	}

	// Convert YAML data to JSON so numbers decode the same way
	jsonData, err := json.Marshal(yamlDoc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML profile: %w", err)
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert YAML profile: %w", err)
	}
	return doc, nil
}

// applyDefaults fills optional fields: a screen without orientation data
// supports all four orientations with no insets.
func applyDefaults(p *types.DeviceProfile) {
	for i := range p.Screens {
		screen := &p.Screens[i]
		if len(screen.Orientations) > 0 {
			continue
		}
		screen.Orientations = make([]types.OrientationData, 0, len(types.Orientations))
		for _, o := range types.Orientations {
			screen.Orientations = append(screen.Orientations, types.OrientationData{Orientation: o})
		}
	}
}
