// Package validation provides device profile validation functionality
package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/devsim/devsim/pkg/types"
)

// ValidationError represents a validation error
type ValidationError struct {
	Target  string
	Field   string
	Message string
	Level   ValidationLevel
}

// ValidationLevel represents error severity
type ValidationLevel string

const (
	ValidationLevelError   ValidationLevel = "error"
	ValidationLevelWarning ValidationLevel = "warning"
	ValidationLevelInfo    ValidationLevel = "info"
)

func (e *ValidationError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("[%s] %s: %s", e.Level, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s.%s: %s", e.Level, e.Target, e.Field, e.Message)
}

// ValidationResult contains validation results
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// AddError adds an error to the validation result
func (r *ValidationResult) AddError(target, field, message string, level ValidationLevel) {
	r.Errors = append(r.Errors, ValidationError{
		Target:  target,
		Field:   field,
		Message: message,
		Level:   level,
	})
	if level == ValidationLevelError {
		r.Valid = false
	}
}

// Issues returns the entries of the given level
func (r *ValidationResult) Issues(level ValidationLevel) []ValidationError {
	var out []ValidationError
	for _, e := range r.Errors {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Err returns a *ProfileError carrying the error level entries, or nil
// when the result is valid.
func (r *ValidationResult) Err(source string) error {
	if r.Valid {
		return nil
	}
	return &ProfileError{Source: source, Errors: r.Issues(ValidationLevelError)}
}

// ProfileValidator validates raw device profile documents. It works on the
// generic decoded form so that missing fields can be told apart from zero
// values.
type ProfileValidator struct{}

// NewProfileValidator creates a new profile validator
func NewProfileValidator() *ProfileValidator {
	return &ProfileValidator{}
}

// Validate checks a decoded profile document and collects every problem
func (v *ProfileValidator) Validate(doc map[string]any) *ValidationResult {
	result := &ValidationResult{Valid: true}

	name, _ := doc["friendlyName"].(string)
	target := name

	v.validateHeader(doc, result)
	os := v.validateSystemInfo(target, doc, result)
	v.validateScreens(target, os, doc, result)

	return result
}

func (v *ProfileValidator) validateHeader(doc map[string]any, result *ValidationResult) {
	raw, ok := doc["friendlyName"]
	name, isString := raw.(string)
	switch {
	case !ok:
		result.AddError("", "friendlyName", "friendly name is required", ValidationLevelError)
	case !isString:
		result.AddError("", "friendlyName", "friendly name must be a string", ValidationLevelError)
	case strings.TrimSpace(name) == "":
		result.AddError("", "friendlyName", "friendly name cannot be empty", ValidationLevelError)
	}

	raw, ok = doc["version"]
	if !ok {
		result.AddError(name, "version", "version is required", ValidationLevelError)
		return
	}
	version, isNumber := number(raw)
	if !isNumber || version != types.ProfileVersion {
		result.AddError(name, "version", fmt.Sprintf("unsupported version %v, expected %d", raw, types.ProfileVersion), ValidationLevelError)
	}
}

// validateSystemInfo returns the lowercased operating system, if any
func (v *ProfileValidator) validateSystemInfo(target string, doc map[string]any, result *ValidationResult) string {
	raw, ok := doc["SystemInfo"]
	if !ok {
		result.AddError(target, "SystemInfo", "system info is required", ValidationLevelError)
		return ""
	}
	info, ok := raw.(map[string]any)
	if !ok {
		result.AddError(target, "SystemInfo", "system info must be an object", ValidationLevelError)
		return ""
	}

	os, _ := info["operatingSystem"].(string)
	if strings.TrimSpace(os) == "" {
		result.AddError(target, "SystemInfo.operatingSystem", "operating system is required", ValidationLevelError)
		return ""
	}

	os = strings.ToLower(os)
	if !strings.Contains(os, "android") && !strings.Contains(os, "ios") {
		result.AddError(target, "SystemInfo.operatingSystem", fmt.Sprintf("operating system %q must be Android or iOS", info["operatingSystem"]), ValidationLevelError)
		return ""
	}
	return os
}

func (v *ProfileValidator) validateScreens(target, os string, doc map[string]any, result *ValidationResult) {
	raw, ok := doc["Screens"]
	if !ok {
		result.AddError(target, "Screens", "at least one screen is required", ValidationLevelError)
		return
	}
	screens, ok := raw.([]any)
	if !ok {
		result.AddError(target, "Screens", "screens must be a list", ValidationLevelError)
		return
	}
	if len(screens) == 0 {
		result.AddError(target, "Screens", "at least one screen is required", ValidationLevelError)
		return
	}
	if len(screens) > 1 {
		result.AddError(target, "Screens", fmt.Sprintf("%d screens defined, only the first is simulated", len(screens)), ValidationLevelInfo)
	}

	for i, rawScreen := range screens {
		field := fmt.Sprintf("Screens[%d]", i)
		screen, ok := rawScreen.(map[string]any)
		if !ok {
			result.AddError(target, field, "screen must be an object", ValidationLevelError)
			continue
		}
		v.validateScreen(target, field, os, screen, result)
	}
}

func (v *ProfileValidator) validateScreen(target, field, os string, screen map[string]any, result *ValidationResult) {
	for _, key := range []string{"width", "height"} {
		raw, ok := screen[key]
		if !ok {
			result.AddError(target, field+"."+key, key+" is required", ValidationLevelError)
			continue
		}
		n, ok := number(raw)
		if !ok || n <= 0 || n != math.Trunc(n) {
			result.AddError(target, field+"."+key, fmt.Sprintf("%s must be a positive integer, got %v", key, raw), ValidationLevelError)
		}
	}

	raw, ok := screen["dpi"]
	if !ok {
		result.AddError(target, field+".dpi", "dpi is required", ValidationLevelError)
	} else if n, ok := number(raw); !ok || n <= 0 {
		result.AddError(target, field+".dpi", fmt.Sprintf("dpi must be positive, got %v", raw), ValidationLevelError)
	}

	if raw, ok := screen["navigationBarHeight"]; ok {
		n, isNumber := number(raw)
		switch {
		case !isNumber || n < 0:
			result.AddError(target, field+".navigationBarHeight", fmt.Sprintf("navigation bar height must not be negative, got %v", raw), ValidationLevelError)
		case n > 0 && os != "" && !strings.Contains(os, "android"):
			result.AddError(target, field+".navigationBarHeight", "navigation bar is only simulated on Android", ValidationLevelWarning)
		}
	}

	raw, ok = screen["orientations"]
	if !ok {
		result.AddError(target, field+".orientations", "no orientations listed, all four are assumed", ValidationLevelInfo)
		return
	}
	list, ok := raw.([]any)
	if !ok {
		result.AddError(target, field+".orientations", "orientations must be a list", ValidationLevelError)
		return
	}
	if len(list) == 0 {
		result.AddError(target, field+".orientations", "no orientations listed, all four are assumed", ValidationLevelInfo)
		return
	}

	seen := make(map[types.Orientation]bool)
	for j, rawData := range list {
		odField := fmt.Sprintf("%s.orientations[%d]", field, j)
		data, ok := rawData.(map[string]any)
		if !ok {
			result.AddError(target, odField, "orientation entry must be an object", ValidationLevelError)
			continue
		}

		o, err := orientation(data["orientation"])
		if err != nil {
			result.AddError(target, odField+".orientation", err.Error(), ValidationLevelError)
		} else if seen[o] {
			result.AddError(target, odField+".orientation", fmt.Sprintf("duplicate orientation %s", o), ValidationLevelError)
		} else {
			seen[o] = true
		}

		v.validateInsets(target, odField+".insets", data["insets"], result)
		v.validateSafeArea(target, odField+".safeArea", data["safeArea"], result)
	}
}

func (v *ProfileValidator) validateInsets(target, field string, raw any, result *ValidationResult) {
	if raw == nil {
		return
	}
	insets, ok := raw.(map[string]any)
	if !ok {
		result.AddError(target, field, "insets must be an object", ValidationLevelError)
		return
	}
	for _, edge := range []string{"left", "top", "right", "bottom"} {
		rawEdge, ok := insets[edge]
		if !ok {
			continue
		}
		n, isNumber := number(rawEdge)
		if !isNumber || n < 0 {
			result.AddError(target, field+"."+edge, fmt.Sprintf("inset must not be negative, got %v", rawEdge), ValidationLevelError)
		}
	}
}

func (v *ProfileValidator) validateSafeArea(target, field string, raw any, result *ValidationResult) {
	if raw == nil {
		return
	}
	area, ok := raw.(map[string]any)
	if !ok {
		result.AddError(target, field, "safe area must be an object", ValidationLevelError)
		return
	}
	for _, key := range []string{"width", "height"} {
		n, isNumber := number(area[key])
		if !isNumber || n < 0 {
			result.AddError(target, field+"."+key, fmt.Sprintf("%s must not be negative, got %v", key, area[key]), ValidationLevelError)
		}
	}
}

// ValidateMultiple checks a set of loaded profiles for clashing names
func (v *ProfileValidator) ValidateMultiple(profiles []*types.DeviceProfile) *ValidationResult {
	result := &ValidationResult{Valid: true}

	names := make(map[string]string)
	for _, p := range profiles {
		key := strings.ToLower(p.FriendlyName)
		if first, ok := names[key]; ok {
			result.AddError(p.FriendlyName, "friendlyName", fmt.Sprintf("duplicate device name, %s shadows %s", p.Source, first), ValidationLevelWarning)
			continue
		}
		names[key] = p.Source
	}

	return result
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func orientation(raw any) (types.Orientation, error) {
	switch v := raw.(type) {
	case nil:
		return types.OrientationUnknown, fmt.Errorf("orientation is required")
	case string:
		return types.ParseOrientation(v)
	default:
		n, ok := number(v)
		o := types.Orientation(n)
		if !ok || n != math.Trunc(n) || !o.IsValid() {
			return types.OrientationUnknown, fmt.Errorf("unknown orientation %v", raw)
		}
		return o, nil
	}
}
