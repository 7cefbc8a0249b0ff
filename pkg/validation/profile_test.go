package validation_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/devsim/devsim/pkg/types"
	"github.com/devsim/devsim/pkg/validation"
)

const minimalProfile = `{
	"friendlyName": "Test Phone",
	"version": 1,
	"Screens": [{"width": 1080, "height": 1920, "dpi": 450}],
	"SystemInfo": {"operatingSystem": "Android"}
}`

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

// mutate decodes the minimal profile and applies fn to it
func mutate(t *testing.T, fn func(m map[string]any)) map[string]any {
	t.Helper()
	m := decode(t, minimalProfile)
	fn(m)
	return m
}

func firstScreen(m map[string]any) map[string]any {
	return m["Screens"].([]any)[0].(map[string]any)
}

func TestProfileValidator_Validate(t *testing.T) {
	validator := validation.NewProfileValidator()

	tests := []struct {
		name          string
		doc           func(t *testing.T) map[string]any
		expectInvalid bool
		expectedField string
	}{
		{
			name:          "minimal profile",
			doc:           func(t *testing.T) map[string]any { return decode(t, minimalProfile) },
			expectInvalid: false,
		},
		{
			name: "missing friendly name",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(m, "friendlyName") })
			},
			expectInvalid: true,
			expectedField: "friendlyName",
		},
		{
			name: "empty friendly name",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["friendlyName"] = "  " })
			},
			expectInvalid: true,
			expectedField: "friendlyName",
		},
		{
			name: "missing version",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(m, "version") })
			},
			expectInvalid: true,
			expectedField: "version",
		},
		{
			name: "unsupported version",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["version"] = 2.0 })
			},
			expectInvalid: true,
			expectedField: "version",
		},
		{
			name: "missing system info",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(m, "SystemInfo") })
			},
			expectInvalid: true,
			expectedField: "SystemInfo",
		},
		{
			name: "empty operating system",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["SystemInfo"] = map[string]any{"operatingSystem": ""} })
			},
			expectInvalid: true,
			expectedField: "SystemInfo.operatingSystem",
		},
		{
			name: "missing operating system",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["SystemInfo"] = map[string]any{"deviceModel": "x"} })
			},
			expectInvalid: true,
			expectedField: "SystemInfo.operatingSystem",
		},
		{
			name: "unknown operating system",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["SystemInfo"] = map[string]any{"operatingSystem": "Windows"} })
			},
			expectInvalid: true,
			expectedField: "SystemInfo.operatingSystem",
		},
		{
			name: "missing screens",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(m, "Screens") })
			},
			expectInvalid: true,
			expectedField: "Screens",
		},
		{
			name: "empty screens",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { m["Screens"] = []any{} })
			},
			expectInvalid: true,
			expectedField: "Screens",
		},
		{
			name: "missing width",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(firstScreen(m), "width") })
			},
			expectInvalid: true,
			expectedField: "Screens[0].width",
		},
		{
			name: "missing height",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(firstScreen(m), "height") })
			},
			expectInvalid: true,
			expectedField: "Screens[0].height",
		},
		{
			name: "missing dpi",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { delete(firstScreen(m), "dpi") })
			},
			expectInvalid: true,
			expectedField: "Screens[0].dpi",
		},
		{
			name: "zero width",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { firstScreen(m)["width"] = 0.0 })
			},
			expectInvalid: true,
			expectedField: "Screens[0].width",
		},
		{
			name: "negative inset",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) {
					firstScreen(m)["orientations"] = []any{
						map[string]any{"orientation": 1.0, "insets": map[string]any{"top": -5.0}},
					}
				})
			},
			expectInvalid: true,
			expectedField: "Screens[0].orientations[0].insets.top",
		},
		{
			name: "unknown orientation",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) {
					firstScreen(m)["orientations"] = []any{map[string]any{"orientation": 7.0}}
				})
			},
			expectInvalid: true,
			expectedField: "Screens[0].orientations[0].orientation",
		},
		{
			name: "duplicate orientation",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) {
					firstScreen(m)["orientations"] = []any{
						map[string]any{"orientation": 1.0},
						map[string]any{"orientation": "portrait"},
					}
				})
			},
			expectInvalid: true,
			expectedField: "Screens[0].orientations[1].orientation",
		},
		{
			name: "negative navigation bar",
			doc: func(t *testing.T) map[string]any {
				return mutate(t, func(m map[string]any) { firstScreen(m)["navigationBarHeight"] = -1.0 })
			},
			expectInvalid: true,
			expectedField: "Screens[0].navigationBarHeight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.Validate(tt.doc(t))

			if tt.expectInvalid {
				if result.Valid {
					t.Error("Expected validation to fail, but it passed")
				}
			} else {
				if !result.Valid {
					t.Errorf("Expected validation to pass, but it failed: %v", result.Errors)
				}
				return
			}

			found := false
			for _, err := range result.Issues(validation.ValidationLevelError) {
				if err.Field == tt.expectedField {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Expected validation error for field %s, got %v", tt.expectedField, result.Errors)
			}
		})
	}
}

func TestProfileValidator_CollectsAllErrors(t *testing.T) {
	validator := validation.NewProfileValidator()

	result := validator.Validate(decode(t, `{"Screens": [{}]}`))

	fields := make(map[string]bool)
	for _, e := range result.Issues(validation.ValidationLevelError) {
		fields[e.Field] = true
	}

	for _, want := range []string{
		"friendlyName",
		"version",
		"SystemInfo",
		"Screens[0].width",
		"Screens[0].height",
		"Screens[0].dpi",
	} {
		if !fields[want] {
			t.Errorf("missing error for %s, got %v", want, result.Errors)
		}
	}
}

func TestProfileValidator_Warnings(t *testing.T) {
	validator := validation.NewProfileValidator()

	doc := mutate(t, func(m map[string]any) {
		m["SystemInfo"] = map[string]any{"operatingSystem": "iOS 14.1"}
		firstScreen(m)["navigationBarHeight"] = 120.0
	})

	result := validator.Validate(doc)
	if !result.Valid {
		t.Fatalf("Warnings don't make result invalid: %v", result.Errors)
	}

	warnings := result.Issues(validation.ValidationLevelWarning)
	if len(warnings) != 1 || warnings[0].Field != "Screens[0].navigationBarHeight" {
		t.Errorf("expected navigation bar warning, got %v", warnings)
	}

	info := result.Issues(validation.ValidationLevelInfo)
	if len(info) != 1 || info[0].Field != "Screens[0].orientations" {
		t.Errorf("expected defaulted orientations info, got %v", info)
	}
}

func TestValidationResult_Err(t *testing.T) {
	validator := validation.NewProfileValidator()

	if err := validator.Validate(decode(t, minimalProfile)).Err("ok.device.json"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	err := validator.Validate(decode(t, `{}`)).Err("broken.device.json")
	if !errors.Is(err, validation.ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile, got %v", err)
	}

	var perr *validation.ProfileError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProfileError, got %T", err)
	}
	if perr.Source != "broken.device.json" || len(perr.Errors) < 4 {
		t.Errorf("unexpected profile error %+v", perr)
	}
	if !strings.Contains(err.Error(), "broken.device.json") {
		t.Errorf("error should name its source: %v", err)
	}
}

func TestProfileValidator_ValidateMultiple(t *testing.T) {
	validator := validation.NewProfileValidator()

	profiles := []*types.DeviceProfile{
		{FriendlyName: "Pixel 5", Source: "a/pixel5.device.json"},
		{FriendlyName: "iPhone 12", Source: "a/iphone12.device.json"},
		{FriendlyName: "pixel 5", Source: "b/pixel5.device.json"},
	}

	result := validator.ValidateMultiple(profiles)
	if !result.Valid {
		t.Error("duplicate names are warnings")
	}
	warnings := result.Issues(validation.ValidationLevelWarning)
	if len(warnings) != 1 || warnings[0].Target != "pixel 5" {
		t.Errorf("expected one duplicate warning, got %v", warnings)
	}
}
