package collector

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robertguss/vibe-academy-go/internal/catalog"
	"github.com/robertguss/vibe-academy-go/internal/domain"
)

// SetValue overwrites a scalar field
func SetValue(field string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		if a.Value(field) == value {
			return false, nil
		}
		a.SetValue(field, value)
		return true, nil
	}
}

// Toggle toggles membership in a list field
func Toggle(field string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		a.Toggle(field, value)
		return true, nil
	}
}

// ToggleFeature toggles a feature and drops its priority when deselected
func ToggleFeature(field string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		if !a.Toggle(field, value) {
			a.SetMapValue(domain.FieldPriorities, value, "")
		}
		return true, nil
	}
}

// KeyedMap handles "key=value" selections into a map field
func KeyedMap(field string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		key, v, ok := domain.SplitKeyed(value)
		if !ok || key == "" {
			return false, fmt.Errorf("expected key=value, got %q", value)
		}
		if a.MapValue(field, key) == v {
			return false, nil
		}
		a.SetMapValue(field, key, v)
		return true, nil
	}
}

// KeyedScalar handles "key=value" selections where each key names a scalar field
func KeyedScalar(fields map[string]string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		key, v, ok := domain.SplitKeyed(value)
		field, known := fields[key]
		if !ok || !known {
			return false, fmt.Errorf("unexpected selection %q", value)
		}
		if a.Value(field) == v {
			return false, nil
		}
		a.SetValue(field, v)
		return true, nil
	}
}

// Note stores free text "key=text" under a map field; empty text clears the entry
func Note(field string) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		key, text, ok := domain.SplitKeyed(value)
		if !ok || key == "" {
			return false, fmt.Errorf("expected key=text, got %q", value)
		}
		text = strings.TrimSpace(text)
		if a.MapValue(field, key) == text {
			return false, nil
		}
		a.SetMapValue(field, key, text)
		return true, nil
	}
}

// TextEntry toggles free-text entries "key=text" into the list field mapped
// from key. Entries for keys with a check are rejected when the check fails.
func TextEntry(fields map[string]string, checks map[string]func(string) error) Handler {
	return func(a *domain.StageAnswer, value string) (bool, error) {
		key, text, ok := domain.SplitKeyed(value)
		field, known := fields[key]
		if !ok || !known {
			return false, fmt.Errorf("unexpected entry %q", value)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return false, nil
		}
		if check := checks[key]; check != nil {
			if err := check(text); err != nil {
				return false, err
			}
		}
		a.Toggle(field, text)
		return true, nil
	}
}

// Display accepts nothing; the step only shows cards
func Display() Handler {
	return func(*domain.StageAnswer, string) (bool, error) {
		return false, nil
	}
}

// CheckURL rejects anything but absolute http(s) URLs
func CheckURL(message string) func(string) error {
	return func(s string) error {
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &Rejection{Message: message}
		}
		return nil
	}
}

// Required passes when a scalar field is set
func Required(field string) Validator {
	return func(a domain.StageAnswer, _ catalog.Context) bool {
		return a.Value(field) != ""
	}
}

// RequiredAll passes when every listed scalar field is set
func RequiredAll(fields ...string) Validator {
	return func(a domain.StageAnswer, _ catalog.Context) bool {
		for _, f := range fields {
			if a.Value(f) == "" {
				return false
			}
		}
		return true
	}
}

// NonEmpty passes when a list field has at least one entry
func NonEmpty(field string) Validator {
	return func(a domain.StageAnswer, _ catalog.Context) bool {
		return len(a.Lists[field]) > 0
	}
}

// Always passes; used by optional and display-only steps
func Always() Validator {
	return func(domain.StageAnswer, catalog.Context) bool {
		return true
	}
}

// AllPrioritized passes when every selected feature has a priority level
func AllPrioritized() Validator {
	return func(a domain.StageAnswer, _ catalog.Context) bool {
		for _, item := range domain.SelectedFeatures(a) {
			if a.MapValue(domain.FieldPriorities, item) == "" {
				return false
			}
		}
		return true
	}
}

// ConfirmedPriorities passes when at least one feature is confirmed, or when
// the feature stage offered nothing to confirm
func ConfirmedPriorities() Validator {
	return func(a domain.StageAnswer, ctx catalog.Context) bool {
		if len(a.Lists[domain.FieldPriorityOrder]) > 0 {
			return true
		}
		features, ok := ctx.Prior[domain.StageFeatureRequirements]
		return !ok || len(domain.SelectedFeatures(features)) == 0
	}
}
