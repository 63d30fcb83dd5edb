// Package i18n provides the calendar's translation bundle.
package i18n

import (
	"errors"
	"fmt"
)

// ErrUnknownKey is returned when a translation key is not present in the
// bundle. A missing key is a packaging defect, so callers must propagate
// the error instead of substituting fallback text.
var ErrUnknownKey = errors.New("unknown translation key")

// Translation keys used by the calendar.
const (
	KeySelectedTimeSlotTitle = "selectedTimeSlotTitle"
	KeyTooltipDescription    = "tooltipDescription"
	KeyTooltipTimeSlot       = "tooltipTimeSlot"
	KeyTooltipReservedBy     = "tooltipReservedBy"
	KeyUnknown               = "unknown"
)

// defaultTranslations is the built-in English bundle.
var defaultTranslations = map[string]string{
	KeySelectedTimeSlotTitle: "Selected time slot",
	KeyTooltipDescription:    "Description",
	KeyTooltipTimeSlot:       "Time slot",
	KeyTooltipReservedBy:     "Reserved by",
	KeyUnknown:               "Unknown",
}

// Bundle resolves translation keys, overlaying host-supplied strings on
// top of the defaults.
type Bundle struct {
	overrides map[string]string
}

// NewBundle creates a bundle. overrides may be nil; entries with known
// keys replace the default strings.
func NewBundle(overrides map[string]string) *Bundle {
	return &Bundle{overrides: overrides}
}

// Lookup resolves a key to its translated string.
// Returns ErrUnknownKey when the key exists in neither the overrides nor
// the defaults.
func (b *Bundle) Lookup(key string) (string, error) {
	if b != nil && b.overrides != nil {
		if s, ok := b.overrides[key]; ok && s != "" {
			return s, nil
		}
	}
	if s, ok := defaultTranslations[key]; ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}
