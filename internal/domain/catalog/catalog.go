// Package catalog holds the static option lists offered by the form for each
// time slot.
package catalog

import (
	"fmt"
	"slices"

	"github.com/okian/wellguard/internal/domain/types"
)

// Placeholder labels shown for the absent state of each dropdown.
const (
	ValuePlaceholder    = "Select a value..."
	MaterialPlaceholder = "Select a material..."
)

// Catalog maps every time slot to its selectable pressure (psi) and
// temperature (°C) candidates. It is read-only once validated.
type Catalog struct {
	pressure    map[types.TimeSlot][]int
	temperature map[types.TimeSlot][]int
	materials   []types.Material
}

// Option applies a configuration option to a Catalog.
type Option func(*Catalog)

// WithPressure replaces the pressure candidates for one slot.
func WithPressure(slot types.TimeSlot, values ...int) Option {
	return func(c *Catalog) {
		c.pressure[slot] = slices.Clone(values)
	}
}

// WithTemperature replaces the temperature candidates for one slot.
func WithTemperature(slot types.TimeSlot, values ...int) Option {
	return func(c *Catalog) {
		c.temperature[slot] = slices.Clone(values)
	}
}

// New returns the well-site catalog, with any overrides applied. Call
// Validate before serving it.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		pressure: map[types.TimeSlot][]int{
			types.Slot0000: {1200, 1000},
			types.Slot0100: {1180, 1480},
			types.Slot0200: {1150, 1500},
			types.Slot0300: {1120, 9000},
			types.Slot0400: {1100, 1300},
			types.Slot0500: {1070, 1080},
			types.Slot0600: {1050, 1450},
			types.Slot0700: {1020, 1022},
			types.Slot0800: {980, 990},
			types.Slot0900: {750, 950},
		},
		temperature: map[types.TimeSlot][]int{
			types.Slot0000: {68, 67},
			types.Slot0100: {69, 65},
			types.Slot0200: {70, 62},
			types.Slot0300: {71, 82},
			types.Slot0400: {72, 83},
			types.Slot0500: {73, 84},
			types.Slot0600: {74, 64},
			types.Slot0700: {75, 64},
			types.Slot0800: {76, 86},
			types.Slot0900: {77, 87},
		},
		materials: types.Materials(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Validate checks that every slot has a non-empty list of distinct positive
// candidates for both fields.
func (c *Catalog) Validate() error {
	for _, slot := range types.TimeSlots() {
		if err := validateValues(c.pressure[slot]); err != nil {
			return fmt.Errorf("%w: pressure %s: %w", ErrInvalidCatalog, slot, err)
		}
		if err := validateValues(c.temperature[slot]); err != nil {
			return fmt.Errorf("%w: temperature %s: %w", ErrInvalidCatalog, slot, err)
		}
	}
	for slot := range c.pressure {
		if !slot.Valid() {
			return fmt.Errorf("%w: pressure for undeclared %s", ErrInvalidCatalog, slot)
		}
	}
	for slot := range c.temperature {
		if !slot.Valid() {
			return fmt.Errorf("%w: temperature for undeclared %s", ErrInvalidCatalog, slot)
		}
	}
	if len(c.materials) == 0 {
		return fmt.Errorf("%w: no materials", ErrInvalidCatalog)
	}
	return nil
}

func validateValues(values []int) error {
	if len(values) == 0 {
		return errEmpty
	}
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		if v <= 0 {
			return fmt.Errorf("%w: %d", errNonPositive, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: %d", errDuplicate, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Pressure returns a copy of the pressure candidates for slot.
func (c *Catalog) Pressure(slot types.TimeSlot) []int {
	return slices.Clone(c.pressure[slot])
}

// Temperature returns a copy of the temperature candidates for slot.
func (c *Catalog) Temperature(slot types.TimeSlot) []int {
	return slices.Clone(c.temperature[slot])
}

// Materials returns the material menu.
func (c *Catalog) Materials() []types.Material {
	return slices.Clone(c.materials)
}

// PressureAllowed reports whether v is offered for slot.
func (c *Catalog) PressureAllowed(slot types.TimeSlot, v int) bool {
	return slices.Contains(c.pressure[slot], v)
}

// TemperatureAllowed reports whether v is offered for slot.
func (c *Catalog) TemperatureAllowed(slot types.TimeSlot, v int) bool {
	return slices.Contains(c.temperature[slot], v)
}

// MaterialAllowed reports whether m is on the menu.
func (c *Catalog) MaterialAllowed(m types.Material) bool {
	return slices.Contains(c.materials, m)
}
