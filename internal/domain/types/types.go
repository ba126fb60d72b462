// Package types contains the typed vocabulary shared across the analyzer:
// hourly time slots, material kinds and optional readings.
package types

import "fmt"

// TimeSlot is one of the ten fixed hourly labels that index the form rows.
// Ordering follows declaration order.
type TimeSlot uint8

// Declared time slots, 00:00 through 09:00.
const (
	Slot0000 TimeSlot = iota
	Slot0100
	Slot0200
	Slot0300
	Slot0400
	Slot0500
	Slot0600
	Slot0700
	Slot0800
	Slot0900

	slotCount
)

// SlotCount is the number of declared time slots.
const SlotCount = int(slotCount)

// TimeSlots returns every slot in declaration order.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, SlotCount)
	for i := range out {
		out[i] = TimeSlot(i)
	}
	return out
}

// Valid reports whether s is a declared slot.
func (s TimeSlot) Valid() bool { return s < slotCount }

// String returns the "HH:00" label.
func (s TimeSlot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("TimeSlot(%d)", uint8(s))
	}
	return fmt.Sprintf("%02d:00", uint8(s))
}

// ParseTimeSlot maps a label such as "03:00" back to its slot.
func ParseTimeSlot(label string) (TimeSlot, error) {
	for _, s := range TimeSlots() {
		if s.String() == label {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTimeSlot, label)
}

// Material is a completion material choice.
type Material uint8

// Known materials, in menu order.
const (
	Steel Material = iota + 1
	Composite
	Ceramic
)

var materialNames = map[Material]string{
	Steel:     "Steel",
	Composite: "Composite",
	Ceramic:   "Ceramic",
}

// Materials returns every material in menu order.
func Materials() []Material {
	return []Material{Steel, Composite, Ceramic}
}

// String returns the display name.
func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Material(%d)", uint8(m))
}

// ParseMaterial maps a display name back to a Material. Matching is
// case-sensitive.
func ParseMaterial(name string) (Material, error) {
	for _, m := range Materials() {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
}
