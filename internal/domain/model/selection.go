// Package model contains the per-interaction state passed between layers.
package model

import (
	"github.com/okian/wellguard/internal/domain/types"
)

// Selection is the current choice for one time slot.
type Selection struct {
	Slot        types.TimeSlot
	Pressure    types.Optional[int]            // psi
	Temperature types.Optional[int]            // °C
	Material    types.Optional[types.Material] // completion material
}

// Complete reports whether all three fields hold a real choice.
func (s Selection) Complete() bool {
	return s.Pressure.Present() && s.Temperature.Present() && s.Material.Present()
}

// Sheet is the full set of selections for one interaction, always one row per
// time slot in declaration order. It is rebuilt on every request.
type Sheet struct {
	rows [types.SlotCount]Selection
}

// NewSheet returns a sheet with nothing selected.
func NewSheet() *Sheet {
	s := &Sheet{}
	for i := range s.rows {
		s.rows[i].Slot = types.TimeSlot(i)
	}
	return s
}

// Rows returns the selections in time slot order.
func (s *Sheet) Rows() []Selection {
	out := make([]Selection, len(s.rows))
	copy(out, s.rows[:])
	return out
}

// Row returns the selection for slot.
func (s *Sheet) Row(slot types.TimeSlot) Selection {
	if !slot.Valid() {
		return Selection{Slot: slot}
	}
	return s.rows[slot]
}

// SetPressure records a pressure choice.
func (s *Sheet) SetPressure(slot types.TimeSlot, psi int) {
	if slot.Valid() {
		s.rows[slot].Pressure = types.Some(psi)
	}
}

// SetTemperature records a temperature choice.
func (s *Sheet) SetTemperature(slot types.TimeSlot, celsius int) {
	if slot.Valid() {
		s.rows[slot].Temperature = types.Some(celsius)
	}
}

// SetMaterial records a material choice.
func (s *Sheet) SetMaterial(slot types.TimeSlot, m types.Material) {
	if slot.Valid() {
		s.rows[slot].Material = types.Some(m)
	}
}
