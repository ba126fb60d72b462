package model

import (
	"strconv"
	"strings"

	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/internal/domain/types"
)

// Field names one of the three dropdowns in a row.
type Field string

// Row fields.
const (
	FieldPressure    Field = "pressure"
	FieldTemperature Field = "temperature"
	FieldMaterial    Field = "material"
)

// Fields returns the row fields in display order.
func Fields() []Field {
	return []Field{FieldPressure, FieldTemperature, FieldMaterial}
}

// Key returns the unique widget key for a field in a slot, e.g.
// "pressure_03:00".
func Key(f Field, slot types.TimeSlot) string {
	return string(f) + "_" + slot.String()
}

// Rejected describes a submitted value that was not on the menu and was
// therefore treated as not selected.
type Rejected struct {
	Key   string
	Value string
}

// Parse builds a sheet from raw widget values looked up by Key. Empty values
// mean "not selected". Values that do not parse or are not offered by the
// catalog are dropped and reported.
func Parse(cat *catalog.Catalog, lookup func(key string) string) (*Sheet, []Rejected) {
	sheet := NewSheet()
	var rejected []Rejected

	for _, slot := range types.TimeSlots() {
		for _, f := range Fields() {
			key := Key(f, slot)
			raw := lookup(key)
			if raw == "" {
				continue
			}
			if !sheet.apply(cat, f, slot, raw) {
				rejected = append(rejected, Rejected{Key: key, Value: raw})
			}
		}
	}

	return sheet, rejected
}

// apply records raw for field f in slot when the catalog offers it.
func (s *Sheet) apply(cat *catalog.Catalog, f Field, slot types.TimeSlot, raw string) bool {
	switch f {
	case FieldPressure:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || !cat.PressureAllowed(slot, v) {
			return false
		}
		s.SetPressure(slot, v)
	case FieldTemperature:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || !cat.TemperatureAllowed(slot, v) {
			return false
		}
		s.SetTemperature(slot, v)
	case FieldMaterial:
		m, err := types.ParseMaterial(raw)
		if err != nil || !cat.MaterialAllowed(m) {
			return false
		}
		s.SetMaterial(slot, m)
	default:
		return false
	}
	return true
}
