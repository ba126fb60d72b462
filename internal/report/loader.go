package report

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
)

// slotsKey is the top-level YAML key holding one entry per time slot:
//
//	slots:
//	  "00:00": {pressure: 1200, temperature: 68, material: Steel}
const slotsKey = "slots"

// LoadFile reads a selections file and builds a sheet with the same menu
// checks the web form applies. Entries for unknown slots, and values not on
// the menu, come back as rejected.
func LoadFile(path string, cat *catalog.Catalog) (*model.Sheet, []model.Rejected, error) {
	// "." stays the delimiter; slot labels only contain ':'.
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return FromKoanf(k, cat)
}

// FromKoanf builds a sheet from already loaded selections.
func FromKoanf(k *koanf.Koanf, cat *catalog.Catalog) (*model.Sheet, []model.Rejected, error) {
	values := make(map[string]string, 3*types.SlotCount)
	var unknown []model.Rejected
	for _, label := range k.MapKeys(slotsKey) {
		slot, err := types.ParseTimeSlot(label)
		if err != nil {
			unknown = append(unknown, model.Rejected{Key: slotsKey + "." + label})
			continue
		}
		for _, f := range model.Fields() {
			values[model.Key(f, slot)] = k.String(slotsKey + "." + label + "." + string(f))
		}
	}

	sheet, rejected := model.Parse(cat, func(key string) string { return values[key] })
	return sheet, append(unknown, rejected...), nil
}
