package model_test

import (
	"testing"

	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSheet(t *testing.T) {
	Convey("Given a new sheet", t, func() {
		sheet := model.NewSheet()

		Convey("Then it should hold one empty row per slot in order", func() {
			rows := sheet.Rows()
			So(len(rows), ShouldEqual, types.SlotCount)
			for i, row := range rows {
				So(row.Slot, ShouldEqual, types.TimeSlot(i))
				So(row.Complete(), ShouldBeFalse)
				So(row.Pressure.Present(), ShouldBeFalse)
			}
		})

		Convey("When all three fields of a row are set", func() {
			sheet.SetPressure(types.Slot0200, 1500)
			sheet.SetTemperature(types.Slot0200, 62)
			sheet.SetMaterial(types.Slot0200, types.Composite)

			Convey("Then that row should be complete", func() {
				row := sheet.Row(types.Slot0200)
				So(row.Complete(), ShouldBeTrue)
				So(row.Pressure.OrElse(0), ShouldEqual, 1500)
				So(row.Material.OrElse(0), ShouldEqual, types.Composite)
			})

			Convey("And other rows should be untouched", func() {
				So(sheet.Row(types.Slot0100).Complete(), ShouldBeFalse)
			})
		})

		Convey("When rows are modified in reverse order", func() {
			for i := types.SlotCount - 1; i >= 0; i-- {
				sheet.SetMaterial(types.TimeSlot(i), types.Steel)
			}

			Convey("Then row order should still follow declaration order", func() {
				for i, row := range sheet.Rows() {
					So(row.Slot.String(), ShouldEqual, types.TimeSlot(i).String())
				}
			})
		})

		Convey("When an undeclared slot is set", func() {
			sheet.SetPressure(types.TimeSlot(50), 1000)

			Convey("Then it should be ignored", func() {
				So(sheet.Row(types.TimeSlot(50)).Pressure.Present(), ShouldBeFalse)
				So(len(sheet.Rows()), ShouldEqual, types.SlotCount)
			})
		})

		Convey("When the returned rows are mutated", func() {
			rows := sheet.Rows()
			rows[0].Pressure = types.Some(1)

			Convey("Then the sheet should be unaffected", func() {
				So(sheet.Row(types.Slot0000).Pressure.Present(), ShouldBeFalse)
			})
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Given the default catalog", t, func() {
		cat := catalog.New()

		Convey("When no values are submitted", func() {
			sheet, rejected := model.Parse(cat, func(string) string { return "" })

			Convey("Then nothing should be selected or rejected", func() {
				So(rejected, ShouldBeEmpty)
				for _, row := range sheet.Rows() {
					So(row.Pressure.Present(), ShouldBeFalse)
					So(row.Temperature.Present(), ShouldBeFalse)
					So(row.Material.Present(), ShouldBeFalse)
				}
			})
		})

		Convey("When valid values are submitted for one slot", func() {
			values := map[string]string{
				"pressure_03:00":    "9000",
				"temperature_03:00": "82",
				"material_03:00":    "Ceramic",
			}
			sheet, rejected := model.Parse(cat, func(k string) string { return values[k] })

			Convey("Then the slot should be filled", func() {
				So(rejected, ShouldBeEmpty)
				row := sheet.Row(types.Slot0300)
				So(row.Complete(), ShouldBeTrue)
				So(row.Pressure.OrElse(0), ShouldEqual, 9000)
				So(row.Temperature.OrElse(0), ShouldEqual, 82)
				So(row.Material.OrElse(0), ShouldEqual, types.Ceramic)
			})
		})

		Convey("When off-menu values are submitted", func() {
			values := map[string]string{
				"pressure_00:00":    "9000",
				"temperature_00:00": "hot",
				"material_00:00":    "Wood",
				"pressure_01:00":    "Select a value...",
				"material_01:00":    "steel",
			}
			sheet, rejected := model.Parse(cat, func(k string) string { return values[k] })

			Convey("Then they should be treated as not selected", func() {
				So(sheet.Row(types.Slot0000).Pressure.Present(), ShouldBeFalse)
				So(sheet.Row(types.Slot0000).Temperature.Present(), ShouldBeFalse)
				So(sheet.Row(types.Slot0000).Material.Present(), ShouldBeFalse)
				So(sheet.Row(types.Slot0100).Pressure.Present(), ShouldBeFalse)
				So(sheet.Row(types.Slot0100).Material.Present(), ShouldBeFalse)
			})

			Convey("And each should be reported", func() {
				So(len(rejected), ShouldEqual, 5)
				So(rejected[0], ShouldResemble, model.Rejected{Key: "pressure_00:00", Value: "9000"})
			})
		})
	})
}

func TestKey(t *testing.T) {
	Convey("Given widget keys", t, func() {
		Convey("Then each (field, slot) pair should be unique", func() {
			seen := map[string]bool{}
			for _, slot := range types.TimeSlots() {
				for _, f := range model.Fields() {
					k := model.Key(f, slot)
					So(seen[k], ShouldBeFalse)
					seen[k] = true
				}
			}
			So(len(seen), ShouldEqual, 30)
			So(model.Key(model.FieldTemperature, types.Slot0500), ShouldEqual, "temperature_05:00")
		})
	})
}
