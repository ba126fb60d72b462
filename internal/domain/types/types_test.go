package types_test

import (
	"errors"
	"testing"

	types "github.com/okian/wellguard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTimeSlot(t *testing.T) {
	Convey("Given the declared time slots", t, func() {
		slots := types.TimeSlots()

		Convey("Then there should be ten of them in declaration order", func() {
			So(len(slots), ShouldEqual, types.SlotCount)
			So(slots[0].String(), ShouldEqual, "00:00")
			So(slots[3].String(), ShouldEqual, "03:00")
			So(slots[9].String(), ShouldEqual, "09:00")
			for i := 1; i < len(slots); i++ {
				So(slots[i], ShouldBeGreaterThan, slots[i-1])
			}
		})

		Convey("When parsing a known label", func() {
			s, err := types.ParseTimeSlot("07:00")

			Convey("Then it should map back to the slot", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, types.Slot0700)
			})
		})

		Convey("When parsing an unknown label", func() {
			_, err := types.ParseTimeSlot("10:00")

			Convey("Then it should return ErrUnknownTimeSlot", func() {
				So(errors.Is(err, types.ErrUnknownTimeSlot), ShouldBeTrue)
			})
		})

		Convey("When formatting an undeclared slot", func() {
			Convey("Then it should not masquerade as a label", func() {
				So(types.TimeSlot(42).Valid(), ShouldBeFalse)
				So(types.TimeSlot(42).String(), ShouldEqual, "TimeSlot(42)")
			})
		})
	})
}

func TestMaterial(t *testing.T) {
	Convey("Given the material menu", t, func() {
		Convey("Then it should list Steel, Composite, Ceramic in order", func() {
			names := []string{}
			for _, m := range types.Materials() {
				names = append(names, m.String())
			}
			So(names, ShouldResemble, []string{"Steel", "Composite", "Ceramic"})
		})

		Convey("When parsing names", func() {
			Convey("Then exact names should resolve", func() {
				m, err := types.ParseMaterial("Ceramic")
				So(err, ShouldBeNil)
				So(m, ShouldEqual, types.Ceramic)
			})

			Convey("And matching should be case-sensitive", func() {
				_, err := types.ParseMaterial("ceramic")
				So(errors.Is(err, types.ErrUnknownMaterial), ShouldBeTrue)
			})

			Convey("And the placeholder should not resolve", func() {
				_, err := types.ParseMaterial("Select a material...")
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestOptional(t *testing.T) {
	Convey("Given optional readings", t, func() {
		Convey("When the zero value is used", func() {
			var o types.Optional[int]

			Convey("Then it should be absent", func() {
				_, ok := o.Get()
				So(ok, ShouldBeFalse)
				So(o.Present(), ShouldBeFalse)
				So(o.OrElse(-1), ShouldEqual, -1)
			})
		})

		Convey("When a value is wrapped", func() {
			o := types.Some(1480)

			Convey("Then it should be present", func() {
				v, ok := o.Get()
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 1480)
				So(o.OrElse(0), ShouldEqual, 1480)
			})
		})

		Convey("When None is requested explicitly", func() {
			o := types.None[types.Material]()

			Convey("Then it should equal the zero value", func() {
				So(o, ShouldResemble, types.Optional[types.Material]{})
			})
		})
	})
}
