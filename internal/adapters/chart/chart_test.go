package chart

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func completeSheet() *model.Sheet {
	pressures := []int{1200, 1180, 1150, 1120, 1100, 1070, 1050, 1020, 980, 750}
	temperatures := []int{68, 69, 70, 71, 72, 73, 74, 75, 76, 77}
	sheet := model.NewSheet()
	for i, slot := range types.TimeSlots() {
		sheet.SetPressure(slot, pressures[i])
		sheet.SetTemperature(slot, temperatures[i])
		sheet.SetMaterial(slot, types.Steel)
	}
	return sheet
}

func TestBuildTrend(t *testing.T) {
	Convey("Given a complete sheet", t, func() {
		sheet := completeSheet()

		Convey("When the trend is built", func() {
			trend, err := BuildTrend(sheet)

			Convey("Then the series should follow slot order", func() {
				So(err, ShouldBeNil)
				So(trend.Labels[0], ShouldEqual, "00:00")
				So(trend.Labels[9], ShouldEqual, "09:00")
				So(trend.Pressure[0], ShouldEqual, 1200.0)
				So(trend.Pressure[9], ShouldEqual, 750.0)
				So(trend.Temperature[3], ShouldEqual, 71.0)
				So(len(trend.Pressure), ShouldEqual, len(trend.Temperature))
			})
		})
	})

	Convey("Given a sheet missing a temperature", t, func() {
		sheet := model.NewSheet()
		sheet.SetPressure(types.Slot0000, 1200)

		Convey("When the trend is built", func() {
			_, err := BuildTrend(sheet)

			Convey("Then it should report the sheet as incomplete", func() {
				So(errors.Is(err, ErrIncomplete), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "00:00")
			})
		})
	})
}

func TestRenderer(t *testing.T) {
	Convey("Given a renderer", t, func() {
		r := New(WithSize(640, 320))

		Convey("When a complete sheet is rendered", func() {
			out, err := r.Render(context.Background(), completeSheet())

			Convey("Then it should produce a PNG of the configured size", func() {
				So(err, ShouldBeNil)
				img, decErr := png.Decode(bytes.NewReader(out))
				So(decErr, ShouldBeNil)
				So(img.Bounds().Dx(), ShouldEqual, 640)
				So(img.Bounds().Dy(), ShouldEqual, 320)
			})
		})

		Convey("When an incomplete sheet is rendered", func() {
			_, err := r.Render(context.Background(), model.NewSheet())

			Convey("Then it should fail with ErrIncomplete", func() {
				So(errors.Is(err, ErrIncomplete), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := r.Render(ctx, completeSheet())

			Convey("Then it should fail with ErrRender", func() {
				So(errors.Is(err, ErrRender), ShouldBeTrue)
			})
		})

		Convey("When the chart is laid out", func() {
			trend, _ := BuildTrend(completeSheet())
			ch := r.build(trend)

			Convey("Then each slot should have a labelled tick", func() {
				So(len(ch.XAxis.Ticks), ShouldEqual, types.SlotCount)
				So(ch.XAxis.Ticks[4].Label, ShouldEqual, "04:00")
				So(ch.XAxis.Style.TextRotationDegrees, ShouldEqual, 45.0)
			})

			Convey("And both series should be named for the legend", func() {
				So(len(ch.Series), ShouldEqual, 2)
				So(ch.Series[0].GetName(), ShouldEqual, PressureSeries)
				So(ch.Series[1].GetName(), ShouldEqual, TemperatureSeries)
				So(len(ch.Elements), ShouldEqual, 1)
			})

			Convey("And the temperature series should be told apart without colour", func() {
				pressure := ch.Series[0].GetStyle()
				temperature := ch.Series[1].GetStyle()
				So(pressure.StrokeDashArray, ShouldBeEmpty)
				So(temperature.StrokeDashArray, ShouldNotBeEmpty)
				So(temperature.DotWidth, ShouldBeGreaterThan, pressure.DotWidth)
			})
		})
	})
}

func TestDataURI(t *testing.T) {
	Convey("Given PNG bytes", t, func() {
		uri := DataURI([]byte{0x89, 'P', 'N', 'G'})

		Convey("Then the data URI should carry the png media type", func() {
			So(strings.HasPrefix(uri, "data:image/png;base64,"), ShouldBeTrue)
			So(uri, ShouldEndWith, "iVBORw==")
		})
	})
}

func TestOptions(t *testing.T) {
	Convey("Given renderer options", t, func() {
		Convey("When a non-positive size is supplied", func() {
			r := New(WithSize(0, -1))

			Convey("Then defaults should be kept", func() {
				So(r.width, ShouldEqual, defaultWidth)
				So(r.height, ShouldEqual, defaultHeight)
			})
		})

		Convey("When the rotation is overridden", func() {
			r := New(WithLabelRotation(30))

			Convey("Then it should be applied", func() {
				So(r.labelRotation, ShouldEqual, 30.0)
			})
		})
	})
}
