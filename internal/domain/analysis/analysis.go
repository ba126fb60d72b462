// Package analysis derives the integrity assessment from a completed sheet.
package analysis

import (
	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
)

// Risk thresholds. Both comparisons are strict.
const (
	PressureLimitPSI     = 2000.0
	TemperatureLimitC    = 85.0
	unsuitableMaterial   = types.Ceramic
	recommendedMaterials = "Steel or Composite"
)

// Level is the severity a message is shown with.
type Level string

// Message levels.
const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Verdict is the outcome of the averaged risk check.
type Verdict string

// Possible verdicts.
const (
	VerdictStable  Verdict = "stable"
	VerdictExtreme Verdict = "extreme"
)

// Level returns how the verdict is shown.
func (v Verdict) Level() Level {
	if v == VerdictExtreme {
		return LevelWarning
	}
	return LevelSuccess
}

// Message returns the user-facing text for the verdict.
func (v Verdict) Message() string {
	if v == VerdictExtreme {
		return "Potential Risk: Extreme conditions detected! Review mitigation strategies."
	}
	return "Integrity Stable: No critical risks detected."
}

// Review is the material suitability outcome.
type Review struct {
	// Unsuitable lists the slots whose material may not hold up under high
	// pressure, in slot order.
	Unsuitable []types.TimeSlot
}

// Warn reports whether a warning should be shown. There is no message when
// every material is suitable.
func (r Review) Warn() bool { return len(r.Unsuitable) > 0 }

// Message returns the warning text.
func (r Review) Message() string {
	return "Some selected materials may be unsuitable for high-pressure environments."
}

// Recommendation returns the suggested alternative.
func (r Review) Recommendation() string {
	return "Recommended Alternative: " + recommendedMaterials + " for enhanced durability."
}

// Report is the full assessment of a completed sheet.
type Report struct {
	AvgPressure    float64 // psi
	AvgTemperature float64 // °C
	Verdict        Verdict
	Materials      Review
}

// Ready reports whether every slot has all three fields chosen.
func Ready(sheet *model.Sheet) bool {
	for _, row := range sheet.Rows() {
		if !row.Complete() {
			return false
		}
	}
	return true
}

// Evaluate assesses a sheet. It returns false, and no report, until the sheet
// is ready.
func Evaluate(sheet *model.Sheet) (Report, bool) {
	if !Ready(sheet) {
		return Report{}, false
	}

	rows := sheet.Rows()
	var sumP, sumT float64
	for _, row := range rows {
		p, _ := row.Pressure.Get()
		t, _ := row.Temperature.Get()
		sumP += float64(p)
		sumT += float64(t)
	}
	n := float64(len(rows))

	r := Report{
		AvgPressure:    sumP / n,
		AvgTemperature: sumT / n,
		Materials:      ReviewMaterials(sheet),
	}
	r.Verdict = Classify(r.AvgPressure, r.AvgTemperature)
	return r, true
}

// Classify applies the risk rule to a pair of averages.
func Classify(avgPressure, avgTemperature float64) Verdict {
	if avgPressure > PressureLimitPSI || avgTemperature > TemperatureLimitC {
		return VerdictExtreme
	}
	return VerdictStable
}

// ReviewMaterials collects the slots with an unsuitable material.
func ReviewMaterials(sheet *model.Sheet) Review {
	var r Review
	for _, row := range sheet.Rows() {
		if m, ok := row.Material.Get(); ok && m == unsuitableMaterial {
			r.Unsuitable = append(r.Unsuitable, row.Slot)
		}
	}
	return r
}
