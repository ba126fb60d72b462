package service

import (
	"github.com/okian/wellguard/internal/domain/admin"
	"github.com/okian/wellguard/internal/domain/analysis"
)

// Page titles.
const (
	Title    = "WellGuard+ | Group 1 Well Completion Analyzer"
	TabTitle = "WellGuard+ Analyzer"
)

// ChartUnavailable replaces the trend chart when it cannot be drawn.
const ChartUnavailable = "Chart unavailable."

// Page is everything one render pass shows. It is rebuilt from scratch for
// every request.
type Page struct {
	Title      string
	TabTitle   string
	Background Background
	Rows       []Row

	// Ready is true once every widget has a value. Chart and Report are
	// only set when Ready.
	Ready  bool
	Chart  Chart
	Report *analysis.Report

	Admin Admin
}

// Background describes the optional decorative image.
type Background struct {
	Present bool
	URL     string
	// Warning is set when the image is missing.
	Warning string
}

// Row holds the three widgets of one time slot.
type Row struct {
	Label       string
	Pressure    Widget
	Temperature Widget
	Material    Widget
}

// Widget is a single dropdown. The placeholder is always the first option
// and carries an empty value.
type Widget struct {
	Name        string
	Label       string
	Placeholder string
	Options     []Choice
}

// Choice is one option of a Widget.
type Choice struct {
	Value    string
	Selected bool
}

// Chart is the rendered trend, or the fallback text.
type Chart struct {
	DataURI     string
	Unavailable string
}

// Admin is the outcome of the passcode gate.
type Admin struct {
	Decision admin.Decision
	// Entered is echoed back into the field so the gate stays open while
	// the user keeps editing the form.
	Entered string
	Table   []TableRow
}

// TableRow is one line of the admin table. Absent fields show the
// placeholder text.
type TableRow struct {
	Timestamp   string
	Pressure    string
	Temperature string
	Material    string
	Unsuitable  bool
}
