// Package service provides the Analyzer, which turns the widget values of one
// request into the page the user sees.
package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/wellguard/internal/adapters/assets"
	"github.com/okian/wellguard/internal/adapters/chart"
	"github.com/okian/wellguard/internal/domain/admin"
	"github.com/okian/wellguard/internal/domain/analysis"
	"github.com/okian/wellguard/internal/domain/catalog"
	"github.com/okian/wellguard/internal/domain/model"
	"github.com/okian/wellguard/internal/domain/types"
	"github.com/okian/wellguard/pkg/logger"
	"github.com/okian/wellguard/pkg/metrics"
)

// Defaults for the background image.
const (
	DefaultBackgroundKey = "background.png"
	DefaultBackgroundURL = "/background.png"
)

const nanosecondsPerMillisecond = 1e6

// ChartRenderer draws the trend of a complete sheet as PNG bytes.
type ChartRenderer interface {
	Render(ctx context.Context, sheet *model.Sheet) ([]byte, error)
}

// Session is the per-request input: widget values by key and the passcode
// field. Nothing outlives the request.
type Session struct {
	Values   func(key string) string
	Passcode string
}

// Analyzer renders pages. It holds no per-request state and is safe for
// concurrent use.
type Analyzer struct {
	catalog       *catalog.Catalog
	assets        assets.Store
	chart         ChartRenderer
	backgroundKey string
	backgroundURL string
	logger        logger.Logger
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCatalog replaces the default catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Analyzer) {
		if c != nil {
			a.catalog = c
		}
	}
}

// WithAssets sets where the background image is looked up.
func WithAssets(s assets.Store) Option {
	return func(a *Analyzer) {
		if s != nil {
			a.assets = s
		}
	}
}

// WithChart sets the trend chart renderer.
func WithChart(r ChartRenderer) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.chart = r
		}
	}
}

// WithBackground sets the asset key of the background image and the URL the
// page loads it from.
func WithBackground(key, url string) Option {
	return func(a *Analyzer) {
		if key != "" {
			a.backgroundKey = key
		}
		if url != "" {
			a.backgroundURL = url
		}
	}
}

// New constructs an Analyzer. Without options it uses the built-in catalog,
// the working directory for assets and a default-sized chart.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog:       catalog.New(),
		assets:        assets.NewFilesystem("."),
		chart:         chart.New(),
		backgroundKey: DefaultBackgroundKey,
		backgroundURL: DefaultBackgroundURL,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.Get()
	}
	return a
}

// Catalog returns the menus the Analyzer validates against.
func (a *Analyzer) Catalog() *catalog.Catalog { return a.catalog }

// BackgroundKey returns the asset key of the background image.
func (a *Analyzer) BackgroundKey() string { return a.backgroundKey }

// Assets returns the asset store.
func (a *Analyzer) Assets() assets.Store { return a.assets }

// Render performs one full pass: background, widgets, readiness, and when
// ready the chart, verdict and material review, then the admin gate. Only a
// cancelled context is an error; everything else degrades on the page.
func (a *Analyzer) Render(ctx context.Context, s Session) (Page, error) {
	if a.catalog == nil {
		return Page{}, ErrNoCatalog
	}
	if err := ctx.Err(); err != nil {
		return Page{}, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	lookup := s.Values
	if lookup == nil {
		lookup = func(string) string { return "" }
	}

	page := Page{
		Title:      Title,
		TabTitle:   TabTitle,
		Background: a.background(ctx),
	}

	sheet, rejected := model.Parse(a.catalog, lookup)
	for _, r := range rejected {
		a.logger.Debug(ctx, "ignoring value not on the menu",
			logger.String("key", r.Key), logger.String("value", r.Value))
	}
	metrics.RecordRejectedValues(len(rejected))

	page.Rows = a.rows(sheet)

	report, ready := analysis.Evaluate(sheet)
	page.Ready = ready
	metrics.RecordPageRender(ready)
	if ready {
		page.Chart = a.renderChart(ctx, sheet)
		page.Report = &report
		metrics.RecordRiskVerdict(string(report.Verdict))
		if report.Materials.Warn() {
			metrics.RecordMaterialWarning()
		}
		a.logger.Info(ctx, "analysis shown",
			logger.Float64("avg_pressure", report.AvgPressure),
			logger.Float64("avg_temperature", report.AvgTemperature),
			logger.String("verdict", string(report.Verdict)),
			logger.Int("unsuitable_slots", len(report.Materials.Unsuitable)))
	}

	page.Admin = a.admin(ctx, s.Passcode, sheet)
	return page, nil
}

// background checks the image on every render. Store errors are logged and
// treated like a missing file.
func (a *Analyzer) background(ctx context.Context) Background {
	ok, err := assets.Exists(ctx, a.assets, a.backgroundKey)
	if err != nil {
		a.logger.Warn(ctx, "background lookup failed",
			logger.String("key", a.backgroundKey),
			logger.String("driver", string(a.assets.Driver())),
			logger.Error(err))
	}
	if !ok {
		metrics.RecordBackgroundMissing()
		a.logger.Debug(ctx, "background image missing", logger.String("key", a.backgroundKey))
		return Background{
			Warning: fmt.Sprintf("Background image not found. Ensure '%s' is in your project folder.", a.backgroundKey),
		}
	}
	return Background{Present: true, URL: a.backgroundURL}
}

func (a *Analyzer) rows(sheet *model.Sheet) []Row {
	rows := make([]Row, 0, types.SlotCount)
	for _, sel := range sheet.Rows() {
		slot := sel.Slot
		label := slot.String()
		rows = append(rows, Row{
			Label: label,
			Pressure: Widget{
				Name:        model.Key(model.FieldPressure, slot),
				Label:       "Pressure for " + label,
				Placeholder: catalog.ValuePlaceholder,
				Options:     intChoices(a.catalog.Pressure(slot), sel.Pressure),
			},
			Temperature: Widget{
				Name:        model.Key(model.FieldTemperature, slot),
				Label:       "Temperature for " + label,
				Placeholder: catalog.ValuePlaceholder,
				Options:     intChoices(a.catalog.Temperature(slot), sel.Temperature),
			},
			Material: Widget{
				Name:        model.Key(model.FieldMaterial, slot),
				Label:       "Material Type for " + label,
				Placeholder: catalog.MaterialPlaceholder,
				Options:     materialChoices(a.catalog.Materials(), sel.Material),
			},
		})
	}
	return rows
}

func intChoices(values []int, chosen types.Optional[int]) []Choice {
	out := make([]Choice, 0, len(values))
	cur, ok := chosen.Get()
	for _, v := range values {
		out = append(out, Choice{Value: strconv.Itoa(v), Selected: ok && v == cur})
	}
	return out
}

func materialChoices(values []types.Material, chosen types.Optional[types.Material]) []Choice {
	out := make([]Choice, 0, len(values))
	cur, ok := chosen.Get()
	for _, m := range values {
		out = append(out, Choice{Value: m.String(), Selected: ok && m == cur})
	}
	return out
}

func (a *Analyzer) renderChart(ctx context.Context, sheet *model.Sheet) Chart {
	start := time.Now()
	png, err := a.chart.Render(ctx, sheet)
	metrics.RecordChartRenderLatency(float64(time.Since(start).Nanoseconds()) / nanosecondsPerMillisecond)
	if err != nil {
		metrics.RecordChartRenderError()
		a.logger.Error(ctx, "trend chart render failed", logger.Error(err))
		return Chart{Unavailable: ChartUnavailable}
	}
	return Chart{DataURI: chart.DataURI(png)}
}

// admin runs the passcode gate. An empty field is the normal state of the
// page, so it is not counted as an attempt.
func (a *Analyzer) admin(ctx context.Context, passcode string, sheet *model.Sheet) Admin {
	decision := admin.Check(passcode)
	if passcode != "" {
		metrics.RecordAdminAttempt(decision.Granted)
		if !decision.Granted {
			a.logger.Warn(ctx, "admin passcode rejected")
		}
	}
	if !decision.Granted {
		return Admin{Decision: decision, Entered: passcode}
	}

	// Highlighted even before the sheet is ready.
	flagged := make(map[types.TimeSlot]bool)
	for _, slot := range analysis.ReviewMaterials(sheet).Unsuitable {
		flagged[slot] = true
	}

	table := make([]TableRow, 0, types.SlotCount)
	for _, sel := range sheet.Rows() {
		table = append(table, TableRow{
			Timestamp:   sel.Slot.String(),
			Pressure:    optionalText(sel.Pressure, strconv.Itoa, catalog.ValuePlaceholder),
			Temperature: optionalText(sel.Temperature, strconv.Itoa, catalog.ValuePlaceholder),
			Material:    optionalText(sel.Material, types.Material.String, catalog.MaterialPlaceholder),
			Unsuitable:  flagged[sel.Slot],
		})
	}
	return Admin{Decision: decision, Entered: passcode, Table: table}
}

func optionalText[T any](o types.Optional[T], format func(T) string, placeholder string) string {
	if v, ok := o.Get(); ok {
		return format(v)
	}
	return placeholder
}
