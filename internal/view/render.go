package view

import (
	"context"
	"errors"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	service "github.com/okian/tianwen/internal/app"
	"github.com/okian/tianwen/internal/domain/analyzer"
	"github.com/okian/tianwen/internal/domain/model"
	"github.com/okian/tianwen/internal/domain/types"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"
)

// Rendering defaults.
const (
	defaultTopN     = 10
	defaultBarWidth = 20
	barRune         = "█"
)

// RendererOption applies a configuration option to the Renderer.
type RendererOption func(*Renderer)

// WithLocale selects the report language; unsupported tags fall back to English.
func WithLocale(tag language.Tag) RendererOption {
	return func(r *Renderer) {
		r.locale = ResolveLocale(tag)
	}
}

// WithTopN limits each table to n rows. Zero renders every row.
func WithTopN(n int) RendererOption {
	return func(r *Renderer) {
		if n >= 0 {
			r.topN = n
		}
	}
}

// WithBarWidth sets the width of a 100% bar.
func WithBarWidth(n int) RendererOption {
	return func(r *Renderer) {
		if n > 0 {
			r.barWidth = n
		}
	}
}

// Renderer formats reports as aligned text tables.
type Renderer struct {
	locale   language.Tag
	topN     int
	barWidth int

	printer  *message.Printer
	collator *collate.Collator
}

// Tables are the ranked rows of a distribution, as rendered.
type Tables struct {
	Centers   []types.RankedCount
	Regions   []types.RankedCount
	Dynasties []types.RankedCount
	Types     []types.RankedCount
}

// NewRenderer defaults to Simplified Chinese with the top ten rows per table.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		locale:   DefaultLocale,
		topN:     defaultTopN,
		barWidth: defaultBarWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.printer = newPrinter(r.locale)
	r.collator = collate.New(r.locale)
	return r
}

func (r *Renderer) Locale() language.Tag { return r.locale }

// Tables ranks the collections of d. Rows are ordered by value descending;
// ties are broken by the locale's collation of the label.
func (r *Renderer) Tables(d model.Distribution) Tables {
	centers := make([]types.RankedCount, 0, len(d.ObservationCenters))
	for _, c := range d.ObservationCenters {
		label := r.label(c.Location)
		if c.Site != nil && c.Site.ModernName != "" && c.Site.ModernName != c.Location {
			label = r.printer.Sprintf("label.modern", label, c.Site.ModernName)
		}
		centers = append(centers, types.RankedCount{Label: label, Count: c.Count, Value: float64(c.Count)})
	}

	regions := make([]types.RankedCount, 0, len(d.RegionalDensity))
	for _, rd := range d.RegionalDensity {
		regions = append(regions, types.RankedCount{Label: r.label(rd.Region), Count: rd.Count, Value: rd.Density})
	}

	dynasties := make([]types.RankedCount, 0, len(d.Dynasties))
	for _, dc := range d.Dynasties {
		dynasties = append(dynasties, types.RankedCount{Label: r.label(dc.Dynasty), Count: dc.Count, Value: float64(dc.Count)})
	}

	kinds := make([]types.RankedCount, 0, len(d.Types))
	for _, tc := range d.Types {
		kinds = append(kinds, types.RankedCount{Label: r.typeLabel(tc.Type), Count: tc.Count, Value: float64(tc.Count)})
	}

	return Tables{
		Centers:   r.rank(centers),
		Regions:   r.rank(regions),
		Dynasties: r.rank(dynasties),
		Types:     r.rank(kinds),
	}
}

func (r *Renderer) rank(rows []types.RankedCount) []types.RankedCount {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return r.collator.CompareString(rows[i].Label, rows[j].Label) < 0
	})
	rows = types.AssignRanks(rows)
	if r.topN > 0 && len(rows) > r.topN {
		rows = rows[:r.topN]
	}
	return rows
}

func (r *Renderer) label(key string) string {
	if key == model.Unknown {
		return r.printer.Sprintf("label.unknown")
	}
	return key
}

func (r *Renderer) typeLabel(t model.RecordType) string {
	switch {
	case string(t) == model.Unknown:
		return r.printer.Sprintf("label.unknown")
	case t.Known():
		return r.printer.Sprintf(message.Key("type."+string(t), string(t)))
	default:
		return string(t)
	}
}

// Render writes the full report.
func (r *Renderer) Render(w io.Writer, rep service.Report) error {
	out := &lineWriter{w: w}
	d := rep.Distribution

	out.line(r.printer.Sprintf("report.title", rep.Source))
	out.line("")

	if d.Total == 0 {
		out.line(r.printer.Sprintf("report.empty"))
	} else {
		t := r.Tables(d)
		r.table(out, r.printer.Sprintf("report.centers"), t.Centers, false)
		r.table(out, r.printer.Sprintf("report.regions"), t.Regions, true)
		r.table(out, r.printer.Sprintf("report.dynasties"), t.Dynasties, false)
		r.table(out, r.printer.Sprintf("report.types"), t.Types, false)

		if c := d.Centroid; c != nil {
			out.line(r.printer.Sprintf("report.centroid", c.Lat, c.Lon, c.Weight))
		} else {
			out.line(r.printer.Sprintf("report.no_centroid"))
		}
		out.line(r.printer.Sprintf("report.summary", d.Total, d.Unrecognized))
	}

	if !rep.GeneratedAt.IsZero() {
		out.line(r.printer.Sprintf("report.generated", rep.GeneratedAt.UTC().Format(time.RFC3339), rep.Duration))
	}
	return out.err
}

// table writes one ranked section. showValue adds the density column used
// by the regional table.
func (r *Renderer) table(out *lineWriter, title string, rows []types.RankedCount, showValue bool) {
	out.line(title)

	labelWidth := 0
	for _, row := range rows {
		if w := displayWidth(row.Label); w > labelWidth {
			labelWidth = w
		}
	}

	for _, row := range rows {
		var b strings.Builder
		b.WriteString(padLeft(r.printer.Sprintf("%d", row.Rank), 4))
		b.WriteString("  ")
		b.WriteString(padRight(row.Label, labelWidth))
		b.WriteString(padLeft(r.printer.Sprintf("%d", row.Count), 6))
		if showValue {
			b.WriteString(padLeft(r.printer.Sprintf("%.3f", row.Value), 10))
		}
		b.WriteString("  ")
		b.WriteString(padRight(r.bar(row.Percent), r.barWidth))
		b.WriteString(padLeft(r.printer.Sprintf("%.1f%%", row.Percent), 8))
		out.line(strings.TrimRight(b.String(), " "))
	}
	out.line("")
}

func (r *Renderer) bar(percent float64) string {
	if percent <= 0 || math.IsNaN(percent) {
		return ""
	}
	n := int(math.Round(percent / 100 * float64(r.barWidth)))
	if n < 1 {
		n = 1
	}
	if n > r.barWidth {
		n = r.barWidth
	}
	return strings.Repeat(barRune, n)
}

// RenderError writes the localized message for a failed load.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	out := &lineWriter{w: w}
	out.line(r.ErrorMessage(err))
	return out.err
}

// ErrorMessage localizes err. Invalid input and cancellation get dedicated messages.
func (r *Renderer) ErrorMessage(err error) string {
	var invalid *analyzer.InvalidInputError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &invalid):
		return r.printer.Sprintf("error.invalid_input", invalid.Reason)
	case errors.Is(err, analyzer.ErrInvalidInput):
		return r.printer.Sprintf("error.invalid_input", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return r.printer.Sprintf("error.canceled")
	default:
		return r.printer.Sprintf("error.failed", err.Error())
	}
}

// RenderState writes the placeholder for the idle and loading states.
func (r *Renderer) RenderState(w io.Writer, s State) error {
	out := &lineWriter{w: w}
	switch s {
	case StateLoading:
		out.line(r.printer.Sprintf("state.loading"))
	default:
		out.line(r.printer.Sprintf("state.idle"))
	}
	return out.err
}

// lineWriter keeps the first write error.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	_, lw.err = io.WriteString(lw.w, s+"\n")
}

// displayWidth counts terminal columns; wide and fullwidth runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func padRight(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padLeft(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}
