package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var ErrUnknownColumn = errors.New("chart: unknown column")

// BarSpec binds dataframe columns to the visual channels of a bar chart.
// Color is optional; when set, every distinct value gets its own trace.
type BarSpec struct {
	X     string
	Y     string
	Color string
	Title string
}

// NewBar lays out df as a vertical bar chart the way plotly express does:
// one trace per color group in order of first appearance, stacked
// relative to each other.
func NewBar(df dataframe.DataFrame, spec BarSpec) (*Figure, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("chart: dataframe: %w", df.Err)
	}
	xs, err := column(df, spec.X)
	if err != nil {
		return nil, err
	}
	ys, err := column(df, spec.Y)
	if err != nil {
		return nil, err
	}

	x := xs.Records()
	y := ys.Float()

	var groups []string
	var keys []string
	if spec.Color != "" {
		cs, err := column(df, spec.Color)
		if err != nil {
			return nil, err
		}
		keys = cs.Records()
		groups = firstSeen(keys)
	}

	fig := &Figure{
		Data:   make([]Trace, 0, len(groups)+1),
		Layout: layout(spec),
	}

	if spec.Color == "" {
		t := newTrace(spec, "", Palette[0])
		t.ShowLegend = false
		t.X = x
		t.Y = numbers(y)
		fig.Data = append(fig.Data, t)
		return fig, nil
	}

	for i, g := range groups {
		t := newTrace(spec, g, Palette[i%len(Palette)])
		for row, k := range keys {
			if k != g {
				continue
			}
			t.X = append(t.X, x[row])
			t.Y = append(t.Y, Number(y[row]))
		}
		fig.Data = append(fig.Data, t)
	}
	return fig, nil
}

func column(df dataframe.DataFrame, name string) (series.Series, error) {
	s := df.Col(name)
	if s.Err != nil {
		return s, fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return s, nil
}

func firstSeen(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func newTrace(spec BarSpec, group, color string) Trace {
	var hover strings.Builder
	if spec.Color != "" {
		fmt.Fprintf(&hover, "%s=%s<br>", spec.Color, group)
	}
	fmt.Fprintf(&hover, "%s=%%{x}<br>%s=%%{y}<extra></extra>", spec.X, spec.Y)

	return Trace{
		AlignmentGroup: "True",
		HoverTemplate:  hover.String(),
		LegendGroup:    group,
		Marker:         Marker{Color: color},
		Name:           group,
		OffsetGroup:    group,
		Orientation:    "v",
		ShowLegend:     true,
		TextPosition:   "auto",
		Type:           "bar",
		X:              []string{},
		XAxis:          "x",
		Y:              []Number{},
		YAxis:          "y",
	}
}

func layout(spec BarSpec) Layout {
	l := Layout{
		BarMode: "relative",
		Legend:  Legend{TraceGroupGap: 0},
		Margin:  Margin{T: 60},
		XAxis:   Axis{Anchor: "y", Domain: [2]float64{0, 1}, Title: Text{Text: spec.X}},
		YAxis:   Axis{Anchor: "x", Domain: [2]float64{0, 1}, Title: Text{Text: spec.Y}},
	}
	if spec.Color != "" {
		l.Legend.Title = &Text{Text: spec.Color}
	}
	if spec.Title != "" {
		l.Title = &Text{Text: spec.Title}
	}
	return l
}

func numbers(fs []float64) []Number {
	out := make([]Number, len(fs))
	for i, f := range fs {
		out[i] = Number(f)
	}
	return out
}
