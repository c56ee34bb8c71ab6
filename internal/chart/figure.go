// Package chart builds Plotly figure descriptions. A Figure marshals to the
// same document shape plotly.js accepts in Plotly.newPlot.
package chart

import (
	"encoding/json"
	"math"
	"strconv"
)

// Palette is Plotly's default qualitative color sequence.
var Palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	AlignmentGroup string   `json:"alignmentgroup,omitempty"`
	HoverTemplate  string   `json:"hovertemplate"`
	LegendGroup    string   `json:"legendgroup"`
	Marker         Marker   `json:"marker"`
	Name           string   `json:"name"`
	OffsetGroup    string   `json:"offsetgroup"`
	Orientation    string   `json:"orientation"`
	ShowLegend     bool     `json:"showlegend"`
	TextPosition   string   `json:"textposition"`
	Type           string   `json:"type"`
	X              []string `json:"x"`
	XAxis          string   `json:"xaxis"`
	Y              []Number `json:"y"`
	YAxis          string   `json:"yaxis"`
}

type Marker struct {
	Color   string  `json:"color"`
	Pattern Pattern `json:"pattern"`
}

type Pattern struct {
	Shape string `json:"shape"`
}

type Layout struct {
	BarMode string `json:"barmode"`
	Legend  Legend `json:"legend"`
	Margin  Margin `json:"margin"`
	Title   *Text  `json:"title,omitempty"`
	XAxis   Axis   `json:"xaxis"`
	YAxis   Axis   `json:"yaxis"`
}

type Legend struct {
	Title         *Text `json:"title,omitempty"`
	TraceGroupGap int   `json:"tracegroupgap"`
}

type Margin struct {
	T int `json:"t"`
}

type Axis struct {
	Anchor string     `json:"anchor"`
	Domain [2]float64 `json:"domain"`
	Title  Text       `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

// Number is a float that encodes NaN and the infinities as null, which is
// how plotly.js expects missing values.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'f', -1, 64), nil
}

// JSON encodes the figure. The output is stable for identical figures.
func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}
