package chart

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employees() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"Name", "Age", "Gender"},
		{"Alice", "29", "Female"},
		{"Bob", "34", "Male"},
		{"Carla", "41", "Female"},
		{"Dee", "22", "Nonbinary"},
	})
}

var byGender = BarSpec{X: "Name", Y: "Age", Color: "Gender"}

func TestNewBarGroupsByColor(t *testing.T) {
	fig, err := NewBar(employees(), byGender)
	require.NoError(t, err)
	require.Len(t, fig.Data, 3)

	female := fig.Data[0]
	assert.Equal(t, "Female", female.Name)
	assert.Equal(t, []string{"Alice", "Carla"}, female.X)
	assert.Equal(t, []Number{29, 41}, female.Y)
	assert.Equal(t, "#636efa", female.Marker.Color)
	assert.Equal(t, "Gender=Female<br>Name=%{x}<br>Age=%{y}<extra></extra>", female.HoverTemplate)
	assert.Equal(t, "bar", female.Type)
	assert.True(t, female.ShowLegend)

	assert.Equal(t, "Male", fig.Data[1].Name)
	assert.Equal(t, "#EF553B", fig.Data[1].Marker.Color)
	assert.Equal(t, "Nonbinary", fig.Data[2].Name)

	assert.Equal(t, "relative", fig.Layout.BarMode)
	require.NotNil(t, fig.Layout.Legend.Title)
	assert.Equal(t, "Gender", fig.Layout.Legend.Title.Text)
	assert.Equal(t, "Name", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "Age", fig.Layout.YAxis.Title.Text)
	assert.Nil(t, fig.Layout.Title)
}

func TestNewBarWithoutColor(t *testing.T) {
	fig, err := NewBar(employees(), BarSpec{X: "Name", Y: "Age", Title: "Ages"})
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)

	tr := fig.Data[0]
	assert.False(t, tr.ShowLegend)
	assert.Len(t, tr.X, 4)
	assert.Equal(t, "Name=%{x}<br>Age=%{y}<extra></extra>", tr.HoverTemplate)
	assert.Nil(t, fig.Layout.Legend.Title)
	require.NotNil(t, fig.Layout.Title)
	assert.Equal(t, "Ages", fig.Layout.Title.Text)
}

func TestNewBarPaletteWraps(t *testing.T) {
	records := [][]string{{"Name", "Age", "Team"}}
	for i := 0; i < len(Palette)+1; i++ {
		records = append(records, []string{string(rune('a' + i)), "1", string(rune('A' + i))})
	}
	fig, err := NewBar(dataframe.LoadRecords(records), BarSpec{X: "Name", Y: "Age", Color: "Team"})
	require.NoError(t, err)
	require.Len(t, fig.Data, len(Palette)+1)
	assert.Equal(t, Palette[0], fig.Data[len(Palette)].Marker.Color)
}

func TestNewBarUnknownColumn(t *testing.T) {
	for _, spec := range []BarSpec{
		{X: "Name", Y: "Salary", Color: "Gender"},
		{X: "Name", Y: "Age", Color: "Dept"},
		{X: "Surname", Y: "Age"},
	} {
		_, err := NewBar(employees(), spec)
		assert.ErrorIs(t, err, ErrUnknownColumn, "%+v", spec)
	}
}

func TestNewBarDataFrameError(t *testing.T) {
	_, err := NewBar(dataframe.DataFrame{Err: errors.New("bad csv")}, byGender)
	assert.ErrorContains(t, err, "bad csv")
}

func TestNonNumericYIsNull(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Name", "Age", "Gender"},
		{"Alice", "unknown", "Female"},
		{"Bob", "34", "Male"},
	})
	fig, err := NewBar(df, byGender)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(fig.Data[0].Y[0])))

	out, err := fig.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"y":[null]`)
	assert.Contains(t, string(out), `"y":[34]`)
}

func TestFigureJSONShape(t *testing.T) {
	fig, err := NewBar(employees(), byGender)
	require.NoError(t, err)
	out, err := fig.JSON()
	require.NoError(t, err)

	var doc struct {
		Data []struct {
			Type string    `json:"type"`
			Name string    `json:"name"`
			X    []string  `json:"x"`
			Y    []float64 `json:"y"`
		} `json:"data"`
		Layout map[string]any `json:"layout"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Data, 3)
	assert.Equal(t, "bar", doc.Data[0].Type)
	assert.Equal(t, []float64{29, 41}, doc.Data[0].Y)
	assert.Equal(t, "relative", doc.Layout["barmode"])
}

func TestFigureJSONDeterministic(t *testing.T) {
	first, err := NewBar(employees(), byGender)
	require.NoError(t, err)
	second, err := NewBar(employees(), byGender)
	require.NoError(t, err)

	a, err := first.JSON()
	require.NoError(t, err)
	b, err := second.JSON()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNumberMarshal(t *testing.T) {
	for in, want := range map[float64]string{
		29:          "29",
		1.5:         "1.5",
		math.Inf(1): "null",
	} {
		got, err := Number(in).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}
