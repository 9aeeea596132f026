package web

import (
	"fmt"
	"io"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

const (
	chartWidth  = 900
	chartHeight = 420
)

// RenderSectionPNG renders one section's chart as a PNG. All aggregation is
// already done; this only maps the section's table onto a chart spec.
func RenderSectionPNG(section model.Section, w io.Writer) error {
	switch section.Kind {
	case model.ChartBar, model.ChartBarHorizontal:
		return renderBarPNG(section, w)
	case model.ChartLine:
		return renderLinePNG(section, w)
	default:
		return fmt.Errorf("unknown chart kind %q", section.Kind)
	}
}

func renderBarPNG(section model.Section, w io.Writer) error {
	if len(section.Buckets) == 0 {
		return fmt.Errorf("section %s has no data", section.ID)
	}

	bars := make([]chart.Value, len(section.Buckets))
	for i, bucket := range section.Buckets {
		bars[i] = chart.Value{Label: bucket.Value, Value: float64(bucket.Count)}
	}

	ch := chart.BarChart{
		Title:      section.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   40,
		BarSpacing: 20,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 30}},
		XAxis:      chart.Style{TextRotationDegrees: 45.0},
		Bars:       bars,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart %s: %w", section.ID, err)
	}
	return nil
}

func renderLinePNG(section model.Section, w io.Writer) error {
	if len(section.Trend) == 0 {
		return fmt.Errorf("section %s has no data", section.ID)
	}

	times := make([]time.Time, len(section.Trend))
	values := make([]float64, len(section.Trend))
	for i, point := range section.Trend {
		times[i] = point.Month
		values[i] = float64(point.Count)
	}
	// go-chart refuses a series with a single point; extend a one-month
	// dataset into a flat two-point segment so it still draws.
	if len(times) == 1 {
		times = append(times, times[0].AddDate(0, 0, 1))
		values = append(values, values[0])
	}

	ch := chart.Chart{
		Title:      section.Title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 30}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			Name: "Number of Cases",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Cases",
				XValues: times,
				YValues: values,
				Style: chart.Style{
					StrokeWidth: 2.0,
					DotWidth:    4.0,
				},
			},
		},
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render line chart %s: %w", section.ID, err)
	}
	return nil
}
