package web

import (
	"testing"

	"github.com/godilite/airsat-server/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceMax(t *testing.T) {
	tests := map[float64]float64{
		0:   10,
		85:  90,
		90:  90,
		200: 200,
		201: 300,
	}
	for in, want := range tests {
		assert.Equal(t, want, niceMax(in), "niceMax(%v)", in)
	}
}

func TestTrendChart(t *testing.T) {
	c := TrendChart([]service.TrendPoint{
		{Year: 2019, Rate: 80}, {Year: 2020, Rate: 75}, {Year: 2021, Rate: 85}, {Year: 2022, Rate: 90},
	})

	assert.Equal(t, TrendChartTitle, c.Title)
	require.Len(t, c.Points, 4)
	require.Len(t, c.XTicks, 4)
	assert.Equal(t, "2019", c.XTicks[0].Label)
	assert.Equal(t, c.Left, c.Points[0].X)
	assert.Equal(t, c.Right, c.Points[3].X)
	// 90 is the axis maximum, so the last point touches the top.
	assert.InDelta(t, c.Top, c.Points[3].Y, 1e-9)
	assert.Less(t, c.Points[1].Y, c.Bottom)
	assert.Greater(t, c.Points[1].Y, c.Points[0].Y)
	assert.NotEmpty(t, c.Polyline)
	assert.Len(t, c.YTicks, 5)
}

func TestIssuesChart(t *testing.T) {
	c := IssuesChart([]service.IssueCount{
		{Issue: "Late Flight", Frequency: 200},
		{Issue: "Poor Service", Frequency: 150},
		{Issue: "Comfort", Frequency: 120},
		{Issue: "Baggage", Frequency: 90},
	})

	assert.Equal(t, IssuesChartTitle, c.Title)
	require.Len(t, c.Bars, 4)
	assert.InDelta(t, c.Bottom-c.Top, c.Bars[0].H, 1e-9)
	for i := 1; i < len(c.Bars); i++ {
		assert.Less(t, c.Bars[i].H, c.Bars[i-1].H)
		assert.Greater(t, c.Bars[i].X, c.Bars[i-1].X)
		assert.InDelta(t, c.Bottom, c.Bars[i].Y+c.Bars[i].H, 1e-9)
	}
	assert.Equal(t, "Baggage", c.Bars[3].Label)
	assert.Empty(t, c.Polyline)
}

func TestCharts_Empty(t *testing.T) {
	assert.Empty(t, TrendChart(nil).Points)
	assert.Empty(t, IssuesChart(nil).Bars)
}
