package web

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/godilite/airsat-server/internal/service"
)

const (
	chartWidth   = 560
	chartHeight  = 280
	chartPadding = 48
)

const (
	TrendChartTitle  = "Passenger Satisfaction Trends Over the Years"
	IssuesChartTitle = "Common Passenger Issues"
)

// Tick is one labelled position along an axis.
type Tick struct {
	Pos   float64
	Label string
}

// Point is one vertex of a line chart.
type Point struct {
	X, Y float64
}

// Bar is one rectangle of a bar chart, in SVG user units.
type Bar struct {
	X, Y, W, H float64
	Label      string
	Value      int
}

// Chart holds precomputed SVG geometry; the template only draws it.
type Chart struct {
	Title         string
	XLabel        string
	YLabel        string
	Width, Height int
	Left, Bottom  float64
	Right, Top    float64
	Polyline      string
	Points        []Point
	Bars          []Bar
	XTicks        []Tick
	YTicks        []Tick
}

func newChart(title, xLabel, yLabel string) Chart {
	return Chart{
		Title:  title,
		XLabel: xLabel,
		YLabel: yLabel,
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartPadding,
		Right:  chartWidth - chartPadding/2,
		Top:    chartPadding / 2,
		Bottom: chartHeight - chartPadding,
	}
}

// niceMax rounds v up to a multiple of 10 so the y axis ends on a clean tick.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 10
	}
	step := 10.0
	for v/step > 10 {
		step *= 10
	}
	n := float64(int(v/step)) * step
	if n < v {
		n += step
	}
	return n
}

func (c *Chart) yTicks(yMax float64) {
	for i := 0; i <= 4; i++ {
		v := yMax * float64(i) / 4
		c.YTicks = append(c.YTicks, Tick{
			Pos:   c.Bottom - (c.Bottom-c.Top)*v/yMax,
			Label: strconv.FormatFloat(v, 'f', -1, 64),
		})
	}
}

// TrendChart lays out a line chart of satisfaction rate per year.
func TrendChart(points []service.TrendPoint) Chart {
	c := newChart(TrendChartTitle, "Year", "Satisfaction Rate")
	if len(points) == 0 {
		return c
	}

	hi := 0.0
	for _, p := range points {
		if p.Rate > hi {
			hi = p.Rate
		}
	}
	yMax := niceMax(hi)
	c.yTicks(yMax)

	plotW := c.Right - c.Left
	coords := make([]string, len(points))
	for i, p := range points {
		x := c.Left + plotW/2
		if len(points) > 1 {
			x = c.Left + plotW*float64(i)/float64(len(points)-1)
		}
		y := c.Bottom - (c.Bottom-c.Top)*p.Rate/yMax
		coords[i] = fmt.Sprintf("%.1f,%.1f", x, y)
		c.Points = append(c.Points, Point{X: x, Y: y})
		c.XTicks = append(c.XTicks, Tick{Pos: x, Label: strconv.Itoa(p.Year)})
	}
	c.Polyline = strings.Join(coords, " ")
	return c
}

// IssuesChart lays out a bar chart of issue frequencies in the given order.
func IssuesChart(issues []service.IssueCount) Chart {
	c := newChart(IssuesChartTitle, "Issue", "Frequency")
	if len(issues) == 0 {
		return c
	}

	hi := 0
	for _, is := range issues {
		if is.Frequency > hi {
			hi = is.Frequency
		}
	}
	yMax := niceMax(float64(hi))
	c.yTicks(yMax)

	slot := (c.Right - c.Left) / float64(len(issues))
	w := slot * 0.6
	for i, is := range issues {
		h := (c.Bottom - c.Top) * float64(is.Frequency) / yMax
		x := c.Left + slot*float64(i) + (slot-w)/2
		c.Bars = append(c.Bars, Bar{X: x, Y: c.Bottom - h, W: w, H: h, Label: is.Issue, Value: is.Frequency})
		c.XTicks = append(c.XTicks, Tick{Pos: x + w/2, Label: is.Issue})
	}
	return c
}
