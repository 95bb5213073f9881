// Package weekchart draws the per-day task status breakdown of a week as a
// stacked bar chart.
package weekchart

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weeklit/internal/models"
)

const (
	minWidth  = 28
	minHeight = 8
)

var (
	todoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	doingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Day is one bar: a weekday label and its counts.
type Day struct {
	Label  string
	Counts models.TaskCounts
}

type Model struct {
	chart  barchart.Model
	days   []Day
	width  int
	height int
}

func New(width, height int) Model {
	m := Model{width: width, height: height}
	m.build()
	return m
}

func (m *Model) SetDays(days []Day) {
	m.days = days
	m.build()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.build()
}

func (m *Model) build() {
	w := max(m.width, minWidth)
	h := max(m.height-2, minHeight)
	m.chart = barchart.New(w, h)
	m.chart.PushAll(bars(m.days))
	m.chart.Draw()
}

// bars stacks todo, doing and done for each day, bottom to top. Days with
// no tasks get a single zero bar so their label still shows.
func bars(days []Day) []barchart.BarData {
	out := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		var values []barchart.BarValue
		if d.Counts.Todo > 0 {
			values = append(values, barchart.BarValue{Name: "todo", Value: float64(d.Counts.Todo), Style: todoStyle})
		}
		if d.Counts.Doing > 0 {
			values = append(values, barchart.BarValue{Name: "doing", Value: float64(d.Counts.Doing), Style: doingStyle})
		}
		if d.Counts.Done > 0 {
			values = append(values, barchart.BarValue{Name: "done", Value: float64(d.Counts.Done), Style: doneStyle})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: emptyStyle}}
		}
		out = append(out, barchart.BarData{Label: d.Label, Values: values})
	}
	return out
}

// Totals sums the counts of every day.
func (m Model) Totals() models.TaskCounts {
	var total models.TaskCounts
	for _, d := range m.days {
		total.Todo += d.Counts.Todo
		total.Doing += d.Counts.Doing
		total.Done += d.Counts.Done
		total.Total += d.Counts.Total
	}
	return total
}

func (m Model) View() string {
	t := m.Totals()
	legend := lipgloss.JoinHorizontal(lipgloss.Top,
		todoStyle.Render(fmt.Sprintf("■ todo %d  ", t.Todo)),
		doingStyle.Render(fmt.Sprintf("■ doing %d  ", t.Doing)),
		doneStyle.Render(fmt.Sprintf("■ done %d", t.Done)),
	)
	if t.Total == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, "No tasks this week.", "", legend)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.chart.View(), "", legend)
}
