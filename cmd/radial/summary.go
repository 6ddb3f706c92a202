// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/katalvlaran/radial/pipeline"
	"github.com/katalvlaran/radial/render"
	"github.com/katalvlaran/radial/sector"
	"github.com/katalvlaran/radial/store"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2a9d8f"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d")).Width(14)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	headStyle  = cellStyle.Bold(true)
	rowsBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c757d"))
)

// kv renders one "key  value" line.
func kv(key, value string) string {
	return keyStyle.Render(key) + value
}

// labelStyles maps each label to a bold palette colour, cycling the palette.
func labelStyles(labels []sector.Label, palette []string) map[sector.Label]lipgloss.Style {
	if len(palette) == 0 {
		palette = render.DefaultPalette
	}
	out := make(map[sector.Label]lipgloss.Style, len(labels))
	for i, l := range labels {
		out[l] = cellStyle.Bold(true).Foreground(lipgloss.Color(palette[i%len(palette)]))
	}

	return out
}

// newTable returns a rounded-border table with the given headers.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(rowsBorder).
		Headers(headers...)
}

// styleByLabel colours column 0 by label when styles holds it.
func styleByLabel(t *table.Table, rows [][]string, styles map[sector.Label]lipgloss.Style) *table.Table {
	return t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headStyle
		}
		if col == 0 && row >= 0 && row < len(rows) {
			if s, ok := styles[sector.Label(rows[row][0])]; ok {
				return s
			}
		}
		return cellStyle
	})
}

func formatRatios(rs []float64) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = fmt.Sprintf("PC%d %.1f%%", i+1, 100*r)
	}

	return strings.Join(parts, ", ")
}

// renderSummary prints the outcome of one pipeline run.
func renderSummary(w io.Writer, rep *pipeline.Report, palette []string) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("radial partition") + "\n")
	b.WriteString(kv("input", rep.Input) + "\n")
	b.WriteString(kv("digest", rep.Digest) + "\n")
	b.WriteString(kv("participants", strconv.Itoa(len(rep.Participants))) + "\n")
	b.WriteString(kv("explained", formatRatios(rep.Projection.ExplainedVarianceRatio)) + "\n")
	b.WriteString(kv("offset", fmt.Sprintf("%.0f°", rep.Result.Offset)) + "\n")
	b.WriteString(kv("centroid", fmt.Sprintf("(%.3f, %.3f)", rep.Result.Centroid.X, rep.Result.Centroid.Y)) + "\n")

	rows := make([][]string, 0, len(rep.Result.Labels))
	for _, gs := range rep.Sizes() {
		rows = append(rows, []string{string(gs.Label), strconv.Itoa(gs.Size)})
	}
	t := styleByLabel(newTable("group", "size"), rows, labelStyles(rep.Result.Labels, palette)).Rows(rows...)
	b.WriteString(t.Render() + "\n")

	if rep.Outputs.Assignments != "" {
		b.WriteString(kv("assignments", rep.Outputs.Assignments) + "\n")
	}
	if rep.Outputs.Image != "" {
		b.WriteString(kv("chart", rep.Outputs.Image) + "\n")
	}
	if rep.RunID != "" {
		b.WriteString(kv("run", rep.RunID+" ("+rep.Outputs.Database+")") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderRuns prints a run listing.
func renderRuns(w io.Writer, runs []store.Summary) error {
	if len(runs) == 0 {
		_, err := io.WriteString(w, "no runs stored\n")
		return err
	}
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID,
			r.CreatedAt.Local().Format(timeFormat),
			strconv.Itoa(r.Groups),
			strconv.Itoa(r.Participants),
			fmt.Sprintf("%.0f", r.Offset),
			r.Input,
		}
	}
	t := styleByLabel(newTable("id", "created", "groups", "participants", "offset", "input"), rows, nil).Rows(rows...)
	_, err := io.WriteString(w, t.Render()+"\n")
	return err
}

// memberLabels returns the labels of run in angular order.
func memberLabels(run *store.Run) []sector.Label {
	ms := make([]store.Member, len(run.Members))
	copy(ms, run.Members)
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Angle < ms[j].Angle })

	seen := make(map[sector.Label]bool)
	var out []sector.Label
	for _, m := range ms {
		if !seen[m.Group] {
			seen[m.Group] = true
			out = append(out, m.Group)
		}
	}

	return out
}

// renderRun prints a stored run: header, boundaries and members.
func renderRun(w io.Writer, run *store.Run, palette []string) error {
	labels := memberLabels(run)
	styles := labelStyles(labels, palette)

	var b strings.Builder
	b.WriteString(titleStyle.Render("run "+run.ID) + "\n")
	b.WriteString(kv("created", run.CreatedAt.Local().Format(timeFormat)) + "\n")
	b.WriteString(kv("input", run.Input) + "\n")
	b.WriteString(kv("digest", run.InputDigest) + "\n")
	b.WriteString(kv("groups", strconv.Itoa(run.Groups)) + "\n")
	b.WriteString(kv("explained", formatRatios(run.Explained)) + "\n")
	b.WriteString(kv("offset", fmt.Sprintf("%.0f°", run.Offset)) + "\n")
	b.WriteString(kv("centroid", fmt.Sprintf("(%.3f, %.3f)", run.CentroidX, run.CentroidY)) + "\n")

	if len(run.Boundaries) > 0 {
		rows := make([][]string, len(run.Boundaries))
		for i, bd := range run.Boundaries {
			rows[i] = []string{string(bd.After), string(bd.Before), fmt.Sprintf("%.3f", bd.Angle)}
		}
		t := styleByLabel(newTable("after", "before", "angle"), rows, styles).Rows(rows...)
		b.WriteString(t.Render() + "\n")
	}

	rows := make([][]string, len(run.Members))
	for i, m := range run.Members {
		rows[i] = []string{
			string(m.Group),
			m.ID,
			fmt.Sprintf("%.3f", m.X),
			fmt.Sprintf("%.3f", m.Y),
			fmt.Sprintf("%.3f", m.Angle),
		}
	}
	t := styleByLabel(newTable("group", "pid", "x", "y", "angle"), rows, styles).Rows(rows...)
	b.WriteString(t.Render() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
