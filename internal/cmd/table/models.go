// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/cadastro/internal/cmd/emoji"
	"github.com/agentstation/cadastro/internal/insights"
	"github.com/agentstation/cadastro/internal/report"
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
	"github.com/agentstation/cadastro/pkg/reconciler"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// ResidentsToTableData converts residents to table format. The wide view
// adds contact and address columns.
func ResidentsToTableData(residents []bundle.Resident, now time.Time, wide bool) Data {
	headers := []string{"Name", "CPF", "Age", "Relationship", "Neighborhood", "Studying"}
	if wide {
		headers = append(headers, "Phone", "Address", "ID")
	}

	rows := make([][]string, 0, len(residents))
	for _, r := range residents {
		row := []string{
			r.Name,
			identity.FormatCPF(r.CPF),
			FormatAge(r.BirthDate, now),
			FormatRelationship(r.Relationship),
			r.Neighborhood,
			FormatStudying(r.Education),
		}
		if wide {
			row = append(row, Dash(r.Phone), Dash(FormatAddress(r)), r.ID)
		}
		rows = append(rows, row)
	}

	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignCenter}
	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// TerritoriesToTableData converts territories to table format.
func TerritoriesToTableData(territories []bundle.Territory) Data {
	headers := []string{"Neighborhood", "Street", "Number", "Block", "Lot", "Notes"}
	rows := make([][]string, 0, len(territories))
	for _, t := range territories {
		rows = append(rows, []string{
			t.Neighborhood,
			Dash(t.Street),
			Dash(t.Number),
			Dash(t.Block),
			Dash(t.Lot),
			Dash(t.Notes),
		})
	}
	return Data{Headers: headers, Rows: rows}
}

// LogsToTableData converts audit entries to table format.
func LogsToTableData(logs []bundle.AuditLog) Data {
	headers := []string{"Timestamp", "Agent", "Action", "Target", "Name"}
	rows := make([][]string, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, []string{
			l.Timestamp,
			l.AgentName,
			string(l.Action),
			string(l.TargetType),
			l.TargetName,
		})
	}
	return Data{Headers: headers, Rows: rows}
}

// ChangesToTableData lists the residents a merge overlaid.
func ChangesToTableData(changes []reconciler.Change) Data {
	headers := []string{"Resident", "CPF", "Changed Fields"}
	rows := make([][]string, 0, len(changes))
	for _, c := range changes {
		fields := strings.Join(c.Fields, ", ")
		if fields == "" {
			fields = "(identical)"
		}
		rows = append(rows, []string{c.Name, identity.FormatCPF(c.Key), fields})
	}
	return Data{Headers: headers, Rows: rows}
}

// HealthToTableData renders a health assessment as a key-value table.
func HealthToTableData(h report.Health) Data {
	status := emoji.Success
	if h.Score != report.ScoreExcellent {
		status = emoji.Warning
	}
	rows := [][]string{
		{"Score", status + " " + string(h.Score)},
		{"Status", h.Label},
		{"Residents", strconv.Itoa(h.Residents)},
		{"Missing CPF", strconv.Itoa(h.MissingCPF)},
	}
	if h.InvalidCPF > 0 {
		rows = append(rows, []string{"Invalid CPF", strconv.Itoa(h.InvalidCPF)})
	}
	return Data{
		Headers:         []string{"Property", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// StatsToTableData renders dashboard statistics followed by the
// per-neighborhood tally.
func StatsToTableData(s report.Stats) Data {
	rows := [][]string{
		{"Residents", strconv.Itoa(s.Residents)},
		{"Households", strconv.Itoa(s.Households)},
		{"Students", strconv.Itoa(s.Students)},
		{"Minors", strconv.Itoa(s.Minors)},
		{"Territories", strconv.Itoa(s.Territories)},
	}
	for _, c := range s.ByNeighborhood {
		rows = append(rows, []string{"  " + c.Label, strconv.Itoa(c.Count)})
	}
	return Data{
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// InsightsToTableData renders model insights.
func InsightsToTableData(items []insights.Insight) Data {
	rows := make([][]string, 0, len(items))
	for _, i := range items {
		rows = append(rows, []string{i.Category, i.Title, i.Content})
	}
	return Data{Headers: []string{"Category", "Title", "Insight"}, Rows: rows}
}

// StateToTableData summarizes the device state.
func StateToTableData(b *bundle.Bundle, lifecycle bundle.State, backupDue bool) Data {
	rows := [][]string{}
	if b.Institution != nil {
		rows = append(rows,
			[]string{"Institution", b.Institution.Name},
			[]string{"City", b.Institution.City},
			[]string{"Mode", string(b.Institution.SystemMode)},
		)
	}
	rows = append(rows,
		[]string{"Lifecycle", lifecycle.String()},
		[]string{"Residents", strconv.Itoa(len(b.Residents))},
		[]string{"Territories", strconv.Itoa(len(b.Territories))},
		[]string{"Agents", strconv.Itoa(len(b.Agents))},
		[]string{"Log Entries", strconv.Itoa(len(b.Logs))},
	)
	if b.Config != nil {
		rows = append(rows,
			[]string{"Backup Frequency", string(b.Config.Frequency)},
			[]string{"Last Backup", Dash(b.Config.LastBackupDate)},
		)
	}
	due := "no"
	if backupDue {
		due = emoji.Warning + " yes"
	}
	rows = append(rows, []string{"Backup Due", due})
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// FormatAge renders the age in years, or "-" for unknown birth dates.
func FormatAge(birthDate string, now time.Time) string {
	age, ok := report.Age(birthDate, now)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%d", age)
}

// FormatRelationship marks household heads.
func FormatRelationship(rel bundle.Relationship) string {
	if rel == bundle.RelationshipHead {
		return emoji.Head + " " + string(rel)
	}
	return string(rel)
}

// FormatStudying renders the education flag.
func FormatStudying(e *bundle.Education) string {
	if e != nil && e.IsStudying {
		return emoji.Student
	}
	return emoji.Optional
}

// FormatAddress joins the street address parts that are present.
func FormatAddress(r bundle.Resident) string {
	if r.Address != "" {
		return r.Address
	}
	var parts []string
	for _, p := range []string{r.Street, r.Number, r.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Dash returns s, or "-" when s is empty.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FileToTableData is the one-row table commands print after writing a file.
func FileToTableData(kind, path string) Data {
	return Data{Headers: []string{"Kind", "File"}, Rows: [][]string{{kind, path}}}
}
