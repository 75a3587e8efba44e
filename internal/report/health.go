// Package report derives operator-facing summaries from registry state:
// the data health score, household statistics, a CSV spreadsheet of
// residents and a markdown overview.
package report

import (
	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
)

// Score grades how complete the registry data is.
type Score string

// Health scores.
const (
	ScoreEmpty     Score = "--"
	ScoreAttention Score = "B"
	ScoreExcellent Score = "A+"
)

// Label returns the human description of s.
func (s Score) Label() string {
	switch s {
	case ScoreEmpty:
		return "Empty database"
	case ScoreAttention:
		return "Needs attention"
	case ScoreExcellent:
		return "Excellent"
	}
	return "Unknown"
}

// Health is the result of assessing a resident collection.
type Health struct {
	Score      Score  `json:"score" yaml:"score"`
	Label      string `json:"label" yaml:"label"`
	Residents  int    `json:"residents" yaml:"residents"`
	MissingCPF int    `json:"missingCpf" yaml:"missingCpf"`
	InvalidCPF int    `json:"invalidCpf,omitempty" yaml:"invalidCpf,omitempty"`
}

// Assess grades residents. A resident whose cpf is empty or still the
// sanitizer placeholder counts as missing. With strict set, a cpf failing
// the check digit test also lowers the score.
func Assess(residents []bundle.Resident, strict bool) Health {
	h := Health{Residents: len(residents)}
	for _, r := range residents {
		switch {
		case r.CPF == "" || identity.IsPlaceholderCPF(r.CPF):
			h.MissingCPF++
		case strict && !identity.ValidCPF(r.CPF):
			h.InvalidCPF++
		}
	}

	switch {
	case h.Residents == 0:
		h.Score = ScoreEmpty
	case h.MissingCPF > 0 || h.InvalidCPF > 0:
		h.Score = ScoreAttention
	default:
		h.Score = ScoreExcellent
	}
	h.Label = h.Score.Label()
	return h
}
