package report

import (
	"sort"
	"time"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
)

// adultAge is the age at which a resident stops counting as a minor.
const adultAge = 18

// Stats are the headline numbers of the dashboard.
type Stats struct {
	Residents      int     `json:"residents" yaml:"residents"`
	Households     int     `json:"households" yaml:"households"`
	Students       int     `json:"students" yaml:"students"`
	Minors         int     `json:"minors" yaml:"minors"`
	Territories    int     `json:"territories" yaml:"territories"`
	ByNeighborhood []Count `json:"byNeighborhood" yaml:"byNeighborhood"`
}

// Count is a labelled tally.
type Count struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// Summarize computes dashboard statistics at now. Households are counted by
// their Head resident; birth dates that cannot be parsed count as adults.
func Summarize(b *bundle.Bundle, now time.Time) Stats {
	if b == nil {
		return Stats{}
	}
	s := Stats{
		Residents:   len(b.Residents),
		Territories: len(b.Territories),
	}

	neighborhoods := make(map[string]int)
	for _, r := range b.Residents {
		if r.Relationship == bundle.RelationshipHead {
			s.Households++
		}
		if r.Education != nil && r.Education.IsStudying {
			s.Students++
		}
		if age, ok := Age(r.BirthDate, now); ok && age < adultAge {
			s.Minors++
		}
		neighborhoods[r.Neighborhood]++
	}

	for label, n := range neighborhoods {
		s.ByNeighborhood = append(s.ByNeighborhood, Count{Label: label, Count: n})
	}
	sort.Slice(s.ByNeighborhood, func(i, j int) bool {
		a, b := s.ByNeighborhood[i], s.ByNeighborhood[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})
	return s
}

// Age returns the age in whole years of someone born on birthDate
// (YYYY-MM-DD) at now.
func Age(birthDate string, now time.Time) (int, bool) {
	birth, err := time.Parse(constants.DateLayout, birthDate)
	if err != nil {
		return 0, false
	}
	now = now.UTC()
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, true
}
