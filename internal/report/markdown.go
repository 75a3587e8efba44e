package report

import (
	"io"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/identity"
)

// WriteMarkdown writes a markdown overview of the registry: institution
// heading, health score, headline numbers and residents per neighborhood.
func WriteMarkdown(w io.Writer, b *bundle.Bundle, now time.Time, strict bool) error {
	if b == nil {
		b = &bundle.Bundle{}
	}
	health := Assess(b.Residents, strict)
	stats := Summarize(b, now)

	title := "Registry"
	mode := ""
	if b.Institution != nil {
		if b.Institution.Name != "" {
			title = cases.Upper(language.BrazilianPortuguese).String(b.Institution.Name)
		}
		mode = string(b.Institution.SystemMode)
	}

	doc := md.NewMarkdown(w).
		H1(title).
		PlainTextf("Report generated at %s", md.Code(identity.Timestamp(now))).
		LF()
	if mode != "" {
		doc.PlainTextf("System mode: %s", md.Bold(mode)).LF()
	}

	doc.H2("Data health").
		PlainTextf("%s %s", md.Bold(string(health.Score)), health.Label).
		LF().
		BulletList(
			"Residents: "+strconv.Itoa(health.Residents),
			"Missing national ID: "+strconv.Itoa(health.MissingCPF),
			"Invalid national ID: "+strconv.Itoa(health.InvalidCPF),
		)

	doc.H2("Overview").
		Table(md.TableSet{
			Header: []string{"Residents", "Households", "Students", "Minors", "Territories"},
			Rows: [][]string{{
				strconv.Itoa(stats.Residents),
				strconv.Itoa(stats.Households),
				strconv.Itoa(stats.Students),
				strconv.Itoa(stats.Minors),
				strconv.Itoa(stats.Territories),
			}},
		})

	if len(stats.ByNeighborhood) > 0 {
		rows := make([][]string, 0, len(stats.ByNeighborhood))
		for _, c := range stats.ByNeighborhood {
			rows = append(rows, []string{c.Label, strconv.Itoa(c.Count)})
		}
		doc.H2("Residents by neighborhood").
			Table(md.TableSet{Header: []string{"Neighborhood", "Residents"}, Rows: rows})
	}

	return doc.Build()
}
