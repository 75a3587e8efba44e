package report

import (
	"encoding/csv"
	"io"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

// bom makes spreadsheet applications detect UTF-8.
const bom = "\ufeff"

// CSVHeaders are the column titles of the resident spreadsheet.
var CSVHeaders = []string{
	"Name", "Relationship", "CPF", "RG", "Birth", "Civil Status",
	"Neighborhood", "City", "Studying", "School", "Grade", "Reason Not Studying",
}

// WriteCSV writes residents as a UTF-8 spreadsheet with a byte order mark.
func WriteCSV(w io.Writer, residents []bundle.Resident) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return errors.WrapIO("write", "csv", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeaders); err != nil {
		return errors.WrapIO("write", "csv", err)
	}
	for _, r := range residents {
		if err := cw.Write(csvRow(r)); err != nil {
			return errors.WrapIO("write", "csv", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WrapIO("write", "csv", err)
	}
	return nil
}

func csvRow(r bundle.Resident) []string {
	edu := r.Education
	if edu == nil {
		edu = &bundle.Education{}
	}
	studying := "No"
	if edu.IsStudying {
		studying = "Yes"
	}
	return []string{
		r.Name,
		string(r.Relationship),
		r.CPF,
		r.RG,
		r.BirthDate,
		string(r.CivilStatus),
		r.Neighborhood,
		r.City,
		studying,
		edu.SchoolName,
		edu.Grade,
		edu.ReasonNotStudying,
	}
}
