package hints

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/cadastro/internal/cmd/output"
)

// hintData represents hint data for structured output.
type hintData struct {
	Message string   `json:"message" yaml:"message"`
	Command string   `json:"command,omitempty" yaml:"command,omitempty"`
	Tags    []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Display writes hints in format. Structured formats wrap them in a
// "hints" object; everything else gets one block per hint.
func Display(w io.Writer, format output.Format, hints []*Hint) error {
	if len(hints) == 0 {
		return nil
	}

	data := make([]hintData, len(hints))
	for i, h := range hints {
		data[i] = hintData{Message: h.Message, Command: h.Command, Tags: h.Tags}
	}
	wrapped := struct {
		Hints []hintData `json:"hints" yaml:"hints"`
	}{Hints: data}

	switch format {
	case output.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(wrapped)
	case output.FormatYAML:
		out, err := yaml.MarshalWithOptions(wrapped, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}

	_, _ = fmt.Fprintln(w)
	for _, h := range hints {
		_, _ = fmt.Fprintln(w, h.String())
	}
	return nil
}
