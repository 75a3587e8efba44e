package bundle

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/cadastro/internal/utils/fileutil"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/save"
)

// Encode serializes b in the given format. JSON is indented with two
// spaces, matching what stations have always exported.
func Encode(b *Bundle, format save.Format) ([]byte, error) {
	if b == nil {
		b = &Bundle{}
	}
	switch format {
	case save.FormatYAML:
		data, err := yaml.MarshalWithOptions(b, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
		return data, nil
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(b); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		return buf.Bytes(), nil
	}
}

// Write encodes b and sends it to the configured writer, or atomically to
// the configured path. With neither configured it writes to stdout.
func Write(b *Bundle, opts ...save.Option) error {
	o := save.Defaults().Apply(opts...)

	data, err := Encode(b, o.Format())
	if err != nil {
		return err
	}

	switch {
	case o.Writer() != nil:
		if _, err := o.Writer().Write(data); err != nil {
			return errors.WrapIO("write", "bundle", err)
		}
		return nil
	case o.Path() != "":
		perm := os.FileMode(constants.FilePermissions)
		if o.Secure() {
			perm = constants.SecureFilePermissions
		}
		return fileutil.WriteFile(o.Path(), data, perm)
	default:
		if _, err := os.Stdout.Write(data); err != nil {
			return errors.WrapIO("write", "stdout", err)
		}
		return nil
	}
}
