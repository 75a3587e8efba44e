package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/save"
)

// parseMessage is shown to the operator when a file cannot be decoded.
const parseMessage = "the file must be a valid export from this system"

// Decode parses bundle bytes in the given format.
//
// Decoding is tolerant: any well-formed document yields a bundle. Values of
// the wrong shape are dropped and become absent, so a non-array residents
// key decodes to a nil Residents slice, which the merger rejects. Only bytes
// that are not valid JSON or YAML produce a ParseError.
func Decode(data []byte, format save.Format) (*Bundle, error) {
	return decode(data, format, "")
}

func decode(data []byte, format save.Format, path string) (*Bundle, error) {
	var raw any
	switch format {
	case save.FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.NewParseError("yaml", path, parseMessage, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.NewParseError("json", path, parseMessage, err)
		}
	}
	return FromValue(raw), nil
}

// DecodeFile reads and decodes the bundle at path, picking the format from
// the file extension. Read failures are IOErrors; decode failures are
// ParseErrors naming the file.
func DecodeFile(ctx context.Context, path string) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(f, constants.MaxBundleSize+1))
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	if len(data) > constants.MaxBundleSize {
		return nil, errors.NewIOError("read", path, fmt.Errorf("file exceeds %d bytes", constants.MaxBundleSize))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return decode(data, save.FormatFromPath(path), path)
}

// FromValue converts an arbitrary decoded document into a Bundle. It never
// fails: a non-object document is an empty bundle.
func FromValue(v any) *Bundle {
	m, ok := asMap(v)
	if !ok {
		return &Bundle{}
	}

	b := &Bundle{
		Version:   scalarString(m["version"]),
		Timestamp: scalarString(m["timestamp"]),
	}

	if inst, ok := asMap(m["institution"]); ok {
		b.Institution = &Institution{}
		decodeRecord(inst, b.Institution)
	}
	if cfg, ok := asMap(m["config"]); ok {
		b.Config = &BackupConfig{}
		decodeRecord(cfg, b.Config)
	}

	b.Agents = decodeList(m["agents"], func(rec map[string]any) Agent {
		var a Agent
		decodeRecord(rec, &a)
		return a
	})
	b.Residents = decodeList(m["residents"], decodeResident)
	b.Logs = decodeList(m["logs"], func(rec map[string]any) AuditLog {
		var l AuditLog
		decodeRecord(rec, &l)
		return l
	})
	b.Territories = decodeList(m["territories"], func(rec map[string]any) Territory {
		var t Territory
		decodeRecord(rec, &t)
		return t
	})

	normalizeLegacy(b)
	return b
}

// decodeList decodes an array of records. A value that is not an array
// yields nil (absent). Elements that are not objects decode as empty
// records so positions and counts are preserved.
func decodeList[T any](v any, fn func(map[string]any) T) []T {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		rec, _ := asMap(item)
		out = append(out, fn(rec))
	}
	return out
}

func decodeResident(rec map[string]any) Resident {
	var r Resident
	fields := make(map[string]any, len(rec))
	for k, v := range rec {
		if k != "education" {
			fields[k] = v
		}
	}
	decodeRecord(fields, &r)

	if edu, ok := asMap(rec["education"]); ok {
		r.Education = &Education{}
		decodeRecord(edu, r.Education)
	}
	return r
}

// decodeRecord fills out from a flat record. Every field of the target
// types is a string or a bool; the hook coerces or blanks anything else,
// so decoding never fails on shape. Remaining errors leave the offending
// field at its zero value.
func decodeRecord(rec map[string]any, out any) {
	if len(rec) == 0 {
		return
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       coerceScalar,
		Result:           out,
	})
	if err != nil {
		return
	}
	_ = dec.Decode(rec)
}

// coerceScalar converts a decoded value to the kind of the target field.
func coerceScalar(from reflect.Type, to reflect.Type, data any) (any, error) {
	switch to.Kind() {
	case reflect.String:
		return scalarString(data), nil
	case reflect.Bool:
		switch v := data.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(v)
			return err == nil && b, nil
		case float64:
			return v != 0, nil
		case int, int64, uint64:
			return fmt.Sprint(v) != "0", nil
		default:
			return false, nil
		}
	}
	return data, nil
}

// scalarString renders scalars as text and blanks composite values.
func scalarString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		return fmt.Sprint(s)
	default:
		return ""
	}
}

// asMap accepts the object shapes produced by the JSON and YAML decoders.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
