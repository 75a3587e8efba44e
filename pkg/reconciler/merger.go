package reconciler

import (
	"reflect"
	"strings"

	"dario.cat/mergo"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

// mergeResidents overlays or appends each incoming resident. Incoming
// records are matched against the growing merged collection, so a cpf
// repeated within one package updates the record appended earlier.
func mergeResidents(key KeyFunc, local, incoming []bundle.Resident, result *Result) ([]bundle.Resident, error) {
	merged := bundle.CloneResidents(local)
	if merged == nil {
		merged = make([]bundle.Resident, 0, len(incoming))
	}

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		k := key(r)
		if _, seen := index[k]; !seen {
			index[k] = i
		}
	}

	for _, in := range incoming {
		k := key(in)
		if i, ok := index[k]; ok {
			fields, err := overlay(&merged[i], in)
			if err != nil {
				return nil, errors.NewMergeError("incoming", "resident "+k, err)
			}
			result.Updated++
			result.Changes = append(result.Changes, Change{
				Key:    k,
				Name:   merged[i].Name,
				Fields: fields,
			})
			continue
		}
		index[k] = len(merged)
		merged = append(merged, in.Clone())
		result.New++
	}
	return merged, nil
}

// mergeTerritories appends incoming territories whose address is not yet
// known. Existing entries are never modified.
func mergeTerritories(local, incoming []bundle.Territory, result *Result) []bundle.Territory {
	merged := bundle.CloneTerritories(local)
	if merged == nil {
		merged = make([]bundle.Territory, 0, len(incoming))
	}

	seen := make(map[bundle.AddressKey]struct{}, len(merged)+len(incoming))
	for _, t := range merged {
		seen[t.Key()] = struct{}{}
	}

	for _, in := range incoming {
		if _, ok := seen[in.Key()]; ok {
			result.TerritoriesSkipped++
			continue
		}
		seen[in.Key()] = struct{}{}
		merged = append(merged, in)
		result.TerritoriesAdded++
	}
	return merged
}

// overlay copies every non-empty field of src onto dst and returns the json
// names of the fields whose value changed. An empty incoming string never
// clears a stored one. Education is replaced whole.
func overlay(dst *bundle.Resident, src bundle.Resident) ([]string, error) {
	before := *dst
	if err := mergo.Merge(dst, src.Clone(), mergo.WithOverride, mergo.WithTransformers(wholeEducation{})); err != nil {
		return nil, err
	}
	return changedFields(before, *dst), nil
}

// wholeEducation makes mergo assign a present education record instead of
// merging it field by field.
type wholeEducation struct{}

var educationType = reflect.TypeOf((*bundle.Education)(nil))

func (wholeEducation) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != educationType {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if !src.IsNil() && dst.CanSet() {
			dst.Set(src)
		}
		return nil
	}
}

func changedFields(before, after bundle.Resident) []string {
	bv := reflect.ValueOf(before)
	av := reflect.ValueOf(after)
	typ := bv.Type()

	var changed []string
	for i := 0; i < bv.NumField(); i++ {
		if !reflect.DeepEqual(bv.Field(i).Interface(), av.Field(i).Interface()) {
			changed = append(changed, fieldName(typ.Field(i)))
		}
	}
	return changed
}

func fieldName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}
