// Package reconciler merges a bundle received from a collection station
// into the local registry.
//
// Residents are matched on their national ID (cpf). A match is overlaid
// field by field with every field the incoming record carries, so a station
// that captured only a new phone number does not erase what the server
// already knows; unmatched residents are appended. Territories are matched on
// (street, number) and the first record seen wins: incoming duplicates are
// skipped.
//
// Both inputs are expected to be sanitized. The only precondition checked is
// that the incoming bundle has a residents array.
package reconciler

import (
	"context"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
	"github.com/agentstation/cadastro/pkg/logging"
)

// Reconciler merges incoming bundles into local collections.
type Reconciler interface {
	// Merge folds incoming into copies of the local collections. The local
	// slices are never modified.
	Merge(ctx context.Context, residents []bundle.Resident, territories []bundle.Territory, incoming *bundle.Bundle) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	key KeyFunc
}

// New creates a Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{key: options.key}, nil
}

// Merge folds incoming into the local collections using cpf identity.
// It is pure: no I/O and no logging.
func Merge(residents []bundle.Resident, territories []bundle.Territory, incoming *bundle.Bundle) (*Result, error) {
	return merge(CPFKey, residents, territories, incoming)
}

// Merge implements Reconciler.
func (r *reconciler) Merge(ctx context.Context, residents []bundle.Resident, territories []bundle.Territory, incoming *bundle.Bundle) (*Result, error) {
	logger := logging.FromContext(ctx)

	result, err := merge(r.key, residents, territories, incoming)
	if err != nil {
		logger.Warn().Err(err).Msg("Incoming bundle rejected")
		return nil, err
	}

	logger.Debug().
		Int("residents_new", result.New).
		Int("residents_updated", result.Updated).
		Int("territories_added", result.TerritoriesAdded).
		Int("territories_skipped", result.TerritoriesSkipped).
		Msg("Merge finished")

	return result, nil
}

// Validate checks the one precondition of a merge: incoming must carry a
// residents array. Callers that sanitize before merging validate first,
// since sanitizing fills in an absent array.
func Validate(incoming *bundle.Bundle) error {
	if incoming == nil {
		return errors.NewFormatError("bundle", "is missing")
	}
	if incoming.Residents == nil {
		return errors.NewFormatError("residents", "must be an array")
	}
	return nil
}

func merge(key KeyFunc, residents []bundle.Resident, territories []bundle.Territory, incoming *bundle.Bundle) (*Result, error) {
	if err := Validate(incoming); err != nil {
		return nil, err
	}

	result := &Result{}
	merged, err := mergeResidents(key, residents, incoming.Residents, result)
	if err != nil {
		return nil, err
	}
	result.Residents = merged
	result.Territories = mergeTerritories(territories, incoming.Territories, result)
	return result, nil
}
