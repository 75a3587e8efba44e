package cadastro

import (
	"reflect"
	"sync"

	"github.com/agentstation/cadastro/pkg/bundle"
)

// Hook function types for resident events.
type (
	// ResidentAddedHook is called when a resident is added to the registry
	ResidentAddedHook func(resident bundle.Resident)

	// ResidentUpdatedHook is called when a resident record changes
	ResidentUpdatedHook func(old, new bundle.Resident)

	// ResidentRemovedHook is called when a resident leaves the registry,
	// which only a restore can cause
	ResidentRemovedHook func(resident bundle.Resident)
)

// Hooks provides event callback registration.
type Hooks interface {
	OnResidentAdded(ResidentAddedHook)
	OnResidentUpdated(ResidentUpdatedHook)
	OnResidentRemoved(ResidentRemovedHook)
}

// hooks manages event callbacks for resident changes.
type hooks struct {
	mu                sync.RWMutex
	onResidentAdded   []ResidentAddedHook
	onResidentUpdated []ResidentUpdatedHook
	onResidentRemoved []ResidentRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnResidentAdded registers a callback for when residents are added.
func (r *registry) OnResidentAdded(fn ResidentAddedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onResidentAdded = append(r.hooks.onResidentAdded, fn)
}

// OnResidentUpdated registers a callback for when residents are updated.
func (r *registry) OnResidentUpdated(fn ResidentUpdatedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onResidentUpdated = append(r.hooks.onResidentUpdated, fn)
}

// OnResidentRemoved registers a callback for when residents are removed.
func (r *registry) OnResidentRemoved(fn ResidentRemovedHook) {
	r.hooks.mu.Lock()
	defer r.hooks.mu.Unlock()
	r.hooks.onResidentRemoved = append(r.hooks.onResidentRemoved, fn)
}

// triggerResidentsUpdate compares old and new residents by id and triggers
// the matching hooks.
func (h *hooks) triggerResidentsUpdate(oldResidents, newResidents []bundle.Resident) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onResidentAdded)+len(h.onResidentUpdated)+len(h.onResidentRemoved) == 0 {
		return
	}

	oldByID := make(map[string]bundle.Resident, len(oldResidents))
	for _, r := range oldResidents {
		oldByID[r.ID] = r
	}
	newByID := make(map[string]struct{}, len(newResidents))

	for _, r := range newResidents {
		newByID[r.ID] = struct{}{}
		old, exists := oldByID[r.ID]
		switch {
		case !exists:
			for _, hook := range h.onResidentAdded {
				hook(r.Clone())
			}
		case !reflect.DeepEqual(old, r):
			for _, hook := range h.onResidentUpdated {
				hook(old.Clone(), r.Clone())
			}
		}
	}

	for _, r := range oldResidents {
		if _, exists := newByID[r.ID]; !exists {
			for _, hook := range h.onResidentRemoved {
				hook(r.Clone())
			}
		}
	}
}

// triggerMerge fires hooks for a merge result. A merge keeps every local
// resident at its index and appends new ones, so records are compared by
// position: resident ids may change when a station's record is overlaid.
func (h *hooks) triggerMerge(oldResidents, newResidents []bundle.Resident) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i, r := range newResidents {
		if i >= len(oldResidents) {
			for _, hook := range h.onResidentAdded {
				hook(r.Clone())
			}
			continue
		}
		if !reflect.DeepEqual(oldResidents[i], r) {
			for _, hook := range h.onResidentUpdated {
				hook(oldResidents[i].Clone(), r.Clone())
			}
		}
	}
}
