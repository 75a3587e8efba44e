package store

import (
	"context"
	"sync"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/errors"
)

// Memory is an in-memory Store for tests and dry runs.
type Memory struct {
	mu    sync.RWMutex
	state *bundle.Bundle
	ro    bool
}

var _ Store = (*Memory)(nil)

// NewMemory creates a memory store preloaded with a copy of initial, which
// may be nil.
func NewMemory(initial *bundle.Bundle) *Memory {
	return &Memory{state: initial.Clone()}
}

// NewReadOnly creates a memory store that rejects saves.
func NewReadOnly(initial *bundle.Bundle) *Memory {
	m := NewMemory(initial)
	m.ro = true
	return m
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context) (*bundle.Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == nil {
		return &bundle.Bundle{}, nil
	}
	out := m.state.Clone()
	out.Version, out.Timestamp = "", ""
	return out, nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, b *bundle.Bundle) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.ro {
		return errors.ErrReadOnly
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = b.Clone()
	return nil
}
