// Package store persists the registry state of one device.
//
// State is kept as one JSON document per collection (institution, agents,
// residents, logs, territories, config) inside a data directory. A missing
// document loads as absent, so a fresh directory yields an empty bundle
// that the sanitizer then completes.
package store

import (
	"context"

	"github.com/agentstation/cadastro/pkg/bundle"
)

// Key names one persisted collection.
type Key string

// Persisted collections.
const (
	KeyInstitution Key = "institution"
	KeyAgents      Key = "agents"
	KeyResidents   Key = "residents"
	KeyLogs        Key = "logs"
	KeyTerritories Key = "territories"
	KeyConfig      Key = "config"
)

// Keys lists every persisted collection in load order.
var Keys = []Key{KeyInstitution, KeyAgents, KeyResidents, KeyLogs, KeyTerritories, KeyConfig}

// Store loads and saves registry state.
type Store interface {
	// Load reads the persisted state. Collections never saved are absent.
	Load(ctx context.Context) (*bundle.Bundle, error)

	// Save replaces the persisted state with b. Version and timestamp are
	// bundle envelope fields and are not stored.
	Save(ctx context.Context, b *bundle.Bundle) error
}

// value returns the collection of b stored under k.
func value(b *bundle.Bundle, k Key) any {
	switch k {
	case KeyInstitution:
		return b.Institution
	case KeyAgents:
		return b.Agents
	case KeyResidents:
		return b.Residents
	case KeyLogs:
		return b.Logs
	case KeyTerritories:
		return b.Territories
	case KeyConfig:
		return b.Config
	}
	return nil
}
