// Package sanitizer normalizes registry bundles that cross a trust boundary.
//
// Sanitize accepts any partial bundle, including nil, and returns a fully
// populated copy: every missing required field receives a deterministic
// default and every record carries an identifier. It never fails and never
// touches its input. Identifiers and timestamps are generated only for
// absent fields, so sanitizing sanitized output is a no-op:
//
//	clean := sanitizer.Sanitize(b)
//	again := sanitizer.Sanitize(clean) // equal to clean
package sanitizer

import (
	"time"

	"github.com/agentstation/cadastro/pkg/bundle"
	"github.com/agentstation/cadastro/pkg/constants"
	"github.com/agentstation/cadastro/pkg/identity"
)

// Sanitizer fills absent bundle fields with defaults.
type Sanitizer struct {
	clock identity.Clock
	ids   identity.Generator
}

// New creates a Sanitizer. Without options it uses random UUIDs and the
// system clock.
func New(opts ...Option) (*Sanitizer, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Sanitizer{clock: o.clock, ids: o.ids}, nil
}

var std = &Sanitizer{clock: identity.SystemClock, ids: identity.Default()}

// Sanitize normalizes b with the default identifier generator and clock.
func Sanitize(b *bundle.Bundle) *bundle.Bundle {
	return std.Sanitize(b)
}

// Sanitize returns a normalized deep copy of b.
func (s *Sanitizer) Sanitize(b *bundle.Bundle) *bundle.Bundle {
	out := b.Clone()
	if out == nil {
		out = &bundle.Bundle{}
	}
	now := s.clock()

	if out.Version == "" {
		out.Version = constants.SchemaVersion
	}
	if out.Timestamp == "" {
		out.Timestamp = identity.Timestamp(now)
	}

	out.Institution = s.institution(out.Institution)

	out.Agents = nonNil(out.Agents)
	for i := range out.Agents {
		s.agent(&out.Agents[i])
	}

	out.Residents = nonNil(out.Residents)
	for i := range out.Residents {
		s.resident(&out.Residents[i], now)
	}

	out.Logs = capLogs(out.Logs)

	out.Territories = nonNil(out.Territories)
	for i := range out.Territories {
		s.territory(&out.Territories[i])
	}

	return out
}

func (s *Sanitizer) institution(inst *bundle.Institution) *bundle.Institution {
	if inst == nil {
		return &bundle.Institution{
			Name:       constants.PlaceholderInstitutionName,
			LogoURL:    constants.PlaceholderLogoURL,
			CNPJ:       constants.PlaceholderCNPJ,
			City:       constants.PlaceholderInstitutionCity,
			SystemMode: bundle.ModeServer,
		}
	}
	setDefault(&inst.City, constants.CityNotInformed)
	setDefault(&inst.SystemMode, bundle.ModeServer)
	setDefault(&inst.CNPJ, constants.PlaceholderCNPJ)
	return inst
}

func (s *Sanitizer) agent(a *bundle.Agent) {
	if a.ID == "" {
		a.ID = s.ids.NewID()
	}
	setDefault(&a.Role, bundle.RoleOperator)
	setDefault(&a.Name, constants.AgentName)
	if a.Username == "" {
		a.Username = constants.AgentUsername + s.ids.Suffix(constants.AgentSuffixLen)
	}
}

func (s *Sanitizer) resident(r *bundle.Resident, now time.Time) {
	if r.ID == "" {
		r.ID = s.ids.NewID()
	}
	setDefault(&r.Name, constants.ResidentName)
	setDefault(&r.Relationship, bundle.RelationshipOther)
	setDefault(&r.CPF, constants.ResidentCPF)
	setDefault(&r.Neighborhood, constants.NeighborhoodUnknown)
	setDefault(&r.BirthDate, identity.Date(now))
	if r.Education == nil {
		r.Education = &bundle.Education{}
	}
}

func (s *Sanitizer) territory(t *bundle.Territory) {
	if t.ID == "" {
		t.ID = s.ids.NewID()
	}
	setDefault(&t.Neighborhood, constants.TerritoryNeighborhood)
}

// capLogs keeps the first MaxAuditLogs entries. Logs are stored
// most-recent-first, so the oldest are dropped.
func capLogs(logs []bundle.AuditLog) []bundle.AuditLog {
	if len(logs) > constants.MaxAuditLogs {
		return logs[:constants.MaxAuditLogs:constants.MaxAuditLogs]
	}
	return nonNil(logs)
}

func setDefault[T ~string](field *T, value T) {
	if *field == "" {
		*field = value
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
