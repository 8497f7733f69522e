package patterns

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/insurelens/policy-parser/internal/common"
)

// Store resolves the effective field-definition set for an issuer. It is
// built once at startup and read-only afterwards, so concurrent resolves
// need no locking.
type Store struct {
	base      *FieldDefinitionSet
	overrides map[string]map[string]FieldDefinition
	logger    *slog.Logger
}

// NewStore builds a Store from the built-in base set and issuer overrides.
// A malformed definition is a configuration defect and fails construction;
// per-document evaluation never errors.
func NewStore(logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	base, err := newSet("", baseDefinitions())
	if err != nil {
		return nil, common.NewAppError("PATTERN_CONFIG", "invalid base definitions", err)
	}
	s := &Store{
		base:      base,
		overrides: make(map[string]map[string]FieldDefinition),
		logger:    logger,
	}
	for issuer, defs := range builtinOverrides() {
		if err := s.addOverrides(issuer, defs); err != nil {
			return nil, common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("invalid overrides for issuer %q", issuer), err)
		}
	}
	logger.Debug("pattern store ready", "fields", base.Len(), "issuers", len(s.overrides))
	return s, nil
}

func (s *Store) addOverrides(issuerID string, defs []FieldDefinition) error {
	issuerID = strings.ToLower(strings.TrimSpace(issuerID))
	if issuerID == "" {
		return fmt.Errorf("empty issuer id")
	}
	byKey := make(map[string]FieldDefinition, len(defs))
	for i := range defs {
		d := defs[i]
		if err := d.validate(); err != nil {
			return err
		}
		if _, ok := s.base.defs[d.Key]; !ok {
			return fmt.Errorf("override for unknown field key %q", d.Key)
		}
		if _, dup := byKey[d.Key]; dup {
			return fmt.Errorf("duplicate override for field key %q", d.Key)
		}
		byKey[d.Key] = d
	}
	s.overrides[issuerID] = byKey
	return nil
}

// Issuers returns the issuer ids with built-in or loaded overrides.
func (s *Store) Issuers() []string {
	out := make([]string, 0, len(s.overrides))
	for id := range s.overrides {
		out = append(out, id)
	}
	return out
}

// Resolve returns the effective definition set for an issuer. Unknown issuers
// get the base set unchanged; Resolve never fails. An override replaces the
// whole definition for its key, untouched keys inherit the base definition.
func (s *Store) Resolve(issuerID string) *FieldDefinitionSet {
	issuerID = strings.ToLower(strings.TrimSpace(issuerID))
	over, ok := s.overrides[issuerID]
	if !ok {
		if issuerID != "" && issuerID != "base" {
			s.logger.Debug("unknown issuer, using base definitions", "issuer_id", issuerID)
		}
		return s.base
	}
	defs := make(map[string]FieldDefinition, len(s.base.defs))
	for k, d := range s.base.defs {
		if od, hit := over[k]; hit {
			defs[k] = od
		} else {
			defs[k] = d
		}
	}
	return &FieldDefinitionSet{issuerID: issuerID, keys: s.base.Keys(), defs: defs}
}

func newSet(issuerID string, defs []FieldDefinition) (*FieldDefinitionSet, error) {
	set := &FieldDefinitionSet{
		issuerID: issuerID,
		keys:     make([]string, 0, len(defs)),
		defs:     make(map[string]FieldDefinition, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, dup := set.defs[d.Key]; dup {
			return nil, fmt.Errorf("duplicate field key %q", d.Key)
		}
		set.keys = append(set.keys, d.Key)
		set.defs[d.Key] = d
	}
	return set, nil
}
