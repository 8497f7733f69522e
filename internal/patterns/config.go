package patterns

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/insurelens/policy-parser/internal/common"
)

// overrideFile is the on-disk shape of one issuer's override config.
type overrideFile struct {
	IssuerID string            `json:"issuer_id"`
	Fields   []FieldDefinition `json:"fields"`
}

// LoadOverrideFile registers issuer overrides from a JSON file. The file is
// validated against the override schema first; a schema violation or an
// uncompilable pattern is a construction-time failure.
func (s *Store) LoadOverrideFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("read override file %s", path), err)
	}
	if err := validateAgainstSchema(BuildOverrideJSONSchema(), raw); err != nil {
		return common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("override file %s rejected by schema", path), err)
	}
	var of overrideFile
	if err := json.Unmarshal(raw, &of); err != nil {
		return common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("decode override file %s", path), err)
	}
	if err := s.addOverrides(of.IssuerID, of.Fields); err != nil {
		return common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("override file %s", path), err)
	}
	s.logger.Info("issuer overrides loaded", "issuer_id", of.IssuerID, "fields", len(of.Fields), "path", path)
	return nil
}

// LoadOverrideDir registers overrides from every *.json file in dir.
// A missing directory is fine; a malformed file is not.
func (s *Store) LoadOverrideDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return common.NewAppError("PATTERN_CONFIG", fmt.Sprintf("read override dir %s", dir), err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := s.LoadOverrideFile(filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
