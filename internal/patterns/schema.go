package patterns

// BuildOverrideJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Issuer override files are validated against it before any
// definition is compiled, so config defects fail fast with a useful message.
func BuildOverrideJSONSchema() map[string]any {
	pattern := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"label": map[string]any{"type": "string", "minLength": 1},
			"value": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"label", "value"},
	}
	definition := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"key": map[string]any{"type": "string", "minLength": 1},
			"kind": map[string]any{
				"type": "string",
				"enum": []string{
					"numeric-currency", "integer-duration", "alphanumeric-code",
					"enumerated-token", "free-text",
				},
			},
			"keywords": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"patterns": map[string]any{
				"type":  "array",
				"items": pattern,
			},
			"enum": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
			"final_amount": map[string]any{"type": "boolean"},
		},
		"required": []string{"key", "kind"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"issuer_id": map[string]any{"type": "string", "minLength": 1},
			"fields": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    definition,
			},
		},
		"required": []string{"issuer_id", "fields"},
	}
}
