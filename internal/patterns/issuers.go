package patterns

import "github.com/insurelens/policy-parser/constants"

// Built-in issuer overrides. An override replaces the whole base definition
// for its key; untouched keys inherit the base definition.

func builtinOverrides() map[string][]FieldDefinition {
	return map[string][]FieldDefinition{
		"hdfc": hdfcOverrides(),
		"lic":  licOverrides(),
	}
}

// HDFC Life schedules label the policy as "Policy No." with a slash-separated
// client code, and itemize premium as "Annualised Premium".
func hdfcOverrides() []FieldDefinition {
	return []FieldDefinition{
		{
			Key:      constants.FieldPolicyNumber,
			Kind:     constants.KindAlphanumericCode,
			Keywords: []string{"policy no", "policy number"},
			Patterns: []StrictPattern{
				{Label: `policy\s*no\.?`, Value: `(\d{8,})`},
			},
		},
		{
			Key:      constants.FieldCustomerID,
			Kind:     constants.KindAlphanumericCode,
			Keywords: []string{"client id", "customer no"},
			Patterns: []StrictPattern{
				{Label: `client\s*id`, Value: codeToken},
			},
		},
		{
			Key:      constants.FieldPremiumAmount,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"annualised premium", "annualized premium", "installment premium"},
			Patterns: []StrictPattern{
				{Label: `annuali[sz]ed\s+premium`, Value: amountToken},
				{Label: `installment\s+premium`, Value: amountToken},
			},
		},
		{
			Key:         constants.FieldTotalPremium,
			Kind:        constants.KindNumericCurrency,
			FinalAmount: true,
			Keywords:    []string{"total premium payable", "total premium"},
			Patterns: []StrictPattern{
				{Label: `total\s+premium(?:\s+payable)?`, Value: amountToken},
			},
		},
	}
}

// LIC documents use "Policy No" with a purely numeric identifier, "Instalment
// Premium" spelling, and "Date of Maturity" style benefit labels.
func licOverrides() []FieldDefinition {
	return []FieldDefinition{
		{
			Key:      constants.FieldPolicyNumber,
			Kind:     constants.KindAlphanumericCode,
			Keywords: []string{"policy no", "policy number"},
			Patterns: []StrictPattern{
				{Label: `policy\s*no\.?`, Value: `(\d{9})`},
			},
		},
		{
			Key:      constants.FieldPremiumAmount,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"instalment premium", "premium amount"},
			Patterns: []StrictPattern{
				{Label: `instalment\s+premium`, Value: amountToken},
				{Label: `premium`, Value: amountToken},
			},
		},
		{
			Key:      constants.FieldPremiumFrequency,
			Kind:     constants.KindEnumeratedToken,
			Enum:     constants.FrequencyTokens,
			Keywords: []string{"mode of payment", "premium payment mode"},
			Patterns: []StrictPattern{
				{Label: `(?:premium\s+payment\s+)?mode(?:\s+of\s+payment)?`, Value: `([A-Za-z\-]+)`},
			},
		},
		{
			Key:      constants.FieldMaturityValue,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"maturity benefit", "sum payable on maturity"},
			Patterns: []StrictPattern{
				{Label: `(?:maturity\s+benefit|sum\s+payable\s+on\s+maturity)`, Value: amountToken},
			},
		},
	}
}
