package patterns

import "github.com/insurelens/policy-parser/constants"

// Base definitions cover the labeling most issuers share. Issuer overrides in
// issuers.go replace whole definitions for documents that deviate.

const (
	amountToken   = `([\d,]+(?:\.\d+)?)`
	codeToken     = `([A-Za-z0-9][A-Za-z0-9/\-]{3,})`
	durationToken = `(\d{1,3})`
	textToken     = `([A-Za-z][A-Za-z .&'\-]+)`
)

func baseDefinitions() []FieldDefinition {
	return []FieldDefinition{
		{
			Key:      constants.FieldPolicyNumber,
			Kind:     constants.KindAlphanumericCode,
			Keywords: []string{"policy number", "policy no"},
			Patterns: []StrictPattern{
				{Label: `policy\s*(?:number|no\.?)`, Value: codeToken},
			},
		},
		{
			Key:      constants.FieldCustomerID,
			Kind:     constants.KindAlphanumericCode,
			Keywords: []string{"customer id", "client id", "customer number"},
			Patterns: []StrictPattern{
				{Label: `(?:customer|client)\s*(?:id|no\.?|number)`, Value: codeToken},
			},
		},
		{
			Key:      constants.FieldInsurerName,
			Kind:     constants.KindFreeText,
			Keywords: []string{"insurer", "insurance company", "issued by"},
			Patterns: []StrictPattern{
				{Label: `(?:insurer|insurance\s+company|issued\s+by)`, Value: textToken},
			},
		},
		{
			Key:      constants.FieldPremiumAmount,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"premium amount", "net premium", "basic premium", "installment premium"},
			Patterns: []StrictPattern{
				{Label: `(?:net|basic|installment)\s+premium`, Value: amountToken},
				{Label: `premium\s+amount`, Value: amountToken},
			},
		},
		{
			Key:      constants.FieldTaxAmount,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"gst", "service tax", "tax amount"},
			Patterns: []StrictPattern{
				{Label: `(?:gst|service\s+tax|tax)(?:\s+amount)?`, Value: amountToken},
			},
		},
		{
			Key:         constants.FieldTotalPremium,
			Kind:        constants.KindNumericCurrency,
			FinalAmount: true,
			Keywords:    []string{"total premium", "premium payable", "total amount payable"},
			Patterns: []StrictPattern{
				{Label: `total\s+premium`, Value: amountToken},
				{Label: `(?:total\s+amount|premium)\s+payable`, Value: amountToken},
			},
		},
		{
			Key:      constants.FieldSumAssured,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"sum assured", "sum insured", "basic sum assured"},
			Patterns: []StrictPattern{
				{Label: `(?:basic\s+)?sum\s+(?:assured|insured)`, Value: amountToken},
			},
		},
		{
			Key:      constants.FieldPolicyTerm,
			Kind:     constants.KindIntegerDuration,
			Keywords: []string{"policy term", "term of policy", "policy period"},
			Patterns: []StrictPattern{
				{Label: `policy\s+(?:term|period)`, Value: durationToken},
				{Label: `term\s+of\s+policy`, Value: durationToken},
			},
		},
		{
			Key:      constants.FieldPremiumFrequency,
			Kind:     constants.KindEnumeratedToken,
			Enum:     constants.FrequencyTokens,
			Keywords: []string{"premium frequency", "mode of payment", "payment frequency"},
			Patterns: []StrictPattern{
				{Label: `(?:premium|payment)\s+frequency`, Value: `([A-Za-z\-]+)`},
				{Label: `mode\s+of\s+payment`, Value: `([A-Za-z\-]+)`},
			},
		},
		{
			Key:      constants.FieldMaturityValue,
			Kind:     constants.KindNumericCurrency,
			Keywords: []string{"maturity value", "maturity amount", "maturity benefit"},
			Patterns: []StrictPattern{
				{Label: `maturity\s+(?:value|amount|benefit)`, Value: amountToken},
			},
		},
	}
}
