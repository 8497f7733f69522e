package constants

// Method is the canonical tag for how a field value was obtained.
type Method string

// Stable values (these exact strings appear in reports and in the DB).
const (
	MethodStrict      Method = "strict"      // anchored label/value pattern hit
	MethodApproximate Method = "approximate" // similarity-located label, scanned value
	MethodNone        Method = "none"        // field not found in the document
)

// ValueKind classifies what a field's value must look like.
type ValueKind string

const (
	KindNumericCurrency  ValueKind = "numeric-currency"
	KindIntegerDuration  ValueKind = "integer-duration"
	KindAlphanumericCode ValueKind = "alphanumeric-code"
	KindEnumeratedToken  ValueKind = "enumerated-token"
	KindFreeText         ValueKind = "free-text"
)

// Field keys of the base definition set. Every resolved set contains all of
// these; issuer overrides may replace a definition but never remove one.
const (
	FieldPolicyNumber     = "policy_number"
	FieldCustomerID       = "customer_id"
	FieldInsurerName      = "insurer_name"
	FieldPremiumAmount    = "premium_amount"
	FieldTaxAmount        = "tax_amount"
	FieldTotalPremium     = "total_premium"
	FieldSumAssured       = "sum_assured"
	FieldPolicyTerm       = "policy_term"
	FieldPremiumFrequency = "premium_frequency"
	FieldMaturityValue    = "maturity_value"
)

// FrequencyTokens is the allowed vocabulary for premium_frequency.
var FrequencyTokens = []string{"yearly", "half-yearly", "quarterly", "monthly", "single"}
