// Package verify implements the public identity-verification lookups: a
// credential matcher that resolves an arbitrary identifier string (card
// number, transaction reference, email, phone, aadhar) against a single
// entity type, and a unified lookup that merges results across all three
// public entity types.
package verify

import (
	"regexp"
	"strings"
)

// Condition is one SQL predicate of an OR'd identifier query.
type Condition struct {
	Expr string
	Args []any
}

// Fields per entity type. Exact fields are compared case-insensitively as
// whole strings; digit fields additionally match on digit sequence alone,
// ignoring interspersed punctuation and spacing.
var (
	playerExactFields = []string{"id_no", "transaction_id", "email", "phone", "aadhar_number"}
	playerDigitFields = []string{"phone", "aadhar_number"}

	officialExactFields = []string{"transaction_id", "email", "mobile", "aadhar_number"}
	officialDigitFields = []string{"mobile", "aadhar_number"}

	institutionExactFields = []string{"reg_no", "transaction_id", "email", "office_phone", "alt_phone"}
	institutionDigitFields = []string{"office_phone", "alt_phone"}
)

// Conditions builds the OR'd predicates for one identifier against the given
// field sets. Returns nil when the identifier is blank.
func Conditions(identifier string, exactFields, digitFields []string) []Condition {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	conds := make([]Condition, 0, len(exactFields)+len(digitFields))
	lowered := strings.ToLower(trimmed)
	for _, field := range exactFields {
		conds = append(conds, Condition{Expr: "LOWER(" + field + ") = ?", Args: []any{lowered}})
	}

	if pattern := DigitPattern(trimmed); pattern != "" {
		for _, field := range digitFields {
			conds = append(conds, Condition{Expr: field + " ~ ?", Args: []any{pattern}})
		}
	}

	return conds
}

// DigitPattern builds an anchored regular expression that matches a stored
// value whose digit sequence equals the query's, regardless of formatting
// characters between digits. Returns "" when the query holds no digits, so
// the digit strategy contributes nothing. The pattern requires the full
// digit sequence: no suffix or prefix partial matching.
func DigitPattern(value string) string {
	var digits []string
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits = append(digits, string(r))
		}
	}
	if len(digits) == 0 {
		return ""
	}
	return `^\D*` + strings.Join(digits, `\D*`) + `\D*$`
}

// RegistrationSuffix extracts the 4-character code from an official
// registration number of the form PREFIX-XXXX. Returns "" when the
// identifier is not in that form. The comparison is case-insensitive and the
// returned suffix is uppercased.
func RegistrationSuffix(prefix, identifier string) string {
	re := regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(prefix) + `-([A-Z0-9]{4})$`)
	match := re.FindStringSubmatch(strings.TrimSpace(identifier))
	if match == nil {
		return ""
	}
	return strings.ToUpper(match[1])
}

// registrationSuffixCondition matches records whose internal id ends with the
// derived 4-character code. The public registration code is derived from the
// record id, so lookup has to reverse that derivation.
func registrationSuffixCondition(suffix string) Condition {
	return Condition{Expr: "UPPER(RIGHT(id::text, 4)) = ?", Args: []any{strings.ToUpper(suffix)}}
}
