// Package password implements the local password policy shared by the
// registration and password-reset flows.
package password

import (
	"strings"
	"unicode"
)

// Symbols is the punctuation set accepted by the symbol rule.
const Symbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// Result reports the outcome of a policy check. When Valid is false,
// Message names the first rule that failed; the rule order is fixed, so
// the message for a given password is deterministic.
type Result struct {
	Valid   bool
	Message string
}

type rule struct {
	ok      func(string) bool
	message string
}

// Rules are evaluated in order; the first failure wins. The order and the
// literal messages are part of the contract with the UI.
var rules = []rule{
	{func(p string) bool { return len(p) >= 8 }, "Password must be at least 8 characters long"},
	{hasUpper, "Password must contain at least one uppercase letter"},
	{hasLower, "Password must contain at least one lowercase letter"},
	{hasDigit, "Password must contain at least one number"},
	{hasSymbol, "Password must contain at least one special character"},
}

// Validate checks p against all five policy rules.
func Validate(p string) Result {
	for _, r := range rules {
		if !r.ok(p) {
			return Result{Valid: false, Message: r.message}
		}
	}
	return Result{Valid: true, Message: "Password is strong"}
}

func hasUpper(p string) bool {
	return strings.ContainsFunc(p, unicode.IsUpper)
}

func hasLower(p string) bool {
	return strings.ContainsFunc(p, unicode.IsLower)
}

func hasDigit(p string) bool {
	return strings.ContainsFunc(p, unicode.IsDigit)
}

func hasSymbol(p string) bool {
	return strings.ContainsAny(p, Symbols)
}
