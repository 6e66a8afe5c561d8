package esbconfig

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Validator checks the value of a single configuration key.
type Validator func(value string) error

// ValidationError aggregates every problem found in a candidate configuration.
type ValidationError struct {
	InvalidKeys   []string
	InvalidValues map[string]string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if len(e.InvalidKeys) > 0 {
		b.WriteString("invalid keys: ")
		b.WriteString(strings.Join(e.InvalidKeys, ", "))
		if len(e.InvalidValues) > 0 {
			b.WriteString("; ")
		}
	}
	parts := make([]string, 0, len(e.InvalidValues))
	for _, key := range slices.Sorted(maps.Keys(e.InvalidValues)) {
		parts = append(parts, fmt.Sprintf("invalid value for key %q: %s", key, e.InvalidValues[key]))
	}
	b.WriteString(strings.Join(parts, "; "))
	return b.String()
}

func acceptAny(string) error { return nil }

// DefaultValidators returns the validator of every known key. Every value is
// accepted today; the table is where a stricter check would go.
func DefaultValidators() map[string]Validator {
	return map[string]Validator{
		KeyProtocol:            acceptAny,
		KeyHost:                acceptAny,
		KeyTiampPort:           acceptAny,
		KeyTiampPath:           acceptAny,
		KeyProjectURLTemplate:  acceptAny,
		KeyEmployeeURLTemplate: acceptAny,
		KeyClientID:            acceptAny,
		KeyClientSecret:        acceptAny,
		KeyHTTPProxy:           acceptAny,
		KeyHTTPSProxy:          acceptAny,
	}
}

// Checker validates candidate configurations against the known key set.
type Checker struct {
	validators map[string]Validator
}

// NewChecker builds a Checker. Known keys missing from validators accept any
// value; entries for unknown keys are ignored.
func NewChecker(validators map[string]Validator) *Checker {
	table := make(map[string]Validator, len(defaults))
	for key := range defaults {
		table[key] = acceptAny
		if v, ok := validators[key]; ok && v != nil {
			table[key] = v
		}
	}
	return &Checker{validators: table}
}

// Check returns a *ValidationError listing unknown keys and rejected values,
// or nil when the configuration is acceptable. A nil map is valid.
func (c *Checker) Check(configuration map[string]string) error {
	var invalidKeys []string
	invalidValues := make(map[string]string)

	for key, value := range configuration {
		validate, ok := c.validators[key]
		if !ok {
			invalidKeys = append(invalidKeys, key)
			continue
		}
		if err := validate(value); err != nil {
			invalidValues[key] = err.Error()
		}
	}

	if len(invalidKeys) == 0 && len(invalidValues) == 0 {
		return nil
	}

	slices.Sort(invalidKeys)
	return &ValidationError{
		InvalidKeys:   invalidKeys,
		InvalidValues: invalidValues,
	}
}

var defaultChecker = NewChecker(DefaultValidators())

// CheckConfiguration validates configuration with the default validators.
func CheckConfiguration(configuration map[string]string) error {
	return defaultChecker.Check(configuration)
}
