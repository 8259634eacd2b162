// Package model defines the typed contract a settings domain implements, and the
// type-erasure bridge that exposes any such model through a uniform JSON interface.
package model

import "encoding/json"

// SettingsModel is implemented once per schema version of a settings domain.
//
// T is the settings value type and P the partial value type produced during
// iterative generation. Both must round-trip through JSON. Optional inputs are
// nil pointers (typed values) or nil/`null` json.RawMessage (raw snapshots).
//
// All operations are pure functions of their inputs: each call receives freshly
// deserialized values and nothing is retained between calls.
type SettingsModel[T, P any] interface {
	// Version returns the fixed version tag for this model, e.g. "v1".
	// It must be constant for the lifetime of the type.
	Version() string

	// Set determines the value to persist given the currently stored value
	// (nil if the setting has never been set) and the caller-proposed target.
	//
	// The returned value is what is ultimately stored. Implementations may
	// normalize the target, but should avoid surprising divergence from the
	// caller's intent; any domain-specific normalization should be documented
	// on the implementing type.
	Set(current *T, target T) (T, error)

	// Generate computes a default or derived value. The settings system invokes
	// Generate repeatedly across generation cycles: each call receives the
	// partial state returned by the previous call, plus a snapshot of values
	// generated so far by this setting's declared dependencies (a key→value
	// JSON object, nil if none are declared).
	//
	// Return NeedsData to request another cycle once dependency data becomes
	// available, or Complete to finish. Generate must be idempotent for
	// identical inputs.
	Generate(existingPartial *P, dependentSettings json.RawMessage) (GenerateResult[P, T], error)

	// Validate checks a candidate value, optionally against a snapshot of other
	// already-validated settings (a key→value JSON object, nil if absent).
	//
	// Returning false means the value fails validation; an error is reserved
	// for unexpected faults (e.g. malformed cross-validation input), keeping
	// expected rejection distinguishable from failure.
	Validate(value T, validatedSettings json.RawMessage) (bool, error)
}
