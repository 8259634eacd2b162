package model

import (
	"encoding/json"
	"fmt"
)

// Error kinds reported when interacting with a settings model across the
// type-erasure boundary. Every kind carries the version tag of the model that
// produced it.
const (
	// KindDeserializeInput: a caller-supplied JSON value could not be parsed
	// into the model's native type. Carries the offending value.
	KindDeserializeInput = "DeserializeInput"
	// KindParseSetting: a stored or intermediate value could not be parsed back
	// into the native type.
	KindParseSetting = "ParseSetting"
	// KindGenerateSetting: the domain's Generate returned an error.
	KindGenerateSetting = "GenerateSetting"
	// KindSetSetting: the domain's Set returned an error.
	KindSetSetting = "SetSetting"
	// KindValidateSetting: the domain's Validate returned an error. A false
	// validation result is not an error and is never reported with this kind.
	KindValidateSetting = "ValidateSetting"
	// KindMigrateSetting: a migration hook on the model returned an error.
	KindMigrateSetting = "MigrateSetting"
	// KindSerializeResult: the model's typed output could not be serialized
	// back to JSON. Carries the name of the operation that produced it.
	KindSerializeResult = "SerializeResult"
)

// SettingError is the structured error returned by erased model operations.
//
// Domain errors crossing the erasure boundary keep their cause chain but lose
// their concrete type; callers distinguish failures by Kind.
type SettingError struct {
	// Kind is one of the Kind* constants above.
	Kind string
	// Version is the version tag of the model that produced the error.
	Version string
	// Operation is the operation whose result failed to serialize; set only
	// for KindSerializeResult.
	Operation string
	// InputType names which input failed to deserialize (e.g. "target value");
	// set only for KindDeserializeInput.
	InputType string
	// Input is the offending raw value; set only for KindDeserializeInput.
	Input json.RawMessage
	// Cause is the underlying error: a JSON codec error for (de)serialization
	// kinds, an opaque domain error otherwise.
	Cause error
}

func (e *SettingError) Error() string {
	switch e.Kind {
	case KindDeserializeInput:
		return fmt.Sprintf(
			"failed to deserialize %s input as settings value version '%s': %v\nValue: %s",
			e.InputType, e.Version, e.Cause, string(e.Input))
	case KindParseSetting:
		return fmt.Sprintf("failed to parse setting value (version '%s') from JSON: %v", e.Version, e.Cause)
	case KindGenerateSetting:
		return fmt.Sprintf("failed to run 'generate' on setting version '%s': %v", e.Version, e.Cause)
	case KindSetSetting:
		return fmt.Sprintf("failed to run 'set' on setting version '%s': %v", e.Version, e.Cause)
	case KindValidateSetting:
		return fmt.Sprintf("failed to run 'validate' on setting version '%s': %v", e.Version, e.Cause)
	case KindMigrateSetting:
		return fmt.Sprintf("failed to migrate setting version '%s': %v", e.Version, e.Cause)
	case KindSerializeResult:
		return fmt.Sprintf("failed to serialize setting (version '%s') '%s' result: %v", e.Version, e.Operation, e.Cause)
	default:
		return fmt.Sprintf("settings model error (version '%s'): %v", e.Version, e.Cause)
	}
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *SettingError) Unwrap() error {
	return e.Cause
}
