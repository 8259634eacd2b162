package model

import (
	"encoding/json"
	"errors"
)

// Model is the type-erased form of a SettingsModel: every operation takes and
// returns raw JSON values, so differently-typed models can be collected and
// dispatched through one interface keyed only by version tag.
//
// The bridge never inspects payload contents beyond what (de)serialization
// requires; all domain semantics stay inside the wrapped model.
type Model interface {
	// Version returns the version tag of the wrapped model.
	Version() string

	// Set deserializes current (optional) and target, invokes the typed Set,
	// and serializes the value to persist.
	Set(current, target json.RawMessage) (json.RawMessage, error)

	// Generate deserializes the optional existing partial, invokes the typed
	// Generate with the raw dependency snapshot, and serializes the result.
	Generate(existingPartial, dependentSettings json.RawMessage) (RawGenerateResult, error)

	// Validate deserializes the candidate value and invokes the typed Validate
	// with the raw snapshot of already-validated settings.
	Validate(value, validatedSettings json.RawMessage) (bool, error)
}

// NewSetting wraps a typed settings model in its erased form for registration
// with a settings extension. The wrapper holds no state beyond the model value
// itself; it is purely a type-safety-to-dynamic-dispatch adapter.
func NewSetting[T, P any](m SettingsModel[T, P]) Model {
	return erased[T, P]{inner: m}
}

type erased[T, P any] struct {
	inner SettingsModel[T, P]
}

func (e erased[T, P]) Version() string {
	return e.inner.Version()
}

func (e erased[T, P]) Set(current, target json.RawMessage) (json.RawMessage, error) {
	var currentValue *T
	if !isJSONNull(current) {
		var parsed T
		if err := json.Unmarshal(current, &parsed); err != nil {
			return nil, e.deserializeError("current value", current, err)
		}
		currentValue = &parsed
	}

	// Go unmarshals the JSON literal null into a struct as the zero value, so
	// an absent target must be rejected here or it would silently persist
	// domain defaults.
	if isJSONNull(target) {
		return nil, e.deserializeError("target value", target, errors.New("value must not be null"))
	}
	var targetValue T
	if err := json.Unmarshal(target, &targetValue); err != nil {
		return nil, e.deserializeError("target value", target, err)
	}

	result, err := e.inner.Set(currentValue, targetValue)
	if err != nil {
		return nil, &SettingError{Kind: KindSetSetting, Version: e.Version(), Cause: err}
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, &SettingError{Kind: KindSerializeResult, Version: e.Version(), Operation: "set", Cause: err}
	}
	return data, nil
}

func (e erased[T, P]) Generate(existingPartial, dependentSettings json.RawMessage) (RawGenerateResult, error) {
	var partial *P
	if !isJSONNull(existingPartial) {
		var parsed P
		if err := json.Unmarshal(existingPartial, &parsed); err != nil {
			return RawGenerateResult{}, e.deserializeError("existing partial", existingPartial, err)
		}
		partial = &parsed
	}

	if isJSONNull(dependentSettings) {
		dependentSettings = nil
	}

	result, err := e.inner.Generate(partial, dependentSettings)
	if err != nil {
		return RawGenerateResult{}, &SettingError{Kind: KindGenerateSetting, Version: e.Version(), Cause: err}
	}

	serialized, err := result.Serialize()
	if err != nil {
		return RawGenerateResult{}, &SettingError{Kind: KindSerializeResult, Version: e.Version(), Operation: "generate", Cause: err}
	}
	return serialized, nil
}

func (e erased[T, P]) Validate(value, validatedSettings json.RawMessage) (bool, error) {
	// Same null guard as Set: unmarshaling null would validate the zero value.
	if isJSONNull(value) {
		return false, e.deserializeError("validate", value, errors.New("value must not be null"))
	}
	var parsed T
	if err := json.Unmarshal(value, &parsed); err != nil {
		return false, e.deserializeError("validate", value, err)
	}

	if isJSONNull(validatedSettings) {
		validatedSettings = nil
	}

	ok, err := e.inner.Validate(parsed, validatedSettings)
	if err != nil {
		return false, &SettingError{Kind: KindValidateSetting, Version: e.Version(), Cause: err}
	}
	return ok, nil
}

func (e erased[T, P]) deserializeError(inputType string, input json.RawMessage, cause error) *SettingError {
	// Copy the offending input so the error does not alias caller-owned bytes.
	offending := make(json.RawMessage, len(input))
	copy(offending, input)
	return &SettingError{
		Kind:      KindDeserializeInput,
		Version:   e.Version(),
		InputType: inputType,
		Input:     offending,
		Cause:     cause,
	}
}
