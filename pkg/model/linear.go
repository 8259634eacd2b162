package model

import "encoding/json"

// LinearlyMigrateable is implemented by settings models that take part in a
// linear migration chain: each version can convert its value to the adjacent
// newer version (F) and the adjacent older version (B).
//
// Models at either end of the chain migrate to themselves: use the model's own
// value type for F or B and return the input unchanged.
type LinearlyMigrateable[T, P, F, B any] interface {
	SettingsModel[T, P]

	// MigrateForward converts a value of this version to the next newer version.
	MigrateForward(value T) (F, error)

	// MigrateBackward converts a value of this version to the next older version.
	MigrateBackward(value T) (B, error)
}

// LinearModel is the erased form of a linearly migrateable model.
type LinearModel interface {
	Model

	// MigrateForward parses a raw value of this version and converts it to the
	// next newer version's raw form.
	MigrateForward(value json.RawMessage) (json.RawMessage, error)

	// MigrateBackward parses a raw value of this version and converts it to the
	// next older version's raw form.
	MigrateBackward(value json.RawMessage) (json.RawMessage, error)
}

// NewLinearSetting wraps a linearly migrateable model in its erased form for
// registration with an extension using the linear migrator.
func NewLinearSetting[T, P, F, B any](m LinearlyMigrateable[T, P, F, B]) LinearModel {
	return erasedLinear[T, P, F, B]{erased[T, P]{inner: m}, m}
}

type erasedLinear[T, P, F, B any] struct {
	erased[T, P]
	inner LinearlyMigrateable[T, P, F, B]
}

func (e erasedLinear[T, P, F, B]) MigrateForward(value json.RawMessage) (json.RawMessage, error) {
	var parsed T
	if err := json.Unmarshal(value, &parsed); err != nil {
		return nil, &SettingError{Kind: KindParseSetting, Version: e.Version(), Cause: err}
	}
	migrated, err := e.inner.MigrateForward(parsed)
	if err != nil {
		return nil, &SettingError{Kind: KindMigrateSetting, Version: e.Version(), Cause: err}
	}
	data, err := json.Marshal(migrated)
	if err != nil {
		return nil, &SettingError{Kind: KindSerializeResult, Version: e.Version(), Operation: "migrate-forward", Cause: err}
	}
	return data, nil
}

func (e erasedLinear[T, P, F, B]) MigrateBackward(value json.RawMessage) (json.RawMessage, error) {
	var parsed T
	if err := json.Unmarshal(value, &parsed); err != nil {
		return nil, &SettingError{Kind: KindParseSetting, Version: e.Version(), Cause: err}
	}
	migrated, err := e.inner.MigrateBackward(parsed)
	if err != nil {
		return nil, &SettingError{Kind: KindMigrateSetting, Version: e.Version(), Cause: err}
	}
	data, err := json.Marshal(migrated)
	if err != nil {
		return nil, &SettingError{Kind: KindSerializeResult, Version: e.Version(), Operation: "migrate-backward", Cause: err}
	}
	return data, nil
}
