// Package example provides a small two-version settings domain used by the
// example extension binary and as a reference for model authors.
package example

import (
	"encoding/json"
	"fmt"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
)

// ExampleSettingsV1 allows setting a name and favorite number.
type ExampleSettingsV1 struct {
	Name           string `json:"name"`
	FavoriteNumber int64  `json:"favorite_number"`
}

// ModelV1 implements the settings model for version v1.
type ModelV1 struct{}

// Version returns "v1".
func (ModelV1) Version() string {
	return "v1"
}

// Set accepts the target value as-is; no normalization is performed.
func (ModelV1) Set(_ *ExampleSettingsV1, target ExampleSettingsV1) (ExampleSettingsV1, error) {
	return target, nil
}

// Generate completes immediately with the domain default.
func (ModelV1) Generate(_ *ExampleSettingsV1, _ json.RawMessage) (model.GenerateResult[ExampleSettingsV1, ExampleSettingsV1], error) {
	return model.Complete[ExampleSettingsV1](ExampleSettingsV1{}), nil
}

// Validate rejects negative favorite numbers.
func (ModelV1) Validate(value ExampleSettingsV1, _ json.RawMessage) (bool, error) {
	return value.FavoriteNumber >= 0, nil
}

// MigrateForward converts a v1 value to v2 with an empty message of the day.
func (ModelV1) MigrateForward(value ExampleSettingsV1) (ExampleSettingsV2, error) {
	return ExampleSettingsV2{Name: value.Name, FavoriteNumber: value.FavoriteNumber}, nil
}

// MigrateBackward returns the value unchanged; v1 is the start of the chain.
func (ModelV1) MigrateBackward(value ExampleSettingsV1) (ExampleSettingsV1, error) {
	return value, nil
}

// ExampleSettingsV2 extends v1 with a message of the day, generated from the
// "motd" dependency.
type ExampleSettingsV2 struct {
	Name           string `json:"name"`
	FavoriteNumber int64  `json:"favorite_number"`
	Motd           string `json:"motd"`
}

// ModelV2 implements the settings model for version v2.
type ModelV2 struct{}

// Version returns "v2".
func (ModelV2) Version() string {
	return "v2"
}

// Set accepts the target value as-is.
func (ModelV2) Set(_ *ExampleSettingsV2, target ExampleSettingsV2) (ExampleSettingsV2, error) {
	return target, nil
}

// Generate waits for the "motd" dependency: until the dependency snapshot
// carries it, another generation cycle is requested. Identical inputs always
// produce the same result.
func (ModelV2) Generate(_ *ExampleSettingsV2, dependentSettings json.RawMessage) (model.GenerateResult[ExampleSettingsV2, ExampleSettingsV2], error) {
	var none model.GenerateResult[ExampleSettingsV2, ExampleSettingsV2]
	if dependentSettings == nil {
		return model.NeedsData[ExampleSettingsV2, ExampleSettingsV2](nil), nil
	}

	var deps map[string]json.RawMessage
	if err := json.Unmarshal(dependentSettings, &deps); err != nil {
		return none, fmt.Errorf("malformed dependency snapshot: %w", err)
	}

	rawMotd, ok := deps["motd"]
	if !ok {
		return model.NeedsData[ExampleSettingsV2, ExampleSettingsV2](nil), nil
	}
	var motd string
	if err := json.Unmarshal(rawMotd, &motd); err != nil {
		return none, fmt.Errorf("malformed motd dependency: %w", err)
	}

	return model.Complete[ExampleSettingsV2](ExampleSettingsV2{Motd: motd}), nil
}

// Validate rejects negative favorite numbers.
func (ModelV2) Validate(value ExampleSettingsV2, _ json.RawMessage) (bool, error) {
	return value.FavoriteNumber >= 0, nil
}

// MigrateForward returns the value unchanged; v2 is the end of the chain.
func (ModelV2) MigrateForward(value ExampleSettingsV2) (ExampleSettingsV2, error) {
	return value, nil
}

// MigrateBackward converts a v2 value to v1, dropping the message of the day.
func (ModelV2) MigrateBackward(value ExampleSettingsV2) (ExampleSettingsV1, error) {
	return ExampleSettingsV1{Name: value.Name, FavoriteNumber: value.FavoriteNumber}, nil
}

// NewV1Setting returns the erased, linearly migratable v1 model.
func NewV1Setting() model.LinearModel {
	return model.NewLinearSetting[ExampleSettingsV1, ExampleSettingsV1, ExampleSettingsV2, ExampleSettingsV1](ModelV1{})
}

// NewV2Setting returns the erased, linearly migratable v2 model.
func NewV2Setting() model.LinearModel {
	return model.NewLinearSetting[ExampleSettingsV2, ExampleSettingsV2, ExampleSettingsV2, ExampleSettingsV1](ModelV2{})
}
