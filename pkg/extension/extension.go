// Package extension implements the settings extension core: a named,
// version-keyed collection of erased settings models plus the migrator that
// moves values between their schema versions.
package extension

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/migrate"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/version"
)

const logPrefix = "extension:extension"

// SettingsExtension serves one settings domain. Models are keyed by version
// tag; the extension holds no other state, so every operation works on owned,
// freshly deserialized inputs.
type SettingsExtension struct {
	name     string
	models   map[string]model.Model
	migrator migrate.Migrator
}

// Name returns the extension name (the settings domain, e.g. "kubernetes").
func (e *SettingsExtension) Name() string {
	return e.name
}

// Versions returns the registered version tags in ascending order. Build
// rejects malformed tags, so every tag here parses and the ordering is total
// (version.SortTags only falls back for unparseable tags).
func (e *SettingsExtension) Versions() []string {
	tags := make([]string, 0, len(e.models))
	for tag := range e.models {
		tags = append(tags, tag)
	}
	version.SortTags(tags)
	return tags
}

// model looks up the registered model for a version tag.
func (e *SettingsExtension) model(tag string) (model.Model, error) {
	m, ok := e.models[tag]
	if !ok {
		return nil, &ExtensionError{
			Code:    CodeVersionNotFound,
			Message: fmt.Sprintf("no model registered for version '%s' in extension '%s'", tag, e.name),
		}
	}
	return m, nil
}

// Set invokes the model's set operation for the given version.
func (e *SettingsExtension) Set(tag string, current, target json.RawMessage) (json.RawMessage, error) {
	m, err := e.model(tag)
	if err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("%s - set name=%s version=%s", logPrefix, e.name, tag))
	return m.Set(current, target)
}

// Generate invokes one generation cycle for the given version.
func (e *SettingsExtension) Generate(tag string, existingPartial, dependentSettings json.RawMessage) (model.RawGenerateResult, error) {
	m, err := e.model(tag)
	if err != nil {
		return model.RawGenerateResult{}, err
	}
	slog.Debug(fmt.Sprintf("%s - generate name=%s version=%s", logPrefix, e.name, tag))
	return m.Generate(existingPartial, dependentSettings)
}

// Validate invokes the model's validate operation for the given version.
// A false result means the value fails validation; it is not an error.
func (e *SettingsExtension) Validate(tag string, value, validatedSettings json.RawMessage) (bool, error) {
	m, err := e.model(tag)
	if err != nil {
		return false, err
	}
	slog.Debug(fmt.Sprintf("%s - validate name=%s version=%s", logPrefix, e.name, tag))
	return m.Validate(value, validatedSettings)
}

// Migrate converts a raw value between two registered versions using the
// extension's migrator.
func (e *SettingsExtension) Migrate(value json.RawMessage, from, to string) (json.RawMessage, error) {
	if _, err := e.model(from); err != nil {
		return nil, err
	}
	if _, err := e.model(to); err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("%s - migrate name=%s from=%s to=%s", logPrefix, e.name, from, to))
	migrated, err := e.migrator.Migrate(e.models, value, from, to)
	if err != nil {
		return nil, migrateError(e.name, err)
	}
	return migrated, nil
}

// FloodMigrate converts a raw value from one registered version to every
// registered version, returning results keyed by target version tag. The
// source version maps to the input value unchanged.
func (e *SettingsExtension) FloodMigrate(value json.RawMessage, from string) (map[string]json.RawMessage, error) {
	if _, err := e.model(from); err != nil {
		return nil, err
	}
	slog.Debug(fmt.Sprintf("%s - flood-migrate name=%s from=%s", logPrefix, e.name, from))

	results := make(map[string]json.RawMessage, len(e.models))
	for _, tag := range e.Versions() {
		migrated, err := e.migrator.Migrate(e.models, value, from, tag)
		if err != nil {
			return nil, migrateError(e.name, err)
		}
		results[tag] = migrated
	}
	return results, nil
}

// migrateError wraps migrator failures, keeping structured model errors
// (parse, serialize) reachable through the unwrap chain.
func migrateError(name string, err error) error {
	var settingErr *model.SettingError
	if errors.As(err, &settingErr) {
		return err
	}
	return &ExtensionError{
		Code:    CodeMigrateFailed,
		Message: fmt.Sprintf("migration failed in extension '%s'", name),
		Cause:   err,
	}
}
