// Package migrate defines the migrator collaborator that moves setting values
// between registered schema versions. A migrator is selected when an extension
// is built and validates the model set it is asked to serve.
package migrate

import (
	"encoding/json"
	"fmt"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
)

// Migrator converts raw setting values between the schema versions registered
// with one extension.
type Migrator interface {
	// ValidateExtension checks that the registered models (keyed by version
	// tag) are compatible with this migration strategy. It is invoked once,
	// when the extension is built.
	ValidateExtension(models map[string]model.Model) error

	// Migrate converts a raw value from one registered version to another.
	// Both versions are guaranteed by the caller to be registered.
	Migrate(models map[string]model.Model, value json.RawMessage, from, to string) (json.RawMessage, error)
}

const nullLogPrefix = "migrate:null"

// NullMigrator serves extensions with exactly one model version. It refuses
// any cross-version migration.
type NullMigrator struct{}

// ValidateExtension requires exactly one registered model.
func (NullMigrator) ValidateExtension(models map[string]model.Model) error {
	if len(models) != 1 {
		return fmt.Errorf("%s - null migrator requires exactly one model, got %d", nullLogPrefix, len(models))
	}
	return nil
}

// Migrate returns the value unchanged when from == to and fails otherwise.
func (NullMigrator) Migrate(_ map[string]model.Model, value json.RawMessage, from, to string) (json.RawMessage, error) {
	if from != to {
		return nil, fmt.Errorf("%s - no migration from version '%s' to version '%s'", nullLogPrefix, from, to)
	}
	return value, nil
}
