package extension

import (
	"fmt"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/migrate"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/version"
)

// Builder assembles a SettingsExtension from heterogeneous erased models.
type Builder struct {
	name     string
	models   []model.Model
	migrator migrate.Migrator
}

// NewBuilder creates a builder for an extension with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// WithModels appends erased models to the extension. Each model's version tag
// must be unique within the extension.
func (b *Builder) WithModels(models ...model.Model) *Builder {
	b.models = append(b.models, models...)
	return b
}

// WithMigrator selects the migration strategy. Defaults to the null migrator,
// which serves single-version extensions only.
func (b *Builder) WithMigrator(m migrate.Migrator) *Builder {
	b.migrator = m
	return b
}

// Build validates the model set and constructs the extension. It fails when
// the name is empty, no models are registered, a model carries a malformed
// version tag, two models share a version tag (ambiguous dispatch), or the
// migrator rejects the model set.
func (b *Builder) Build() (*SettingsExtension, error) {
	if b.name == "" {
		return nil, &ExtensionError{Code: CodeInvalidExtension, Message: "extension name must not be empty"}
	}
	if len(b.models) == 0 {
		return nil, &ExtensionError{Code: CodeInvalidExtension, Message: "extension requires at least one model"}
	}

	models := make(map[string]model.Model, len(b.models))
	for _, m := range b.models {
		tag := m.Version()
		if !version.ValidTag(tag) {
			return nil, &ExtensionError{
				Code:    CodeInvalidExtension,
				Message: fmt.Sprintf("invalid model version tag '%s' in extension '%s'", tag, b.name),
			}
		}
		if _, exists := models[tag]; exists {
			return nil, &ExtensionError{
				Code:    CodeDuplicateVersion,
				Message: fmt.Sprintf("duplicate model version '%s' in extension '%s'", tag, b.name),
			}
		}
		models[tag] = m
	}

	migrator := b.migrator
	if migrator == nil {
		migrator = migrate.NullMigrator{}
	}
	if err := migrator.ValidateExtension(models); err != nil {
		return nil, &ExtensionError{
			Code:    CodeInvalidExtension,
			Message: fmt.Sprintf("migrator rejected extension '%s'", b.name),
			Cause:   err,
		}
	}

	return &SettingsExtension{name: b.name, models: models, migrator: migrator}, nil
}
