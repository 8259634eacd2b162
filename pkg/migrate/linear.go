package migrate

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/model"
	"github.com/cartermckinnon/bottlerocket-settings-sdk/pkg/version"
)

const linearLogPrefix = "migrate:linear"

// LinearMigrator orders registered version tags into a single chain and
// migrates values stepwise through adjacent versions. Every registered model
// must be created with model.NewLinearSetting so it exposes forward and
// backward migration hooks.
type LinearMigrator struct{}

// ValidateExtension checks that every version tag parses and that every model
// is linearly migrateable.
func (LinearMigrator) ValidateExtension(models map[string]model.Model) error {
	for tag, m := range models {
		if _, err := version.ParseTag(tag); err != nil {
			return fmt.Errorf("%s - cannot order models: %w", linearLogPrefix, err)
		}
		if _, ok := m.(model.LinearModel); !ok {
			return fmt.Errorf("%s - model version '%s' is not linearly migrateable", linearLogPrefix, tag)
		}
	}
	return nil
}

// Migrate walks the version chain from 'from' to 'to', applying each model's
// forward or backward migration hook in turn.
func (LinearMigrator) Migrate(models map[string]model.Model, value json.RawMessage, from, to string) (json.RawMessage, error) {
	if from == to {
		return value, nil
	}

	chain := make([]string, 0, len(models))
	for tag := range models {
		chain = append(chain, tag)
	}
	version.SortTags(chain)

	fromIndex, toIndex := -1, -1
	for i, tag := range chain {
		if tag == from {
			fromIndex = i
		}
		if tag == to {
			toIndex = i
		}
	}
	if fromIndex == -1 || toIndex == -1 {
		return nil, fmt.Errorf("%s - no migration route from version '%s' to version '%s'", linearLogPrefix, from, to)
	}

	slog.Debug(fmt.Sprintf("%s - migrating from %s to %s via %d step(s)", linearLogPrefix, from, to, abs(toIndex-fromIndex)))

	current := value
	for i := fromIndex; i != toIndex; {
		linear, ok := models[chain[i]].(model.LinearModel)
		if !ok {
			return nil, fmt.Errorf("%s - model version '%s' is not linearly migrateable", linearLogPrefix, chain[i])
		}
		var err error
		if toIndex > i {
			current, err = linear.MigrateForward(current)
			i++
		} else {
			current, err = linear.MigrateBackward(current)
			i--
		}
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
