package rules

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/logger"
	"github.com/osse101/mobmoney/internal/reward"
	"github.com/osse101/mobmoney/internal/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Loader reads and validates the reward config directory
type Loader struct {
	dir     string
	schemas validation.SchemaValidator
	now     func() time.Time
}

// NewLoader creates a loader for dir
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:     dir,
		schemas: validation.NewSchemaValidator(),
		now:     time.Now,
	}
}

// Dir returns the config directory
func (l *Loader) Dir() string {
	return l.dir
}

// Load builds a new Snapshot. Any error leaves the caller's current rules untouched.
// Misconfigured rules (inverted range, bad drop spec) are kept and reported as warnings.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	log := logger.FromContext(ctx)

	var rf rewardFile
	rf.Settings = domain.DefaultSettings()
	if err := l.readValidated(RewardConfigFile, rewardSchemaName, &rf); err != nil {
		return nil, err
	}
	if err := validation.Struct().Struct(rf.Settings); err != nil {
		return nil, fmt.Errorf("%w: settings: %v", domain.ErrConfigValidation, err)
	}

	names, err := l.loadDisplayNames()
	if err != nil {
		return nil, err
	}
	if names == nil {
		log.Warn(LogMsgEntityFileMissing, "path", filepath.Join(l.dir, EntityConfigFile))
	}

	snap := &Snapshot{
		Settings:   rf.Settings,
		Rules:      make(map[string]domain.MobRewardRule),
		Categories: make(map[string]int),
		LoadedAt:   l.now(),
	}

	categories := make([]string, 0, len(rf.Categories))
	for name := range rf.Categories {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, category := range categories {
		cf := rf.Categories[category]
		base := categoryDefaults(cf.Defaults)
		base.Category = category

		entities := make([]string, 0, len(cf.Entities))
		for name := range cf.Entities {
			entities = append(entities, name)
		}
		sort.Strings(entities)

		for _, raw := range entities {
			entityType := validation.NormalizeEntityType(raw)
			rule := merge(base, cf.Entities[raw])
			rule.EntityType = entityType
			if rule.DisplayName == "" {
				rule.DisplayName = displayName(names, entityType)
			}

			if err := validation.Struct().Struct(rule); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidRuleValue, entityType, err)
			}

			if prev, dup := snap.Rules[entityType]; dup {
				snap.Warnings = append(snap.Warnings,
					fmt.Sprintf(warnDuplicate, entityType, prev.Category, category, category))
				snap.Categories[prev.Category]--
			}

			for _, w := range ruleWarnings(rule) {
				snap.Warnings = append(snap.Warnings, w)
				log.Warn(LogMsgRuleWarning, "entity_type", entityType, "category", category, "problem", w)
			}

			snap.Rules[entityType] = rule
			snap.Categories[category]++
		}
	}

	log.Info(LogMsgRulesLoaded, "rules", len(snap.Rules), "categories", len(snap.Categories), "warnings", len(snap.Warnings))
	if snap.Settings.Debug {
		for _, category := range categories {
			log.Info(LogMsgCategoryLoaded, "category", category, "rules", snap.Categories[category])
		}
	}
	return snap, nil
}

// ruleWarnings reports problems that only surface when the rule is used
func ruleWarnings(rule domain.MobRewardRule) []string {
	var warnings []string
	if rule.MinReward > rule.MaxReward {
		warnings = append(warnings, fmt.Sprintf(warnInvertedRange, rule.EntityType, rule.MinReward, rule.MaxReward))
	}
	if _, err := reward.ParseDropSpec(rule.DropCount); err != nil {
		warnings = append(warnings, fmt.Sprintf(warnDropSpec, rule.EntityType, err))
	}
	return warnings
}

func displayName(names map[string]string, entityType string) string {
	if name, ok := names[entityType]; ok && name != "" {
		return name
	}
	return entityType
}

// loadDisplayNames returns nil when the entity file does not exist
func (l *Loader) loadDisplayNames() (map[string]string, error) {
	var ef entityFile
	err := l.readValidated(EntityConfigFile, entitySchemaName, &ef)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(ef.Entities))
	for k, v := range ef.Entities {
		names[validation.NormalizeEntityType(k)] = strings.TrimSpace(v.DisplayName)
	}
	return names, nil
}

func (l *Loader) readValidated(file, schemaName string, out any) error {
	path := filepath.Join(l.dir, file)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrConfigLoad, path, err)
	}

	schema, err := schemaFS.ReadFile("schemas/" + schemaName)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrConfigLoad, schemaName, err)
	}
	if err := l.schemas.ValidateEmbedded(data, schemaName, schema); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConfigValidation, path, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrConfigLoad, path, err)
	}
	return nil
}
