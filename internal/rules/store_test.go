package rules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/mobmoney/internal/domain"
)

const testRewardConfig = `{
  "settings": {"max_recent_entries": 50, "enable_metrics": true, "debug": true},
  "categories": {
    "hostile": {
      "defaults": {"min": 1, "max": 3, "drop_chance": 80, "number_of_drops": "1"},
      "entities": {
        "zombie": {},
        "CREEPER": {"min": 2, "max": 4, "number_of_drops": "1-2"},
        "SPIDER": {"enabled": false},
        "WITCH": {"display_name": "Swamp Witch"}
      }
    },
    "passive": {
      "defaults": {"min": 0.5, "max": 0.5, "drop_chance": 100, "only_on_kill": false},
      "entities": {
        "COW": {}
      }
    }
  }
}`

const testEntityConfig = `{
  "entities": {
    "ZOMBIE": {"display_name": "Zombie"},
    "CREEPER": {"display_name": "Creeper"},
    "WITCH": {"display_name": "Witch"}
  }
}`

func writeConfig(t *testing.T, dir, reward, entities string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RewardConfigFile), []byte(reward), 0o644))
	if entities != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, EntityConfigFile), []byte(entities), 0o644))
	}
}

func TestLoader_MergesCategoryDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testRewardConfig, testEntityConfig)

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, snap.RuleCount())

	zombie, ok := snap.Rule("ZOMBIE")
	require.True(t, ok, "keys are normalized to upper case")
	assert.Equal(t, domain.MobRewardRule{
		EntityType:     "ZOMBIE",
		Category:       "hostile",
		Enabled:        true,
		MinReward:      1,
		MaxReward:      3,
		DropChance:     80,
		DropCount:      "1",
		KillerRequired: true,
		DisplayName:    "Zombie",
	}, zombie)

	creeper, _ := snap.Rule("creeper")
	assert.Equal(t, 2.0, creeper.MinReward)
	assert.Equal(t, 4.0, creeper.MaxReward)
	assert.Equal(t, "1-2", creeper.DropCount)

	spider, _ := snap.Rule("SPIDER")
	assert.False(t, spider.Enabled)
	assert.Equal(t, "SPIDER", spider.DisplayName, "display name falls back to the entity type")

	witch, _ := snap.Rule("WITCH")
	assert.Equal(t, "Swamp Witch", witch.DisplayName, "inline display name wins over the entity file")

	cow, _ := snap.Rule("COW")
	assert.False(t, cow.KillerRequired)
	assert.Equal(t, "1", cow.DropCount)

	assert.Equal(t, 4, snap.Categories["hostile"])
	assert.Equal(t, 1, snap.Categories["passive"])
}

func TestLoader_SettingsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testRewardConfig, "")

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 50, snap.Settings.MaxRecentEntries)
	assert.True(t, snap.Settings.EnableMetrics)
	assert.Equal(t, 30, snap.Settings.CleanupIntervalSeconds)
	assert.Equal(t, 5000, snap.Settings.AsyncTimeoutMillis)
	assert.True(t, snap.Settings.ActionBar.Enabled)
	assert.Contains(t, snap.Settings.ActionBar.Message, domain.PlaceholderAmount)
}

func TestLoader_MisconfiguredRulesAreWarnings(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
	  "categories": {
	    "broken": {
	      "defaults": {"min": 5, "max": 1, "drop_chance": 100},
	      "entities": {"ZOMBIE": {}, "HUSK": {"min": 1, "max": 2, "number_of_drops": "3-1"}}
	    }
	  }
	}`, "")

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, snap.RuleCount())
	assert.Len(t, snap.Warnings, 2)
}

func TestLoader_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"categories": {"x": {"defaults": {"drop_chance": 150}, "entities": {"ZOMBIE": {}}}}}`, "")

	_, err := NewLoader(dir).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigValidation))
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfigLoad))
}

func TestLoader_DuplicateEntity(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
	  "categories": {
	    "a": {"defaults": {"min": 1, "max": 1}, "entities": {"ZOMBIE": {}}},
	    "b": {"defaults": {"min": 2, "max": 2}, "entities": {"ZOMBIE": {}}}
	  }
	}`, "")

	snap, err := NewLoader(dir).Load(context.Background())
	require.NoError(t, err)
	zombie, _ := snap.Rule("ZOMBIE")
	assert.Equal(t, "b", zombie.Category)
	assert.Equal(t, 2.0, zombie.MinReward)
	assert.Len(t, snap.Warnings, 1)
	assert.Equal(t, 0, snap.Categories["a"])
}

func TestStore_ReloadIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testRewardConfig, testEntityConfig)
	store := NewStore(NewLoader(dir))

	first, err := store.Reload(context.Background())
	require.NoError(t, err)
	second, err := store.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Rules, second.Rules)
	assert.Equal(t, first.Settings, second.Settings)
	assert.Same(t, second, store.Current())
}

func TestStore_FailedReloadKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testRewardConfig, testEntityConfig)
	store := NewStore(NewLoader(dir))

	good, err := store.Reload(context.Background())
	require.NoError(t, err)

	writeConfig(t, dir, `{"categories": "nope"}`, "")
	_, err = store.Reload(context.Background())
	require.Error(t, err)

	assert.Same(t, good, store.Current())
	assert.Equal(t, 5, store.RuleCount())
}

func TestStore_EmptyBeforeFirstLoad(t *testing.T) {
	store := NewStore(NewLoader(t.TempDir()))
	assert.Zero(t, store.RuleCount())
	assert.Equal(t, domain.DefaultSettings(), store.Settings())

	_, ok := store.Current().Rule("ZOMBIE")
	assert.False(t, ok)
}

func TestStore_ConcurrentReadsDuringReload(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, testRewardConfig, testEntityConfig)
	store := NewStore(NewLoader(dir))
	_, err := store.Reload(context.Background())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			_, _ = store.Reload(context.Background())
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
			snap := store.Current()
			assert.Equal(t, 5, len(snap.Rules), "readers only ever see complete rule sets")
		}
	}
}
