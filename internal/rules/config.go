package rules

import "github.com/osse101/mobmoney/internal/domain"

// rewardFile mirrors mobmoney.json
type rewardFile struct {
	Settings   domain.Settings         `json:"settings"`
	Categories map[string]categoryFile `json:"categories"`
}

type categoryFile struct {
	Defaults ruleValues            `json:"defaults"`
	Entities map[string]ruleValues `json:"entities"`
}

// ruleValues holds optional overrides; nil means inherit
type ruleValues struct {
	Enabled       *bool    `json:"enabled,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	DropChance    *float64 `json:"drop_chance,omitempty"`
	NumberOfDrops *string  `json:"number_of_drops,omitempty"`
	OnlyOnKill    *bool    `json:"only_on_kill,omitempty"`
	DisplayName   *string  `json:"display_name,omitempty"`
}

// entityFile mirrors entities.json
type entityFile struct {
	Entities map[string]struct {
		DisplayName string `json:"display_name"`
	} `json:"entities"`
}

// categoryDefaults resolves a category's defaults block
func categoryDefaults(v ruleValues) domain.MobRewardRule {
	return domain.MobRewardRule{
		Enabled:        DefaultEntityEnabled,
		MinReward:      floatOr(v.Min, DefaultCategoryMin),
		MaxReward:      floatOr(v.Max, DefaultCategoryMax),
		DropChance:     floatOr(v.DropChance, DefaultCategoryDropChance),
		DropCount:      stringOr(v.NumberOfDrops, DefaultCategoryDrops),
		KillerRequired: boolOr(v.OnlyOnKill, DefaultCategoryOnlyOnKill),
	}
}

// merge applies per-entity overrides on top of the category defaults
func merge(base domain.MobRewardRule, v ruleValues) domain.MobRewardRule {
	out := base
	out.Enabled = boolOr(v.Enabled, base.Enabled)
	out.MinReward = floatOr(v.Min, base.MinReward)
	out.MaxReward = floatOr(v.Max, base.MaxReward)
	out.DropChance = floatOr(v.DropChance, base.DropChance)
	out.DropCount = stringOr(v.NumberOfDrops, base.DropCount)
	out.KillerRequired = boolOr(v.OnlyOnKill, base.KillerRequired)
	if v.DisplayName != nil {
		out.DisplayName = *v.DisplayName
	}
	return out
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
