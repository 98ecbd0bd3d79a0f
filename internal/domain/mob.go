package domain

import (
	"time"

	"github.com/google/uuid"
)

// MobRewardRule is the resolved reward configuration for one entity type.
// Rules are built once per config load and never mutated afterwards.
type MobRewardRule struct {
	EntityType     string  `json:"entity_type" validate:"required,entitytype"`
	Category       string  `json:"category"`
	Enabled        bool    `json:"enabled"`
	MinReward      float64 `json:"min_reward" validate:"gte=0"`
	MaxReward      float64 `json:"max_reward" validate:"gte=0"`
	DropChance     float64 `json:"drop_chance" validate:"gte=0,lte=100"`
	DropCount      string  `json:"drop_count" validate:"required"`
	KillerRequired bool    `json:"killer_required"`
	DisplayName    string  `json:"display_name"`
}

// Player identifies the killer of an entity.
// Owner is the host's key for the loop that owns this player's state
// (a region key on a regionized host, empty on a single-loop host).
type Player struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Name  string    `json:"name" validate:"required"`
	Owner string    `json:"owner,omitempty"`
}

// Account returns the ledger account for the player.
func (p Player) Account() string {
	return p.ID.String()
}

// DeathEvent is pushed by the host when a living entity dies.
type DeathEvent struct {
	EntityType string    `json:"entity_type" validate:"required,entitytype"`
	EntityID   uuid.UUID `json:"entity_id" validate:"required"`
	Killer     *Player   `json:"killer,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// HasKiller reports whether an eligible killer was attached to the event.
func (e DeathEvent) HasKiller() bool {
	return e.Killer != nil
}
