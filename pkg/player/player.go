package player

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/emberforge/adventure-engine/pkg/world"
)

// HP is the player's health as a current value and a cap. Current never
// exceeds Cap after a heal; damage is unclamped on the low side, so
// Current may go negative and defeat handling is up to the caller.
type HP struct {
	Current int `json:"current"`
	Cap     int `json:"cap"`
}

// Player is the user-controlled entity: health, combat state, and an
// insertion-ordered inventory.
type Player struct {
	HP        HP             `json:"hp"`
	InCombat  bool           `json:"in_combat,omitempty"`
	MainHand  *string        `json:"main_hand,omitempty"`
	Inventory *world.ItemMap `json:"inventory"`
}

// New creates a player at full health with an empty inventory.
func New(hpCap int) *Player {
	return &Player{
		HP:        HP{Current: hpCap, Cap: hpCap},
		Inventory: world.NewItemMap(),
	}
}

// Attack resolves the damage value of a carried weapon. It returns nil
// when the weapon is not in the inventory, leaving combat state alone.
// This is step one of the combat protocol; the caller feeds the damage
// into World.HarmEnemy.
func (p *Player) Attack(weapon string) *int {
	item, ok := p.Inventory.Get(weapon)
	if !ok {
		return nil
	}
	p.InCombat = true
	if item.Damage != nil {
		dmg := *item.Damage
		return &dmg
	}
	zero := 0
	return &zero
}

// Equip sets a carried item as the main-hand weapon, so attacks can
// default to it.
func (p *Player) Equip(name string) string {
	if _, ok := p.Inventory.Get(name); !ok {
		return fmt.Sprintf("You do not have the %q.", name)
	}
	p.MainHand = &name
	return fmt.Sprintf("You equip the %s.", name)
}

// RestOutcome is the result of a rest decision. TurnCost is the number
// of time units the rest takes; the core never sleeps, the surrounding
// session loop advances its clock by TurnCost instead.
type RestOutcome struct {
	Message  string
	Healed   int
	TurnCost int
}

// RollRest draws the randomized components of a rest: a heal amount in
// [1,6] and a duration in [2,5] time units.
func RollRest(rng *rand.Rand) (healed, turnCost int) {
	return 1 + rng.IntN(6), 2 + rng.IntN(4)
}

// Rest regains a random amount of HP, clamped to the cap. A player at
// full health rests for no time and heals nothing.
func (p *Player) Rest(rng *rand.Rand) RestOutcome {
	if p.HP.Current >= p.HP.Cap {
		return RestOutcome{Message: "You already have full health."}
	}
	healed, turnCost := RollRest(rng)
	p.HP.Current += healed
	if p.HP.Current > p.HP.Cap {
		p.HP.Current = p.HP.Cap
	}
	return RestOutcome{
		Message:  fmt.Sprintf("You regained %d HP for a total of (%d / %d) HP.", healed, p.HP.Current, p.HP.Cap),
		Healed:   healed,
		TurnCost: turnCost,
	}
}

// DescribeInventory lists carried item names in insertion order.
func (p *Player) DescribeInventory() string {
	if p.Inventory.Len() == 0 {
		return "You are empty-handed."
	}
	var sb strings.Builder
	sb.WriteString("You are carrying:")
	for _, name := range p.Inventory.Names() {
		sb.WriteString("\n  ")
		sb.WriteString(name)
	}
	return sb.String()
}

// Status reports current health.
func (p *Player) Status() string {
	return fmt.Sprintf("You have (%d / %d) HP.", p.HP.Current, p.HP.Cap)
}

// TakeDamage subtracts from current HP without clamping; observing
// HP <= 0 and ending the game is the session's job.
func (p *Player) TakeDamage(damage int) {
	p.HP.Current -= damage
}

// Inspect returns status for "me"/"self"/"myself", or the inspection
// text of a carried item.
func (p *Player) Inspect(name string) (string, bool) {
	switch name {
	case "me", "self", "myself":
		return p.Status(), true
	}
	if item, ok := p.Inventory.Get(name); ok {
		return item.Inspect(), true
	}
	return "", false
}

// Take inserts a supplied item into the inventory. A nil item means it
// was never found where the player looked.
func (p *Player) Take(name string, item *world.Item) string {
	if item == nil {
		return fmt.Sprintf("There is no %q here.", name)
	}
	p.Inventory.Put(item)
	return "Taken."
}

// TakeAll merges a whole item set into the inventory. Name collisions
// overwrite the held item.
func (p *Player) TakeAll(items *world.ItemMap) string {
	if items == nil || items.Len() == 0 {
		return "There is nothing here to take."
	}
	p.Inventory.Merge(items)
	return "Taken."
}

// Remove takes a named item out of the inventory, or nil if not held.
func (p *Player) Remove(name string) *world.Item {
	return p.Inventory.Remove(name)
}

// UnmarshalJSON restores a player snapshot, re-establishing an empty
// inventory when the snapshot elided it.
func (p *Player) UnmarshalJSON(data []byte) error {
	type playerAlias Player
	var in playerAlias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Player(in)
	if p.Inventory == nil {
		p.Inventory = world.NewItemMap()
	}
	return nil
}
