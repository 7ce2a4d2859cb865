package world

import (
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

// Enemy is a combatant found in a room. Enemies have no behavior of
// their own; they hold hit points and the loot released on death.
type Enemy struct {
	Name        string
	Description string
	Inspection  string
	HP          int
	Loot        *ItemMap
}

// NewEnemy creates an enemy with the given hit points and an empty loot set.
func NewEnemy(name, description, inspection string, hp int) *Enemy {
	return &Enemy{
		Name:        name,
		Description: description,
		Inspection:  inspection,
		HP:          hp,
		Loot:        NewItemMap(),
	}
}

// TakeDamage subtracts damage from the enemy's hit points. HP is allowed
// to go negative; death is decided by the caller observing HP <= 0.
func (e *Enemy) TakeDamage(n int) {
	e.HP -= n
}

// IsDead reports whether the enemy's hit points are exhausted.
func (e *Enemy) IsDead() bool {
	return e.HP <= 0
}

// Inspect returns the close-up text for the enemy.
func (e *Enemy) Inspect() string {
	if e.Inspection != "" {
		return e.Inspection
	}
	return e.Description
}

type enemyJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Inspection  string  `json:"inspection,omitempty"`
	HP          int     `json:"hp"`
	Loot        []*Item `json:"loot,omitempty"`
}

func (e *Enemy) MarshalJSON() ([]byte, error) {
	out := enemyJSON{
		Name:        e.Name,
		Description: e.Description,
		Inspection:  e.Inspection,
		HP:          e.HP,
	}
	if e.Loot != nil {
		out.Loot = e.Loot.List()
	}
	return json.Marshal(out)
}

func (e *Enemy) UnmarshalJSON(data []byte) error {
	var in enemyJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.Name = in.Name
	e.Description = in.Description
	e.Inspection = in.Inspection
	e.HP = in.HP
	e.Loot = itemMapFromList(in.Loot)
	return nil
}

// EnemyMap is a name-keyed enemy collection with insertion-order iteration.
type EnemyMap struct {
	m *orderedmap.OrderedMap[string, *Enemy]
}

// NewEnemyMap creates an empty enemy collection.
func NewEnemyMap() *EnemyMap {
	return &EnemyMap{m: orderedmap.NewOrderedMap[string, *Enemy]()}
}

// Put adds an enemy keyed by its name.
func (em *EnemyMap) Put(e *Enemy) {
	em.m.Set(e.Name, e)
}

// Get returns the named enemy.
func (em *EnemyMap) Get(name string) (*Enemy, bool) {
	return em.m.Get(name)
}

// Remove deletes and returns the named enemy, or nil if absent.
func (em *EnemyMap) Remove(name string) *Enemy {
	e, ok := em.m.Get(name)
	if !ok {
		return nil
	}
	em.m.Delete(name)
	return e
}

// Len returns the number of enemies held.
func (em *EnemyMap) Len() int {
	return em.m.Len()
}

// List returns enemies in insertion order.
func (em *EnemyMap) List() []*Enemy {
	enemies := make([]*Enemy, 0, em.m.Len())
	for el := em.m.Front(); el != nil; el = el.Next() {
		enemies = append(enemies, el.Value)
	}
	return enemies
}

func (em *EnemyMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(em.List())
}

func (em *EnemyMap) UnmarshalJSON(data []byte) error {
	var list []*Enemy
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	rebuilt := NewEnemyMap()
	for _, e := range list {
		rebuilt.Put(e)
	}
	*em = *rebuilt
	return nil
}
