package world

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoRoom signals a broken graph invariant: the current room id does
// not resolve to a room. A well-formed loader never produces this, so
// it is treated as fatal, never shown to the player.
var ErrNoRoom = errors.New("current room is not in the world graph")

// CmdResult carries the outcome of a combat command. Success false is a
// soft failure (missing weapon, missing enemy) with state untouched.
type CmdResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// World is the full room graph plus the player's current location. It
// is the single mutation surface over the graph: every command resolves
// through exactly one of its operations.
type World struct {
	CurrentRoomID string           `json:"current_room"`
	Rooms         map[string]*Room `json:"rooms"`
}

// New creates a world from a room graph. The caller (the loader) is
// responsible for the referential invariant: every path target and the
// starting room must be keys of rooms.
func New(startRoomID string, rooms map[string]*Room) *World {
	return &World{
		CurrentRoomID: startRoomID,
		Rooms:         rooms,
	}
}

// CurrentRoom resolves the room the player is in.
func (w *World) CurrentRoom() (*Room, error) {
	room, ok := w.Rooms[w.CurrentRoomID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRoom, w.CurrentRoomID)
	}
	return room, nil
}

// Look compiles the current room's full description.
func (w *World) Look() (string, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", err
	}
	return room.Desc(), nil
}

// Inspect returns the close-up text of a named thing in the current
// room, checking items first, then paths, then enemies.
func (w *World) Inspect(name string) (string, bool) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", false
	}
	if item, ok := room.Items.Get(name); ok {
		return item.Inspect(), true
	}
	if path, ok := room.Paths[name]; ok {
		return path.Inspection(), true
	}
	if enemy, ok := room.Enemies.Get(name); ok {
		return enemy.Inspect(), true
	}
	return "", false
}

// MoveRoom follows a path out of the current room. Missing, locked and
// closed paths report a message without moving; locked wins over closed.
func (w *World) MoveRoom(direction string) (string, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", err
	}
	path, ok := room.Paths[direction]
	if !ok {
		return "You cannot go that way.", nil
	}
	if path.Locked {
		return "The way is locked.", nil
	}
	if path.Closed {
		return "The way is closed.", nil
	}
	w.CurrentRoomID = path.Target
	return w.Look()
}

// OpenPath opens a named path in the current room. Opening an already
// open path reports so and changes nothing.
func (w *World) OpenPath(name string) (string, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", err
	}
	path, ok := room.Paths[name]
	if !ok {
		return fmt.Sprintf("There is no %q.", name), nil
	}
	if !path.Closed {
		return fmt.Sprintf("The %s is already opened.", name), nil
	}
	path.Closed = false
	return "Opened.", nil
}

// ClosePath closes a named path in the current room. Closing an already
// closed path reports so and changes nothing.
func (w *World) ClosePath(name string) (string, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", err
	}
	path, ok := room.Paths[name]
	if !ok {
		return fmt.Sprintf("There is no %q.", name), nil
	}
	if path.Closed {
		return fmt.Sprintf("The %s is already closed.", name), nil
	}
	path.Closed = true
	return "Closed.", nil
}

// HarmEnemy applies weapon damage to an enemy in the current room. A nil
// damage means the attacker did not actually hold the weapon. When the
// hit is fatal the enemy is removed from the room and its loot moves
// into the room's item set in the same step, so a repeated kill never
// reports loot twice.
func (w *World) HarmEnemy(enemy, weapon string, damage *int) (CmdResult, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return CmdResult{}, err
	}
	target, ok := room.Enemies.Get(enemy)
	if !ok {
		return CmdResult{
			Success: false,
			Message: fmt.Sprintf("There is no %q here.", enemy),
		}, nil
	}
	if damage == nil {
		return CmdResult{
			Success: false,
			Message: fmt.Sprintf("You do not have the %q.", weapon),
		}, nil
	}

	target.TakeDamage(*damage)
	if !target.IsDead() {
		return CmdResult{
			Success: true,
			Message: fmt.Sprintf("You hit the %s with your %s for %d damage.", enemy, weapon, *damage),
		}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You hit the %s with your %s for %d damage. It is dead.\n", enemy, weapon, *damage)
	if target.Loot.Len() > 0 {
		sb.WriteString("It dropped:\n")
		for _, loot := range target.Loot.List() {
			fmt.Fprintf(&sb, " %s,", loot.Name)
		}
	}
	room.Enemies.Remove(enemy)
	room.Items.Merge(target.Loot)
	return CmdResult{Success: true, Message: sb.String()}, nil
}

// Give removes and returns a named item from the current room, or nil
// when it is not there.
func (w *World) Give(name string) *Item {
	room, err := w.CurrentRoom()
	if err != nil {
		return nil
	}
	return room.Items.Remove(name)
}

// GiveFrom removes and returns an item from a named container in the
// current room. Only one nesting level is traversed.
func (w *World) GiveFrom(item, container string) *Item {
	room, err := w.CurrentRoom()
	if err != nil {
		return nil
	}
	cont, ok := room.Items.Get(container)
	if !ok || !cont.IsContainer() {
		return nil
	}
	return cont.Contents.Remove(item)
}

// GiveAll empties the current room's item set and returns it. The
// returned set is exactly the pre-call set; the room holds nothing
// afterwards.
func (w *World) GiveAll() *ItemMap {
	room, err := w.CurrentRoom()
	if err != nil {
		return NewItemMap()
	}
	items := room.Items
	room.Items = NewItemMap()
	return items
}

// Insert moves a caller-supplied item into the current room. A nil item
// means the caller never held it. The cmd verb only varies the message.
func (w *World) Insert(cmd, name string, item *Item) (string, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", err
	}
	if item == nil {
		return fmt.Sprintf("You do not have the %q.", name), nil
	}
	room.Items.Put(item)
	if cmd == "throw" {
		return fmt.Sprintf("You throw the %s across the room.", name), nil
	}
	return "Dropped.", nil
}

// InsertInto moves a caller-supplied item into a named container in the
// current room. When the item cannot be placed it is handed back as the
// second return value so the caller can restore it: items move, they
// are never destroyed. Containers cannot hold other containers.
func (w *World) InsertInto(name, container string, item *Item) (string, *Item, error) {
	room, err := w.CurrentRoom()
	if err != nil {
		return "", item, err
	}
	if item == nil {
		return fmt.Sprintf("You do not have the %q.", name), nil, nil
	}
	cont, ok := room.Items.Get(container)
	if !ok {
		return fmt.Sprintf("There is no %q here.", container), item, nil
	}
	if !cont.IsContainer() {
		return "You can not put anything in there.", item, nil
	}
	if item.IsContainer() {
		return "You can not put that in there.", item, nil
	}
	cont.Contents.Put(item)
	return "Placed.", nil, nil
}

// UnmarshalJSON restores a world snapshot, re-establishing the empty
// collections that omitempty elides.
func (w *World) UnmarshalJSON(data []byte) error {
	type worldAlias World
	var in worldAlias
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*w = World(in)
	if w.Rooms == nil {
		w.Rooms = make(map[string]*Room)
	}
	for _, room := range w.Rooms {
		if room.Paths == nil {
			room.Paths = make(map[string]*PathState)
		}
		if room.Items == nil {
			room.Items = NewItemMap()
		}
		if room.Enemies == nil {
			room.Enemies = NewEnemyMap()
		}
	}
	return nil
}
