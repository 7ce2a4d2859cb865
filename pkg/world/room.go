package world

import "strings"

// PathState is a directed edge from one room to another. Locked and
// Closed gate traversal independently: a locked path stays locked no
// matter how often it is opened or closed, and only Closed is toggled
// by the open/close operations.
type PathState struct {
	Target      string `json:"target"`
	Locked      bool   `json:"locked,omitempty"`
	Closed      bool   `json:"closed,omitempty"`
	Description string `json:"description,omitempty"`
}

// Inspection returns the close-up text for the path.
func (p *PathState) Inspection() string {
	if p.Description != "" {
		return p.Description
	}
	switch {
	case p.Locked:
		return "The way is locked."
	case p.Closed:
		return "The way is closed."
	default:
		return "The way is open."
	}
}

// Room is a node in the world graph: a described place holding items,
// enemies, and directional paths to other rooms.
type Room struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Paths       map[string]*PathState `json:"paths,omitempty"`
	Items       *ItemMap              `json:"items,omitempty"`
	Enemies     *EnemyMap             `json:"enemies,omitempty"`
}

// NewRoom creates an empty room.
func NewRoom(id, name, description string) *Room {
	return &Room{
		ID:          id,
		Name:        name,
		Description: description,
		Paths:       make(map[string]*PathState),
		Items:       NewItemMap(),
		Enemies:     NewEnemyMap(),
	}
}

// AddPath connects the room to another in the given direction. The
// path's flavor text is appended to the room description permanently,
// so later looks mention every way out.
func (r *Room) AddPath(direction string, p *PathState) {
	r.Paths[direction] = p
	if p.Description != "" {
		r.Description += "\n" + p.Description
	}
}

// Desc compiles the full printable description of the room: its name,
// its accumulated description, and every item's description in
// insertion order.
func (r *Room) Desc() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	sb.WriteString("\n")
	sb.WriteString(r.Description)
	sb.WriteString("\n")
	for _, item := range r.Items.List() {
		if item.Description == "" {
			continue
		}
		sb.WriteString(item.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}
