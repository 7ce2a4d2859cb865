package world

import "encoding/json"

// Item is a named object found in rooms, containers and inventories.
// An Item with a non-nil Damage is usable as a weapon. An Item with a
// non-nil Contents map is a container. Containers hold plain items only;
// nesting is a single level deep.
type Item struct {
	Name        string
	Description string
	Inspection  string
	Damage      *int
	Contents    *ItemMap
}

// NewItem creates a plain (non-weapon, non-container) item.
func NewItem(name, description, inspection string) *Item {
	return &Item{
		Name:        name,
		Description: description,
		Inspection:  inspection,
	}
}

// NewWeapon creates an item that can be used to attack.
func NewWeapon(name, description, inspection string, damage int) *Item {
	i := NewItem(name, description, inspection)
	i.Damage = &damage
	return i
}

// NewContainer creates an item that can hold other items.
func NewContainer(name, description, inspection string) *Item {
	i := NewItem(name, description, inspection)
	i.Contents = NewItemMap()
	return i
}

// IsContainer reports whether the item can hold other items.
func (i *Item) IsContainer() bool {
	return i.Contents != nil
}

// Inspect returns the close-up text for the item, falling back to the
// room description when no dedicated inspection text was authored.
func (i *Item) Inspect() string {
	if i.Inspection != "" {
		return i.Inspection
	}
	return i.Description
}

// itemJSON is the wire form of an Item. Contents are encoded as an
// ordered array so insertion order survives a save/load round trip.
type itemJSON struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Inspection  string  `json:"inspection,omitempty"`
	Damage      *int    `json:"damage,omitempty"`
	Container   bool    `json:"container,omitempty"`
	Contents    []*Item `json:"contents,omitempty"`
}

func (i *Item) MarshalJSON() ([]byte, error) {
	out := itemJSON{
		Name:        i.Name,
		Description: i.Description,
		Inspection:  i.Inspection,
		Damage:      i.Damage,
	}
	if i.Contents != nil {
		out.Container = true
		out.Contents = i.Contents.List()
	}
	return json.Marshal(out)
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var in itemJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	i.Name = in.Name
	i.Description = in.Description
	i.Inspection = in.Inspection
	i.Damage = in.Damage
	i.Contents = nil
	if in.Container || len(in.Contents) > 0 {
		i.Contents = itemMapFromList(in.Contents)
	}
	return nil
}
