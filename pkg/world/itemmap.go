package world

import (
	"encoding/json"

	"github.com/elliotchance/orderedmap/v2"
)

// ItemMap is a name-keyed item collection that iterates in insertion
// order, so look and inventory listings are reproducible. It encodes to
// JSON as an array for the same reason.
type ItemMap struct {
	m *orderedmap.OrderedMap[string, *Item]
}

// NewItemMap creates an empty item collection.
func NewItemMap() *ItemMap {
	return &ItemMap{m: orderedmap.NewOrderedMap[string, *Item]()}
}

// Put adds an item keyed by its name. An existing item with the same
// name is replaced in place.
func (im *ItemMap) Put(item *Item) {
	im.m.Set(item.Name, item)
}

// Get returns the named item.
func (im *ItemMap) Get(name string) (*Item, bool) {
	return im.m.Get(name)
}

// Remove deletes and returns the named item, or nil if absent.
func (im *ItemMap) Remove(name string) *Item {
	item, ok := im.m.Get(name)
	if !ok {
		return nil
	}
	im.m.Delete(name)
	return item
}

// Len returns the number of items held.
func (im *ItemMap) Len() int {
	return im.m.Len()
}

// Names returns item names in insertion order.
func (im *ItemMap) Names() []string {
	return im.m.Keys()
}

// List returns items in insertion order.
func (im *ItemMap) List() []*Item {
	items := make([]*Item, 0, im.m.Len())
	for el := im.m.Front(); el != nil; el = el.Next() {
		items = append(items, el.Value)
	}
	return items
}

// Merge moves every item from other into the collection. Name collisions
// overwrite the existing entry.
func (im *ItemMap) Merge(other *ItemMap) {
	if other == nil {
		return
	}
	for _, item := range other.List() {
		im.Put(item)
	}
}

func (im *ItemMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(im.List())
}

func (im *ItemMap) UnmarshalJSON(data []byte) error {
	var list []*Item
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*im = *itemMapFromList(list)
	return nil
}

func itemMapFromList(list []*Item) *ItemMap {
	im := NewItemMap()
	for _, item := range list {
		im.Put(item)
	}
	return im
}
