package worldfile

import (
	"fmt"

	"github.com/emberforge/adventure-engine/pkg/player"
	"github.com/emberforge/adventure-engine/pkg/world"
)

// Build materializes a definition into a runnable world and player,
// enforcing the invariants the core assumes: the start room and every
// path target resolve, every placed item exists in the catalog, no item
// is placed twice, and containers nest one level only.
func (d *Definition) Build() (*world.World, *player.Player, error) {
	rooms := make(map[string]*world.Room, len(d.Rooms))
	for _, rd := range d.Rooms {
		if _, dup := rooms[rd.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate room id %q", rd.ID)
		}
		name := rd.Name
		if name == "" {
			name = rd.ID
		}
		rooms[rd.ID] = world.NewRoom(rd.ID, name, rd.Description)
	}

	if _, ok := rooms[d.StartRoom]; !ok {
		return nil, nil, fmt.Errorf("start_room %q is not a room", d.StartRoom)
	}

	placed := make(map[string]string) // item name -> where it was placed

	for _, rd := range d.Rooms {
		room := rooms[rd.ID]

		for _, itemName := range rd.Items {
			item, err := d.buildItem(itemName, "room "+rd.ID, placed)
			if err != nil {
				return nil, nil, err
			}
			room.Items.Put(item)
		}

		for _, ed := range rd.Enemies {
			enemy := world.NewEnemy(ed.Name, ed.Description, ed.Inspection, ed.HP)
			for _, lootName := range ed.Loot {
				item, err := d.buildItem(lootName, "enemy "+ed.Name, placed)
				if err != nil {
					return nil, nil, err
				}
				enemy.Loot.Put(item)
			}
			room.Enemies.Put(enemy)
		}

		for _, pd := range rd.Paths {
			if _, ok := rooms[pd.Target]; !ok {
				return nil, nil, fmt.Errorf("room %q path %q targets unknown room %q", rd.ID, pd.Direction, pd.Target)
			}
			room.AddPath(pd.Direction, &world.PathState{
				Target:      pd.Target,
				Locked:      pd.Locked,
				Closed:      pd.Closed,
				Description: pd.Description,
			})
		}
	}

	p := player.New(d.Player.HP)
	for _, itemName := range d.Player.Inventory {
		item, err := d.buildItem(itemName, "player inventory", placed)
		if err != nil {
			return nil, nil, err
		}
		p.Inventory.Put(item)
	}
	if d.Player.MainHand != "" {
		if _, ok := p.Inventory.Get(d.Player.MainHand); !ok {
			return nil, nil, fmt.Errorf("main_hand %q is not in the starting inventory", d.Player.MainHand)
		}
		mh := d.Player.MainHand
		p.MainHand = &mh
	}

	return world.New(d.StartRoom, rooms), p, nil
}

// buildItem instantiates a catalog entry, recursing one level into
// container contents. Every instantiation is recorded in placed, so an
// item authored into two places fails the build: each item is owned by
// exactly one container at a time.
func (d *Definition) buildItem(name, where string, placed map[string]string) (*world.Item, error) {
	def, ok := d.Items[name]
	if !ok {
		return nil, fmt.Errorf("item %q (%s) is not in the item catalog", name, where)
	}
	if prev, dup := placed[name]; dup {
		return nil, fmt.Errorf("item %q placed twice (%s and %s)", name, prev, where)
	}
	placed[name] = where

	if def.Container || len(def.Contents) > 0 {
		cont := world.NewContainer(name, def.Description, def.Inspection)
		for _, inner := range def.Contents {
			innerDef, ok := d.Items[inner]
			if !ok {
				return nil, fmt.Errorf("item %q (contents of %s) is not in the item catalog", inner, name)
			}
			if innerDef.Container || len(innerDef.Contents) > 0 {
				return nil, fmt.Errorf("container %q may not hold container %q", name, inner)
			}
			item, err := d.buildItem(inner, "container "+name, placed)
			if err != nil {
				return nil, err
			}
			cont.Contents.Put(item)
		}
		return cont, nil
	}

	if def.Damage != nil {
		return world.NewWeapon(name, def.Description, def.Inspection, *def.Damage), nil
	}
	return world.NewItem(name, def.Description, def.Inspection), nil
}
