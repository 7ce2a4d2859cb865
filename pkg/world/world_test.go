package world

import (
	"encoding/json"
	"strings"
	"testing"
)

func intPtr(n int) *int {
	return &n
}

// testWorld builds a two-room graph: a cave with a chest (holding a
// coin) and a sword, and a tunnel with a wolf guarding a pelt.
func testWorld(t *testing.T) *World {
	t.Helper()

	cave := NewRoom("cave", "Cave", "Water drips somewhere in the dark.")
	chest := NewContainer("chest", "A heavy wooden chest squats in the corner.", "Iron-banded oak.")
	chest.Contents.Put(NewItem("coin", "A gold coin glints in the dust.", "An old coin."))
	cave.Items.Put(chest)
	cave.Items.Put(NewWeapon("sword", "A short sword leans against the wall.", "Plain but serviceable.", 12))

	tunnel := NewRoom("tunnel", "Tunnel", "The walls press close.")
	wolf := NewEnemy("wolf", "A gaunt wolf blocks the way.", "Its ribs show.", 10)
	wolf.Loot.Put(NewItem("wolf pelt", "A rough grey pelt lies here.", "Thick winter fur."))
	tunnel.Enemies.Put(wolf)

	cave.AddPath("north", &PathState{Target: "tunnel", Description: "A narrow passage leads north."})
	tunnel.AddPath("south", &PathState{Target: "cave", Description: "The passage opens south."})

	return New("cave", map[string]*Room{"cave": cave, "tunnel": tunnel})
}

func TestLook(t *testing.T) {
	w := testWorld(t)

	text, err := w.Look()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "Cave\n") {
		t.Errorf("look should start with the room name, got %q", text)
	}

	// Item descriptions appear in insertion order: chest then sword.
	chestIdx := strings.Index(text, "chest")
	swordIdx := strings.Index(text, "sword")
	if chestIdx < 0 || swordIdx < 0 || chestIdx > swordIdx {
		t.Errorf("expected chest before sword in look output, got %q", text)
	}

	// Repeated looks are identical.
	again, _ := w.Look()
	if text != again {
		t.Error("look output should be deterministic")
	}
}

func TestLookNoRoom(t *testing.T) {
	w := testWorld(t)
	w.CurrentRoomID = "nowhere"

	if _, err := w.Look(); err == nil {
		t.Fatal("expected hard error for missing current room")
	}
}

func TestMoveRoom(t *testing.T) {
	t.Run("no such path", func(t *testing.T) {
		w := testWorld(t)
		text, err := w.MoveRoom("west")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "You cannot go that way." {
			t.Errorf("unexpected message: %q", text)
		}
		if w.CurrentRoomID != "cave" {
			t.Errorf("current room should not change, got %q", w.CurrentRoomID)
		}
	})

	t.Run("locked path blocks regardless of closed", func(t *testing.T) {
		w := testWorld(t)
		w.Rooms["cave"].Paths["north"].Locked = true

		for _, closed := range []bool{false, true} {
			w.Rooms["cave"].Paths["north"].Closed = closed
			text, err := w.MoveRoom("north")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != "The way is locked." {
				t.Errorf("closed=%v: unexpected message %q", closed, text)
			}
			if w.CurrentRoomID != "cave" {
				t.Errorf("closed=%v: current room should not change", closed)
			}
		}

		// Blocked attempts leave topology untouched.
		p := w.Rooms["cave"].Paths["north"]
		if p.Target != "tunnel" || !p.Locked {
			t.Error("path state mutated by blocked movement")
		}
	})

	t.Run("closed path", func(t *testing.T) {
		w := testWorld(t)
		w.Rooms["cave"].Paths["north"].Closed = true

		text, err := w.MoveRoom("north")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "The way is closed." {
			t.Errorf("unexpected message: %q", text)
		}
		if w.CurrentRoomID != "cave" {
			t.Error("current room should not change")
		}
	})

	t.Run("open path moves and looks", func(t *testing.T) {
		w := testWorld(t)
		text, err := w.MoveRoom("north")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if w.CurrentRoomID != "tunnel" {
			t.Errorf("expected to be in tunnel, got %q", w.CurrentRoomID)
		}
		if !strings.HasPrefix(text, "Tunnel\n") {
			t.Errorf("expected tunnel description, got %q", text)
		}
	})
}

func TestOpenClosePath(t *testing.T) {
	w := testWorld(t)

	t.Run("unknown path", func(t *testing.T) {
		text, err := w.OpenPath("hatch")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != `There is no "hatch".` {
			t.Errorf("unexpected message: %q", text)
		}
	})

	t.Run("open is idempotent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			text, err := w.OpenPath("north")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != "The north is already opened." {
				t.Errorf("attempt %d: unexpected message %q", i, text)
			}
			if w.Rooms["cave"].Paths["north"].Closed {
				t.Errorf("attempt %d: path should stay open", i)
			}
		}
	})

	t.Run("close then reopen", func(t *testing.T) {
		text, _ := w.ClosePath("north")
		if text != "Closed." {
			t.Errorf("unexpected message: %q", text)
		}
		text, _ = w.ClosePath("north")
		if text != "The north is already closed." {
			t.Errorf("unexpected message: %q", text)
		}
		text, _ = w.OpenPath("north")
		if text != "Opened." {
			t.Errorf("unexpected message: %q", text)
		}
		if w.Rooms["cave"].Paths["north"].Closed {
			t.Error("path should be open")
		}
	})
}

func TestHarmEnemy(t *testing.T) {
	t.Run("missing weapon damage", func(t *testing.T) {
		w := testWorld(t)
		w.CurrentRoomID = "tunnel"

		res, err := w.HarmEnemy("wolf", "axe", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Error("expected soft failure")
		}
		if res.Message != `You do not have the "axe".` {
			t.Errorf("unexpected message: %q", res.Message)
		}
		if e, ok := w.Rooms["tunnel"].Enemies.Get("wolf"); !ok || e.HP != 10 {
			t.Error("enemy state should be untouched")
		}
	})

	t.Run("missing enemy", func(t *testing.T) {
		w := testWorld(t)
		w.CurrentRoomID = "tunnel"

		res, err := w.HarmEnemy("bear", "sword", intPtr(5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Error("expected soft failure")
		}
		if res.Message != `There is no "bear" here.` {
			t.Errorf("unexpected message: %q", res.Message)
		}
	})

	t.Run("non-fatal hit", func(t *testing.T) {
		w := testWorld(t)
		w.CurrentRoomID = "tunnel"

		res, err := w.HarmEnemy("wolf", "sword", intPtr(4))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success {
			t.Error("expected success")
		}
		if res.Message != "You hit the wolf with your sword for 4 damage." {
			t.Errorf("unexpected message: %q", res.Message)
		}
		if e, _ := w.Rooms["tunnel"].Enemies.Get("wolf"); e.HP != 6 {
			t.Errorf("expected 6 hp, got %d", e.HP)
		}
	})

	t.Run("fatal hit reports loot exactly once", func(t *testing.T) {
		w := testWorld(t)
		w.CurrentRoomID = "tunnel"

		res, err := w.HarmEnemy("wolf", "sword", intPtr(12))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success {
			t.Error("expected success")
		}
		if !strings.Contains(res.Message, "It is dead.") {
			t.Errorf("expected death message, got %q", res.Message)
		}
		if !strings.Contains(res.Message, "It dropped:") || !strings.Contains(res.Message, "wolf pelt") {
			t.Errorf("expected loot enumeration, got %q", res.Message)
		}

		// Enemy removed, loot moved into the room.
		if _, ok := w.Rooms["tunnel"].Enemies.Get("wolf"); ok {
			t.Error("dead enemy should be removed from the room")
		}
		if _, ok := w.Rooms["tunnel"].Items.Get("wolf pelt"); !ok {
			t.Error("loot should be in the room item set")
		}
		if _, ok := w.Inspect("wolf"); ok {
			t.Error("dead enemy should not be inspectable")
		}

		// A second kill attempt reports a missing enemy, never loot.
		res, err = w.HarmEnemy("wolf", "sword", intPtr(12))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			t.Error("expected soft failure on re-kill")
		}
		if strings.Contains(res.Message, "dropped") {
			t.Errorf("loot reported twice: %q", res.Message)
		}
	})
}

func TestGiveAndInsert(t *testing.T) {
	t.Run("give removes from room", func(t *testing.T) {
		w := testWorld(t)

		item := w.Give("sword")
		if item == nil || item.Name != "sword" {
			t.Fatal("expected the sword")
		}
		if w.Give("sword") != nil {
			t.Error("second give should return nothing")
		}
	})

	t.Run("give_from traverses one container level", func(t *testing.T) {
		w := testWorld(t)

		coin := w.GiveFrom("coin", "chest")
		if coin == nil || coin.Name != "coin" {
			t.Fatal("expected the coin")
		}
		if w.GiveFrom("coin", "chest") != nil {
			t.Error("coin should be gone from the chest")
		}
		if w.GiveFrom("coin", "sword") != nil {
			t.Error("non-container should yield nothing")
		}
	})

	t.Run("give_all empties the room exactly", func(t *testing.T) {
		w := testWorld(t)

		before := w.Rooms["cave"].Items.Names()
		items := w.GiveAll()
		if got := items.Names(); len(got) != len(before) {
			t.Fatalf("expected %v, got %v", before, got)
		}
		for i, name := range before {
			if items.Names()[i] != name {
				t.Errorf("order not preserved: expected %v, got %v", before, items.Names())
			}
		}
		if w.Rooms["cave"].Items.Len() != 0 {
			t.Error("room should be empty after give_all")
		}
	})

	t.Run("insert without holding the item", func(t *testing.T) {
		w := testWorld(t)

		text, err := w.Insert("drop", "gem", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != `You do not have the "gem".` {
			t.Errorf("unexpected message: %q", text)
		}
	})

	t.Run("insert verbs", func(t *testing.T) {
		w := testWorld(t)

		text, _ := w.Insert("drop", "gem", NewItem("gem", "A gem.", ""))
		if text != "Dropped." {
			t.Errorf("unexpected message: %q", text)
		}
		text, _ = w.Insert("throw", "rock", NewItem("rock", "A rock.", ""))
		if text != "You throw the rock across the room." {
			t.Errorf("unexpected message: %q", text)
		}
	})

	t.Run("insert_into", func(t *testing.T) {
		w := testWorld(t)

		text, leftover, err := w.InsertInto("gem", "chest", NewItem("gem", "A gem.", ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if text != "Placed." || leftover != nil {
			t.Errorf("expected placement, got %q (leftover %v)", text, leftover)
		}
		if w.GiveFrom("gem", "chest") == nil {
			t.Error("placed gem should be retrievable from the chest")
		}

		// Non-container target hands the item back.
		gem := NewItem("gem", "A gem.", "")
		text, leftover, _ = w.InsertInto("gem", "sword", gem)
		if text != "You can not put anything in there." || leftover != gem {
			t.Errorf("expected refusal with leftover, got %q", text)
		}

		// Unknown container hands the item back.
		text, leftover, _ = w.InsertInto("gem", "crate", gem)
		if text != `There is no "crate" here.` || leftover != gem {
			t.Errorf("expected refusal with leftover, got %q", text)
		}

		// Containers cannot nest.
		box := NewContainer("box", "A box.", "")
		text, leftover, _ = w.InsertInto("box", "chest", box)
		if text != "You can not put that in there." || leftover != box {
			t.Errorf("expected nesting refusal, got %q", text)
		}
	})
}

func TestInspectPriority(t *testing.T) {
	w := testWorld(t)

	// An item named like a path wins over the path.
	w.Rooms["cave"].Items.Put(NewItem("north", "A sign pointing north.", "It reads: danger."))
	if text, ok := w.Inspect("north"); !ok || text != "It reads: danger." {
		t.Errorf("expected item inspection to win, got %q", text)
	}

	w.Rooms["cave"].Items.Remove("north")
	if text, ok := w.Inspect("north"); !ok || text != "A narrow passage leads north." {
		t.Errorf("expected path inspection, got %q", text)
	}

	w.CurrentRoomID = "tunnel"
	if text, ok := w.Inspect("wolf"); !ok || text != "Its ribs show." {
		t.Errorf("expected enemy inspection, got %q", text)
	}

	if _, ok := w.Inspect("ghost"); ok {
		t.Error("unknown name should not inspect")
	}
}

func TestItemConservation(t *testing.T) {
	w := testWorld(t)
	inventory := NewItemMap()

	countSet := func(im *ItemMap) int {
		n := im.Len()
		for _, item := range im.List() {
			if item.IsContainer() {
				n += item.Contents.Len()
			}
		}
		return n
	}
	countAll := func() int {
		n := countSet(inventory)
		for _, room := range w.Rooms {
			n += countSet(room.Items)
		}
		return n
	}

	total := countAll()

	// Shuffle items between room, inventory and container.
	inventory.Put(w.Give("sword"))
	inventory.Put(w.GiveFrom("coin", "chest"))
	if _, leftover, _ := w.InsertInto("coin", "chest", inventory.Remove("coin")); leftover != nil {
		t.Fatal("coin should be placeable")
	}
	if _, err := w.Insert("drop", "sword", inventory.Remove("sword")); err != nil {
		t.Fatal(err)
	}
	inventory.Merge(w.GiveAll())

	if got := countAll(); got != total {
		t.Errorf("item count not conserved: started with %d, ended with %d", total, got)
	}
}

func TestWorldJSONRoundTrip(t *testing.T) {
	w := testWorld(t)

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var restored World
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if restored.CurrentRoomID != w.CurrentRoomID {
		t.Errorf("current room lost: %q", restored.CurrentRoomID)
	}

	// Item order must survive the round trip.
	want := w.Rooms["cave"].Items.Names()
	got := restored.Rooms["cave"].Items.Names()
	if len(want) != len(got) {
		t.Fatalf("expected items %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("item order lost: expected %v, got %v", want, got)
		}
	}

	// Container contents, enemies and paths survive too.
	chest, ok := restored.Rooms["cave"].Items.Get("chest")
	if !ok || !chest.IsContainer() {
		t.Fatal("chest lost in round trip")
	}
	if _, ok := chest.Contents.Get("coin"); !ok {
		t.Error("chest contents lost in round trip")
	}
	if e, ok := restored.Rooms["tunnel"].Enemies.Get("wolf"); !ok || e.HP != 10 || e.Loot.Len() != 1 {
		t.Error("enemy lost in round trip")
	}
	if p, ok := restored.Rooms["cave"].Paths["north"]; !ok || p.Target != "tunnel" {
		t.Error("path lost in round trip")
	}
}
