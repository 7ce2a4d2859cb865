package game

import (
	"strings"
)

// Result is the outcome of one dispatched command. Soft refusals
// ("you cannot go that way") are ordinary Results; only structural
// corruption surfaces as an error from Apply.
type Result struct {
	Handled  bool   `json:"handled"`            // false when the input was not understood
	Text     string `json:"text"`               // narrative message to print
	TurnCost int    `json:"turn_cost,omitempty"` // extra time units spent (resting)
}

// Apply parses one line of player input, dispatches it to a single
// world or player operation, and advances the turn counters. State is
// mutated atomically per command: either the operation applies fully or
// a message reports why nothing happened.
func (g *Game) Apply(input string) (*Result, error) {
	verb, rest := splitVerb(input)

	var res *Result
	var err error
	switch verb {
	case "":
		return &Result{Handled: false, Text: "Say something."}, nil
	case "look", "l":
		res, err = g.look()
	case "go", "move", "walk":
		res, err = g.move(rest)
	case "open":
		res, err = g.openPath(rest)
	case "close":
		res, err = g.closePath(rest)
	case "take", "get":
		res, err = g.take(rest)
	case "drop":
		res, err = g.drop("drop", rest)
	case "throw":
		res, err = g.drop("throw", rest)
	case "put", "place":
		res, err = g.put(rest)
	case "attack", "hit", "kill":
		res, err = g.attack(rest)
	case "equip", "wield":
		res = &Result{Handled: true, Text: g.Player.Equip(rest)}
	case "inventory", "i":
		res = &Result{Handled: true, Text: g.Player.DescribeInventory()}
	case "status":
		res = &Result{Handled: true, Text: g.Player.Status()}
	case "rest", "sleep", "wait":
		out := g.Player.Rest(g.RNG())
		res = &Result{Handled: true, Text: out.Message, TurnCost: out.TurnCost}
	case "inspect", "examine", "x":
		res = g.inspect(rest)
	default:
		return &Result{Handled: false, Text: "I do not understand that command."}, nil
	}
	if err != nil {
		return nil, err
	}
	if res.Handled {
		g.Turn++
		g.Clock += 1 + res.TurnCost
	}
	return res, nil
}

func (g *Game) look() (*Result, error) {
	text, err := g.World.Look()
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

func (g *Game) move(direction string) (*Result, error) {
	if direction == "" {
		return &Result{Handled: true, Text: "Go where?"}, nil
	}
	text, err := g.World.MoveRoom(direction)
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

func (g *Game) openPath(name string) (*Result, error) {
	text, err := g.World.OpenPath(name)
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

func (g *Game) closePath(name string) (*Result, error) {
	text, err := g.World.ClosePath(name)
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

// take handles "take all", "take <item>" and "take <item> from <container>".
func (g *Game) take(rest string) (*Result, error) {
	if rest == "" {
		return &Result{Handled: true, Text: "Take what?"}, nil
	}
	if rest == "all" {
		return &Result{Handled: true, Text: g.Player.TakeAll(g.World.GiveAll())}, nil
	}
	if name, container, ok := splitOn(rest, "from"); ok {
		item := g.World.GiveFrom(name, container)
		return &Result{Handled: true, Text: g.Player.Take(name, item)}, nil
	}
	item := g.World.Give(rest)
	return &Result{Handled: true, Text: g.Player.Take(rest, item)}, nil
}

func (g *Game) drop(verb, name string) (*Result, error) {
	if name == "" {
		if verb == "throw" {
			return &Result{Handled: true, Text: "Throw what?"}, nil
		}
		return &Result{Handled: true, Text: "Drop what?"}, nil
	}
	item := g.Player.Remove(name)
	text, err := g.World.Insert(verb, name, item)
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

// put handles "put <item> in <container>". An item that could not be
// placed goes straight back into the inventory.
func (g *Game) put(rest string) (*Result, error) {
	name, container, ok := splitOn(rest, "in")
	if !ok {
		return &Result{Handled: true, Text: "Put what in what?"}, nil
	}
	item := g.Player.Remove(name)
	text, leftover, err := g.World.InsertInto(name, container, item)
	if leftover != nil {
		g.Player.Take(name, leftover)
	}
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: text}, nil
}

// attack runs the two-step combat protocol: the player resolves the
// weapon to a damage value, then the world applies it to the target.
func (g *Game) attack(rest string) (*Result, error) {
	if rest == "" {
		return &Result{Handled: true, Text: "Attack what?"}, nil
	}
	enemy, weapon, ok := splitOn(rest, "with")
	if !ok {
		enemy = rest
		if g.Player.MainHand == nil {
			return &Result{Handled: true, Text: "Attack with what?"}, nil
		}
		weapon = *g.Player.MainHand
	}
	damage := g.Player.Attack(weapon)
	cmd, err := g.World.HarmEnemy(enemy, weapon, damage)
	if err != nil {
		return nil, err
	}
	return &Result{Handled: true, Text: cmd.Message}, nil
}

// inspect checks the player first (self and inventory), then the room.
func (g *Game) inspect(name string) *Result {
	if name == "" {
		return &Result{Handled: true, Text: "Inspect what?"}
	}
	if text, ok := g.Player.Inspect(name); ok {
		return &Result{Handled: true, Text: text}
	}
	if text, ok := g.World.Inspect(name); ok {
		return &Result{Handled: true, Text: text}
	}
	return &Result{Handled: true, Text: "There is no \"" + name + "\" here."}
}

// splitVerb separates the command verb from its argument text.
func splitVerb(input string) (string, string) {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	if trimmed == "" {
		return "", ""
	}
	parts := strings.SplitN(trimmed, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// splitOn splits "sword from chest" style arguments around a keyword,
// preserving multi-word names on both sides.
func splitOn(rest, keyword string) (left, right string, ok bool) {
	idx := strings.Index(rest, " "+keyword+" ")
	if idx < 0 {
		return rest, "", false
	}
	left = strings.TrimSpace(rest[:idx])
	right = strings.TrimSpace(rest[idx+len(keyword)+2:])
	if left == "" || right == "" {
		return rest, "", false
	}
	return left, right, true
}
