package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/emberforge/adventure-engine/internal/storage"
	"github.com/emberforge/adventure-engine/pkg/game"
	"github.com/emberforge/adventure-engine/pkg/world"
	"github.com/emberforge/adventure-engine/pkg/worldfile"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateGameRequest is the body for POST /v1/games.
type CreateGameRequest struct {
	World string `json:"world"`
	Seed  uint64 `json:"seed,omitempty"`
}

// GameResponse is the session view returned to clients. The raw world
// graph stays server-side; clients see narrative text only.
type GameResponse struct {
	ID        uuid.UUID `json:"id"`
	WorldName string    `json:"world_name"`
	Turn      int       `json:"turn"`
	Clock     int       `json:"clock"`
	Text      string    `json:"text,omitempty"`
}

// CommandRequest is the body for POST /v1/games/{id}/command.
type CommandRequest struct {
	Input string `json:"input"`
}

// CommandResponse reports the outcome of one resolved command.
type CommandResponse struct {
	Handled  bool   `json:"handled"`
	Text     string `json:"text"`
	Turn     int    `json:"turn"`
	Clock    int    `json:"clock"`
	TurnCost int    `json:"turn_cost,omitempty"`
}

// GameHandler serves the session lifecycle.
// Routes:
// POST /v1/games                - Create a session from a world definition
// GET /v1/games/{id}            - Read a session
// DELETE /v1/games/{id}         - Delete a session
// POST /v1/games/{id}/command   - Apply one player command
type GameHandler struct {
	storage   storage.Storage
	logger    *slog.Logger
	worldsDir string
}

func NewGameHandler(storage storage.Storage, worldsDir string, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		storage:   storage,
		logger:    logger,
		worldsDir: worldsDir,
	}
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/games"), "/")
	switch {
	case path == "":
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST to create a game.")
			return
		}
		h.handleCreate(w, r)

	case strings.HasSuffix(path, "/command"):
		if r.Method != http.MethodPost {
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Use POST to send a command.")
			return
		}
		id, ok := h.parseID(w, strings.TrimSuffix(path, "/command"))
		if !ok {
			return
		}
		h.handleCommand(w, r, id)

	default:
		id, ok := h.parseID(w, path)
		if !ok {
			return
		}
		switch r.Method {
		case http.MethodGet:
			h.handleRead(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		default:
			h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET, DELETE")
		}
	}
}

func (h *GameHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.World == "" {
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'world' field.")
		return
	}

	path, err := worldfile.Resolve(h.worldsDir, req.World)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Unknown world: "+req.World)
		return
	}

	def, err := worldfile.Load(path)
	if err != nil {
		h.logger.Error("Failed to load world definition", "world", req.World, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load world definition.")
		return
	}
	wld, p, err := def.Build()
	if err != nil {
		h.logger.Error("Failed to build world", "world", req.World, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to build world.")
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	g := game.New(req.World, wld, p, seed)

	opening, err := g.Opening()
	if err != nil {
		h.logger.Error("World graph is corrupt", "world", req.World, "error", err)
		h.writeError(w, http.StatusInternalServerError, "World graph is corrupt.")
		return
	}

	if err := h.storage.SaveGame(r.Context(), g); err != nil {
		h.logger.Error("Failed to save game", "id", g.ID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to save game.")
		return
	}

	h.logger.Info("Game created", "id", g.ID, "world", req.World)
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, GameResponse{
		ID:        g.ID,
		WorldName: g.WorldName,
		Turn:      g.Turn,
		Clock:     g.Clock,
		Text:      opening,
	})
}

func (h *GameHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	g, ok := h.loadGame(w, r, id)
	if !ok {
		return
	}
	text, err := g.World.Look()
	if err != nil {
		h.logger.Error("World graph is corrupt", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "World graph is corrupt.")
		return
	}
	h.writeJSON(w, GameResponse{
		ID:        g.ID,
		WorldName: g.WorldName,
		Turn:      g.Turn,
		Clock:     g.Clock,
		Text:      text,
	})
}

func (h *GameHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteGame(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete game", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to delete game.")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GameHandler) handleCommand(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'input' field.")
		return
	}

	g, ok := h.loadGame(w, r, id)
	if !ok {
		return
	}

	res, err := g.Apply(req.Input)
	if err != nil {
		// Hard errors mean a broken graph, not a player mistake.
		if errors.Is(err, world.ErrNoRoom) {
			h.logger.Error("World graph is corrupt", "id", id, "error", err)
			h.writeError(w, http.StatusInternalServerError, "World graph is corrupt.")
			return
		}
		h.logger.Error("Failed to apply command", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to apply command.")
		return
	}

	if res.Handled {
		if err := h.storage.SaveGame(r.Context(), g); err != nil {
			h.logger.Error("Failed to save game", "id", id, "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to save game.")
			return
		}
	}

	h.writeJSON(w, CommandResponse{
		Handled:  res.Handled,
		Text:     res.Text,
		Turn:     g.Turn,
		Clock:    g.Clock,
		TurnCost: res.TurnCost,
	})
}

func (h *GameHandler) loadGame(w http.ResponseWriter, r *http.Request, id uuid.UUID) (*game.Game, bool) {
	g, err := h.storage.LoadGame(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load game", "id", id, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load game.")
		return nil, false
	}
	if g == nil {
		h.writeError(w, http.StatusNotFound, "Game not found.")
		return nil, false
	}
	return g, true
}

func (h *GameHandler) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("Invalid game ID", "id", raw, "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid game ID format")
		return uuid.Nil, false
	}
	return id, true
}

func (h *GameHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *GameHandler) writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		h.logger.Error("Failed to encode error response", "error", err)
	}
}
