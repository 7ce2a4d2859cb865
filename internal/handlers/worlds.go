package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/emberforge/adventure-engine/pkg/worldfile"
)

// WorldsHandler lists the world definitions available to play.
type WorldsHandler struct {
	logger    *slog.Logger
	worldsDir string
}

func NewWorldsHandler(worldsDir string, logger *slog.Logger) *WorldsHandler {
	return &WorldsHandler{
		logger:    logger,
		worldsDir: worldsDir,
	}
}

func (h *WorldsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Method not allowed. Only GET is supported at /v1/worlds."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	names, err := worldfile.List(h.worldsDir)
	if err != nil {
		h.logger.Error("Failed to list worlds", "dir", h.worldsDir, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: "Failed to list worlds."}); err != nil {
			h.logger.Error("Failed to encode error response", "error", err)
		}
		return
	}

	if err := json.NewEncoder(w).Encode(map[string][]string{"worlds": names}); err != nil {
		h.logger.Error("Failed to encode worlds response", "error", err)
	}
}
