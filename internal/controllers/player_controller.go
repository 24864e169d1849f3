package controllers

import (
	"net/http"
	"strconv"

	"github.com/c0sm0thecoder/scorecard-api/internal/dto"
	"github.com/c0sm0thecoder/scorecard-api/internal/services"
	"github.com/go-chi/chi/v5"
)

const playerNotFound = "Player not found"

type PlayerController struct {
	playerService services.PlayerService
}

func NewPlayerController(playerService services.PlayerService) *PlayerController {
	return &PlayerController{
		playerService: playerService,
	}
}

// RegisterRoutes registers all player-related routes
func (c *PlayerController) RegisterRoutes(r chi.Router) {
	r.Route("/players", func(r chi.Router) {
		r.Get("/", c.ListPlayers)
		r.Post("/", c.CreatePlayer)
		r.Route("/{playerID}", func(r chi.Router) {
			r.Get("/", c.GetPlayer)
			r.Put("/", c.UpdatePlayer)
			r.Patch("/", c.PatchPlayer)
			r.Delete("/", c.DeletePlayer)
		})
	})
}

// ListPlayers supports ?room_id= and ?active=true filters
func (c *PlayerController) ListPlayers(w http.ResponseWriter, r *http.Request) {
	roomID, ok := queryID(w, r, "room_id")
	if !ok {
		return
	}
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "active must be true or false")
			return
		}
		activeOnly = v
	}

	players, err := c.playerService.ListPlayers(r.Context(), roomID, activeOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPlayerResponses(players))
}

func (c *PlayerController) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePlayerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player, err := c.playerService.CreatePlayer(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewPlayerResponse(*player))
}

func (c *PlayerController) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID", playerNotFound)
	if !ok {
		return
	}
	player, err := c.playerService.GetPlayer(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPlayerResponse(*player))
}

func (c *PlayerController) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	c.updatePlayer(w, r, false)
}

func (c *PlayerController) PatchPlayer(w http.ResponseWriter, r *http.Request) {
	c.updatePlayer(w, r, true)
}

func (c *PlayerController) updatePlayer(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(w, r, "playerID", playerNotFound)
	if !ok {
		return
	}
	var req dto.UpdatePlayerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player, err := c.playerService.UpdatePlayer(r.Context(), id, req, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewPlayerResponse(*player))
}

func (c *PlayerController) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "playerID", playerNotFound)
	if !ok {
		return
	}
	if err := c.playerService.DeletePlayer(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
