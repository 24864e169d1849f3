package controllers

import (
	"net/http"

	"github.com/c0sm0thecoder/scorecard-api/internal/dto"
	"github.com/c0sm0thecoder/scorecard-api/internal/services"
	"github.com/go-chi/chi/v5"
)

const scoreNotFound = "Score not found"

type ScoreController struct {
	scoreService services.ScoreService
}

func NewScoreController(scoreService services.ScoreService) *ScoreController {
	return &ScoreController{
		scoreService: scoreService,
	}
}

// RegisterRoutes registers all score-related routes
func (c *ScoreController) RegisterRoutes(r chi.Router) {
	r.Route("/scores", func(r chi.Router) {
		r.Get("/", c.ListScores)
		r.Post("/", c.RecordScore)
		r.Get("/room_summary", c.RoomSummary)
		r.Route("/{scoreID}", func(r chi.Router) {
			r.Get("/", c.GetScore)
			r.Put("/", c.UpdateScore)
			r.Patch("/", c.PatchScore)
			r.Delete("/", c.DeleteScore)
		})
	})
}

func (c *ScoreController) ListScores(w http.ResponseWriter, r *http.Request) {
	roomID, ok := queryID(w, r, "room_id")
	if !ok {
		return
	}
	scores, err := c.scoreService.ListScores(r.Context(), roomID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewScoreResponses(scores))
}

func (c *ScoreController) RecordScore(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateScoreRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	score, err := c.scoreService.RecordScore(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewScoreResponse(*score))
}

func (c *ScoreController) GetScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "scoreID", scoreNotFound)
	if !ok {
		return
	}
	score, err := c.scoreService.GetScore(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewScoreResponse(*score))
}

func (c *ScoreController) UpdateScore(w http.ResponseWriter, r *http.Request) {
	c.updateScore(w, r, false)
}

func (c *ScoreController) PatchScore(w http.ResponseWriter, r *http.Request) {
	c.updateScore(w, r, true)
}

// updateScore only ever touches score_value and notes; any other field in
// the body is ignored
func (c *ScoreController) updateScore(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(w, r, "scoreID", scoreNotFound)
	if !ok {
		return
	}
	var req dto.UpdateScoreRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	score, err := c.scoreService.UpdateScore(r.Context(), id, req, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewScoreResponse(*score))
}

func (c *ScoreController) DeleteScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "scoreID", scoreNotFound)
	if !ok {
		return
	}
	if err := c.scoreService.DeleteScore(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RoomSummary returns per-player totals and the distinct round count
func (c *ScoreController) RoomSummary(w http.ResponseWriter, r *http.Request) {
	roomID, ok := queryID(w, r, "room_id")
	if !ok {
		return
	}
	if roomID == nil {
		writeError(w, http.StatusBadRequest, "Room ID is required")
		return
	}

	summary, err := c.scoreService.RoomSummary(r.Context(), *roomID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
