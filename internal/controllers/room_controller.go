package controllers

import (
	"net/http"

	"github.com/c0sm0thecoder/scorecard-api/internal/dto"
	"github.com/c0sm0thecoder/scorecard-api/internal/services"
	"github.com/go-chi/chi/v5"
)

const roomNotFound = "Room not found"

type RoomController struct {
	roomService services.RoomService
}

func NewRoomController(roomService services.RoomService) *RoomController {
	return &RoomController{
		roomService: roomService,
	}
}

// RegisterRoutes registers all room-related routes
func (c *RoomController) RegisterRoutes(r chi.Router) {
	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", c.ListRooms)
		r.Post("/", c.CreateRoom)
		r.Get("/by_code", c.GetRoomByCode)
		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", c.GetRoom)
			r.Put("/", c.UpdateRoom)
			r.Patch("/", c.PatchRoom)
			r.Delete("/", c.DeleteRoom)
			r.Post("/join", c.JoinRoom)
		})
	})
}

// ListRooms returns every room, newest first
func (c *RoomController) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.roomService.ListRooms(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRoomResponses(rooms))
}

// CreateRoom handles room creation requests
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := c.roomService.CreateRoom(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewRoomCreatedResponse(*room))
}

// GetRoomByCode retrieves an active room by its join code
func (c *RoomController) GetRoomByCode(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Room code is required")
		return
	}

	room, err := c.roomService.GetRoomByCode(r.Context(), code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRoomResponse(*room))
}

func (c *RoomController) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "roomID", roomNotFound)
	if !ok {
		return
	}
	room, err := c.roomService.GetRoom(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRoomResponse(*room))
}

func (c *RoomController) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	c.updateRoom(w, r, false)
}

func (c *RoomController) PatchRoom(w http.ResponseWriter, r *http.Request) {
	c.updateRoom(w, r, true)
}

func (c *RoomController) updateRoom(w http.ResponseWriter, r *http.Request, partial bool) {
	id, ok := pathID(w, r, "roomID", roomNotFound)
	if !ok {
		return
	}
	var req dto.UpdateRoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	room, err := c.roomService.UpdateRoom(r.Context(), id, req, partial)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewRoomResponse(*room))
}

// DeleteRoom removes the room together with its players and scores
func (c *RoomController) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "roomID", roomNotFound)
	if !ok {
		return
	}
	if err := c.roomService.DeleteRoom(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// JoinRoom answers 201 for a new player and 200 when an active player with
// the same name was already in the room
func (c *RoomController) JoinRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "roomID", roomNotFound)
	if !ok {
		return
	}
	var req dto.JoinRoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	player, created, err := c.roomService.JoinRoom(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.NewPlayerResponse(*player))
}
