package handlers

import (
	"log/slog"
	"net/http"
	"nursery-locator/internal/adapters/geolocation"
	"nursery-locator/internal/api/dto"
	"nursery-locator/internal/domain"
	"nursery-locator/internal/platform/obs"
	"nursery-locator/internal/services"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type SessionHandler struct {
	Locator  *services.Locator
	Hub      *ViewHub
	Upgrader websocket.Upgrader
}

// Create resolves the posted geolocation once and opens a session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if !decodeJSON(w, r, &req, decodeOptions{allowEmpty: true, allowUnknown: true}) {
		return
	}

	s, view, err := h.Locator.StartSession(r.Context(), geolocation.RequestReading{Reading: req.Reading()})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/sessions/"+s.ID+"/view")
	writeJSON(w, r, http.StatusCreated, dto.NewSessionResponse(s, view))
}

func (h *SessionHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.Locator.View(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewViewResponse(view))
}

// Click records the tooltip the map reported and returns the new view.
func (h *SessionHandler) Click(w http.ResponseWriter, r *http.Request) {
	var req dto.ClickRequest
	if !decodeJSON(w, r, &req, decodeOptions{}) {
		return
	}

	identifier := ""
	if req.Tooltip != nil {
		identifier = *req.Tooltip
	}

	_, view, err := h.Locator.Click(r.Context(), mux.Vars(r)["id"], identifier)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewViewResponse(view))
}

// Stream upgrades to a websocket, sends the current view and then every
// view rendered after a click on this session.
func (h *SessionHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	// Unknown sessions get a JSON 404 before the upgrade.
	if _, err := h.Locator.View(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(r.Context(), "websocket upgrade failed", "req_id", obs.RequestID(r.Context()), "err", err)
		return
	}

	current := func() (domain.View, error) { return h.Locator.View(r.Context(), id) }
	if err := h.Hub.Subscribe(id, conn, current); err != nil {
		slog.WarnContext(r.Context(), "websocket initial view failed", "session", id, "err", err)
		conn.Close()
		return
	}
	slog.InfoContext(r.Context(), "websocket connected", "session", id)

	defer func() {
		h.Hub.Unsubscribe(id, conn)
		slog.Info("websocket disconnected", "session", id)
	}()

	// Inbound frames are ignored; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
