package realtime

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/store"
)

// Client-to-server events.
const (
	EventRequestDashboard    = "request_dashboard"
	EventToggleStatus        = "toggle_status"
	EventUpdateContestSolved = "update_contest_solved"
)

// Server-to-client events.
const (
	EventDashboardSync          = "dashboard_sync"
	EventStatusUpdated          = "status_updated"
	EventContestProgressUpdated = "contest_progress_updated"
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type dashboardRequest struct {
	Category string `json:"category"`
}

type togglePayload struct {
	QuestionID uint   `json:"question_id"`
	UserField  string `json:"user_field"`
	Completed  bool   `json:"completed"`
}

type contestPayload struct {
	ContestID uint   `json:"contest_id"`
	UserField string `json:"user_field"`
	Solved    int    `json:"solved"`
}

// Handler owns the websocket side of the tracker: it joins clients to
// category rooms, applies mutations and fans the results back out.
type Handler struct {
	store  *store.Store
	cfg    *config.Config
	hub    *Hub
	logger *log.Logger
}

func NewHandler(st *store.Store, cfg *config.Config, hub *Hub, logger *log.Logger) *Handler {
	return &Handler{store: st, cfg: cfg, hub: hub, logger: logger}
}

// Hub exposes the room hub, mainly for tests driving broadcasts directly.
func (h *Handler) Hub() *Hub {
	return h.hub
}

// Upgrade gates /ws requests so only websocket upgrades reach Serve.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve runs one connection's session: join the requested category, push an
// initial snapshot, then process events until the peer goes away. Each event
// runs to completion before the next read, so a single connection never
// interleaves two mutations.
func (h *Handler) Serve(conn *websocket.Conn) {
	client := newClient(conn)
	defer func() {
		h.hub.Remove(client)
		_ = conn.Close()
	}()

	category := models.ResolveCategory(conn.Query("category"))
	h.hub.Join(category, client)
	if err := h.sendDashboard(client, category); err != nil {
		return
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			// Fire-and-forget channel: malformed input gets no reply.
			continue
		}

		switch frame.Event {
		case EventRequestDashboard:
			h.handleDashboardRequest(client, frame.Data)
		case EventToggleStatus:
			h.handleToggle(frame.Data)
		case EventUpdateContestSolved:
			h.handleContestUpdate(frame.Data)
		}
	}
}

// dashboardPayload builds the snapshot message for one category.
func (h *Handler) dashboardPayload(category models.Category) (map[string]interface{}, error) {
	dashboard, err := services.DashboardFor(h.store, category)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"dashboard":     dashboard,
		"user_one_name": h.cfg.UserOneName,
		"user_two_name": h.cfg.UserTwoName,
		"category":      category,
	}, nil
}

func (h *Handler) sendDashboard(client *Client, category models.Category) error {
	payload, err := h.dashboardPayload(category)
	if err != nil {
		h.logger.Printf("dashboard snapshot for %s failed: %v", category, err)
		return err
	}
	return client.Send(EventDashboardSync, payload)
}

func (h *Handler) handleDashboardRequest(client *Client, data json.RawMessage) {
	var req dashboardRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			return
		}
	}

	category := models.ResolveCategory(req.Category)
	h.hub.Join(category, client)
	_ = h.sendDashboard(client, category)
}

func (h *Handler) handleToggle(data json.RawMessage) {
	var payload togglePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.QuestionID == 0 || !models.ValidUserField(payload.UserField) {
		return
	}

	question, err := services.ToggleQuestionStatus(h.store, payload.QuestionID, payload.UserField, payload.Completed)
	if err != nil {
		h.logger.Printf("toggle question %d failed: %v", payload.QuestionID, err)
		return
	}
	if question == nil {
		return
	}

	category := models.ResolveCategory(question.Category)
	h.hub.Broadcast(category, EventStatusUpdated, map[string]interface{}{
		"question":   question,
		"user_field": payload.UserField,
		"category":   category,
	})
	h.broadcastDashboard(category)
}

func (h *Handler) handleContestUpdate(data json.RawMessage) {
	var payload contestPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}
	if payload.ContestID == 0 || !models.ValidUserField(payload.UserField) {
		return
	}

	contest, err := services.UpdateContestSolved(h.store, payload.ContestID, payload.UserField, payload.Solved)
	if err != nil {
		h.logger.Printf("contest update %d failed: %v", payload.ContestID, err)
		return
	}
	if contest == nil {
		return
	}

	category := models.CategoryContest
	dashboard, err := h.dashboardPayload(category)
	if err != nil {
		return
	}
	update := map[string]interface{}{
		"contest":    contest,
		"user_field": payload.UserField,
	}
	for key, value := range dashboard {
		update[key] = value
	}
	h.hub.Broadcast(category, EventContestProgressUpdated, update)
	h.hub.Broadcast(category, EventDashboardSync, dashboard)
}

// broadcastDashboard recomputes and fans out a category's snapshot. Every
// subscriber gets the same payload, so all of them converge on one state
// regardless of who toggled.
func (h *Handler) broadcastDashboard(category models.Category) {
	payload, err := h.dashboardPayload(category)
	if err != nil {
		h.logger.Printf("dashboard broadcast for %s failed: %v", category, err)
		return
	}
	h.hub.Broadcast(category, EventDashboardSync, payload)
}
