package realtime

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"project/backend/config"
	"project/backend/models"
	"project/backend/store"
)

// fakeConn records frames instead of writing to a socket.
type fakeConn struct {
	mu     sync.Mutex
	frames []Frame
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, v.(Frame))
	return nil
}

func (f *fakeConn) recorded() []Frame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Frame(nil), f.frames...)
}

func (f *fakeConn) events() []string {
	var events []string
	for _, frame := range f.recorded() {
		events = append(events, frame.Event)
	}
	return events
}

func newTestHandler(t *testing.T) (*Handler, *store.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.AutoMigrate())

	cfg := &config.Config{UserOneName: "You", UserTwoName: "Friend"}
	logger := log.New(io.Discard, "", 0)
	return NewHandler(st, cfg, NewHub(), logger), st
}

func joinFake(h *Handler, category models.Category) (*fakeConn, *Client) {
	conn := &fakeConn{}
	client := newClient(conn)
	h.hub.Join(category, client)
	return conn, client
}

func TestToggleBroadcastConverges(t *testing.T) {
	h, st := newTestHandler(t)

	question := models.Question{Category: "binary_search", Day: 1, Title: "Search X", Difficulty: "Easy"}
	require.NoError(t, st.UpsertQuestion(&question))

	actor, _ := joinFake(h, models.CategoryBinarySearch)
	observer, _ := joinFake(h, models.CategoryBinarySearch)
	outsider, _ := joinFake(h, models.CategoryDefault)

	raw, _ := json.Marshal(togglePayload{QuestionID: question.ID, UserField: models.UserOne, Completed: true})
	h.handleToggle(raw)

	assert.Equal(t, []string{EventStatusUpdated, EventDashboardSync}, actor.events())
	assert.Equal(t, actor.recorded(), observer.recorded(), "every subscriber converges on the same payloads")
	assert.Empty(t, outsider.recorded(), "other categories hear nothing")

	// The broadcast dashboard reflects the mutation.
	syncFrame := actor.recorded()[1]
	data := syncFrame.Data.(map[string]interface{})
	dashboard := data["dashboard"].(models.Dashboard)
	assert.Equal(t, 1, dashboard.UserOne.Completed)
	assert.Equal(t, 0, dashboard.UserTwo.Completed)
	assert.Equal(t, models.CategoryBinarySearch, data["category"])
	assert.Equal(t, "You", data["user_one_name"])
	assert.Equal(t, "Friend", data["user_two_name"])
}

func TestToggleInvalidPayloadIsDropped(t *testing.T) {
	h, st := newTestHandler(t)

	question := models.Question{Category: "striver", Day: 1, Title: "A"}
	require.NoError(t, st.UpsertQuestion(&question))

	conn, _ := joinFake(h, models.CategoryDefault)

	h.handleToggle(json.RawMessage(`{"question_id": 0, "user_field": "user_one", "completed": true}`))
	h.handleToggle(json.RawMessage(`{"question_id": 1, "user_field": "user_three", "completed": true}`))
	h.handleToggle(json.RawMessage(`not json`))

	// Unresolved ids are equally silent.
	raw, _ := json.Marshal(togglePayload{QuestionID: question.ID + 100, UserField: models.UserOne, Completed: true})
	h.handleToggle(raw)

	assert.Empty(t, conn.recorded(), "invalid events are fire-and-forget")

	stored, err := st.FindQuestionByID(question.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status.UserOne)
}

func TestDashboardRequestRepliesToRequesterOnly(t *testing.T) {
	h, _ := newTestHandler(t)

	requester := &fakeConn{}
	client := newClient(requester)
	bystander, _ := joinFake(h, models.CategoryBinarySearch)

	h.handleDashboardRequest(client, json.RawMessage(`{"category": "binary_search"}`))

	require.Equal(t, []string{EventDashboardSync}, requester.events())
	data := requester.recorded()[0].Data.(map[string]interface{})
	assert.Equal(t, models.CategoryBinarySearch, data["category"])
	assert.Empty(t, bystander.recorded())
}

func TestDashboardRequestUnknownCategoryFallsBack(t *testing.T) {
	h, _ := newTestHandler(t)

	requester := &fakeConn{}
	client := newClient(requester)

	h.handleDashboardRequest(client, json.RawMessage(`{"category": "no_such_sheet"}`))

	require.Len(t, requester.recorded(), 1)
	data := requester.recorded()[0].Data.(map[string]interface{})
	assert.Equal(t, models.CategoryDefault, data["category"])
}

func TestRoomMembershipIsAdditive(t *testing.T) {
	h, _ := newTestHandler(t)

	conn := &fakeConn{}
	client := newClient(conn)

	h.handleDashboardRequest(client, json.RawMessage(`{"category": "striver"}`))
	h.handleDashboardRequest(client, json.RawMessage(`{"category": "binary_search"}`))

	h.hub.Broadcast(models.CategoryDefault, "ping", nil)
	h.hub.Broadcast(models.CategoryBinarySearch, "ping", nil)

	events := conn.events()
	pings := 0
	for _, event := range events {
		if event == "ping" {
			pings++
		}
	}
	assert.Equal(t, 2, pings, "a client stays subscribed to every category it requested")
}

func TestContestUpdateBroadcastsClampedEntry(t *testing.T) {
	h, st := newTestHandler(t)

	entry := models.ContestEntry{Category: "contest_tracker", Title: "Weekly 1", MaxProblems: 4, Solved: models.SolvedCount{UserOne: 2}}
	require.NoError(t, st.UpsertContest(&entry))

	conn, _ := joinFake(h, models.CategoryContest)

	raw, _ := json.Marshal(contestPayload{ContestID: entry.ID, UserField: models.UserTwo, Solved: 5})
	h.handleContestUpdate(raw)

	require.Equal(t, []string{EventContestProgressUpdated, EventDashboardSync}, conn.events())

	update := conn.recorded()[0].Data.(map[string]interface{})
	contest := update["contest"].(*models.ContestEntry)
	assert.Equal(t, 4, contest.Solved.UserTwo, "the broadcast carries the clamped value, not the raw request")
	assert.Equal(t, models.UserTwo, update["user_field"])

	syncData := conn.recorded()[1].Data.(map[string]interface{})
	dashboard := syncData["dashboard"].(models.Dashboard)
	assert.Equal(t, 4, dashboard.UserTwo.Completed)
	assert.Equal(t, 2, dashboard.UserOne.Completed)
	require.NotNil(t, dashboard.Meta)
	assert.Equal(t, 1, dashboard.Meta.ContestCount)
}

func TestContestUpdateInvalidInputIsDropped(t *testing.T) {
	h, st := newTestHandler(t)

	entry := models.ContestEntry{Category: "contest_tracker", Title: "Weekly 1", MaxProblems: 4}
	require.NoError(t, st.UpsertContest(&entry))

	conn, _ := joinFake(h, models.CategoryContest)

	h.handleContestUpdate(json.RawMessage(`{"contest_id": 0, "user_field": "user_one", "solved": 2}`))
	h.handleContestUpdate(json.RawMessage(`{"contest_id": 1, "user_field": "nobody", "solved": 2}`))

	assert.Empty(t, conn.recorded())
}

func TestRemoveDropsClientFromEveryRoom(t *testing.T) {
	h, _ := newTestHandler(t)

	conn := &fakeConn{}
	client := newClient(conn)
	h.hub.Join(models.CategoryDefault, client)
	h.hub.Join(models.CategoryContest, client)

	h.hub.Remove(client)

	h.hub.Broadcast(models.CategoryDefault, "ping", nil)
	h.hub.Broadcast(models.CategoryContest, "ping", nil)
	assert.Empty(t, conn.recorded())
}
