package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel_pms/internal/adapters/genai"
	httpserver "hostel_pms/internal/adapters/http_server"
	"hostel_pms/internal/adapters/tokens"
	"hostel_pms/internal/app"
	"hostel_pms/internal/storage/memory"
	mysqlrepo "hostel_pms/internal/storage/mysql"
)

// newAPI wires the whole API in mock mode on the seeded demo property.
func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	return newAPIWith(t, httpserver.Options{RequestTimeout: 5 * time.Second})
}

func newAPIWith(t *testing.T, o httpserver.Options) *httptest.Server {
	t.Helper()
	st := memory.NewSeeded()
	tk := tokens.NewService("test-secret", time.Hour)
	srv := httpserver.New(o)
	srv.MountHandlers(&httpserver.Handlers{
		Store:  st,
		Auth:   app.NewAuthService(st, memory.NewSessions(), tk, time.Hour),
		Desk:   app.NewFrontDesk(st),
		Office: app.NewBackOffice(st),
		AI:     app.NewAssistant(st, genai.Mock{}, mysqlrepo.Nop{}),
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path string, body any, hdr ...string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, out
}

func TestHealthz(t *testing.T) {
	ts := newAPI(t)
	res, body := call(t, ts, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestLoginMeLogout(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPost, "/auth/login", map[string]string{"email": "carlos.s@hostel.com", "pass": "nope"})
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "application/problem+json", res.Header.Get("Content-Type"))
	assert.Contains(t, string(body), "Invalid email or password")

	res, body = call(t, ts, http.MethodPost, "/auth/login", map[string]string{"email": "CARLOS.S@hostel.com", "pass": "admin"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var login struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, "S01", login.User["id"])
	assert.NotContains(t, login.User, "password")
	require.NotEmpty(t, login.Token)

	res, body = call(t, ts, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"kind":"staff"`)

	res, _ = call(t, ts, http.MethodPost, "/auth/logout", nil, "Authorization", "Bearer "+login.Token)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = call(t, ts, http.MethodGet, "/auth/me", nil, "Authorization", "Bearer "+login.Token)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = call(t, ts, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGuestLoginWithCPF(t *testing.T) {
	ts := newAPI(t)
	res, body := call(t, ts, http.MethodPost, "/auth/login", map[string]string{"email": "ana.clara@example.com", "pass": "12345678900"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"id":"G01"`)
}

func TestRoomStatus(t *testing.T) {
	ts := newAPI(t)

	res, _ := call(t, ts, http.MethodPut, "/rooms/99/status", map[string]string{"status": "Cleaning"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = call(t, ts, http.MethodPut, "/rooms/abc/status", map[string]string{"status": "Cleaning"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = call(t, ts, http.MethodPut, "/rooms/2/status", map[string]string{"status": "Haunted"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body := call(t, ts, http.MethodPut, "/rooms/2/status", map[string]string{"status": "Maintenance"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"status":"Maintenance"`)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	ts := newAPI(t)
	res, body := call(t, ts, http.MethodPost, "/guests", "{not json")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, string(body), `"status":400`)

	res, _ = call(t, ts, http.MethodPost, "/auth/login", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBookingWithNewGuest(t *testing.T) {
	ts := newAPI(t)
	res, body := call(t, ts, http.MethodPost, "/bookings/new-guest", map[string]any{
		"booking": map[string]any{"roomId": 2, "checkIn": "2025-05-01", "checkOut": "2025-05-03", "numGuests": 1, "ratePlanId": "RP01"},
		"guest":   map[string]any{"fullName": "Nina Park", "email": "nina@example.com", "phone": "+55", "cpf": "111", "password": "pw"},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))

	var out struct {
		Booking struct {
			ID      string  `json:"id"`
			GuestID string  `json:"guestId"`
			Total   float64 `json:"totalPrice"`
			Source  string  `json:"source"`
		} `json:"booking"`
		Guest map[string]any `json:"guest"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, out.Guest["id"], out.Booking.GuestID)
	assert.NotEqual(t, out.Booking.ID, out.Booking.GuestID)
	assert.Equal(t, 200.0, out.Booking.Total)
	assert.Equal(t, "Website", out.Booking.Source)
	assert.NotContains(t, out.Guest, "password")

	// the new guest can log in straight away
	res, _ = call(t, ts, http.MethodPost, "/auth/login", map[string]string{"email": "nina@example.com", "pass": "pw"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestReviewModeration(t *testing.T) {
	ts := newAPI(t)

	res, _ := call(t, ts, http.MethodPost, "/reviews/R99/approve", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body := call(t, ts, http.MethodPost, "/reviews/R02/approve", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"status":"Approved"`)
}

func TestBackOfficeRoutes(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPost, "/tasks", map[string]any{"description": "Restock towels", "assigneeId": "S01"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	var task struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &task))
	assert.Equal(t, "Todo", task.Status)

	res, body = call(t, ts, http.MethodPost, "/tasks/"+task.ID+"/reject", map[string]string{"comment": "photos missing"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), "photos missing")

	res, body = call(t, ts, http.MethodPost, "/products/P002/adjust-stock", map[string]int{"delta": -20})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(body))

	res, _ = call(t, ts, http.MethodDelete, "/expenses/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = call(t, ts, http.MethodPost, "/chat/messages", map[string]any{
		"guestName": "Walk-in", "source": "WhatsApp", "senderId": "guest-1", "senderName": "Walk-in", "text": "Is breakfast included?",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	var chat struct {
		Message      struct{ ConversationID string } `json:"message"`
		Conversation struct {
			ID     string `json:"id"`
			Unread bool   `json:"unread"`
		} `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(body, &chat))
	assert.True(t, chat.Conversation.Unread)
	assert.Equal(t, chat.Conversation.ID, chat.Message.ConversationID)

	res, body = call(t, ts, http.MethodPost, "/chat/conversations/"+chat.Conversation.ID+"/read", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"unread":false`)
}

func TestSaleBeyondStockIsRejected(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPost, "/transactions", map[string]any{
		"items":         []map[string]any{{"productId": "P001", "quantity": 55, "unitPrice": 15}},
		"paymentMethod": "Cash",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, string(body))

	res, body = call(t, ts, http.MethodGet, "/initial-data", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), `"stock":50`)
}

func TestGuestPortalRoutes(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPost, "/bookings/B01/service-requests", map[string]string{"type": "Manutenção", "details": "Shower is cold"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"bookingId":"B01"`)

	res, body = call(t, ts, http.MethodPost, "/bookings/B01/room-service", map[string]any{
		"items": []map[string]any{{"productId": "P001", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	var order struct {
		Transaction struct {
			Total         float64 `json:"total"`
			PaymentMethod string  `json:"paymentMethod"`
		} `json:"transaction"`
		Booking struct {
			Balance float64 `json:"balance"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Equal(t, 15.0, order.Transaction.Total)
	assert.Equal(t, "Room Account", order.Transaction.PaymentMethod)
	assert.Equal(t, 15.0, order.Booking.Balance)

	res, body = call(t, ts, http.MethodPost, "/chat/website", map[string]string{"name": "Lucas", "text": "Hi!"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"source":"Website"`)

	res, body = call(t, ts, http.MethodPost, "/chat/internal", map[string]string{"staffId": "S01", "peerId": "S02"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"isInternal":true`)
}

func TestManagementRoutes(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPut, "/rate-plans", map[string]any{"name": "Early bird", "modifierType": "percentage", "priceModifier": -15})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	var rp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &rp))
	require.NotEmpty(t, rp.ID)

	res, _ = call(t, ts, http.MethodDelete, "/rate-plans/"+rp.ID, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	res, _ = call(t, ts, http.MethodDelete, "/rate-plans/RP01", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = call(t, ts, http.MethodPut, "/restrictions", map[string]any{"name": "New Year", "type": "minStay", "value": 3, "startDate": "2026-12-28", "endDate": "2027-01-02"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	res, body = call(t, ts, http.MethodPost, "/ota/Booking.com/connect", map[string]string{"propertyId": "bk-88"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"connected":true`)

	res, body = call(t, ts, http.MethodPost, "/shopping-list/items", map[string]string{"name": "Beer", "productId": "P001"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
	res, body = call(t, ts, http.MethodPost, "/products/receive", []map[string]any{{"productId": "P001", "quantity": 12}})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), `"stock":62`)

	res, body = call(t, ts, http.MethodPut, "/settings/facilities", []map[string]string{{"title": "Sauna"}})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), "Sauna")
	res, _ = call(t, ts, http.MethodPut, "/settings/colors", map[string]string{"a": "b"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = call(t, ts, http.MethodPut, "/staff/S02/onboarding-plan", map[string]any{"steps": []string{"Tour"}})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	res, body = call(t, ts, http.MethodPost, "/marketing/media", map[string]string{"type": "image", "url": "https://cdn.example/x.jpg"})
	require.Equal(t, http.StatusCreated, res.StatusCode, string(body))
}

func TestInitialDataETag(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodGet, "/initial-data", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	etag := res.Header.Get("ETag")
	require.NotEmpty(t, etag)

	var out struct {
		DB struct {
			Rooms []json.RawMessage `json:"rooms"`
		} `json:"db"`
		Notifications []any  `json:"notifications"`
		AIMode        string `json:"aiMode"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Len(t, out.DB.Rooms, 3)
	assert.NotNil(t, out.Notifications)
	assert.Equal(t, "mock", out.AIMode)
	assert.NotContains(t, string(body), `"password"`)

	res, body = call(t, ts, http.MethodGet, "/initial-data", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, res.StatusCode)
	assert.Empty(t, body)

	// a write changes the representation
	call(t, ts, http.MethodPut, "/rooms/2/status", map[string]string{"status": "Cleaning"})
	res, _ = call(t, ts, http.MethodGet, "/initial-data", nil, "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	ts := newAPI(t)
	res, _ := call(t, ts, http.MethodOptions, "/rooms/1/status", nil,
		"Origin", "http://localhost:5173",
		"Access-Control-Request-Method", http.MethodPut,
	)
	assert.Less(t, res.StatusCode, 300)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
}

func TestCORSCredentialsOnlyForExplicitOrigins(t *testing.T) {
	ts := newAPIWith(t, httpserver.Options{CORSOrigins: []string{"https://hostel.example", " http://localhost:5173"}})
	res, _ := call(t, ts, http.MethodGet, "/healthz", nil, "Origin", "http://localhost:5173")
	assert.Equal(t, "http://localhost:5173", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", res.Header.Get("Access-Control-Allow-Credentials"))

	res, _ = call(t, ts, http.MethodGet, "/healthz", nil, "Origin", "https://evil.example")
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Origin"))

	ts = newAPIWith(t, httpserver.Options{CORSOrigins: []string{"*", "https://hostel.example"}})
	res, _ = call(t, ts, http.MethodGet, "/healthz", nil, "Origin", "https://hostel.example")
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, res.Header.Get("Access-Control-Allow-Credentials"))
}

// syncBuffer is written by the server goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Clone(b.buf.Bytes())
}

func TestAccessLogUsesForwardedClient(t *testing.T) {
	var buf syncBuffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	ts := newAPI(t)
	res, _ := call(t, ts, http.MethodGet, "/healthz", nil, "X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	require.Equal(t, http.StatusOK, res.StatusCode)

	var line struct {
		Msg    string `json:"message"`
		Route  string `json:"route"`
		Status int    `json:"status"`
		Remote string `json:"remote"`
	}
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		require.NoError(t, json.Unmarshal(raw, &line), string(raw))
		if line.Msg == "http_request" {
			break
		}
	}
	require.Equal(t, "http_request", line.Msg, string(buf.Bytes()))
	assert.Equal(t, "/healthz", line.Route)
	assert.Equal(t, http.StatusOK, line.Status)
	assert.Equal(t, "203.0.113.7", line.Remote)
}

func TestAIOperationsInMockMode(t *testing.T) {
	ts := newAPI(t)

	for _, op := range app.Operations() {
		res, body := call(t, ts, http.MethodPost, "/ai/"+op, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "%s: %s", op, body)
		assert.True(t, json.Valid(body), op)
	}

	res, body := call(t, ts, http.MethodPost, "/ai/campaign-anomalies", map[string]any{"campaigns": []any{}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"anomalies":[]}`, string(body))

	res, _ = call(t, ts, http.MethodPost, "/ai/teleport", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = call(t, ts, http.MethodGet, "/ai/operations", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "daily-briefing")

	res, body = call(t, ts, http.MethodPost, "/ai/generate-image", map[string]string{"prompt": "sunset over the hostel"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "null", string(bytes.TrimSpace(body)))

	res, body = call(t, ts, http.MethodGet, "/ai/invocations?limit=5", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", string(bytes.TrimSpace(body)))

	res, _ = call(t, ts, http.MethodGet, "/ai/invocations?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestConciergeAndSynapse(t *testing.T) {
	ts := newAPI(t)

	res, body := call(t, ts, http.MethodPost, "/ai/concierge/G01/message", map[string]string{"message": "Where can I surf?"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), "API key not configured")

	res, _ = call(t, ts, http.MethodPost, "/ai/concierge/G99/message", map[string]string{"message": "hi"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res, _ = call(t, ts, http.MethodPost, "/ai/concierge/G01/message", map[string]string{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = call(t, ts, http.MethodPost, "/ai/synapse/command", map[string]string{"command": "close room 3", "userId": "S02", "userName": "Camila"})
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.Contains(t, string(body), "real execution is not implemented")

	_, body = call(t, ts, http.MethodGet, "/initial-data", nil)
	var out struct {
		DB struct {
			Guests []struct {
				ID      string            `json:"id"`
				History []json.RawMessage `json:"conciergeChatHistory"`
			} `json:"guests"`
			Synapse []json.RawMessage `json:"synapseChatHistory"`
		} `json:"db"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	for _, g := range out.DB.Guests {
		if g.ID == "G01" {
			assert.Len(t, g.History, 2)
		}
	}
	assert.NotEmpty(t, out.DB.Synapse)
}
