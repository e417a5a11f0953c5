package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "blockpass-backend/context"
	"blockpass-backend/issuer"
	"blockpass-backend/registry"
	"blockpass-backend/response"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type services struct {
	registry *registry.Service
	issuer   *issuer.Service
	issuerID uint64
}

func newServices(t *testing.T) services {
	t.Helper()

	issuerSvc := issuer.NewService(issuer.NewMemoryStore())
	issuerID, err := issuerSvc.Register(context.Background(), "BlockPassNFT", "BPNT")
	require.NoError(t, err)

	return services{
		registry: registry.NewService(registry.NewMemoryStore(), issuerSvc, nil),
		issuer:   issuerSvc,
		issuerID: issuerID,
	}
}

func doRequest(h http.HandlerFunc, method, body, caller string, vars map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if caller != "" {
		req = req.WithContext(c.SetContextWithValue(req.Context(), c.ContextKeyCaller, caller))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) response.Data {
	t.Helper()

	var resp struct {
		Data response.Data `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Data
}

func createEventBody(price string, maxTickets, issuerID uint64) string {
	return `{"data":{"details":{"title":"Concert","date":"2024-12-01","location":"Stadium","ticket_price":"` + price + `","max_tickets":` + itoa(maxTickets) + `},"issuer_id":` + itoa(issuerID) + `}}`
}

func itoa(v uint64) string {
	data, _ := json.Marshal(v)
	return string(data)
}

func TestCreateEventHandler(t *testing.T) {
	s := newServices(t)

	w := doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint64(1), decodeData(t, w).EventID)

	ev, ok, err := s.registry.Event(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "host-1", ev.Host)
	assert.True(t, ev.Active)
}

func TestCreateEventHandler_BadBody(t *testing.T) {
	s := newServices(t)

	w := doRequest(CreateEvent(s.registry), http.MethodPost, "{not json", "host-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseTicketHandler(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 1, s.issuerID), "host-1", nil)

	vars := map[string]string{"eventID": "1"}

	w := doRequest(PurchaseTicket(s.registry), http.MethodPost, `{"data":{"token_uri":"uri-1","payment_amount":"1000"}}`, "alice", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotNil(t, data.Purchase)
	assert.True(t, data.Purchase.Success)

	attendees := decodeData(t, doRequest(GetEventAttendees(s.registry), http.MethodGet, "", "alice", vars)).Attendees
	assert.Equal(t, []string{"alice"}, attendees)

	// Capacity is exhausted; the second buyer gets success=false, not an error.
	w = doRequest(PurchaseTicket(s.registry), http.MethodPost, `{"data":{"token_uri":"uri-2","payment_amount":"1000"}}`, "bob", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.NotNil(t, data.Purchase)
	assert.False(t, data.Purchase.Success)
}

func TestPurchaseTicketHandler_InsufficientPayment(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)

	vars := map[string]string{"eventID": "1"}
	w := doRequest(PurchaseTicket(s.registry), http.MethodPost, `{"data":{"token_uri":"uri","payment_amount":"500"}}`, "alice", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotNil(t, data.Purchase)
	assert.False(t, data.Purchase.Success)

	data = decodeData(t, doRequest(GetEventAttendees(s.registry), http.MethodGet, "", "alice", vars))
	assert.Empty(t, data.Attendees)
}

func TestDeactivateEventHandler(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)

	vars := map[string]string{"eventID": "1"}

	w := doRequest(DeactivateEvent(s.registry), http.MethodDelete, "", "mallory", vars)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotNil(t, data.Deactivate)
	assert.False(t, data.Deactivate.Success)

	w = doRequest(DeactivateEvent(s.registry), http.MethodDelete, "", "host-1", vars)
	data = decodeData(t, w)
	require.NotNil(t, data.Deactivate)
	assert.True(t, data.Deactivate.Success)

	ev := decodeData(t, doRequest(GetEvent(s.registry), http.MethodGet, "", "host-1", vars)).Event
	require.NotNil(t, ev)
	assert.False(t, ev.Active)
}

func TestGetEventDetailsHandler(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)

	w := doRequest(GetEventDetails(s.registry), http.MethodGet, "", "alice", map[string]string{"eventID": "1"})
	assert.Equal(t, http.StatusOK, w.Code)
	details := decodeData(t, w).Details
	require.NotNil(t, details)
	assert.Equal(t, "Concert", details.Title)
	assert.Equal(t, uint64(100), details.MaxTickets)

	w = doRequest(GetEventDetails(s.registry), http.MethodGet, "", "alice", map[string]string{"eventID": "9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventHandler_NotFound(t *testing.T) {
	s := newServices(t)

	w := doRequest(GetEvent(s.registry), http.MethodGet, "", "alice", map[string]string{"eventID": "7"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEventHandler_InvalidID(t *testing.T) {
	s := newServices(t)

	w := doRequest(GetEvent(s.registry), http.MethodGet, "", "alice", map[string]string{"eventID": "seven"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTicketIssuerHandler(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)

	w := doRequest(GetTicketIssuer(s.registry), http.MethodGet, "", "alice", map[string]string{"eventID": "1"})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.NotNil(t, data.IssuerID)
	assert.Equal(t, s.issuerID, *data.IssuerID)
}

func TestGetRegisteredEventsHandler(t *testing.T) {
	s := newServices(t)
	doRequest(CreateEvent(s.registry), http.MethodPost, createEventBody("1000", 100, s.issuerID), "host-1", nil)

	w := doRequest(GetRegisteredEvents(s.registry), http.MethodGet, "", "alice", map[string]string{"caller": "alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	doRequest(PurchaseTicket(s.registry), http.MethodPost, `{"data":{"token_uri":"uri","payment_amount":"1000"}}`, "alice", map[string]string{"eventID": "1"})

	w = doRequest(GetRegisteredEvents(s.registry), http.MethodGet, "", "alice", map[string]string{"caller": "alice"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint64{1}, decodeData(t, w).EventIDs)
}
