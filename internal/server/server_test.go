package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/clock"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/core"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/query"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/server"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/testutil"
)

var (
	admin     = uuid.MustParse("00000000-0000-0000-0000-00000000ad31")
	organizer = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	alice     = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob       = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

func newTestServer() (http.Handler, *testutil.FakeTreasury) {
	treasury := testutil.NewFakeTreasury()
	clk := clock.NewFixed(time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC))
	c := core.NewCore(admin, treasury, clk, nil, nil, nil)
	dispatcher := core.NewDispatcher(c, nil)
	queries := query.NewQueryService(dispatcher, nil, nil)
	health := observability.NewHealthChecker()
	health.SetReady(true)

	srv := server.New(dispatcher, queries, health, zerolog.Nop())
	return srv.Handler(), treasury
}

func doJSON(t *testing.T, h http.Handler, method, path string, as uuid.UUID, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != uuid.Nil {
		req.Header.Set("X-Account-ID", as.String())
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func createEvent(t *testing.T, h http.Handler, price int64, total uint32) uint64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/v1/events", organizer, map[string]any{
		"name":          "Rustfest Lisbon",
		"price":         price,
		"total_tickets": total,
		"metadata_cid":  "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(t, rec)["event_id"].(float64))
}

func buyTicket(t *testing.T, h http.Handler, as uuid.UUID, eventID uint64, payment int64) uint64 {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/tickets", eventID), as, map[string]any{"payment": payment})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return uint64(decode(t, rec)["ticket_id"].(float64))
}

func TestCreateAndGetEvent(t *testing.T) {
	h, _ := newTestServer()

	evID := createEvent(t, h, 500, 100)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/v1/events/%d", evID), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Rustfest Lisbon", body["name"])
	assert.Equal(t, float64(500), body["price"])
	assert.Equal(t, float64(100), body["available_tickets"])
	assert.Equal(t, float64(0), body["tickets_sold"])
	assert.Equal(t, organizer.String(), body["organizer"])
	assert.Equal(t, "active", body["status"])
}

func TestCreateEventRequiresIdentity(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/v1/events", uuid.Nil, map[string]any{
		"name": "x", "price": 1, "total_tickets": 1, "metadata_cid": "c",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEventInvalidInput(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/v1/events", organizer, map[string]any{
		"name": "", "price": 500, "total_tickets": 100, "metadata_cid": "c",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBuyTicketFlow(t *testing.T) {
	h, _ := newTestServer()
	evID := createEvent(t, h, 500, 3)

	tkID := buyTicket(t, h, alice, evID, 500)

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/v1/tickets/%d", tkID), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, alice.String(), body["owner"])
	assert.Equal(t, "valid", body["status"])

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/v1/events/%d/escrow", evID), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(500), decode(t, rec)["balance"])

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/v1/accounts/%s/tickets", alice), uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["ticket_ids"], 1)
}

func TestBuyTicketErrors(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodPost, "/v1/events/42/tickets", alice, map[string]any{"payment": 500})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	evID := createEvent(t, h, 500, 1)
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/tickets", evID), alice, map[string]any{"payment": 499})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	buyTicket(t, h, alice, evID, 500)
	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/tickets", evID), bob, map[string]any{"payment": 500})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTransferTicket(t *testing.T) {
	h, _ := newTestServer()
	evID := createEvent(t, h, 500, 5)
	tkID := buyTicket(t, h, alice, evID, 500)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/transfer", tkID), bob, map[string]any{"to": bob})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/transfer", tkID), alice, map[string]any{"to": bob})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, fmt.Sprintf("/v1/tickets/%d", tkID), uuid.Nil, nil)
	assert.Equal(t, bob.String(), decode(t, rec)["owner"])
}

func TestUseTicketAuthorization(t *testing.T) {
	h, _ := newTestServer()
	evID := createEvent(t, h, 500, 5)
	tkID := buyTicket(t, h, alice, evID, 500)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/use", tkID), alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/use", tkID), organizer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "used", decode(t, rec)["status"])

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/use", tkID), admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRefundAfterEventCancellation(t *testing.T) {
	h, treasury := newTestServer()
	evID := createEvent(t, h, 500, 5)
	tkID := buyTicket(t, h, alice, evID, 500)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/refund", tkID), alice, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "refund on an active event")

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/cancel", evID), organizer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/refund", tkID), alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(500), treasury.TotalPaid(alice))

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/refund", tkID), alice, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "double refund")
}

func TestWithdrawEarnings(t *testing.T) {
	h, treasury := newTestServer()
	evID := createEvent(t, h, 500, 5)
	buyTicket(t, h, alice, evID, 500)
	buyTicket(t, h, bob, evID, 500)

	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/withdraw", evID), organizer, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "withdraw before completion")

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/complete", evID), organizer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/withdraw", evID), alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/withdraw", evID), organizer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1000), decode(t, rec)["amount"])
	assert.Equal(t, int64(1000), treasury.TotalPaid(organizer))

	rec = doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/withdraw", evID), organizer, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "second withdrawal")
}

func TestTransferFailureMapsToBadGateway(t *testing.T) {
	h, treasury := newTestServer()
	evID := createEvent(t, h, 500, 5)
	tkID := buyTicket(t, h, alice, evID, 500)
	doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/events/%d/cancel", evID), organizer, nil)

	treasury.FailNext = true
	rec := doJSON(t, h, http.MethodPost, fmt.Sprintf("/v1/tickets/%d/refund", tkID), alice, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestStatsAndAdmin(t *testing.T) {
	h, _ := newTestServer()
	evID := createEvent(t, h, 500, 5)
	buyTicket(t, h, alice, evID, 500)

	rec := doJSON(t, h, http.MethodGet, "/v1/stats", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, float64(1), body["total_events"])
	assert.Equal(t, float64(1), body["total_tickets"])

	rec = doJSON(t, h, http.MethodGet, "/v1/admin", uuid.Nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.String(), decode(t, rec)["admin"])
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestServer()

	rec := doJSON(t, h, http.MethodGet, "/healthz", uuid.Nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/readyz", uuid.Nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
