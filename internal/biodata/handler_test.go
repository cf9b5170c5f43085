package biodata_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shaadi/internal/biodata"
	"shaadi/internal/biodata/sequence"
	"shaadi/internal/biodata/store"
	"shaadi/pkg/testutil"
)

func newHandlerRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := biodata.NewService(store.NewMemory(), sequence.NewMemory(0), logger)
	h := biodata.NewHandler(svc, logger)

	r := chi.NewRouter()
	r.Post("/biodatas", h.HandleCreate)
	r.Get("/biodatas", h.HandleListOwn)
	r.Get("/allBiodatas/{id}", h.HandleGet)
	r.Put("/biodatas/{id}", h.HandleReplace)
	r.Get("/allBiodatas", h.HandleListPublic)
	return r
}

func createBiodata(t *testing.T, r chi.Router, email, profile string) (string, float64) {
	t.Helper()
	req := testutil.NewRequest(t, http.MethodPost, "/biodatas")
	req.Body = io.NopCloser(strings.NewReader(profile))
	req = testutil.WithIdentity(req, email)

	rr := testutil.DoRequest(r, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	body := testutil.DecodeJSON(t, rr)
	id, _ := body["insertedId"].(string)
	biodataID, _ := body["biodataId"].(float64)
	require.NotEmpty(t, id)
	return id, biodataID
}

func TestHandleCreateAssignsSequentialIDs(t *testing.T) {
	r := newHandlerRouter(t)

	_, first := createBiodata(t, r, "a@example.com", `{"age":30}`)
	_, second := createBiodata(t, r, "b@example.com", `{"age":25}`)

	assert.Equal(t, float64(1), first)
	assert.Equal(t, float64(2), second)
}

func TestHandleCreateUnauthenticated(t *testing.T) {
	r := newHandlerRouter(t)

	req := testutil.NewRequest(t, http.MethodPost, "/biodatas")
	req.Body = io.NopCloser(strings.NewReader(`{}`))
	rr := testutil.DoRequest(r, req)

	testutil.AssertErrorMessage(t, rr, http.StatusUnauthorized, "unauthorized access")
}

func TestHandleCreateMalformedProfile(t *testing.T) {
	r := newHandlerRouter(t)

	req := testutil.NewRequest(t, http.MethodPost, "/biodatas")
	req.Body = io.NopCloser(strings.NewReader(`{not json`))
	req = testutil.WithIdentity(req, "a@example.com")
	rr := testutil.DoRequest(r, req)

	testutil.AssertErrorMessage(t, rr, http.StatusBadRequest, "malformed request body")
}

func TestHandleListOwnDefaultsToCaller(t *testing.T) {
	r := newHandlerRouter(t)
	createBiodata(t, r, "a@example.com", `{}`)
	createBiodata(t, r, "b@example.com", `{}`)

	req := testutil.WithIdentity(testutil.NewRequest(t, http.MethodGet, "/biodatas"), "a@example.com")
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "a@example.com", out[0]["ownerEmail"])
}

func TestHandleListPublicReturnsAll(t *testing.T) {
	r := newHandlerRouter(t)
	createBiodata(t, r, "a@example.com", `{}`)
	createBiodata(t, r, "b@example.com", `{}`)

	rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/allBiodatas"))
	require.Equal(t, http.StatusOK, rr.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out, 2)
}

func TestHandleGet(t *testing.T) {
	r := newHandlerRouter(t)
	id, _ := createBiodata(t, r, "a@example.com", `{"age":30}`)

	req := testutil.WithIdentity(testutil.NewRequest(t, http.MethodGet, "/allBiodatas/"+id), "a@example.com")
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := testutil.DecodeJSON(t, rr)
	assert.Equal(t, id, body["id"])

	req = testutil.WithIdentity(testutil.NewRequest(t, http.MethodGet, "/allBiodatas/not-a-uuid"), "a@example.com")
	rr = testutil.DoRequest(r, req)
	testutil.AssertErrorMessage(t, rr, http.StatusBadRequest, "invalid identifier")
}

func TestHandleReplace(t *testing.T) {
	r := newHandlerRouter(t)
	id, seq := createBiodata(t, r, "a@example.com", `{"age":30}`)

	req := testutil.NewRequest(t, http.MethodPut, "/biodatas/"+id)
	req.Body = io.NopCloser(strings.NewReader(`{"age":31,"city":"Dhaka"}`))
	req = testutil.WithIdentity(req, "a@example.com")
	rr := testutil.DoRequest(r, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), testutil.DecodeJSON(t, rr)["modifiedCount"])

	getReq := testutil.WithIdentity(testutil.NewRequest(t, http.MethodGet, "/allBiodatas/"+id), "a@example.com")
	getRR := testutil.DoRequest(r, getReq)
	body := testutil.DecodeJSON(t, getRR)
	assert.Equal(t, seq, body["biodataId"], "sequential id is immutable")
	profile, _ := body["profile"].(map[string]any)
	assert.Equal(t, "Dhaka", profile["city"])
}
