package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/robustify/gmplot/pkg/pipeline"
	"github.com/robustify/gmplot/pkg/store"
)

func testServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, st, logger)
	runner.MinInterval = 0
	srv := httptest.NewServer(New(runner, st, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func requestBody(points string) *bytes.Buffer {
	return bytes.NewBufferString(fmt.Sprintf(
		`{"center_lat": 37.77, "center_lng": -122.41, "points": %s}`, points))
}

func decodeError(t *testing.T, body io.Reader) (code, message string) {
	t.Helper()
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return resp.Error.Code, resp.Error.Message
}

func TestCreateMap(t *testing.T) {
	st := store.NewMemoryStore()
	srv := testServer(t, st)

	body := requestBody(`[
		{"lat": 37.77, "lng": -122.41, "color": "red", "size": 40, "type": "scatter"},
		{"lat": 37.78, "lng": -122.42, "color": "red", "size": 40, "type": "scatter"}
	]`)
	resp, err := http.Post(srv.URL+"/v1/maps", "application/json", body)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var created struct {
		ID     string `json:"id"`
		Points int    `json:"points"`
		Groups int    `json:"groups"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("response id empty")
	}
	if created.Points != 2 || created.Groups != 1 {
		t.Errorf("points/groups = %d/%d, want 2/1", created.Points, created.Groups)
	}

	// The archived page is retrievable by id.
	get, err := http.Get(srv.URL + "/v1/maps/" + created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer get.Body.Close()
	if get.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want %d", get.StatusCode, http.StatusOK)
	}
	page, _ := io.ReadAll(get.Body)
	if !strings.Contains(string(page), "google.maps.Map") {
		t.Error("archived page missing map block")
	}
}

func TestCreateMapHTMLFormat(t *testing.T) {
	srv := testServer(t, nil)

	body := requestBody(`[{"lat": 37.77, "lng": -122.41, "color": "blue", "type": "marker"}]`)
	resp, err := http.Post(srv.URL+"/v1/maps?format=html", "application/json", body)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "0000FF.png") {
		t.Error("page missing marker icon")
	}
}

func TestCreateMapEmptyPoints(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Post(srv.URL+"/v1/maps", "application/json", requestBody(`[]`))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	code, message := decodeError(t, resp.Body)
	if code != "INVALID_INPUT" {
		t.Errorf("error code = %q, want INVALID_INPUT", code)
	}
	if !strings.Contains(message, "no points") {
		t.Errorf("message = %q, want mention of empty points", message)
	}
}

func TestCreateMapUnsupportedType(t *testing.T) {
	srv := testServer(t, nil)

	body := requestBody(`[{"lat": 37.77, "lng": -122.41, "type": "heatmap"}]`)
	resp, err := http.Post(srv.URL+"/v1/maps", "application/json", body)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
	code, _ := decodeError(t, resp.Body)
	if code != "UNSUPPORTED_TYPE" {
		t.Errorf("error code = %q, want UNSUPPORTED_TYPE", code)
	}
}

func TestCreateMapThrottled(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	runner.MinInterval = time.Hour
	srv := httptest.NewServer(New(runner, nil, logger).Router())
	t.Cleanup(srv.Close)

	points := `[{"lat": 37.77, "lng": -122.41, "color": "red", "type": "marker"}]`
	first, err := http.Post(srv.URL+"/v1/maps", "application/json", requestBody(points))
	if err != nil {
		t.Fatalf("first Post() error = %v", err)
	}
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first status = %d, want %d", first.StatusCode, http.StatusCreated)
	}

	second, err := http.Post(srv.URL+"/v1/maps", "application/json", requestBody(points))
	if err != nil {
		t.Fatalf("second Post() error = %v", err)
	}
	defer second.Body.Close()
	if second.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want %d", second.StatusCode, http.StatusTooManyRequests)
	}
	if second.Header.Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}
	code, message := decodeError(t, second.Body)
	if code != "THROTTLED" {
		t.Errorf("error code = %q, want THROTTLED", code)
	}
	if !strings.Contains(message, "minimum time between plot requests") {
		t.Errorf("message = %q, want throttle detail", message)
	}
}

func TestCreateMapBadJSON(t *testing.T) {
	srv := testServer(t, nil)

	resp, err := http.Post(srv.URL+"/v1/maps", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestGetMapNotFound(t *testing.T) {
	srv := testServer(t, store.NewMemoryStore())

	resp, err := http.Get(srv.URL + "/v1/maps/nope")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	code, _ := decodeError(t, resp.Body)
	if code != "NOT_FOUND" {
		t.Errorf("error code = %q, want NOT_FOUND", code)
	}
}

func TestListMaps(t *testing.T) {
	st := store.NewMemoryStore()
	if err := st.Save(context.Background(), &store.Document{
		ID:        "m1",
		Name:      "run one",
		Points:    4,
		HTML:      []byte("<html></html>"),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	srv := testServer(t, st)

	resp, err := http.Get(srv.URL + "/v1/maps")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var docs []store.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "m1" {
		t.Fatalf("docs = %+v, want one document m1", docs)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
