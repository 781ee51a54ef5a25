package relayclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"postman-backend/internal/model/entity"
)

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})

	if client.config.Timeout != defaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", defaultTimeout, client.config.Timeout)
	}
	if client.config.MaxBodyBytes != defaultMaxBodyBytes {
		t.Errorf("Expected default body limit %d, got %d", defaultMaxBodyBytes, client.config.MaxBodyBytes)
	}
	if client.httpClient.Timeout != defaultTimeout {
		t.Errorf("http client timeout not applied, got %v", client.httpClient.Timeout)
	}
}

func TestDoSendsComposedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.URL.Path != "/items" {
			t.Errorf("Expected path /items, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("Expected existing query param page=2, got %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "go lang" {
			t.Errorf("Expected query param q, got %q", got)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("Content-Type header should default to application/json")
		}
		if r.Header.Get("X-Token") != "abc" {
			t.Error("Custom header should be forwarded")
		}

		body, _ := io.ReadAll(r.Body)
		var decoded map[string]string
		if err := json.Unmarshal(body, &decoded); err != nil || decoded["name"] != "widget" {
			t.Errorf("Unexpected body %s", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 10}`))
	}))
	defer server.Close()

	client := NewClient(Config{})
	outcome := client.Do(context.Background(), Call{
		Method:  http.MethodPost,
		URL:     server.URL + "/items?page=2&q=go+lang",
		Headers: map[string]string{"X-Token": "abc"},
		Body:    entity.MustJSONValue(map[string]string{"name": "widget"}),
	})

	if outcome.Failed() {
		t.Fatalf("Expected success, got %v", outcome.Err)
	}
	if outcome.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", outcome.StatusCode)
	}
	if outcome.Body.Kind() != entity.JSONObject {
		t.Errorf("Expected object body, got %s", outcome.Body.Kind())
	}
	if outcome.ErrorMessage() != nil {
		t.Error("Successful outcome should carry no error message")
	}
	if outcome.ResponseTimeMillis() < 0 {
		t.Error("Response time must be non-negative")
	}
}

func TestDoKeepsCallerContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/vnd.api+json" {
			t.Errorf("Caller content type overwritten: %q", got)
		}
	}))
	defer server.Close()

	NewClient(Config{}).Do(context.Background(), Call{
		Method:  http.MethodPut,
		URL:     server.URL,
		Headers: map[string]string{"content-type": "application/vnd.api+json"},
		Body:    entity.MustJSONValue(map[string]int{"a": 1}),
	})
}

func TestDoNonSuccessStatusIsAResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "" {
			t.Error("Body-less request should not get a Content-Type")
		}
		http.Error(w, "no such thing", http.StatusNotFound)
	}))
	defer server.Close()

	outcome := NewClient(Config{}).Do(context.Background(), Call{Method: http.MethodGet, URL: server.URL})

	if outcome.Failed() {
		t.Fatalf("A 404 is still a response, got error %v", outcome.Err)
	}
	if outcome.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", outcome.StatusCode)
	}
	var text string
	if err := outcome.Body.Decode(&text); err != nil || text != "no such thing\n" {
		t.Errorf("Expected plain text body stored as JSON string, got %s", outcome.Body.Raw())
	}
}

func TestDoEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	outcome := NewClient(Config{}).Do(context.Background(), Call{Method: http.MethodDelete, URL: server.URL})
	if outcome.StatusCode != http.StatusNoContent || !outcome.Body.IsNull() {
		t.Errorf("Expected 204 with null body, got %d %s", outcome.StatusCode, outcome.Body.Raw())
	}
}

func TestDoConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := server.URL
	server.Close()

	outcome := NewClient(Config{}).Do(context.Background(), Call{Method: http.MethodGet, URL: target})

	if !outcome.Failed() {
		t.Fatal("Expected a transport failure")
	}
	if outcome.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", outcome.StatusCode)
	}
	var transportErr *TransportError
	if !errors.As(outcome.Err, &transportErr) {
		t.Fatalf("Expected *TransportError, got %T", outcome.Err)
	}

	var body map[string]string
	if err := outcome.Body.Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" || body["error"] != *outcome.ErrorMessage() {
		t.Errorf("Failure body should carry the error message, got %v", body)
	}
}

func TestDoTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	outcome := NewClient(Config{Timeout: 50 * time.Millisecond}).Do(context.Background(), Call{Method: http.MethodGet, URL: server.URL})

	if !errors.Is(outcome.Err, ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", outcome.Err)
	}
	if outcome.Elapsed < 50*time.Millisecond {
		t.Errorf("Elapsed should cover the wait, got %v", outcome.Elapsed)
	}
}

func TestDoBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer server.Close()

	outcome := NewClient(Config{MaxBodyBytes: 16}).Do(context.Background(), Call{Method: http.MethodGet, URL: server.URL})

	if !errors.Is(outcome.Err, ErrBodyTooLarge) {
		t.Fatalf("Expected ErrBodyTooLarge, got %v", outcome.Err)
	}
	if outcome.StatusCode != http.StatusOK {
		t.Errorf("Remote status should be kept when known, got %d", outcome.StatusCode)
	}
}

func TestDoInvalidURL(t *testing.T) {
	outcome := NewClient(Config{}).Do(context.Background(), Call{Method: http.MethodGet, URL: "::not-a-url"})
	if !errors.Is(outcome.Err, ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", outcome.Err)
	}
}

func TestForward(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte(`{"brew":"tea"}`))
	}))
	defer server.Close()

	resp, err := NewClient(Config{}).Forward(context.Background(), http.MethodPost, server.URL, []byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("Expected 418, got %d", resp.StatusCode)
	}
	if resp.ContentType != "application/json; charset=utf-8" {
		t.Errorf("Unexpected content type %q", resp.ContentType)
	}
	if string(resp.Body) != `{"brew":"tea"}` {
		t.Errorf("Body changed in transit: %s", resp.Body)
	}
}

func TestResponseTimeMillis(t *testing.T) {
	tests := map[time.Duration]int64{
		0:                       0,
		1400 * time.Microsecond: 1,
		1500 * time.Microsecond: 2,
		250 * time.Millisecond:  250,
		-5 * time.Millisecond:   0,
	}
	for elapsed, want := range tests {
		if got := (Outcome{Elapsed: elapsed}).ResponseTimeMillis(); got != want {
			t.Errorf("ResponseTimeMillis(%v) = %d, want %d", elapsed, got, want)
		}
	}
}

func TestApplyParams(t *testing.T) {
	got, err := ApplyParams("https://example.com/search?q=old&page=1", map[string]string{"q": "new"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/search?page=1&q=new" {
		t.Errorf("Unexpected URL %s", got)
	}

	untouched, _ := ApplyParams("https://example.com/a?z=1&a=2", nil)
	if untouched != "https://example.com/a?z=1&a=2" {
		t.Errorf("URL without params should be unchanged, got %s", untouched)
	}

	if _, err := ApplyParams("/relative", nil); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", err)
	}
}
