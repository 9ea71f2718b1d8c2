package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHuggingFaceService_Answer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/"+DefaultQAModel {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var body struct {
			Inputs hfQAInputs `json:"inputs"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body.Inputs.Question != "Who?" || body.Inputs.Context != "Jane wrote it." {
			t.Errorf("unexpected inputs %+v", body.Inputs)
		}
		w.Write([]byte(`{"answer":"Jane","score":0.9,"start":0,"end":4}`))
	}))
	defer server.Close()

	svc := NewHuggingFaceService(server.URL+"/", "secret", "", "")
	got, err := svc.Answer(context.Background(), "Who?", "Jane wrote it.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Jane" {
		t.Fatalf("expected Jane, got %q", got)
	}
}

func TestHuggingFaceService_Summarize(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{"summary", `[{"summary_text":"short version"}]`, "short version"},
		{"empty list", `[]`, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/"+DefaultSummaryModel {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			svc := NewHuggingFaceService(server.URL, "", "", "")
			got, err := svc.Summarize(context.Background(), "long text")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHuggingFaceService_Errors(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		retryable bool
		message   string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"Rate limit reached"}`, true, "Rate limit reached"},
		{"loading", http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`, true, "Model is currently loading"},
		{"bad request", http.StatusBadRequest, `not json`, false, "not json"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			svc := NewHuggingFaceService(server.URL, "", "", "")
			_, err := svc.Answer(context.Background(), "q", "p")

			var modelErr *ModelError
			if !errors.As(err, &modelErr) {
				t.Fatalf("expected ModelError, got %v", err)
			}
			if modelErr.StatusCode != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, modelErr.StatusCode)
			}
			if modelErr.Retryable() != tc.retryable {
				t.Errorf("expected retryable %v", tc.retryable)
			}
			if modelErr.Err.Error() != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, modelErr.Err.Error())
			}
		})
	}
}

func TestHuggingFaceService_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"answer":`))
	}))
	defer server.Close()

	svc := NewHuggingFaceService(server.URL, "", "", "")
	_, err := svc.Answer(context.Background(), "q", "p")
	var modelErr *ModelError
	if !errors.As(err, &modelErr) || modelErr.Retryable() {
		t.Fatalf("expected non retryable ModelError, got %v", err)
	}
}
