package agi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSONRetriesOn5xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	if err := getJSON(context.Background(), srv.Client(), srv.URL, &out); err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if !out.OK || attempts != 3 {
		t.Errorf("ok=%v attempts=%d, want true/3", out.OK, attempts)
	}
}

func TestGetJSONGivesUpAfterBoundedAttempts(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var out struct{}
	if err := getJSON(context.Background(), srv.Client(), srv.URL, &out); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestGetJSONDoesNotRetry4xx(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	var out struct{}
	if err := getJSON(context.Background(), srv.Client(), srv.URL, &out); err == nil {
		t.Fatal("expected error on 404")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on client errors)", attempts)
	}
}
