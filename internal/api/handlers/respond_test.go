package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/megalai/backend/internal/apperr"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "forbidden passes through message",
			err:        fmt.Errorf("role %q may not create organizations: %w", "student", apperr.ErrForbidden),
			wantStatus: http.StatusForbidden,
			wantMsg:    `role "student" may not create organizations: forbidden`,
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("organization: %w", apperr.ErrConflict),
			wantStatus: http.StatusConflict,
			wantMsg:    "organization: already exists",
		},
		{
			name:       "internal errors are masked",
			err:        errors.New("pq: connection refused to 10.0.0.5"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tt.wantMsg {
				t.Errorf("error = %q, want %q", body["error"], tt.wantMsg)
			}
		})
	}
}

func TestRespondErrorUnauthorizedChallenge(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, apperr.ErrUnauthenticated)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestRequireActorWithoutAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)

	user, ok := requireActor(rec, req)
	if ok || user != nil {
		t.Fatal("requireActor should fail on an unauthenticated request")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
