package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"filevault/internal/domain"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "not found sentinel",
			err:        fmt.Errorf("file abc: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "validation error",
			err:        &domain.ValidationError{Message: "name is required"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid parent",
			err:        &domain.InvalidParentError{Message: "no such parent", ParentID: "p1"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not in trash",
			err:        &domain.NotInTrashError{Message: "trash it first"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "corrupt tree",
			err:        &domain.CorruptTreeError{Message: "cycle"},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "store unavailable",
			err:        fmt.Errorf("query timeout: %w", domain.ErrStoreUnavailable),
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("content type = %q, want problem+json", ct)
			}

			var problem map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("decode problem body: %v", err)
			}
			if int(problem["status"].(float64)) != tt.wantStatus {
				t.Errorf("problem status = %v, want %d", problem["status"], tt.wantStatus)
			}
		})
	}
}

func TestHandleError_DuplicateNameExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	handleError(rec, &domain.DuplicateNameError{
		Message:      "a folder named \"docs\" already exists",
		ResourceType: "folder",
		ResourceID:   "f-123",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var problem map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem body: %v", err)
	}
	if problem["resource_type"] != "folder" {
		t.Errorf("resource_type = %v, want folder", problem["resource_type"])
	}
	if problem["resource_id"] != "f-123" {
		t.Errorf("resource_id = %v, want f-123", problem["resource_id"])
	}
}
