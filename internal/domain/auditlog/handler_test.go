package auditlog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockRepo struct {
	entries []*Entry
}

func (m *mockRepo) Create(_ context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Entry, int, error) {
	total := len(m.entries)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return m.entries[offset:end], total, nil
}

func TestHandler_List(t *testing.T) {
	repo := &mockRepo{}
	for i := 0; i < 3; i++ {
		repo.Create(context.Background(), &Entry{
			AppointmentID: uuid.New(),
			PatientID:     uuid.New(),
			Date:          "2025-06-03",
			Time:          "09:00",
			Action:        ActionCancelled,
		})
	}

	h := NewHandler(repo)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/audit-log", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 3 {
		t.Errorf("expected total 3, got %d", resp.Total)
	}
}

func TestHandler_List_Empty(t *testing.T) {
	h := NewHandler(&mockRepo{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/audit-log", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
