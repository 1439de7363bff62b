package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1M", 1 << 20},
		{"10M", 10 << 20},
		{"512K", 512 << 10},
		{"1G", 1 << 30},
		{"2048", 2048},
		{"", 1 << 20},
		{"bogus", 1 << 20},
	}
	for _, tt := range tests {
		if got := parseLimit(tt.in); got != tt.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBodyLimit_AllowsSmallBody(t *testing.T) {
	e := echo.New()
	body := `{"date":"2025-06-03","time":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		data, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}
		if string(data) != body {
			t.Errorf("body was altered: %q", string(data))
		}
		return c.String(http.StatusOK, "ok")
	}

	mw := BodyLimit("1M")
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBodyLimit_RejectsOversizedBody_ContentLength(t *testing.T) {
	e := echo.New()
	big := strings.Repeat("x", 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(big))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		t.Error("handler should not be reached")
		return nil
	}

	mw := BodyLimit("1024")
	h := mw(handler)
	err := h(c)

	if err == nil {
		t.Fatal("expected error for oversized body")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", httpErr.Code)
	}
}

func TestBodyLimit_SkipsNilBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}

	mw := BodyLimit("1024")
	h := mw(handler)
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBodyLimit_EnforcesLimitDuringRead(t *testing.T) {
	e := echo.New()
	big := strings.Repeat("x", 2048)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(big))
	// Drop Content-Length so only the limiting reader can catch it.
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		_, err := io.ReadAll(c.Request().Body)
		return err
	}

	mw := BodyLimit("1024")
	h := mw(handler)
	err := h(c)

	if err == nil {
		t.Fatal("expected error while reading oversized body")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", httpErr.Code)
	}
}
