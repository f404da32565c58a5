package catalog

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Leandro-Gomez-12345/Final-de-POO/internal/domain"
)

func newTestHandler(store Store) *Handler {
	return NewHandler(NewService(store), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandler_HandleCreate(t *testing.T) {
	t.Run("creates a product", func(t *testing.T) {
		handler := newTestHandler(newFakeStore())

		req := httptest.NewRequest(http.MethodPost, "/products",
			strings.NewReader(`{"name":"hammer","category":"tools","price":"25.50","stock":4}`))
		rec := httptest.NewRecorder()

		handler.HandleCreate(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var created domain.Product
		if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID == 0 {
			t.Error("expected a generated id")
		}
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		handler := newTestHandler(newFakeStore())

		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		handler.HandleCreate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for failed validation", func(t *testing.T) {
		handler := newTestHandler(newFakeStore())

		req := httptest.NewRequest(http.MethodPost, "/products",
			strings.NewReader(`{"name":"","category":"tools","price":"10","stock":1}`))
		rec := httptest.NewRecorder()

		handler.HandleCreate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleGet(t *testing.T) {
	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		handler := newTestHandler(newFakeStore())

		req := httptest.NewRequest(http.MethodGet, "/products/42", nil)
		req.SetPathValue("id", "42")
		rec := httptest.NewRecorder()

		handler.HandleGet(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for a non-numeric id", func(t *testing.T) {
		handler := newTestHandler(newFakeStore())

		req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
		req.SetPathValue("id", "abc")
		rec := httptest.NewRecorder()

		handler.HandleGet(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleDelete(t *testing.T) {
	t.Run("returns 409 when the product is in the cart", func(t *testing.T) {
		store := newFakeStore()
		store.seed(domain.Product{ID: 1, Name: "hammer", Category: "tools", Price: price("10"), Stock: 5})
		store.inCart[1] = true
		handler := newTestHandler(store)

		req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
		req.SetPathValue("id", "1")
		rec := httptest.NewRecorder()

		handler.HandleDelete(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})
}
