package cart

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestHandler(stores *fakeStores) *Handler {
	return NewHandler(NewService(stores, stores), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandler_HandleAddItem(t *testing.T) {
	t.Run("adds an item and returns the snapshot", func(t *testing.T) {
		stores := newFakeStores(testProduct(1, "100", 10))
		handler := newTestHandler(stores)

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"product_id":1,"quantity":3}`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stores.stock(1) != 7 {
			t.Errorf("expected stock 7, got %d", stores.stock(1))
		}
	})

	t.Run("returns 400 for invalid body", func(t *testing.T) {
		handler := newTestHandler(newFakeStores())

		req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 for a non-positive quantity", func(t *testing.T) {
		handler := newTestHandler(newFakeStores(testProduct(1, "100", 10)))

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"product_id":1,"quantity":0}`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for an unknown product", func(t *testing.T) {
		handler := newTestHandler(newFakeStores())

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"product_id":9,"quantity":1}`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when stock is insufficient", func(t *testing.T) {
		handler := newTestHandler(newFakeStores(testProduct(1, "100", 2)))

		req := httptest.NewRequest(http.MethodPost, "/cart/items",
			strings.NewReader(`{"product_id":1,"quantity":3}`))
		rec := httptest.NewRecorder()

		handler.HandleAddItem(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("expected status 409, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleUpdateQuantity(t *testing.T) {
	t.Run("returns 400 for a non-numeric product id", func(t *testing.T) {
		handler := newTestHandler(newFakeStores())

		req := httptest.NewRequest(http.MethodPut, "/cart/items/abc",
			strings.NewReader(`{"quantity":2}`))
		req.SetPathValue("productId", "abc")
		rec := httptest.NewRecorder()

		handler.HandleUpdateQuantity(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for a product not in the cart", func(t *testing.T) {
		handler := newTestHandler(newFakeStores(testProduct(1, "100", 10)))

		req := httptest.NewRequest(http.MethodPut, "/cart/items/1",
			strings.NewReader(`{"quantity":2}`))
		req.SetPathValue("productId", "1")
		rec := httptest.NewRecorder()

		handler.HandleUpdateQuantity(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", rec.Code)
		}
	})
}

func TestHandler_HandleClear(t *testing.T) {
	stores := newFakeStores(testProduct(1, "100", 10))
	handler := newTestHandler(stores)

	add := httptest.NewRequest(http.MethodPost, "/cart/items",
		strings.NewReader(`{"product_id":1,"quantity":4}`))
	handler.HandleAddItem(httptest.NewRecorder(), add)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	rec := httptest.NewRecorder()

	handler.HandleClear(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	if stores.stock(1) != 10 {
		t.Errorf("expected stock restored to 10, got %d", stores.stock(1))
	}
}
