package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakhub/storefront/app/session"
	"github.com/peakhub/storefront/models"
	"github.com/peakhub/storefront/state"
)

type MockProductRepo struct {
	Err error
}

func (m *MockProductRepo) GetByID(id string) (*models.Product, error) {
	return nil, m.Err
}

func newRequest(app *state.App, method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	return req.WithContext(session.WithApp(req.Context(), app))
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var errResp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	return errResp["error"]
}

func TestHandleAdd(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Adds the chosen variant and opens the drawer",
			body:               `{"productId":"p1","size":"5lb","flavor":"Vanilla Ice Cream","quantity":2}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeCart(t, rec)
				require.Len(t, resp.Lines, 1)
				assert.Equal(t, "p1", resp.Lines[0].Product.ID)
				assert.Equal(t, "Vanilla Ice Cream", resp.Lines[0].Variant.Flavor)
				assert.Equal(t, 2, resp.Lines[0].Quantity)
				assert.Equal(t, 149.98, resp.Total)
				assert.Equal(t, 2, resp.ItemCount)
				assert.True(t, resp.IsOpen)
				assert.True(t, resp.Shipping.Unlocked)
				assert.Equal(t, 0.0, resp.Shipping.Remaining)
			},
		},
		{
			name:               "Missing quantity adds one",
			body:               `{"productId":"p5","size":"400g","flavor":"Unflavored"}`,
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decodeCart(t, rec)
				assert.Equal(t, 1, resp.ItemCount)
				assert.Equal(t, 29.99, resp.Total)
				assert.Equal(t, 70.01, resp.Shipping.Remaining)
				assert.Equal(t, 29.99, resp.Shipping.Percent)
				assert.False(t, resp.Shipping.Unlocked)
			},
		},
		{
			name:               "Quantity below one",
			body:               `{"productId":"p1","size":"5lb","flavor":"Vanilla Ice Cream","quantity":0}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Quantity must be at least 1", decodeError(t, rec))
			},
		},
		{
			name:               "Unknown product",
			body:               `{"productId":"p99","size":"5lb","flavor":"Vanilla Ice Cream"}`,
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Product not found", decodeError(t, rec))
			},
		},
		{
			name:               "Unknown variant",
			body:               `{"productId":"p1","size":"5lb","flavor":"Mint"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Variant not found", decodeError(t, rec))
			},
		},
		{
			name:               "Invalid JSON body",
			body:               `{invalid json`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Invalid JSON body", decodeError(t, rec))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			app := state.NewApp(context.Background())
			handler := NewCartHandler(models.NewStaticCatalog())
			rec := httptest.NewRecorder()

			// Act
			handler.HandleAdd(rec, newRequest(app, "POST", "/cart/items", tc.body))

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleAddRepositoryError(t *testing.T) {
	app := state.NewApp(context.Background())
	handler := NewCartHandler(&MockProductRepo{Err: errors.New("db down")})
	rec := httptest.NewRecorder()

	handler.HandleAdd(rec, newRequest(app, "POST", "/cart/items", `{"productId":"p1"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to retrieve product", decodeError(t, rec))
	assert.Empty(t, app.Snapshot().Cart)
}

func TestHandleQuickAdd(t *testing.T) {
	app := state.NewApp(context.Background())
	handler := NewCartHandler(models.NewStaticCatalog())

	for range 2 {
		rec := httptest.NewRecorder()
		req := newRequest(app, "POST", "/cart/quick-add/p3", "")
		req.SetPathValue("id", "p3")
		handler.HandleQuickAdd(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	s := app.Snapshot()
	require.Len(t, s.Cart, 1)
	assert.Equal(t, "Icy Blue Razz", s.Cart[0].SelectedVariant.Flavor)
	assert.Equal(t, 2, s.Cart[0].Quantity)
	assert.True(t, s.IsCartOpen)

	rec := httptest.NewRecorder()
	req := newRequest(app, "POST", "/cart/quick-add/nope", "")
	req.SetPathValue("id", "nope")
	handler.HandleQuickAdd(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func seededApp(t *testing.T) *state.App {
	t.Helper()
	catalog := models.NewStaticCatalog()
	app := state.NewApp(context.Background())
	for _, id := range []string{"p1", "p5"} {
		p, err := catalog.GetByID(id)
		require.NoError(t, err)
		require.True(t, app.QuickAdd(context.Background(), *p))
	}
	app.SetCartOpen(false)
	return app
}

func TestHandleUpdate(t *testing.T) {
	testCases := []struct {
		name               string
		position           string
		body               string
		expectedStatusCode int
		expectedQuantities []int
	}{
		{name: "Increments", position: "1", body: `{"delta":2}`, expectedStatusCode: http.StatusOK, expectedQuantities: []int{1, 3}},
		{name: "Clamps at one", position: "0", body: `{"delta":-5}`, expectedStatusCode: http.StatusOK, expectedQuantities: []int{1, 1}},
		{name: "Out of range is a no-op", position: "7", body: `{"delta":1}`, expectedStatusCode: http.StatusOK, expectedQuantities: []int{1, 1}},
		{name: "Negative position is a no-op", position: "-1", body: `{"delta":1}`, expectedStatusCode: http.StatusOK, expectedQuantities: []int{1, 1}},
		{name: "Invalid position", position: "first", body: `{"delta":1}`, expectedStatusCode: http.StatusBadRequest, expectedQuantities: []int{1, 1}},
		{name: "Invalid JSON body", position: "0", body: `{`, expectedStatusCode: http.StatusBadRequest, expectedQuantities: []int{1, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			app := seededApp(t)
			handler := NewCartHandler(models.NewStaticCatalog())
			req := newRequest(app, "PATCH", "/cart/items/"+tc.position, tc.body)
			req.SetPathValue("position", tc.position)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleUpdate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			var got []int
			for _, l := range app.Snapshot().Cart {
				got = append(got, l.Quantity)
			}
			assert.Equal(t, tc.expectedQuantities, got)
		})
	}
}

func TestHandleRemove(t *testing.T) {
	testCases := []struct {
		name               string
		position           string
		expectedStatusCode int
		expectedIDs        []string
	}{
		{name: "Removes by position", position: "0", expectedStatusCode: http.StatusOK, expectedIDs: []string{"p5"}},
		{name: "Out of range is a no-op", position: "2", expectedStatusCode: http.StatusOK, expectedIDs: []string{"p1", "p5"}},
		{name: "Invalid position", position: "x", expectedStatusCode: http.StatusBadRequest, expectedIDs: []string{"p1", "p5"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			app := seededApp(t)
			handler := NewCartHandler(models.NewStaticCatalog())
			req := newRequest(app, "DELETE", "/cart/items/"+tc.position, "")
			req.SetPathValue("position", tc.position)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleRemove(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			var ids []string
			for _, l := range app.Snapshot().Cart {
				ids = append(ids, l.Product.ID)
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestHandleDrawer(t *testing.T) {
	app := state.NewApp(context.Background())
	handler := NewCartHandler(models.NewStaticCatalog())

	rec := httptest.NewRecorder()
	handler.HandleSetDrawer(rec, newRequest(app, "PUT", "/cart/drawer", `{"open":true}`))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeCart(t, rec).IsOpen)

	// A pointer-down inside the drawer keeps it open.
	rec = httptest.NewRecorder()
	handler.HandlePointerDown(rec, newRequest(app, "POST", "/cart/drawer/pointer-down", `{"inside":true}`))
	var resp PointerDownResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Closed)
	assert.True(t, resp.IsOpen)

	rec = httptest.NewRecorder()
	handler.HandlePointerDown(rec, newRequest(app, "POST", "/cart/drawer/pointer-down", `{"inside":false}`))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Closed)
	assert.False(t, resp.IsOpen)

	rec = httptest.NewRecorder()
	handler.HandlePointerDown(rec, newRequest(app, "POST", "/cart/drawer/pointer-down", `{"inside":false}`))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Closed, "a closed drawer has no outside listener")

	rec = httptest.NewRecorder()
	handler.HandleSetDrawer(rec, newRequest(app, "PUT", "/cart/drawer", `nope`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGet(t *testing.T) {
	app := seededApp(t)
	handler := NewCartHandler(models.NewStaticCatalog())
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, newRequest(app, "GET", "/cart", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, 0, resp.Lines[0].Position)
	assert.Equal(t, 1, resp.Lines[1].Position)
	assert.Equal(t, 104.98, resp.Total)
	assert.Equal(t, 100.0, resp.Shipping.Threshold)
	assert.True(t, resp.Shipping.Unlocked)
	assert.False(t, resp.IsOpen)
}

func TestHandleGetWithoutSession(t *testing.T) {
	handler := NewCartHandler(models.NewStaticCatalog())
	rec := httptest.NewRecorder()

	handler.HandleGet(rec, httptest.NewRequest("GET", "/cart", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
