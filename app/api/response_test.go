package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	rec := httptest.NewRecorder()

	Error(rec, httptest.NewRequest("GET", "/catalog/x", nil), http.StatusNotFound, "Product not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestDecode(t *testing.T) {
	var body struct {
		Delta int `json:"delta"`
	}
	req := httptest.NewRequest("PATCH", "/cart/items/0", strings.NewReader(`{"delta":-2}`))

	require.NoError(t, Decode(req, &body))
	assert.Equal(t, -2, body.Delta)

	req = httptest.NewRequest("PATCH", "/cart/items/0", strings.NewReader(`{`))
	assert.Error(t, Decode(req, &body))
}
