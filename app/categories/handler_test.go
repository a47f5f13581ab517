package categories

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peakhub/storefront/models"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories []models.Category
	ListErr    error
}

func (m *MockCategoryRepo) GetAllCategories() ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

// --- Tests: GET /categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() CategoryProvider
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Success with multiple categories",
			mockRepoSetup: func() CategoryProvider {
				return &MockCategoryRepo{
					Categories: []models.Category{
						{ID: "muscle", Name: "Muscle Building", Icon: "dumbbell"},
						{ID: "health", Name: "General Health", Color: "from-green-500 to-teal-600"},
					},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 2)
				assert.Equal(t, "muscle", resp[0].ID)
				assert.Equal(t, "dumbbell", resp[0].Icon)
				assert.Equal(t, "General Health", resp[1].Name)
				assert.Equal(t, "from-green-500 to-teal-600", resp[1].Color)
			},
		},
		{
			name: "Success with empty list",
			mockRepoSetup: func() CategoryProvider {
				return &MockCategoryRepo{
					Categories: []models.Category{},
				}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, 0)
			},
		},
		{
			name: "Static catalog keeps display order",
			mockRepoSetup: func() CategoryProvider {
				return models.NewStaticCatalog()
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp []CategoryResponse
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				ids := make([]string, len(resp))
				for i, c := range resp {
					ids[i] = c.ID
				}
				assert.Equal(t, []string{"muscle", "weight-loss", "endurance", "health"}, ids)
			},
		},
		{
			name: "Repository error",
			mockRepoSetup: func() CategoryProvider {
				return &MockCategoryRepo{
					ListErr: errors.New("db down"),
				}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "failed to fetch categories", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			handler := NewCategoryHandler(tc.mockRepoSetup())
			req := httptest.NewRequest("GET", "/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetAll(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}
