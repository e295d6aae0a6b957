package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"artculture/internal/models"
)

func TestListMuseumsHandler(t *testing.T) {
	t.Run("Буква из запроса уходит в фильтр", func(t *testing.T) {
		mockUsers := new(MockUserService)
		handler := newTestHandlers()
		handler.UserService = mockUsers

		museums := []models.User{{UserID: "m-1", Role: models.RoleMuseum, Title: "Арсенал"}}
		mockUsers.On("ListByRole", mock.Anything, models.RoleMuseum, "А").Return(museums, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/users/museums?letter=А", nil)
		rr := httptest.NewRecorder()

		handler.ListMuseums(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []map[string]interface{}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Без буквы фильтр пустой", func(t *testing.T) {
		mockUsers := new(MockUserService)
		handler := newTestHandlers()
		handler.UserService = mockUsers

		mockUsers.On("ListByRole", mock.Anything, models.RoleCreator, "").Return([]models.User{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/users/creators", nil)
		rr := httptest.NewRecorder()

		handler.ListCreators(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockUsers.AssertExpectations(t)
	})
}
