package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"artculture/internal/access"
	"artculture/internal/models"
	"artculture/internal/pagination"
	"artculture/internal/repository"
	"artculture/internal/service"
)

var creatorClaims = access.Claims{UserID: "user-1", Email: "c@example.com", Role: models.RoleCreator}

func TestCreatePostHandler_Success(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	mockPosts.On("CreatePost", mock.Anything, creatorClaims, repository.CreatePostRequest{
		TitleEn:   "Title",
		ContentEn: "Content",
	}).Return(&models.Post{
		PostID:   "post-1",
		AuthorID: "user-1",
		TitleEn:  "Title",
		Status:   models.StatusPending,
	}, nil)

	body, _ := json.Marshal(map[string]string{
		"title_en":   "Title",
		"content_en": "Content",
	})
	req := withClaims(httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body)), creatorClaims)
	rr := httptest.NewRecorder()

	handler.CreatePost(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	// контент всегда рождается на модерации
	assert.Equal(t, models.StatusPending, response["status"])
	assert.Equal(t, "user-1", response["authorId"])

	mockPosts.AssertExpectations(t)
}

func TestCreatePostHandler_NoToken(t *testing.T) {
	handler := newTestHandlers()
	handler.PostService = new(MockPostService)

	body, _ := json.Marshal(map[string]string{"title_en": "Title"})
	req := httptest.NewRequest(http.MethodPost, "/api/posts", bytes.NewBuffer(body))
	rr := httptest.NewRecorder()

	handler.CreatePost(rr, req)

	assertJSONError(t, rr, http.StatusUnauthorized)
}

func TestListPostsHandler_BadSortColumn(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	req := httptest.NewRequest(http.MethodGet, "/api/posts?orderBy=password_hash", nil)
	rr := httptest.NewRecorder()

	handler.ListPosts(rr, req)

	// ошибка сортировки отлавливается до запроса в БД
	assertJSONError(t, rr, http.StatusBadRequest)
	mockPosts.AssertNotCalled(t, "ListApproved")
}

func TestListPostsHandler_PageSizeClamped(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	expectedPage := pagination.Page{Page: 1, PageSize: 20, OrderBy: "created_at", OrderDir: "desc"}
	mockPosts.On("ListApproved", mock.Anything, expectedPage, "").
		Return([]models.Post{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?pageSize=1000", nil)
	rr := httptest.NewRecorder()

	handler.ListPosts(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, float64(20), response["pageSize"])

	mockPosts.AssertExpectations(t)
}

func TestUpdatePostHandler_Forbidden(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	mockPosts.On("UpdatePost", mock.Anything, creatorClaims, mock.Anything).
		Return(nil, service.ErrForbidden)

	body, _ := json.Marshal(map[string]string{"title_en": "Hijack"})
	req := httptest.NewRequest(http.MethodPut, "/api/posts/post-2", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, creatorClaims), map[string]string{"id": "post-2"})
	rr := httptest.NewRecorder()

	handler.UpdatePost(rr, req)

	assertJSONError(t, rr, http.StatusForbidden)
}

func TestGetPostHandler_NotFound(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	mockPosts.On("GetPost", mock.Anything, "missing").
		Return(nil, repository.ErrNotFound)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/posts/missing", nil), map[string]string{"id": "missing"})
	rr := httptest.NewRecorder()

	handler.GetPost(rr, req)

	assertJSONError(t, rr, http.StatusNotFound)
}

func TestDeletePostHandler_Success(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	mockPosts.On("DeletePost", mock.Anything, creatorClaims, "post-1").Return(nil)

	req := mux.SetURLVars(
		withClaims(httptest.NewRequest(http.MethodDelete, "/api/posts/post-1", nil), creatorClaims),
		map[string]string{"id": "post-1"},
	)
	rr := httptest.NewRecorder()

	handler.DeletePost(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockPosts.AssertExpectations(t)
}
