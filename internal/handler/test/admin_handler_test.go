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
	"artculture/internal/service"
)

var adminClaims = access.Claims{UserID: "admin-1", Email: "a@example.com", Role: models.RoleAdmin}

func TestAdminChangeRole_SelfDemotion(t *testing.T) {
	mockUsers := new(MockUserService)
	handler := newTestHandlers()
	handler.UserService = mockUsers

	mockUsers.On("ChangeRole", mock.Anything, adminClaims, "admin-1", models.RoleUser).
		Return(nil, service.ErrSelfRoleChange)

	body, _ := json.Marshal(map[string]string{"role": models.RoleUser})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/users/admin-1/role", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, adminClaims), map[string]string{"id": "admin-1"})
	rr := httptest.NewRecorder()

	handler.AdminChangeRole(rr, req)

	// понижение собственной роли - ошибка клиента, не запрет доступа
	assertJSONError(t, rr, http.StatusBadRequest)
}

func TestAdminChangeRole_Success(t *testing.T) {
	mockUsers := new(MockUserService)
	handler := newTestHandlers()
	handler.UserService = mockUsers

	mockUsers.On("ChangeRole", mock.Anything, adminClaims, "user-1", models.RoleEditor).
		Return(&models.User{UserID: "user-1", Role: models.RoleEditor}, nil)

	body, _ := json.Marshal(map[string]string{"role": models.RoleEditor})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/users/user-1/role", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, adminClaims), map[string]string{"id": "user-1"})
	rr := httptest.NewRecorder()

	handler.AdminChangeRole(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, models.RoleEditor, response["role"])
}

func TestAdminDeleteUser_Self(t *testing.T) {
	mockUsers := new(MockUserService)
	handler := newTestHandlers()
	handler.UserService = mockUsers

	mockUsers.On("DeleteUser", mock.Anything, adminClaims, "admin-1").
		Return(service.ErrSelfDelete)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/admin-1", nil)
	req = mux.SetURLVars(withClaims(req, adminClaims), map[string]string{"id": "admin-1"})
	rr := httptest.NewRecorder()

	handler.AdminDeleteUser(rr, req)

	assertJSONError(t, rr, http.StatusBadRequest)
}

func TestAdminModeratePost_BadStatus(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	body, _ := json.Marshal(map[string]string{"status": "PENDING"})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/posts/post-1/status", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, adminClaims), map[string]string{"id": "post-1"})
	rr := httptest.NewRecorder()

	handler.AdminModeratePost(rr, req)

	// вернуть пост в PENDING нельзя
	assertJSONError(t, rr, http.StatusBadRequest)
	mockPosts.AssertNotCalled(t, "Moderate")
}

func TestAdminModeratePost_Approve(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	mockPosts.On("Moderate", mock.Anything, adminClaims, "post-1", models.StatusApproved).
		Return(&models.Post{PostID: "post-1", Status: models.StatusApproved}, nil)

	body, _ := json.Marshal(map[string]string{"status": models.StatusApproved})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/posts/post-1/status", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, adminClaims), map[string]string{"id": "post-1"})
	rr := httptest.NewRecorder()

	handler.AdminModeratePost(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockPosts.AssertExpectations(t)
}

func TestAdminModeratePost_NotAdmin(t *testing.T) {
	mockPosts := new(MockPostService)
	handler := newTestHandlers()
	handler.PostService = mockPosts

	claims := access.Claims{UserID: "user-1", Role: models.RoleCreator}
	mockPosts.On("Moderate", mock.Anything, claims, "post-1", models.StatusRejected).
		Return(nil, service.ErrForbidden)

	body, _ := json.Marshal(map[string]string{"status": models.StatusRejected})
	req := httptest.NewRequest(http.MethodPatch, "/api/admin/posts/post-1/status", bytes.NewBuffer(body))
	req = mux.SetURLVars(withClaims(req, claims), map[string]string{"id": "post-1"})
	rr := httptest.NewRecorder()

	handler.AdminModeratePost(rr, req)

	assertJSONError(t, rr, http.StatusForbidden)
}

func TestAdminStats(t *testing.T) {
	mockStats := new(MockStatsService)
	handler := newTestHandlers()
	handler.StatsService = mockStats

	mockStats.On("EntityCounts", mock.Anything, adminClaims).
		Return(map[string]int{"users": 3, "posts": 10}, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil), adminClaims)
	rr := httptest.NewRecorder()

	handler.AdminStats(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var response map[string]int
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, 10, response["posts"])
}
