package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"artculture/internal/access"
	"artculture/internal/config"
	handlers "artculture/internal/handler"
)

func newTestHandlers() *handlers.Handlers {
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		ServerPort:    8080,
		MaxUploadSize: 10 * 1024 * 1024,
	}

	return &handlers.Handlers{
		Cfg:      cfg,
		Validate: validator.New(),
	}
}

// withClaims кладет claims в контекст запроса так же, как auth-middleware
func withClaims(r *http.Request, claims access.Claims) *http.Request {
	return r.WithContext(access.WithClaims(r.Context(), claims))
}

func assertJSONError(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) {
	t.Helper()

	assert.Equal(t, expectedStatus, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var response map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response["error"])
}
