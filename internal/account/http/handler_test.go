package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/allisson/bookstore/internal/account/http/mocks"
	sessionDomain "github.com/allisson/bookstore/internal/session/domain"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestContext creates a gin test context carrying body as JSON.
func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

// withPrincipal makes the request of c run as principal.
func withPrincipal(c *gin.Context, principal *sessionDomain.Principal) {
	c.Request = c.Request.WithContext(sessionHTTP.WithPrincipal(c.Request.Context(), principal))
}

func setupMocks(t *testing.T) (*mocks.MockAccountUseCase, *mocks.MockSessionStore) {
	t.Helper()

	useCase := &mocks.MockAccountUseCase{}
	sessions := &mocks.MockSessionStore{}
	t.Cleanup(func() {
		useCase.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})
	return useCase, sessions
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return body
}

func invalidJSONContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := createTestContext(method, path, nil)
	c.Request.Body = io.NopCloser(bytes.NewReader([]byte("invalid json")))
	return c, w
}

