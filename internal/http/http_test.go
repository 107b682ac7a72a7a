package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/bookstore/internal/account/domain"
	accountHTTP "github.com/allisson/bookstore/internal/account/http"
	accountMocks "github.com/allisson/bookstore/internal/account/http/mocks"
	bookDomain "github.com/allisson/bookstore/internal/book/domain"
	bookHTTP "github.com/allisson/bookstore/internal/book/http"
	bookMocks "github.com/allisson/bookstore/internal/book/http/mocks"
	cartDomain "github.com/allisson/bookstore/internal/cart/domain"
	cartHTTP "github.com/allisson/bookstore/internal/cart/http"
	cartMocks "github.com/allisson/bookstore/internal/cart/http/mocks"
	"github.com/allisson/bookstore/internal/config"
	cryptoDomain "github.com/allisson/bookstore/internal/crypto/domain"
	cryptoService "github.com/allisson/bookstore/internal/crypto/service"
	"github.com/allisson/bookstore/internal/identity"
	"github.com/allisson/bookstore/internal/metrics"
	sessionHTTP "github.com/allisson/bookstore/internal/session/http"
	sessionService "github.com/allisson/bookstore/internal/session/service"
)

const testCookieName = "bookstore_session"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, newDiscardLogger())
}

type routerEnv struct {
	server   *Server
	accounts *accountMocks.MockAccountUseCase
	books    *bookMocks.MockBookUseCase
	carts    *cartMocks.MockCartUseCase
}

// newRouterEnv builds the full API router over mocked use cases and a real session store.
func newRouterEnv(t *testing.T) *routerEnv {
	t.Helper()

	key, err := cryptoDomain.NewSecretKey(bytes.Repeat([]byte{0x42}, 32))
	require.NoError(t, err)
	signer, err := cryptoService.NewSigner(key)
	require.NoError(t, err)

	logger := newDiscardLogger()
	env := &routerEnv{
		server:   createTestServer(),
		accounts: &accountMocks.MockAccountUseCase{},
		books:    &bookMocks.MockBookUseCase{},
		carts:    &cartMocks.MockCartUseCase{},
	}
	t.Cleanup(func() {
		env.accounts.AssertExpectations(t)
		env.books.AssertExpectations(t)
		env.carts.AssertExpectations(t)
	})

	manager := sessionService.NewManager(signer, 30*time.Minute)
	sessions := sessionHTTP.NewStore(
		manager,
		env.accounts,
		sessionHTTP.CookieConfig{Name: testCookieName, Secure: true},
		logger,
	)

	handlers := Handlers{
		Auth:    accountHTTP.NewAuthHandler(env.accounts, sessions, logger),
		Account: accountHTTP.NewAccountHandler(env.accounts, sessions, logger),
		Admin:   accountHTTP.NewAdminHandler(env.accounts, logger),
		Book:    bookHTTP.NewBookHandler(env.books, logger),
		Cart:    cartHTTP.NewCartHandler(env.carts, logger),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{
		RateLimitEnabled:            true,
		RateLimitRequestsPerSec:     100,
		RateLimitBurst:              100,
		RateLimitAuthEnabled:        true,
		RateLimitAuthRequestsPerSec: 100,
		RateLimitAuthBurst:          100,
		MetricsNamespace:            "bookstore",
	}
	env.server.SetupRouter(ctx, cfg, handlers, sessions, nil)
	return env
}

func (e *routerEnv) do(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.server.GetHandler().ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	t.Fatalf("response has no %s cookie", testCookieName)
	return nil
}

func (e *routerEnv) login(t *testing.T, account *accountDomain.Account) *http.Cookie {
	t.Helper()
	e.accounts.On("Authenticate", mock.Anything, account.Username, "Str0ng!Passw0rd").
		Return(account, nil).Once()

	w := e.do(http.MethodPost, "/api/login", map[string]string{
		"login":    account.Username,
		"password": "Str0ng!Passw0rd",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return sessionCookie(t, w)
}

func newAccount(username string, isAdmin bool) *accountDomain.Account {
	return &accountDomain.Account{
		ID:        identity.DeterministicID(username),
		Username:  username,
		Email:     username + "@example.com",
		Name:      username,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Run("not ready without database", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
	})

	t.Run("ready when ping succeeds", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, newDiscardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ready","components":{"database":"ok"}}`, w.Body.String())
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(identity.RandomID)))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/api/books", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []string{}})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/books?offset=0", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "http request", record["msg"])
	assert.Equal(t, "/api/books", record["path"])
	assert.Equal(t, "offset=0", record["query"])
	assert.Equal(t, float64(http.StatusOK), record["status"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), record["request_id"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(newDiscardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	env := newRouterEnv(t)

	t.Run("api index", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"BrasBasahBooks API"}`, w.Body.String())
	})

	t.Run("request id header is a uuid", func(t *testing.T) {
		w := env.do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		_, err := uuid.Parse(w.Header().Get("X-Request-Id"))
		assert.NoError(t, err)
	})

	t.Run("book list", func(t *testing.T) {
		env.books.On("List", mock.Anything, 0, 50).Return([]*bookDomain.Book{}, nil).Once()

		w := env.do(http.MethodGet, "/api/books", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("security headers on every response", func(t *testing.T) {
		for _, path := range []string{"/api", "/health", "/api/account", "/no-such-route"} {
			w := env.do(http.MethodGet, path, nil)
			assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", w.Header().Get("Content-Security-Policy"), path)
			assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"), path)
			assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"), path)
		}
	})

	t.Run("metrics are not served by the api", func(t *testing.T) {
		w := env.do(http.MethodGet, "/metrics", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouter_AccessGuards(t *testing.T) {
	env := newRouterEnv(t)

	t.Run("anonymous account request", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/account", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("anonymous admin request", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/admin/users", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("customer on admin route", func(t *testing.T) {
		customer := newAccount("alice", false)
		cookie := env.login(t, customer)
		env.accounts.On("ResolvePrincipal", mock.Anything, customer.ID).
			Return(customer.Principal(), nil).Once()

		w := env.do(http.MethodDelete, "/api/admin/books/"+identity.RandomID(), nil, cookie)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("forged cookie is cleared", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/account", nil, &http.Cookie{Name: testCookieName, Value: "forged.value"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		cleared := sessionCookie(t, w)
		assert.Empty(t, cleared.Value)
		assert.Less(t, cleared.MaxAge, 0)
	})
}

func TestRouter_SessionLifecycle(t *testing.T) {
	env := newRouterEnv(t)
	customer := newAccount("alice", false)

	cookie := env.login(t, customer)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	env.accounts.On("ResolvePrincipal", mock.Anything, customer.ID).
		Return(customer.Principal(), nil)
	env.accounts.On("Get", mock.Anything, customer.ID).Return(customer, nil).Once()

	w := env.do(http.MethodGet, "/api/account", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	renewed := sessionCookie(t, w)
	assert.NotEmpty(t, renewed.Value)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, customer.Username, body["username"])

	w = env.do(http.MethodPost, "/api/logout", nil, renewed)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, sessionCookie(t, w).Value)
}

func TestRouter_AdminEndpoints(t *testing.T) {
	env := newRouterEnv(t)
	admin := newAccount("admin", true)

	cookie := env.login(t, admin)
	env.accounts.On("ResolvePrincipal", mock.Anything, admin.ID).Return(admin.Principal(), nil)

	env.accounts.On("List", mock.Anything, 0, 50).
		Return([]*accountDomain.Account{admin}, nil).Once()
	w := env.do(http.MethodGet, "/api/admin/users", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	target := identity.DeterministicID("bob")
	env.accounts.On("Delete", mock.Anything, admin.ID, target).Return(nil).Once()
	w = env.do(http.MethodDelete, "/api/admin/users/"+target, nil, cookie)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_CartEndpoints(t *testing.T) {
	env := newRouterEnv(t)

	t.Run("anonymous request", func(t *testing.T) {
		w := env.do(http.MethodGet, "/api/cart", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin has no cart", func(t *testing.T) {
		admin := newAccount("admin", true)
		cookie := env.login(t, admin)
		env.accounts.On("ResolvePrincipal", mock.Anything, admin.ID).
			Return(admin.Principal(), nil).Once()

		w := env.do(http.MethodGet, "/api/cart", nil, cookie)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("customer manages own cart", func(t *testing.T) {
		customer := newAccount("alice", false)
		cookie := env.login(t, customer)
		env.accounts.On("ResolvePrincipal", mock.Anything, customer.ID).
			Return(customer.Principal(), nil)

		bookID := identity.DeterministicID("book")
		cart := &cartDomain.Cart{
			AccountID: customer.ID,
			Lines: []*cartDomain.Line{
				{BookID: bookID, Title: "Dune", PriceCents: 1250, Stock: 3, Quantity: 2},
			},
		}
		env.carts.On("AddItem", mock.Anything, customer.ID, bookID, 2).Return(cart, nil).Once()
		env.carts.On("Get", mock.Anything, customer.ID).Return(cart, nil).Once()
		env.carts.On("UpdateItem", mock.Anything, customer.ID, bookID, 0).
			Return(&cartDomain.Cart{AccountID: customer.ID}, nil).Once()
		env.carts.On("Clear", mock.Anything, customer.ID).Return(nil).Once()

		w := env.do(http.MethodPost, "/api/cart/items", map[string]any{"book_id": bookID, "quantity": 2}, cookie)
		require.Equal(t, http.StatusOK, w.Code)

		w = env.do(http.MethodGet, "/api/cart", nil, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 2500, body["total_cents"])
		assert.EqualValues(t, 2, body["item_count"])

		w = env.do(http.MethodDelete, "/api/cart/items/"+bookID, nil, cookie)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(http.MethodDelete, "/api/cart", nil, cookie)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestServer_StartRequiresRouter(t *testing.T) {
	server := createTestServer()
	assert.Error(t, server.Start(context.Background()))
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, newDiscardLogger())
	server.router = gin.New()
	server.router.GET("/health", server.healthHandler)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("bookstore_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, newDiscardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
