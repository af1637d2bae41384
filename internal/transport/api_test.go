package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-api/internal/middleware"
	"catalog-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// testAPI is the catalog router over in-memory repositories, mounted with the
// same authentication chain the server uses.
type testAPI struct {
	router     chi.Router
	users      service.UserService
	userRepo   *mockUserRepository
	categories *mockCategoryRepository
	products   *mockProductRepository
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	logger := zap.NewNop()
	api := &testAPI{
		userRepo:   newMockUserRepository(),
		categories: newMockCategoryRepository(),
		products:   newMockProductRepository(),
	}
	api.users = service.NewUserService(api.userRepo, testSecret, time.Hour)

	r := chi.NewRouter()
	r.Use(middleware.DefaultMiddlewareStack()...)
	r.Use(middleware.Authenticate(api.users, logger))
	r.Use(middleware.ErrorHandlingMiddleware(logger))
	r.Use(middleware.ValidationMiddleware(1<<20, logger))

	protect := middleware.RequireAuthenticated(logger)
	links := NewLinks("")

	NewUserHandler(api.users, logger).RegisterRoutes(r, protect)
	NewCategoryHandler(service.NewCategoryService(api.categories, api.products), links, logger).RegisterRoutes(r, protect)
	NewProductHandler(service.NewProductService(api.products, api.categories), links, logger).RegisterRoutes(r, protect)

	api.router = r
	return api
}

// login registers username on first use and returns a bearer token for it
func (a *testAPI) login(t *testing.T, username string) string {
	t.Helper()

	if _, err := a.userRepo.FindByUsername(t.Context(), username); err != nil {
		_, err := a.users.Register(t.Context(), username, username+"@example.com", "correct-horse")
		require.NoError(t, err)
	}

	token, _, err := a.users.Login(t.Context(), username, "correct-horse")
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func validationFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	var resp struct {
		Error struct {
			Details struct {
				ValidationErrors []middleware.ValidationError `json:"validation_errors"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var fields []string
	for _, e := range resp.Error.Details.ValidationErrors {
		fields = append(fields, e.Field)
	}
	return fields
}

// seedCategory creates a category through the API
func (a *testAPI) seedCategory(t *testing.T, token, title, slug string) CategoryResponse {
	t.Helper()

	w := a.do(t, http.MethodPost, "/categories/", map[string]interface{}{"title": title, "slug": slug}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[CategoryResponse](t, w)
}

func (a *testAPI) seedProduct(t *testing.T, token string, body map[string]interface{}) ProductResponse {
	t.Helper()

	w := a.do(t, http.MethodPost, "/products/", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[ProductResponse](t, w)
}

func productBody(title, category, size, color string, price int64) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"category": category,
		"size":     size,
		"color":    color,
		"price":    price,
	}
}

func productSlugs(products []ProductResponse) []string {
	slugs := make([]string, 0, len(products))
	for _, p := range products {
		slugs = append(slugs, p.Slug)
	}
	return slugs
}
