package category_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhngo/travia/internal/platform/ctxutil"
	"github.com/minhngo/travia/internal/platform/sec"
	"github.com/minhngo/travia/internal/tour/category"
)

func newTestRouter(repo *fakeRepository) chi.Router {
	handler := category.NewHandler(category.NewService(repo, slog.Default()))
	router := chi.NewRouter()
	router.Route("/tour-categories", handler.RegisterRoutes)
	return router
}

func asEditor(request *http.Request) *http.Request {
	claims := &sec.AuthClaims{Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestUpdateCategory_BodyIDMustMatchPath(t *testing.T) {
	repo := newFakeRepository()
	router := newTestRouter(repo)

	created := &category.Category{ID: 1, Name: "Asia", Slug: "asia"}
	repo.rows[1] = created

	body := `{"id": 7, "name": "Asia", "slug": "asia"}`
	request := asEditor(httptest.NewRequest(http.MethodPut, "/tour-categories/1", strings.NewReader(body)))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Asia", repo.rows[1].Name)
}

func TestUpdateCategory_MatchingBodyIDAccepted(t *testing.T) {
	repo := newFakeRepository()
	router := newTestRouter(repo)
	repo.rows[1] = &category.Category{ID: 1, Name: "Asia", Slug: "asia"}

	body := `{"id": 1, "name": "East Asia", "slug": "east-asia"}`
	request := asEditor(httptest.NewRequest(http.MethodPut, "/tour-categories/1", strings.NewReader(body)))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "East Asia", repo.rows[1].Name)
}
