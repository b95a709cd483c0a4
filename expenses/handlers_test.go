package expenses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/financas-go/auth"
)

// asUser injects an authenticated user id the way the JWT middleware does.
func asUser(userID int) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), auth.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(svc *Service, userID int) http.Handler {
	h := NewHandlers(svc)
	r := chi.NewRouter()
	r.Route("/api/expenses", func(r chi.Router) {
		r.Use(asUser(userID))
		h.RegisterRoutes(r)
	})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreateAndGetRoundTrip(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	cats.link(1, catID)
	r := newTestRouter(svc, 1)

	body := `{"description":"Mercado","amount":152.756,"date":"2026-08-15","category_id":` + strconv.Itoa(catID) + `}`
	rec := do(r, http.MethodPost, "/api/expenses", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Mercado", created.Description)
	assert.Equal(t, 152.76, created.Amount)
	assert.Equal(t, "Alimentação", created.CategoryName)
	assert.Equal(t, 1, created.UserID)

	rec = do(r, http.MethodGet, "/api/expenses/"+strconv.Itoa(created.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2026-08-15"`)
	assert.Contains(t, rec.Body.String(), `"category_name":"Alimentação"`)
}

func TestHandleCreateValidation(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	r := newTestRouter(svc, 1)

	cases := []struct {
		name string
		body string
	}{
		{"not json", `not json`},
		{"missing description", `{"amount":10,"date":"2026-08-15","category_id":` + strconv.Itoa(catID) + `}`},
		{"missing amount", `{"description":"x","date":"2026-08-15","category_id":` + strconv.Itoa(catID) + `}`},
		{"negative amount", `{"description":"x","amount":-1,"date":"2026-08-15","category_id":` + strconv.Itoa(catID) + `}`},
		{"missing date", `{"description":"x","amount":10,"category_id":` + strconv.Itoa(catID) + `}`},
		{"bad date format", `{"description":"x","amount":10,"date":"15/08/2026","category_id":` + strconv.Itoa(catID) + `}`},
		{"missing category", `{"description":"x","amount":10,"date":"2026-08-15"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/api/expenses", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleCreateUnknownCategory(t *testing.T) {
	svc, _, _ := newTestService()
	r := newTestRouter(svc, 1)

	rec := do(r, http.MethodPost, "/api/expenses", `{"description":"x","amount":10,"date":"2026-08-15","category_id":42}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not found")
}

func TestHandleListOrder(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	cats.link(1, catID)
	r := newTestRouter(svc, 1)

	for _, date := range []string{"2026-08-10", "2026-08-20", "2026-08-15"} {
		body := `{"description":"gasto","amount":10,"date":"` + date + `","category_id":` + strconv.Itoa(catID) + `}`
		rec := do(r, http.MethodPost, "/api/expenses", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(r, http.MethodGet, "/api/expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var result []Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result, 3)
	assert.Equal(t, "2026-08-20", result[0].Date.String())
	assert.Equal(t, "2026-08-15", result[1].Date.String())
	assert.Equal(t, "2026-08-10", result[2].Date.String())
}

func TestHandleOwnershipStatuses(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	cats.link(1, catID)
	owner := newTestRouter(svc, 1)
	stranger := newTestRouter(svc, 2)

	body := `{"description":"Mercado","amount":10,"date":"2026-08-15","category_id":` + strconv.Itoa(catID) + `}`
	rec := do(owner, http.MethodPost, "/api/expenses", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/expenses/" + strconv.Itoa(created.ID)

	// Another user hitting an existing expense gets 403 on every verb.
	assert.Equal(t, http.StatusForbidden, do(stranger, http.MethodGet, path, "").Code)
	assert.Equal(t, http.StatusForbidden, do(stranger, http.MethodPut, path, body).Code)
	assert.Equal(t, http.StatusForbidden, do(stranger, http.MethodDelete, path, "").Code)

	// An id that does not exist is 404 even for the stranger.
	assert.Equal(t, http.StatusNotFound, do(stranger, http.MethodGet, "/api/expenses/9999", "").Code)

	// A non-numeric id is rejected before any lookup.
	assert.Equal(t, http.StatusBadRequest, do(owner, http.MethodGet, "/api/expenses/abc", "").Code)
}

func TestHandleUpdate(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	otherCat := cats.addCategory("Transporte")
	cats.link(1, catID)
	cats.link(1, otherCat)
	r := newTestRouter(svc, 1)

	rec := do(r, http.MethodPost, "/api/expenses", `{"description":"Mercado","amount":10,"date":"2026-08-15","category_id":`+strconv.Itoa(catID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/expenses/" + strconv.Itoa(created.ID)

	rec = do(r, http.MethodPut, path, `{"description":"Ônibus","amount":4.5,"date":"2026-08-16","category_id":`+strconv.Itoa(otherCat)+`}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Ônibus", updated.Description)
	assert.Equal(t, 4.5, updated.Amount)
	assert.Equal(t, "Transporte", updated.CategoryName)
}

func TestHandleUpdateUnlinkedCategory(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	unlinked := cats.addCategory("Lazer")
	cats.link(1, catID)
	r := newTestRouter(svc, 1)

	rec := do(r, http.MethodPost, "/api/expenses", `{"description":"Mercado","amount":10,"date":"2026-08-15","category_id":`+strconv.Itoa(catID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(r, http.MethodPut, "/api/expenses/"+strconv.Itoa(created.ID),
		`{"description":"Cinema","amount":40,"date":"2026-08-16","category_id":`+strconv.Itoa(unlinked)+`}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not available")
}

func TestHandleDelete(t *testing.T) {
	svc, _, cats := newTestService()
	catID := cats.addCategory("Alimentação")
	cats.link(1, catID)
	r := newTestRouter(svc, 1)

	rec := do(r, http.MethodPost, "/api/expenses", `{"description":"Mercado","amount":10,"date":"2026-08-15","category_id":`+strconv.Itoa(catID)+`}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	path := "/api/expenses/" + strconv.Itoa(created.ID)

	rec = do(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "expense removed successfully")

	rec = do(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
