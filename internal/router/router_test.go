package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/employees/internal/config"
	"github.com/deppfellow/employees/internal/handler"
	"github.com/deppfellow/employees/internal/model"
	"github.com/deppfellow/employees/internal/repository/repositorytest"
	"github.com/deppfellow/employees/internal/server"
	"github.com/deppfellow/employees/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const notFoundBody = `{"message":"not found"}`

func newTestRouter(t *testing.T, mem *repositorytest.Memory) *echo.Echo {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}

	services := &service.Services{Employee: service.NewEmployeeService(mem)}
	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	return do(t, e, method, path, reader, map[string]string{
		echo.HeaderContentType: echo.MIMEApplicationJSON,
	})
}

func decodeEmployee(t *testing.T, rec *httptest.ResponseRecorder) model.Employee {
	t.Helper()

	var employee model.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &employee))
	return employee
}

func TestEmployeeLifecycleScenario(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := doJSON(t, e, http.MethodGet, "/employees/999", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = doJSON(t, e, http.MethodPut, "/employees", `{"fname":"Jo","lname":"Doe","age":40,"title":"Mgr"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Empty(t, rec.Body.String())
	location := rec.Header().Get(echo.HeaderLocation)
	require.Regexp(t, `^/employees/\d+$`, location)

	rec = doJSON(t, e, http.MethodGet, location, "")
	require.Equal(t, http.StatusOK, rec.Code)
	created := decodeEmployee(t, rec)
	require.Equal(t, location, fmt.Sprintf("/employees/%d", created.ID))
	require.Equal(t, model.Employee{ID: created.ID, Fname: "Jo", Lname: "Doe", Age: 40, Title: "Mgr"}, created)

	rec = doJSON(t, e, http.MethodDelete, location, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, location, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = doJSON(t, e, http.MethodDelete, location, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestCreateIgnoresPayloadID(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory(model.Employee{ID: 5, Fname: "A", Lname: "B", Age: 30, Title: "Eng"}))

	rec := doJSON(t, e, http.MethodPut, "/employees", `{"id":5,"fname":"Jo","lname":"Doe","age":40,"title":"Mgr"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEqual(t, "/employees/5", rec.Header().Get(echo.HeaderLocation))

	rec = doJSON(t, e, http.MethodGet, "/employees/5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "A", decodeEmployee(t, rec).Fname)
}

func TestListReturnsEveryInsert(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := doJSON(t, e, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"results":[]}`, rec.Body.String())

	var locations []string
	for i := 0; i < 3; i++ {
		body := fmt.Sprintf(`{"fname":"F%d","lname":"L%d","age":%d,"title":"T"}`, i, i, 20+i)
		rec := doJSON(t, e, http.MethodPut, "/employees", body)
		require.Equal(t, http.StatusCreated, rec.Code)
		locations = append(locations, rec.Header().Get(echo.HeaderLocation))
	}

	rec = doJSON(t, e, http.MethodGet, "/employees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list model.EmployeeList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Results, 3)

	for _, location := range locations {
		require.Equal(t, http.StatusOK, doJSON(t, e, http.MethodGet, location, "").Code)
	}
}

func TestPartialUpdate(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory(model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 30, Title: "Eng"}))

	rec := doJSON(t, e, http.MethodPost, "/employees/1", `{"age":31,"id":42,"title":null}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/employees/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":1,"fname":"A","lname":"B","age":31,"title":"Eng"}`, rec.Body.String())

	rec = doJSON(t, e, http.MethodGet, "/employees/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateMissingEmployeeStillSucceeds(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := doJSON(t, e, http.MethodPost, "/employees/999", `{"age":31}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClientErrors(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory(model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 30, Title: "Eng"}))

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		error  string
	}{
		{"malformed json", http.MethodPut, "/employees", `{"fname":`, ""},
		{"wrong type", http.MethodPost, "/employees/1", `{"age":"old"}`, ""},
		{"missing column", http.MethodPut, "/employees", `{"fname":"Jo","age":40,"title":"Mgr"}`,
			`null value in column "lname" of relation "employees" violates not-null constraint`},
		{"null column", http.MethodPut, "/employees", `{"fname":"Jo","lname":null,"age":40,"title":"Mgr"}`,
			`null value in column "lname" of relation "employees" violates not-null constraint`},
		{"empty update", http.MethodPost, "/employees/1", `{"id":3}`, "no fields to update"},
		{"negative age", http.MethodPost, "/employees/1", `{"age":-1}`, "age must be at least 0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, e, tc.method, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Contains(t, body, "error")
			require.NotEmpty(t, body["error"])
			if tc.error != "" {
				require.Equal(t, tc.error, body["error"])
			}
		})
	}

	rec := doJSON(t, e, http.MethodGet, "/employees/1", "")
	require.JSONEq(t, `{"id":1,"fname":"A","lname":"B","age":30,"title":"Eng"}`, rec.Body.String())
}

func TestRoutingMisses(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory(model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 30, Title: "Eng"}))

	cases := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
	}{
		{"unknown path", http.MethodGet, "/managers", "", nil},
		{"wrong method", http.MethodPatch, "/employees/1", `{}`, map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}},
		{"post on collection", http.MethodPost, "/employees", `{}`, map[string]string{echo.HeaderContentType: echo.MIMEApplicationJSON}},
		{"non integer id", http.MethodGet, "/employees/abc", "", nil},
		{"id overflows int32", http.MethodDelete, "/employees/4294967296", "", nil},
		{"put without content type", http.MethodPut, "/employees", `{"fname":"Jo"}`, nil},
		{"put with text body", http.MethodPut, "/employees", `fname=Jo`, map[string]string{echo.HeaderContentType: echo.MIMETextPlain}},
		{"get accepting html only", http.MethodGet, "/employees/1", "", map[string]string{echo.HeaderAccept: echo.MIMETextHTML}},
		{"options on collection", http.MethodOptions, "/employees", "", nil},
		{"options on item", http.MethodOptions, "/employees/1", "", nil},
		{"options on unknown path", http.MethodOptions, "/nope", "", nil},
		{"options with origin only", http.MethodOptions, "/employees", "", map[string]string{echo.HeaderOrigin: "http://localhost:3000"}},
		{"preflight on unknown path", http.MethodOptions, "/nope", "", map[string]string{
			echo.HeaderOrigin:                     "http://localhost:3000",
			echo.HeaderAccessControlRequestMethod: http.MethodGet,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}

			rec := do(t, e, tc.method, tc.path, body, tc.headers)
			require.Equal(t, http.StatusNotFound, rec.Code)
			require.JSONEq(t, notFoundBody, rec.Body.String())
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := do(t, e, http.MethodOptions, "/employees", nil, map[string]string{
		echo.HeaderOrigin:                     "http://localhost:3000",
		echo.HeaderAccessControlRequestMethod: http.MethodPut,
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	require.Empty(t, rec.Body.String())
}

func TestBodylessRoutesIgnoreBody(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory(model.Employee{ID: 1, Fname: "A", Lname: "B", Age: 30, Title: "Eng"}))
	textBody := map[string]string{echo.HeaderContentType: echo.MIMETextPlain}

	rec := do(t, e, http.MethodGet, "/employees", strings.NewReader("hello"), textBody)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"results":[{"id":1,"fname":"A","lname":"B","age":30,"title":"Eng"}]}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/employees/1", strings.NewReader("hello"), textBody)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, "/employees/1", strings.NewReader("hello"), textBody)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())
}

func TestStorageFaultIsInternalServerError(t *testing.T) {
	mem := repositorytest.NewMemory()
	mem.Err = errors.New("connection refused")
	e := newTestRouter(t, mem)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/employees", ""},
		{http.MethodGet, "/employees/1", ""},
		{http.MethodDelete, "/employees/1", ""},
		{http.MethodPut, "/employees", `{"fname":"Jo","lname":"Doe","age":40,"title":"Mgr"}`},
		{http.MethodPost, "/employees/1", `{"age":3}`},
	} {
		rec := doJSON(t, e, tc.method, tc.path, tc.body)
		require.Equal(t, http.StatusInternalServerError, rec.Code, tc.method+" "+tc.path)
		require.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
	}
}

func TestRequestIDHeader(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := do(t, e, http.MethodGet, "/employees", nil, map[string]string{"X-Request-ID": "req-1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t, repositorytest.NewMemory())

	rec := do(t, e, http.MethodGet, "/openapi.json", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, json.Valid(rec.Body.Bytes()))

	// No database is wired into the test server.
	rec = do(t, e, http.MethodGet, "/status", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
