package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/UnknownOlympus/staffapi/internal/config"
	"github.com/UnknownOlympus/staffapi/internal/handler"
	"github.com/UnknownOlympus/staffapi/internal/metrics"
	"github.com/UnknownOlympus/staffapi/internal/models"
	"github.com/UnknownOlympus/staffapi/internal/server"
	"github.com/UnknownOlympus/staffapi/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo keeps employees in a map and assigns ids like a serial column.
type memoryRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[int]models.Employee
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: make(map[int]models.Employee)}
}

func (m *memoryRepo) ListEmployees(_ context.Context) ([]models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]models.Employee, 0, len(m.rows))
	for id := 1; id < m.nextID; id++ {
		if employee, ok := m.rows[id]; ok {
			list = append(list, employee)
		}
	}

	return list, nil
}

func (m *memoryRepo) GetEmployeeByID(_ context.Context, identifier int) (models.Employee, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee, ok := m.rows[identifier]
	return employee, ok, nil
}

func (m *memoryRepo) CreateEmployee(_ context.Context, name, email, position string) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee := models.Employee{ID: m.nextID, Name: name, Email: email, Position: position}
	m.rows[employee.ID] = employee
	m.nextID++

	return employee, nil
}

func (m *memoryRepo) UpdateEmployee(
	_ context.Context, identifier int, name, email, position string,
) (models.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	employee := models.Employee{ID: identifier, Name: name, Email: email, Position: position}
	if _, ok := m.rows[identifier]; ok {
		m.rows[identifier] = employee
	}

	return employee, nil
}

func (m *memoryRepo) DeleteEmployee(_ context.Context, identifier int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rows, identifier)
	return nil
}

func (m *memoryRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.rows)
}

const basePath = "/api/employees"

func newTestRouter(t *testing.T) (http.Handler, *memoryRepo) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	repo := newMemoryRepo()
	reporter := handler.NewErrorReporter(logger, appMetrics)
	employeeHandler := handler.NewEmployeeHandler(logger, employees.NewService(logger, repo, appMetrics), reporter)

	router := server.NewRouter(logger, appMetrics, employeeHandler, reporter, config.HTTPConfig{BasePath: basePath})

	return router, repo
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	return rr
}

func TestRouter_CreateEmployee(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodPost, basePath, `{"name":"Ana","email":"a@x.com","position":"Eng"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":1,"name":"Ana","email":"a@x.com","position":"Eng"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestRouter_GetMissingEmployee(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, basePath+"/999", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Employee not found"}`, rr.Body.String())
}

func TestRouter_CreateWithEmptyFieldInsertsNothing(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)

	rr := do(t, router, http.MethodPost, basePath, `{"name":"","email":"a@x.com","position":"Eng"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), `"field":"name"`)
	assert.Equal(t, 0, repo.count())
}

func TestRouter_UpdateEmployee(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, basePath, `{"name":"Ana","email":"a@x.com","position":"Eng"}`).Code)

	updated := `{"id":1,"name":"Ana B","email":"a@x.com","position":"Sr Eng"}`
	rr := do(t, router, http.MethodPut, basePath+"/1", `{"name":"Ana B","email":"a@x.com","position":"Sr Eng"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, updated, rr.Body.String())

	rr = do(t, router, http.MethodGet, basePath+"/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, updated, rr.Body.String())

	rr = do(t, router, http.MethodPut, basePath+"/1", `{"name":"Ana B","email":"a@x.com","position":"Sr Eng"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(t, router, http.MethodGet, basePath+"/1", "")
	assert.JSONEq(t, updated, rr.Body.String())
}

func TestRouter_DeleteEmployee(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, basePath, `{"name":"Ana","email":"a@x.com","position":"Eng"}`).Code)

	rr := do(t, router, http.MethodDelete, basePath+"/1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Employee deleted"}`, rr.Body.String())
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, basePath+"/1", "").Code)
}

func TestRouter_MissingIDStillSucceeds(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)

	rr := do(t, router, http.MethodPut, basePath+"/42", `{"name":"Ghost","email":"g@x.com","position":"None"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"id":42,"name":"Ghost","email":"g@x.com","position":"None"}`, rr.Body.String())

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, basePath+"/42", "").Code)
	assert.Equal(t, 0, repo.count())
}

func TestRouter_List(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	for _, path := range []string{basePath, basePath + "/"} {
		rr := do(t, router, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, `[]`, rr.Body.String(), path)
	}

	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, basePath+"/", `{"name":"Ana","email":"a@x.com","position":"Eng"}`).Code)

	var list []models.Employee
	rr := do(t, router, http.MethodGet, basePath, "")
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, []models.Employee{{ID: 1, Name: "Ana", Email: "a@x.com", Position: "Eng"}}, list)
}

func TestRouter_InvalidUpdateIsRejected(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodPut, basePath+"/1", `{"name":"Ana","email":"nope","position":"Eng"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t,
		`{"error":"Validation failed","fields":[{"field":"email","error":"must be a valid email address"}]}`,
		rr.Body.String())
}

func TestRouter_OutOfRangeIDIsInvalid(t *testing.T) {
	t.Parallel()

	router, repo := newTestRouter(t)
	require.Equal(t, http.StatusCreated,
		do(t, router, http.MethodPost, basePath, `{"name":"Ana","email":"a@x.com","position":"Eng"}`).Code)

	body := `{"name":"Ana B","email":"a@x.com","position":"Sr Eng"}`
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rr := do(t, router, method, basePath+"/3000000000", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code, method)
		assert.JSONEq(t, `{"error":"invalid employee id"}`, rr.Body.String(), method)
	}

	assert.Equal(t, 1, repo.count())
}

func TestRouter_UnknownRoutes(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rr.Body.String())

	rr = do(t, router, http.MethodPatch, basePath+"/1", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.JSONEq(t, `{"error":"Method Not Allowed"}`, rr.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, basePath, nil)
	req.Header.Set("Origin", "https://staff.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_GzipLargeList(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	for i := range 50 {
		body := `{"name":"Employee ` + strconv.Itoa(i) + `","email":"e` + strconv.Itoa(i) + `@x.com","position":"Engineer"}`
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, basePath, body).Code)
	}

	req := httptest.NewRequest(http.MethodGet, basePath, nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}
