package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/service/directory"
	reportService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/report"
	requestService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/request"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var handlerTestNow = time.Date(2025, 7, 12, 1, 0, 0, 0, time.UTC)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router *chi.Mux
	tokens map[string]string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	data := fixtures.Demo(handlerTestNow, time.UTC)
	require.NoError(t, fixtures.HashDemoPasswords(data.Users, bcrypt.MinCost))
	store := memory.NewSeededStore(data)

	log := logger.Discard()
	clock := func() time.Time { return handlerTestNow }
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")
	dir := directory.NewDirectoryService(store.Users())
	attendance := attendanceService.NewAttendanceService(store.TimeEntries(), dir, time.UTC, log)
	requests := requestService.NewRequestService(store.Requests(), dir,
		requestService.WithClock(clock),
		requestService.WithLogger(log),
	)

	router := NewRouter(RouterOptions{Logger: log}, jwtService, Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(store.Users(), jwtService, log)),
		Attendance: NewAttendanceHandler(attendance, time.UTC, clock),
		Report:     NewReportHandler(reportService.NewReportService(attendance, time.UTC, log), clock),
		Directory:  NewDirectoryHandler(dir),
		Request:    NewRequestHandler(requests, dir),
	})

	tokens := map[string]string{}
	for _, u := range data.Users {
		token, _, err := jwtService.GenerateAccessToken(u)
		require.NoError(t, err)
		tokens[u.ID] = token
	}
	return testServer{router: router, tokens: tokens}
}

func (s testServer) do(t *testing.T, method, path, userID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.tokens[userID])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "Tanaka@Example.com",
		"password": fixtures.DemoPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var token struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &token))
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, fixtures.EmployeeTanakaID, token.User.ID)

	rec, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "tanaka@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "password")
}

func TestMe(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/me", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Name string `json:"name"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "鈴木 一郎", me.Name)
	assert.Equal(t, "Supervisor", me.Role)
}

func TestClockInOut(t *testing.T) {
	s := newTestServer(t)
	employee := fixtures.EmployeeTanakaID

	rec, env := s.do(t, http.MethodGet, "/api/v1/attendance/today", employee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-07-12","entry":null}`, string(env.Data))

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/clock-out", employee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", employee, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", employee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/clock-out", employee, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/attendance/clock-out", employee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/attendance/my", employee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []struct {
		Date string `json:"date"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entries))
	require.Len(t, entries, 5)
	assert.Equal(t, "2025-07-12", entries[0].Date)
}

func TestAttendanceRoles(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/attendance", fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance", fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/attendance", fixtures.AdminID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 8)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/team", fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/attendance/team", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var team []struct {
		UserID string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &team))
	require.Len(t, team, 6)
	for _, r := range team {
		assert.Contains(t, []string{fixtures.EmployeeTanakaID, fixtures.EmployeeSatoID}, r.UserID)
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, http.MethodGet, "/api/v1/attendance/export?scope=team&format=csv", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dakokun_attendance_2025-07-12.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "日付,社員名,出勤時刻,退勤時刻,労働時間(h),ステータス\n"))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/export?scope=all&format=xlsx", fixtures.AdminID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dakokun_attendance_2025-07-12.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/export?scope=all", fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/attendance/export", fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/api/v1/attendance/export?format=pdf", fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "format")
}

func TestDirectory(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/api/v1/team", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reports []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &reports))
	assert.Len(t, reports, 2)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/team", fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/users/"+fixtures.EmployeeSatoID, fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/users/"+fixtures.AdminID, fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/api/v1/users/nobody", fixtures.AdminID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/api/v1/requests", fixtures.EmployeeSatoID, map[string]string{
		"type":           "Overtime",
		"date":           "2025-07-12",
		"requested_time": "1h30m",
		"reason":         "月末処理",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Pending", created.Status)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests", fixtures.EmployeeSatoID, map[string]string{
		"type":           "Correction",
		"date":           "2025-07-12",
		"requested_time": "2h",
		"reason":         "x",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/api/v1/requests/managed", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var managed []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &managed))
	require.Len(t, managed, 4)
	assert.Equal(t, created.ID, managed[0].ID)

	// Employees cannot review, and another employee cannot read the request.
	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests/"+created.ID+"/approve", fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/requests/"+created.ID, fixtures.EmployeeTanakaID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = s.do(t, http.MethodGet, "/api/v1/requests/"+created.ID, fixtures.EmployeeSatoID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(t, http.MethodPost, "/api/v1/requests/"+created.ID+"/approve", fixtures.SupervisorID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resolved struct {
		Status     string  `json:"status"`
		ApproverID *string `json:"approver_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resolved))
	assert.Equal(t, "Approved", resolved.Status)
	require.NotNil(t, resolved.ApproverID)
	assert.Equal(t, fixtures.SupervisorID, *resolved.ApproverID)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests/"+created.ID+"/reject", fixtures.AdminID, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests/missing/reject", fixtures.AdminID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResolveRequiresRequestersSupervisor(t *testing.T) {
	s := newTestServer(t)

	// The supervisor's own request can only be resolved by their supervisor.
	rec, env := s.do(t, http.MethodPost, "/api/v1/requests", fixtures.SupervisorID, map[string]string{
		"type":           "Correction",
		"date":           "2025-07-11",
		"requested_time": "09:00",
		"reason":         "打刻忘れ",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests/"+created.ID+"/approve", fixtures.SupervisorID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/v1/requests/"+created.ID+"/reject", fixtures.AdminID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
