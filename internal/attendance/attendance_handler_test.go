package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contractor-erp/internal/attendance"
	attendanceerrors "contractor-erp/internal/attendance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	recordFn     func(ctx context.Context, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error)
	getAllFn     func(ctx context.Context, filter attendance.ListAttendanceFilterRequest) ([]attendance.AttendanceResponse, error)
	getSummaryFn func(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error)
}

func (f *fakeService) Record(ctx context.Context, actorID string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	return f.recordFn(ctx, actorID, req)
}
func (f *fakeService) GetAll(ctx context.Context, filter attendance.ListAttendanceFilterRequest) ([]attendance.AttendanceResponse, error) {
	return f.getAllFn(ctx, filter)
}
func (f *fakeService) GetSummary(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
	return f.getSummaryFn(ctx, req)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestHandler_Record(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakeService{
		recordFn: func(ctx context.Context, aid string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, actorID, aid)
			assert.Equal(t, 12.0, req.WorkingHours)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: req.EmployeeID, OvertimeHours: 2}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", actorID)
	body := `{"employee_id":"` + employeeID + `","date":"2025-03-01","present":true,"working_hours":12}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Record(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := decode(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), `"overtime_hours":2`)
}

func TestHandler_Record_BindingError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(`{"date":"2025-03-01"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Record(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w.Body.Bytes())
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestHandler_Record_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeService{
		recordFn: func(ctx context.Context, aid string, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"employee_id":"` + uuid.New().String() + `","date":"2025-03-01"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/attendances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Record(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", decode(t, w.Body.Bytes()).Error.Code)
}

func TestHandler_GetSummaryAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		getSummaryFn: func(ctx context.Context, req attendance.SummaryRequest) (attendance.SummaryResponse, error) {
			assert.Equal(t, 3, req.Month)
			assert.Equal(t, 2025, req.Year)
			return attendance.SummaryResponse{EmployeeID: req.EmployeeID, Period: "03-2025", Summary: attendance.Summary{SundayWorkingDays: 2}}, nil
		},
		getAllFn: func(ctx context.Context, filter attendance.ListAttendanceFilterRequest) ([]attendance.AttendanceResponse, error) {
			return []attendance.AttendanceResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/attendances/summary?employee_id="+employeeID+"&month=3&year=2025", nil)
	h.GetSummary(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sunday_working_days":2`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/attendances?page=1&page_size=2", nil)
	h.GetAll(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), `"totalPages":2`)

	w3 := httptest.NewRecorder()
	c3, _ := gin.CreateTestContext(w3)
	c3.Request = httptest.NewRequest(http.MethodGet, "/attendances/summary?employee_id="+employeeID+"&month=13&year=2025", nil)
	h.GetSummary(c3)
	assert.Equal(t, http.StatusBadRequest, w3.Code)
}
