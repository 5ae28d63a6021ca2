package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"contractor-erp/internal/payroll"
	payrollerrors "contractor-erp/internal/payroll/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakePayrollService struct {
	createFn  func(ctx context.Context, actorID string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error)
	previewFn func(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PreviewResponse, error)
	updateFn  func(ctx context.Context, actorID, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error)
	deleteFn  func(ctx context.Context, id string) error
	getByIDFn func(ctx context.Context, id string) (payroll.PayrollResponse, error)
	listFn    func(ctx context.Context, req payroll.ListPayrollFilterRequest) (payroll.ListResponse, error)
}

func (f *fakePayrollService) Create(ctx context.Context, actorID string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.createFn(ctx, actorID, req)
}

func (f *fakePayrollService) Preview(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PreviewResponse, error) {
	return f.previewFn(ctx, req)
}

func (f *fakePayrollService) Update(ctx context.Context, actorID, id string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
	return f.updateFn(ctx, actorID, id, req)
}

func (f *fakePayrollService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakePayrollService) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayrollService) List(ctx context.Context, req payroll.ListPayrollFilterRequest) (payroll.ListResponse, error) {
	return f.listFn(ctx, req)
}

func newRouter(svc payroll.Service, actorID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := payroll.NewHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", actorID) })
	r.POST("/payrolls", h.Create)
	r.POST("/payrolls/preview", h.Preview)
	r.GET("/payrolls", h.GetAll)
	r.GET("/payrolls/:id", h.GetByID)
	r.PATCH("/payrolls/:id", h.Update)
	r.DELETE("/payrolls/:id", h.Delete)
	return r
}

func TestHandler_Create(t *testing.T) {
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayrollService{
		createFn: func(ctx context.Context, aid string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, actorID, aid)
			require.NotNil(t, req.Bonus)
			assert.Equal(t, "120.5", req.Bonus.String())
			assert.Nil(t, req.Allowance)
			return payroll.PayrollResponse{ID: uuid.NewString(), Period: "03-2025", Net: "3120.50"}, nil
		},
	}
	r := newRouter(svc, actorID)

	body := `{"employee_id":"` + employeeID + `","labour_card":"LC-1","labour_card_personal_no":"PN-1","bonus":"120.5"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	assert.Contains(t, string(env.Data), `"period":"03-2025"`)
}

func TestHandler_Create_Errors(t *testing.T) {
	svc := &fakePayrollService{
		createFn: func(ctx context.Context, aid string, req payroll.CreatePayrollRequest) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{}, payrollerrors.ErrPayrollConflict
		},
	}
	r := newRouter(svc, uuid.New().String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(`{"labour_card":"LC-1"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)

	body := `{"employee_id":"` + uuid.NewString() + `","labour_card":"LC-1","labour_card_personal_no":"PN-1"}`
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", mustDecodeEnvelope(t, w.Body.Bytes()).Error.Code)
}

func TestHandler_Update_Delete_Get(t *testing.T) {
	id := uuid.NewString()
	svc := &fakePayrollService{
		updateFn: func(ctx context.Context, aid, pid string, req payroll.UpdatePayrollRequest) (payroll.PayrollResponse, error) {
			assert.Equal(t, id, pid)
			require.NotNil(t, req.Period)
			return payroll.PayrollResponse{ID: pid, Period: "03-2025"}, nil
		},
		deleteFn: func(ctx context.Context, pid string) error {
			return payrollerrors.ErrPayrollNotFound
		},
		getByIDFn: func(ctx context.Context, pid string) (payroll.PayrollResponse, error) {
			return payroll.PayrollResponse{ID: pid, Net: "10.00"}, nil
		},
	}
	r := newRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/payrolls/"+id, strings.NewReader(`{"period":"01-2020","mess":"20"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"period":"03-2025"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/payrolls/"+id, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls/"+id, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"net":"10.00"`)
}

func TestHandler_GetAll_PaginatesItemsKeepsTotals(t *testing.T) {
	svc := &fakePayrollService{
		listFn: func(ctx context.Context, req payroll.ListPayrollFilterRequest) (payroll.ListResponse, error) {
			assert.Equal(t, 3, req.Month)
			assert.Equal(t, 2025, req.Year)
			return payroll.ListResponse{
				Items:  []payroll.PayrollResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}},
				Totals: payroll.Totals{Count: 3, TotalNet: "900.00"},
			}, nil
		},
	}
	r := newRouter(svc, uuid.NewString())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payrolls?month=3&year=2025&page=2&page_size=2", nil))

	require.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	var data payroll.ListResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Items, 1)
	assert.Equal(t, "3", data.Items[0].ID)
	assert.Equal(t, 3, data.Totals.Count)
	assert.Contains(t, string(env.Meta), `"totalPages":2`)
}

func TestHandler_Preview(t *testing.T) {
	svc := &fakePayrollService{
		previewFn: func(ctx context.Context, req payroll.CreatePayrollRequest) (payroll.PreviewResponse, error) {
			return payroll.PreviewResponse{OvertimeDegraded: true}, nil
		},
	}
	r := newRouter(svc, uuid.NewString())

	body := `{"employee_id":"` + uuid.NewString() + `","labour_card":"LC-1","labour_card_personal_no":"PN-1"}`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payrolls/preview", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"overtime_degraded":true`)
}
