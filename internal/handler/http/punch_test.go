package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajasreeit/crm-backend-go/internal/domain/auth"
	employeeDomain "github.com/rajasreeit/crm-backend-go/internal/domain/employee"
	punchDomain "github.com/rajasreeit/crm-backend-go/internal/domain/punch"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/clock"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/jwt"
	"github.com/rajasreeit/crm-backend-go/internal/repository/memory"
	authService "github.com/rajasreeit/crm-backend-go/internal/service/auth"
	employeeService "github.com/rajasreeit/crm-backend-go/internal/service/employee"
	enquiryService "github.com/rajasreeit/crm-backend-go/internal/service/enquiry"
	leaveService "github.com/rajasreeit/crm-backend-go/internal/service/leave"
	punchService "github.com/rajasreeit/crm-backend-go/internal/service/punch"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type punchTestEnv struct {
	router   http.Handler
	jwt      jwt.Service
	employee employeeDomain.Employee
}

func newPunchTestEnv(t *testing.T, punchRepo punchDomain.Repository) punchTestEnv {
	t.Helper()

	employeeRepo := memory.NewEmployeeRepository()
	emp, err := employeeRepo.Create(context.Background(), employeeDomain.Employee{
		FullName:     "Asha Rao",
		MobileNumber: "9876543210",
		PasswordHash: "irrelevant",
	})
	require.NoError(t, err)

	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	engine := punchService.NewEngine(punchRepo, employeeRepo, nil, clock.System(), nil)
	queries := punchService.NewQueryService(punchRepo, employeeRepo)
	authSvc := authService.NewAuthService(memory.NewAdminRepository(), employeeRepo, jwtService, nil)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(memory.NewLeaveRepository(), employeeRepo)
	enquirySvc := enquiryService.NewEnquiryService(memory.NewEnquiryRepository(), employeeRepo)

	router := NewRouter(
		RouterConfig{Env: "test", LogLevel: slog.LevelError},
		jwtService,
		NewAuthHandler(authSvc),
		NewPunchHandler(engine, queries),
		NewEmployeeHandler(employeeSvc),
		NewLeaveHandler(leaveSvc),
		NewEnquiryHandler(enquirySvc),
	)

	return punchTestEnv{router: router, jwt: jwtService, employee: emp}
}

func (e punchTestEnv) tokenFor(t *testing.T, subject string, role auth.Role) string {
	t.Helper()
	token, _, err := e.jwt.GenerateAccessToken(subject, role)
	require.NoError(t, err)
	return token
}

type filePart struct {
	field    string
	filename string
	content  []byte
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID             string  `json:"id"`
		TimeOfPunchIn  *string `json:"time_of_punch_in"`
		TimeOfPunchOut *string `json:"time_of_punch_out"`
		WorkedHours    *string `json:"worked_hours"`
		WorkReport     *string `json:"work_report"`
	} `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (e punchTestEnv) punch(t *testing.T, token string, body *bytes.Buffer, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/employee/punch", body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestPunchEndpointOpensCycle(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	body, contentType := multipartBody(t, map[string]string{"workReport": "Started on the billing migration"})
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data.TimeOfPunchIn)
	assert.Nil(t, resp.Data.TimeOfPunchOut)
	require.NotNil(t, resp.Data.WorkReport)
	assert.Equal(t, "Started on the billing migration", *resp.Data.WorkReport)
}

func TestPunchEndpointClosesCycle(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	body, contentType := multipartBody(t, nil)
	rr, _ := env.punch(t, token, body, contentType)
	require.Equal(t, http.StatusCreated, rr.Code)

	body, contentType = multipartBody(t, map[string]string{"workReport": "Closed ticket #42"})
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data.TimeOfPunchOut)
	require.NotNil(t, resp.Data.WorkedHours)
}

func TestPunchEndpointRejectsExplicitPunchOut(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	body, contentType := multipartBody(t, nil, filePart{
		field:    "punchOutImage",
		filename: "proof.jpg",
		content:  []byte("jpeg-bytes"),
	})
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "No active punch-in found", resp.Error.Message)
}

func TestPunchEndpointUnknownSubject(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, "0000000000", auth.RoleEmployee)

	body, contentType := multipartBody(t, nil)
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestPunchEndpointRequiresToken(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())

	body, contentType := multipartBody(t, nil)
	rr, _ := env.punch(t, "", body, contentType)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestPunchEndpointValidationError(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	body, contentType := multipartBody(t, nil, filePart{
		field:    "punchInImage",
		filename: "proof.gif",
		content:  []byte("gif-bytes"),
	})
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "punch_in_image")
}

type faultyPunchRepo struct {
	punchDomain.Repository
}

func (r *faultyPunchRepo) FindOpen(context.Context, string) (*punchDomain.PunchActivity, error) {
	return nil, errors.New("connection reset")
}

func TestPunchEndpointStorageFault(t *testing.T) {
	env := newPunchTestEnv(t, &faultyPunchRepo{Repository: memory.NewPunchRepository()})
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	body, contentType := multipartBody(t, nil)
	rr, resp := env.punch(t, token, body, contentType)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", resp.Error.Code)
	// The transport never leaks the underlying fault
	assert.NotContains(t, resp.Error.Message, "connection reset")
}

func TestPunchAdminGetNotFound(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, "admin", auth.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/punch/no-such-id", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPunchAdminRoutesRejectEmployeeRole(t *testing.T) {
	env := newPunchTestEnv(t, memory.NewPunchRepository())
	token := env.tokenFor(t, env.employee.MobileNumber, auth.RoleEmployee)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/punch/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
