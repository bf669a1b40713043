package handlers

import (
	"context"
	"net/http"
	"time"

	audit "home_energy_audit"
	"home_energy_audit/internal/engine"
	"home_energy_audit/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAudit struct {
	result      audit.AuditResult
	evaluateErr error
	defaults    engine.EraDefaults

	lastInput     audit.InputRecord
	lastParams    service.EvaluateParams
	lastYear      int
	evaluateCalls int
	previewCalls  int
}

func (m *mockAudit) Evaluate(ctx context.Context, in audit.InputRecord, p service.EvaluateParams) (audit.AuditResult, error) {
	m.evaluateCalls++
	m.lastInput = in
	m.lastParams = p
	return m.result, m.evaluateErr
}
func (m *mockAudit) Preview(in audit.InputRecord, p service.EvaluateParams) audit.AuditResult {
	m.previewCalls++
	m.lastInput = in
	m.lastParams = p
	return m.result
}
func (m *mockAudit) Defaults(year int) engine.EraDefaults {
	m.lastYear = year
	return m.defaults
}

type mockRunLog struct {
	resp       []audit.AuditRun
	err        error
	lastFilter service.RunFilter
}

func (m *mockRunLog) List(ctx context.Context, f service.RunFilter) ([]audit.AuditRun, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockRetention struct{}

func (m *mockRetention) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
