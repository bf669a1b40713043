package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	audit "home_energy_audit"
	"home_energy_audit/internal/engine"
	"home_energy_audit/internal/service"
)

var errSaveFailed = errors.New("save failed")

func addAuth(req *http.Request, token string) {
	for k, vv := range authHeader(token) {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}

func TestEvaluateAudit_RequiresAuth(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{},
		Audit:         &mockAudit{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit/", bytes.NewBufferString(`{}`))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}
}

func TestEvaluateAudit_ReturnsResult(t *testing.T) {
	auth := &mockAuth{parseID: 3}
	au := &mockAudit{result: audit.AuditResult{
		Cost:      audit.CostResult{TotalDollars: 1234.5},
		Emissions: audit.EmissionsResult{TotalKg: 987},
	}}
	s := &service.Service{Authorization: auth, Audit: au}
	r := newTestRouter(s)

	body := `{"year_built": 1975, "hdd65": 6200, "heating": {"kind": "gas_furnace"}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit/?sort=co2", bytes.NewBufferString(body))
	addAuth(req, "valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if au.evaluateCalls != 1 {
		t.Fatalf("expected Evaluate to be called once, got %d", au.evaluateCalls)
	}
	if au.lastParams.Sort != "co2" {
		t.Fatalf("sort param not passed through, got %q", au.lastParams.Sort)
	}
	if au.lastInput.YearBuilt != 1975 || au.lastInput.HDD65 != 6200 {
		t.Fatalf("input not passed through: %+v", au.lastInput)
	}

	var resp audit.AuditResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if resp.Cost.TotalDollars != 1234.5 || resp.Emissions.TotalKg != 987 {
		t.Fatalf("unexpected result: %+v", resp)
	}
}

func TestEvaluateAudit_MalformedBody(t *testing.T) {
	s := &service.Service{
		Authorization: &mockAuth{parseID: 3},
		Audit:         &mockAudit{},
	}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit/", bytes.NewBufferString(`{"year_built": "not a number"`))
	addAuth(req, "valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestEvaluateAudit_SaveFailureStillReturnsResult(t *testing.T) {
	au := &mockAudit{
		result:      audit.AuditResult{Cost: audit.CostResult{TotalDollars: 10}},
		evaluateErr: errSaveFailed,
	}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Audit: au}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audit/", bytes.NewBufferString(`{}`))
	addAuth(req, "valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("persist failure must not fail the request, got %d", w.Code)
	}
	var resp audit.AuditResult
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Cost.TotalDollars != 10 {
		t.Fatalf("result body missing: %s", w.Body.String())
	}
}

func TestGetDefaults(t *testing.T) {
	au := &mockAudit{defaults: engine.EraDefaults{WallR: 9, RoofR: 19, FloorR: 11, WindowU: 0.60, NaturalACH: 0.60}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Audit: au}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/defaults?year=1975", nil)
	addAuth(req, "valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if au.lastYear != 1975 {
		t.Fatalf("year not passed through, got %d", au.lastYear)
	}
	var resp engine.EraDefaults
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal defaults: %v", err)
	}
	if resp.WallR != 9 || resp.WindowU != 0.60 {
		t.Fatalf("unexpected defaults: %+v", resp)
	}

	// Bad year → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/defaults?year=recent", nil)
	addAuth(req, "valid")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad year, got %d", w.Code)
	}
}
