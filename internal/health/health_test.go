// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
)

type staticChecker struct {
	name   string
	result CheckResult
}

func (c staticChecker) Name() string                      { return c.name }
func (c staticChecker) Check(context.Context) CheckResult { return c.result }

func TestServeHealthAlwaysOK(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(staticChecker{"broken", CheckResult{Status: StatusUnhealthy}})

	rec := httptest.NewRecorder()
	m.ServeHealth(rec, httptest.NewRequest("GET", "/healthz", nil))

	if rec.Code != 200 {
		t.Fatalf("liveness must be 200 regardless of checkers, got %d", rec.Code)
	}
}

func TestServeReadyAggregates(t *testing.T) {
	m := NewManager("v1")
	m.RegisterChecker(staticChecker{"good", CheckResult{Status: StatusHealthy}})

	rec := httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	m.RegisterChecker(staticChecker{"bad", CheckResult{Status: StatusUnhealthy, Error: "down"}})
	rec = httptest.NewRecorder()
	m.ServeReady(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != 503 {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Ready {
		t.Error("expected ready=false")
	}
	if resp.Checks["bad"].Error != "down" {
		t.Errorf("expected check detail, got %+v", resp.Checks)
	}
}

func TestTranscoderChecker(t *testing.T) {
	// "sh" is on PATH everywhere the tests run.
	ok := NewTranscoderChecker("sh").Check(context.Background())
	if ok.Status != StatusHealthy {
		t.Errorf("expected healthy, got %+v", ok)
	}

	bad := NewTranscoderChecker("definitely-not-a-binary-xyz").Check(context.Background())
	if bad.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %+v", bad)
	}
}

func TestScratchChecker(t *testing.T) {
	ok := NewScratchChecker(t.TempDir()).Check(context.Background())
	if ok.Status != StatusHealthy {
		t.Errorf("expected healthy, got %+v", ok)
	}

	bad := NewScratchChecker("/nonexistent/scratch").Check(context.Background())
	if bad.Status != StatusUnhealthy {
		t.Errorf("expected unhealthy, got %+v", bad)
	}
}
