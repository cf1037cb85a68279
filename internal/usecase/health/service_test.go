package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(context.Context) error { return m.err }

type mockIndex struct{ ready bool }

func (m *mockIndex) Initialized() bool { return m.ready }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{}, &mockIndex{ready: true})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	for name, check := range report.Checks {
		if check != CheckOK {
			t.Errorf("check %s = %s, want ok", name, check)
		}
	}
	if len(report.Checks) != 3 {
		t.Errorf("expected 3 checks, got %d", len(report.Checks))
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockChecker{}, &mockIndex{ready: true})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("database check = %s, want error", report.Checks["database"])
	}
	if report.Checks["embedding"] != CheckOK {
		t.Errorf("embedding check = %s, want ok", report.Checks["embedding"])
	}
}

func TestCheck_EmbeddingDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("unauthorized")}, nil)

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %s, want error", report.Checks["embedding"])
	}
}

func TestCheck_KeywordIndexNotInitialized(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{}, &mockIndex{ready: false})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["keyword_index"] != CheckError {
		t.Errorf("keyword_index check = %s, want error", report.Checks["keyword_index"])
	}
}

func TestCheck_OptionalCheckersSkipped(t *testing.T) {
	svc := New(&mockPinger{}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status = %s, want %s", report.Status, Healthy)
	}
	if len(report.Checks) != 1 {
		t.Errorf("expected only the database check, got %d", len(report.Checks))
	}
}
