package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"hrpilot/internal/storage"
	storage_mocks "hrpilot/internal/storage/mocks"
)

var fixedNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func newTestChecker(t *testing.T) (*Checker, *storage_mocks.MockEmployeeStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockEmployees := storage_mocks.NewMockEmployeeStore(ctrl)
	checker := NewChecker(mockEmployees)
	checker.now = func() time.Time { return fixedNow }
	return checker, mockEmployees
}

func visaIn(days int) *time.Time {
	t := fixedNow.AddDate(0, 0, days)
	return &t
}

func TestChecker_Check_SeverityThresholds(t *testing.T) {
	checker, mockEmployees := newTestChecker(t)

	employees := []storage.Employee{
		{ID: 1, Name: "Hazim", Role: "Software Engineer", Country: "Malaysia", VisaExpiry: visaIn(15)},
		{ID: 2, Name: "Sarah", Role: "Product Manager", Country: "Singapore", VisaExpiry: visaIn(30)},
		{ID: 3, Name: "Lee", Role: "Designer", Country: "Malaysia", VisaExpiry: visaIn(45)},
		{ID: 4, Name: "Mei", Role: "Analyst", Country: "Singapore", VisaExpiry: visaIn(60)},
		{ID: 5, Name: "Ravi", Role: "Engineer", Country: "India", VisaExpiry: visaIn(89)},
	}
	mockEmployees.EXPECT().
		ListVisaExpiring(gomock.Any(), fixedNow.AddDate(0, 0, 90)).
		Return(employees, nil)

	report, err := checker.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}

	wantSeverities := []string{"critical", "critical", "warning", "warning", "info"}
	if len(report.Alerts) != len(wantSeverities) {
		t.Fatalf("got %d alerts, want %d", len(report.Alerts), len(wantSeverities))
	}
	for i, alert := range report.Alerts {
		if alert.Severity != wantSeverities[i] {
			t.Errorf("alert %d (%s, %d days) severity = %q, want %q",
				i, alert.EmployeeName, alert.DaysUntilExpiry, alert.Severity, wantSeverities[i])
		}
	}

	if report.Alerts[0].DaysUntilExpiry != 15 {
		t.Errorf("daysUntilExpiry = %d, want 15", report.Alerts[0].DaysUntilExpiry)
	}
	if report.Alerts[0].ActionRequired != "URGENT: Immediate renewal required" {
		t.Errorf("critical alert action = %q", report.Alerts[0].ActionRequired)
	}
	if report.Alerts[2].ActionRequired != "Schedule renewal soon" {
		t.Errorf("warning alert action = %q", report.Alerts[2].ActionRequired)
	}

	want := Summary{TotalAlerts: 5, Critical: 2, Warnings: 2, Info: 1}
	if report.Summary != want {
		t.Errorf("summary = %+v, want %+v", report.Summary, want)
	}
	if !report.CheckedAt.Equal(fixedNow) {
		t.Errorf("checkedAt = %v, want %v", report.CheckedAt, fixedNow)
	}
}

func TestChecker_Check_NoExpirations(t *testing.T) {
	checker, mockEmployees := newTestChecker(t)
	mockEmployees.EXPECT().ListVisaExpiring(gomock.Any(), gomock.Any()).Return(nil, nil)

	report, err := checker.Check(context.Background())
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if report.Summary.TotalAlerts != 0 || len(report.Alerts) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestChecker_Check_StoreError(t *testing.T) {
	checker, mockEmployees := newTestChecker(t)
	storeErr := errors.New("db locked")
	mockEmployees.EXPECT().ListVisaExpiring(gomock.Any(), gomock.Any()).Return(nil, storeErr)

	if _, err := checker.Check(context.Background()); !errors.Is(err, storeErr) {
		t.Errorf("Check() error = %v, want wrapped %v", err, storeErr)
	}
}

func TestChecker_EmployeeStatus(t *testing.T) {
	tests := []struct {
		name            string
		employee        *storage.Employee
		wantCompliant   bool
		wantHasVisa     bool
		wantRecommended int
	}{
		{
			name:          "no visa is always compliant",
			employee:      &storage.Employee{ID: 3, Name: "Ahmad"},
			wantCompliant: true,
			wantHasVisa:   false,
		},
		{
			name:            "expired visa",
			employee:        &storage.Employee{ID: 1, Name: "Hazim", VisaExpiry: visaIn(-5)},
			wantCompliant:   false,
			wantHasVisa:     true,
			wantRecommended: 1,
		},
		{
			name:            "expiring within 30 days",
			employee:        &storage.Employee{ID: 1, Name: "Hazim", VisaExpiry: visaIn(20)},
			wantCompliant:   false,
			wantHasVisa:     true,
			wantRecommended: 1,
		},
		{
			name:            "expiring within 90 days",
			employee:        &storage.Employee{ID: 2, Name: "Sarah", VisaExpiry: visaIn(75)},
			wantCompliant:   true,
			wantHasVisa:     true,
			wantRecommended: 1,
		},
		{
			name:          "far future expiry",
			employee:      &storage.Employee{ID: 2, Name: "Sarah", VisaExpiry: visaIn(200)},
			wantCompliant: true,
			wantHasVisa:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker, mockEmployees := newTestChecker(t)
			mockEmployees.EXPECT().GetByID(gomock.Any(), tt.employee.ID).Return(tt.employee, nil)

			status, err := checker.EmployeeStatus(context.Background(), tt.employee.ID)
			if err != nil {
				t.Fatalf("EmployeeStatus() error = %v", err)
			}
			if status.IsCompliant != tt.wantCompliant {
				t.Errorf("isCompliant = %v, want %v", status.IsCompliant, tt.wantCompliant)
			}
			if status.HasVisa != tt.wantHasVisa {
				t.Errorf("hasVisa = %v, want %v", status.HasVisa, tt.wantHasVisa)
			}
			if len(status.Recommendations) != tt.wantRecommended {
				t.Errorf("recommendations = %v, want %d entries", status.Recommendations, tt.wantRecommended)
			}
		})
	}
}

func TestChecker_EmployeeStatus_NotFound(t *testing.T) {
	checker, mockEmployees := newTestChecker(t)
	mockEmployees.EXPECT().GetByID(gomock.Any(), 99).Return(nil, storage.ErrNotFound)

	if _, err := checker.EmployeeStatus(context.Background(), 99); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("EmployeeStatus() error = %v, want ErrNotFound", err)
	}
}
