// Package compliance scans employee visa expiries and raises alerts before
// they become incidents.
package compliance

import (
	"context"
	"fmt"
	"math"
	"time"

	"hrpilot/internal/storage"
)

// lookaheadDays is how far into the future the scan looks.
const lookaheadDays = 90

// Severity thresholds in days until expiry.
const (
	criticalThreshold = 30
	warningThreshold  = 60
)

// Alert is one upcoming visa expiry.
type Alert struct {
	EmployeeID      int       `json:"employeeId"`
	EmployeeName    string    `json:"employeeName"`
	Role            string    `json:"role"`
	Country         string    `json:"country"`
	ExpiryDate      time.Time `json:"expiryDate"`
	DaysUntilExpiry int       `json:"daysUntilExpiry"`
	Severity        string    `json:"severity"`
	Message         string    `json:"message"`
	ActionRequired  string    `json:"actionRequired"`
}

// Summary counts alerts by severity.
type Summary struct {
	TotalAlerts int `json:"totalAlerts"`
	Critical    int `json:"critical"`
	Warnings    int `json:"warnings"`
	Info        int `json:"info"`
}

// Report is the result of a compliance scan.
type Report struct {
	Summary   Summary   `json:"summary"`
	Alerts    []Alert   `json:"alerts"`
	CheckedAt time.Time `json:"checkedAt"`
}

// EmployeeStatus is the per-employee compliance view.
type EmployeeStatus struct {
	EmployeeID      int        `json:"employeeId"`
	EmployeeName    string     `json:"employeeName"`
	HasVisa         bool       `json:"hasVisa"`
	IsCompliant     bool       `json:"isCompliant"`
	DaysUntilExpiry *int       `json:"daysUntilExpiry"`
	VisaExpiryDate  *time.Time `json:"visaExpiryDate,omitempty"`
	Recommendations []string   `json:"recommendations"`
}

// Checker runs visa compliance scans against the employee store.
type Checker struct {
	employees storage.EmployeeStore
	now       func() time.Time
}

func NewChecker(employees storage.EmployeeStore) *Checker {
	return &Checker{employees: employees, now: time.Now}
}

// Check scans for visas expiring within the next 90 days and classifies each
// by urgency: critical within 30 days, warning within 60, info otherwise.
func (c *Checker) Check(ctx context.Context) (*Report, error) {
	now := c.now()
	cutoff := now.AddDate(0, 0, lookaheadDays)

	employees, err := c.employees.ListVisaExpiring(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to scan visa expiries: %w", err)
	}

	report := &Report{Alerts: make([]Alert, 0, len(employees)), CheckedAt: now}
	for _, e := range employees {
		days := daysUntil(now, *e.VisaExpiry)

		severity := "info"
		switch {
		case days <= criticalThreshold:
			severity = "critical"
		case days <= warningThreshold:
			severity = "warning"
		}

		action := "Schedule renewal soon"
		if days <= criticalThreshold {
			action = "URGENT: Immediate renewal required"
		}

		report.Alerts = append(report.Alerts, Alert{
			EmployeeID:      e.ID,
			EmployeeName:    e.Name,
			Role:            e.Role,
			Country:         e.Country,
			ExpiryDate:      *e.VisaExpiry,
			DaysUntilExpiry: days,
			Severity:        severity,
			Message:         fmt.Sprintf("WARNING: %s's Visa expires in %d days.", e.Name, days),
			ActionRequired:  action,
		})

		switch severity {
		case "critical":
			report.Summary.Critical++
		case "warning":
			report.Summary.Warnings++
		default:
			report.Summary.Info++
		}
	}
	report.Summary.TotalAlerts = len(report.Alerts)

	return report, nil
}

// EmployeeStatus reports compliance for a single employee. Employees without
// a visa are always compliant.
func (c *Checker) EmployeeStatus(ctx context.Context, id int) (*EmployeeStatus, error) {
	e, err := c.employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := &EmployeeStatus{
		EmployeeID:      e.ID,
		EmployeeName:    e.Name,
		HasVisa:         e.VisaExpiry != nil,
		IsCompliant:     true,
		Recommendations: []string{},
	}
	if e.VisaExpiry == nil {
		return status, nil
	}

	days := daysUntil(c.now(), *e.VisaExpiry)
	status.DaysUntilExpiry = &days
	status.VisaExpiryDate = e.VisaExpiry

	switch {
	case days <= 0:
		status.IsCompliant = false
		status.Recommendations = append(status.Recommendations, "CRITICAL: Visa has expired! Immediate action required.")
	case days <= criticalThreshold:
		status.IsCompliant = false
		status.Recommendations = append(status.Recommendations, "Start visa renewal process immediately.")
	case days <= lookaheadDays:
		status.Recommendations = append(status.Recommendations, "Start preparing renewal documents.")
	}

	return status, nil
}

// daysUntil counts whole days from now to the expiry, rounding partial days up.
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
