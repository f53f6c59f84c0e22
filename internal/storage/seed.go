package storage

import (
	"context"
	"fmt"
	"time"
)

// Seed populates an empty database with demo employees and HR policies.
// It is a no-op when employees already exist, so restarts are safe.
func Seed(ctx context.Context, employees EmployeeStore, policies PolicyStore) error {
	existing, err := employees.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing employees: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	visaIn := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}

	seedEmployees := []Employee{
		{
			Name:         "Hazim",
			Email:        "hazim@company.com",
			Role:         "Software Engineer",
			Country:      "Malaysia",
			Salary:       8000,
			LeaveBalance: 12,
			VisaExpiry:   visaIn(30),
		},
		{
			Name:         "Sarah",
			Email:        "sarah@company.com",
			Role:         "Product Manager",
			Country:      "Singapore",
			Salary:       10000,
			LeaveBalance: 15,
			VisaExpiry:   visaIn(60),
		},
		{
			Name:         "Ahmad",
			Email:        "ahmad@company.com",
			Role:         "Marketing Manager",
			Country:      "Malaysia",
			Salary:       7500,
			LeaveBalance: 8,
			VisaExpiry:   nil,
		},
	}
	for i := range seedEmployees {
		if err := employees.Create(ctx, &seedEmployees[i]); err != nil {
			return fmt.Errorf("failed to seed employee %s: %w", seedEmployees[i].Email, err)
		}
	}

	seedPolicies := []Policy{
		{
			Title:   "Lunch Allowance",
			Content: "Lunch allowance is RM20 per day for all employees. This is provided as a daily meal subsidy and must be claimed through the HR portal.",
		},
		{
			Title:   "Annual Leave",
			Content: "Annual leave entitlement: Employees receive 14 days of annual leave per year. Leave must be applied at least 7 days in advance through the HR system.",
		},
		{
			Title:   "Remote Work",
			Content: "Remote work policy: Employees may work from home up to 2 days per week with manager approval. Remote work requests must be submitted 24 hours in advance.",
		},
	}
	for i := range seedPolicies {
		if err := policies.Create(ctx, &seedPolicies[i]); err != nil {
			return fmt.Errorf("failed to seed policy %q: %w", seedPolicies[i].Title, err)
		}
	}

	return nil
}
