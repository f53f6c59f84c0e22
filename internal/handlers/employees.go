package handlers

import (
	"net/http"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/storage"
)

// EmployeesHandler lists employees for the admin views.
type EmployeesHandler struct {
	employees storage.EmployeeStore
}

// NewEmployeesHandler creates a new EmployeesHandler.
func NewEmployeesHandler(employees storage.EmployeeStore) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// EmployeeResponse is the public view of an employee. Salary is included; the
// API carries no authorization layer and is meant for internal HR tooling.
type EmployeeResponse struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Country      string `json:"country"`
	Salary       int    `json:"salary"`
	LeaveBalance int    `json:"leaveBalance"`
	VisaExpiry   string `json:"visaExpiry,omitempty"`
}

// ServeHTTP lists all employees.
func (h *EmployeesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	employees, err := h.employees.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list employees", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to list employees")
		return
	}

	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp := EmployeeResponse{
			ID:           e.ID,
			Name:         e.Name,
			Email:        e.Email,
			Role:         e.Role,
			Country:      e.Country,
			Salary:       e.Salary,
			LeaveBalance: e.LeaveBalance,
		}
		if e.VisaExpiry != nil {
			resp.VisaExpiry = e.VisaExpiry.Format("2006-01-02")
		}
		out = append(out, resp)
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":   true,
		"employees": out,
	})
}
