// Package benchmark scores salary candidates against internal peers and
// produces a band-clamped recommendation with an equity check.
package benchmark

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"hrpilot/internal/storage"
)

// topMatchCount is how many peers feed the salary statistics.
const topMatchCount = 5

// Match is one peer comparison. Similarity is 0-100.
type Match struct {
	EmployeeID int      `json:"employeeId"`
	Name       string   `json:"name"`
	Similarity int      `json:"similarity"`
	Salary     int      `json:"salary"`
	Reasons    []string `json:"reasons"`
}

// SalaryStats summarizes the salary pool of the top matches.
type SalaryStats struct {
	Average int `json:"average"`
	Median  int `json:"median"`
	Min     int `json:"min"`
	Max     int `json:"max"`
}

// SalaryBand optionally bounds the recommendation. Nil means unbounded.
type SalaryBand struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// Recommendation is the suggested salary range around the target.
type Recommendation struct {
	Minimum    int      `json:"minimum"`
	Target     int      `json:"target"`
	Maximum    int      `json:"maximum"`
	Reasoning  []string `json:"reasoning"`
	Confidence int      `json:"confidence"`
}

// EquityImpact names a peer affected by the recommendation.
type EquityImpact struct {
	Name  string `json:"name"`
	Issue string `json:"issue"`
}

// EquityReport flags internal salary compression risk.
type EquityReport struct {
	Status            string         `json:"status"`
	CompressionRisk   string         `json:"compressionRisk"`
	ImpactedEmployees []EquityImpact `json:"impactedEmployees"`
	Message           string         `json:"message"`
}

// Candidate is the employee the analysis is about.
type Candidate struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Salary  int    `json:"salary"`
	Country string `json:"country"`
}

// Comparisons pairs the top matches with their salary statistics.
type Comparisons struct {
	Matches []Match     `json:"matches"`
	Stats   SalaryStats `json:"stats"`
}

// Analysis is the full benchmark result for one candidate.
type Analysis struct {
	Candidate      Candidate      `json:"candidate"`
	Comparisons    Comparisons    `json:"comparisons"`
	Recommendation Recommendation `json:"recommendation"`
	Equity         EquityReport   `json:"equity"`
}

// Engine runs salary benchmark analyses against the employee store.
type Engine struct {
	employees storage.EmployeeStore
}

func NewEngine(employees storage.EmployeeStore) *Engine {
	return &Engine{employees: employees}
}

// Analyze benchmarks the employee with the given email against everyone else.
// The email lookup is case-insensitive.
func (e *Engine) Analyze(ctx context.Context, email string, band SalaryBand) (*Analysis, error) {
	candidate, err := e.employees.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	peers, err := e.employees.ListOthers(ctx, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load peers: %w", err)
	}

	matches := make([]Match, 0, len(peers))
	for _, peer := range peers {
		similarity, reasons := similarity(candidate, &peer)
		matches = append(matches, Match{
			EmployeeID: peer.ID,
			Name:       peer.Name,
			Similarity: similarity,
			Salary:     peer.Salary,
			Reasons:    reasons,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})

	top := matches
	if len(top) > topMatchCount {
		top = top[:topMatchCount]
	}

	pool := make([]int, 0, len(top))
	for _, m := range top {
		pool = append(pool, m.Salary)
	}
	if len(pool) == 0 {
		pool = []int{candidate.Salary}
	}
	stats := computeStats(pool)

	target := stats.Median
	if target == 0 {
		target = candidate.Salary
	}
	rec := buildRecommendation(target, band)
	equity := checkEquity(rec.Target, candidate.Role, peers)

	rec.Reasoning = reasoning(stats, band, equity)
	rec.Confidence = min(95, 70+roundHalfUp(float64(len(top))/topMatchCount*20))

	return &Analysis{
		Candidate: Candidate{
			ID:      candidate.ID,
			Name:    candidate.Name,
			Email:   candidate.Email,
			Role:    candidate.Role,
			Salary:  candidate.Salary,
			Country: candidate.Country,
		},
		Comparisons:    Comparisons{Matches: top, Stats: stats},
		Recommendation: rec,
		Equity:         equity,
	}, nil
}

// similarity scores how comparable a peer is to the candidate. Same role is
// worth 60 points, any other role 20, same country 30, and up to 20 more for
// a close salary (one point lost per 500 of difference). Capped at 100.
func similarity(candidate, peer *storage.Employee) (int, []string) {
	score := 0
	var reasons []string

	if peer.Role == candidate.Role {
		score += 60
		reasons = append(reasons, "Same role")
	} else {
		score += 20
		reasons = append(reasons, "Related role")
	}
	if peer.Country == candidate.Country {
		score += 30
		reasons = append(reasons, "Same country")
	}

	diff := peer.Salary - candidate.Salary
	if diff < 0 {
		diff = -diff
	}
	bonus := 20 - roundHalfUp(float64(diff)/500)
	if bonus > 0 {
		score += bonus
		reasons = append(reasons, "Similar salary band")
	}

	return min(100, score), reasons
}

func computeStats(values []int) SalaryStats {
	if len(values) == 0 {
		return SalaryStats{}
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	total := 0
	for _, v := range sorted {
		total += v
	}

	mid := len(sorted) / 2
	median := sorted[mid]
	if len(sorted)%2 == 0 {
		median = roundHalfUp(float64(sorted[mid-1]+sorted[mid]) / 2)
	}

	return SalaryStats{
		Average: roundHalfUp(float64(total) / float64(len(sorted))),
		Median:  median,
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
	}
}

// buildRecommendation clamps the target into the band and spreads a
// minimum/maximum of roughly 3% around it, widened so the range always
// contains the target even for degenerate bands.
func buildRecommendation(target int, band SalaryBand) Recommendation {
	bandMin := 0
	bandMax := math.MaxInt
	if band.Min != nil {
		bandMin = *band.Min
	}
	if band.Max != nil {
		bandMax = *band.Max
	}

	clamped := clamp(target, bandMin, bandMax)
	lo := clamp(roundHalfUp(float64(clamped)*0.97), bandMin, bandMax)
	hi := clamp(roundHalfUp(float64(clamped)*1.03), bandMin, bandMax)

	return Recommendation{
		Minimum: min(lo, clamped),
		Target:  clamped,
		Maximum: max(hi, clamped),
	}
}

// checkEquity warns when the recommended target would outpace peers holding
// the same role. Going more than 10% above the role's current maximum is a
// high compression risk, anything above the maximum a medium one.
func checkEquity(recommended int, role string, peers []storage.Employee) EquityReport {
	var sameRole []storage.Employee
	for _, p := range peers {
		if p.Role == role {
			sameRole = append(sameRole, p)
		}
	}
	if len(sameRole) == 0 {
		return EquityReport{
			Status:            "PASS",
			CompressionRisk:   "none",
			ImpactedEmployees: []EquityImpact{},
			Message:           "No internal benchmarks available for this role",
		}
	}

	roleMax := sameRole[0].Salary
	for _, p := range sameRole[1:] {
		if p.Salary > roleMax {
			roleMax = p.Salary
		}
	}

	impacted := func(issue string) []EquityImpact {
		out := []EquityImpact{}
		for _, p := range sameRole {
			if p.Salary <= recommended {
				out = append(out, EquityImpact{Name: p.Name, Issue: issue})
			}
		}
		return out
	}

	if float64(recommended) > float64(roleMax)*1.1 {
		return EquityReport{
			Status:            "WARNING",
			CompressionRisk:   "high",
			ImpactedEmployees: impacted("Recommended salary exceeds current role maximum"),
			Message:           "Recommendation exceeds current role salary ceiling",
		}
	}
	if recommended > roleMax {
		return EquityReport{
			Status:            "WARNING",
			CompressionRisk:   "medium",
			ImpactedEmployees: impacted("Recommendation higher than current top salary"),
			Message:           "Potential salary compression for this role",
		}
	}
	return EquityReport{
		Status:            "PASS",
		CompressionRisk:   "none",
		ImpactedEmployees: []EquityImpact{},
		Message:           "No equity issues detected",
	}
}

func reasoning(stats SalaryStats, band SalaryBand, equity EquityReport) []string {
	lines := make([]string, 0, 3)
	if stats.Median != 0 {
		lines = append(lines, fmt.Sprintf("Median salary of similar staff is %d", stats.Median))
	} else {
		lines = append(lines, "Using candidate salary as baseline")
	}
	if band.Min != nil || band.Max != nil {
		lines = append(lines, "Recommendation adjusted to salary band limits")
	} else {
		lines = append(lines, "No salary band limits provided")
	}
	if equity.Status == "PASS" {
		lines = append(lines, "Equity check passed")
	} else {
		lines = append(lines, equity.Message)
	}
	return lines
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// roundHalfUp rounds to the nearest integer with halves going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
