package storage

import (
	"context"
	"database/sql"
	"fmt"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_policy_store.go -package=mocks hrpilot/internal/storage PolicyStore

// PolicyStore is the read/write surface for seeded policy text.
type PolicyStore interface {
	ListAll(ctx context.Context) ([]Policy, error)
	Create(ctx context.Context, p *Policy) error
}

// PolicyRepository is a SQLite-backed PolicyStore.
type PolicyRepository struct {
	db *sql.DB
}

func NewPolicyRepository(db *sql.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

func (r *PolicyRepository) ListAll(ctx context.Context) ([]Policy, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, title, content, created_at FROM policies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	var policies []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *PolicyRepository) Create(ctx context.Context, p *Policy) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO policies (title, content) VALUES (?, ?)", p.Title, p.Content)
	if err != nil {
		return fmt.Errorf("failed to create policy: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get policy id: %w", err)
	}
	p.ID = int(id)
	return nil
}
