package storage

import "time"

// Categories are the accepted knowledge-base document categories.
// Unknown categories are coerced to "Other".
var Categories = []string{"Policy", "Procedure", "FAQ", "Manual", "Other"}

// ValidCategory returns the category itself when known, otherwise "Other".
func ValidCategory(category string) string {
	for _, c := range Categories {
		if c == category {
			return c
		}
	}
	return "Other"
}

// Employee is the relational source of truth for chat personalization,
// compliance checks and benchmarking.
type Employee struct {
	ID           int
	Name         string
	Email        string
	Role         string
	Country      string
	Salary       int
	LeaveBalance int
	// VisaExpiry is nil for employees who need no visa.
	VisaExpiry *time.Time
	CreatedAt  time.Time
}

// Policy holds seeded policy text whose embeddings populate the vector index.
type Policy struct {
	ID        int
	Title     string
	Content   string
	CreatedAt time.Time
}

// Document is an uploaded knowledge-base file. The raw bytes are kept even
// after a soft delete; only the document's vectors are purged.
type Document struct {
	ID          string
	Name        string
	Category    string
	Filename    string
	Description string
	Uploader    string
	Content     []byte
	ChunkCount  int
	UploadedAt  time.Time
	DeletedAt   *time.Time
}
