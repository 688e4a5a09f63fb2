package store

import "context"

// Consultant is a named advisor persona: a behavioral system instruction plus
// the topic scope used for intent gating. Created and updated by an external
// administrative surface; the chat path only ever reads it.
type Consultant struct {
	ID                int32
	ConsultantID      string
	Name              string
	SystemInstruction string
	TopicScope        []string
	IsActive          bool
	CreatedTs         int64
	UpdatedTs         int64
}

// FindConsultant filters for GetConsultant / ListConsultants.
type FindConsultant struct {
	ConsultantID *string
	IsActive     *bool
}

// CreateConsultant persists a new consultant persona.
func (s *Store) CreateConsultant(ctx context.Context, create *Consultant) (*Consultant, error) {
	return s.driver.CreateConsultant(ctx, create)
}

// GetConsultant returns the first consultant matching the filter, or nil.
func (s *Store) GetConsultant(ctx context.Context, find *FindConsultant) (*Consultant, error) {
	return s.driver.GetConsultant(ctx, find)
}

// ListConsultants lists consultants matching the filter.
func (s *Store) ListConsultants(ctx context.Context, find *FindConsultant) ([]*Consultant, error) {
	return s.driver.ListConsultants(ctx, find)
}
