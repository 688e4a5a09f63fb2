package store

import "context"

// CreateChatRecord creates the durable record for a new session.
func (s *Store) CreateChatRecord(ctx context.Context, create *ChatRecord) (*ChatRecord, error) {
	return s.driver.CreateChatRecord(ctx, create)
}

// GetChatRecord returns the first record matching the given filter, or nil.
func (s *Store) GetChatRecord(ctx context.Context, find *FindChatRecord) (*ChatRecord, error) {
	return s.driver.GetChatRecord(ctx, find)
}

// ListChatRecords lists records matching the given filter, most recently
// updated first.
func (s *Store) ListChatRecords(ctx context.Context, find *FindChatRecord) ([]*ChatRecord, error) {
	return s.driver.ListChatRecords(ctx, find)
}

// UpdateChatRecord updates a record's consultant binding and bumps updated_ts.
func (s *Store) UpdateChatRecord(ctx context.Context, update *UpdateChatRecord) (*ChatRecord, error) {
	return s.driver.UpdateChatRecord(ctx, update)
}

// CreateChatTurn appends a new turn to a record.
func (s *Store) CreateChatTurn(ctx context.Context, create *CreateChatTurn) (*ChatTurn, error) {
	return s.driver.CreateChatTurn(ctx, create)
}

// CreateChatExchange atomically appends a completed user/model pair and
// re-binds the record's consultant. Either both turns are persisted or
// neither is.
func (s *Store) CreateChatExchange(ctx context.Context, create *CreateChatExchange) error {
	return s.driver.CreateChatExchange(ctx, create)
}

// ListChatTurns returns all turns for a record, ordered oldest first.
func (s *Store) ListChatTurns(ctx context.Context, find *FindChatTurn) ([]*ChatTurn, error) {
	return s.driver.ListChatTurns(ctx, find)
}
