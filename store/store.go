package store

import (
	"context"

	"github.com/useadvisor/advisor/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// Migrate ensures the schema exists and seeds the default consultants into
// an empty consultant table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.driver.EnsureSchema(ctx); err != nil {
		return err
	}
	existing, err := s.ListConsultants(ctx, &FindConsultant{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, consultant := range DefaultConsultants() {
		if _, err := s.CreateConsultant(ctx, consultant); err != nil {
			return err
		}
	}
	return nil
}
