package db

import (
	"github.com/pkg/errors"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/store"
	"github.com/useadvisor/advisor/store/db/mysql"
	"github.com/useadvisor/advisor/store/db/postgres"
	"github.com/useadvisor/advisor/store/db/sqlite"
)

// NewDBDriver creates the store driver matching the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch profile.Driver {
	case "sqlite":
		driver, err = sqlite.NewDB(profile)
	case "mysql":
		driver, err = mysql.NewDB(profile)
	case "postgres":
		driver, err = postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver: %s", profile.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create db driver")
	}
	return driver, nil
}
