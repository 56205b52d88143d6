package cli

import (
	"github.com/pkg/errors"

	"github.com/idilsaglam/ohmyblood/internal/config"
	"github.com/idilsaglam/ohmyblood/internal/store"
	"github.com/idilsaglam/ohmyblood/internal/store/jsonstore"
	"github.com/idilsaglam/ohmyblood/internal/store/sqlstore"
)

// OpenStore opens the backend named in cfg under cfg.DataDir.
func OpenStore(cfg config.Config) (*store.Store, error) {
	var (
		b   store.Backend
		err error
	)
	switch cfg.Store {
	case config.StoreJSON:
		b, err = jsonstore.Open(cfg.DataDir)
	case config.StoreSQLite:
		b, err = sqlstore.Open(cfg.DataDir)
	default:
		return nil, errors.Errorf("unknown store %q", cfg.Store)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "open %s store", cfg.Store)
	}
	return store.New(b), nil
}
