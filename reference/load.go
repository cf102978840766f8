package reference

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Load reads all three reference archives and returns a populated,
// read-only Store.
//
// When parallel is true the scheme archive loads concurrently with the
// tabular pair; the symbol list always loads before the validity file so
// that validity entries overwrite symbol-list statuses for any code both
// mention. The Store is only published after every loader finishes, so a
// caller observing Load's return sees fully immutable structures.
func Load(ctx context.Context, archives Archives, logger *zap.Logger, parallel bool) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	store := emptyStore()

	loadTabular := func() error {
		symbols, status, err := loadSymbolList(archives.SymbolList, logger)
		if err != nil {
			return err
		}

		overrides, err := loadValidity(archives.Validity, logger)
		if err != nil {
			return err
		}
		// The validity file has final say for any code it mentions.
		for code, s := range overrides {
			status[code] = s
		}

		store.symbols = symbols
		store.status = status
		return nil
	}

	loadHierarchy := func() error {
		parents, err := loadScheme(archives.Scheme, logger)
		if err != nil {
			return err
		}
		store.parents = parents
		return nil
	}

	if !parallel {
		if err := loadTabular(); err != nil {
			return nil, err
		}
		if err := loadHierarchy(); err != nil {
			return nil, err
		}
		return store, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(loadTabular)
	g.Go(loadHierarchy)
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return store, nil
}
