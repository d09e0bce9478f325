package api

import (
	"github.com/yourname/fitplanner/internal"
	"github.com/yourname/fitplanner/internal/service"
	"github.com/yourname/fitplanner/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Catalog() storage.CatalogRepository
	Plans() storage.PlanRepository
	// NewRandom returns the random source for one plan generation.
	NewRandom() service.RandomSource
}

type app struct {
	logger  internal.Logger
	catalog storage.CatalogRepository
	plans   storage.PlanRepository
	seed    uint64
}

// NewApp wires the repositories for the handlers. A non-zero seed makes
// every generated plan reproducible for the same request.
func NewApp(logger internal.Logger, catalog storage.CatalogRepository, plans storage.PlanRepository, seed uint64) App {
	return &app{logger: logger, catalog: catalog, plans: plans, seed: seed}
}

func (a *app) Logger() internal.Logger            { return a.logger }
func (a *app) Catalog() storage.CatalogRepository { return a.catalog }
func (a *app) Plans() storage.PlanRepository      { return a.plans }

func (a *app) NewRandom() service.RandomSource {
	if a.seed != 0 {
		return service.NewRandomSource(a.seed)
	}
	return service.NewUnseededRandomSource()
}
