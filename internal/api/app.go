package api

import (
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Store() storage.Store
	Now() time.Time
	RecommendationBatch() int
}

type app struct {
	logger internal.Logger
	store  storage.Store
	batch  int
}

func NewApp(store storage.Store, logger internal.Logger, recommendationBatch int) App {
	return &app{logger: logger, store: store, batch: recommendationBatch}
}

func (a *app) Logger() internal.Logger  { return a.logger }
func (a *app) Store() storage.Store     { return a.store }
func (a *app) Now() time.Time           { return time.Now() }
func (a *app) RecommendationBatch() int { return a.batch }
