package repository

import (
	"SchoolQL/entity"
	"SchoolQL/internal/lib/metrics"
	"context"
	"time"
)

// Instrumented records latency and failures of the wrapped Store.
type Instrumented struct {
	Store
	metrics *metrics.Metrics
}

func NewInstrumented(store Store, m *metrics.Metrics) *Instrumented {
	return &Instrumented{Store: store, metrics: m}
}

func (i *Instrumented) Init(ctx context.Context) error {
	started := time.Now()
	err := i.Store.Init(ctx)
	i.metrics.ObserveStore("init", started, err)
	return err
}

func (i *Instrumented) Load(ctx context.Context) ([]entity.School, error) {
	started := time.Now()
	schools, err := i.Store.Load(ctx)
	i.metrics.ObserveStore("load", started, err)
	if err == nil {
		i.metrics.SetCollectionSize(len(schools))
	}
	return schools, err
}

func (i *Instrumented) Persist(ctx context.Context, schools []entity.School) error {
	started := time.Now()
	err := i.Store.Persist(ctx, schools)
	i.metrics.ObserveStore("persist", started, err)
	if err == nil {
		i.metrics.SetCollectionSize(len(schools))
	}
	return err
}
