package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/metricsx"
	"github.com/republichq/republic/pkg/slogx"
)

// MaxEventNameLen bounds event names accepted from clients.
const MaxEventNameLen = 128

type ClickService struct {
	Store   store.Store
	Metrics *metricsx.Metrics // optional
}

// Increment bumps the durable counter for eventName by one, creating it at 1.
func (s *ClickService) Increment(ctx context.Context, eventName string) error {
	name := strings.TrimSpace(eventName)
	if name == "" || len(name) > MaxEventNameLen {
		return ErrInvalidEvent
	}

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to acquire connection", slog.Any("error", err))
		return storageErr(err)
	}

	if err := q.Clicks().Increment(ctx, name); err != nil {
		slogx.FromContext(ctx).Error("failed to record click",
			slog.String("event", name),
			slog.Any("error", err),
		)
		return storageErr(err)
	}

	if s.Metrics != nil {
		s.Metrics.ObserveClick(name)
	}
	return nil
}

// Count returns the stored count for eventName, 0 if it was never recorded.
func (s *ClickService) Count(ctx context.Context, eventName string) (int64, error) {
	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		return 0, storageErr(err)
	}

	c, err := q.Clicks().Get(ctx, strings.TrimSpace(eventName))
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, storageErr(err)
	}
	return c.Count, nil
}

func (s *ClickService) List(ctx context.Context) ([]domain.ClickCount, error) {
	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		return nil, storageErr(err)
	}
	out, err := q.Clicks().List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return out, nil
}
