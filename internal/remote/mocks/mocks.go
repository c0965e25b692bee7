// Package mocks provides testify mocks for the remote store boundary.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/halcyra/cadence/internal/domain/event"
)

// Store is a mock for remote.Store.
type Store struct {
	mock.Mock
}

func (m *Store) List(ctx context.Context) ([]event.Event, error) {
	args := m.Called(ctx)
	if events, ok := args.Get(0).([]event.Event); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Create(ctx context.Context, e event.Event) (event.Event, error) {
	args := m.Called(ctx, e)
	if created, ok := args.Get(0).(event.Event); ok {
		return created, args.Error(1)
	}
	return event.Event{}, args.Error(1)
}

func (m *Store) Update(ctx context.Context, e event.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *Store) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
