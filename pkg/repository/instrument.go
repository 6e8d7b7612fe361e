package repository

import (
	"context"
	"time"
)

// Observer receives the outcome of every store call.
type Observer func(operation, collection string, start time.Time, err error)

type instrumentedStore struct {
	next    DocumentStore
	observe Observer
}

// Instrument wraps store so every collection operation is reported to observe.
func Instrument(store DocumentStore, observe Observer) DocumentStore {
	if store == nil || observe == nil {
		return store
	}
	return &instrumentedStore{next: store, observe: observe}
}

func (s *instrumentedStore) Get(ctx context.Context, collection, id string, out interface{}) (err error) {
	defer func(start time.Time) { s.observe("get", collection, start, err) }(time.Now())
	return s.next.Get(ctx, collection, id, out)
}

func (s *instrumentedStore) Set(ctx context.Context, collection, id string, doc interface{}, stamps ...string) (err error) {
	defer func(start time.Time) { s.observe("set", collection, start, err) }(time.Now())
	return s.next.Set(ctx, collection, id, doc, stamps...)
}

func (s *instrumentedStore) Add(ctx context.Context, collection string, doc interface{}, stamps ...string) (id string, err error) {
	defer func(start time.Time) { s.observe("add", collection, start, err) }(time.Now())
	return s.next.Add(ctx, collection, doc, stamps...)
}

func (s *instrumentedStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}, stamps ...string) (err error) {
	defer func(start time.Time) { s.observe("update", collection, start, err) }(time.Now())
	return s.next.Update(ctx, collection, id, fields, stamps...)
}

func (s *instrumentedStore) Delete(ctx context.Context, collection, id string) (err error) {
	defer func(start time.Time) { s.observe("delete", collection, start, err) }(time.Now())
	return s.next.Delete(ctx, collection, id)
}

func (s *instrumentedStore) Find(ctx context.Context, collection string, out interface{}, filters ...Filter) (err error) {
	defer func(start time.Time) { s.observe("find", collection, start, err) }(time.Now())
	return s.next.Find(ctx, collection, out, filters...)
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *instrumentedStore) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}
