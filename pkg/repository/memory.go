package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// MemoryStore keeps bson-encoded documents in process memory. It backs the
// "memory" driver and the handler tests.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string][]byte),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) collection(name string) map[string][]byte {
	c, ok := m.collections[name]
	if !ok {
		c = make(map[string][]byte)
		m.collections[name] = c
	}
	return c
}

func (m *MemoryStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	m.mu.RLock()
	raw, ok := m.collections[collection][id]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (m *MemoryStore) Set(ctx context.Context, collection, id string, doc interface{}, stamps ...string) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stampFields(fields, m.now(), stamps)
	raw, err := encodeDocument(id, fields)
	if err != nil {
		return err
	}
	m.collection(collection)[id] = raw
	return nil
}

func (m *MemoryStore) Add(ctx context.Context, collection string, doc interface{}, stamps ...string) (string, error) {
	id := newDocumentID()
	if err := m.Set(ctx, collection, id, doc, stamps...); err != nil {
		return "", err
	}
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}, stamps ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.collection(collection)
	doc := bson.M{}
	if raw, ok := c[id]; ok {
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, id, err)
		}
	}

	if err := mergeFields(doc, fields); err != nil {
		return err
	}
	stampFields(doc, m.now(), stamps)

	raw, err := encodeDocument(id, doc)
	if err != nil {
		return err
	}
	c[id] = raw
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.collections[collection], id)
	return nil
}

func (m *MemoryStore) Find(ctx context.Context, collection string, out interface{}, filters ...Filter) error {
	m.mu.RLock()
	snapshot := make(map[string][]byte, len(m.collections[collection]))
	for id, raw := range m.collections[collection] {
		snapshot[id] = raw
	}
	m.mu.RUnlock()

	return decodeMatching(snapshot, out, filters)
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) Close(ctx context.Context) error {
	return nil
}
