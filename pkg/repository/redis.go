package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/frizzly/api/pkg/config"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
)

// RedisStore keeps each collection in one hash ("<prefix>:<collection>")
// mapping document id to its bson encoding. Stamps use the server's TIME.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(cfg *config.RedisConfig) *RedisStore {
	return NewRedisStoreFromClient(redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}), cfg.KeyPrefix)
}

func NewRedisStoreFromClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(collection string) string {
	if r.prefix == "" {
		return collection
	}
	return fmt.Sprintf("%s:%s", r.prefix, collection)
}

func (r *RedisStore) Get(ctx context.Context, collection, id string, out interface{}) error {
	raw, err := r.client.HGet(ctx, r.key(collection), id).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func (r *RedisStore) Set(ctx context.Context, collection, id string, doc interface{}, stamps ...string) error {
	fields, err := toDocument(doc)
	if err != nil {
		return err
	}

	if len(stamps) > 0 {
		now, err := r.client.Time(ctx).Result()
		if err != nil {
			return err
		}
		stampFields(fields, now, stamps)
	}

	raw, err := encodeDocument(id, fields)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, r.key(collection), id, raw).Err()
}

func (r *RedisStore) Add(ctx context.Context, collection string, doc interface{}, stamps ...string) (string, error) {
	id := newDocumentID()
	if err := r.Set(ctx, collection, id, doc, stamps...); err != nil {
		return "", err
	}
	return id, nil
}

// Update performs the read-merge-write under WATCH so a concurrent writer
// to the same collection aborts the merge instead of being overwritten.
func (r *RedisStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}, stamps ...string) error {
	key := r.key(collection)

	return r.client.Watch(ctx, func(tx *redis.Tx) error {
		doc := bson.M{}
		raw, err := tx.HGet(ctx, key, id).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			if err := bson.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("decode %s/%s: %w", collection, id, err)
			}
		}

		if err := mergeFields(doc, fields); err != nil {
			return err
		}
		if len(stamps) > 0 {
			now, err := tx.Time(ctx).Result()
			if err != nil {
				return err
			}
			stampFields(doc, now, stamps)
		}

		encoded, err := encodeDocument(id, doc)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, encoded)
			return nil
		})
		return err
	}, key)
}

func (r *RedisStore) Delete(ctx context.Context, collection, id string) error {
	return r.client.HDel(ctx, r.key(collection), id).Err()
}

func (r *RedisStore) Find(ctx context.Context, collection string, out interface{}, filters ...Filter) error {
	all, err := r.client.HGetAll(ctx, r.key(collection)).Result()
	if err != nil {
		return err
	}

	raws := make(map[string][]byte, len(all))
	for id, v := range all {
		raws[id] = []byte(v)
	}
	return decodeMatching(raws, out, filters)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close(ctx context.Context) error {
	return r.client.Close()
}
