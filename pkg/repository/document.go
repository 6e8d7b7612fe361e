package repository

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Helpers shared by the drivers that keep raw bson documents themselves
// (memory and redis).

func newDocumentID() string {
	return primitive.NewObjectID().Hex()
}

// toDocument flattens any bson-encodable value into a bson.M.
func toDocument(doc interface{}) (bson.M, error) {
	if doc == nil {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

// normalize round-trips a single value through bson so that it compares
// equal to what a decoded document holds (int -> int32, []string -> A ...).
func normalize(v interface{}) (interface{}, error) {
	m, err := toDocument(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return m["v"], nil
}

// setPath assigns value at a dotted path, creating intermediate documents.
func setPath(doc bson.M, path string, value interface{}) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(bson.M)
		if !ok {
			next = bson.M{}
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func mergeFields(doc bson.M, fields map[string]interface{}) error {
	for k, v := range fields {
		nv, err := normalize(v)
		if err != nil {
			return fmt.Errorf("field %s: %w", k, err)
		}
		setPath(doc, k, nv)
	}
	return nil
}

func stampFields(doc bson.M, now time.Time, stamps []string) {
	ts := primitive.NewDateTimeFromTime(now)
	for _, f := range stamps {
		setPath(doc, f, ts)
	}
}

func matchesFilters(doc bson.M, filters []Filter) (bool, error) {
	for _, f := range filters {
		want, err := normalize(f.Value)
		if err != nil {
			return false, err
		}
		got, ok := doc[f.Field]
		if !ok || !reflect.DeepEqual(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// encodeDocument stores id under "_id" and returns the bson bytes.
func encodeDocument(id string, doc bson.M) ([]byte, error) {
	doc["_id"] = id
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

// decodeMatching filters raw documents, sorts them by id and appends them
// to the slice out points to.
func decodeMatching(raws map[string][]byte, out interface{}, filters []Filter) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find: out must be a pointer to a slice, got %T", out)
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()

	ids := make([]string, 0, len(raws))
	for id := range raws {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := reflect.MakeSlice(slice.Type(), 0, len(ids))
	for _, id := range ids {
		raw := raws[id]
		if len(filters) > 0 {
			var doc bson.M
			if err := bson.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("decode %s: %w", id, err)
			}
			ok, err := matchesFilters(doc, filters)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}

		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return fmt.Errorf("decode %s: %w", id, err)
		}
		result = reflect.Append(result, elem.Elem())
	}

	slice.Set(result)
	return nil
}
