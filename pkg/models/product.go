package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

type Product struct {
	ID   string `bson:"_id,omitempty" json:"id,omitempty"`
	Name string `bson:"name" json:"name"`
	// Price is either a number or a display string such as "$2.99/kg".
	Price       interface{} `bson:"price" json:"price"`
	Category    string      `bson:"category" json:"category"`
	ImageURL    string      `bson:"imageUrl" json:"imageUrl"`
	Description string      `bson:"description" json:"description"`
	InStock     bool        `bson:"inStock" json:"inStock"`
	CreatedAt   *time.Time  `bson:"createdAt,omitempty" json:"createdAt,omitempty"`

	// Extra holds fields merged in by product updates that have no
	// dedicated struct field.
	Extra bson.M `bson:",inline" json:"-"`
}

// MarshalJSON flattens Extra next to the named fields.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	base, err := json.Marshal(plain(p))
	if err != nil || len(p.Extra) == 0 {
		return base, err
	}

	out := make(map[string]interface{}, len(p.Extra)+8)
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return json.Marshal(out)
}

type CreateProductRequest struct {
	Name        string      `json:"name"`
	Price       interface{} `json:"price"`
	Category    string      `json:"category"`
	ImageURL    string      `json:"imageUrl"`
	Description *string     `json:"description"`
	InStock     *bool       `json:"inStock"`
}

// Product applies the create defaults: empty description, in stock.
func (r *CreateProductRequest) Product() *Product {
	p := &Product{
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		ImageURL: r.ImageURL,
		InStock:  true,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	return p
}

// productFields mirrors the typed product fields for patch checking.
type productFields struct {
	Name        *string     `json:"name"`
	Price       interface{} `json:"price"`
	Category    *string     `json:"category"`
	ImageURL    *string     `json:"imageUrl"`
	Description *string     `json:"description"`
	InStock     *bool       `json:"inStock"`
}

// storeOwned are keys a patch may not write: the identifier and the
// store-assigned creation time.
var storeOwned = map[string]bool{"id": true, "_id": true, "createdAt": true}

// typedFields must keep a non-null value of their declared type.
var typedFields = map[string]bool{
	"name": true, "category": true, "imageUrl": true, "description": true, "inStock": true,
}

// ProductPatch returns the fields of a product update that should be
// merged into the stored document. Unknown fields pass through untouched.
// Store-owned keys are dropped, and named fields must keep their types so
// the document still reads back as a Product.
func ProductPatch(payload map[string]interface{}) (map[string]interface{}, error) {
	patch := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		root := strings.SplitN(k, ".", 2)[0]
		switch {
		case k == "" || strings.HasPrefix(k, "$"):
			return nil, &InvalidFieldError{Field: k, Reason: "invalid field name"}
		case storeOwned[root]:
			continue
		case root != k && (typedFields[root] || root == "price"):
			return nil, &InvalidFieldError{Field: k, Reason: "cannot set a nested path on " + root}
		case v == nil && typedFields[k]:
			return nil, &InvalidFieldError{Field: k, Reason: "must not be null"}
		}
		patch[k] = v
	}

	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, &InvalidFieldError{Field: "payload", Reason: err.Error()}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var fields productFields
	if err := dec.Decode(&fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &InvalidFieldError{Field: typeErr.Field, Reason: "expected " + typeErr.Type.String()}
		}
		return nil, &InvalidFieldError{Field: "payload", Reason: err.Error()}
	}

	return patch, nil
}
