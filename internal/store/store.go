package store

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Collection names used by the console. Shapes match internal/models.
const (
	Companies     = "companies"
	Drivers       = "drivers"
	Vehicles      = "vehicles"
	Trips         = "trips"
	Appointments  = "appointments"
	Payments      = "payments"
	Passengers    = "passengers"
	Reviews       = "reviews"
	Notifications = "notifications"
	WorkingHours  = "workingHours"
	TimeOff       = "timeOff"
	Addresses     = "addresses"
	ActivityLogs  = "activityLogs"
)

// inChunkSize is the backend's native limit on $in list length. QueryIn
// chunks and merges so callers never see it.
const inChunkSize = 10

type OpKind int

const (
	OpAdd OpKind = iota
	OpUpdate
	OpDelete
)

// WriteOp is one element of a batch write. Doc is used by OpAdd, Fields by
// OpUpdate, ID by OpUpdate and OpDelete.
type WriteOp struct {
	Kind       OpKind
	Collection string
	ID         string
	Doc        any
	Fields     bson.M
}

// Store is the typed gateway to the document backend. Documents are keyed by
// an opaque string id assigned on insert; this layer never invents ids for
// existing documents.
type Store interface {
	// Query decodes every document matching filter into out (*[]T), in the
	// backend's natural order.
	Query(ctx context.Context, collection string, filter bson.M, out any) error
	// QuerySort is Query ordered by a single field; prefix "-" for
	// descending.
	QuerySort(ctx context.Context, collection string, filter bson.M, sort string, out any) error
	// QueryIn fetches documents whose field value is in values, chunking the
	// list to the backend limit and merging results into out (*[]T).
	QueryIn(ctx context.Context, collection, field string, values []string, out any) error
	// GetByIDs is QueryIn on the document id.
	GetByIDs(ctx context.Context, collection string, ids []string, out any) error
	// Get decodes one document into out; found reports whether it exists.
	Get(ctx context.Context, collection, id string, out any) (found bool, err error)
	// Add inserts doc, assigning a fresh id when the document carries none,
	// and returns the id.
	Add(ctx context.Context, collection string, doc any) (string, error)
	// Update applies a partial $set; it is never a full overwrite.
	Update(ctx context.Context, collection, id string, fields bson.M) error
	// Delete hard-deletes one document. Deleting an absent id is not an
	// error.
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string, filter bson.M) (int64, error)
	// BatchWrite applies ops as one batch, grouped per collection.
	BatchWrite(ctx context.Context, ops []WriteOp) error
}

// toDoc encodes a model struct into a raw document, stripping an empty id
// and assigning a fresh one.
func toDoc(doc any) (bson.M, string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, "", err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, "", err
	}
	id, _ := m["_id"].(string)
	if id == "" {
		id = uuid.New().String()
	}
	m["_id"] = id
	return m, id, nil
}

// decodeAll decodes raw documents into out, which must be a pointer to a
// slice of structs.
func decodeAll(docs []bson.M, out any) error {
	outv := reflect.ValueOf(out)
	if outv.Kind() != reflect.Ptr || outv.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("store: out must be a pointer to a slice, got %T", out)
	}
	slice := outv.Elem()
	elemType := slice.Type().Elem()
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		slice = reflect.Append(slice, elem.Elem())
	}
	outv.Elem().Set(slice)
	return nil
}

// chunk splits values into backend-sized groups.
func chunk(values []string, size int) [][]string {
	var out [][]string
	for len(values) > size {
		out = append(out, values[:size])
		values = values[size:]
	}
	if len(values) > 0 {
		out = append(out, values)
	}
	return out
}
