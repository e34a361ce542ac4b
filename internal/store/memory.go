package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemStore is an in-memory Store used by tests and the offline demo mode.
// It keeps insertion order per collection so query order is deterministic.
type MemStore struct {
	mu    sync.RWMutex
	colls map[string][]bson.M
}

func NewMem() *MemStore {
	return &MemStore{colls: make(map[string][]bson.M)}
}

func matchValue(docVal, filterVal any) bool {
	if m, ok := filterVal.(bson.M); ok {
		if in, ok := m["$in"]; ok {
			switch vals := in.(type) {
			case []string:
				for _, v := range vals {
					if fmt.Sprint(docVal) == v {
						return true
					}
				}
			case bson.A:
				for _, v := range vals {
					if fmt.Sprint(docVal) == fmt.Sprint(v) {
						return true
					}
				}
			}
			return false
		}
	}
	return fmt.Sprint(docVal) == fmt.Sprint(filterVal)
}

func matches(doc bson.M, filter bson.M) bool {
	for k, v := range filter {
		if !matchValue(doc[k], v) {
			return false
		}
	}
	return true
}

func (s *MemStore) selectDocs(collection string, filter bson.M) []bson.M {
	var out []bson.M
	for _, doc := range s.colls[collection] {
		if matches(doc, filter) {
			out = append(out, doc)
		}
	}
	return out
}

func (s *MemStore) Query(ctx context.Context, collection string, filter bson.M, out any) error {
	s.mu.RLock()
	docs := s.selectDocs(collection, filter)
	s.mu.RUnlock()
	return decodeAll(docs, out)
}

func less(a, b any) bool {
	ad, aok := a.(primitive.DateTime)
	bd, bok := b.(primitive.DateTime)
	if aok && bok {
		return ad < bd
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func (s *MemStore) QuerySort(ctx context.Context, collection string, filter bson.M, sortKey string, out any) error {
	desc := strings.HasPrefix(sortKey, "-")
	field := strings.TrimPrefix(sortKey, "-")
	s.mu.RLock()
	docs := s.selectDocs(collection, filter)
	s.mu.RUnlock()
	sort.SliceStable(docs, func(i, j int) bool {
		if desc {
			return less(docs[j][field], docs[i][field])
		}
		return less(docs[i][field], docs[j][field])
	})
	return decodeAll(docs, out)
}

func (s *MemStore) QueryIn(ctx context.Context, collection, field string, values []string, out any) error {
	var docs []bson.M
	s.mu.RLock()
	for _, group := range chunk(values, inChunkSize) {
		docs = append(docs, s.selectDocs(collection, bson.M{field: bson.M{"$in": group}})...)
	}
	s.mu.RUnlock()
	return decodeAll(docs, out)
}

func (s *MemStore) GetByIDs(ctx context.Context, collection string, ids []string, out any) error {
	return s.QueryIn(ctx, collection, "_id", ids, out)
}

func (s *MemStore) Get(ctx context.Context, collection, id string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.colls[collection] {
		if fmt.Sprint(doc["_id"]) == id {
			raw, err := bson.Marshal(doc)
			if err != nil {
				return false, err
			}
			return true, bson.Unmarshal(raw, out)
		}
	}
	return false, nil
}

func (s *MemStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	m, id, err := toDoc(doc)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.colls[collection] = append(s.colls[collection], m)
	s.mu.Unlock()
	return id, nil
}

func (s *MemStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(collection, id, fields)
}

func (s *MemStore) updateLocked(collection, id string, fields bson.M) error {
	for _, doc := range s.colls[collection] {
		if fmt.Sprint(doc["_id"]) == id {
			// Normalize through bson so stored values look like decoded ones.
			raw, err := bson.Marshal(fields)
			if err != nil {
				return err
			}
			var norm bson.M
			if err := bson.Unmarshal(raw, &norm); err != nil {
				return err
			}
			for k, v := range norm {
				doc[k] = v
			}
			return nil
		}
	}
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteLocked(collection, id)
	return nil
}

func (s *MemStore) deleteLocked(collection, id string) {
	docs := s.colls[collection]
	for i, doc := range docs {
		if fmt.Sprint(doc["_id"]) == id {
			s.colls[collection] = append(docs[:i:i], docs[i+1:]...)
			return
		}
	}
}

func (s *MemStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.selectDocs(collection, filter))), nil
}

func (s *MemStore) BatchWrite(ctx context.Context, ops []WriteOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		switch op.Kind {
		case OpAdd:
			m, _, err := toDoc(op.Doc)
			if err != nil {
				return err
			}
			s.colls[op.Collection] = append(s.colls[op.Collection], m)
		case OpUpdate:
			if err := s.updateLocked(op.Collection, op.ID, op.Fields); err != nil {
				return err
			}
		case OpDelete:
			s.deleteLocked(op.Collection, op.ID)
		}
	}
	return nil
}
