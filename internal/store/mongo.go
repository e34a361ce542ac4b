package store

import (
	"context"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a *mongo.Database.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) Query(ctx context.Context, collection string, filter bson.M, out any) error {
	cursor, err := s.DB.Collection(collection).Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *MongoStore) QuerySort(ctx context.Context, collection string, filter bson.M, sort string, out any) error {
	dir := 1
	field := sort
	if strings.HasPrefix(sort, "-") {
		dir = -1
		field = sort[1:]
	}
	opts := options.Find().SetSort(bson.D{{Key: field, Value: dir}})
	cursor, err := s.DB.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *MongoStore) QueryIn(ctx context.Context, collection, field string, values []string, out any) error {
	outv := reflect.ValueOf(out).Elem()
	for _, group := range chunk(values, inChunkSize) {
		cursor, err := s.DB.Collection(collection).Find(ctx, bson.M{field: bson.M{"$in": group}})
		if err != nil {
			return err
		}
		part := reflect.New(outv.Type())
		err = cursor.All(ctx, part.Interface())
		if err != nil {
			return err
		}
		outv.Set(reflect.AppendSlice(outv, part.Elem()))
	}
	return nil
}

func (s *MongoStore) GetByIDs(ctx context.Context, collection string, ids []string, out any) error {
	return s.QueryIn(ctx, collection, "_id", ids, out)
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out any) (bool, error) {
	err := s.DB.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	m, id, err := toDoc(doc)
	if err != nil {
		return "", err
	}
	if _, err := s.DB.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields bson.M) error {
	_, err := s.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.DB.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return s.DB.Collection(collection).CountDocuments(ctx, filter)
}

// BatchWrite groups ops per collection and issues one bulk write each.
func (s *MongoStore) BatchWrite(ctx context.Context, ops []WriteOp) error {
	grouped := make(map[string][]mongo.WriteModel)
	order := []string{}
	for _, op := range ops {
		var model mongo.WriteModel
		switch op.Kind {
		case OpAdd:
			m, _, err := toDoc(op.Doc)
			if err != nil {
				return err
			}
			model = mongo.NewInsertOneModel().SetDocument(m)
		case OpUpdate:
			model = mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": op.ID}).
				SetUpdate(bson.M{"$set": op.Fields})
		case OpDelete:
			model = mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": op.ID})
		}
		if _, ok := grouped[op.Collection]; !ok {
			order = append(order, op.Collection)
		}
		grouped[op.Collection] = append(grouped[op.Collection], model)
	}
	for _, coll := range order {
		if _, err := s.DB.Collection(coll).BulkWrite(ctx, grouped[coll]); err != nil {
			return err
		}
	}
	return nil
}
