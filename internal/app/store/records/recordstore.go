// Package recordstore persists content records for every collection in the
// catalog through one generic store. Documents are flat: _id, the declared
// fields, optional photo/media, and timestamps.
package recordstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
)

// ErrNotFound is returned when no record matches the given identity.
var ErrNotFound = errors.New("record not found")

type Store struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

func (s *Store) coll(def catalog.Definition) *mongo.Collection {
	return s.db.Collection(def.Collection)
}

// List returns every record in the collection in store order.
func (s *Store) List(ctx context.Context, def catalog.Definition) ([]Record, error) {
	cur, err := s.coll(def).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	recs := make([]Record, 0, len(docs))
	for _, doc := range docs {
		rec, err := fromDocument(def, doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Get loads a single record by identity.
func (s *Store) Get(ctx context.Context, def catalog.Definition, id primitive.ObjectID) (Record, error) {
	var doc bson.M
	err := s.coll(def).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return fromDocument(def, doc)
}

// Create inserts a new record built from the validated field values and
// returns it with its assigned identity and timestamps.
func (s *Store) Create(ctx context.Context, def catalog.Definition, fields map[string]string) (Record, error) {
	now := time.Now().UTC()
	rec := Record{
		ID:        primitive.NewObjectID(),
		Fields:    trimFields(fields),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.coll(def).InsertOne(ctx, toDocument(rec)); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Update applies a partial field replacement and returns the updated
// record. Fields absent from the map keep their stored values.
func (s *Store) Update(ctx context.Context, def catalog.Definition, id primitive.ObjectID, fields map[string]string) (Record, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for name, v := range trimFields(fields) {
		set[name] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bson.M
	err := s.coll(def).FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return fromDocument(def, doc)
}

// Delete permanently removes a record. Deleting an identity that does not
// exist returns ErrNotFound and changes nothing.
func (s *Store) Delete(ctx context.Context, def catalog.Definition, id primitive.ObjectID) error {
	res, err := s.coll(def).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func trimFields(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, v := range fields {
		out[name] = strings.TrimSpace(v)
	}
	return out
}

func toDocument(rec Record) bson.M {
	doc := bson.M{
		"_id":        rec.ID,
		"created_at": rec.CreatedAt,
		"updated_at": rec.UpdatedAt,
	}
	for name, v := range rec.Fields {
		if v != "" {
			doc[name] = v
		}
	}
	return doc
}

func fromDocument(def catalog.Definition, doc bson.M) (Record, error) {
	rec := Record{Fields: map[string]string{}}

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		return Record{}, errors.New("record document is missing its _id")
	}
	rec.ID = id

	names := append(def.FieldNames(), def.AttachmentFields()...)
	for _, name := range names {
		if v, ok := doc[name].(string); ok && v != "" {
			rec.Fields[name] = v
		}
	}

	rec.CreatedAt = timeValue(doc["created_at"])
	rec.UpdatedAt = timeValue(doc["updated_at"])
	return rec, nil
}

func timeValue(v any) time.Time {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case time.Time:
		return t.UTC()
	}
	return time.Time{}
}
