package persistence

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrijr/featuretour/pkg/api"
)

// MongoTourStore is a TourStore backed by a MongoDB collection.
type MongoTourStore struct {
	coll *mongo.Collection
}

// Ensure it implements TourStore.
var _ TourStore = (*MongoTourStore)(nil)

// NewMongoTourStore creates a Mongo-backed tour store.
// dbName defaults to "featuretour" if empty, collName defaults to "tours".
func NewMongoTourStore(client *mongo.Client, dbName, collName string) *MongoTourStore {
	if dbName == "" {
		dbName = "featuretour"
	}
	if collName == "" {
		collName = "tours"
	}

	return &MongoTourStore{
		coll: client.Database(dbName).Collection(collName),
	}
}

// The document is kept as its JSON text so placements stay readable names
// and the stored form matches the other backends.
type mongoTourDoc struct {
	ID       string `bson:"_id"`
	Name     string `bson:"name"`
	Document string `bson:"document"`
}

func (s *MongoTourStore) SaveTour(ctx context.Context, doc api.TourDocument) error {
	if err := validateForSave(doc); err != nil {
		return err
	}
	data, err := EncodeDocument(doc)
	if err != nil {
		return err
	}

	_, err = s.coll.ReplaceOne(ctx,
		bson.M{"_id": doc.TourID},
		mongoTourDoc{ID: doc.TourID, Name: doc.TourName, Document: string(data)},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoTourStore) GetTour(ctx context.Context, tourID string) (api.TourDocument, error) {
	var stored mongoTourDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": tourID}).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return api.TourDocument{}, ErrTourNotFound
		}
		return api.TourDocument{}, err
	}
	return DecodeDocument([]byte(stored.Document))
}

func (s *MongoTourStore) ListTours(ctx context.Context) ([]api.TourDocument, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []api.TourDocument{}
	for cur.Next(ctx) {
		var stored mongoTourDoc
		if err := cur.Decode(&stored); err != nil {
			return nil, err
		}
		doc, err := DecodeDocument([]byte(stored.Document))
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

func (s *MongoTourStore) DeleteTour(ctx context.Context, tourID string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": tourID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrTourNotFound
	}
	return nil
}
