package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tieubaoca/docqa-be/types"
)

type mongoDocumentRepo struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoDocumentRepo uses a TTL index on expires_at so that MongoDB
// removes expired documents on its own. GetDocument still checks the expiry
// because the TTL monitor only runs about once a minute.
func NewMongoDocumentRepo(ctx context.Context, collection *mongo.Collection) (DocumentRepo, error) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
	if _, err := collection.Indexes().CreateOne(ctx, index); err != nil {
		log.Error().Err(err).Msg("Error creating TTL index")
		return nil, err
	}
	return &mongoDocumentRepo{
		collection: collection,
		now:        time.Now,
	}, nil
}

func (r *mongoDocumentRepo) SaveDocument(ctx context.Context, doc *types.Document) error {
	_, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoDocumentRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	if doc.Expired(r.now()) {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *mongoDocumentRepo) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *mongoDocumentRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := r.collection.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now}}}})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (r *mongoDocumentRepo) Close(ctx context.Context) error {
	return r.collection.Database().Client().Disconnect(ctx)
}
