package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tieubaoca/docqa-be/database"
	"github.com/tieubaoca/docqa-be/types"
)

type boltDocumentRepo struct {
	db     *bolt.DB
	bucket []byte
	now    func() time.Time
}

func NewBoltDocumentRepo(db *bolt.DB) DocumentRepo {
	return &boltDocumentRepo{
		db:     db,
		bucket: []byte(database.DocumentsBucket),
		now:    time.Now,
	}
}

func (r *boltDocumentRepo) SaveDocument(ctx context.Context, doc *types.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(doc.ID), data)
	})
}

func (r *boltDocumentRepo) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	var doc types.Document
	found := false
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(r.bucket).Get([]byte(id))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", id, err)
	}
	if !found || doc.Expired(r.now()) {
		return nil, ErrDocumentNotFound
	}
	return &doc, nil
}

func (r *boltDocumentRepo) DeleteDocument(ctx context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		if b.Get([]byte(id)) == nil {
			return ErrDocumentNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (r *boltDocumentRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	removed := 0
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(r.bucket)
		var expired [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var doc types.Document
			if err := json.Unmarshal(v, &doc); err != nil || doc.Expired(now) {
				expired = append(expired, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range expired {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(expired)
		return nil
	})
	return removed, err
}

func (r *boltDocumentRepo) Close(ctx context.Context) error {
	return r.db.Close()
}
