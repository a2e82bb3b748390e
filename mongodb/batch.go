package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/MiguelRivas11/studio/fanout"
)

type stagedInsert struct {
	collection string
	doc        any
}

type stagedDelete struct {
	collection string
	id         string
}

type mongoBatch struct {
	inserts []stagedInsert
	deletes []stagedDelete
}

func (b *mongoBatch) Insert(collection string, doc any) {
	b.inserts = append(b.inserts, stagedInsert{collection: collection, doc: doc})
}

func (b *mongoBatch) Delete(collection string, id string) {
	b.deletes = append(b.deletes, stagedDelete{collection: collection, id: id})
}

// BatchStore commits staged document operations inside one MongoDB
// transaction, so a mid-batch failure leaves nothing visible.
type BatchStore struct{}

func (BatchStore) RunBatch(ctx context.Context, fn func(b fanout.Batch) error) error {
	batch := &mongoBatch{}
	if err := fn(batch); err != nil {
		return err
	}

	session, err := MongoClient.StartSession()
	if err != nil {
		return fmt.Errorf("error starting session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc context.Context) (any, error) {
		db := MongoClient.Database(MongoDatabase)
		for _, ins := range batch.inserts {
			if _, err := db.Collection(ins.collection).InsertOne(sc, ins.doc); err != nil {
				return nil, err
			}
		}
		for _, del := range batch.deletes {
			if _, err := db.Collection(del.collection).DeleteOne(sc, bson.M{"_id": del.id}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("error committing batch: %v", err)
	}
	return nil
}
