package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MiguelRivas11/studio/models"
)

// UpsertBudget merge-writes the user's single budget document. Repeated
// writes overwrite field by field: last caller wins.
func UpsertBudget(ctx context.Context, userID string, draft *models.BudgetDraft) error {
	collection := MongoClient.Database(MongoDatabase).Collection(BudgetCollection)

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{
		"user_id":  userID,
		"income":   draft.Income,
		"expenses": draft.Expenses,
	}}

	_, err := collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error upserting budget: %v", err)
	}
	return nil
}

// GetBudget returns the user's budget, or nil when none has been saved yet.
func GetBudget(ctx context.Context, userID string) (*models.BudgetDraft, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(BudgetCollection)

	var draft models.BudgetDraft
	err := collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&draft)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Not found, but not an error
		}
		return nil, fmt.Errorf("error fetching budget: %v", err)
	}
	return &draft, nil
}
