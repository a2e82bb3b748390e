package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MiguelRivas11/studio/models"
)

func CreateGoal(ctx context.Context, goal *models.Goal) error {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)
	_, err := collection.InsertOne(ctx, goal)
	if err != nil {
		return fmt.Errorf("error creating goal: %v", err)
	}
	return nil
}

func ListGoals(ctx context.Context, userID string) ([]models.Goal, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)

	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching goals: %v", err)
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	for cursor.Next(ctx) {
		var goal models.Goal
		if err := cursor.Decode(&goal); err != nil {
			return nil, fmt.Errorf("error decoding goal: %v", err)
		}
		goals = append(goals, goal)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return goals, nil
}

func DeleteGoal(ctx context.Context, userID string, id string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)
	_, err := collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting goal: %v", err)
	}
	return nil
}
