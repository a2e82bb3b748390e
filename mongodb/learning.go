package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MiguelRivas11/studio/fanout"
	"github.com/MiguelRivas11/studio/models"
)

// GetActiveLearningPath returns the user's active path (the earliest created
// one) with modules and lessons populated in display order, or nil when the
// user has no path.
func GetActiveLearningPath(ctx context.Context, userID string) (*models.LearningPath, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(fanout.PathCollection)

	filter := bson.M{"user_id": userID}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var path models.LearningPath
	err := collection.FindOne(ctx, filter, opts).Decode(&path)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching learning path: %v", err)
	}

	if err := loadChildren(ctx, &path); err != nil {
		return nil, err
	}
	return &path, nil
}

// GetLearningPath returns one path by id, scoped to the user, with children
// populated. Nil when not found.
func GetLearningPath(ctx context.Context, userID string, id string) (*models.LearningPath, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(fanout.PathCollection)

	var path models.LearningPath
	err := collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&path)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching learning path: %v", err)
	}

	if err := loadChildren(ctx, &path); err != nil {
		return nil, err
	}
	return &path, nil
}

func loadChildren(ctx context.Context, path *models.LearningPath) error {
	db := MongoClient.Database(MongoDatabase)

	moduleOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := db.Collection(fanout.ModuleCollection).Find(ctx, bson.M{"learning_path_id": path.ID}, moduleOpts)
	if err != nil {
		return fmt.Errorf("error fetching modules: %v", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var mod models.Module
		if err := cursor.Decode(&mod); err != nil {
			return fmt.Errorf("error decoding module: %v", err)
		}
		path.Modules = append(path.Modules, mod)
	}
	if err := cursor.Err(); err != nil {
		return fmt.Errorf("cursor error: %v", err)
	}

	lessonOpts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	for i := range path.Modules {
		lessonCursor, err := db.Collection(fanout.LessonCollection).Find(ctx, bson.M{"module_id": path.Modules[i].ID}, lessonOpts)
		if err != nil {
			return fmt.Errorf("error fetching lessons: %v", err)
		}
		for lessonCursor.Next(ctx) {
			var lesson models.Lesson
			if err := lessonCursor.Decode(&lesson); err != nil {
				lessonCursor.Close(ctx)
				return fmt.Errorf("error decoding lesson: %v", err)
			}
			path.Modules[i].Lessons = append(path.Modules[i].Lessons, lesson)
		}
		err = lessonCursor.Err()
		lessonCursor.Close(ctx)
		if err != nil {
			return fmt.Errorf("cursor error: %v", err)
		}
	}

	return nil
}
