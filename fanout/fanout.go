// Package fanout materializes one generated learning path as a parent record
// plus module and lesson children, committed as a single all-or-nothing
// batch.
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MiguelRivas11/studio/llm"
	"github.com/MiguelRivas11/studio/models"
)

// Collections the fan-out writes to.
const (
	PathCollection   = "learning_paths"
	ModuleCollection = "modules"
	LessonCollection = "lessons"
)

// Batch stages document operations. Nothing is visible until the surrounding
// RunBatch commits.
type Batch interface {
	Insert(collection string, doc any)
	Delete(collection string, id string)
}

// BatchStore commits a staged batch atomically: either every operation is
// applied or none is.
type BatchStore interface {
	RunBatch(ctx context.Context, fn func(b Batch) error) error
}

// BatchError reports a failed batch commit. The learning path is not created
// and no partial subset of documents is visible.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch commit failed: %v", e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// BuildLearningPath decomposes a generation result into the parent, module
// and lesson records, allocating ids and setting order from array position.
// Generated lesson fields are copied verbatim.
func BuildLearningPath(userID string, in llm.LearningPathInput, gen *llm.LearningPathOutput) *models.LearningPath {
	path := &models.LearningPath{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        llm.PathName(in),
		Description: llm.PathDescription(in),
		CreatedAt:   time.Now().UTC(),
	}

	for mi, genMod := range gen.Modules {
		mod := models.Module{
			ID:             uuid.NewString(),
			LearningPathID: path.ID,
			Title:          genMod.Title,
			Order:          mi,
		}
		for li, genLesson := range genMod.Lessons {
			lesson := models.Lesson{
				ID:              uuid.NewString(),
				ModuleID:        mod.ID,
				Title:           genLesson.Title,
				Order:           li,
				DetailedContent: genLesson.DetailedContent,
				PracticalTips:   genLesson.PracticalTips,
				RealExample:     genLesson.RealExample,
				Quiz:            copyQuiz(genLesson.Quiz),
			}
			mod.Lessons = append(mod.Lessons, lesson)
		}
		path.Modules = append(path.Modules, mod)
	}

	return path
}

func copyQuiz(gen []llm.GeneratedQuizQuestion) []models.QuizQuestion {
	quiz := make([]models.QuizQuestion, len(gen))
	for i, q := range gen {
		quiz[i] = models.QuizQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return quiz
}

// PersistLearningPath builds and commits a learning path in one batch.
func PersistLearningPath(ctx context.Context, store BatchStore, userID string, in llm.LearningPathInput, gen *llm.LearningPathOutput) (*models.LearningPath, error) {
	path := BuildLearningPath(userID, in, gen)

	err := store.RunBatch(ctx, func(b Batch) error {
		b.Insert(PathCollection, path)
		for _, mod := range path.Modules {
			b.Insert(ModuleCollection, mod)
			for _, lesson := range mod.Lessons {
				b.Insert(LessonCollection, lesson)
			}
		}
		return nil
	})
	if err != nil {
		return nil, &BatchError{Err: err}
	}
	return path, nil
}

// DeleteLearningPath removes the parent and all of its modules and lessons
// in one batch. The path must be loaded with its children.
func DeleteLearningPath(ctx context.Context, store BatchStore, path *models.LearningPath) error {
	err := store.RunBatch(ctx, func(b Batch) error {
		b.Delete(PathCollection, path.ID)
		for _, mod := range path.Modules {
			b.Delete(ModuleCollection, mod.ID)
			for _, lesson := range mod.Lessons {
				b.Delete(LessonCollection, lesson.ID)
			}
		}
		return nil
	})
	if err != nil {
		return &BatchError{Err: err}
	}
	return nil
}
