package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MiguelRivas11/studio/fanout"
	"github.com/MiguelRivas11/studio/llm"
)

type handlerBatch struct {
	inserts map[string][]any
}

func (b *handlerBatch) Insert(collection string, doc any) {
	b.inserts[collection] = append(b.inserts[collection], doc)
}

func (b *handlerBatch) Delete(string, string) {}

// handlerBatchStore commits staged inserts into in-memory collections, or
// drops the whole batch when failErr is set.
type handlerBatchStore struct {
	failErr error
	docs    map[string][]any
}

func newHandlerBatchStore() *handlerBatchStore {
	return &handlerBatchStore{docs: make(map[string][]any)}
}

func (s *handlerBatchStore) RunBatch(_ context.Context, fn func(b fanout.Batch) error) error {
	batch := &handlerBatch{inserts: make(map[string][]any)}
	if err := fn(batch); err != nil {
		return err
	}
	if s.failErr != nil {
		return s.failErr
	}
	for collection, docs := range batch.inserts {
		s.docs[collection] = append(s.docs[collection], docs...)
	}
	return nil
}

func learningRouter(gen llm.Generator, store fanout.BatchStore) *gin.Engine {
	LLM = gen
	PathStore = store
	router := gin.New()
	router.POST("/api/learn", authAs("user-1"), GenerateLearningPath)
	return router
}

var learningRequest = gin.H{
	"current_knowledge_level": "principiante",
	"financial_goals":         "ahorrar para el enganche de una casa",
	"financial_background":    "nunca he llevado un presupuesto formal",
}

func TestGenerateLearningPathFansOut(t *testing.T) {
	mock := &llm.MockGenerator{PathOut: llm.SampleLearningPath()}
	store := newHandlerBatchStore()
	router := learningRouter(mock, store)

	w := performJSON(t, router, http.MethodPost, "/api/learn", learningRequest)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, mock.PathCalls)

	// Sample path: 1 parent, 2 modules, 3 lessons total.
	assert.Len(t, store.docs[fanout.PathCollection], 1)
	assert.Len(t, store.docs[fanout.ModuleCollection], 2)
	assert.Len(t, store.docs[fanout.LessonCollection], 3)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
}

func TestGenerateLearningPathRejectsUnknownLevel(t *testing.T) {
	mock := &llm.MockGenerator{PathOut: llm.SampleLearningPath()}
	router := learningRouter(mock, newHandlerBatchStore())

	w := performJSON(t, router, http.MethodPost, "/api/learn", gin.H{
		"current_knowledge_level": "experto",
		"financial_goals":         "ahorrar para el enganche de una casa",
		"financial_background":    "nunca he llevado un presupuesto formal",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.PathCalls)
}

func TestGenerateLearningPathGenerationFailure(t *testing.T) {
	mock := &llm.MockGenerator{Err: &llm.GenerationError{Kind: llm.ErrMalformedOutput, Task: "learning-path"}}
	store := newHandlerBatchStore()
	router := learningRouter(mock, store)

	w := performJSON(t, router, http.MethodPost, "/api/learn", learningRequest)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, store.docs)
}

func TestGenerateLearningPathBatchFailureCreatesNothing(t *testing.T) {
	mock := &llm.MockGenerator{PathOut: llm.SampleLearningPath()}
	store := newHandlerBatchStore()
	store.failErr = errors.New("transaction aborted")
	router := learningRouter(mock, store)

	w := performJSON(t, router, http.MethodPost, "/api/learn", learningRequest)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, store.docs[fanout.PathCollection])
	assert.Empty(t, store.docs[fanout.ModuleCollection])
	assert.Empty(t, store.docs[fanout.LessonCollection])
}
