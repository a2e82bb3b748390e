// Package llm produces model-generated content constrained to declared
// output shapes. Three tasks share one mechanism: interpolate a fixed
// instruction template, call the model, decode and validate the reply
// before returning it to the caller.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/MiguelRivas11/studio/models"
)

// Knowledge levels accepted by the learning-path task.
const (
	LevelPrincipiante = "principiante"
	LevelIntermedio   = "intermedio"
	LevelAvanzado     = "avanzado"
)

// ValidLevel reports whether level is one of the accepted knowledge levels.
func ValidLevel(level string) bool {
	switch level {
	case LevelPrincipiante, LevelIntermedio, LevelAvanzado:
		return true
	}
	return false
}

// ChatInput carries the user's question plus the replayed transcript.
type ChatInput struct {
	Query   string
	History []models.ChatMessage
}

// ChatOutput is the declared shape of the chat task.
type ChatOutput struct {
	Answer string `json:"answer"`
}

// HealthInput is the transient financial snapshot behind a recommendation.
type HealthInput struct {
	Income   float64
	Expenses float64
	Debt     float64
	Savings  float64
	Goals    string
}

// HealthOutput is the declared shape of the health-recommendation task.
type HealthOutput struct {
	Recommendations string `json:"recommendations"`
}

// LearningPathInput steers the learning-path task. Level changes topical
// emphasis only, never the output shape.
type LearningPathInput struct {
	Level               string
	FinancialGoals      string
	FinancialBackground string
}

type GeneratedQuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

type GeneratedLesson struct {
	Title           string                  `json:"title"`
	DetailedContent string                  `json:"detailedContent"`
	PracticalTips   []string                `json:"practicalTips"`
	RealExample     string                  `json:"realExample"`
	Quiz            []GeneratedQuizQuestion `json:"quiz"`
}

type GeneratedModule struct {
	Title   string            `json:"title"`
	Lessons []GeneratedLesson `json:"lessons"`
}

// LearningPathOutput is the declared shape of the learning-path task.
type LearningPathOutput struct {
	Modules []GeneratedModule `json:"modules"`
}

// Generator is the structured generation client. Each invocation is
// independent; the only cross-call state is the explicitly passed history.
type Generator interface {
	Chat(ctx context.Context, in ChatInput) (*ChatOutput, error)
	HealthRecommendations(ctx context.Context, in HealthInput) (*HealthOutput, error)
	LearningPath(ctx context.Context, in LearningPathInput) (*LearningPathOutput, error)
}

// ErrorKind distinguishes the two generation failure modes.
type ErrorKind string

const (
	// ErrTransport covers network and provider failures; the whole call is
	// safe to retry.
	ErrTransport ErrorKind = "transport-failure"
	// ErrMalformedOutput means the model's reply did not parse or validate
	// against the declared shape. Retrying without changing the prompt is
	// pointless, and partial results must never be persisted.
	ErrMalformedOutput ErrorKind = "malformed-model-output"
)

// GenerationError is returned by every failing Generator call.
type GenerationError struct {
	Kind ErrorKind
	Task string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s, %s): %v", e.Task, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is a transient generation failure.
func IsRetryable(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr) && genErr.Kind == ErrTransport
}

func transportErr(task string, err error) error {
	return &GenerationError{Kind: ErrTransport, Task: task, Err: err}
}

func malformedErr(task string, err error) error {
	return &GenerationError{Kind: ErrMalformedOutput, Task: task, Err: err}
}
