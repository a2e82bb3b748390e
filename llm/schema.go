package llm

import (
	"fmt"
	"strings"
)

// Shape rules for generated learning paths. Violations are malformed-output
// failures: the whole result is rejected and nothing gets persisted.
const (
	minPracticalTips = 2
	maxPracticalTips = 3
	minQuizQuestions = 1
	maxQuizQuestions = 2
	minAnswerOptions = 2
)

// ValidateChat checks the chat task's declared shape.
func ValidateChat(out *ChatOutput) error {
	if strings.TrimSpace(out.Answer) == "" {
		return fmt.Errorf("empty answer")
	}
	return nil
}

// ValidateHealth checks the health-recommendation task's declared shape.
func ValidateHealth(out *HealthOutput) error {
	if strings.TrimSpace(out.Recommendations) == "" {
		return fmt.Errorf("empty recommendations")
	}
	return nil
}

// ValidateLearningPath checks every module, lesson and quiz question of a
// generated learning path against the declared shape.
func ValidateLearningPath(out *LearningPathOutput) error {
	if len(out.Modules) == 0 {
		return fmt.Errorf("no modules generated")
	}

	for mi, mod := range out.Modules {
		if strings.TrimSpace(mod.Title) == "" {
			return fmt.Errorf("module %d: empty title", mi)
		}
		if len(mod.Lessons) == 0 {
			return fmt.Errorf("module %d (%s): no lessons", mi, mod.Title)
		}
		for li, lesson := range mod.Lessons {
			if err := validateLesson(lesson); err != nil {
				return fmt.Errorf("module %d lesson %d: %w", mi, li, err)
			}
		}
	}
	return nil
}

func validateLesson(lesson GeneratedLesson) error {
	if strings.TrimSpace(lesson.Title) == "" {
		return fmt.Errorf("empty title")
	}
	if strings.TrimSpace(lesson.DetailedContent) == "" {
		return fmt.Errorf("empty detailedContent")
	}
	if strings.TrimSpace(lesson.RealExample) == "" {
		return fmt.Errorf("empty realExample")
	}
	if n := len(lesson.PracticalTips); n < minPracticalTips || n > maxPracticalTips {
		return fmt.Errorf("got %d practical tips, want %d-%d", n, minPracticalTips, maxPracticalTips)
	}
	if n := len(lesson.Quiz); n < minQuizQuestions || n > maxQuizQuestions {
		return fmt.Errorf("got %d quiz questions, want %d-%d", n, minQuizQuestions, maxQuizQuestions)
	}
	for qi, q := range lesson.Quiz {
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("quiz question %d: %w", qi, err)
		}
	}
	return nil
}

func validateQuestion(q GeneratedQuizQuestion) error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("empty question")
	}
	if len(q.Options) < minAnswerOptions {
		return fmt.Errorf("got %d options, want at least %d", len(q.Options), minAnswerOptions)
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("correctAnswer %q is not one of the options", q.CorrectAnswer)
}
