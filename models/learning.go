package models

import "time"

// QuizQuestion is one generated quiz entry. CorrectAnswer is always one of
// Options; the generation client rejects model output that violates this.
type QuizQuestion struct {
	Question      string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correct_answer"`
}

// Lesson is a child of a Module. Order defines display sequence within the
// module.
type Lesson struct {
	ID              string         `json:"id" bson:"_id"`
	ModuleID        string         `json:"module_id" bson:"module_id"`
	Title           string         `json:"title" bson:"title"`
	Order           int            `json:"order" bson:"order"`
	DetailedContent string         `json:"detailedContent" bson:"detailed_content"`
	PracticalTips   []string       `json:"practicalTips" bson:"practical_tips"`
	RealExample     string         `json:"realExample" bson:"real_example"`
	Quiz            []QuizQuestion `json:"quiz" bson:"quiz"`
}

// Module is a child of a LearningPath. Lessons are populated on read, not
// stored on the module document.
type Module struct {
	ID             string   `json:"id" bson:"_id"`
	LearningPathID string   `json:"learning_path_id" bson:"learning_path_id"`
	Title          string   `json:"title" bson:"title"`
	Order          int      `json:"order" bson:"order"`
	Lessons        []Lesson `json:"lessons" bson:"-"`
}

// LearningPath is the parent record of a generated study plan. The active
// path for a user is the earliest created one.
type LearningPath struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Modules     []Module  `json:"modules" bson:"-"`
}
