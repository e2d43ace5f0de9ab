// Package generate produces teaching content: lessons, quizzes,
// worksheets, rubrics, and text transformations. Generators are
// pluggable; the static template generator is always available and real
// model providers are selected per user from their settings.
package generate

import (
	"context"
)

// Generator produces each content kind. Implementations must be safe
// for concurrent use.
type Generator interface {
	Lesson(ctx context.Context, in LessonInput) (*Lesson, error)
	Quiz(ctx context.Context, in QuizInput) (*Quiz, error)
	Worksheet(ctx context.Context, in WorksheetInput) (*Worksheet, error)
	Rubric(ctx context.Context, in RubricInput) (*Rubric, error)
	TextTool(ctx context.Context, in TextToolInput) (*TextToolResult, error)
	Name() string
}

type LessonInput struct {
	Topic      string   `json:"topic"`
	Grade      string   `json:"grade"`
	Objectives []string `json:"objectives"`
}

type Lesson struct {
	Title      string   `json:"title"`
	Overview   string   `json:"overview"`
	Objectives []string `json:"objectives"`
	Activities []string `json:"activities"`
	Assessment string   `json:"assessment"`
}

type QuizInput struct {
	Topic        string `json:"topic"`
	NumQuestions int    `json:"num_questions"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type Quiz struct {
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
}

type WorksheetInput struct {
	Topic string `json:"topic"`
	Grade string `json:"grade"`
}

type Worksheet struct {
	Topic      string   `json:"topic"`
	Activities []string `json:"activities"`
}

type RubricInput struct {
	AssignmentType string `json:"assignment_type"`
}

type RubricCriterion struct {
	Criterion   string `json:"criterion"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type Rubric struct {
	AssignmentType string            `json:"assignment_type"`
	Criteria       []RubricCriterion `json:"criteria"`
}

type TextToolInput struct {
	Mode string `json:"mode"` // e.g. simplify, translate, summarize
	Text string `json:"text"`
}

type TextToolResult struct {
	Output string `json:"output"`
}
