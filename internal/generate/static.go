package generate

import (
	"context"
	"fmt"
)

// StaticGenerator renders deterministic template content with no model
// call. It is the default provider and the fallback when a user has not
// configured one.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) Name() string { return "static" }

func (g *StaticGenerator) Lesson(_ context.Context, in LessonInput) (*Lesson, error) {
	return &Lesson{
		Title:      fmt.Sprintf("Lesson on %s for grade %s", in.Topic, in.Grade),
		Overview:   fmt.Sprintf("An engaging overview of %s tailored for grade %s.", in.Topic, in.Grade),
		Objectives: in.Objectives,
		Activities: []string{
			fmt.Sprintf("Warm-up discussion about %s", in.Topic),
			fmt.Sprintf("Group activity exploring %s", in.Topic),
			"Exit ticket with reflective question",
		},
		Assessment: fmt.Sprintf("Short quiz assessing understanding of %s", in.Topic),
	}, nil
}

func (g *StaticGenerator) Quiz(_ context.Context, in QuizInput) (*Quiz, error) {
	n := in.NumQuestions
	if n < 1 {
		n = 1
	}
	questions := make([]QuizQuestion, n)
	for i := range questions {
		questions[i] = QuizQuestion{
			Question: fmt.Sprintf("What is a key idea in %s %d?", in.Topic, i+1),
			Options:  []string{"Option A", "Option B", "Option C", "Option D"},
			Answer:   "Option A",
		}
	}
	return &Quiz{Topic: in.Topic, Questions: questions}, nil
}

func (g *StaticGenerator) Worksheet(_ context.Context, in WorksheetInput) (*Worksheet, error) {
	return &Worksheet{
		Topic: in.Topic,
		Activities: []string{
			fmt.Sprintf("Define key terms related to %s", in.Topic),
			fmt.Sprintf("Match concepts for %s", in.Topic),
			fmt.Sprintf("Write a short paragraph about %s for grade %s", in.Topic, in.Grade),
		},
	}, nil
}

func (g *StaticGenerator) Rubric(_ context.Context, in RubricInput) (*Rubric, error) {
	return &Rubric{
		AssignmentType: in.AssignmentType,
		Criteria: []RubricCriterion{
			{Criterion: "Understanding", Description: "Shows strong understanding", Points: 4},
			{Criterion: "Application", Description: "Applies concepts to tasks", Points: 4},
			{Criterion: "Creativity", Description: "Demonstrates creative thinking", Points: 4},
		},
	}, nil
}

func (g *StaticGenerator) TextTool(_ context.Context, in TextToolInput) (*TextToolResult, error) {
	return &TextToolResult{Output: fmt.Sprintf("[%s] %s", in.Mode, in.Text)}, nil
}
