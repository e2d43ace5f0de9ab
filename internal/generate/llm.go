package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// completer is the minimal chat surface the model-backed generators
// need: one system + user exchange returning text.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
	name() string
}

// llmGenerator turns any completer into a Generator by prompting for
// JSON in the target shape and decoding the reply.
type llmGenerator struct {
	c completer
}

func (g *llmGenerator) Name() string { return g.c.name() }

const systemPrompt = "You are an assistant for teachers. Reply with a single JSON object matching the requested schema and nothing else."

func (g *llmGenerator) generate(ctx context.Context, prompt string, out any) error {
	reply, err := g.c.complete(ctx, systemPrompt, prompt)
	if err != nil {
		return fmt.Errorf("%s completion: %w", g.c.name(), err)
	}

	// Models occasionally fence their JSON; strip to the outermost
	// object before decoding.
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return fmt.Errorf("%s returned no JSON object", g.c.name())
	}
	if err := json.Unmarshal([]byte(reply[start:end+1]), out); err != nil {
		return fmt.Errorf("decode %s reply: %w", g.c.name(), err)
	}
	return nil
}

func (g *llmGenerator) Lesson(ctx context.Context, in LessonInput) (*Lesson, error) {
	prompt := fmt.Sprintf(
		`Create a lesson plan on %q for grade %q with objectives %s. Schema: {"title": string, "overview": string, "objectives": [string], "activities": [string], "assessment": string}`,
		in.Topic, in.Grade, jsonList(in.Objectives))
	var lesson Lesson
	if err := g.generate(ctx, prompt, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (g *llmGenerator) Quiz(ctx context.Context, in QuizInput) (*Quiz, error) {
	n := in.NumQuestions
	if n < 1 {
		n = 1
	}
	prompt := fmt.Sprintf(
		`Create a %d-question multiple-choice quiz on %q. Schema: {"topic": string, "questions": [{"question": string, "options": [string], "answer": string}]}`,
		n, in.Topic)
	var quiz Quiz
	if err := g.generate(ctx, prompt, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (g *llmGenerator) Worksheet(ctx context.Context, in WorksheetInput) (*Worksheet, error) {
	prompt := fmt.Sprintf(
		`Create a worksheet on %q for grade %q. Schema: {"topic": string, "activities": [string]}`,
		in.Topic, in.Grade)
	var ws Worksheet
	if err := g.generate(ctx, prompt, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (g *llmGenerator) Rubric(ctx context.Context, in RubricInput) (*Rubric, error) {
	prompt := fmt.Sprintf(
		`Create a grading rubric for a %q assignment. Schema: {"assignment_type": string, "criteria": [{"criterion": string, "description": string, "points": number}]}`,
		in.AssignmentType)
	var rubric Rubric
	if err := g.generate(ctx, prompt, &rubric); err != nil {
		return nil, err
	}
	return &rubric, nil
}

func (g *llmGenerator) TextTool(ctx context.Context, in TextToolInput) (*TextToolResult, error) {
	prompt := fmt.Sprintf(
		`Apply the %q transformation to the following text and return Schema: {"output": string}. Text: %s`,
		in.Mode, in.Text)
	var result TextToolResult
	if err := g.generate(ctx, prompt, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func jsonList(items []string) string {
	b, _ := json.Marshal(items)
	return string(b)
}
