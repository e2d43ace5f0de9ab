package generate

import (
	"context"
	"errors"
	"testing"
)

type fakeCompleter struct {
	reply string
	err   error
}

func (f *fakeCompleter) complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func (f *fakeCompleter) name() string { return "fake" }

func TestLLMGeneratorDecodesFencedJSON(t *testing.T) {
	g := &llmGenerator{c: &fakeCompleter{
		reply: "```json\n{\"output\": \"shorter text\"}\n```",
	}}

	res, err := g.TextTool(context.Background(), TextToolInput{Mode: "summarize", Text: "long text"})
	if err != nil {
		t.Fatalf("TextTool: %v", err)
	}
	if res.Output != "shorter text" {
		t.Errorf("output = %q", res.Output)
	}
}

func TestLLMGeneratorRejectsNonJSON(t *testing.T) {
	g := &llmGenerator{c: &fakeCompleter{reply: "I cannot help with that."}}
	if _, err := g.Quiz(context.Background(), QuizInput{Topic: "Algebra", NumQuestions: 3}); err == nil {
		t.Fatal("expected error for reply without JSON")
	}
}

func TestLLMGeneratorPropagatesCompletionError(t *testing.T) {
	wantErr := errors.New("rate limited")
	g := &llmGenerator{c: &fakeCompleter{err: wantErr}}
	if _, err := g.Lesson(context.Background(), LessonInput{Topic: "Gravity", Grade: "8"}); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestLLMGeneratorLesson(t *testing.T) {
	g := &llmGenerator{c: &fakeCompleter{
		reply: `{"title": "Gravity basics", "overview": "o", "objectives": ["a"], "activities": ["b"], "assessment": "c"}`,
	}}
	lesson, err := g.Lesson(context.Background(), LessonInput{Topic: "Gravity", Grade: "8"})
	if err != nil {
		t.Fatalf("Lesson: %v", err)
	}
	if lesson.Title != "Gravity basics" || len(lesson.Objectives) != 1 {
		t.Errorf("lesson = %+v", lesson)
	}
}
