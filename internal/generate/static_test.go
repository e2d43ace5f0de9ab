package generate

import (
	"context"
	"testing"
)

func TestStaticLesson(t *testing.T) {
	g := NewStaticGenerator()
	lesson, err := g.Lesson(context.Background(), LessonInput{
		Topic:      "Photosynthesis",
		Grade:      "7",
		Objectives: []string{"Explain light reactions"},
	})
	if err != nil {
		t.Fatalf("Lesson: %v", err)
	}
	if lesson.Title != "Lesson on Photosynthesis for grade 7" {
		t.Errorf("title = %q", lesson.Title)
	}
	if len(lesson.Objectives) != 1 || lesson.Objectives[0] != "Explain light reactions" {
		t.Errorf("objectives not carried through: %v", lesson.Objectives)
	}
	if len(lesson.Activities) != 3 {
		t.Errorf("activities = %d, want 3", len(lesson.Activities))
	}
	if lesson.Assessment == "" || lesson.Overview == "" {
		t.Error("assessment and overview must be populated")
	}
}

func TestStaticQuiz(t *testing.T) {
	g := NewStaticGenerator()

	quiz, err := g.Quiz(context.Background(), QuizInput{Topic: "Fractions", NumQuestions: 5})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if quiz.Topic != "Fractions" {
		t.Errorf("topic = %q", quiz.Topic)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("questions = %d, want 5", len(quiz.Questions))
	}
	for i, q := range quiz.Questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d has %d options, want 4", i, len(q.Options))
		}
		if q.Answer == "" {
			t.Errorf("question %d missing answer", i)
		}
	}

	// A non-positive count still yields at least one question.
	quiz, err = g.Quiz(context.Background(), QuizInput{Topic: "Fractions"})
	if err != nil {
		t.Fatalf("Quiz: %v", err)
	}
	if len(quiz.Questions) != 1 {
		t.Errorf("zero-count quiz has %d questions, want 1", len(quiz.Questions))
	}
}

func TestStaticWorksheetAndRubric(t *testing.T) {
	g := NewStaticGenerator()

	ws, err := g.Worksheet(context.Background(), WorksheetInput{Topic: "Volcanoes", Grade: "5"})
	if err != nil {
		t.Fatalf("Worksheet: %v", err)
	}
	if ws.Topic != "Volcanoes" || len(ws.Activities) != 3 {
		t.Errorf("worksheet = %+v", ws)
	}

	rubric, err := g.Rubric(context.Background(), RubricInput{AssignmentType: "essay"})
	if err != nil {
		t.Fatalf("Rubric: %v", err)
	}
	if rubric.AssignmentType != "essay" || len(rubric.Criteria) != 3 {
		t.Errorf("rubric = %+v", rubric)
	}
	for _, c := range rubric.Criteria {
		if c.Points <= 0 {
			t.Errorf("criterion %q has non-positive points", c.Criterion)
		}
	}
}

func TestStaticTextTool(t *testing.T) {
	g := NewStaticGenerator()
	res, err := g.TextTool(context.Background(), TextToolInput{Mode: "simplify", Text: "Some dense text."})
	if err != nil {
		t.Fatalf("TextTool: %v", err)
	}
	if res.Output != "[simplify] Some dense text." {
		t.Errorf("output = %q", res.Output)
	}
}
