// File path: internal/classify/generative_test.go
package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/surveyforge/surveyforge/internal/llm"
)

type mockProvider struct {
	reply string
	err   error
	calls int
}

func (m *mockProvider) Chat(_ context.Context, _ []llm.Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockProvider) Name() string { return "mock" }

func TestGenerativeShortCircuitsOnKeywordHit(t *testing.T) {
	mock := &mockProvider{reply: `{"outcome": "revise"}`}
	g := NewGenerative(mock)

	d, err := g.Classify(context.Background(), Request{Kind: KindAreaReviewGate, Input: "네 그대로 진행해주세요"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if d.Outcome != OutcomeProceed {
		t.Fatalf("got %s, want proceed", d.Outcome)
	}
	if mock.calls != 0 {
		t.Fatalf("model should not be consulted on a keyword hit, got %d calls", mock.calls)
	}
}

func TestGenerativeResolvesAmbiguity(t *testing.T) {
	mock := &mockProvider{reply: "```json\n{\"outcome\": \"revise\", \"reason\": \"영역 재구성 요청\"}\n```"}
	g := NewGenerative(mock)

	d, err := g.Classify(context.Background(), Request{Kind: KindAreaReviewGate, Input: "영역 구성을 조금 손보면 어떨까요"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if d.Outcome != OutcomeRevise || d.Reason == "" {
		t.Fatalf("got %+v", d)
	}
	if mock.calls != 1 {
		t.Fatalf("expected one model call, got %d", mock.calls)
	}
}

func TestGenerativeFallsBackOnError(t *testing.T) {
	mock := &mockProvider{err: errors.New("connection refused")}
	g := NewGenerative(mock)

	d, err := g.Classify(context.Background(), Request{Kind: KindAreaReviewGate, Input: "영역 구성을 조금 손보면 어떨까요"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if d.Outcome != OutcomeAmbiguous {
		t.Fatalf("fallback should return the keyword decision, got %s", d.Outcome)
	}
}

func TestGenerativeRejectsOutOfSetAnswer(t *testing.T) {
	mock := &mockProvider{reply: `{"outcome": "banana"}`}
	g := NewGenerative(mock)

	d, err := g.Classify(context.Background(), Request{Kind: KindAreaReviewGate, Input: "흠 어떻게 할까"})
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if d.Outcome != OutcomeAmbiguous {
		t.Fatalf("out-of-set answer should fall back, got %s", d.Outcome)
	}
}
