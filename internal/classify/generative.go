// File path: internal/classify/generative.go
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/llm"
)

// Generative asks a chat model to interpret the turn and falls back to the
// keyword classifier when the model is unreachable or answers outside the
// allowed outcome set. A keyword hit that is unambiguous short-circuits the
// model entirely, keeping the explicit cue the user typed authoritative.
type Generative struct {
	provider llm.Provider
	fallback *Keyword
}

// NewGenerative wraps a provider with keyword fallback.
func NewGenerative(provider llm.Provider) *Generative {
	return &Generative{provider: provider, fallback: NewKeyword()}
}

// allowedOutcomes limits what the model may answer per decision point.
var allowedOutcomes = map[Kind][]Outcome{
	KindSourceChoice:   {OutcomeReference, OutcomeScratch, OutcomeAmbiguous},
	KindSurveyType:     {OutcomeSocial, OutcomeOther, OutcomeAmbiguous},
	KindAreaMethod:     {OutcomeAssisted, OutcomeDirect},
	KindItemMethod:     {OutcomeAssisted, OutcomeDirect},
	KindAreaReviewGate: {OutcomeProceed, OutcomeRevise, OutcomeAmbiguous},
	KindItemReviewGate: {OutcomeProceed, OutcomeRevise, OutcomeAmbiguous},
	KindAreaConfirm:    {OutcomeConfirm, OutcomeModify, OutcomeReplace, OutcomeAmbiguous},
	KindItemConfirm:    {OutcomeConfirm, OutcomeModify, OutcomeReplace, OutcomeAmbiguous},
	KindLayoutConfirm:  {OutcomeConfirm, OutcomeModify, OutcomeAmbiguous},
	KindGenerateReview: {OutcomeComplete, OutcomeModify, OutcomeAmbiguous},
	KindApplyReview:    {OutcomeApply, OutcomeRestore, OutcomeAmbiguous},
	KindFinalizeLoop:   {OutcomeComplete, OutcomeModify, OutcomeAmbiguous},
}

const classifySystemPrompt = "당신은 설문지 작성 도우미의 의도 분류기입니다. 사용자 입력을 분석하여 지정된 outcome 중 하나를 JSON으로만 답하세요."

func (g *Generative) Classify(ctx context.Context, req Request) (Decision, error) {
	keyword, err := g.fallback.Classify(ctx, req)
	if err == nil && keyword.Outcome != OutcomeAmbiguous {
		return keyword, nil
	}

	outcomes, ok := allowedOutcomes[req.Kind]
	if !ok {
		return Decision{Outcome: OutcomeAmbiguous}, fmt.Errorf("classify: unknown kind %q", req.Kind)
	}

	decision, err := g.ask(ctx, req, outcomes)
	if err != nil {
		common.Logger().Warn("classify: model unavailable, using keyword fallback",
			"kind", string(req.Kind), "error", err)
		return keyword, nil
	}
	return decision, nil
}

func (g *Generative) ask(ctx context.Context, req Request, outcomes []Outcome) (Decision, error) {
	names := make([]string, len(outcomes))
	for i, o := range outcomes {
		names[i] = string(o)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "결정 지점: %s\n", req.Kind)
	fmt.Fprintf(&b, "허용 outcome: %s\n", strings.Join(names, ", "))
	if req.Context != "" {
		fmt.Fprintf(&b, "현재 맥락:\n%s\n", req.Context)
	}
	fmt.Fprintf(&b, "사용자 입력: %s\n", req.Input)
	b.WriteString(`JSON으로만 답하세요: {"outcome": "...", "reason": "..."}`)

	raw, err := llm.Complete(ctx, g.provider, classifySystemPrompt, b.String())
	if err != nil {
		return Decision{}, err
	}
	payload, err := llm.ExtractJSON(raw)
	if err != nil {
		return Decision{}, err
	}
	var parsed struct {
		Outcome string `json:"outcome"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return Decision{}, fmt.Errorf("classify: parse model answer: %w", err)
	}
	for _, o := range outcomes {
		if Outcome(parsed.Outcome) == o {
			return Decision{Outcome: o, Reason: parsed.Reason}, nil
		}
	}
	return Decision{}, fmt.Errorf("classify: model answered outside the outcome set: %q", parsed.Outcome)
}
