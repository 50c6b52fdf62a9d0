// File path: internal/workflow/steps.go

// Package workflow drives the survey authoring conversation: ten handlers,
// one per step, executed in fixed order over a shared state record. Each
// handler is a pure function from state to a partial update; the engine
// merges updates and advances while completion flags allow.
package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/prompts"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/knowledge"
	"github.com/surveyforge/surveyforge/internal/llm"
	"github.com/surveyforge/surveyforge/internal/survey"
)

// Steps bundles the step handlers with their shared dependencies. Catalog
// may be nil; assisted suggestion then runs without reference material.
type Steps struct {
	provider   llm.Provider
	classifier classify.Classifier
	catalog    *knowledge.Store
	log        *slog.Logger
}

// NewSteps wires the handler set.
func NewSteps(provider llm.Provider, classifier classify.Classifier, catalog *knowledge.Store) *Steps {
	return &Steps{
		provider:   provider,
		classifier: classifier,
		catalog:    catalog,
		log:        common.Logger(),
	}
}

// Execute runs one step handler against the current state.
func (s *Steps) Execute(ctx context.Context, stepID string, st survey.State) survey.Update {
	switch stepID {
	case survey.StepObjective:
		return s.setObjective(ctx, st)
	case survey.StepSource:
		return s.selectSource(ctx, st)
	case survey.StepAreas:
		return s.setAreas(ctx, st)
	case survey.StepAreaReview:
		return s.reviewAreas(ctx, st)
	case survey.StepItems:
		return s.setItems(ctx, st)
	case survey.StepItemReview:
		return s.reviewItems(ctx, st)
	case survey.StepLayout:
		return s.setLayout(ctx, st)
	case survey.StepGenerate:
		return s.generateSurvey(ctx, st)
	case survey.StepFinalize:
		return s.finalizeSurvey(ctx, st)
	case survey.StepCreateDraft:
		return s.createDraft(ctx, st)
	}
	return survey.Update{}
}

// StepCompleted reports the completion flag guarding advancement past the
// given step.
func StepCompleted(st survey.State, stepID string) bool {
	switch stepID {
	case survey.StepObjective:
		return st.ObjectiveCompleted
	case survey.StepSource:
		return st.SourceCompleted
	case survey.StepAreas:
		return st.AreasCompleted
	case survey.StepAreaReview:
		return st.AreaReviewCompleted
	case survey.StepItems:
		return st.ItemsCompleted
	case survey.StepItemReview:
		return st.ItemReviewCompleted
	case survey.StepLayout:
		return st.LayoutCompleted
	case survey.StepGenerate:
		return st.GenerationCompleted
	case survey.StepFinalize:
		return st.FinalizationCompleted
	case survey.StepCreateDraft:
		return st.DraftCompleted
	}
	return false
}

// userInput returns the pending user turn, or "" when the step has nothing
// to process.
func userInput(st survey.State) string {
	last, ok := st.LastMessage()
	if !ok || last.Role != survey.RoleUser {
		return ""
	}
	return last.Content
}

// firstEntry marks the step executed and sets it current on the update.
func firstEntry(u *survey.Update, stepID string) {
	u.ExecutedSteps = append(u.ExecutedSteps, stepID)
	u.CurrentStep = survey.String(stepID)
}

// askPrompt formats a template and runs it through the provider.
func (s *Steps) askPrompt(ctx context.Context, system string, tmpl prompts.PromptTemplate, values map[string]any) (string, error) {
	text, err := tmpl.Format(values)
	if err != nil {
		return "", fmt.Errorf("workflow: format prompt: %w", err)
	}
	return llm.Complete(ctx, s.provider, system, text)
}

// askJSON formats a template, runs it through the provider, and extracts
// the JSON payload from the reply.
func (s *Steps) askJSON(ctx context.Context, system string, tmpl prompts.PromptTemplate, values map[string]any) (string, error) {
	raw, err := s.askPrompt(ctx, system, tmpl, values)
	if err != nil {
		return "", err
	}
	return llm.ExtractJSON(raw)
}

func (s *Steps) decide(ctx context.Context, kind classify.Kind, input, context string) classify.Outcome {
	d, err := s.classifier.Classify(ctx, classify.Request{Kind: kind, Input: input, Context: context})
	if err != nil {
		s.log.Warn("workflow: classification failed", "kind", string(kind), "error", err)
		return classify.OutcomeAmbiguous
	}
	return d.Outcome
}
