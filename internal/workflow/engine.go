// File path: internal/workflow/engine.go
package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/surveyforge/surveyforge/internal/common"
	"github.com/surveyforge/surveyforge/internal/survey"
)

// maxPasses bounds how many full step sweeps one user turn may trigger.
// Handlers that only flip completion flags chain several steps in one turn
// (area review straight into item setup, for example); the bound keeps a
// misbehaving handler from spinning the engine.
const maxPasses = 10

// Engine advances a survey state through the fixed step order. It holds no
// per-session state of its own; callers own persistence.
type Engine struct {
	steps *Steps
	log   *slog.Logger
}

func NewEngine(steps *Steps) *Engine {
	return &Engine{steps: steps, log: common.Logger()}
}

// NewSession runs the opening sweep over a fresh state, producing the
// greeting and the first objective question.
func (e *Engine) NewSession(ctx context.Context) survey.State {
	st := survey.State{CurrentStep: survey.StepObjective}
	return e.runPasses(ctx, st)
}

// ProcessMessage appends one user turn and sweeps the steps until the
// conversation is waiting on the user again.
func (e *Engine) ProcessMessage(ctx context.Context, st survey.State, input string) survey.State {
	input = strings.TrimSpace(input)
	if input != "" {
		st.Messages = append(st.Messages, survey.Message{Role: survey.RoleUser, Content: input})
	}
	return e.runPasses(ctx, st)
}

func (e *Engine) runPasses(ctx context.Context, st survey.State) survey.State {
	for pass := 0; pass < maxPasses; pass++ {
		next, progressed := e.runPass(ctx, st)
		st = next
		if !progressed || st.AwaitingInput() {
			return st
		}
	}
	e.log.Warn("workflow: pass limit reached", "step", st.CurrentStep)
	return st
}

// runPass executes handlers in step order, merging each update, and stops at
// the first step whose completion flag is still down. It reports whether any
// handler produced an update, so the caller can tell a quiesced state from
// one still advancing.
func (e *Engine) runPass(ctx context.Context, st survey.State) (survey.State, bool) {
	progressed := false
	for _, stepID := range survey.StepOrder {
		u := e.steps.Execute(ctx, stepID, st)
		if !u.Empty() {
			st = survey.Merge(st, u)
			progressed = true
		}
		if !StepCompleted(st, stepID) {
			break
		}
	}
	return st, progressed
}
