// File path: internal/classify/classify.go

// Package classify decides how a user turn should be interpreted at the
// workflow's decision points. Every decision point goes through the
// Classifier port, so the deterministic keyword matcher and the
// generation-backed matcher are interchangeable.
package classify

import "context"

// Kind names a decision point in the workflow.
type Kind string

const (
	// KindSourceChoice separates reference-backed authoring from scratch.
	KindSourceChoice Kind = "source_choice"
	// KindSurveyType picks the reference catalog flavor.
	KindSurveyType Kind = "survey_type"
	// KindAreaMethod chooses assisted suggestion or direct entry for areas.
	KindAreaMethod Kind = "area_method"
	// KindItemMethod chooses assisted suggestion or direct entry for items.
	KindItemMethod Kind = "item_method"
	// KindAreaReviewGate is the proceed-or-revise gate after area setup.
	KindAreaReviewGate Kind = "area_review_gate"
	// KindItemReviewGate is the proceed-or-revise gate after item setup.
	KindItemReviewGate Kind = "item_review_gate"
	// KindAreaConfirm handles the assisted-area confirmation loop, where a
	// long numbered answer counts as a direct replacement.
	KindAreaConfirm Kind = "area_confirm"
	// KindItemConfirm handles the assisted-item confirmation loop, where a
	// long structured answer counts as a direct replacement.
	KindItemConfirm Kind = "item_confirm"
	// KindLayoutConfirm confirms or reworks the proposed layout.
	KindLayoutConfirm Kind = "layout_confirm"
	// KindGenerateReview accepts or revises the generated draft.
	KindGenerateReview Kind = "generate_review"
	// KindApplyReview decides whether to adopt the critique's revision.
	KindApplyReview Kind = "apply_review"
	// KindFinalizeLoop drives the post-critique free-form revision loop.
	KindFinalizeLoop Kind = "finalize_loop"
)

// Outcome is the interpreted intent of a turn.
type Outcome string

const (
	OutcomeReference Outcome = "reference"
	OutcomeScratch   Outcome = "scratch"
	OutcomeSocial    Outcome = "social"
	OutcomeOther     Outcome = "other"
	OutcomeAssisted  Outcome = "assisted"
	OutcomeDirect    Outcome = "direct"
	OutcomeProceed   Outcome = "proceed"
	OutcomeRevise    Outcome = "revise"
	OutcomeConfirm   Outcome = "confirm"
	OutcomeModify    Outcome = "modify"
	OutcomeReplace   Outcome = "replace"
	OutcomeApply     Outcome = "apply"
	OutcomeRestore   Outcome = "restore"
	OutcomeComplete  Outcome = "complete"
	// OutcomeAmbiguous means the step should re-prompt instead of guessing.
	OutcomeAmbiguous Outcome = "ambiguous"
)

// Request carries one turn to classify. Context is optional step-specific
// material (the artifact under review) for generation-backed classifiers.
type Request struct {
	Kind    Kind
	Input   string
	Context string
}

// Decision is a classification result.
type Decision struct {
	Outcome Outcome
	// Reason is free text explaining the call; keyword matching leaves it
	// empty, generation-backed classification records the model's reason.
	Reason string
}

// Classifier interprets a user turn at a decision point.
type Classifier interface {
	Classify(ctx context.Context, req Request) (Decision, error)
}
