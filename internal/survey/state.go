// File path: internal/survey/state.go
package survey

// Message roles used in the conversation log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the append-only conversation log.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Step identifiers, in execution order. The sequence is fixed and linear;
// all branching happens inside a step's own handler.
const (
	StepObjective   = "set_survey_objective"
	StepSource      = "select_database"
	StepAreas       = "set_survey_areas"
	StepAreaReview  = "review_area_structure"
	StepItems       = "set_detailed_items"
	StepItemReview  = "review_detailed_items_structure"
	StepLayout      = "set_layout_composition"
	StepGenerate    = "generate_and_review_survey"
	StepFinalize    = "finalize_and_refine_survey"
	StepCreateDraft = "create_draft"
)

// StepOrder lists every step in the order the router advances through them.
var StepOrder = []string{
	StepObjective,
	StepSource,
	StepAreas,
	StepAreaReview,
	StepItems,
	StepItemReview,
	StepLayout,
	StepGenerate,
	StepFinalize,
	StepCreateDraft,
}

// Method selector values recorded when a step offers both an AI-assisted
// and a direct-entry execution branch.
const (
	MethodAssisted = "assisted_suggestion"
	MethodDirect   = "direct_entry"
)

// Source selection outcomes for the select_database step.
const (
	SourceReference = "reference_db"
	SourceScratch   = "from_scratch"
)

// State is the single record threaded through the whole workflow. Handlers
// never mutate it; they return an Update the engine merges into a fresh
// value. Every field is declared here with a zero default so no step ever
// observes a missing key.
type State struct {
	Messages      []Message `json:"messages"`
	ExecutedSteps []string  `json:"executed_steps"`
	CurrentStep   string    `json:"current_step"`

	// Objective setting.
	Intent                string `json:"intent"`
	ObjectiveQuestionStep int    `json:"survey_objective_question_step"`
	ObjectiveCompleted    bool   `json:"survey_objective_completed"`

	// Source selection.
	DatabaseChoice  string `json:"database_choice"`
	SurveyType      string `json:"survey_type"`
	SourceCompleted bool   `json:"database_selection_completed"`

	// Area structure.
	HierarchicalStructure   string `json:"hierarchical_structure"`
	AreaSettingMethod       string `json:"area_setting_method"`
	AreaConstraints         string `json:"area_suggestion_constraints"`
	Area                    string `json:"area"`
	AreasCompleted          bool   `json:"survey_areas_completed"`
	AreaReviewCompleted     bool   `json:"area_structure_review_completed"`
	AreaReviewMessage       string `json:"area_review_message"`
	OriginalAreaStructure   string `json:"original_hierarchical_structure"`

	// Detailed items.
	SectionItems         string `json:"section_items"`
	ItemsSettingMethod   string `json:"items_setting_method"`
	ItemConstraints      string `json:"item_suggestion_constraints"`
	ItemsCompleted       bool   `json:"detailed_items_completed"`
	ItemReviewCompleted  bool   `json:"detailed_items_review_completed"`
	ItemReviewMessage    string `json:"detailed_items_review_message"`
	OriginalSectionItems string `json:"original_section_items"`

	// Layout composition. LayoutSetting holds the JSON-encoded assignment
	// list so it round-trips through the field override API as plain text.
	LayoutSetting   string `json:"layout_setting"`
	LayoutCompleted bool   `json:"layout_composition_completed"`

	// Generation and review.
	SurveyDraft         string `json:"survey_draft"`
	GenerationCompleted bool   `json:"survey_generation_completed"`

	// Finalization. ReviewApply is tri-state: nil until the user decides
	// whether to adopt the critique's revision.
	FinalSurvey           string `json:"final_survey"`
	FinalizationCompleted bool   `json:"survey_finalization_completed"`
	SurveyReviewMessage   string `json:"survey_review_message"`
	OriginalSurveyDraft   string `json:"original_survey_draft"`
	ReviewApply           *bool  `json:"survey_review_apply"`

	DraftCompleted bool `json:"draft_creation_completed"`

	// Retrieved reference questions kept for the preview pane.
	GraphItemQuestions string `json:"graph_item_questions"`
}

// StepExecuted reports whether the step has been entered at least once.
func (s State) StepExecuted(step string) bool {
	for _, id := range s.ExecutedSteps {
		if id == step {
			return true
		}
	}
	return false
}

// LastMessage returns the newest conversation entry, if any.
func (s State) LastMessage() (Message, bool) {
	if len(s.Messages) == 0 {
		return Message{}, false
	}
	return s.Messages[len(s.Messages)-1], true
}

// AwaitingInput reports whether the newest conversation entry is not a user
// message, meaning the step has nothing new to process.
func (s State) AwaitingInput() bool {
	last, ok := s.LastMessage()
	return !ok || last.Role != RoleUser
}

// Clone returns a deep copy so snapshots never share slice storage with the
// live state.
func (s State) Clone() State {
	out := s
	out.Messages = append([]Message(nil), s.Messages...)
	out.ExecutedSteps = append([]string(nil), s.ExecutedSteps...)
	if s.ReviewApply != nil {
		v := *s.ReviewApply
		out.ReviewApply = &v
	}
	return out
}

// Completed reports whether the whole workflow has reached its terminal
// state.
func (s State) Completed() bool {
	return s.DraftCompleted
}
