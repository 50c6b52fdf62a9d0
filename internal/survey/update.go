// File path: internal/survey/update.go
package survey

// Update is a partial state change returned by a step handler. Scalar fields
// use pointers so "untouched" and "set to the zero value" stay
// distinguishable; Messages and ExecutedSteps are appended, never replaced.
// The engine merges an Update into the previous State to produce a fresh
// value, which keeps delta computation between consecutive snapshots exact.
type Update struct {
	Messages      []Message
	ExecutedSteps []string
	CurrentStep   *string

	Intent                *string
	ObjectiveQuestionStep *int
	ObjectiveCompleted    *bool

	DatabaseChoice  *string
	SurveyType      *string
	SourceCompleted *bool

	HierarchicalStructure *string
	AreaSettingMethod     *string
	AreaConstraints       *string
	Area                  *string
	AreasCompleted        *bool
	AreaReviewCompleted   *bool
	AreaReviewMessage     *string
	OriginalAreaStructure *string

	SectionItems         *string
	ItemsSettingMethod   *string
	ItemConstraints      *string
	ItemsCompleted       *bool
	ItemReviewCompleted  *bool
	ItemReviewMessage    *string
	OriginalSectionItems *string

	LayoutSetting   *string
	LayoutCompleted *bool

	SurveyDraft         *string
	GenerationCompleted *bool

	FinalSurvey           *string
	FinalizationCompleted *bool
	SurveyReviewMessage   *string
	OriginalSurveyDraft   *string
	ReviewApply           *bool

	DraftCompleted *bool

	GraphItemQuestions *string
}

// Empty reports whether the update changes nothing at all. Completed steps
// return an empty update so re-invoking them is a no-op.
func (u Update) Empty() bool {
	return len(u.Messages) == 0 && len(u.ExecutedSteps) == 0 &&
		u.CurrentStep == nil &&
		u.Intent == nil && u.ObjectiveQuestionStep == nil && u.ObjectiveCompleted == nil &&
		u.DatabaseChoice == nil && u.SurveyType == nil && u.SourceCompleted == nil &&
		u.HierarchicalStructure == nil && u.AreaSettingMethod == nil &&
		u.AreaConstraints == nil && u.Area == nil && u.AreasCompleted == nil &&
		u.AreaReviewCompleted == nil && u.AreaReviewMessage == nil &&
		u.OriginalAreaStructure == nil &&
		u.SectionItems == nil && u.ItemsSettingMethod == nil &&
		u.ItemConstraints == nil && u.ItemsCompleted == nil &&
		u.ItemReviewCompleted == nil && u.ItemReviewMessage == nil &&
		u.OriginalSectionItems == nil &&
		u.LayoutSetting == nil && u.LayoutCompleted == nil &&
		u.SurveyDraft == nil && u.GenerationCompleted == nil &&
		u.FinalSurvey == nil && u.FinalizationCompleted == nil &&
		u.SurveyReviewMessage == nil && u.OriginalSurveyDraft == nil &&
		u.ReviewApply == nil && u.DraftCompleted == nil &&
		u.GraphItemQuestions == nil
}

// Assistant appends an assistant message to the update.
func (u *Update) Assistant(content string) {
	u.Messages = append(u.Messages, Message{Role: RoleAssistant, Content: content})
}

// String returns a pointer for a string field assignment.
func String(v string) *string { return &v }

// Int returns a pointer for an int field assignment.
func Int(v int) *int { return &v }

// Bool returns a pointer for a bool field assignment.
func Bool(v bool) *bool { return &v }

// Merge applies an update to a snapshot and returns the resulting state.
// The input state is cloned first, so previous snapshots stay intact.
func Merge(prev State, u Update) State {
	s := prev.Clone()
	s.Messages = append(s.Messages, u.Messages...)
	for _, step := range u.ExecutedSteps {
		if !s.StepExecuted(step) {
			s.ExecutedSteps = append(s.ExecutedSteps, step)
		}
	}
	if u.CurrentStep != nil {
		s.CurrentStep = *u.CurrentStep
	}
	if u.Intent != nil {
		s.Intent = *u.Intent
	}
	if u.ObjectiveQuestionStep != nil {
		s.ObjectiveQuestionStep = *u.ObjectiveQuestionStep
	}
	if u.ObjectiveCompleted != nil {
		s.ObjectiveCompleted = *u.ObjectiveCompleted
	}
	if u.DatabaseChoice != nil {
		s.DatabaseChoice = *u.DatabaseChoice
	}
	if u.SurveyType != nil {
		s.SurveyType = *u.SurveyType
	}
	if u.SourceCompleted != nil {
		s.SourceCompleted = *u.SourceCompleted
	}
	if u.HierarchicalStructure != nil {
		s.HierarchicalStructure = *u.HierarchicalStructure
	}
	if u.AreaSettingMethod != nil {
		s.AreaSettingMethod = *u.AreaSettingMethod
	}
	if u.AreaConstraints != nil {
		s.AreaConstraints = *u.AreaConstraints
	}
	if u.Area != nil {
		s.Area = *u.Area
	}
	if u.AreasCompleted != nil {
		s.AreasCompleted = *u.AreasCompleted
	}
	if u.AreaReviewCompleted != nil {
		s.AreaReviewCompleted = *u.AreaReviewCompleted
	}
	if u.AreaReviewMessage != nil {
		s.AreaReviewMessage = *u.AreaReviewMessage
	}
	if u.OriginalAreaStructure != nil {
		s.OriginalAreaStructure = *u.OriginalAreaStructure
	}
	if u.SectionItems != nil {
		s.SectionItems = *u.SectionItems
	}
	if u.ItemsSettingMethod != nil {
		s.ItemsSettingMethod = *u.ItemsSettingMethod
	}
	if u.ItemConstraints != nil {
		s.ItemConstraints = *u.ItemConstraints
	}
	if u.ItemsCompleted != nil {
		s.ItemsCompleted = *u.ItemsCompleted
	}
	if u.ItemReviewCompleted != nil {
		s.ItemReviewCompleted = *u.ItemReviewCompleted
	}
	if u.ItemReviewMessage != nil {
		s.ItemReviewMessage = *u.ItemReviewMessage
	}
	if u.OriginalSectionItems != nil {
		s.OriginalSectionItems = *u.OriginalSectionItems
	}
	if u.LayoutSetting != nil {
		s.LayoutSetting = *u.LayoutSetting
	}
	if u.LayoutCompleted != nil {
		s.LayoutCompleted = *u.LayoutCompleted
	}
	if u.SurveyDraft != nil {
		s.SurveyDraft = *u.SurveyDraft
	}
	if u.GenerationCompleted != nil {
		s.GenerationCompleted = *u.GenerationCompleted
	}
	if u.FinalSurvey != nil {
		s.FinalSurvey = *u.FinalSurvey
	}
	if u.FinalizationCompleted != nil {
		s.FinalizationCompleted = *u.FinalizationCompleted
	}
	if u.SurveyReviewMessage != nil {
		s.SurveyReviewMessage = *u.SurveyReviewMessage
	}
	if u.OriginalSurveyDraft != nil {
		s.OriginalSurveyDraft = *u.OriginalSurveyDraft
	}
	if u.ReviewApply != nil {
		v := *u.ReviewApply
		s.ReviewApply = &v
	}
	if u.DraftCompleted != nil {
		s.DraftCompleted = *u.DraftCompleted
	}
	if u.GraphItemQuestions != nil {
		s.GraphItemQuestions = *u.GraphItemQuestions
	}
	return s
}
