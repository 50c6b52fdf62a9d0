// File path: internal/survey/delta.go
package survey

import "fmt"

// ImportantFields are the state fields surfaced to clients as authored
// content. Change detection and the right-hand preview run over these only.
var ImportantFields = []string{
	"intent", "hierarchical_structure", "section_items", "layout_setting",
	"survey_draft", "final_survey", "area_review_message",
	"detailed_items_review_message", "survey_review_message",
	"graph_item_questions",
}

// FieldNames maps important fields to their Korean display names.
var FieldNames = map[string]string{
	"intent":                        "설문 목표",
	"hierarchical_structure":        "단계별 영역",
	"section_items":                 "세부 항목",
	"layout_setting":                "레이아웃 설정",
	"survey_draft":                  "설문지 초안",
	"final_survey":                  "최종 설문지",
	"area_review_message":           "영역 검토 메시지",
	"detailed_items_review_message": "세부 항목 검토 메시지",
	"survey_review_message":         "설문 검토 메시지",
	"graph_item_questions":          "그래프 기반 추천 문항",
}

// fieldValue reads one important field off a state.
func fieldValue(s State, field string) string {
	switch field {
	case "intent":
		return s.Intent
	case "hierarchical_structure":
		return s.HierarchicalStructure
	case "section_items":
		return s.SectionItems
	case "layout_setting":
		return s.LayoutSetting
	case "survey_draft":
		return s.SurveyDraft
	case "final_survey":
		return s.FinalSurvey
	case "area_review_message":
		return s.AreaReviewMessage
	case "detailed_items_review_message":
		return s.ItemReviewMessage
	case "survey_review_message":
		return s.SurveyReviewMessage
	case "graph_item_questions":
		return s.GraphItemQuestions
	}
	return ""
}

// EditableField reports whether a field accepts manual edits from clients.
func EditableField(field string) bool {
	_, ok := FieldNames[field]
	return ok
}

// SetField writes one important field on a state. Manual edits to the two
// draft fields keep them in lockstep so the preview and the export agree.
func SetField(s *State, field, value string) error {
	switch field {
	case "intent":
		s.Intent = value
	case "hierarchical_structure":
		s.HierarchicalStructure = value
	case "section_items":
		s.SectionItems = value
	case "layout_setting":
		s.LayoutSetting = value
	case "survey_draft":
		s.SurveyDraft = value
		if s.FinalSurvey != "" {
			s.FinalSurvey = value
		}
	case "final_survey":
		s.FinalSurvey = value
		s.SurveyDraft = value
	case "area_review_message":
		s.AreaReviewMessage = value
	case "detailed_items_review_message":
		s.ItemReviewMessage = value
	case "survey_review_message":
		s.SurveyReviewMessage = value
	case "graph_item_questions":
		s.GraphItemQuestions = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// ChangedFields returns the important fields whose value differs between the
// two states and is non-empty in the current one. Clearing a field never
// counts as a change.
func ChangedFields(prev, curr State) map[string]string {
	changed := make(map[string]string)
	for _, field := range ImportantFields {
		cv := fieldValue(curr, field)
		if cv != fieldValue(prev, field) && cv != "" {
			changed[field] = cv
		}
	}
	return changed
}

// latestFieldPriority orders important fields from most to least
// workflow-advanced, so the preview tracks the furthest artifact touched.
var latestFieldPriority = []string{
	"final_survey", "survey_draft", "section_items", "hierarchical_structure",
	"intent", "layout_setting", "survey_review_message",
	"detailed_items_review_message", "area_review_message",
	"graph_item_questions",
}

// LatestChangedField picks the field clients should display after a turn.
// Among changed fields it returns the highest-priority one; when nothing
// changed it falls back to the most advanced non-empty field of the current
// state, and finally to ("", "").
func LatestChangedField(changed map[string]string, curr State) (string, string) {
	if len(changed) > 0 {
		for _, field := range latestFieldPriority {
			if v, ok := changed[field]; ok {
				return field, v
			}
		}
		for _, field := range ImportantFields {
			if v, ok := changed[field]; ok {
				return field, v
			}
		}
	}
	for _, field := range latestFieldPriority {
		if v := fieldValue(curr, field); v != "" {
			return field, v
		}
	}
	return "", ""
}

// stepGroups maps the coarse six-step progress indicator to workflow steps.
var stepGroups = [][]string{
	1: {StepObjective},
	2: {StepSource},
	3: {StepAreas, StepAreaReview},
	4: {StepItems, StepItemReview},
	5: {StepLayout},
	6: {StepGenerate, StepFinalize, StepCreateDraft},
}

// CurrentStepGroup derives the 1..6 progress indicator from executed steps.
func CurrentStepGroup(s State) int {
	executed := make(map[string]bool, len(s.ExecutedSteps))
	for _, step := range s.ExecutedSteps {
		executed[step] = true
	}
	current := 1
	for group := 1; group < len(stepGroups); group++ {
		for _, step := range stepGroups[group] {
			if executed[step] {
				current = group
				break
			}
		}
	}
	return current
}

// IsSurveyComplete reports whether the terminal draft has been produced and
// the finished document is present.
func IsSurveyComplete(s State) bool {
	return s.DraftCompleted && s.FinalSurvey != ""
}
