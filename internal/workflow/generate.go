// File path: internal/workflow/generate.go
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/knowledge"
	"github.com/surveyforge/surveyforge/internal/survey"
)

// targetCountRe picks the expected question count out of the objective
// summary, e.g. "항목 개수: 예상 문항 수: 30".
var targetCountRe = regexp.MustCompile(`항목\s*개수[:\s]*(?:예상\s*문항\s*수[:\s]*)?\s*(\d+)`)

// referenceQuestion is the per-item retrieval record surfaced to the
// generation prompt and persisted as graph_item_questions.
type referenceQuestion struct {
	Item       string `json:"item"`
	Question   string `json:"question"`
	LayoutCode string `json:"layout_code"`
}

// generateSurvey produces the first full draft from everything collected so
// far, then loops on reader feedback until the draft is accepted.
func (s *Steps) generateSurvey(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.GenerationCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepGenerate) {
		firstEntry(&u, survey.StepGenerate)
		return s.buildDraft(ctx, st, &u)
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}
	switch s.decide(ctx, classify.KindGenerateReview, input, st.SurveyDraft) {
	case classify.OutcomeComplete:
		u.GenerationCompleted = survey.Bool(true)
		u.Assistant("설문지 초안이 확정되었습니다. 최종 검토 단계로 진행합니다.")
		return u
	case classify.OutcomeModify:
		revised, err := s.askPrompt(ctx, modifySurveySystem, modifySurveyPrompt, map[string]any{
			"survey_draft": st.SurveyDraft,
			"user_input":   input,
		})
		if err != nil || strings.TrimSpace(revised) == "" {
			s.log.Warn("workflow: draft revision failed", "error", err)
			u.Assistant("설문지 수정 중 오류가 발생했습니다. 다시 시도해주세요.")
			return u
		}
		u.SurveyDraft = survey.String(revised)
		u.FinalSurvey = survey.String(revised)
		u.Assistant("[수정된 설문지 초안]\n\n" + revised + "\n\n이대로 진행하시겠습니까? 추가로 수정할 내용이 있으면 말씀해주세요.")
		return u
	default:
		u.Assistant("설문지 초안을 확인해주세요.\n'완료'로 확정하거나, 수정할 내용을 구체적으로 입력해주세요.")
		return u
	}
}

func (s *Steps) buildDraft(ctx context.Context, st survey.State, u *survey.Update) survey.Update {
	refs := s.referenceQuestions(ctx, st)
	refText := "(참고 문항 없음)"
	if len(refs) > 0 {
		var b strings.Builder
		for _, r := range refs {
			fmt.Fprintf(&b, "%s: %s [%s]\n", r.Item, r.Question, r.LayoutCode)
		}
		refText = strings.TrimRight(b.String(), "\n")
		if encoded, err := json.Marshal(refs); err == nil {
			u.GraphItemQuestions = survey.String(string(encoded))
		}
	}

	draft, err := s.askPrompt(ctx, generateSystem, generateSurveyPrompt, map[string]any{
		"intent":                     st.Intent,
		"hierarchical_structure":     st.HierarchicalStructure,
		"section_items":              st.SectionItems,
		"layout_info":                layoutInfoText(st.LayoutSetting),
		"reference_questions":        refText,
		"question_count_instruction": questionCountInstruction(st.Intent),
	})
	if err != nil || strings.TrimSpace(draft) == "" {
		s.log.Warn("workflow: draft generation failed", "error", err)
		u.Assistant("설문지 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.")
		return *u
	}
	u.SurveyDraft = survey.String(draft)
	u.Assistant("[설문지 초안]\n\n" + draft + "\n\n초안을 검토해주세요. '완료'로 확정하거나, 수정할 내용을 말씀해주세요.")
	return *u
}

// referenceQuestions retrieves past questions keyed on the confirmed items.
func (s *Steps) referenceQuestions(ctx context.Context, st survey.State) []referenceQuestion {
	if s.catalog == nil {
		return nil
	}
	keywords := knowledge.ItemKeywords(st.SectionItems)
	questions, err := s.catalog.QuestionsForKeywords(ctx, keywords, 30)
	if err != nil {
		s.log.Warn("workflow: reference question retrieval failed", "error", err)
		return nil
	}
	out := make([]referenceQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, referenceQuestion{Item: q.ItemName, Question: q.Text, LayoutCode: q.LayoutCode})
	}
	return out
}

// layoutInfoText renders the stored layout setting for the generation prompt.
func layoutInfoText(layoutSetting string) string {
	assignments, err := survey.DecodeLayouts(layoutSetting)
	if err != nil || len(assignments) == 0 {
		if strings.TrimSpace(layoutSetting) != "" {
			return layoutSetting
		}
		return "(레이아웃 미지정: 항목 특성에 맞게 선택)"
	}
	var b strings.Builder
	for _, a := range assignments {
		if a.LayoutName != "" {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", a.Item, a.LayoutCode, a.LayoutName)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", a.Item, a.LayoutCode)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func questionCountInstruction(intent string) string {
	m := targetCountRe.FindStringSubmatch(intent)
	if m == nil {
		return "문항 수는 항목 구성에 맞게 적절히 결정하세요."
	}
	return fmt.Sprintf("전체 문항 수는 %s개 내외로 작성하세요.", m[1])
}
