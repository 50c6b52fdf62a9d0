// File path: internal/workflow/finalize.go
package workflow

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/survey"
)

// finalizeSurvey runs a one-time quality review over the accepted draft,
// lets the reader apply or discard the refined version, then loops on
// free-form revision requests until the survey is declared final.
func (s *Steps) finalizeSurvey(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.FinalizationCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepFinalize) {
		firstEntry(&u, survey.StepFinalize)
		return s.qualityReview(ctx, st, &u)
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}
	if st.ReviewApply == nil {
		return s.applyDecision(ctx, st, input)
	}
	return s.finalizeLoop(ctx, st, input)
}

func (s *Steps) qualityReview(ctx context.Context, st survey.State, u *survey.Update) survey.Update {
	payload, err := s.askJSON(ctx, qualityReviewSystem, qualityReviewPrompt, map[string]any{
		"intent":       st.Intent,
		"survey_draft": st.SurveyDraft,
	})
	var parsed struct {
		ReviewResult    string `json:"review_result"`
		RefinedSurvey   string `json:"refined_survey"`
		HasImprovements bool   `json:"has_improvements"`
	}
	if err == nil {
		err = json.Unmarshal([]byte(payload), &parsed)
	}
	if err != nil || strings.TrimSpace(parsed.RefinedSurvey) == "" {
		s.log.Warn("workflow: quality review failed", "error", err)
		u.ReviewApply = survey.Bool(false)
		u.FinalSurvey = survey.String(st.SurveyDraft)
		u.Assistant("품질 검토를 수행하지 못해 초안을 그대로 사용합니다.\n\n수정할 내용이 있으면 말씀해주세요. 없으면 '완료'라고 입력해주세요.")
		return *u
	}
	u.SurveyReviewMessage = survey.String(parsed.ReviewResult)
	u.OriginalSurveyDraft = survey.String(st.SurveyDraft)
	u.SurveyDraft = survey.String(parsed.RefinedSurvey)
	u.FinalSurvey = survey.String(parsed.RefinedSurvey)
	if parsed.HasImprovements {
		u.Assistant("[설문지 품질 검토 결과]\n\n" + parsed.ReviewResult +
			"\n\n[개선된 설문지]\n\n" + parsed.RefinedSurvey +
			"\n\n개선 사항을 반영하시겠습니까? (예/아니오)")
	} else {
		u.Assistant("[설문지 품질 검토 결과]\n\n" + parsed.ReviewResult +
			"\n\n개선이 필요한 부분이 발견되지 않았습니다. 검토 결과를 반영하시겠습니까? (예/아니오)")
	}
	return *u
}

func (s *Steps) applyDecision(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	switch s.decide(ctx, classify.KindApplyReview, input, st.SurveyReviewMessage) {
	case classify.OutcomeApply:
		u.ReviewApply = survey.Bool(true)
		u.FinalSurvey = survey.String(st.SurveyDraft)
		u.Assistant("검토 결과가 반영되었습니다.\n\n추가로 수정할 내용이 있으면 말씀해주세요. 없으면 '완료'라고 입력해주세요.")
		return u
	case classify.OutcomeRestore:
		u.ReviewApply = survey.Bool(false)
		u.SurveyDraft = survey.String(st.OriginalSurveyDraft)
		u.FinalSurvey = survey.String(st.OriginalSurveyDraft)
		u.Assistant("검토 전 초안으로 되돌렸습니다.\n\n수정할 내용이 있으면 말씀해주세요. 없으면 '완료'라고 입력해주세요.")
		return u
	default:
		u.Assistant("검토 결과 반영 여부를 알려주세요. (예/아니오)")
		return u
	}
}

func (s *Steps) finalizeLoop(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	switch s.decide(ctx, classify.KindFinalizeLoop, input, st.FinalSurvey) {
	case classify.OutcomeComplete:
		u.FinalizationCompleted = survey.Bool(true)
		u.Assistant("최종 설문지가 확정되었습니다.")
		return u
	case classify.OutcomeAmbiguous:
		u.Assistant("수정할 내용을 구체적으로 입력해주세요. 수정이 없으면 '완료'라고 입력해주세요.")
		return u
	default:
		revised, err := s.askPrompt(ctx, modifySurveySystem, modifySurveyPrompt, map[string]any{
			"survey_draft": st.SurveyDraft,
			"user_input":   input,
		})
		if err != nil || strings.TrimSpace(revised) == "" {
			s.log.Warn("workflow: final revision failed", "error", err)
			u.Assistant("설문지 수정 중 오류가 발생했습니다. 다시 시도해주세요.")
			return u
		}
		u.SurveyDraft = survey.String(revised)
		u.FinalSurvey = survey.String(revised)
		u.Assistant("[수정된 설문지]\n\n" + revised + "\n\n추가로 수정할 내용이 있으면 말씀해주세요. 없으면 '완료'라고 입력해주세요.")
		return u
	}
}

// createDraft closes out the session once a final survey exists.
func (s *Steps) createDraft(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.DraftCompleted {
		return u
	}
	firstEntry(&u, survey.StepCreateDraft)
	if strings.TrimSpace(st.FinalSurvey) == "" && strings.TrimSpace(st.SurveyDraft) == "" {
		u.Assistant("설문지 초안이 없어 완료할 수 없습니다. 이전 단계를 먼저 진행해주세요.")
		return u
	}
	if strings.TrimSpace(st.FinalSurvey) == "" {
		u.FinalSurvey = survey.String(st.SurveyDraft)
	}
	u.DraftCompleted = survey.Bool(true)
	u.Assistant("설문지 작성이 완료되었습니다!\n\n상단의 '내보내기' 버튼을 클릭하여 DOCX 또는 PDF로 다운로드할 수 있습니다.")
	return u
}
