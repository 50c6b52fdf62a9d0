// File path: internal/workflow/areas.go
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/knowledge"
	"github.com/surveyforge/surveyforge/internal/survey"
)

const areaMethodHelp = `입력을 이해하지 못했습니다.

영역 설정 방법을 선택해주세요:
- AI가 영역을 제안받으려면 '제안' 또는 '추천'을 입력하세요.
- 직접 영역을 설정하려면 '직접'을 입력하거나 영역 목록을 입력하세요.
  예: 1. 가구특성, 2. 경제활동, 3. 건강`

// setAreas establishes the section structure, assisted by the reference
// catalog or entered directly, with a suggest-revise loop in assisted mode.
func (s *Steps) setAreas(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.AreasCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepAreas) {
		firstEntry(&u, survey.StepAreas)
		u.Assistant(fmt.Sprintf(`목표(%s)를 달성하기 위해, 먼저 설문 구성을 위한 주요 영역을 설정합니다.

Q1. 기존 설문지를 참고해 영역에 대한 제안을 받으시겠습니까? 아니면 직접 영역을 설정하시겠습니까?

[영역 제안]을 선택하면 AI가 내부 DB를 참고하여 영역 구성과 순서를 제안합니다.
[직접 설정]을 선택하면 사용자가 핵심 영역들을 입력하시면 됩니다.
(예시: 1. 가구특성, 2. 가정, 3. 교육, 4. 교통, 5. 경제)`, goalSummary(st.Intent)))
		u.AreaSettingMethod = survey.String("")
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}

	if st.AreaSettingMethod == "" {
		return s.chooseAreaMethod(ctx, st, input)
	}
	if st.AreaSettingMethod == survey.MethodAssisted {
		if st.HierarchicalStructure == "" {
			return s.suggestAreas(ctx, st)
		}
		return s.handleAreaFeedback(ctx, st, input)
	}

	// Direct entry: the turn is the structure itself.
	u.Area = survey.String(input)
	u.HierarchicalStructure = survey.String(input)
	u.AreasCompleted = survey.Bool(true)
	u.Assistant(fmt.Sprintf("다음과 같이 영역이 설정되었습니다:\n\n%s\n\n다음 단계로 진행합니다.", input))
	return u
}

func goalSummary(intent string) string {
	if intent == "" {
		return "설문 목표"
	}
	first := strings.SplitN(intent, "\n", 2)[0]
	runes := []rune(first)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return first
}

func (s *Steps) chooseAreaMethod(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	if !plausibleAreaInput(input) {
		u.Assistant(areaMethodHelp)
		return u
	}
	switch s.decide(ctx, classify.KindAreaMethod, input, "") {
	case classify.OutcomeDirect:
		u.AreaSettingMethod = survey.String(survey.MethodDirect)
		// The turn may already carry the area list.
		if extracted := s.extractAreaList(ctx, input); extracted != "" {
			u.Area = survey.String(extracted)
			u.HierarchicalStructure = survey.String(extracted)
			u.AreasCompleted = survey.Bool(true)
			u.Assistant(fmt.Sprintf("입력하신 영역으로 설정했습니다:\n\n%s\n\n다음 단계로 진행합니다.", extracted))
			return u
		}
		u.Assistant("직접 영역 설정을 선택하셨습니다. 설문 구성을 위한 주요 영역들을 입력해주세요.\n(예시: 1. 가구특성, 2. 가정, 3. 교육, 4. 교통, 5. 경제)")
		return u
	default:
		method := survey.MethodAssisted
		st2 := st.Clone()
		st2.AreaSettingMethod = method
		st2.AreaConstraints = input
		out := s.suggestAreas(ctx, st2)
		if out.AreaSettingMethod == nil {
			out.AreaSettingMethod = survey.String(method)
		}
		out.AreaConstraints = survey.String(input)
		return out
	}
}

// plausibleAreaInput filters out turns too vague to act on at the method
// decision point.
func plausibleAreaInput(input string) bool {
	if len([]rune(input)) >= 10 {
		return true
	}
	if len([]rune(input)) < 2 {
		return false
	}
	for _, kw := range []string{"제안", "참고", "직접", "설정", "추천", ","} {
		if strings.Contains(input, kw) {
			return true
		}
	}
	for _, r := range input {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// extractAreaList asks the model whether the turn already contains a
// numbered area list and normalizes it when it does. A deterministic check
// backs up the model: any multi-entry numbered list passes through as-is.
func (s *Steps) extractAreaList(ctx context.Context, input string) string {
	payload, err := s.askJSON(ctx, areaExtractSystem, areaExtractPrompt, map[string]any{"user_input": input})
	if err == nil {
		var parsed struct {
			HasAreaList           bool   `json:"has_area_list"`
			HierarchicalStructure string `json:"hierarchical_structure"`
		}
		if json.Unmarshal([]byte(payload), &parsed) == nil && parsed.HasAreaList && parsed.HierarchicalStructure != "" {
			return strings.TrimSpace(parsed.HierarchicalStructure)
		}
		return ""
	}
	if len(knowledge.AreaNames(normalizeAreaList(input))) >= 2 {
		return normalizeAreaList(input)
	}
	return ""
}

// normalizeAreaList turns "1. a, 2. b, 3. c" into one entry per line.
func normalizeAreaList(input string) string {
	if strings.Contains(input, "\n") {
		return strings.TrimSpace(input)
	}
	parts := strings.Split(input, ",")
	var lines []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			lines = append(lines, p)
		}
	}
	return strings.Join(lines, "\n")
}

// referenceAreaText retrieves catalog areas matching the survey and renders
// them for prompt context.
func (s *Steps) referenceAreaText(ctx context.Context, st survey.State) string {
	if s.catalog == nil || st.DatabaseChoice != survey.SourceReference {
		return ""
	}
	query := st.SurveyType
	if query == "" {
		query = st.Intent
	}
	areas, err := s.catalog.SuggestAreas(ctx, query, 15)
	if err != nil {
		s.log.Warn("workflow: area retrieval failed", "error", err)
		return ""
	}
	if len(areas) == 0 {
		return ""
	}
	names := make([]string, len(areas))
	for i, a := range areas {
		names[i] = a.Name
	}
	return "내부 DB에서 찾은 유사 영역 예시:\n" + strings.Join(names, ", ")
}

func (s *Steps) suggestAreas(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	constraints := st.AreaConstraints
	if constraints == "" {
		constraints = "(사용자가 추가 요청 없음)"
	}
	payload, err := s.askJSON(ctx, areaExpertSystem, areaSuggestPrompt, map[string]any{
		"intent":           st.Intent,
		"reference_areas":  s.referenceAreaText(ctx, st),
		"user_constraints": constraints,
	})
	if err == nil {
		var parsed struct {
			HierarchicalStructure string `json:"hierarchical_structure"`
			Reason                string `json:"reason"`
		}
		if json.Unmarshal([]byte(payload), &parsed) == nil && parsed.HierarchicalStructure != "" {
			u.HierarchicalStructure = survey.String(parsed.HierarchicalStructure)
			u.Assistant(fmt.Sprintf(`다음과 같은 영역 구성을 제안합니다:

%s

%s

이 제안이 괜찮으면 '다음으로 진행', '좋아요' 등으로 답변해주세요.
수정이 필요하면 '7개로 줄여줘', '가구특성과 주거를 합쳐줘'처럼 구체적으로 입력해주세요.`, parsed.HierarchicalStructure, parsed.Reason))
			return u
		}
	}
	s.log.Warn("workflow: area suggestion failed, switching to direct entry", "error", err)
	u.AreaSettingMethod = survey.String(survey.MethodDirect)
	u.Assistant("영역 제안 생성에 문제가 발생했습니다. 직접 영역을 설정해주세요.\n(예시: 1. 가구특성, 2. 가정, 3. 교육)")
	return u
}

func (s *Steps) handleAreaFeedback(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	switch s.decide(ctx, classify.KindAreaReviewGate, input, st.HierarchicalStructure) {
	case classify.OutcomeRevise:
		payload, err := s.askJSON(ctx, areaReviseSystem, areaRevisePrompt, map[string]any{
			"intent":            st.Intent,
			"reference_areas":   s.referenceAreaText(ctx, st),
			"current_structure": st.HierarchicalStructure,
			"revision_request":  input,
		})
		if err == nil {
			var parsed struct {
				HierarchicalStructure string `json:"hierarchical_structure"`
				Reason                string `json:"reason"`
			}
			if json.Unmarshal([]byte(payload), &parsed) == nil && parsed.HierarchicalStructure != "" {
				u.HierarchicalStructure = survey.String(parsed.HierarchicalStructure)
				u.Assistant(fmt.Sprintf(`수정 요청을 반영하여 영역 구성을 다시 제안합니다:

%s

%s

이 구성이 괜찮으면 '다음으로 진행' 등으로 답변해주세요.
추가 수정이 있으면 계속 말씀해주세요.`, parsed.HierarchicalStructure, parsed.Reason))
				return u
			}
		}
		s.log.Warn("workflow: area revision failed, keeping current structure", "error", err)
		u.AreasCompleted = survey.Bool(true)
		return u
	case classify.OutcomeProceed, classify.OutcomeAmbiguous:
		// An unclear answer after a standing proposal accepts it.
		u.AreasCompleted = survey.Bool(true)
		return u
	}
	u.AreasCompleted = survey.Bool(true)
	return u
}

// reviewAreas critiques the settled structure once and gates advancement on
// an explicit confirmation.
func (s *Steps) reviewAreas(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.AreaReviewCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepAreaReview) {
		firstEntry(&u, survey.StepAreaReview)
		review, err := s.askPrompt(ctx, areaReviewSystem, areaReviewPrompt, map[string]any{
			"hierarchical_structure": st.HierarchicalStructure,
		})
		if err != nil || strings.TrimSpace(review) == "" {
			review = "영역 구조가 적절해 보입니다."
		}
		u.AreaReviewMessage = survey.String(review)
		u.OriginalAreaStructure = survey.String(st.HierarchicalStructure)
		u.Assistant(fmt.Sprintf("[영역 구조 검토]\n\n%s\n\n이대로 진행하시겠습니까? (확인/수정)", review))
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}
	switch s.decide(ctx, classify.KindAreaConfirm, input, st.HierarchicalStructure) {
	case classify.OutcomeConfirm:
		u.AreaReviewCompleted = survey.Bool(true)
		u.Assistant("영역 구조가 확정되었습니다. 다음 단계로 진행합니다.")
	case classify.OutcomeModify:
		u.Assistant("수정할 영역 구조를 입력해 주세요.\n(예시: 1. 가구특성, 2. 경제활동, 3. 건강)")
	case classify.OutcomeReplace:
		u.HierarchicalStructure = survey.String(input)
		u.AreaReviewCompleted = survey.Bool(true)
		u.Assistant(fmt.Sprintf("영역이 수정되었습니다.\n\n%s", input))
	default:
		u.Assistant("입력을 이해하지 못했습니다.\n\n- 현재 영역 구조로 진행하려면 '확인' 또는 '예'를 입력하세요.\n- 영역을 수정하려면 '수정'을 입력하거나 새로운 영역 구조를 직접 입력해주세요.")
	}
	return u
}
