// File path: internal/workflow/items.go
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

const itemIntro = `영역 구조가 설정되었습니다. 이제 각 영역별 세부 항목을 설정합니다.

Q. 세부 항목을 어떻게 설정하시겠습니까?

[항목 제안]을 선택하면 AI가 내부 DB를 참고하여 영역별 세부 항목을 제안합니다.
[직접 작성]을 선택하면 사용자가 각 영역에 포함될 항목들을 입력하시면 됩니다.

(예시 형식: "1. 가구특성: 가구원 수, 가구주 성별, 월 소득
2. 서비스 품질: 응대 만족도, 처리 속도")`

const itemMethodHelp = `입력을 이해하지 못했습니다.

세부 항목 설정 방법을 선택해주세요:
- AI가 항목을 제안받으려면 '제안' 또는 '추천'을 입력하세요.
- 직접 항목을 설정하려면 '직접'을 입력하거나 항목 목록을 입력하세요.
  예: 1. 가구특성: 성별, 연령, 직업
      2. 경제활동: 취업여부, 월소득`

// setItems fills each area with measured items, assisted or direct, with
// the same suggest-revise loop as area setup.
func (s *Steps) setItems(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.ItemsCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepItems) {
		firstEntry(&u, survey.StepItems)
		u.Assistant(itemIntro)
		u.ItemsSettingMethod = survey.String("")
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}

	if st.ItemsSettingMethod == "" {
		return s.chooseItemMethod(ctx, st, input)
	}
	if st.ItemsSettingMethod == survey.MethodAssisted {
		if st.SectionItems == "" {
			return s.suggestItems(ctx, st)
		}
		return s.handleItemFeedback(ctx, st, input)
	}

	// Direct entry.
	if len([]rune(input)) < 10 {
		u.Assistant("세부 항목을 더 구체적으로 입력해 주세요.\n\n(예시:\n1. 가구특성: 가구원 수, 월 소득\n2. 서비스: 만족도, 이용빈도)")
		return u
	}
	u.SectionItems = survey.String(input)
	u.ItemsCompleted = survey.Bool(true)
	u.Assistant(fmt.Sprintf("세부 항목이 설정되었습니다:\n\n%s\n\n다음 단계로 진행합니다.", input))
	return u
}

func (s *Steps) chooseItemMethod(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	if !plausibleItemInput(input) {
		u.Assistant(itemMethodHelp)
		return u
	}
	switch s.decide(ctx, classify.KindItemMethod, input, "") {
	case classify.OutcomeDirect:
		u.ItemsSettingMethod = survey.String(survey.MethodDirect)
		if strings.Contains(input, ":") {
			u.SectionItems = survey.String(input)
			u.ItemsCompleted = survey.Bool(true)
			u.Assistant(fmt.Sprintf("입력하신 세부 항목으로 설정했습니다:\n\n%s\n\n다음 단계로 진행합니다.", input))
			return u
		}
		u.Assistant("직접 항목 작성을 선택하셨습니다. 각 영역별 세부 항목을 입력해주세요.\n\n(예시 형식:\n1. 가구특성: 가구원 수, 가구주 성별, 월 소득\n2. 서비스 품질: 응대 만족도, 처리 속도, 접근성)")
		return u
	default:
		st2 := st.Clone()
		st2.ItemsSettingMethod = survey.MethodAssisted
		st2.ItemConstraints = input
		out := s.suggestItems(ctx, st2)
		if out.ItemsSettingMethod == nil {
			out.ItemsSettingMethod = survey.String(survey.MethodAssisted)
		}
		out.ItemConstraints = survey.String(input)
		return out
	}
}

func plausibleItemInput(input string) bool {
	if len([]rune(input)) >= 10 {
		return true
	}
	if len([]rune(input)) < 2 {
		return false
	}
	for _, kw := range []string{"제안", "참고", "직접", "작성", "추천", "항목", ":", ","} {
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

// referenceItemText retrieves catalog items for the settled areas and
// renders them for prompt context.
func (s *Steps) referenceItemText(ctx context.Context, st survey.State) string {
	if s.catalog == nil || st.DatabaseChoice != survey.SourceReference {
		return "(참고 항목 없음)"
	}
	areaNames := knowledge.AreaNames(st.HierarchicalStructure)
	if len(areaNames) == 0 {
		return "(참고 항목 없음)"
	}
	grouped, err := s.catalog.ItemsForAreas(ctx, areaNames, 8)
	if err != nil {
		s.log.Warn("workflow: item retrieval failed", "error", err)
		return "(참고 항목 없음)"
	}
	var lines []string
	for _, area := range areaNames {
		items := grouped[area]
		if len(items) == 0 {
			continue
		}
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.Name
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", area, strings.Join(names, ", ")))
	}
	if len(lines) == 0 {
		return "(참고 항목 없음)"
	}
	return "내부 DB에서 찾은 유사 항목 예시:\n" + strings.Join(lines, "\n")
}

func (s *Steps) suggestItems(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	constraints := st.ItemConstraints
	if constraints == "" {
		constraints = "(사용자가 추가 요청 없음)"
	}
	payload, err := s.askJSON(ctx, itemExpertSystem, itemSuggestPrompt, map[string]any{
		"intent":                 st.Intent,
		"hierarchical_structure": st.HierarchicalStructure,
		"reference_items":        s.referenceItemText(ctx, st),
		"user_constraints":       constraints,
	})
	if err == nil {
		var parsed struct {
			SectionItems string `json:"section_items"`
			Reason       string `json:"reason"`
		}
		if json.Unmarshal([]byte(payload), &parsed) == nil && parsed.SectionItems != "" {
			u.SectionItems = survey.String(parsed.SectionItems)
			u.Assistant(fmt.Sprintf(`다음과 같은 세부 항목 구성을 제안합니다:

%s

%s

이 제안이 괜찮으면 '다음으로 진행', '좋아요' 등으로 답변해주세요.
수정이 필요하면 '항목을 더 추가해줘', '가구특성에 주거형태 추가해줘'처럼 구체적으로 입력해주세요.`, parsed.SectionItems, parsed.Reason))
			return u
		}
	}
	s.log.Warn("workflow: item suggestion failed, switching to direct entry", "error", err)
	u.ItemsSettingMethod = survey.String(survey.MethodDirect)
	u.Assistant("항목 제안 생성에 문제가 발생했습니다. 직접 항목을 설정해주세요.\n\n(예시 형식:\n1. 가구특성: 가구원 수, 가구주 성별\n2. 서비스: 만족도, 이용 빈도)")
	return u
}

func (s *Steps) handleItemFeedback(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	switch s.decide(ctx, classify.KindItemReviewGate, input, st.SectionItems) {
	case classify.OutcomeRevise:
		payload, err := s.askJSON(ctx, itemReviseSystem, itemRevisePrompt, map[string]any{
			"intent":                 st.Intent,
			"hierarchical_structure": st.HierarchicalStructure,
			"reference_items":        s.referenceItemText(ctx, st),
			"current_items":          st.SectionItems,
			"revision_request":       input,
		})
		if err == nil {
			var parsed struct {
				SectionItems string `json:"section_items"`
				Reason       string `json:"reason"`
			}
			if json.Unmarshal([]byte(payload), &parsed) == nil && parsed.SectionItems != "" {
				u.SectionItems = survey.String(parsed.SectionItems)
				u.Assistant(fmt.Sprintf(`수정 요청을 반영하여 세부 항목을 다시 제안합니다:

%s

%s

이 구성이 괜찮으면 '다음으로 진행' 등으로 답변해주세요.
추가 수정이 있으면 계속 말씀해주세요.`, parsed.SectionItems, parsed.Reason))
				return u
			}
		}
		s.log.Warn("workflow: item revision failed, keeping current items", "error", err)
		u.ItemsCompleted = survey.Bool(true)
		u.Assistant("세부 항목이 확정되었습니다. 다음 단계로 진행합니다.")
		return u
	default:
		u.ItemsCompleted = survey.Bool(true)
		u.Assistant("세부 항목이 확정되었습니다. 다음 단계로 진행합니다.")
		return u
	}
}

// reviewItems critiques the settled items once and gates advancement on an
// explicit confirmation.
func (s *Steps) reviewItems(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.ItemReviewCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepItemReview) {
		firstEntry(&u, survey.StepItemReview)
		review, err := s.askPrompt(ctx, itemReviewSystem, itemReviewPrompt, map[string]any{
			"section_items": st.SectionItems,
		})
		if err != nil || strings.TrimSpace(review) == "" {
			review = "세부 항목이 적절하게 구성되었습니다."
		}
		u.ItemReviewMessage = survey.String(review)
		u.OriginalSectionItems = survey.String(st.SectionItems)
		u.Assistant(fmt.Sprintf("[세부 항목 검토]\n\n%s\n\n이대로 진행하시겠습니까? (확인/수정)", review))
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}
	switch s.decide(ctx, classify.KindItemConfirm, input, st.SectionItems) {
	case classify.OutcomeConfirm:
		u.ItemReviewCompleted = survey.Bool(true)
		u.Assistant("세부 항목이 확정되었습니다.")
	case classify.OutcomeModify:
		u.Assistant("수정할 세부 항목을 입력해 주세요.\n(예시: 1. 가구특성: 성별, 연령, 직업\n2. 경제활동: 취업여부, 월소득)")
	case classify.OutcomeReplace:
		u.SectionItems = survey.String(input)
		u.ItemReviewCompleted = survey.Bool(true)
		u.Assistant(fmt.Sprintf("항목이 수정되었습니다.\n\n%s", input))
	default:
		u.Assistant("입력을 이해하지 못했습니다.\n\n- 현재 세부 항목으로 진행하려면 '확인' 또는 '예'를 입력하세요.\n- 항목을 수정하려면 '수정'을 입력하거나 새로운 항목을 직접 입력해주세요.")
	}
	return u
}
