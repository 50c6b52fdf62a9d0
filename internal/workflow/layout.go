// File path: internal/workflow/layout.go
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/knowledge"
	"github.com/surveyforge/surveyforge/internal/survey"
)

const layoutFormatHelp = `입력 형식을 확인해주세요.

레이아웃 설정 방법:
1. "제안" 또는 "추천" 입력 → AI가 자동 제안
2. "항목명 약어" 형식으로 직접 입력

예시:
성별 SC
연령 SC
만족도 RS(5)

사용 가능한 약어: OQ, SC, MA, DC, RS, RK, MG`

// layoutSuggestionWords trigger the retrieval-backed layout proposal.
var layoutSuggestionWords = []string{"제안", "추천", "자동"}

// setLayout assigns a response format to every item, either proposed from
// reference questions or parsed from direct "항목명 약어" input, then holds
// for confirmation.
func (s *Steps) setLayout(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.LayoutCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepLayout) {
		firstEntry(&u, survey.StepLayout)
		u.Assistant(fmt.Sprintf(`개별 항목별로 설문의 레이아웃을 설정합니다.

[사용 가능한 레이아웃]
%s
※ RS, RK, MG는 숫자 입력 필요 (예: RS(7), RK(5), MG(3))

[현재 설정된 영역별 세부 항목]
%s

"제안" 또는 "추천"이라고 입력하시면 AI가 자동으로 레이아웃을 제안합니다.

직접 설정하시려면 "항목명 약어" 형식으로 입력해주세요.
예시:
성별 SC
만족도 RS(5)
기타 의견 OQ`, survey.LayoutHelp(), st.SectionItems))
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}

	// A standing proposal awaits confirm or rework.
	if st.LayoutSetting != "" {
		return s.confirmLayout(ctx, st, input)
	}

	low := strings.ToLower(input)
	for _, kw := range layoutSuggestionWords {
		if strings.Contains(low, kw) {
			return s.suggestLayout(ctx, st)
		}
	}
	return s.parseLayoutInput(ctx, st, input)
}

func (s *Steps) confirmLayout(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	switch s.decide(ctx, classify.KindLayoutConfirm, input, st.LayoutSetting) {
	case classify.OutcomeConfirm:
		u.LayoutCompleted = survey.Bool(true)
		u.Assistant("레이아웃 설정이 완료되었습니다. 다음 단계로 진행합니다.")
		return u
	case classify.OutcomeModify:
		payload, err := s.askJSON(ctx, layoutModifySystem, layoutModifyPrompt, map[string]any{
			"current_layouts":      st.LayoutSetting,
			"modification_request": input,
			"section_items":        st.SectionItems,
		})
		if err == nil {
			if assignments, ok := parseLayoutSettings(payload); ok {
				encoded, encErr := survey.EncodeLayouts(assignments)
				if encErr == nil {
					u.LayoutSetting = survey.String(encoded)
					u.Assistant("[수정된 레이아웃 설정]\n\n" + survey.FormatLayoutList(assignments) + "\n\n이대로 진행하시겠습니까? (예/아니오)")
					return u
				}
			}
		}
		// Rework via the model failed; a well-formed direct line set still
		// applies deterministically.
		if assignments, parseErr := survey.ParseLayoutLines(input); parseErr == nil {
			encoded, encErr := survey.EncodeLayouts(assignments)
			if encErr == nil {
				u.LayoutSetting = survey.String(encoded)
				u.Assistant("[수정된 레이아웃 설정]\n\n" + survey.FormatLayoutList(assignments) + "\n\n이대로 진행하시겠습니까? (예/아니오)")
				return u
			}
		}
		u.Assistant("수정 요청을 처리할 수 없습니다. 다시 시도해주세요.")
		return u
	default:
		u.Assistant("레이아웃 설정을 확인해주세요.\n'예' 또는 '확인'으로 진행하거나, 수정할 내용을 입력해주세요.")
		return u
	}
}

// referenceLayoutContext retrieves past questions for the current items and
// renders their layout usage for the proposal prompt.
func (s *Steps) referenceLayoutContext(ctx context.Context, st survey.State) string {
	if s.catalog == nil {
		return "유사한 설문을 찾지 못했습니다. 항목의 특성에 맞게 레이아웃을 제안해주세요."
	}
	keywords := knowledge.ItemKeywords(st.SectionItems)
	questions, err := s.catalog.QuestionsForKeywords(ctx, keywords, 15)
	if err != nil || len(questions) == 0 {
		return "유사한 설문을 찾지 못했습니다. 항목의 특성에 맞게 레이아웃을 제안해주세요."
	}
	var b strings.Builder
	for _, q := range questions {
		fmt.Fprintf(&b, "● 항목: %s\n  유사 문항: %s\n  사용된 레이아웃: %s (%s)\n", q.ItemName, q.Text, q.LayoutCode, q.LayoutName)
	}
	return b.String()
}

func (s *Steps) suggestLayout(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if len(knowledge.ItemKeywords(st.SectionItems)) == 0 {
		u.Assistant("세부 항목을 찾을 수 없습니다. 다시 시도해주세요.")
		return u
	}
	payload, err := s.askJSON(ctx, layoutSuggestSystem, layoutSuggestPrompt, map[string]any{
		"section_items":     st.SectionItems,
		"reference_context": s.referenceLayoutContext(ctx, st),
	})
	if err == nil {
		if assignments, ok := parseLayoutSettings(payload); ok {
			encoded, encErr := survey.EncodeLayouts(assignments)
			if encErr == nil {
				u.LayoutSetting = survey.String(encoded)
				u.Assistant("[항목별 레이아웃 제안]\n\n" + survey.FormatLayoutList(assignments) + "\n\n이대로 진행하시겠습니까? (예/아니오)")
				return u
			}
		}
	}
	s.log.Warn("workflow: layout suggestion failed", "error", err)
	u.Assistant("레이아웃 제안 중 오류가 발생했습니다. 직접 레이아웃을 입력해주세요.")
	return u
}

func (s *Steps) parseLayoutInput(ctx context.Context, st survey.State, input string) survey.Update {
	var u survey.Update
	payload, err := s.askJSON(ctx, layoutParseSystem, layoutParsePrompt, map[string]any{
		"section_items": st.SectionItems,
		"user_input":    input,
	})
	if err == nil {
		if assignments, ok := parseLayoutSettings(payload); ok {
			encoded, encErr := survey.EncodeLayouts(assignments)
			if encErr == nil {
				u.LayoutSetting = survey.String(encoded)
				u.Assistant("[항목별 레이아웃 설정]\n\n" + survey.FormatLayoutList(assignments) + "\n\n이대로 진행하시겠습니까? (예/아니오)")
				return u
			}
		}
	}

	// Model unavailable: the deterministic line parser still handles the
	// documented direct form.
	if assignments, parseErr := survey.ParseLayoutLines(input); parseErr == nil {
		encoded, encErr := survey.EncodeLayouts(assignments)
		if encErr == nil {
			u.LayoutSetting = survey.String(encoded)
			u.Assistant("[항목별 레이아웃 설정]\n\n" + survey.FormatLayoutList(assignments) + "\n\n이대로 진행하시겠습니까? (예/아니오)")
			return u
		}
	}
	if !survey.ContainsLayoutCode(input) || len([]rune(input)) < 5 {
		u.Assistant(layoutFormatHelp)
		return u
	}
	u.LayoutSetting = survey.String(input)
	u.LayoutCompleted = survey.Bool(true)
	u.Assistant("레이아웃이 설정되었습니다.")
	return u
}

// parseLayoutSettings decodes the {"layout_settings": [...]} shape the
// layout prompts request and annotates catalog names.
func parseLayoutSettings(payload string) ([]survey.LayoutAssignment, bool) {
	var parsed struct {
		LayoutSettings []struct {
			Item              string `json:"item"`
			LayoutCode        string `json:"layout_code"`
			LayoutDescription string `json:"layout_description"`
			Reasoning         string `json:"reasoning"`
		} `json:"layout_settings"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil || len(parsed.LayoutSettings) == 0 {
		return nil, false
	}
	out := make([]survey.LayoutAssignment, 0, len(parsed.LayoutSettings))
	for _, item := range parsed.LayoutSettings {
		out = append(out, survey.LayoutAssignment{
			Item:        item.Item,
			LayoutCode:  item.LayoutCode,
			Description: item.LayoutDescription,
			Reasoning:   item.Reasoning,
		})
	}
	return survey.AnnotateLayouts(out), true
}
