// File path: internal/workflow/prompts.go
package workflow

import "github.com/tmc/langchaingo/prompts"

// System prompts for the generation-backed parts of each step.
const (
	objectiveJudgeSystem = "당신은 설문지 제작 전문가입니다. 사용자의 입력이 특정 질문에 대해 충분한 정보를 제공하는지 확인해주세요."
	areaExpertSystem     = "설문지 설계 전문가로서 영역을 제안해주세요."
	areaReviseSystem     = "기존 제안과 수정 요청을 반영하여 영역을 재설계하세요."
	areaReviewSystem     = "설문 전문가로서 영역 구조를 검토해주세요. 간결하게 피드백하세요."
	areaExtractSystem    = "사용자 입력에서 설문 영역 리스트가 있는지 확인하세요."
	itemExpertSystem     = "설문지 설계 전문가로서 영역별 세부 항목을 제안해주세요."
	itemReviseSystem     = "기존 제안과 수정 요청을 반영하여 세부 항목을 재설계하세요."
	itemReviewSystem     = "설문 전문가로서 세부 항목 구성을 검토해주세요."
	layoutSuggestSystem  = "당신은 설문지 설계 전문가입니다. 유사 설문의 레이아웃 정보를 참고하여 각 항목에 적합한 레이아웃을 제안해주세요."
	layoutParseSystem    = "당신은 설문지 설계 전문가입니다. 사용자의 입력을 분석하여 각 항목에 지정된 레이아웃을 파악하고 JSON 형식으로 정리해주세요."
	layoutModifySystem   = "당신은 설문지 설계 전문가입니다. 사용자의 수정 요청을 반영하여 레이아웃을 재설정해주세요."
	generateSystem       = "당신은 설문지 작성 전문가입니다. 주어진 정보와 참고 문항들을 활용해 완전한 설문지를 작성해주세요."
	modifySurveySystem   = "기존 설문지와 사용자의 수정 요청을 반영하여 수정된 설문지를 작성하세요."
	qualityReviewSystem  = "당신은 설문지 품질 검토 전문가입니다. 주어진 설문지에 대해 다양한 관점에서 품질을 검토하고, 개선점이 있다면 제안해주세요."
)

var objectiveJudgePrompt = prompts.PromptTemplate{
	Template: `질문: {{.question}}
질문 설명: {{.description}}

사용자 입력: {{.user_input}}

위 질문에 대해 사용자가 충분한 정보를 제공했는지 확인하고, JSON 형식으로 응답해주세요:
{"is_sufficient": true 또는 false, "reason": "이유", "extracted_info": "추출된 정보"}`,
	InputVariables: []string{"question", "description", "user_input"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var areaExtractPrompt = prompts.PromptTemplate{
	Template: `사용자 입력: {{.user_input}}

영역 리스트가 있으면 추출하세요. JSON 형식으로:
{"has_area_list": true 또는 false, "hierarchical_structure": "1. 영역1\n2. 영역2..."}`,
	InputVariables: []string{"user_input"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var areaSuggestPrompt = prompts.PromptTemplate{
	Template: `설문 목표:
{{.intent}}

{{.reference_areas}}

사용자 추가 요청: {{.user_constraints}}

위 정보를 바탕으로 설문 영역(섹션) 3~7개를 제안하세요.
- 사용자 추가 요청이 있으면 우선 반영
- 영역은 명확하고 구분되어야 함

JSON 형식: {"hierarchical_structure": "1. 영역1\n2. 영역2\n3. 영역3...", "reason": "제안 이유"}`,
	InputVariables: []string{"intent", "reference_areas", "user_constraints"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var areaRevisePrompt = prompts.PromptTemplate{
	Template: `설문 목표: {{.intent}}

{{.reference_areas}}

기존 영역: {{.current_structure}}

수정 요청: {{.revision_request}}

수정 반영한 영역을 JSON으로: {"hierarchical_structure": "1. 영역1\n2. 영역2...", "reason": "수정 이유"}`,
	InputVariables: []string{"intent", "reference_areas", "current_structure", "revision_request"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var areaReviewPrompt = prompts.PromptTemplate{
	Template:       "영역 구조:\n{{.hierarchical_structure}}\n\n이 구조에 대해 검토 의견을 주세요.",
	InputVariables: []string{"hierarchical_structure"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var itemSuggestPrompt = prompts.PromptTemplate{
	Template: `설문 목표:
{{.intent}}

영역 구조:
{{.hierarchical_structure}}

{{.reference_items}}

사용자 추가 요청: {{.user_constraints}}

위 정보를 바탕으로 각 영역별 세부 항목을 제안하세요.
- 각 영역당 3~7개 항목
- 사용자 추가 요청이 있으면 우선 반영
- 설문 목표 달성에 필요한 항목 포함

JSON 형식: {"section_items": "1. 영역명: 항목1, 항목2, 항목3\n2. 영역명: 항목1, 항목2...", "reason": "제안 이유"}`,
	InputVariables: []string{"intent", "hierarchical_structure", "reference_items", "user_constraints"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var itemRevisePrompt = prompts.PromptTemplate{
	Template: `설문 목표: {{.intent}}

영역 구조: {{.hierarchical_structure}}

{{.reference_items}}

기존 항목: {{.current_items}}

수정 요청: {{.revision_request}}

수정 반영한 항목을 JSON으로: {"section_items": "1. 영역명: 항목1, 항목2...\n2. 영역명: 항목1...", "reason": "수정 이유"}`,
	InputVariables: []string{"intent", "hierarchical_structure", "reference_items", "current_items", "revision_request"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var itemReviewPrompt = prompts.PromptTemplate{
	Template:       "세부 항목:\n{{.section_items}}\n\n검토 의견을 주세요.",
	InputVariables: []string{"section_items"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var layoutSuggestPrompt = prompts.PromptTemplate{
	Template: `현재 설정된 영역별 세부 항목:
{{.section_items}}

유사 설문에서 찾은 레이아웃 정보:
{{.reference_context}}

위 정보를 참고하여 각 항목에 적합한 레이아웃을 제안해주세요.

중요 지침:
1. 유사 문항의 레이아웃을 참고하되, 항목의 특성에 맞게 조정하세요.
2. RS, RK, MG는 숫자가 필요한 경우가 있으므로 적절한 숫자를 포함하세요 (예: RS(7), RK(5), MG(3))
3. 나열된 모든 항목에 대해 레이아웃을 제안해야 합니다.
4. 레이아웃 약어는 다음 중에서 선택하세요: SC, MA, DC, RS, RK, MG, OQ

JSON 형식으로 응답해주세요:
{"layout_settings": [{"item": "항목명", "layout_code": "약어", "layout_description": "레이아웃 설명", "reasoning": "선택 이유"}]}`,
	InputVariables: []string{"section_items", "reference_context"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var layoutParsePrompt = prompts.PromptTemplate{
	Template: `현재 설정된 영역별 세부 항목:
{{.section_items}}

사용자 입력:
{{.user_input}}

사용자의 입력을 분석하여 각 항목에 지정된 레이아웃을 파악해주세요.

중요 지침:
1. "항목명 약어" 형식의 입력은 해당 약어를 정확히 사용하세요. RS, RK, MG는 괄호 안의 숫자도 함께 파싱하세요.
2. 여러 줄 입력은 각 줄을 "항목명 약어" 형식으로 파싱하세요.
3. 나열된 모든 항목에 레이아웃을 지정해야 하며, 명시되지 않은 항목은 "미지정"으로 표시하세요.

JSON 형식으로 응답해주세요:
{"layout_settings": [{"item": "항목명", "layout_code": "약어", "layout_description": "레이아웃 설명"}]}`,
	InputVariables: []string{"section_items", "user_input"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var layoutModifyPrompt = prompts.PromptTemplate{
	Template: `현재 레이아웃 설정:
{{.current_layouts}}

사용자 수정 요청:
{{.modification_request}}

현재 설정된 영역별 세부 항목:
{{.section_items}}

사용자의 수정 요청을 반영하여 레이아웃을 재설정해주세요.

중요 지침:
1. "항목명 약어" 형식의 입력은 해당 약어를 정확히 사용하고, 괄호 안의 숫자도 함께 파싱하세요.
2. 수정 요청에 명시된 항목만 수정하고, 나머지 항목은 현재 레이아웃을 유지하세요.
3. 나열된 모든 항목에 레이아웃을 지정해야 합니다.

JSON 형식으로 응답해주세요:
{"layout_settings": [{"item": "항목명", "layout_code": "약어", "layout_description": "레이아웃 설명"}]}`,
	InputVariables: []string{"current_layouts", "modification_request", "section_items"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var generateSurveyPrompt = prompts.PromptTemplate{
	Template: `설문 목표:
{{.intent}}

설문 영역 구조:
{{.hierarchical_structure}}

영역별 세부 항목:
{{.section_items}}

항목별 레이아웃 정보:
{{.layout_info}}

참고용 유사 항목 및 기존 문항 예시:
{{.reference_questions}}

★★★ 중요: 목표 문항 수 ★★★
{{.question_count_instruction}}

설문지 작성 지침:
1. 각 영역별로 명확하게 구분하여 작성
2. 각 항목에 대해 지정된 레이아웃 형식(약어)에 맞게 질문과 응답 형식을 작성
3. 질문은 명확하고 이해하기 쉽게 작성
4. 선택지가 필요한 경우 적절한 선택지를 제공
5. 전체적으로 자연스럽고 일관성 있는 설문지가 되도록 작성
6. 위의 '기존 문항 예시'를 우선적으로 재사용하거나 적절히 변형하되, 조사 목적과 맞지 않는 경우에는 새로운 문항을 설계해도 됩니다.

7. 문항 번호 부여 및 분기 문항 설계 규칙:
   - 설문 전체에서 문항 번호는 1, 2, 3, 4... 와 같이 영역과 상관없이 연속적으로 부여합니다.
   - 영역(섹션) 번호는 제목에만 사용하고, 문항 번호에는 포함하지 않습니다.
   - 특정 응답자에게만 추가 질문이 필요하다고 판단되면 분기/조건부 문항을 스스로 설계합니다.
   - 분기/조건부 문항은 부모 문항 번호에 '-1', '-2'를 붙이는 방식으로 번호를 부여합니다.
   - 분기 문항이 있는 경우, 부모 문항의 보기 옆에 다음 문항 이동 규칙을 명확하게 적어줍니다.
     예) "① 있다 → 문항 3-1로 이동 / ② 없다 → 문항 4로 이동"
   - 분기 후속 문항의 머리말에는 "(문항 3에서 '있다'라고 응답한 분만 응답)"과 같이 응답 조건을 표기합니다.

8. 레이아웃 코드에 'MG'가 포함된 항목은 마크다운 표(Markdown table) 형식으로 작성
9. 레이아웃 코드에 'RS'가 포함된 경우 괄호 안의 숫자를 척도로 사용해서 숫자 위에 기준을 표시

★★★ 매우 중요: 문항과 선택지 형식 규칙 (반드시 준수) ★★★
10. 문항 형식: 반드시 "문항 X." 형식으로 시작하고, 끝에 레이아웃 코드를 괄호 안에 표시
    예시: 문항 1. 귀하의 성별은 무엇입니까? (SC)

11. 선택지 형식 (절대 규칙):
    - 반드시 원문자(①②③④⑤⑥⑦⑧⑨⑩)만 사용
    - 숫자점(1. 2. 3.), 대시(-), 불릿(•) 절대 사용 금지
    - 타입코드(SC, MA 등)를 선택지에 절대 붙이지 않음

설문지 내용을 실제 설문지처럼 작성하되, 각 영역과 항목을 명확히 구분하여 작성해주세요.`,
	InputVariables: []string{"intent", "hierarchical_structure", "section_items", "layout_info", "reference_questions", "question_count_instruction"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var modifySurveyPrompt = prompts.PromptTemplate{
	Template: `기존 설문지:
{{.survey_draft}}

사용자 수정 요청:
{{.user_input}}

수정된 설문지 전체를 작성해주세요.`,
	InputVariables: []string{"survey_draft", "user_input"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}

var qualityReviewPrompt = prompts.PromptTemplate{
	Template: `조사 목적:
{{.intent}}

설문지 초안:
{{.survey_draft}}

위 설문지에 대해 다음 7가지 관점에서 품질을 검토해주세요:

1. **타당성**: 질문이 조사 목적을 정확히 측정하는가?
2. **편향성**: 질문이나 선택지에 편향이 있는가? (예: 유도 질문, 사회적 바람직성 편향 등)
3. **이중 질문**: 하나의 질문에 두 가지 이상의 내용이 포함되어 있는가?
4. **명확성**: 질문이 명확하고 이해하기 쉬운가?
5. **응답 범주**: 선택지가 적절하고 포괄적인가?
6. **순서와 흐름**: 질문 순서가 논리적이고 자연스러운가?
7. **기타 개선 사항**: 기타 발견된 문제점이나 개선 제안

검토 결과를 JSON 형식으로 제공해주세요:
{"review_result": "검토 결과 상세 설명", "refined_survey": "개선된 설문지 (개선이 있으면 수정본, 없으면 현재 그대로)", "has_improvements": true 또는 false}

중요:
- 개선 제안이 있으면 "refined_survey"에 개선된 설문지를 작성
- 개선이 없으면 "refined_survey"에 현재 설문지 그대로 반환
- "review_result"에는 각 관점별 검토 결과를 포함`,
	InputVariables: []string{"intent", "survey_draft"},
	TemplateFormat: prompts.TemplateFormatGoTemplate,
}
