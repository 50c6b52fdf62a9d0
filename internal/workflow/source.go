// File path: internal/workflow/source.go
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/survey"
)

const sourcePrompt = `설문지 작성 방법을 선택해 주세요.

1. 기존 설문 DB 활용: 사회조사 참고 DB를 활용하여 설문 영역과 항목을 제안받습니다.
2. 별도 설문지 작성: 처음부터 직접 설문을 구성합니다.

어떤 방법을 선택하시겠습니까? (1 또는 2)`

const surveyTypePrompt = `기존 설문 DB를 활용합니다.

어떤 유형의 설문지를 참고하시겠습니까?

1. 사회지표조사: 사회조사(가구, 교육, 건강, 복지 등)
2. 기타: 기타 조사 유형

참고할 설문 유형을 선택해주세요. (1 또는 2, 또는 직접 입력)`

// selectSource is a two-stage selection: reference DB vs scratch, then for
// the reference path the survey-type flavor to retrieve against.
func (s *Steps) selectSource(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.SourceCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepSource) {
		firstEntry(&u, survey.StepSource)
		u.Assistant(sourcePrompt)
		return u
	}
	input := strings.TrimSpace(userInput(st))
	if input == "" {
		return u
	}

	if st.DatabaseChoice == "" {
		switch s.decide(ctx, classify.KindSourceChoice, input, "") {
		case classify.OutcomeReference:
			u.DatabaseChoice = survey.String(survey.SourceReference)
			u.Assistant(surveyTypePrompt)
		case classify.OutcomeScratch:
			u.DatabaseChoice = survey.String(survey.SourceScratch)
			u.SurveyType = survey.String("")
			u.SourceCompleted = survey.Bool(true)
			u.Assistant("별도 설문지 작성으로 진행합니다. 다음 단계에서 영역을 직접 구성합니다.")
		default:
			u.Assistant("1(기존 설문 DB 활용) 또는 2(별도 설문지 작성)를 선택해 주세요.")
		}
		return u
	}

	if st.DatabaseChoice == survey.SourceReference && st.SurveyType == "" {
		var selected string
		switch s.decide(ctx, classify.KindSurveyType, input, "") {
		case classify.OutcomeSocial:
			selected = "사회지표조사"
		case classify.OutcomeOther:
			selected = "기타"
		default:
			// A free-form answer names the type directly.
			if len([]rune(input)) > 1 {
				selected = input
			} else {
				selected = "사회지표조사"
			}
		}
		u.SurveyType = survey.String(selected)
		u.SourceCompleted = survey.Bool(true)
		u.Assistant(fmt.Sprintf("'%s' 유형의 설문 DB를 참고하여 진행합니다.", selected))
	}
	return u
}
