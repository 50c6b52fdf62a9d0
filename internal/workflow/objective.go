// File path: internal/workflow/objective.go
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/surveyforge/surveyforge/internal/survey"
)

type objectiveQuestion struct {
	question    string
	description string
	next        string
	label       string
}

// objectiveQuestions are asked one at a time; the answers accumulate into
// the intent field as "label: extracted info" lines.
var objectiveQuestions = map[int]objectiveQuestion{
	1: {
		question:    "설문의 목표와 용도는 무엇인가요?",
		description: "이 설문의 목표 확인",
		next:        "Q2: 설문 대상은 누구입니까?",
		label:       "목표/용도",
	},
	2: {
		question:    "설문 대상은 누구입니까?",
		description: "누가 이 설문에 응답할 예정인지",
		next:        "Q3: 설문 항목은 몇 개 정도로 예상합니까?",
		label:       "대상",
	},
	3: {
		question:    "설문 항목은 몇 개 정도로 예상합니까?",
		description: "대략적인 문항 수",
		label:       "항목 개수",
	},
}

const objectiveGreeting = `안녕하세요, 설문지 제작 전문가 AI 도우미입니다. 성공적인 설문 설계를 위해 핵심 정보를 먼저 정의해 주세요.

Q1: 설문의 목표와 용도는 무엇인가요?`

// setObjective collects the survey goal through three sub-questions,
// judging each answer for sufficiency before moving on. A judge failure
// accepts the answer as-is so the conversation never stalls on an outage.
func (s *Steps) setObjective(ctx context.Context, st survey.State) survey.Update {
	var u survey.Update
	if st.ObjectiveCompleted {
		return u
	}
	if !st.StepExecuted(survey.StepObjective) {
		firstEntry(&u, survey.StepObjective)
		u.Assistant(objectiveGreeting)
		u.ObjectiveQuestionStep = survey.Int(1)
		u.Intent = survey.String("")
		return u
	}
	input := userInput(st)
	if input == "" {
		return u
	}
	q, ok := objectiveQuestions[st.ObjectiveQuestionStep]
	if !ok {
		return u
	}

	sufficient, reason, extracted := s.judgeObjectiveAnswer(ctx, q, input)
	if !sufficient {
		u.Assistant(fmt.Sprintf("입력하신 내용을 확인했습니다. %s\n\n다시 한 번 답변해주세요:\n%s", reason, q.question))
		return u
	}

	newIntent := strings.TrimSpace(st.Intent + "\n" + q.label + ": " + extracted)
	u.Intent = survey.String(newIntent)
	if q.next != "" {
		u.Assistant(q.next)
		u.ObjectiveQuestionStep = survey.Int(st.ObjectiveQuestionStep + 1)
		return u
	}
	u.Assistant(fmt.Sprintf("설문 개요가 설정되었습니다.\n\n%s\n\n다음 단계로 진행합니다.", newIntent))
	u.ObjectiveCompleted = survey.Bool(true)
	return u
}

func (s *Steps) judgeObjectiveAnswer(ctx context.Context, q objectiveQuestion, input string) (sufficient bool, reason, extracted string) {
	payload, err := s.askJSON(ctx, objectiveJudgeSystem, objectiveJudgePrompt, map[string]any{
		"question":    q.question,
		"description": q.description,
		"user_input":  input,
	})
	if err != nil {
		s.log.Warn("workflow: objective judge unavailable, accepting answer", "error", err)
		return true, "", input
	}
	var parsed struct {
		IsSufficient  *bool  `json:"is_sufficient"`
		Reason        string `json:"reason"`
		ExtractedInfo string `json:"extracted_info"`
	}
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return true, "", input
	}
	sufficient = parsed.IsSufficient == nil || *parsed.IsSufficient
	extracted = parsed.ExtractedInfo
	if extracted == "" {
		extracted = input
	}
	reason = parsed.Reason
	if reason == "" {
		reason = "입력 내용을 더 구체적으로 작성해주세요."
	}
	return sufficient, reason, extracted
}
