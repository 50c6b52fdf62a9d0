// File path: internal/classify/keyword.go
package classify

import (
	"context"
	"strings"
	"unicode"
)

// Keyword is the deterministic classifier. It reproduces the fixed Korean
// keyword sets each decision point accepts; revision cues always beat
// completion cues so a mixed turn like "수정해주세요, 완료본으로" is treated
// as a revision request.
type Keyword struct{}

// NewKeyword returns the keyword classifier.
func NewKeyword() *Keyword { return &Keyword{} }

var (
	sourceReferenceWords = []string{"1", "기존", "db", "활용", "참고"}
	sourceScratchWords   = []string{"2", "별도", "직접", "새로", "처음"}

	surveyTypeSocialWords = []string{"1", "사회", "지표", "통계청"}
	surveyTypeOtherWords  = []string{"2", "기타"}

	areaAssistedWords = []string{"참고", "제안", "기존"}
	itemAssistedWords = []string{"제안", "참고", "추천"}

	areaProceedWords  = []string{"다음", "괜찮", "좋아", "그대로", "진행", "확인", "넘어가", "다음으로", "좋습니다", "네"}
	areaRevisionWords = []string{"수정", "다시", "변경", "합치", "나누", "줄여", "늘려", "추가", "삭제", "바꿔"}

	itemProceedWords  = []string{"다음", "괜찮", "좋아", "그대로", "진행", "확인", "넘어가", "좋습니다", "네"}
	itemRevisionWords = []string{"수정", "다시", "변경", "추가", "삭제", "바꿔", "더", "빼", "넣어"}

	confirmWords = []string{"확인", "네", "예", "진행", "좋아", "ok", "yes", "다음", "완료"}
	modifyWords  = []string{"수정", "변경", "바꿔", "고쳐", "추가", "삭제", "제거"}

	layoutConfirmWords = []string{"예", "네", "확인", "좋아", "적용", "진행", "진행한다", "진행합니다", "다음", "다음으로", "완료", "ok", "yes", "ㅇㅋ", "ㅇㅇ"}
	layoutModifyWords  = []string{"수정", "변경", "바꿔", "고쳐", "다시", "아니", "no"}

	generateCompleteWords = []string{"완료", "확인", "다음", "진행", "좋아", "괜찮", "ok", "yes", "네", "예"}
	generateModifyWords   = []string{"수정", "변경", "바꿔", "고쳐", "추가", "삭제", "문항", "질문", "선택지", "보기"}

	applyWords = []string{"예", "네", "동의", "반영", "수정", "적용"}

	finalizeCompleteWords = []string{"완료", "확인", "다음", "진행", "수정할 내용 없", "수정 없", "변경 없", "ok", "yes", "네", "예", "좋아"}
	finalizeModifyWords   = []string{"수정", "변경", "바꿔", "고쳐", "추가", "삭제", "문항", "질문", "선택지"}
)

func containsAny(input string, words []string) bool {
	for _, w := range words {
		if strings.Contains(input, w) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func (k *Keyword) Classify(_ context.Context, req Request) (Decision, error) {
	input := strings.TrimSpace(req.Input)
	low := strings.ToLower(input)

	switch req.Kind {
	case KindSourceChoice:
		if containsAny(low, sourceReferenceWords) {
			return Decision{Outcome: OutcomeReference}, nil
		}
		if containsAny(low, sourceScratchWords) {
			return Decision{Outcome: OutcomeScratch}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindSurveyType:
		if containsAny(low, surveyTypeSocialWords) {
			return Decision{Outcome: OutcomeSocial}, nil
		}
		if containsAny(low, surveyTypeOtherWords) {
			return Decision{Outcome: OutcomeOther}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindAreaMethod:
		if containsAny(low, areaAssistedWords) {
			return Decision{Outcome: OutcomeAssisted}, nil
		}
		// A numbered list reads as the user's own area structure.
		if hasDigit(input) {
			return Decision{Outcome: OutcomeDirect}, nil
		}
		return Decision{Outcome: OutcomeAssisted}, nil

	case KindItemMethod:
		if containsAny(low, itemAssistedWords) {
			return Decision{Outcome: OutcomeAssisted}, nil
		}
		// "영역: 항목, 항목" form reads as direct entry.
		if strings.Contains(input, ":") {
			return Decision{Outcome: OutcomeDirect}, nil
		}
		return Decision{Outcome: OutcomeAssisted}, nil

	case KindAreaReviewGate:
		return gateDecision(low, areaProceedWords, areaRevisionWords), nil

	case KindItemReviewGate:
		return gateDecision(low, itemProceedWords, itemRevisionWords), nil

	case KindAreaConfirm:
		if containsAny(low, modifyWords) {
			return Decision{Outcome: OutcomeModify}, nil
		}
		if containsAny(low, confirmWords) {
			return Decision{Outcome: OutcomeConfirm}, nil
		}
		if len([]rune(input)) > 10 && hasDigit(input) {
			return Decision{Outcome: OutcomeReplace}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindItemConfirm:
		if containsAny(low, modifyWords) {
			return Decision{Outcome: OutcomeModify}, nil
		}
		if containsAny(low, confirmWords) {
			return Decision{Outcome: OutcomeConfirm}, nil
		}
		if len([]rune(input)) > 15 && (strings.Contains(input, ":") || strings.Contains(input, ",")) {
			return Decision{Outcome: OutcomeReplace}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindLayoutConfirm:
		if containsAny(low, layoutModifyWords) {
			return Decision{Outcome: OutcomeModify}, nil
		}
		if containsAny(low, layoutConfirmWords) {
			return Decision{Outcome: OutcomeConfirm}, nil
		}
		if len([]rune(input)) > 10 {
			return Decision{Outcome: OutcomeModify}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindGenerateReview:
		if containsAny(low, generateModifyWords) {
			return Decision{Outcome: OutcomeModify}, nil
		}
		if containsAny(low, generateCompleteWords) {
			return Decision{Outcome: OutcomeComplete}, nil
		}
		if len([]rune(input)) > 20 && hasDigit(input) {
			return Decision{Outcome: OutcomeModify}, nil
		}
		return Decision{Outcome: OutcomeAmbiguous}, nil

	case KindApplyReview:
		if containsAny(low, applyWords) {
			return Decision{Outcome: OutcomeApply}, nil
		}
		if input == "" {
			return Decision{Outcome: OutcomeAmbiguous}, nil
		}
		return Decision{Outcome: OutcomeRestore}, nil

	case KindFinalizeLoop:
		hasModify := containsAny(low, finalizeModifyWords)
		if containsAny(low, finalizeCompleteWords) && !hasModify {
			return Decision{Outcome: OutcomeComplete}, nil
		}
		if len([]rune(input)) < 5 && !hasModify {
			return Decision{Outcome: OutcomeAmbiguous}, nil
		}
		return Decision{Outcome: OutcomeModify}, nil
	}
	return Decision{Outcome: OutcomeAmbiguous}, nil
}

// gateDecision applies review-gate rules: a clean proceed cue passes, any
// revision cue revises, anything else is ambiguous.
func gateDecision(low string, proceed, revision []string) Decision {
	hasProceed := containsAny(low, proceed)
	hasRevision := containsAny(low, revision)
	switch {
	case hasRevision:
		return Decision{Outcome: OutcomeRevise}
	case hasProceed:
		return Decision{Outcome: OutcomeProceed}
	default:
		return Decision{Outcome: OutcomeAmbiguous}
	}
}
