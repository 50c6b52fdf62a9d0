// File path: internal/classify/keyword_test.go
package classify

import (
	"context"
	"testing"
)

func classifyOne(t *testing.T, kind Kind, input string) Outcome {
	t.Helper()
	d, err := NewKeyword().Classify(context.Background(), Request{Kind: kind, Input: input})
	if err != nil {
		t.Fatalf("classify %s %q: %v", kind, input, err)
	}
	return d.Outcome
}

func TestSourceChoice(t *testing.T) {
	cases := []struct {
		input string
		want  Outcome
	}{
		{"1번으로 할게요", OutcomeReference},
		{"기존 DB를 활용하고 싶어요", OutcomeReference},
		{"처음부터 새로 만들래요", OutcomeScratch},
		{"음...", OutcomeAmbiguous},
	}
	for _, tc := range cases {
		if got := classifyOne(t, KindSourceChoice, tc.input); got != tc.want {
			t.Fatalf("%q -> %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestSurveyType(t *testing.T) {
	if got := classifyOne(t, KindSurveyType, "사회조사 지표로요"); got != OutcomeSocial {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindSurveyType, "기타 설문이요"); got != OutcomeOther {
		t.Fatalf("got %s", got)
	}
}

func TestMethodSelection(t *testing.T) {
	if got := classifyOne(t, KindAreaMethod, "AI가 제안해주세요"); got != OutcomeAssisted {
		t.Fatalf("area assisted: got %s", got)
	}
	if got := classifyOne(t, KindAreaMethod, "1. 건강\n2. 주거\n3. 교육"); got != OutcomeDirect {
		t.Fatalf("area direct: got %s", got)
	}
	if got := classifyOne(t, KindItemMethod, "건강: 만성질환, 운동 습관"); got != OutcomeDirect {
		t.Fatalf("item direct: got %s", got)
	}
	if got := classifyOne(t, KindItemMethod, "추천해주세요"); got != OutcomeAssisted {
		t.Fatalf("item assisted: got %s", got)
	}
}

func TestReviewGateRevisionBeatsProceed(t *testing.T) {
	// A turn carrying both cues must be treated as a revision request.
	if got := classifyOne(t, KindAreaReviewGate, "좋아요, 그런데 건강 영역은 수정해주세요"); got != OutcomeRevise {
		t.Fatalf("mixed cues: got %s", got)
	}
	if got := classifyOne(t, KindAreaReviewGate, "네 그대로 진행해주세요"); got != OutcomeProceed {
		t.Fatalf("proceed: got %s", got)
	}
	if got := classifyOne(t, KindItemReviewGate, "글쎄요"); got != OutcomeAmbiguous {
		t.Fatalf("ambiguous: got %s", got)
	}
}

func TestConfirmLoops(t *testing.T) {
	if got := classifyOne(t, KindAreaConfirm, "수정해주세요, 완료본으로"); got != OutcomeModify {
		t.Fatalf("revision precedence: got %s", got)
	}
	if got := classifyOne(t, KindAreaConfirm, "네 확인했습니다"); got != OutcomeConfirm {
		t.Fatalf("confirm: got %s", got)
	}
	if got := classifyOne(t, KindAreaConfirm, "1. 건강 2. 주거 3. 교육 4. 여가"); got != OutcomeReplace {
		t.Fatalf("replace: got %s", got)
	}
	if got := classifyOne(t, KindAreaConfirm, "글쎄"); got != OutcomeAmbiguous {
		t.Fatalf("ambiguous: got %s", got)
	}

	if got := classifyOne(t, KindItemConfirm, "건강: 만성질환, 운동, 수면의 질"); got != OutcomeReplace {
		t.Fatalf("item replace: got %s", got)
	}
	if got := classifyOne(t, KindItemConfirm, "짧은글"); got != OutcomeAmbiguous {
		t.Fatalf("item ambiguous: got %s", got)
	}
}

func TestLayoutConfirm(t *testing.T) {
	if got := classifyOne(t, KindLayoutConfirm, "ㅇㅋ"); got != OutcomeConfirm {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindLayoutConfirm, "만족도는 다시 척도형으로 바꿔주세요"); got != OutcomeModify {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindLayoutConfirm, "만족도 문항을 7점 척도로 해주시면 좋겠어요"); got != OutcomeModify {
		t.Fatalf("long free text should request rework, got %s", got)
	}
}

func TestGenerateReview(t *testing.T) {
	if got := classifyOne(t, KindGenerateReview, "완료입니다"); got != OutcomeComplete {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindGenerateReview, "3번 문항 선택지를 보기 5개로 해주세요"); got != OutcomeModify {
		t.Fatalf("got %s", got)
	}
}

func TestApplyReview(t *testing.T) {
	if got := classifyOne(t, KindApplyReview, "네 반영해주세요"); got != OutcomeApply {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindApplyReview, "아니요 원래대로요"); got != OutcomeRestore {
		t.Fatalf("got %s", got)
	}
}

func TestFinalizeLoop(t *testing.T) {
	if got := classifyOne(t, KindFinalizeLoop, "완료했습니다"); got != OutcomeComplete {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindFinalizeLoop, "2번 문항을 삭제해주세요"); got != OutcomeModify {
		t.Fatalf("got %s", got)
	}
	if got := classifyOne(t, KindFinalizeLoop, "음"); got != OutcomeAmbiguous {
		t.Fatalf("got %s", got)
	}
	// Long free text without any keyword is still a revision request.
	if got := classifyOne(t, KindFinalizeLoop, "응답 대상을 청년층으로 좁히면 어떨까요"); got != OutcomeModify {
		t.Fatalf("got %s", got)
	}
}
