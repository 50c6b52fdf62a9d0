// File path: internal/workflow/engine_test.go
package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/surveyforge/surveyforge/internal/classify"
	"github.com/surveyforge/surveyforge/internal/llm"
	"github.com/surveyforge/surveyforge/internal/survey"
)

// mockProvider replays scripted replies in order. Once the script is
// exhausted it keeps returning the last reply.
type mockProvider struct {
	replies []string
	err     error
	calls   int
}

func (m *mockProvider) Chat(_ context.Context, _ []llm.Message) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.replies) == 0 {
		return "", nil
	}
	i := m.calls - 1
	if i >= len(m.replies) {
		i = len(m.replies) - 1
	}
	return m.replies[i], nil
}

func (m *mockProvider) Name() string { return "mock" }

func newTestEngine(p llm.Provider) *Engine {
	return NewEngine(NewSteps(p, classify.NewKeyword(), nil))
}

func lastAssistant(t *testing.T, st survey.State) string {
	t.Helper()
	last, ok := st.LastMessage()
	if !ok {
		t.Fatalf("no messages in state")
	}
	if last.Role != survey.RoleAssistant {
		t.Fatalf("last message role = %q, want assistant", last.Role)
	}
	return last.Content
}

func TestNewSessionGreets(t *testing.T) {
	e := newTestEngine(&mockProvider{})
	st := e.NewSession(context.Background())

	if st.CurrentStep != survey.StepObjective {
		t.Fatalf("current step = %q, want %q", st.CurrentStep, survey.StepObjective)
	}
	if st.ObjectiveQuestionStep != 1 {
		t.Fatalf("objective question step = %d, want 1", st.ObjectiveQuestionStep)
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "Q1") {
		t.Fatalf("greeting missing first question: %q", msg)
	}
	if !st.StepExecuted(survey.StepObjective) {
		t.Fatalf("objective step not marked executed")
	}
}

func TestObjectiveSufficientAnswerAdvances(t *testing.T) {
	p := &mockProvider{replies: []string{
		`{"is_sufficient": true, "reason": "", "extracted_info": "주민 만족도 파악"}`,
	}}
	e := newTestEngine(p)
	st := e.NewSession(context.Background())

	st = e.ProcessMessage(context.Background(), st, "지역 주민의 생활 만족도를 파악하려고 합니다")

	if st.ObjectiveQuestionStep != 2 {
		t.Fatalf("objective question step = %d, want 2", st.ObjectiveQuestionStep)
	}
	if !strings.Contains(st.Intent, "목표/용도: 주민 만족도 파악") {
		t.Fatalf("intent = %q, missing extracted info", st.Intent)
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "Q2") {
		t.Fatalf("expected second question, got %q", msg)
	}
}

func TestObjectiveInsufficientAnswerReasks(t *testing.T) {
	p := &mockProvider{replies: []string{
		`{"is_sufficient": false, "reason": "목적이 불분명합니다.", "extracted_info": ""}`,
	}}
	e := newTestEngine(p)
	st := e.NewSession(context.Background())

	st = e.ProcessMessage(context.Background(), st, "몰라요")

	if st.ObjectiveQuestionStep != 1 {
		t.Fatalf("objective question step = %d, want 1", st.ObjectiveQuestionStep)
	}
	if st.Intent != "" {
		t.Fatalf("intent = %q, want empty", st.Intent)
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "목적이 불분명합니다.") {
		t.Fatalf("re-ask missing judge reason: %q", msg)
	}
}

func TestObjectiveJudgeOutageAcceptsAnswer(t *testing.T) {
	p := &mockProvider{err: context.DeadlineExceeded}
	e := newTestEngine(p)
	st := e.NewSession(context.Background())

	st = e.ProcessMessage(context.Background(), st, "청년 고용 실태 조사")

	if st.ObjectiveQuestionStep != 2 {
		t.Fatalf("objective question step = %d, want 2", st.ObjectiveQuestionStep)
	}
	if !strings.Contains(st.Intent, "목표/용도: 청년 고용 실태 조사") {
		t.Fatalf("intent = %q, want raw answer accepted", st.Intent)
	}
}

// completeObjective walks a state past the three objective questions.
func completeObjective(t *testing.T, e *Engine, p *mockProvider) survey.State {
	t.Helper()
	p.replies = append(p.replies,
		`{"is_sufficient": true, "extracted_info": "주민 만족도 파악"}`,
		`{"is_sufficient": true, "extracted_info": "지역 주민"}`,
		`{"is_sufficient": true, "extracted_info": "예상 문항 수: 20"}`,
	)
	ctx := context.Background()
	st := e.NewSession(ctx)
	st = e.ProcessMessage(ctx, st, "지역 주민의 생활 만족도를 파악합니다")
	st = e.ProcessMessage(ctx, st, "우리 시에 거주하는 성인 주민")
	st = e.ProcessMessage(ctx, st, "20개 정도")
	if !st.ObjectiveCompleted {
		t.Fatalf("objective not completed: %+v", st)
	}
	return st
}

func TestObjectiveCompletionChainsIntoSource(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeObjective(t, e, p)

	// The same turn that completed the objective must surface the source
	// selection prompt.
	if !st.StepExecuted(survey.StepSource) {
		t.Fatalf("source step not entered after objective completion")
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "기존 설문 DB 활용") {
		t.Fatalf("expected source prompt, got %q", msg)
	}
}

func TestSourceScratchSkipsTypeQuestion(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeObjective(t, e, p)

	st = e.ProcessMessage(context.Background(), st, "2")

	if !st.SourceCompleted {
		t.Fatalf("source step not completed")
	}
	if st.DatabaseChoice != survey.SourceScratch {
		t.Fatalf("database choice = %q, want %q", st.DatabaseChoice, survey.SourceScratch)
	}
	if st.SurveyType != "" {
		t.Fatalf("survey type = %q, want empty for scratch", st.SurveyType)
	}
}

func TestSourceReferenceAsksType(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeObjective(t, e, p)
	ctx := context.Background()

	st = e.ProcessMessage(ctx, st, "1번으로 할게요")
	if st.SourceCompleted {
		t.Fatalf("source completed before type selection")
	}
	if st.DatabaseChoice != survey.SourceReference {
		t.Fatalf("database choice = %q, want %q", st.DatabaseChoice, survey.SourceReference)
	}

	st = e.ProcessMessage(ctx, st, "1")
	if !st.SourceCompleted || st.SurveyType != "사회지표조사" {
		t.Fatalf("survey type = %q completed=%v, want 사회지표조사/true", st.SurveyType, st.SourceCompleted)
	}
}

func TestSourceAmbiguousReprompts(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeObjective(t, e, p)

	st = e.ProcessMessage(context.Background(), st, "글쎄요")

	if st.SourceCompleted || st.DatabaseChoice != "" {
		t.Fatalf("ambiguous input advanced the step: %+v", st)
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "1(기존 설문 DB 활용) 또는 2(별도 설문지 작성)") {
		t.Fatalf("expected re-prompt, got %q", msg)
	}
}

// completeThroughSource finishes objective and source with the scratch path.
func completeThroughSource(t *testing.T, e *Engine, p *mockProvider) survey.State {
	t.Helper()
	st := completeObjective(t, e, p)
	st = e.ProcessMessage(context.Background(), st, "2")
	if !st.SourceCompleted {
		t.Fatalf("source not completed")
	}
	return st
}

func TestDirectAreaListKeptVerbatim(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeThroughSource(t, e, p)
	ctx := context.Background()

	list := "1. 건강\n2. 주거\n3. 교육"
	p.replies = append(p.replies,
		`{"has_area_list": true, "hierarchical_structure": "1. 건강\n2. 주거\n3. 교육"}`,
	)
	st = e.ProcessMessage(ctx, st, list)

	if st.AreaSettingMethod != survey.MethodDirect {
		t.Fatalf("area method = %q, want %q", st.AreaSettingMethod, survey.MethodDirect)
	}
	if st.HierarchicalStructure != list {
		t.Fatalf("structure = %q, want verbatim %q", st.HierarchicalStructure, list)
	}
	if !st.AreasCompleted {
		t.Fatalf("areas not completed after direct list")
	}
}

func TestAreaFeedbackProceedCompletes(t *testing.T) {
	p := &mockProvider{}
	e := newTestEngine(p)
	st := completeThroughSource(t, e, p)
	ctx := context.Background()

	p.replies = append(p.replies,
		`{"hierarchical_structure": "1. 건강\n2. 교육", "reason": "의도에 맞는 구성"}`,
	)
	st = e.ProcessMessage(ctx, st, "추천해주세요")
	if st.HierarchicalStructure == "" || st.AreasCompleted {
		t.Fatalf("expected pending suggestion, got %+v", st)
	}

	p.replies = append(p.replies, "영역 구조가 적절해 보입니다.")
	st = e.ProcessMessage(ctx, st, "네 진행해주세요")

	if !st.AreasCompleted {
		t.Fatalf("areas not completed on proceed")
	}
	// Completion chains into the one-time area review in the same turn.
	if st.AreaReviewMessage == "" {
		t.Fatalf("area review critique not produced")
	}
}

func TestDirectItemListChainsIntoReview(t *testing.T) {
	p := &mockProvider{replies: []string{"세부 항목이 적절하게 구성되었습니다."}}
	e := newTestEngine(p)
	st := survey.State{
		ExecutedSteps:         []string{survey.StepItems},
		ObjectiveCompleted:    true,
		SourceCompleted:       true,
		AreasCompleted:        true,
		AreaReviewCompleted:   true,
		HierarchicalStructure: "1. 건강\n2. 주거",
	}

	list := "1. 건강: 주관적 건강상태, 만족도\n2. 주거: 주거 형태, 주거비 부담"
	st = e.ProcessMessage(context.Background(), st, list)

	if st.ItemsSettingMethod != survey.MethodDirect {
		t.Fatalf("item method = %q, want %q", st.ItemsSettingMethod, survey.MethodDirect)
	}
	if st.SectionItems != list {
		t.Fatalf("section items = %q, want verbatim input", st.SectionItems)
	}
	if !st.ItemsCompleted {
		t.Fatalf("items not completed after direct list")
	}
	// Completion chains into the one-time item critique in the same turn.
	if !st.StepExecuted(survey.StepItemReview) {
		t.Fatalf("item review not entered")
	}
	if st.ItemReviewMessage == "" {
		t.Fatalf("item critique not produced")
	}

	p.replies = append(p.replies, "")
	st = e.ProcessMessage(context.Background(), st, "확인")
	if !st.ItemReviewCompleted {
		t.Fatalf("item review not completed on confirm")
	}
	// The layout step opens next with the code catalog.
	if !st.StepExecuted(survey.StepLayout) {
		t.Fatalf("layout step not entered after item review")
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "레이아웃") {
		t.Fatalf("layout intro missing: %q", msg)
	}
}

func TestCompletedStepsProduceEmptyUpdates(t *testing.T) {
	steps := NewSteps(&mockProvider{}, classify.NewKeyword(), nil)
	st := survey.State{
		ObjectiveCompleted: true,
		SourceCompleted:    true,
	}
	for _, stepID := range []string{survey.StepObjective, survey.StepSource} {
		if u := steps.Execute(context.Background(), stepID, st); !u.Empty() {
			t.Fatalf("completed step %q produced an update: %+v", stepID, u)
		}
	}
}

func TestLayoutDirectParseFallback(t *testing.T) {
	// Provider outage forces the deterministic line parser.
	steps := NewSteps(&mockProvider{err: context.DeadlineExceeded}, classify.NewKeyword(), nil)
	st := survey.State{
		ExecutedSteps: []string{survey.StepLayout},
		SectionItems:  "건강: 주관적 건강상태, 만족도",
		Messages: []survey.Message{
			{Role: survey.RoleUser, Content: "성별 SC\n만족도 RS(7)"},
		},
	}

	u := steps.setLayout(context.Background(), st)
	if u.LayoutSetting == nil {
		t.Fatalf("no layout setting produced")
	}
	assignments, err := survey.DecodeLayouts(*u.LayoutSetting)
	if err != nil {
		t.Fatalf("decode layouts: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("got %d assignments, want 2", len(assignments))
	}
	if assignments[1].LayoutCode != "RS(7)" {
		t.Fatalf("layout code = %q, want RS(7)", assignments[1].LayoutCode)
	}
	if assignments[1].LayoutName != "Rating Scale (척도형)" {
		t.Fatalf("layout name = %q, want Rating Scale (척도형)", assignments[1].LayoutName)
	}
}

func TestLayoutMalformedInputGetsHelp(t *testing.T) {
	steps := NewSteps(&mockProvider{err: context.DeadlineExceeded}, classify.NewKeyword(), nil)
	st := survey.State{
		ExecutedSteps: []string{survey.StepLayout},
		SectionItems:  "건강: 만족도",
		Messages: []survey.Message{
			{Role: survey.RoleUser, Content: "음 잘 모르겠네요"},
		},
	}

	u := steps.setLayout(context.Background(), st)
	if u.LayoutSetting != nil || (u.LayoutCompleted != nil && *u.LayoutCompleted) {
		t.Fatalf("malformed input set a layout: %+v", u)
	}
	if len(u.Messages) == 0 || !strings.Contains(u.Messages[0].Content, "입력 형식을 확인해주세요") {
		t.Fatalf("expected format help, got %+v", u.Messages)
	}
}

func TestLayoutConfirmCompletes(t *testing.T) {
	setting, _ := survey.EncodeLayouts([]survey.LayoutAssignment{{Item: "성별", LayoutCode: "SC"}})
	steps := NewSteps(&mockProvider{}, classify.NewKeyword(), nil)
	st := survey.State{
		ExecutedSteps: []string{survey.StepLayout},
		LayoutSetting: setting,
		Messages: []survey.Message{
			{Role: survey.RoleUser, Content: "네 좋습니다"},
		},
	}

	u := steps.setLayout(context.Background(), st)
	if u.LayoutCompleted == nil || !*u.LayoutCompleted {
		t.Fatalf("confirmation did not complete layout: %+v", u)
	}
}

func TestGenerateFirstEntryBuildsDraft(t *testing.T) {
	p := &mockProvider{replies: []string{"문항 1. 귀하의 성별은 무엇입니까? (SC)"}}
	steps := NewSteps(p, classify.NewKeyword(), nil)
	st := survey.State{
		Intent:                "목표/용도: 주민 만족도 파악\n항목 개수: 20",
		HierarchicalStructure: "1. 건강",
		SectionItems:          "건강: 만족도",
	}

	u := steps.generateSurvey(context.Background(), st)
	if u.SurveyDraft == nil || !strings.Contains(*u.SurveyDraft, "문항 1.") {
		t.Fatalf("draft not produced: %+v", u)
	}
	if u.GenerationCompleted != nil {
		t.Fatalf("generation completed on first entry")
	}
}

func TestGenerateModifyUpdatesBothDrafts(t *testing.T) {
	p := &mockProvider{replies: []string{"문항 1. 수정된 문항입니다. (OQ)"}}
	steps := NewSteps(p, classify.NewKeyword(), nil)
	st := survey.State{
		ExecutedSteps: []string{survey.StepGenerate},
		SurveyDraft:   "문항 1. 원래 문항 (SC)",
		Messages: []survey.Message{
			{Role: survey.RoleUser, Content: "첫 번째 문항을 주관식으로 바꿔주세요"},
		},
	}

	u := steps.generateSurvey(context.Background(), st)
	if u.SurveyDraft == nil || u.FinalSurvey == nil {
		t.Fatalf("revision did not update both drafts: %+v", u)
	}
	if *u.SurveyDraft != *u.FinalSurvey {
		t.Fatalf("draft %q and final %q diverge", *u.SurveyDraft, *u.FinalSurvey)
	}
}

func TestGenerateCompleteChainsThroughFinalize(t *testing.T) {
	p := &mockProvider{replies: []string{
		"```json\n{\"review_result\": \"용어가 일관됩니다.\", \"refined_survey\": \"문항 1. 다듬은 문항 (SC)\", \"has_improvements\": true}\n```",
	}}
	e := NewEngine(NewSteps(p, classify.NewKeyword(), nil))
	st := survey.State{
		ExecutedSteps:       []string{survey.StepGenerate},
		ObjectiveCompleted:  true,
		SourceCompleted:     true,
		AreasCompleted:      true,
		AreaReviewCompleted: true,
		ItemsCompleted:      true,
		ItemReviewCompleted: true,
		LayoutCompleted:     true,
		SurveyDraft:         "문항 1. 원래 문항 (SC)",
	}

	st = e.ProcessMessage(context.Background(), st, "완료")

	if !st.GenerationCompleted {
		t.Fatalf("generation not completed")
	}
	if !st.StepExecuted(survey.StepFinalize) {
		t.Fatalf("finalize step not entered in the same turn")
	}
	if st.OriginalSurveyDraft != "문항 1. 원래 문항 (SC)" {
		t.Fatalf("original draft = %q, not preserved", st.OriginalSurveyDraft)
	}
	if st.SurveyDraft != "문항 1. 다듬은 문항 (SC)" || st.FinalSurvey != st.SurveyDraft {
		t.Fatalf("refined draft not applied: draft=%q final=%q", st.SurveyDraft, st.FinalSurvey)
	}
}

func TestFinalizeRestoreThenComplete(t *testing.T) {
	p := &mockProvider{}
	e := NewEngine(NewSteps(p, classify.NewKeyword(), nil))
	ctx := context.Background()
	st := survey.State{
		ExecutedSteps:       []string{survey.StepFinalize},
		ObjectiveCompleted:  true,
		SourceCompleted:     true,
		AreasCompleted:      true,
		AreaReviewCompleted: true,
		ItemsCompleted:      true,
		ItemReviewCompleted: true,
		LayoutCompleted:     true,
		GenerationCompleted: true,
		SurveyDraft:         "문항 1. 다듬은 문항 (SC)",
		FinalSurvey:         "문항 1. 다듬은 문항 (SC)",
		OriginalSurveyDraft: "문항 1. 원래 문항 (SC)",
		SurveyReviewMessage: "용어가 일관됩니다.",
	}

	st = e.ProcessMessage(ctx, st, "아니오")
	if st.ReviewApply == nil || *st.ReviewApply {
		t.Fatalf("restore decision not recorded: %+v", st.ReviewApply)
	}
	if st.SurveyDraft != "문항 1. 원래 문항 (SC)" || st.FinalSurvey != "문항 1. 원래 문항 (SC)" {
		t.Fatalf("restore did not revert drafts: draft=%q final=%q", st.SurveyDraft, st.FinalSurvey)
	}

	st = e.ProcessMessage(ctx, st, "완료")
	if !st.FinalizationCompleted {
		t.Fatalf("finalization not completed")
	}
	if !st.DraftCompleted {
		t.Fatalf("draft creation did not chain after finalization")
	}
	if msg := lastAssistant(t, st); !strings.Contains(msg, "설문지 작성이 완료되었습니다") {
		t.Fatalf("missing completion message: %q", msg)
	}
	if !survey.IsSurveyComplete(st) {
		t.Fatalf("state not reported complete")
	}
}

func TestCreateDraftWithoutSurveyErrors(t *testing.T) {
	steps := NewSteps(&mockProvider{}, classify.NewKeyword(), nil)

	u := steps.createDraft(context.Background(), survey.State{})
	if u.DraftCompleted != nil && *u.DraftCompleted {
		t.Fatalf("draft completed without any survey text")
	}
	if len(u.Messages) == 0 || !strings.Contains(u.Messages[0].Content, "초안이 없어") {
		t.Fatalf("expected error message, got %+v", u.Messages)
	}
}

func TestRunPassesBounded(t *testing.T) {
	// A fully completed state must quiesce immediately instead of spinning.
	e := newTestEngine(&mockProvider{})
	st := survey.State{
		ObjectiveCompleted:    true,
		SourceCompleted:       true,
		AreasCompleted:        true,
		AreaReviewCompleted:   true,
		ItemsCompleted:        true,
		ItemReviewCompleted:   true,
		LayoutCompleted:       true,
		GenerationCompleted:   true,
		FinalizationCompleted: true,
		DraftCompleted:        true,
		FinalSurvey:           "문항 1. (SC)",
	}

	out := e.ProcessMessage(context.Background(), st, "안녕하세요")
	if len(out.Messages) != 1 {
		t.Fatalf("completed session grew messages: %d", len(out.Messages))
	}
}
