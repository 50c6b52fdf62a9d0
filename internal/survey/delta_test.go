// File path: internal/survey/delta_test.go
package survey

import "testing"

func TestChangedFieldsIgnoresClears(t *testing.T) {
	prev := State{Intent: "구버전 목표", SurveyDraft: "초안 v1"}
	curr := State{Intent: "신버전 목표", SurveyDraft: ""}

	changed := ChangedFields(prev, curr)
	if len(changed) != 1 {
		t.Fatalf("expected 1 change, got %v", changed)
	}
	if changed["intent"] != "신버전 목표" {
		t.Fatalf("intent change = %q", changed["intent"])
	}
}

func TestLatestChangedFieldPriority(t *testing.T) {
	prev := State{}
	curr := State{Intent: "목표", HierarchicalStructure: "영역 구조", FinalSurvey: "완성본"}

	field, value := LatestChangedField(ChangedFields(prev, curr), curr)
	if field != "final_survey" || value != "완성본" {
		t.Fatalf("got %q=%q, want final_survey", field, value)
	}
}

func TestLatestChangedFieldFallsBackToState(t *testing.T) {
	curr := State{SectionItems: "건강: 만성질환, 운동"}
	field, value := LatestChangedField(nil, curr)
	if field != "section_items" || value != curr.SectionItems {
		t.Fatalf("fallback = %q=%q", field, value)
	}

	field, value = LatestChangedField(nil, State{})
	if field != "" || value != "" {
		t.Fatalf("empty state fallback = %q=%q", field, value)
	}
}

func TestFieldNamesCoverImportantFields(t *testing.T) {
	for _, field := range ImportantFields {
		if FieldNames[field] == "" {
			t.Fatalf("no display name for %s", field)
		}
	}
}

func TestCurrentStepGroup(t *testing.T) {
	cases := []struct {
		executed []string
		want     int
	}{
		{nil, 1},
		{[]string{StepObjective}, 1},
		{[]string{StepObjective, StepSource}, 2},
		{[]string{StepObjective, StepSource, StepAreas, StepAreaReview}, 3},
		{[]string{StepObjective, StepSource, StepAreas, StepAreaReview, StepItems}, 4},
		{[]string{StepObjective, StepSource, StepAreas, StepAreaReview, StepItems, StepItemReview, StepLayout}, 5},
		{StepOrder, 6},
	}
	for _, tc := range cases {
		got := CurrentStepGroup(State{ExecutedSteps: tc.executed})
		if got != tc.want {
			t.Fatalf("group for %v = %d, want %d", tc.executed, got, tc.want)
		}
	}
}

func TestIsSurveyComplete(t *testing.T) {
	if IsSurveyComplete(State{DraftCompleted: true}) {
		t.Fatal("draft flag alone is not completion")
	}
	if !IsSurveyComplete(State{DraftCompleted: true, FinalSurvey: "문서"}) {
		t.Fatal("completed state not recognized")
	}
}
