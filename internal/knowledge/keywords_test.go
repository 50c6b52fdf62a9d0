// File path: internal/knowledge/keywords_test.go
package knowledge

import (
	"reflect"
	"testing"
)

func TestAreaNames(t *testing.T) {
	in := "1. 건강 (의료, 운동)\n2. 주거: 주택과 주거 환경\n\n3. 교육\n3. 교육"
	got := AreaNames(in)
	want := []string{"건강", "주거", "교육"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if AreaNames("") != nil {
		t.Fatal("empty input should yield nil")
	}
}

func TestItemKeywords(t *testing.T) {
	in := "1. 건강: 만성질환, 운동 습관\n2. 주거: 주택 유형, 주거비 부담, 만성질환"
	got := ItemKeywords(in)
	want := []string{"만성질환", "운동 습관", "주택 유형", "주거비 부담"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestItemKeywordsWithoutColon(t *testing.T) {
	got := ItemKeywords("여가 활동, 문화 생활")
	want := []string{"여가 활동", "문화 생활"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSimilarity(t *testing.T) {
	if s := Similarity("주거환경 만족도", "주거환경 만족도"); s != 1 {
		t.Fatalf("identical strings should score 1, got %f", s)
	}
	near := Similarity("주거환경 만족도", "주거 환경 만족")
	far := Similarity("주거환경 만족도", "평생학습 참여")
	if near <= far {
		t.Fatalf("near=%f should beat far=%f", near, far)
	}
	if s := Similarity("", "주거"); s != 0 {
		t.Fatalf("empty input should score 0, got %f", s)
	}
}

func TestRankByQuery(t *testing.T) {
	texts := []string{"평생학습 참여", "주거환경 만족도", "주거비 부담"}
	ranked := rankByQuery(texts, []string{"주거환경 만족"}, 0.1)
	if len(ranked) == 0 || ranked[0] != 1 {
		t.Fatalf("expected index 1 first, got %v", ranked)
	}
	for _, idx := range ranked {
		if idx == 0 {
			t.Fatalf("unrelated text should be filtered out: %v", ranked)
		}
	}
}
