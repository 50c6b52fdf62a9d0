// File path: internal/knowledge/store_test.go
package knowledge

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsCatalog(t *testing.T) {
	s := openTestStore(t)
	cats, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "사회조사" {
		t.Fatalf("unexpected categories: %+v", cats)
	}

	areas, err := s.AreasForCategory(context.Background(), "사회조사")
	if err != nil {
		t.Fatalf("areas: %v", err)
	}
	if len(areas) < 8 {
		t.Fatalf("expected the full built-in area list, got %d", len(areas))
	}
}

func TestSuggestAreasRanksByIntent(t *testing.T) {
	s := openTestStore(t)
	areas, err := s.SuggestAreas(context.Background(), "시민 건강 실태와 의료 이용 파악", 3)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(areas) == 0 {
		t.Fatal("no suggestions")
	}
	if areas[0].Name != "건강" {
		t.Fatalf("expected 건강 first, got %+v", areas)
	}
}

func TestSuggestAreasFallsBackToCatalog(t *testing.T) {
	s := openTestStore(t)
	areas, err := s.SuggestAreas(context.Background(), "zzzz", 4)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(areas) != 4 {
		t.Fatalf("fallback should return the catalog head, got %d", len(areas))
	}
}

func TestItemsForAreas(t *testing.T) {
	s := openTestStore(t)
	grouped, err := s.ItemsForAreas(context.Background(), []string{"건강", "주거"}, 3)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(grouped["건강"]) == 0 || len(grouped["주거"]) == 0 {
		t.Fatalf("missing groups: %+v", grouped)
	}
	for _, item := range grouped["건강"] {
		if item.AreaName != "건강" {
			t.Fatalf("건강 group contains %+v", item)
		}
	}
}

func TestQuestionsForKeywords(t *testing.T) {
	s := openTestStore(t)
	qs, err := s.QuestionsForKeywords(context.Background(), []string{"만성질환", "주거환경 만족도"}, 5)
	if err != nil {
		t.Fatalf("questions: %v", err)
	}
	if len(qs) == 0 {
		t.Fatal("no questions retrieved")
	}
	for _, q := range qs {
		if q.LayoutCode == "" || q.LayoutName == "" {
			t.Fatalf("question missing layout hint: %+v", q)
		}
	}

	empty, err := s.QuestionsForKeywords(context.Background(), nil, 5)
	if err != nil || empty != nil {
		t.Fatalf("no keywords should yield nil, got %v, %v", empty, err)
	}
}
