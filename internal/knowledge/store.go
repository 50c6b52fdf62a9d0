// File path: internal/knowledge/store.go

// Package knowledge is the reference catalog behind assisted suggestion:
// survey categories, their areas, each area's items, and past questions
// with their response-format hints. Retrieval is similarity-ranked in Go
// over a small sqlite catalog, so results are deterministic.
package knowledge

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/surveyforge/surveyforge/internal/common"
)

// minRetrievalScore filters out candidates with no real overlap.
const minRetrievalScore = 0.1

// Category is a top-level survey family, e.g. 사회조사.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Area is a survey section within a category.
type Area struct {
	ID          int64  `db:"id" json:"id"`
	CategoryID  int64  `db:"category_id" json:"category_id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Item is one measured topic within an area.
type Item struct {
	ID       int64  `db:"id" json:"id"`
	AreaID   int64  `db:"area_id" json:"area_id"`
	AreaName string `db:"area_name" json:"area_name"`
	Name     string `db:"name" json:"name"`
}

// Question is a previously fielded question with its layout hint.
type Question struct {
	ID         int64  `db:"id" json:"id"`
	ItemID     int64  `db:"item_id" json:"item_id"`
	ItemName   string `db:"item_name" json:"item_name"`
	Text       string `db:"text" json:"text"`
	LayoutCode string `db:"layout_code" json:"layout_code"`
	LayoutName string `db:"layout_name" json:"layout_name"`
}

// Store wraps the catalog database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the sqlite catalog at path, creating the schema and
// seeding the built-in catalog when the database is empty. ":memory:" is
// accepted for tests.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("knowledge: open %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("knowledge: ping: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS areas (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	category_id INTEGER NOT NULL REFERENCES categories(id),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS items (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	area_id INTEGER NOT NULL REFERENCES areas(id),
	name    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS questions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	item_id     INTEGER NOT NULL REFERENCES items(id),
	text        TEXT NOT NULL,
	layout_code TEXT NOT NULL,
	layout_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_areas_category ON areas(category_id);
CREATE INDEX IF NOT EXISTS idx_items_area ON items(area_id);
CREATE INDEX IF NOT EXISTS idx_questions_item ON questions(item_id);
`

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("knowledge: migrate: %w", err)
	}
	return nil
}

// Categories lists every survey family in the catalog.
func (s *Store) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("knowledge: categories: %w", err)
	}
	return out, nil
}

// AreasForCategory lists a category's areas in catalog order.
func (s *Store) AreasForCategory(ctx context.Context, categoryName string) ([]Area, error) {
	var out []Area
	err := s.db.SelectContext(ctx, &out, `
		SELECT a.id, a.category_id, a.name, a.description
		FROM areas a JOIN categories c ON c.id = a.category_id
		WHERE c.name = ? ORDER BY a.id`, categoryName)
	if err != nil {
		return nil, fmt.Errorf("knowledge: areas for %s: %w", categoryName, err)
	}
	return out, nil
}

// SuggestAreas ranks catalog areas against the survey intent and returns
// the best matches. With a blank intent the whole catalog comes back in
// stored order.
func (s *Store) SuggestAreas(ctx context.Context, intent string, limit int) ([]Area, error) {
	var all []Area
	err := s.db.SelectContext(ctx, &all, `SELECT id, category_id, name, description FROM areas ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("knowledge: load areas: %w", err)
	}
	if intent == "" {
		if limit > 0 && len(all) > limit {
			all = all[:limit]
		}
		return all, nil
	}
	texts := make([]string, len(all))
	for i, a := range all {
		texts[i] = a.Name + " " + a.Description
	}
	ranked := rankByQuery(texts, []string{intent}, minRetrievalScore)
	if len(ranked) == 0 {
		// Nothing overlaps the intent; the full catalog is still a better
		// suggestion basis than an empty list.
		ranked = make([]int, len(all))
		for i := range all {
			ranked[i] = i
		}
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Area, len(ranked))
	for i, idx := range ranked {
		out[i] = all[idx]
	}
	return out, nil
}

// ItemsForAreas returns catalog items grouped under the best-matching
// catalog area for each requested area name.
func (s *Store) ItemsForAreas(ctx context.Context, areaNames []string, perArea int) (map[string][]Item, error) {
	var all []Item
	err := s.db.SelectContext(ctx, &all, `
		SELECT i.id, i.area_id, a.name AS area_name, i.name
		FROM items i JOIN areas a ON a.id = i.area_id
		ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("knowledge: load items: %w", err)
	}
	out := make(map[string][]Item, len(areaNames))
	for _, name := range areaNames {
		texts := make([]string, len(all))
		for i, it := range all {
			texts[i] = it.AreaName
		}
		ranked := rankByQuery(texts, []string{name}, minRetrievalScore)
		items := make([]Item, 0, perArea)
		for _, idx := range ranked {
			items = append(items, all[idx])
			if perArea > 0 && len(items) >= perArea {
				break
			}
		}
		out[name] = items
	}
	return out, nil
}

// QuestionsForKeywords retrieves past questions whose item names resemble
// the given keywords, best matches first.
func (s *Store) QuestionsForKeywords(ctx context.Context, keywords []string, limit int) ([]Question, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	var all []Question
	err := s.db.SelectContext(ctx, &all, `
		SELECT q.id, q.item_id, i.name AS item_name, q.text, q.layout_code, q.layout_name
		FROM questions q JOIN items i ON i.id = q.item_id
		ORDER BY q.id`)
	if err != nil {
		return nil, fmt.Errorf("knowledge: load questions: %w", err)
	}
	texts := make([]string, len(all))
	for i, q := range all {
		texts[i] = q.ItemName + " " + q.Text
	}
	ranked := rankByQuery(texts, keywords, minRetrievalScore)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Question, len(ranked))
	for i, idx := range ranked {
		out[i] = all[idx]
	}
	common.Logger().Debug("knowledge: question retrieval",
		"keywords", len(keywords), "matches", len(out))
	return out, nil
}
