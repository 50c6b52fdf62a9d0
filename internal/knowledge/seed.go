// File path: internal/knowledge/seed.go
package knowledge

import (
	"context"
	"fmt"

	"github.com/surveyforge/surveyforge/internal/common"
)

type seedQuestion struct {
	text       string
	layoutCode string
	layoutName string
}

type seedItem struct {
	name      string
	questions []seedQuestion
}

type seedArea struct {
	name        string
	description string
	items       []seedItem
}

// builtinCatalog is the bundled 사회조사 reference catalog used when the
// database starts empty. It mirrors the structure of national social
// indicator surveys: category, area, item, then fielded questions with
// their response-format codes.
var builtinCatalog = map[string][]seedArea{
	"사회조사": {
		{
			name: "건강", description: "주관적 건강 수준과 의료 이용, 건강 관리 행태",
			items: []seedItem{
				{name: "주관적 건강평가", questions: []seedQuestion{
					{text: "귀하는 자신의 건강 상태가 어떻다고 생각하십니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "만성질환 여부", questions: []seedQuestion{
					{text: "귀하는 현재 의사로부터 진단받은 만성질환이 있습니까?", layoutCode: "DC", layoutName: "Dichotomous (이분형)"},
				}},
				{name: "규칙적 운동", questions: []seedQuestion{
					{text: "귀하는 평소 일주일에 며칠 규칙적으로 운동을 하십니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
				{name: "의료기관 이용", questions: []seedQuestion{
					{text: "지난 1년 동안 이용한 의료기관을 모두 선택해 주십시오.", layoutCode: "MA", layoutName: "Multiple Answer (복수 응답형)"},
				}},
			},
		},
		{
			name: "주거", description: "주택 유형과 주거 환경, 주거비 부담",
			items: []seedItem{
				{name: "주택 유형", questions: []seedQuestion{
					{text: "귀하가 현재 거주하는 주택의 유형은 무엇입니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
				{name: "주거환경 만족도", questions: []seedQuestion{
					{text: "현재 거주 지역의 주거 환경에 대해 항목별로 만족도를 표시해 주십시오.", layoutCode: "MG(5)", layoutName: "Matrix / Grid (매트릭스/표 형식)"},
				}},
				{name: "주거비 부담", questions: []seedQuestion{
					{text: "월 소득 대비 주거비 부담 정도는 어느 수준입니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
			},
		},
		{
			name: "교육", description: "교육 기회와 사교육, 평생학습 참여",
			items: []seedItem{
				{name: "교육 기회 충족도", questions: []seedQuestion{
					{text: "귀하는 원하는 단계까지 교육 기회를 충분히 가졌다고 생각하십니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "사교육비 부담", questions: []seedQuestion{
					{text: "자녀의 사교육비가 가계에 부담이 됩니까?", layoutCode: "DC", layoutName: "Dichotomous (이분형)"},
				}},
				{name: "평생학습 참여", questions: []seedQuestion{
					{text: "지난 1년 동안 참여한 평생학습 프로그램을 모두 선택해 주십시오.", layoutCode: "MA", layoutName: "Multiple Answer (복수 응답형)"},
				}},
			},
		},
		{
			name: "노동", description: "고용 형태와 근로 여건, 일자리 만족",
			items: []seedItem{
				{name: "고용 형태", questions: []seedQuestion{
					{text: "귀하의 현재 고용 형태는 무엇입니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
				{name: "근로시간 만족도", questions: []seedQuestion{
					{text: "현재의 근로시간에 대해 얼마나 만족하십니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "일자리 선택 기준", questions: []seedQuestion{
					{text: "일자리를 선택할 때 중요하게 생각하는 순서대로 나열해 주십시오.", layoutCode: "RK(3)", layoutName: "Ranking (순위형)"},
				}},
			},
		},
		{
			name: "소득과 소비", description: "가구 소득과 소비 생활, 노후 준비",
			items: []seedItem{
				{name: "가구 소득 수준", questions: []seedQuestion{
					{text: "귀 가구의 월평균 소득은 어느 구간에 해당합니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
				{name: "소비생활 만족도", questions: []seedQuestion{
					{text: "전반적인 소비 생활에 대해 얼마나 만족하십니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "노후 준비 방법", questions: []seedQuestion{
					{text: "노후 생활을 위해 준비하고 있는 방법을 모두 선택해 주십시오.", layoutCode: "MA", layoutName: "Multiple Answer (복수 응답형)"},
				}},
			},
		},
		{
			name: "여가", description: "여가 활동과 문화 생활, 여가 만족",
			items: []seedItem{
				{name: "주말 여가 활동", questions: []seedQuestion{
					{text: "주말이나 휴일의 주된 여가 활동은 무엇입니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
				{name: "여가생활 만족도", questions: []seedQuestion{
					{text: "전반적인 여가 생활에 대해 얼마나 만족하십니까?", layoutCode: "RS(7)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "여가 활동 제약", questions: []seedQuestion{
					{text: "여가 활동에 제약이 있다면 그 이유를 적어 주십시오.", layoutCode: "OQ", layoutName: "오픈형"},
				}},
			},
		},
		{
			name: "가족", description: "가족 관계와 가사 분담, 가족 부양",
			items: []seedItem{
				{name: "가족관계 만족도", questions: []seedQuestion{
					{text: "가족 구성원과의 관계에 대해 항목별 만족도를 표시해 주십시오.", layoutCode: "MG(5)", layoutName: "Matrix / Grid (매트릭스/표 형식)"},
				}},
				{name: "가사 분담", questions: []seedQuestion{
					{text: "귀 가정의 가사 분담은 공평하게 이루어지고 있습니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
			},
		},
		{
			name: "환경", description: "체감 환경과 환경 보전 노력",
			items: []seedItem{
				{name: "체감 환경 수준", questions: []seedQuestion{
					{text: "현재 거주 지역의 대기, 수질, 소음 수준을 항목별로 평가해 주십시오.", layoutCode: "MG(5)", layoutName: "Matrix / Grid (매트릭스/표 형식)"},
				}},
				{name: "환경 보전 실천", questions: []seedQuestion{
					{text: "환경 보전을 위해 실천하고 있는 활동을 모두 선택해 주십시오.", layoutCode: "MA", layoutName: "Multiple Answer (복수 응답형)"},
				}},
			},
		},
		{
			name: "안전", description: "사회 안전 인식과 재난 대비",
			items: []seedItem{
				{name: "사회 안전 인식", questions: []seedQuestion{
					{text: "우리 사회가 전반적으로 안전하다고 생각하십니까?", layoutCode: "RS(5)", layoutName: "Rating Scale (척도형)"},
				}},
				{name: "불안 요인", questions: []seedQuestion{
					{text: "사회의 가장 큰 불안 요인은 무엇이라고 생각하십니까?", layoutCode: "SC", layoutName: "Single Choice (선다형)"},
				}},
			},
		},
	},
}

// seedIfEmpty loads the bundled catalog on first open.
func (s *Store) seedIfEmpty(ctx context.Context) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM categories`); err != nil {
		return fmt.Errorf("knowledge: count categories: %w", err)
	}
	if count > 0 {
		return nil
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("knowledge: begin seed: %w", err)
	}
	defer tx.Rollback()

	for category, areas := range builtinCatalog {
		res, err := tx.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category)
		if err != nil {
			return fmt.Errorf("knowledge: seed category %s: %w", category, err)
		}
		categoryID, _ := res.LastInsertId()
		for _, area := range areas {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO areas (category_id, name, description) VALUES (?, ?, ?)`,
				categoryID, area.name, area.description)
			if err != nil {
				return fmt.Errorf("knowledge: seed area %s: %w", area.name, err)
			}
			areaID, _ := res.LastInsertId()
			for _, item := range area.items {
				res, err := tx.ExecContext(ctx,
					`INSERT INTO items (area_id, name) VALUES (?, ?)`, areaID, item.name)
				if err != nil {
					return fmt.Errorf("knowledge: seed item %s: %w", item.name, err)
				}
				itemID, _ := res.LastInsertId()
				for _, q := range item.questions {
					_, err := tx.ExecContext(ctx,
						`INSERT INTO questions (item_id, text, layout_code, layout_name) VALUES (?, ?, ?, ?)`,
						itemID, q.text, q.layoutCode, q.layoutName)
					if err != nil {
						return fmt.Errorf("knowledge: seed question: %w", err)
					}
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("knowledge: commit seed: %w", err)
	}
	common.Logger().Info("knowledge: seeded built-in catalog")
	return nil
}
