package service

import (
	"fmt"
	"strings"

	"RestaurantFinder-App/internal/domain/model"
)

// QueryPlanner フィルタ状態と検索アンカーからクエリプランを構築する
// クエリ形状の優先順位: テキスト検索 > 探索モード > ジャンル選択 > 全件検索
type QueryPlanner struct {
	radiusMeters int
}

// NewQueryPlanner 新しいQueryPlannerを生成する
func NewQueryPlanner(radiusMeters int) *QueryPlanner {
	return &QueryPlanner{radiusMeters: radiusMeters}
}

// BuildPlan フィルタのスナップショットとアンカーから検索計画を構築する
func (p *QueryPlanner) BuildPlan(filter model.FilterState, anchor model.Location) *model.QueryPlan {
	plan := &model.QueryPlan{
		Anchor:       anchor,
		RadiusMeters: p.radiusMeters,
		RankPolicy:   p.rankPolicy(filter),
		Title:        p.resultTitle(filter),
		OpenNowOnly:  filter.OpenNowOnly,
	}

	switch {
	case filter.HasText():
		// テキスト検索は単一サブクエリ（ジャンル付与なし）
		plan.SubQueries = []model.SubQuery{{
			Keyword:       filter.Text,
			MaxPriceLevel: filter.MaxPriceLevel,
		}}
	case filter.Mode == model.ModeExplore:
		plan.SubQueries = []model.SubQuery{{MaxPriceLevel: filter.MaxPriceLevel}}
	case filter.HasCuisines():
		plan.SubQueries = p.cuisineSubQueries(filter)
	}

	// 選択ジャンルが全て不明だった場合も全件検索にフォールバック
	if len(plan.SubQueries) == 0 {
		plan.SubQueries = []model.SubQuery{{MaxPriceLevel: filter.MaxPriceLevel}}
	}

	return plan
}

// cuisineSubQueries 選択ジャンルごとに並列サブクエリを構築する
// サブクエリの並び順＝選択順がマージ時の優先順位になる
func (p *QueryPlanner) cuisineSubQueries(filter model.FilterState) []model.SubQuery {
	subQueries := make([]model.SubQuery, 0, len(filter.Cuisines))
	for _, id := range filter.Cuisines {
		cuisine := model.CuisineByID(id)
		if cuisine == nil {
			continue
		}
		subQueries = append(subQueries, model.SubQuery{
			Keyword:             strings.Join(cuisine.Keywords, " OR "),
			TagHint:             cuisine.GoogleType,
			MaxPriceLevel:       filter.MaxPriceLevel,
			AttributedCuisineID: cuisine.ID,
		})
	}
	return subQueries
}

// rankPolicy 並べ替えポリシーを決定する
// 予算上限ありのユーザーはお金と引き換えに質を求めているため評価順、なければ距離順
func (p *QueryPlanner) rankPolicy(filter model.FilterState) model.RankPolicy {
	if filter.MaxPriceLevel != nil {
		return model.RankRatingDescThenDistanceAsc
	}
	return model.RankDistanceAsc
}

// resultTitle 結果リストの見出しを生成する（プレゼンテーション層にロジックを持たせない）
func (p *QueryPlanner) resultTitle(filter model.FilterState) string {
	if filter.HasText() {
		return fmt.Sprintf("%q Restaurants", filter.Text)
	}
	if filter.Mode == model.ModeExplore {
		return "All Nearby Restaurants"
	}
	if filter.HasCuisines() {
		names := make([]string, 0, len(filter.Cuisines))
		for _, id := range filter.Cuisines {
			if cuisine := model.CuisineByID(id); cuisine != nil {
				names = append(names, cuisine.Name)
			}
		}
		if len(names) > 0 {
			return strings.Join(names, ", ") + " Restaurants"
		}
	}
	return "Nearby Restaurants"
}
