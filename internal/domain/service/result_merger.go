package service

import (
	"math"
	"sort"

	"RestaurantFinder-App/internal/domain/helper"
	"RestaurantFinder-App/internal/domain/model"
)

// 評価値の差がこの範囲内なら同ランクとみなし、距離でタイブレークする
const ratingTieBreakThreshold = 0.1

// ResultMerger サブクエリ結果の統合・重複排除・距離付与・フィルタ・並べ替えを担当する
// 完了順には依存せず、プラン内のサブクエリ宣言順のみで結果が決まる
type ResultMerger struct{}

// NewResultMerger 新しいResultMergerを生成する
func NewResultMerger() *ResultMerger {
	return &ResultMerger{}
}

// Merge 各サブクエリのバッチ（宣言順）を統合して最終的な結果リストを生成する
// batchesのインデックスはplan.SubQueriesのインデックスに対応していること
func (m *ResultMerger) Merge(plan *model.QueryPlan, batches [][]*model.Restaurant) []*model.Restaurant {
	// Step 1: 宣言順にフラット化し、PlaceIDで重複排除（先勝ち）
	// 先に宣言されたサブクエリほど具体的なため、ジャンル付与が保持される
	seen := make(map[string]struct{})
	merged := make([]*model.Restaurant, 0)
	for _, batch := range batches {
		for _, r := range batch {
			if r == nil {
				continue
			}
			if _, ok := seen[r.PlaceID]; ok {
				continue
			}
			seen[r.PlaceID] = struct{}{}
			merged = append(merged, r)
		}
	}

	// Step 2: アンカーからの距離と表示用ラベルを付与
	for _, r := range merged {
		r.DistanceMeters = helper.HaversineDistance(plan.Anchor, r.Location)
		r.DistanceLabel = helper.FormatDistance(r.DistanceMeters)
	}

	// Step 3: 営業中フィルタ（プロバイダ側のフィルタは信頼できないためクライアント側で適用）
	// 営業状態不明(nil)は「営業中」ではないので除外する
	if plan.OpenNowOnly {
		filtered := make([]*model.Restaurant, 0, len(merged))
		for _, r := range merged {
			if r.IsOpenNow() {
				filtered = append(filtered, r)
			}
		}
		merged = filtered
	}

	// Step 4: ランキングポリシーに従って並べ替え
	m.sortByPolicy(merged, plan.RankPolicy)

	return merged
}

// sortByPolicy ランキングポリシーに従って並べ替える
func (m *ResultMerger) sortByPolicy(restaurants []*model.Restaurant, policy model.RankPolicy) {
	switch policy {
	case model.RankRatingDescThenDistanceAsc:
		sort.SliceStable(restaurants, func(i, j int) bool {
			ri := restaurants[i].RatingOrZero()
			rj := restaurants[j].RatingOrZero()
			if math.Abs(ri-rj) > ratingTieBreakThreshold {
				return ri > rj
			}
			return restaurants[i].DistanceMeters < restaurants[j].DistanceMeters
		})
	default:
		sort.SliceStable(restaurants, func(i, j int) bool {
			return restaurants[i].DistanceMeters < restaurants[j].DistanceMeters
		})
	}
}
