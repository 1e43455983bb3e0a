package usecase

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"

	"RestaurantFinder-App/internal/domain/helper"
	"RestaurantFinder-App/internal/domain/model"
	"RestaurantFinder-App/internal/domain/repository"
	"RestaurantFinder-App/internal/domain/service"
)

// ErrAllSubQueriesFailed 全てのサブクエリが失敗した場合のエラー（リトライ可能としてユーザーに通知する）
var ErrAllSubQueriesFailed = errors.New("restaurant search failed")

type RestaurantSearchUseCase interface {
	// ExecutePlan はクエリプランを実行し、統合済みのResultSetを生成する
	ExecutePlan(ctx context.Context, plan *model.QueryPlan, generation int64) (*model.ResultSet, error)
}

// restaurantSearchUseCaseImpl はRestaurantSearchUseCaseの実装
type restaurantSearchUseCaseImpl struct {
	placeRepo repository.PlaceDirectoryRepository
	merger    *service.ResultMerger
}

// NewRestaurantSearchUseCase 新しいRestaurantSearchUseCaseインスタンスを作成
func NewRestaurantSearchUseCase(placeRepo repository.PlaceDirectoryRepository, merger *service.ResultMerger) RestaurantSearchUseCase {
	return &restaurantSearchUseCaseImpl{
		placeRepo: placeRepo,
		merger:    merger,
	}
}

// subQueryResult 並行実行するサブクエリ1件分の結果
type subQueryResult struct {
	index       int
	restaurants []*model.Restaurant
	err         error
}

// ExecutePlan クエリプランを実行し、統合済みのResultSetを生成する
// 全サブクエリを起動してから全完了を待つ。1件の失敗が他のジャンルの結果を消さないよう、
// 失敗はサブクエリ単位で握りつぶし、全件失敗した場合のみエラーを返す
func (u *restaurantSearchUseCaseImpl) ExecutePlan(ctx context.Context, plan *model.QueryPlan, generation int64) (*model.ResultSet, error) {
	log.Printf("🔍 検索実行開始 (世代: %d, サブクエリ数: %d)", generation, len(plan.SubQueries))

	resultChan := make(chan subQueryResult, len(plan.SubQueries))
	var wg sync.WaitGroup

	for i, sub := range plan.SubQueries {
		wg.Add(1)
		go func(idx int, sq model.SubQuery) {
			defer wg.Done()
			restaurants, err := u.placeRepo.SearchNearby(ctx, plan.Anchor, plan.RadiusMeters, sq)
			resultChan <- subQueryResult{index: idx, restaurants: restaurants, err: err}
		}(i, sub)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 完了順ではなく宣言順でマージするため、インデックスで格納する
	batches := make([][]*model.Restaurant, len(plan.SubQueries))
	okCount := 0
	for result := range resultChan {
		if result.err != nil {
			log.Printf("⚠️ サブクエリ%d が失敗、このジャンルの結果は空扱い: %v", result.index+1, result.err)
			continue
		}
		batches[result.index] = result.restaurants
		okCount++
	}

	if okCount == 0 {
		return nil, ErrAllSubQueriesFailed
	}

	merged := u.merger.Merge(plan, batches)
	log.Printf("✅ 検索完了 (%d/%d サブクエリ成功, %d件)", okCount, len(plan.SubQueries), len(merged))

	return &model.ResultSet{
		ID:          uuid.New().String(),
		Anchor:      plan.Anchor,
		Restaurants: merged,
		Title:       plan.Title,
		Generation:  generation,
		Bounds:      helper.ComputeViewport(plan.Anchor, merged),
	}, nil
}
