package repository

import (
	"context"

	"RestaurantFinder-App/internal/domain/model"
)

// PlaceDirectoryRepository 外部のプレイスディレクトリ（Google Places等）への問い合わせを抽象化する
// ZERO_RESULTSは空リスト（エラーではない）、それ以外の非OKステータスはエラーを返す
type PlaceDirectoryRepository interface {
	SearchNearby(ctx context.Context, anchor model.Location, radiusMeters int, sub model.SubQuery) ([]*model.Restaurant, error)
}
