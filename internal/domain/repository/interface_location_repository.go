package repository

import (
	"context"
	"errors"

	"RestaurantFinder-App/internal/domain/model"
)

// 位置情報取得のエラー種別
var (
	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
	ErrLocationTimeout          = errors.New("location request timed out")
)

// LocationRepository 現在地の取得を抽象化する
// 失敗時は上記のエラー種別のいずれかをラップして返す
type LocationRepository interface {
	CurrentLocation(ctx context.Context) (model.Location, error)
}
