package helper

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"RestaurantFinder-App/internal/domain/model"
)

// 距離計算に使用する地球半径 (m)
// orbのDistanceHaversineは赤道半径(6378137m)を使うため、ここでは自前で計算する
const earthRadiusMeters = 6371000.0

// HaversineDistance 2地点間のハバーサイン距離を計算する (m)
func HaversineDistance(p1, p2 model.Location) float64 {
	lat1 := p1.Lat * math.Pi / 180
	lat2 := p2.Lat * math.Pi / 180
	dLat := (p2.Lat - p1.Lat) * math.Pi / 180
	dLng := (p2.Lng - p1.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// FormatDistance 距離を表示用文字列に変換する（1km未満は"300 m"、以上は"1.2 km"形式）
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// ToPoint model.Location を orb.Point に変換する
func ToPoint(l model.Location) orb.Point {
	return orb.Point{l.Lng, l.Lat}
}

// ComputeViewport アンカーと全店舗を含むバウンディングボックスを計算する
// 店舗が無い場合はnilを返す
func ComputeViewport(anchor model.Location, restaurants []*model.Restaurant) *model.Viewport {
	if len(restaurants) == 0 {
		return nil
	}

	anchorPoint := ToPoint(anchor)
	bound := orb.Bound{Min: anchorPoint, Max: anchorPoint}
	for _, r := range restaurants {
		bound = bound.Extend(ToPoint(r.Location))
	}

	return &model.Viewport{
		MinLat: bound.Min.Lat(),
		MinLng: bound.Min.Lon(),
		MaxLat: bound.Max.Lat(),
		MaxLng: bound.Max.Lon(),
	}
}
