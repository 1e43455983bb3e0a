package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RestaurantFinder-App/internal/domain/model"
)

// 緯度1度あたりの距離 (m) = 2π × 6371000 / 360
const metersPerLatDegree = 111194.92664455873

func TestHaversineDistance(t *testing.T) {
	nyc := model.Location{Lat: 40.7128, Lng: -74.0060}

	t.Run("同一地点の距離は0", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineDistance(nyc, nyc))
	})

	t.Run("緯度差0.01度は約1111.9m", func(t *testing.T) {
		p2 := model.Location{Lat: nyc.Lat + 0.01, Lng: nyc.Lng}
		assert.InDelta(t, metersPerLatDegree*0.01, HaversineDistance(nyc, p2), 1.0)
	})

	t.Run("赤道上の経度差0.05度は約5559.7m", func(t *testing.T) {
		p1 := model.Location{Lat: 0, Lng: 100}
		p2 := model.Location{Lat: 0, Lng: 100.05}
		assert.InDelta(t, metersPerLatDegree*0.05, HaversineDistance(p1, p2), 1.0)
	})

	t.Run("距離は対称", func(t *testing.T) {
		p2 := model.Location{Lat: 40.7505, Lng: -73.9934}
		assert.InDelta(t, HaversineDistance(nyc, p2), HaversineDistance(p2, nyc), 1e-9)
	})
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{300, "300 m"},
		{800, "800 m"},
		{999.4, "999 m"},
		{0, "0 m"},
		{1000, "1.0 km"},
		{1200, "1.2 km"},
		{2000, "2.0 km"},
		{15480, "15.5 km"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDistance(tt.meters), "meters=%v", tt.meters)
	}
}

func TestComputeViewport(t *testing.T) {
	anchor := model.Location{Lat: 40.7128, Lng: -74.0060}

	t.Run("店舗なしはnil", func(t *testing.T) {
		assert.Nil(t, ComputeViewport(anchor, nil))
	})

	t.Run("アンカーと全店舗を含む", func(t *testing.T) {
		restaurants := []*model.Restaurant{
			{PlaceID: "p1", Location: model.Location{Lat: 40.72, Lng: -74.01}},
			{PlaceID: "p2", Location: model.Location{Lat: 40.70, Lng: -73.99}},
		}

		viewport := ComputeViewport(anchor, restaurants)
		require.NotNil(t, viewport)
		assert.Equal(t, 40.70, viewport.MinLat)
		assert.Equal(t, 40.72, viewport.MaxLat)
		assert.Equal(t, -74.01, viewport.MinLng)
		assert.Equal(t, -73.99, viewport.MaxLng)
	})
}
