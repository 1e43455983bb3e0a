package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("DEFAULT_LAT", "")
	t.Setenv("DEFAULT_LNG", "")
	t.Setenv("SEARCH_RADIUS_METERS", "")
	t.Setenv("MAX_RESULTS", "")
	t.Setenv("MAP_ZOOM", "")
	t.Setenv("GEOLOCATION_TIMEOUT_SECONDS", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GoogleMapsAPIKey)
	assert.Equal(t, 40.7128, cfg.DefaultAnchor.Lat)
	assert.Equal(t, -74.0060, cfg.DefaultAnchor.Lng)
	assert.Equal(t, 5000, cfg.SearchRadiusMeters)
	assert.Equal(t, 20, cfg.MaxResults)
	assert.Equal(t, 14, cfg.MapZoom)
	assert.Equal(t, 10*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_ReadsOverridesFromEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	t.Setenv("DEFAULT_LAT", "35.0116")
	t.Setenv("DEFAULT_LNG", "135.7681")
	t.Setenv("SEARCH_RADIUS_METERS", "3000")
	t.Setenv("MAX_RESULTS", "10")
	t.Setenv("GEOLOCATION_TIMEOUT_SECONDS", "15")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 35.0116, cfg.DefaultAnchor.Lat)
	assert.Equal(t, 135.7681, cfg.DefaultAnchor.Lng)
	assert.Equal(t, 3000, cfg.SearchRadiusMeters)
	assert.Equal(t, 10, cfg.MaxResults)
	assert.Equal(t, 15*time.Second, cfg.GeolocationTimeout)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_ClampsGeolocationTimeout(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")

	t.Run("下限5秒にクランプされる", func(t *testing.T) {
		t.Setenv("GEOLOCATION_TIMEOUT_SECONDS", "1")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.GeolocationTimeout)
	})

	t.Run("上限30秒にクランプされる", func(t *testing.T) {
		t.Setenv("GEOLOCATION_TIMEOUT_SECONDS", "120")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.GeolocationTimeout)
	})
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")

	t.Run("不正なデフォルト座標", func(t *testing.T) {
		t.Setenv("DEFAULT_LAT", "999")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("不正な検索半径", func(t *testing.T) {
		t.Setenv("SEARCH_RADIUS_METERS", "-100")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("パースできない値はデフォルトに戻る", func(t *testing.T) {
		t.Setenv("MAX_RESULTS", "not-a-number")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.MaxResults)
	})
}
