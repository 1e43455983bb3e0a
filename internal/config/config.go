package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"RestaurantFinder-App/internal/domain/model"
)

// ErrMissingAPIKey APIキー未設定エラー（起動時に致命的エラーとして扱う）
var ErrMissingAPIKey = errors.New("GOOGLE_MAPS_API_KEY is not set")

// デフォルト値（オリジナルのニューヨーク市フォールバックを踏襲）
const (
	defaultLat                = 40.7128
	defaultLng                = -74.0060
	defaultRadiusMeters       = 5000
	defaultMaxResults         = 20
	defaultMapZoom            = 14
	defaultGeolocationTimeout = 10 * time.Second
	defaultPort               = "8080"
)

// 位置情報取得タイムアウトの許容範囲
const (
	minGeolocationTimeout = 5 * time.Second
	maxGeolocationTimeout = 30 * time.Second
)

// Config アプリケーション全体の設定（起動時に一度だけ読み込む）
type Config struct {
	GoogleMapsAPIKey   string
	DefaultAnchor      model.Location
	SearchRadiusMeters int
	MaxResults         int
	MapZoom            int
	GeolocationTimeout time.Duration
	Port               string
}

// Load 環境変数から設定を読み込む
// GOOGLE_MAPS_API_KEYが未設定の場合はエラーを返す（パイプラインは一切起動しない）
func Load() (*Config, error) {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &Config{
		GoogleMapsAPIKey: apiKey,
		DefaultAnchor: model.Location{
			Lat: envFloat("DEFAULT_LAT", defaultLat),
			Lng: envFloat("DEFAULT_LNG", defaultLng),
		},
		SearchRadiusMeters: envInt("SEARCH_RADIUS_METERS", defaultRadiusMeters),
		MaxResults:         envInt("MAX_RESULTS", defaultMaxResults),
		MapZoom:            envInt("MAP_ZOOM", defaultMapZoom),
		GeolocationTimeout: envDuration("GEOLOCATION_TIMEOUT_SECONDS", defaultGeolocationTimeout),
		Port:               envString("PORT", defaultPort),
	}

	if !cfg.DefaultAnchor.IsValid() {
		return nil, fmt.Errorf("デフォルト地点の座標が不正です: %+v", cfg.DefaultAnchor)
	}
	if cfg.SearchRadiusMeters <= 0 {
		return nil, fmt.Errorf("検索半径は正の整数を指定してください: %d", cfg.SearchRadiusMeters)
	}

	// タイムアウトは5〜30秒の範囲にクランプする
	if cfg.GeolocationTimeout < minGeolocationTimeout {
		cfg.GeolocationTimeout = minGeolocationTimeout
	}
	if cfg.GeolocationTimeout > maxGeolocationTimeout {
		cfg.GeolocationTimeout = maxGeolocationTimeout
	}

	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	seconds, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}
