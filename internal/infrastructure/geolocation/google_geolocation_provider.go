package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"RestaurantFinder-App/internal/domain/model"
	"RestaurantFinder-App/internal/domain/repository"
)

const defaultGeolocationBaseURL = "https://www.googleapis.com"

// GoogleGeolocationProvider Google Geolocation APIでIPベースの現在地推定を行うLocationRepositoryの実装
// ブラウザのGeolocation APIに相当するサーバー側のフォールバック手段
type GoogleGeolocationProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleGeolocationProvider 新しいプロバイダを生成する
func NewGoogleGeolocationProvider(apiKey string) *GoogleGeolocationProvider {
	return &GoogleGeolocationProvider{
		apiKey:     apiKey,
		baseURL:    defaultGeolocationBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewGoogleGeolocationProviderWithBaseURL テスト用にベースURLを差し替えたプロバイダを生成する
func NewGoogleGeolocationProviderWithBaseURL(apiKey, baseURL string) *GoogleGeolocationProvider {
	p := NewGoogleGeolocationProvider(apiKey)
	p.baseURL = baseURL
	return p
}

// CurrentLocation 現在地を推定する
// 失敗はrepositoryの位置情報エラー種別にマッピングする（呼び出し側がフォールバック判断に使う）
func (g *GoogleGeolocationProvider) CurrentLocation(ctx context.Context) (model.Location, error) {
	reqURL := fmt.Sprintf("%s/geolocation/v1/geolocate?key=%s", g.baseURL, g.apiKey)
	body := strings.NewReader(`{"considerIp": true}`)

	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, body)
	if err != nil {
		return model.Location{}, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return model.Location{}, fmt.Errorf("%w: %v", repository.ErrLocationTimeout, err)
		}
		return model.Location{}, fmt.Errorf("%w: %v", repository.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusForbidden:
		return model.Location{}, fmt.Errorf("%w: ステータス %s", repository.ErrLocationPermissionDenied, resp.Status)
	case http.StatusNotFound:
		return model.Location{}, fmt.Errorf("%w: ステータス %s", repository.ErrLocationUnavailable, resp.Status)
	default:
		return model.Location{}, fmt.Errorf("%w: ステータス %s", repository.ErrLocationUnavailable, resp.Status)
	}

	var apiResp geolocateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return model.Location{}, fmt.Errorf("%w: JSONのパースに失敗: %v", repository.ErrLocationUnavailable, err)
	}

	loc := model.Location{Lat: apiResp.Location.Lat, Lng: apiResp.Location.Lng}
	if !loc.IsValid() {
		return model.Location{}, fmt.Errorf("%w: 不正な座標 %+v", repository.ErrLocationUnavailable, loc)
	}
	return loc, nil
}

// --- Geolocation APIのレスポンスをパースするための構造体 ---

type geolocateResponse struct {
	Location struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
	Accuracy float64 `json:"accuracy"`
}
