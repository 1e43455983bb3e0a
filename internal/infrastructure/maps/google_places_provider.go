package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"RestaurantFinder-App/internal/domain/model"
)

const defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// 写真URLの生成に使う最大幅 (px)
const photoMaxWidth = 400

// GooglePlacesProvider Google Places Nearby Search APIを使用したプレイスディレクトリの実装
type GooglePlacesProvider struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
	group      singleflight.Group
}

// NewGooglePlacesProvider 新しいプロバイダを生成する
func NewGooglePlacesProvider(apiKey string, maxResults int) *GooglePlacesProvider {
	return &GooglePlacesProvider{
		apiKey:     apiKey,
		baseURL:    defaultPlacesBaseURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewGooglePlacesProviderWithBaseURL テスト用にベースURLを差し替えたプロバイダを生成する
func NewGooglePlacesProviderWithBaseURL(apiKey string, maxResults int, baseURL string) *GooglePlacesProvider {
	p := NewGooglePlacesProvider(apiKey, maxResults)
	p.baseURL = baseURL
	return p
}

// SearchNearby 1つのサブクエリを周辺検索APIの1回の呼び出しに変換する
// ステータスOKは結果をマッピング、ZERO_RESULTSは空リスト、それ以外はエラーを返す
// 同一リクエストの同時実行はsingleflightで1回の呼び出しに束ねる。共有フライトは
// 呼び出し側のコンテキストから切り離して実行し（合流した別の呼び出しを道連れに
// しないため）、各呼び出し側のctxは結果待ちの打ち切りのみに使う
func (g *GooglePlacesProvider) SearchNearby(ctx context.Context, anchor model.Location, radiusMeters int, sub model.SubQuery) ([]*model.Restaurant, error) {
	if !anchor.IsValid() {
		return nil, fmt.Errorf("検索アンカーが不正です: %+v", anchor)
	}
	if radiusMeters <= 0 {
		return nil, fmt.Errorf("検索半径が不正です: %d", radiusMeters)
	}

	reqURL := g.buildURL(anchor, radiusMeters, sub)

	ch := g.group.DoChan(reqURL, func() (interface{}, error) {
		// httpClientのタイムアウトが切り離したリクエストの上限になる
		return g.doSearch(context.WithoutCancel(ctx), reqURL)
	})

	var results []placeResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("検索リクエストが中断されました: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		results = res.Val.([]placeResult)
	}
	if len(results) > g.maxResults {
		results = results[:g.maxResults]
	}

	restaurants := make([]*model.Restaurant, 0, len(results))
	for _, place := range results {
		restaurants = append(restaurants, g.formatRestaurant(place, sub.AttributedCuisineID))
	}
	return restaurants, nil
}

func (g *GooglePlacesProvider) doSearch(ctx context.Context, reqURL string) (interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp placesSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	switch apiResp.Status {
	case "OK":
		return apiResp.Results, nil
	case "ZERO_RESULTS":
		// 結果0件はエラーではない
		return []placeResult{}, nil
	default:
		return nil, fmt.Errorf("Places APIエラー: %s (%s)", apiResp.Status, apiResp.ErrorMessage)
	}
}

func (g *GooglePlacesProvider) buildURL(anchor model.Location, radiusMeters int, sub model.SubQuery) string {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", anchor.Lat, anchor.Lng))
	params.Set("radius", strconv.Itoa(radiusMeters))
	params.Set("type", "restaurant")
	if sub.Keyword != "" {
		params.Set("keyword", sub.Keyword)
	}
	if sub.MaxPriceLevel != nil {
		params.Set("maxprice", strconv.Itoa(*sub.MaxPriceLevel))
	}
	params.Set("key", g.apiKey)

	return fmt.Sprintf("%s/nearbysearch/json?%s", g.baseURL, params.Encode())
}

// formatRestaurant 生のプレイス情報をドメインモデルに変換する
// attributedCuisineIDが指定されていればそのまま付与し、無ければジャンル推定を行う
func (g *GooglePlacesProvider) formatRestaurant(place placeResult, attributedCuisineID string) *model.Restaurant {
	cuisineType := attributedCuisineID
	if cuisineType == "" {
		cuisineType = detectCuisineType(place.Name, place.Types)
	}

	restaurant := &model.Restaurant{
		PlaceID: place.PlaceID,
		Name:    place.Name,
		Location: model.Location{
			Lat: place.Geometry.Location.Lat,
			Lng: place.Geometry.Location.Lng,
		},
		Rating:           place.Rating,
		UserRatingsTotal: place.UserRatingsTotal,
		PriceLevel:       place.PriceLevel,
		CuisineType:      cuisineType,
		IsOpen:           normalizeOpenState(place.OpeningHours),
		RawTypes:         place.Types,
	}

	if place.Vicinity != "" {
		vicinity := place.Vicinity
		restaurant.Address = &vicinity
	}
	if len(place.Photos) > 0 && place.Photos[0].PhotoReference != "" {
		photoURL := g.buildPhotoURL(place.Photos[0].PhotoReference)
		restaurant.PhotoURL = &photoURL
	}

	return restaurant
}

func (g *GooglePlacesProvider) buildPhotoURL(photoReference string) string {
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(photoMaxWidth))
	params.Set("photo_reference", photoReference)
	params.Set("key", g.apiKey)
	return fmt.Sprintf("%s/photo?%s", g.baseURL, params.Encode())
}

// detectCuisineType プレイス情報からジャンルを推定する
// カタログ定義順で (1)プロバイダタグの一致 を全ジャンルに対して確認し、
// 見つからなければ (2)店名へのキーワード部分一致 を確認する。どちらも無ければ空文字列
func detectCuisineType(name string, types []string) string {
	typeSet := make(map[string]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}

	for _, cuisine := range model.AllCuisines() {
		if _, ok := typeSet[cuisine.GoogleType]; ok {
			return cuisine.ID
		}
	}

	lowerName := strings.ToLower(name)
	for _, cuisine := range model.AllCuisines() {
		for _, keyword := range cuisine.Keywords {
			if strings.Contains(lowerName, strings.ToLower(keyword)) {
				return cuisine.ID
			}
		}
	}

	return ""
}

// normalizeOpenState 営業状態を3値に正規化する
// プロバイダが開示していない場合はnil（不明）を返し、falseと混同しない
func normalizeOpenState(hours *openingHours) *bool {
	if hours == nil || hours.OpenNow == nil {
		return nil
	}
	v := *hours.OpenNow
	return &v
}

// --- Google Places APIのレスポンスをパースするための構造体 ---

type placesSearchResponse struct {
	Results      []placeResult `json:"results"`
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type placeResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	Geometry         geometry      `json:"geometry"`
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal int           `json:"user_ratings_total"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	Vicinity         string        `json:"vicinity"`
	Photos           []placePhoto  `json:"photos"`
	OpeningHours     *openingHours `json:"opening_hours,omitempty"`
	Types            []string      `json:"types"`
}

type geometry struct {
	Location geometryLocation `json:"location"`
}

type geometryLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type placePhoto struct {
	PhotoReference string `json:"photo_reference"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}
