package model

// Restaurant パイプラインが出力するレストラン情報
// アダプターが生のプレイス情報から構築し、マージャーが距離情報を付与する
type Restaurant struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	Location         Location `json:"location"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	PriceLevel       *int     `json:"price_level,omitempty"`
	Address          *string  `json:"address,omitempty"`
	PhotoURL         *string  `json:"photo_url,omitempty"`
	CuisineType      string   `json:"cuisine_type,omitempty"` // Cuisine.ID、推定不能な場合は空文字列
	IsOpen           *bool    `json:"is_open,omitempty"`      // nil = 営業状態不明（falseと混同しないこと）
	RawTypes         []string `json:"types"`
	DistanceMeters   float64  `json:"distance_meters"`
	DistanceLabel    string   `json:"distance_label"`
}

// RatingOrZero 評価値を取得する（未評価は0として扱う）
func (r *Restaurant) RatingOrZero() float64 {
	if r.Rating == nil {
		return 0
	}
	return *r.Rating
}

// IsOpenNow 営業中と確認できている場合のみtrueを返す（不明はfalse）
func (r *Restaurant) IsOpenNow() bool {
	return r.IsOpen != nil && *r.IsOpen
}
