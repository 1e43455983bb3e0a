package model

// Viewport 地図表示用のバウンディングボックス（アンカーと全店舗を含む）
type Viewport struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// ResultSet プレゼンテーション層に公開される検索結果一式
// Generationは公開ごとに単調増加し、古い世代の結果は表示してはならない
type ResultSet struct {
	ID          string        `json:"id"`
	Anchor      Location      `json:"anchor"`
	Restaurants []*Restaurant `json:"restaurants"`
	Title       string        `json:"title"`
	Generation  int64         `json:"generation"`
	Bounds      *Viewport     `json:"bounds,omitempty"`
}
