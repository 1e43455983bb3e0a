package model

// RankPolicy 結果リストの並べ替えポリシー
type RankPolicy string

const (
	// RankDistanceAsc 距離の近い順
	RankDistanceAsc RankPolicy = "distance_asc"
	// RankRatingDescThenDistanceAsc 評価の高い順、評価差0.1以内は距離の近い順
	RankRatingDescThenDistanceAsc RankPolicy = "rating_desc_then_distance_asc"
)

// SubQuery プレイスディレクトリへの1回の問い合わせ
type SubQuery struct {
	Keyword             string `json:"keyword,omitempty"`
	TagHint             string `json:"tag_hint,omitempty"` // プロバイダ固有のジャンルタグ（推定用ヒント）
	MaxPriceLevel       *int   `json:"max_price_level,omitempty"`
	AttributedCuisineID string `json:"attributed_cuisine_id,omitempty"` // このサブクエリで取得した店舗に事前付与するジャンルID
}

// QueryPlan フィルタ状態とアンカーから構築される検索計画（1回の実行で使い捨て）
// SubQueriesの並び順が重複排除時の優先順位になる
type QueryPlan struct {
	Anchor       Location   `json:"anchor"`
	RadiusMeters int        `json:"radius_meters"`
	SubQueries   []SubQuery `json:"sub_queries"`
	RankPolicy   RankPolicy `json:"rank_policy"`
	Title        string     `json:"title"`
	OpenNowOnly  bool       `json:"open_now_only"`
}
