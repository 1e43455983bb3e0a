package model

// Cuisine カタログに定義される料理ジャンル（イミュータブル）
// EmojiとColorはフロントエンド表示用のカタログデータ
type Cuisine struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Emoji      string   `json:"emoji"`
	Color      string   `json:"color"`
	GoogleType string   `json:"google_type"`
	Keywords   []string `json:"keywords"`
	Popular    bool     `json:"popular"`
}

// cuisineCatalog アプリ全体で共有する静的なジャンル定義
// 定義順がジャンル推定のタイブレーク順序になるため、並び替え禁止
var cuisineCatalog = []Cuisine{
	{
		ID:         "italian",
		Name:       "Italian",
		Emoji:      "🍝",
		Color:      "#e74c3c",
		GoogleType: "italian_restaurant",
		Keywords:   []string{"pizza", "pasta", "italian"},
		Popular:    true,
	},
	{
		ID:         "chinese",
		Name:       "Chinese",
		Emoji:      "🥢",
		Color:      "#f39c12",
		GoogleType: "chinese_restaurant",
		Keywords:   []string{"chinese", "dim sum"},
		Popular:    true,
	},
	{
		ID:         "japanese",
		Name:       "Japanese",
		Emoji:      "🍣",
		Color:      "#e67e22",
		GoogleType: "japanese_restaurant",
		Keywords:   []string{"sushi", "ramen", "japanese"},
		Popular:    true,
	},
	{
		ID:         "mexican",
		Name:       "Mexican",
		Emoji:      "🌮",
		Color:      "#27ae60",
		GoogleType: "mexican_restaurant",
		Keywords:   []string{"mexican", "tacos", "burrito"},
		Popular:    true,
	},
	{
		ID:         "indian",
		Name:       "Indian",
		Emoji:      "🍛",
		Color:      "#d35400",
		GoogleType: "indian_restaurant",
		Keywords:   []string{"indian", "curry"},
		Popular:    true,
	},
	{
		ID:         "thai",
		Name:       "Thai",
		Emoji:      "🍜",
		Color:      "#16a085",
		GoogleType: "thai_restaurant",
		Keywords:   []string{"thai", "pad thai"},
		Popular:    false,
	},
	{
		ID:         "american",
		Name:       "American",
		Emoji:      "🍔",
		Color:      "#3498db",
		GoogleType: "american_restaurant",
		Keywords:   []string{"burger", "american", "bbq"},
		Popular:    true,
	},
	{
		ID:         "mediterranean",
		Name:       "Mediterranean",
		Emoji:      "🥙",
		Color:      "#9b59b6",
		GoogleType: "mediterranean_restaurant",
		Keywords:   []string{"mediterranean", "greek", "falafel"},
		Popular:    false,
	},
	{
		ID:         "korean",
		Name:       "Korean",
		Emoji:      "🍲",
		Color:      "#e91e63",
		GoogleType: "korean_restaurant",
		Keywords:   []string{"korean", "bbq", "kimchi"},
		Popular:    false,
	},
	{
		ID:         "french",
		Name:       "French",
		Emoji:      "🥐",
		Color:      "#8e44ad",
		GoogleType: "french_restaurant",
		Keywords:   []string{"french", "bistro"},
		Popular:    false,
	},
	{
		ID:         "seafood",
		Name:       "Seafood",
		Emoji:      "🦞",
		Color:      "#1abc9c",
		GoogleType: "seafood_restaurant",
		Keywords:   []string{"seafood", "fish"},
		Popular:    false,
	},
	{
		ID:         "vietnamese",
		Name:       "Vietnamese",
		Emoji:      "🍲",
		Color:      "#2ecc71",
		GoogleType: "vietnamese_restaurant",
		Keywords:   []string{"vietnamese", "pho"},
		Popular:    false,
	},
}

// AllCuisines 全ジャンルの一覧を定義順で取得する
func AllCuisines() []Cuisine {
	result := make([]Cuisine, len(cuisineCatalog))
	copy(result, cuisineCatalog)
	return result
}

// PopularCuisines 人気フラグ付きジャンルの一覧を定義順で取得する
func PopularCuisines() []Cuisine {
	result := make([]Cuisine, 0)
	for _, c := range cuisineCatalog {
		if c.Popular {
			result = append(result, c)
		}
	}
	return result
}

// CuisineByID 指定IDのジャンルを取得する（存在しない場合はnil）
func CuisineByID(id string) *Cuisine {
	for _, c := range cuisineCatalog {
		if c.ID == id {
			found := c
			return &found
		}
	}
	return nil
}
