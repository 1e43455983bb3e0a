package model

import "strings"

// SearchMode 検索モードを表す定数
type SearchMode string

const (
	// ModeGuided テキストやジャンル選択がクエリを決定するモード
	ModeGuided SearchMode = "guided"
	// ModeExplore フィルタを無視して周辺レストランを全件検索するモード
	ModeExplore SearchMode = "explore"
)

// FilterState ユーザーの検索意図を保持する状態コンテナ
// 変更はこの型の遷移メソッドのみが行い、下流はSnapshot()のコピーを読む
type FilterState struct {
	Text          string     `json:"text"`
	Cuisines      []string   `json:"cuisines"` // 選択順を保持する重複なしリスト
	OpenNowOnly   bool       `json:"open_now_only"`
	MaxPriceLevel *int       `json:"max_price_level,omitempty"` // 1〜4、nilは予算上限なし
	Mode          SearchMode `json:"mode"`
}

// NewFilterState 初期状態のフィルタを生成する
func NewFilterState() *FilterState {
	return &FilterState{
		Cuisines: []string{},
		Mode:     ModeGuided,
	}
}

// SetText 検索テキストを設定する（前後の空白は除去、空文字列はクリア扱い）
func (f *FilterState) SetText(s string) {
	f.Text = strings.TrimSpace(s)
}

// HasText 検索テキストが設定されているかチェック
func (f *FilterState) HasText() bool {
	return f.Text != ""
}

// ClearText 検索テキストをクリアする
func (f *FilterState) ClearText() {
	f.Text = ""
}

// ToggleCuisine ジャンル選択を反転する（2回呼ぶと元の状態に戻る）
func (f *FilterState) ToggleCuisine(id string) {
	if f.HasCuisine(id) {
		f.DeselectCuisine(id)
	} else {
		f.SelectCuisine(id)
	}
}

// SelectCuisine ジャンルを選択する（選択済みの場合は何もしない）
func (f *FilterState) SelectCuisine(id string) {
	if f.HasCuisine(id) {
		return
	}
	f.Cuisines = append(f.Cuisines, id)
}

// DeselectCuisine ジャンルの選択を解除する
func (f *FilterState) DeselectCuisine(id string) {
	for i, c := range f.Cuisines {
		if c == id {
			f.Cuisines = append(f.Cuisines[:i], f.Cuisines[i+1:]...)
			return
		}
	}
}

// ClearCuisines 全てのジャンル選択を解除する
func (f *FilterState) ClearCuisines() {
	f.Cuisines = []string{}
}

// HasCuisine 指定ジャンルが選択されているかチェック
func (f *FilterState) HasCuisine(id string) bool {
	for _, c := range f.Cuisines {
		if c == id {
			return true
		}
	}
	return false
}

// HasCuisines ジャンルが1つ以上選択されているかチェック
func (f *FilterState) HasCuisines() bool {
	return len(f.Cuisines) > 0
}

// SetOpenNow 営業中フィルタを設定する
func (f *FilterState) SetOpenNow(v bool) {
	f.OpenNowOnly = v
}

// SetMaxPrice 予算上限を設定する（nilで上限なし）
func (f *FilterState) SetMaxPrice(level *int) {
	if level == nil {
		f.MaxPriceLevel = nil
		return
	}
	v := *level
	f.MaxPriceLevel = &v
}

// SetMode 検索モードを設定する
func (f *FilterState) SetMode(m SearchMode) {
	f.Mode = m
}

// ToggleMode 検索モードを切り替えて新しいモードを返す
func (f *FilterState) ToggleMode() SearchMode {
	if f.Mode == ModeExplore {
		f.Mode = ModeGuided
	} else {
		f.Mode = ModeExplore
	}
	return f.Mode
}

// Snapshot プランナーに渡すイミュータブルなコピーを取得する
func (f *FilterState) Snapshot() FilterState {
	snapshot := FilterState{
		Text:        f.Text,
		Cuisines:    make([]string, len(f.Cuisines)),
		OpenNowOnly: f.OpenNowOnly,
		Mode:        f.Mode,
	}
	copy(snapshot.Cuisines, f.Cuisines)
	if f.MaxPriceLevel != nil {
		v := *f.MaxPriceLevel
		snapshot.MaxPriceLevel = &v
	}
	return snapshot
}
