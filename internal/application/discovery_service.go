package application

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"RestaurantFinder-App/internal/domain/model"
	"RestaurantFinder-App/internal/domain/repository"
	"RestaurantFinder-App/internal/domain/service"
	"RestaurantFinder-App/internal/usecase"
)

// ViewState プレゼンテーション層の画面状態
type ViewState string

const (
	ViewLanding ViewState = "landing"
	ViewResults ViewState = "results"
)

// ErrNoRestaurantsToPick Pick One対象の店舗が無い場合のエラー
var ErrNoRestaurantsToPick = errors.New("no restaurants to pick from")

// Surprise Meで2ジャンル選ぶ確率（1ジャンルは0.7）
const surpriseTwoCuisinesProbability = 0.3

// ユーザー向けの文言（結果タイトル同様、プレゼンテーション層にロジックを持たせない）
const (
	msgSearchFailed     = "Failed to search for restaurants. Please try again."
	msgLocationFallback = "Unable to get your location. Using default location instead."
	titleNoFilters      = "No Filters Selected"
)

// DiscoveryState プレゼンテーション層へ公開される観測可能な状態のスナップショット
// MapZoomは地図レンダリングの初期ズーム（起動時設定、実行中は不変）
type DiscoveryState struct {
	View      ViewState         `json:"view"`
	IsLoading bool              `json:"is_loading"`
	Error     string            `json:"error,omitempty"`
	Notice    string            `json:"notice,omitempty"`
	Filter    model.FilterState `json:"filter"`
	ResultSet *model.ResultSet  `json:"result_set,omitempty"`
	MapZoom   int               `json:"map_zoom"`
}

// DiscoveryConfig DiscoveryServiceの動作設定
type DiscoveryConfig struct {
	DefaultAnchor   model.Location // 位置情報取得失敗時のフォールバック地点
	LocationTimeout time.Duration
	MapZoom         int
}

// DiscoveryService 検索アンカーと世代カウンターの唯一の所有者
// 全てのユーザーアクションはここを経由し、パイプライン実行と結果公開を調停する
//
// 世代による上書きルール: 各実行は開始時の世代Gを保持し、完了時にGが最新世代と
// 一致する場合のみ結果を公開する。地図連打で複数の実行が走っても、最後の意図だけが
// プレゼンテーションに届く
type DiscoveryService struct {
	mu sync.Mutex

	filter     *model.FilterState
	anchor     *model.Location
	generation int64
	isLoading  bool
	view       ViewState
	lastError  string
	notice     string
	resultSet  *model.ResultSet
	cancelRun  context.CancelFunc

	planner       *service.QueryPlanner
	searchUseCase usecase.RestaurantSearchUseCase
	locationRepo  repository.LocationRepository
	config        DiscoveryConfig
	rng           *rand.Rand
}

// NewDiscoveryService 新しいDiscoveryServiceインスタンスを作成
// rngにnilを渡すと時刻シードの乱数源を使用する（テストではシード固定のものを注入する）
func NewDiscoveryService(
	planner *service.QueryPlanner,
	searchUseCase usecase.RestaurantSearchUseCase,
	locationRepo repository.LocationRepository,
	config DiscoveryConfig,
	rng *rand.Rand,
) *DiscoveryService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &DiscoveryService{
		filter:        model.NewFilterState(),
		view:          ViewLanding,
		planner:       planner,
		searchUseCase: searchUseCase,
		locationRepo:  locationRepo,
		config:        config,
		rng:           rng,
	}
}

// State 現在の観測可能な状態のスナップショットを取得する
func (s *DiscoveryService) State() DiscoveryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DiscoveryState{
		View:      s.view,
		IsLoading: s.isLoading,
		Error:     s.lastError,
		Notice:    s.notice,
		Filter:    s.filter.Snapshot(),
		ResultSet: s.resultSet,
		MapZoom:   s.config.MapZoom,
	}
}

// CurrentAnchor 現在の検索アンカーを取得する（未設定の場合はnil）
func (s *DiscoveryService) CurrentAnchor() *model.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.anchor == nil {
		return nil
	}
	anchor := *s.anchor
	return &anchor
}

// --- フィルタ操作（プレゼンテーション層のアクションに対応） ---

// SetText 検索テキストを設定する
func (s *DiscoveryService) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SetText(text)
}

// ToggleCuisine ジャンル選択を反転する
func (s *DiscoveryService) ToggleCuisine(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.ToggleCuisine(id)
}

// SetOpenNow 営業中フィルタを設定する
func (s *DiscoveryService) SetOpenNow(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SetOpenNow(v)
}

// SetMaxPrice 予算上限を設定する
func (s *DiscoveryService) SetMaxPrice(level *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SetMaxPrice(level)
}

// ApplySearchFilters 検索フォームのフィルタ一式をまとめて適用する
func (s *DiscoveryService) ApplySearchFilters(text string, cuisines []string, openNow bool, maxPrice *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.SetText(text)
	s.filter.ClearCuisines()
	for _, id := range cuisines {
		s.filter.SelectCuisine(id)
	}
	s.filter.SetOpenNow(openNow)
	s.filter.SetMaxPrice(maxPrice)
}

// --- パイプライン起動アクション ---

// Search 現在のフィルタでガイドモード検索を開始する
func (s *DiscoveryService) Search(ctx context.Context) {
	s.mu.Lock()
	s.filter.SetMode(model.ModeGuided)
	// 位置情報の取得も実行の一部なので、この時点からロード中にする
	s.isLoading = true
	s.mu.Unlock()

	s.ensureAnchor(ctx)
	s.startRun()
}

// Explore フィルタをクリアして周辺レストランの全件検索を開始する
func (s *DiscoveryService) Explore(ctx context.Context) {
	s.mu.Lock()
	s.filter.ClearText()
	s.filter.ClearCuisines()
	s.filter.SetMaxPrice(nil)
	s.filter.SetMode(model.ModeExplore)
	s.isLoading = true
	s.mu.Unlock()

	s.ensureAnchor(ctx)
	s.startRun()
}

// Surprise ランダムに1〜2ジャンルを選択して検索を開始する
// 確率0.7で1ジャンル、0.3で2ジャンルをカタログから重複なしで一様抽出する
// テキスト・予算上限・営業中フィルタはリセットする（検索条件を白紙から組み立てる）
func (s *DiscoveryService) Surprise(ctx context.Context) []string {
	catalog := model.AllCuisines()

	s.mu.Lock()
	count := 1
	if s.rng.Float64() < surpriseTwoCuisinesProbability {
		count = 2
	}
	perm := s.rng.Perm(len(catalog))

	selected := make([]string, 0, count)
	for _, idx := range perm[:count] {
		selected = append(selected, catalog[idx].ID)
	}

	s.filter.ClearText()
	s.filter.ClearCuisines()
	for _, id := range selected {
		s.filter.SelectCuisine(id)
	}
	s.filter.SetMaxPrice(nil)
	s.filter.SetOpenNow(false)
	s.filter.SetMode(model.ModeGuided)
	s.isLoading = true
	s.mu.Unlock()

	log.Printf("🎲 Surprise Me: %v を選択", selected)

	s.ensureAnchor(ctx)
	s.startRun()
	return selected
}

// ToggleMode 検索モードを切り替えて再検索する
// ガイドモードに戻った際にテキストもジャンル選択も無い場合は、
// 問い合わせを行わず空の結果セットを公開する
func (s *DiscoveryService) ToggleMode(ctx context.Context) model.SearchMode {
	s.mu.Lock()
	newMode := s.filter.ToggleMode()
	needsEmptyPublish := newMode == model.ModeGuided && !s.filter.HasText() && !s.filter.HasCuisines()
	if !needsEmptyPublish {
		s.isLoading = true
	}
	s.mu.Unlock()

	if needsEmptyPublish {
		s.publishEmptyResultSet(titleNoFilters)
		return newMode
	}

	s.ensureAnchor(ctx)
	s.startRun()
	return newMode
}

// ClickMap 地図クリックで検索アンカーを移動し、現在のフィルタで再検索する
func (s *DiscoveryService) ClickMap(loc model.Location) {
	s.SetAnchor(loc)
}

// SetAnchor 検索アンカーを更新し、新しいパイプライン実行を開始する
func (s *DiscoveryService) SetAnchor(loc model.Location) {
	s.mu.Lock()
	anchor := loc
	s.anchor = &anchor
	s.mu.Unlock()

	s.startRun()
}

// Rerun 現在のアンカーとフィルタ状態で再検索する
func (s *DiscoveryService) Rerun() {
	s.startRun()
}

// Back ランディング画面へ戻る（結果セットと検索テキストをクリア）
func (s *DiscoveryService) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = ViewLanding
	s.resultSet = nil
	s.lastError = ""
	s.filter.ClearText()
}

// PickOne 現在の結果リストから一様ランダムに1店舗を選ぶ
func (s *DiscoveryService) PickOne() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resultSet == nil || len(s.resultSet.Restaurants) == 0 {
		return "", ErrNoRestaurantsToPick
	}
	idx := s.rng.Intn(len(s.resultSet.Restaurants))
	return s.resultSet.Restaurants[idx].PlaceID, nil
}

// DismissError エラーモーダルの閉じる操作（エラーをクリア）
func (s *DiscoveryService) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

// DismissNotice 通知バナーの閉じる操作（通知をクリア）
func (s *DiscoveryService) DismissNotice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = ""
}

// --- 内部処理 ---

// ensureAnchor アンカー未設定の場合に位置情報プロバイダーから現在地を取得する
// タイムアウトや権限拒否の場合はデフォルト地点にフォールバックし、通知を積む（実行は失敗させない）
func (s *DiscoveryService) ensureAnchor(ctx context.Context) {
	s.mu.Lock()
	if s.anchor != nil {
		s.mu.Unlock()
		return
	}
	timeout := s.config.LocationTimeout
	s.mu.Unlock()

	locCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	loc, err := s.locationRepo.CurrentLocation(locCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || !loc.IsValid() {
		log.Printf("⚠️ 位置情報の取得に失敗、デフォルト地点を使用: %v", err)
		fallback := s.config.DefaultAnchor
		s.anchor = &fallback
		s.notice = msgLocationFallback
		return
	}
	anchor := loc
	s.anchor = &anchor
}

// startRun 世代をインクリメントして新しいパイプライン実行を開始する
// 前の実行が残っていればキャンセルする（公開されないだけでなく、可能なら中断する）
func (s *DiscoveryService) startRun() {
	s.mu.Lock()
	if s.anchor == nil {
		// アンカー無しでは実行できない（ensureAnchorが必ずフォールバックを設定するため通常は到達しない）
		s.mu.Unlock()
		return
	}

	s.generation++
	gen := s.generation
	s.isLoading = true
	s.lastError = ""
	s.view = ViewResults
	snapshot := s.filter.Snapshot()
	anchor := *s.anchor

	if s.cancelRun != nil {
		s.cancelRun()
	}
	runCtx, cancel := context.WithCancel(context.Background())
	s.cancelRun = cancel
	s.mu.Unlock()

	plan := s.planner.BuildPlan(snapshot, anchor)
	go s.executeRun(runCtx, plan, gen)
}

// executeRun パイプラインを実行し、世代が一致する場合のみ結果を公開する
func (s *DiscoveryService) executeRun(ctx context.Context, plan *model.QueryPlan, gen int64) {
	resultSet, err := s.searchUseCase.ExecutePlan(ctx, plan, gen)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// 古い世代の結果は黙って破棄する（ロード中表示は最新の実行が解除する）
		log.Printf("⏭️ 世代%d の結果を破棄 (最新: %d)", gen, s.generation)
		return
	}

	s.isLoading = false
	if err != nil {
		// 全サブクエリ失敗時は前の結果を残さずクリアする
		s.resultSet = nil
		s.lastError = msgSearchFailed
		return
	}
	s.resultSet = resultSet
}

// publishEmptyResultSet 問い合わせを行わずに空の結果セットを公開する
func (s *DiscoveryService) publishEmptyResultSet(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cancelRun != nil {
		s.cancelRun()
		s.cancelRun = nil
	}

	var anchor model.Location
	if s.anchor != nil {
		anchor = *s.anchor
	}
	s.isLoading = false
	s.lastError = ""
	s.view = ViewResults
	s.resultSet = &model.ResultSet{
		ID:          uuid.New().String(),
		Anchor:      anchor,
		Restaurants: []*model.Restaurant{},
		Title:       title,
		Generation:  s.generation,
	}
}
