package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"RestaurantFinder-App/internal/application"
	"RestaurantFinder-App/internal/domain/model"
)

// DiscoveryHandler レストラン検索APIのハンドラー
// フィルタ状態の変更とパイプライン起動をDiscoveryServiceに委譲する薄い層
type DiscoveryHandler struct {
	discoveryService *application.DiscoveryService
}

// NewDiscoveryHandler 新しいDiscoveryHandlerインスタンスを作成
func NewDiscoveryHandler(discoveryService *application.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{discoveryService: discoveryService}
}

// RegisterRoutes ルーティングを登録する
func (h *DiscoveryHandler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/cuisines", h.GetCuisines)
		api.GET("/state", h.GetState)
		api.POST("/search", h.PostSearch)
		api.POST("/explore", h.PostExplore)
		api.POST("/surprise", h.PostSurprise)
		api.POST("/pick-one", h.PostPickOne)
		api.POST("/back", h.PostBack)
		api.POST("/mode/toggle", h.PostToggleMode)
		api.POST("/map-click", h.PostMapClick)
		api.PATCH("/filters", h.PatchFilters)
		api.POST("/error/dismiss", h.PostDismissError)
		api.POST("/notice/dismiss", h.PostDismissNotice)
	}
}

// GetCuisines ジャンルカタログを取得するエンドポイント
// GET /api/cuisines
func (h *DiscoveryHandler) GetCuisines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cuisines": model.AllCuisines(),
		"popular":  model.PopularCuisines(),
	})
}

// GetState 観測可能な状態を取得するエンドポイント
// GET /api/state
func (h *DiscoveryHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// SearchRequest 検索リクエストのボディ
type SearchRequest struct {
	Text     string   `json:"text"`
	Cuisines []string `json:"cuisines"`
	OpenNow  bool     `json:"open_now"`
	MaxPrice *int     `json:"max_price"`
}

// PostSearch フィルタ一式を適用してガイドモード検索を開始するエンドポイント
// POST /api/search
func (h *DiscoveryHandler) PostSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if err := h.validateSearchRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	h.discoveryService.ApplySearchFilters(req.Text, req.Cuisines, req.OpenNow, req.MaxPrice)
	h.discoveryService.Search(c.Request.Context())
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// validateSearchRequest 検索リクエストの詳細バリデーションを行う
func (h *DiscoveryHandler) validateSearchRequest(req *SearchRequest) error {
	if req.MaxPrice != nil && (*req.MaxPrice < 1 || *req.MaxPrice > 4) {
		return &ValidationError{Field: "max_price", Message: "予算上限は1から4の範囲で指定してください"}
	}
	for _, id := range req.Cuisines {
		if model.CuisineByID(id) == nil {
			return &ValidationError{Field: "cuisines", Message: "不明なジャンルIDです: " + id}
		}
	}
	return nil
}

// PostExplore フィルタを無視した全件検索を開始するエンドポイント
// POST /api/explore
func (h *DiscoveryHandler) PostExplore(c *gin.Context) {
	h.discoveryService.Explore(c.Request.Context())
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// PostSurprise ランダムなジャンル選択で検索を開始するエンドポイント
// POST /api/surprise
func (h *DiscoveryHandler) PostSurprise(c *gin.Context) {
	selected := h.discoveryService.Surprise(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"selected_cuisines": selected,
		"state":             h.discoveryService.State(),
	})
}

// PostPickOne 現在の結果からランダムに1店舗を選ぶエンドポイント
// POST /api/pick-one
func (h *DiscoveryHandler) PostPickOne(c *gin.Context) {
	placeID, err := h.discoveryService.PickOne()
	if err != nil {
		if errors.Is(err, application.ErrNoRestaurantsToPick) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "選択できるレストランがありません",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "店舗の選択に失敗しました",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"place_id": placeID})
}

// PostBack ランディング画面へ戻るエンドポイント
// POST /api/back
func (h *DiscoveryHandler) PostBack(c *gin.Context) {
	h.discoveryService.Back()
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// PostToggleMode 検索モードを切り替えるエンドポイント
// POST /api/mode/toggle
func (h *DiscoveryHandler) PostToggleMode(c *gin.Context) {
	newMode := h.discoveryService.ToggleMode(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"mode":  newMode,
		"state": h.discoveryService.State(),
	})
}

// MapClickRequest 地図クリックのリクエストボディ
type MapClickRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// PostMapClick 地図クリックで検索アンカーを移動するエンドポイント
// POST /api/map-click
func (h *DiscoveryHandler) PostMapClick(c *gin.Context) {
	var req MapClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	loc := model.Location{Lat: *req.Lat, Lng: *req.Lng}
	if !loc.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": "緯度は-90から90、経度は-180から180の範囲で指定してください",
		})
		return
	}

	h.discoveryService.ClickMap(loc)
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// FilterPatchRequest フィルタの部分更新リクエスト（指定したフィールドのみ適用）
type FilterPatchRequest struct {
	Text          *string `json:"text,omitempty"`
	ToggleCuisine *string `json:"toggle_cuisine,omitempty"`
	OpenNow       *bool   `json:"open_now,omitempty"`
	MaxPrice      *int    `json:"max_price,omitempty"`
	ClearMaxPrice bool    `json:"clear_max_price,omitempty"`
}

// PatchFilters フィルタ状態を部分更新するエンドポイント（パイプラインは起動しない）
// PATCH /api/filters
func (h *DiscoveryHandler) PatchFilters(c *gin.Context) {
	var req FilterPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	if req.ToggleCuisine != nil && model.CuisineByID(*req.ToggleCuisine) == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": "不明なジャンルIDです: " + *req.ToggleCuisine,
		})
		return
	}
	if req.MaxPrice != nil && (*req.MaxPrice < 1 || *req.MaxPrice > 4) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": "予算上限は1から4の範囲で指定してください",
		})
		return
	}

	if req.Text != nil {
		h.discoveryService.SetText(*req.Text)
	}
	if req.ToggleCuisine != nil {
		h.discoveryService.ToggleCuisine(*req.ToggleCuisine)
	}
	if req.OpenNow != nil {
		h.discoveryService.SetOpenNow(*req.OpenNow)
	}
	if req.ClearMaxPrice {
		h.discoveryService.SetMaxPrice(nil)
	} else if req.MaxPrice != nil {
		h.discoveryService.SetMaxPrice(req.MaxPrice)
	}

	c.JSON(http.StatusOK, h.discoveryService.State())
}

// PostDismissError エラーモーダルを閉じるエンドポイント
// POST /api/error/dismiss
func (h *DiscoveryHandler) PostDismissError(c *gin.Context) {
	h.discoveryService.DismissError()
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// PostDismissNotice 通知バナーを閉じるエンドポイント
// POST /api/notice/dismiss
func (h *DiscoveryHandler) PostDismissNotice(c *gin.Context) {
	h.discoveryService.DismissNotice()
	c.JSON(http.StatusOK, h.discoveryService.State())
}

// ValidationError バリデーションエラーを表す
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
