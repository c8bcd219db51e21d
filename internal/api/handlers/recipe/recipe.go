package recipe

import (
	"net/http"
	"strings"

	recipeService "recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/pkg/common"
	"recipe-viewer/internal/web/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RenderRequest 以一個或多個倍率呈現食譜
type RenderRequest struct {
	RecipeID string    `json:"recipe_id" binding:"required"`
	Scale    *float64  `json:"scale,omitempty"`
	Scales   []float64 `json:"scales,omitempty"`
}

// RenderResponse 呈現結果，順序與請求的倍率一致
type RenderResponse struct {
	RecipeID string                      `json:"recipe_id"`
	Views    []*recipeService.RecipeView `json:"views"`
}

// ScalesResponse 可選倍率
type ScalesResponse struct {
	Presets []float64 `json:"presets"`
	Default float64   `json:"default"`
}

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
	title   string
	debug   bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(service *recipeService.Service, title string, debug bool) *Handler {
	return &Handler{
		service: service,
		title:   title,
		debug:   debug,
	}
}

// HandleBrowsePage 分類瀏覽頁面
func (h *Handler) HandleBrowsePage(c *gin.Context) {
	requestID := requestIDOf(c)

	result, err := h.service.Browse(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeHTMLError(c, requestID, err)
		return
	}

	page, err := templates.RenderIndexPage(templates.NewIndexPage(h.title, result))
	if err != nil {
		h.writeHTMLError(c, requestID, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// HandleRecipePage 食譜頁面
func (h *Handler) HandleRecipePage(c *gin.Context) {
	requestID := requestIDOf(c)
	recipeID := strings.TrimSpace(c.Query("id"))

	common.LogDebug("開始處理食譜頁面請求",
		zap.String("request_id", requestID),
		zap.String("recipe_id", recipeID),
	)

	scale, err := h.service.ParseScale(c.Query("scale"))
	if err != nil {
		h.writeHTMLError(c, requestID, err)
		return
	}

	view, err := h.service.View(c.Request.Context(), recipeID, scale)
	if err != nil {
		h.writeHTMLError(c, requestID, err)
		return
	}

	page, err := templates.RenderRecipePage(templates.NewRecipePage(h.title, view, h.service.Presets()))
	if err != nil {
		h.writeHTMLError(c, requestID, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, page)
}

// HandleListRecipes 返回依分類分組的食譜索引
func (h *Handler) HandleListRecipes(c *gin.Context) {
	requestID := requestIDOf(c)

	result, err := h.service.Browse(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeJSONError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleGetRecipe 以查詢字串中的倍率返回食譜
func (h *Handler) HandleGetRecipe(c *gin.Context) {
	requestID := requestIDOf(c)

	scale, err := h.service.ParseScale(c.Query("scale"))
	if err != nil {
		h.writeJSONError(c, requestID, err)
		return
	}

	view, err := h.service.View(c.Request.Context(), c.Param("id"), scale)
	if err != nil {
		h.writeJSONError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// HandleListIngredients 返回食材目錄
func (h *Handler) HandleListIngredients(c *gin.Context) {
	requestID := requestIDOf(c)

	items, err := h.service.Ingredients(c.Request.Context())
	if err != nil {
		h.writeJSONError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

// HandleListScales 返回可選倍率
func (h *Handler) HandleListScales(c *gin.Context) {
	c.JSON(http.StatusOK, ScalesResponse{
		Presets: h.service.Presets(),
		Default: h.service.DefaultScale(),
	})
}

// HandleRender 解析食譜一次並以請求的倍率分別呈現
func (h *Handler) HandleRender(c *gin.Context) {
	requestID := requestIDOf(c)

	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeJSONError(c, requestID, common.NewError(common.ErrCodeInvalidRequest, "Invalid request format", http.StatusBadRequest, err))
		return
	}

	scales := req.Scales
	if req.Scale != nil {
		scales = append([]float64{*req.Scale}, scales...)
	}

	common.LogInfo("開始處理食譜呈現請求",
		zap.String("request_id", requestID),
		zap.String("recipe_id", req.RecipeID),
		zap.Float64s("scales", scales),
	)

	views, err := h.service.Views(c.Request.Context(), req.RecipeID, scales)
	if err != nil {
		h.writeJSONError(c, requestID, err)
		return
	}
	c.JSON(http.StatusOK, RenderResponse{RecipeID: req.RecipeID, Views: views})
}
