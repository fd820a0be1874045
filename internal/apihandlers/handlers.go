package apihandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"feedscout/internal/app"
	"feedscout/internal/models"
	"feedscout/internal/tools"

	"github.com/gin-gonic/gin"
)

// maxArgsBytes bounds a tool call's JSON argument body.
const maxArgsBytes = 1 << 20

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(a *app.App) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), RequestLogger(), Recovery())
	RegisterRoutes(router, NewAPIHandler(a))
	return router
}

func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	router.GET("/health", h.HealthHandler)

	v1 := router.Group("/api/v1")
	{
		toolGroup := v1.Group("/tools")
		{
			toolGroup.GET("", h.ListToolsHandler)
			toolGroup.POST("/:name", h.CallToolHandler)
		}

		v1.GET("/categories", h.ListCategoriesHandler)
		v1.GET("/categories/:id/feeds", h.ListCategoryFeedsHandler)
		v1.GET("/feeds", h.ListFeedsHandler)
		v1.GET("/entries/:id", h.GetEntryHandler)
	}
}

func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *APIHandler) ListToolsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.App.Tools.List()})
}

// CallToolHandler runs a tool with the request body as its arguments. Tool
// level failures are reported in the result with is_error set and a 200
// status; only transport problems use HTTP error codes.
func (h *APIHandler) CallToolHandler(c *gin.Context) {
	name := c.Param("name")
	if !h.App.Tools.Has(name) {
		NotFound(c, fmt.Sprintf("no tool named %q", name))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgsBytes+1))
	if err != nil {
		BadRequest(c, "failed to read request body: "+err.Error())
		return
	}
	if len(body) > maxArgsBytes {
		JSONError(c, http.StatusRequestEntityTooLarge, "too_large", "arguments exceed 1MB")
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		BadRequest(c, "request body must be a JSON object")
		return
	}

	res, err := h.App.Tools.Call(c.Request.Context(), name, body)
	if errors.Is(err, tools.ErrUnknownTool) {
		NotFound(c, fmt.Sprintf("no tool named %q", name))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *APIHandler) ListCategoriesHandler(c *gin.Context) {
	counts, _ := strconv.ParseBool(c.DefaultQuery("counts", "false"))
	cats, err := h.App.BrowseService.ListCategories(c.Request.Context(), counts)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

func (h *APIHandler) ListFeedsHandler(c *gin.Context) {
	h.respondWithFeeds(c, 0)
}

func (h *APIHandler) ListCategoryFeedsHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	h.respondWithFeeds(c, id)
}

func (h *APIHandler) respondWithFeeds(c *gin.Context, categoryID int64) {
	feeds, err := h.App.BrowseService.ListFeeds(c.Request.Context(), categoryID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": feeds})
}

func (h *APIHandler) GetEntryHandler(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	entry, err := h.App.BrowseService.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entry})
}

// parseIDParam reads the positive integer :id path parameter.
func parseIDParam(c *gin.Context) (int64, error) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return id, nil
}

func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, models.ErrValidation):
		BadRequest(c, err.Error())
	case errors.Is(err, models.ErrFetchFailed):
		JSONError(c, http.StatusBadGateway, "fetch_failed", err.Error())
	default:
		Internal(c, err.Error())
	}
}
