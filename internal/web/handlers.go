package web

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"menuscan/internal/costs"
	"menuscan/internal/extraction"
	"menuscan/internal/menuitem"
	"menuscan/internal/restaurant"
	"menuscan/internal/review"
	"menuscan/internal/stats"
	"menuscan/internal/todo"
	"menuscan/internal/upload"
)

// Handler exposes the page's operations over a local HTTP surface. Every
// handler catches its own failures and answers with an inline error; the
// remote backend stays the sole source of truth.
type Handler struct {
	uploads     *upload.Service
	history     *extraction.Service
	extractions extraction.Repository
	validator   review.Validator
	menu        *menuitem.Service
	restaurants *restaurant.Service
	stats       *stats.Service
	costs       *costs.Service
	todos       *todo.Service
}

func NewHandler(
	uploads *upload.Service,
	history *extraction.Service,
	extractions extraction.Repository,
	validator review.Validator,
	menu *menuitem.Service,
	restaurants *restaurant.Service,
	statsService *stats.Service,
	costsService *costs.Service,
	todos *todo.Service,
) *Handler {
	return &Handler{
		uploads:     uploads,
		history:     history,
		extractions: extractions,
		validator:   validator,
		menu:        menu,
		restaurants: restaurants,
		stats:       statsService,
		costs:       costsService,
		todos:       todos,
	}
}

// --------------------------------------------------
// Upload pipeline
// --------------------------------------------------

func (h *Handler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	defer file.Close()

	restaurantID := c.PostForm("restaurant")
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a restaurant."})
		return
	}

	// The orchestrator hashes and streams from disk, so spool the form
	// file to a temp path first.
	tmp, err := os.CreateTemp("", "menuscan-*"+filepath.Ext(header.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.ReadFrom(file); err != nil {
		tmp.Close()
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	tmp.Close()

	result, err := h.uploads.Upload(c.Request.Context(), tmp.Name(), restaurantID, nil)
	if err != nil {
		if errors.Is(err, upload.ErrAlreadyProcessed) {
			c.JSON(http.StatusConflict, gin.H{"error": "This image has already been processed."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ext := result.Extraction
	ext.Filename = header.Filename
	c.JSON(http.StatusOK, gin.H{
		"extraction":      ext,
		"status":          result.StatusMessage(),
		"confidence_html": review.RenderConfidenceHTML(&ext),
	})
}

// --------------------------------------------------
// History
// --------------------------------------------------

func (h *Handler) History(c *gin.Context) {
	items, err := h.history.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load history."})
		return
	}

	type row struct {
		extraction.Extraction
		DownloadURL string `json:"download_url"`
	}
	rows := make([]row, 0, len(items))
	for _, item := range items {
		rows = append(rows, row{Extraction: item, DownloadURL: h.history.DownloadURL(item.S3Key)})
	}
	c.JSON(http.StatusOK, gin.H{"extractions": rows})
}

func (h *Handler) SaveCorrection(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No extraction to save."})
		return
	}
	if err := h.extractions.SaveCorrection(c.Request.Context(), req.ID, req.Text); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": req.ID})
}

func (h *Handler) DeleteExtraction(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id parameter"})
		return
	}
	if err := h.history.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to delete: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// --------------------------------------------------
// Validation
// --------------------------------------------------

func (h *Handler) Validate(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text to validate."})
		return
	}

	report, err := h.validator.Validate(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Validation error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report": report,
		"html":   review.RenderReportHTML(report),
	})
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (h *Handler) ListMenu(c *gin.Context) {
	extractionID := c.Query("extraction_id")
	items, err := h.menu.List(c.Request.Context(), extractionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu_items": items})
}

type menuForm struct {
	ID           string                `json:"id"`
	ExtractionID string                `json:"extraction_id"`
	DishName     string                `json:"dish_name"`
	Description  string                `json:"description"`
	Ingredients  []menuitem.Ingredient `json:"ingredients"`
	TTS          string                `json:"tts"`
	PTB          float64               `json:"ptb"`
	ImageKey     string                `json:"image_key"`
}

func (f *menuForm) toForm() menuitem.Form {
	return menuitem.Form{
		EditID:      f.ID,
		DishName:    f.DishName,
		Description: f.Description,
		Ingredients: f.Ingredients,
		TTS:         f.TTS,
		PTB:         f.PTB,
		ImageKey:    f.ImageKey,
	}
}

func (h *Handler) SaveMenuItem(c *gin.Context) {
	var req menuForm
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	item, err := h.menu.Save(c.Request.Context(), req.ExtractionID, req.toForm())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": item.ID, "image_key": item.ImageKey})
}

func (h *Handler) GenerateMenuImage(c *gin.Context) {
	var req menuForm
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	imageKey, err := h.menu.GenerateImage(c.Request.Context(), req.ExtractionID, req.toForm())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"image_key": imageKey,
		"image_url": h.menu.ImageURL(imageKey),
	})
}

func (h *Handler) DeleteMenuItem(c *gin.Context) {
	if err := h.menu.Delete(c.Request.Context(), c.Query("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Query("id")})
}

// --------------------------------------------------
// Reference data + panels
// --------------------------------------------------

func (h *Handler) Restaurants(c *gin.Context) {
	c.JSON(http.StatusOK, h.restaurants.List(c.Request.Context()))
}

func (h *Handler) Counter(c *gin.Context) {
	count, err := h.stats.Count(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *Handler) Stats(c *gin.Context) {
	detailed, err := h.stats.Detailed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, detailed)
}

func (h *Handler) Costs(c *gin.Context) {
	report, err := h.costs.Load(c.Request.Context(), c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load costs: " + err.Error()})
		return
	}
	report.Services = report.BilledServices()
	c.JSON(http.StatusOK, report)
}

func (h *Handler) InvalidateCache(c *gin.Context) {
	inv, err := h.costs.InvalidateCDN(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh cache: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// --------------------------------------------------
// To-do list
// --------------------------------------------------

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *Handler) AddTodo(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	id, err := h.todos.Add(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.BindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	completed, err := h.todos.Toggle(c.Request.Context(), req.ID)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, todo.ErrTodoNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": req.ID, "completed": completed})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing id parameter"})
		return
	}
	if err := h.todos.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
