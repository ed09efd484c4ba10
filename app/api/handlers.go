package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/polysend/notifeed/app/database"
)

const defaultFeedLimit = 20

// queryInt parses an integer query parameter, falling back to def for a
// missing or non-numeric value. Values are not clamped.
func queryInt(c *gin.Context, name string, def int) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil || value < 1 {
		return def
	}
	return value
}

// storeError logs the underlying failure and answers with a generic body;
// internal error text is never sent to the client.
func storeError(c *gin.Context, operation string, err error) {
	slog.Error("Database error", "operation", operation, "error", err)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

func (h *Handler) GetRSS(c *gin.Context) {
	settings, items, ok := h.feedData(c)
	if !ok {
		return
	}

	rss := h.generator.RSS(*settings, items)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetJSONFeed(c *gin.Context) {
	settings, items, ok := h.feedData(c)
	if !ok {
		return
	}

	doc, err := h.generator.JSONFeed(*settings, items)
	if err != nil {
		storeError(c, "render_json_feed", err)
		return
	}

	c.Data(http.StatusOK, "application/feed+json; charset=utf-8", doc)
}

// feedData gathers the settings and published items both feed endpoints
// render from. A false return means the response has been written.
func (h *Handler) feedData(c *gin.Context) (*database.Settings, []database.Item, bool) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		storeError(c, "get_settings", err)
		return nil, nil, false
	}

	limit := queryInt(c, "limit", defaultFeedLimit)
	items, err := h.itemRepo.GetPublished(c.Query("category"), limit)
	if err != nil {
		storeError(c, "get_published_items", err)
		return nil, nil, false
	}

	return settings, items, true
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		storeError(c, "get_settings", err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Language != nil {
		tag, err := language.Parse(*req.Language)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid language tag")
			return
		}
		normalized := tag.String()
		req.Language = &normalized
	}

	err := h.settingsRepo.Update(database.SettingsFields{
		Title:          req.Title,
		Description:    req.Description,
		Link:           req.Link,
		Language:       req.Language,
		Copyright:      req.Copyright,
		ManagingEditor: req.ManagingEditor,
		Webmaster:      req.Webmaster,
		Generator:      req.Generator,
		ImageURL:       req.ImageURL,
		ImageTitle:     req.ImageTitle,
		ImageLink:      req.ImageLink,
	})
	if errors.Is(err, database.ErrEmptyUpdate) {
		c.String(http.StatusBadRequest, "nothing to update")
		return
	}
	if err != nil {
		storeError(c, "update_settings", err)
		return
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		storeError(c, "get_settings", err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) ListItems(c *gin.Context) {
	opts := database.ItemListOptions{
		Category: c.Query("category"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", defaultFeedLimit),
	}

	if raw := c.Query("published"); raw != "" {
		published, err := strconv.ParseBool(raw)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid published filter")
			return
		}
		opts.Published = &published
	}

	items, total, err := h.itemRepo.List(opts)
	if err != nil {
		storeError(c, "list_items", err)
		return
	}

	c.JSON(http.StatusOK, itemListResponse{
		Items: items,
		Pagination: pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			Total:      total,
			TotalPages: (total + opts.Limit - 1) / opts.Limit,
		},
	})
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	h.createItem(c, req, false)
}

// Broadcast creates an item that is always published; the request may not
// override the guid.
func (h *Handler) Broadcast(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	req.GUID = ""
	published := true
	req.Published = &published

	h.createItem(c, req, true)
}

func (h *Handler) createItem(c *gin.Context, req createItemRequest, broadcast bool) {
	if req.Title == "" {
		c.String(http.StatusBadRequest, "title is required")
		return
	}

	published := true
	if req.Published != nil {
		published = *req.Published
	}

	id, guid, err := h.itemRepo.Create(database.Item{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Link:        req.Link,
		Author:      req.Author,
		Category:    req.Category,
		GUID:        req.GUID,
		Published:   published,
	})
	if err != nil {
		operation := "create_item"
		if broadcast {
			operation = "broadcast_item"
		}
		storeError(c, operation, err)
		return
	}

	c.JSON(http.StatusCreated, createItemResponse{ID: id, GUID: guid})
}

// itemID extracts the numeric item id from the path. A non-numeric segment
// maps to the same not-found answer as an unknown id.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "item not found")
		return 0, false
	}
	return id, true
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.itemRepo.Update(id, database.ItemFields{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Link:        req.Link,
		Author:      req.Author,
		Category:    req.Category,
		Published:   req.Published,
	})
	switch {
	case errors.Is(err, database.ErrEmptyUpdate):
		c.String(http.StatusBadRequest, "nothing to update")
	case errors.Is(err, database.ErrNotFound):
		c.String(http.StatusNotFound, "item not found")
	case err != nil:
		storeError(c, "update_item", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	err := h.itemRepo.Delete(id)
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.String(http.StatusNotFound, "item not found")
	case err != nil:
		storeError(c, "delete_item", err)
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status": "ok",
	}

	if count, err := h.itemRepo.Count(); err == nil {
		health["items"] = count
	}

	c.JSON(http.StatusOK, health)
}
