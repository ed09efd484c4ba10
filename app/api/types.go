package api

import (
	"github.com/polysend/notifeed/app/database"
	"github.com/polysend/notifeed/app/feed"
)

type Handler struct {
	itemRepo     database.ItemRepositoryInterface
	settingsRepo database.SettingsRepositoryInterface
	generator    *feed.Generator
}

func NewHandler(itemRepo database.ItemRepositoryInterface,
	settingsRepo database.SettingsRepositoryInterface,
	generator *feed.Generator) *Handler {
	return &Handler{
		itemRepo:     itemRepo,
		settingsRepo: settingsRepo,
		generator:    generator,
	}
}

type createItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Link        string `json:"link"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	GUID        string `json:"guid"`
	Published   *bool  `json:"published"`
}

type updateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	Link        *string `json:"link"`
	Author      *string `json:"author"`
	Category    *string `json:"category"`
	Published   *bool   `json:"published"`
}

type updateSettingsRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	Link           *string `json:"link"`
	Language       *string `json:"language"`
	Copyright      *string `json:"copyright"`
	ManagingEditor *string `json:"managingEditor"`
	Webmaster      *string `json:"webmaster"`
	Generator      *string `json:"generator"`
	ImageURL       *string `json:"imageUrl"`
	ImageTitle     *string `json:"imageTitle"`
	ImageLink      *string `json:"imageLink"`
}

type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type itemListResponse struct {
	Items      []database.Item `json:"items"`
	Pagination pagination      `json:"pagination"`
}

type createItemResponse struct {
	ID   int64  `json:"id"`
	GUID string `json:"guid"`
}
