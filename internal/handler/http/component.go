package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ComponentService interface {
	List(ctx context.Context, filter models.ComponentFilter) ([]models.Component, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Component, error)
	Publish(ctx context.Context, c *models.Component, authorID uuid.UUID) (*models.Component, error)
	Update(ctx context.Context, c *models.Component, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	AddTags(ctx context.Context, componentID uuid.UUID, tagIDs []uuid.UUID, userID uuid.UUID) error
	ToggleLike(ctx context.Context, userID, componentID uuid.UUID) (bool, int64, error)
}

// ComponentHandler represents HTTP handler for component-related requests
type ComponentHandler struct {
	svc ComponentService
}

// NewComponentHandler creates new ComponentHandler instance
func NewComponentHandler(svc ComponentService) *ComponentHandler {
	return &ComponentHandler{svc: svc}
}

type tagResp struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type componentResp struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	HTML          string    `json:"html,omitempty"`
	CSS           string    `json:"css,omitempty"`
	JS            string    `json:"js,omitempty"`
	PreviewURL    string    `json:"previewUrl,omitempty"`
	Type          string    `json:"type,omitempty"`
	Framework     string    `json:"framework,omitempty"`
	Price         string    `json:"price"`
	DiscountPrice string    `json:"discountPrice,omitempty"`
	Views         int64     `json:"views"`
	Likes         int64     `json:"likes"`
	Tags          []tagResp `json:"tags"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     string    `json:"createdAt"`
}

func newComponentResp(c *models.Component) componentResp {
	resp := componentResp{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		HTML:        c.HTML,
		CSS:         c.CSS,
		JS:          c.JS,
		PreviewURL:  c.PreviewURL,
		Type:        c.Type,
		Framework:   c.Framework,
		Price:       c.Price.String(),
		Views:       c.Views,
		Likes:       c.Likes,
		Tags:        []tagResp{},
		CreatedBy:   c.CreatedBy.String(),
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.DiscountPrice != nil {
		resp.DiscountPrice = c.DiscountPrice.String()
	}
	for _, tag := range c.Tags {
		resp.Tags = append(resp.Tags, tagResp{ID: tag.ID.String(), Name: tag.Name})
	}
	return resp
}

func writeComponents(w http.ResponseWriter, components []models.Component) {
	resp := make([]componentResp, 0, len(components))
	for i := range components {
		resp = append(resp, newComponentResp(&components[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		return
	}
}

// ListComponents returns page of components
// 200 — success;
// 500 — internal server error.
func (ch *ComponentHandler) ListComponents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		size, _ := strconv.Atoi(q.Get("pageSize"))

		filter := models.ComponentFilter{
			Keyword:  q.Get("keyword"),
			Page:     page,
			PageSize: size,
		}

		components, err := ch.svc.List(r.Context(), filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeComponents(w, components)
	}
}

type filterRequest struct {
	Framework string   `json:"framework"`
	Type      string   `json:"type"`
	MinPrice  *string  `json:"minPrice"`
	MaxPrice  *string  `json:"maxPrice"`
	TagIDs    []string `json:"tagIds"`
	SortBy    string   `json:"sortBy"`
	Page      int      `json:"page"`
	PageSize  int      `json:"pageSize"`
}

// FilterComponents returns page of components matching filter
// 200 — success;
// 400 — bad request format or unknown sort option;
// 500 — internal server error.
func (ch *ComponentHandler) FilterComponents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req filterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		filter := models.ComponentFilter{
			Framework: req.Framework,
			Type:      req.Type,
			SortBy:    req.SortBy,
			Page:      req.Page,
			PageSize:  req.PageSize,
		}

		if req.MinPrice != nil {
			p, err := decimal.NewFromString(*req.MinPrice)
			if err != nil {
				http.Error(w, "bad min price", http.StatusBadRequest)
				return
			}
			filter.MinPrice = &p
		}
		if req.MaxPrice != nil {
			p, err := decimal.NewFromString(*req.MaxPrice)
			if err != nil {
				http.Error(w, "bad max price", http.StatusBadRequest)
				return
			}
			filter.MaxPrice = &p
		}
		for _, raw := range req.TagIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "bad tag id", http.StatusBadRequest)
				return
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}

		components, err := ch.svc.List(r.Context(), filter)
		if err != nil {
			if errors.Is(err, models.ErrInvalidSortOption) {
				http.Error(w, "unknown sort option", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeComponents(w, components)
	}
}

// GetComponent returns component detail and counts the view
// 200 — success;
// 400 — bad component id;
// 404 — component not found;
// 500 — internal server error.
func (ch *ComponentHandler) GetComponent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		component, err := ch.svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "component not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newComponentResp(component)); err != nil {
			return
		}
	}
}

type createComponentRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	HTML          string  `json:"html"`
	CSS           string  `json:"css"`
	JS            string  `json:"js"`
	PreviewURL    string  `json:"previewUrl"`
	Type          string  `json:"type"`
	Framework     string  `json:"framework"`
	Price         string  `json:"price"`
	DiscountPrice *string `json:"discountPrice"`
}

func (req *createComponentRequest) toModel() (*models.Component, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, errors.New("bad price")
	}

	c := &models.Component{
		Name:        req.Name,
		Description: req.Description,
		HTML:        req.HTML,
		CSS:         req.CSS,
		JS:          req.JS,
		PreviewURL:  req.PreviewURL,
		Type:        req.Type,
		Framework:   req.Framework,
		Price:       price,
	}

	if req.DiscountPrice != nil {
		d, err := decimal.NewFromString(*req.DiscountPrice)
		if err != nil {
			return nil, errors.New("bad discount price")
		}
		c.DiscountPrice = &d
	}

	return c, nil
}

// CreateComponent publishes new component
// 201 — component created;
// 400 — bad request format;
// 401 — user is not authenticated;
// 500 — internal server error.
func (ch *ComponentHandler) CreateComponent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createComponentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		component, err := req.toModel()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		component, err = ch.svc.Publish(r.Context(), component, payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newComponentResp(component)); err != nil {
			return
		}
	}
}

// UpdateComponent updates component of its creator
// 204 — component updated;
// 400 — bad request format;
// 401 — user is not authenticated;
// 403 — user is not the creator;
// 404 — component not found;
// 500 — internal server error.
func (ch *ComponentHandler) UpdateComponent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		var req createComponentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		component, err := req.toModel()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		component.ID = id

		if err := ch.svc.Update(r.Context(), component, payload.UserID); err != nil {
			writeComponentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteComponent soft-deletes component of its creator
// 204 — component deleted;
// 400 — bad component id;
// 401 — user is not authenticated;
// 403 — user is not the creator;
// 404 — component not found;
// 500 — internal server error.
func (ch *ComponentHandler) DeleteComponent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		if err := ch.svc.Delete(r.Context(), id, payload.UserID); err != nil {
			writeComponentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type addTagsRequest struct {
	TagIDs []string `json:"tagIds"`
}

// AddTags attaches tags to component of its creator
// 204 — tags attached;
// 400 — bad request format;
// 401 — user is not authenticated;
// 403 — user is not the creator;
// 404 — component not found;
// 500 — internal server error.
func (ch *ComponentHandler) AddTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		var req addTagsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		tagIDs := make([]uuid.UUID, 0, len(req.TagIDs))
		for _, raw := range req.TagIDs {
			tagID, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "bad tag id", http.StatusBadRequest)
				return
			}
			tagIDs = append(tagIDs, tagID)
		}

		if err := ch.svc.AddTags(r.Context(), id, tagIDs, payload.UserID); err != nil {
			writeComponentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type likeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// LikeComponent toggles like of authenticated user
// 200 — success;
// 400 — bad component id;
// 401 — user is not authenticated;
// 404 — component not found;
// 500 — internal server error.
func (ch *ComponentHandler) LikeComponent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		liked, likes, err := ch.svc.ToggleLike(r.Context(), payload.UserID, id)
		if err != nil {
			writeComponentError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(likeResponse{Liked: liked, Likes: likes}); err != nil {
			return
		}
	}
}

func writeComponentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDataNotFound):
		http.Error(w, "component not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
