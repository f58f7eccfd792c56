package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CommentService interface {
	ListByComponent(ctx context.Context, componentID uuid.UUID) ([]models.Comment, error)
	Create(ctx context.Context, componentID uuid.UUID, content string, userID uuid.UUID) (*models.Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// CommentHandler represents HTTP handler for comment-related requests
type CommentHandler struct {
	svc CommentService
}

// NewCommentHandler creates new CommentHandler instance
func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type commentResp struct {
	ID          string `json:"id"`
	ComponentID string `json:"componentId"`
	Content     string `json:"content"`
	CreatedBy   string `json:"createdBy"`
	CreatorName string `json:"creatorName,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func newCommentResp(comment *models.Comment) commentResp {
	return commentResp{
		ID:          comment.ID.String(),
		ComponentID: comment.ComponentID.String(),
		Content:     comment.Content,
		CreatedBy:   comment.CreatedBy.String(),
		CreatorName: comment.CreatorName,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
	}
}

// ListComponentComments returns comments of component
// 200 — success;
// 400 — bad component id;
// 500 — internal server error.
func (ch *CommentHandler) ListComponentComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		componentID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		comments, err := ch.svc.ListByComponent(r.Context(), componentID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]commentResp, 0, len(comments))
		for i := range comments {
			resp = append(resp, newCommentResp(&comments[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type createCommentRequest struct {
	ComponentID string `json:"componentId"`
	Content     string `json:"content"`
}

// CreateComment adds comment to component
// 201 — comment created;
// 400 — bad request format;
// 401 — user is not authenticated;
// 404 — component not found;
// 500 — internal server error.
func (ch *CommentHandler) CreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			http.Error(w, "content is required", http.StatusBadRequest)
			return
		}

		componentID, err := uuid.Parse(req.ComponentID)
		if err != nil {
			http.Error(w, "bad component id", http.StatusBadRequest)
			return
		}

		comment, err := ch.svc.Create(r.Context(), componentID, req.Content, payload.UserID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "component not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newCommentResp(comment)); err != nil {
			return
		}
	}
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateComment edits comment of its creator
// 204 — comment updated;
// 400 — bad request format;
// 401 — user is not authenticated;
// 403 — comment belongs to another user;
// 404 — comment not found;
// 500 — internal server error.
func (ch *CommentHandler) UpdateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad comment id", http.StatusBadRequest)
			return
		}

		var req updateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Content == "" {
			http.Error(w, "content is required", http.StatusBadRequest)
			return
		}

		if err := ch.svc.Update(r.Context(), id, req.Content, payload.UserID); err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteComment removes comment of its creator
// 204 — comment deleted;
// 400 — bad comment id;
// 401 — user is not authenticated;
// 403 — comment belongs to another user;
// 404 — comment not found;
// 500 — internal server error.
func (ch *CommentHandler) DeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "bad comment id", http.StatusBadRequest)
			return
		}

		if err := ch.svc.Delete(r.Context(), id, payload.UserID); err != nil {
			writeCommentError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDataNotFound):
		http.Error(w, "comment not found", http.StatusNotFound)
	case errors.Is(err, models.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
