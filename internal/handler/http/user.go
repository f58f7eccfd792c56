package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/easyui/easyui-backend/internal/models"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name, avatarURL, bio string) (*models.User, error)
}

// UserHandler represents HTTP handler for user-related requests
type UserHandler struct {
	auth AuthService
	svc  UserService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(auth AuthService, svc UserService) *UserHandler {
	return &UserHandler{
		auth: auth,
		svc:  svc,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Role      string `json:"role"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

// RegisterUser registers new user
// 201 — user registered;
// 400 — bad request format;
// 409 — email is already taken;
// 500 — internal server error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Email == "" || req.Password == "" {
			http.Error(w, "email and password are required", http.StatusBadRequest)
			return
		}

		user, err := uh.auth.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "email is already registered", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser authenticates user and sets auth cookie
// 200 — user authenticated;
// 400 — bad request format;
// 401 — invalid email/password pair;
// 500 — internal server error.
func (uh *UserHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		token, err := uh.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				http.Error(w, "invalid email or password", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    token,
			Path:     "/",
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusOK)
	}
}

// GetProfile returns profile of authenticated user
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (uh *UserHandler) GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := uh.svc.GetProfile(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}

type updateProfileRequest struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Bio       string `json:"bio"`
}

// UpdateProfile updates profile of authenticated user
// 200 — profile updated;
// 400 — bad request format;
// 401 — user is not authenticated;
// 500 — internal server error.
func (uh *UserHandler) UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, err := uh.svc.UpdateProfile(r.Context(), payload.UserID, req.Name, req.AvatarURL, req.Bio)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newUserResponse(user)); err != nil {
			return
		}
	}
}
