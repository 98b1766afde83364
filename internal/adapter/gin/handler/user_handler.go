package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"event-registry-service/internal/usecase/user"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserPayload represents the HTTP request body for creating or updating a user
type UserPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required"`
	ChineseName string `json:"chineseName"`
	Gender      string `json:"gender" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// CreateUser handles POST /v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	u, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		ID:          req.ID,
		Name:        req.Name,
		ChineseName: req.ChineseName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondCreated(c, u)
}

// GetUser handles GET /v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.uc.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, u)
}

// UpdateUser handles PUT /v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UserPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	u, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		ID:          c.Param("id"),
		Name:        req.Name,
		ChineseName: req.ChineseName,
		Gender:      req.Gender,
		DateOfBirth: req.DateOfBirth,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, u)
}

// DeleteUser handles DELETE /v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.uc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}

	respondSuccess(c)
}

// ListUsers handles GET /v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	respondOK(c, users)
}
