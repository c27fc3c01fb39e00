package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/pkg/request"
	"github.com/playamar/beach-admin-backend/internal/pkg/response"
	"github.com/playamar/beach-admin-backend/internal/user"
)

type UserHandler struct {
	service user.Service
}

func NewHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, response.ErrorResponse{Message: "invalid email or password"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		User:        NewUserResponse(result.User),
	})
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "user not found"})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid query parameters"})
		return
	}

	users, total, err := h.service.List(c.Request.Context(), user.Filter{
		Keyword:  req.Keyword,
		Role:     req.Role,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	u, err := h.service.Create(c.Request.Context(), user.CreateInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			c.JSON(http.StatusConflict, response.ErrorResponse{Message: "email already registered"})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewUserResponse(u))
}

func (h *UserHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid user id"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "user not found"})
			return
		}
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid user id"})
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid request body"})
		return
	}

	u, err := h.service.Update(c.Request.Context(), uri.ID, user.UpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "user not found"})
		case errors.Is(err, user.ErrEmailTaken):
			c.JSON(http.StatusConflict, response.ErrorResponse{Message: "email already registered"})
		default:
			response.Error(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Message: "invalid user id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Message: "user not found"})
			return
		}
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
