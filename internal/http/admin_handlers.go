package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/service"
)

type adminUserUpdateRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	FullName *string `json:"fullName"`
	IsAdmin  *bool   `json:"isAdmin"`
}

func (h *Handler) listUsers(c *gin.Context) {
	entries, err := h.users.ListWithProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]adminUserResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, toAdminUserResponse(entry))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) updateUser(c *gin.Context) {
	var req adminUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("userId"), service.UserUpdate{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
