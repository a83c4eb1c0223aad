package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/service"
)

// maxAvatarBytes bounds profile picture uploads.
const maxAvatarBytes = 5 << 20

type profileUpdateRequest struct {
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

func (h *Handler) getProfile(c *gin.Context) {
	view, err := h.profiles.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileViewResponse(view))
}

// updateProfile overwrites both fields; omitted fields are stored empty.
func (h *Handler) updateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), c.Param("username"), req.ProfilePicture, req.Bio)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required", "error": err.Error()})
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("file exceeds %d bytes", maxAvatarBytes)})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	profile, err := h.profiles.UploadPicture(c.Request.Context(), c.Param("username"), service.PictureUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h *Handler) resolveUserID(c *gin.Context) {
	userID, err := h.users.ResolveID(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID})
}
