package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"daybook/internal/domain"
	"daybook/internal/service"
)

type userResponse struct {
	ID        string      `json:"_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	IsAdmin   bool        `json:"isAdmin"`
	Role      domain.Role `json:"role"`
	CreatedAt string      `json:"createdAt,omitempty"`
	UpdatedAt string      `json:"updatedAt,omitempty"`
}

type adminUserResponse struct {
	userResponse
	// Profile is a profileResponse, or an empty object when the user has none.
	Profile any `json:"profile"`
}

type profileResponse struct {
	ID             string `json:"_id"`
	UserID         string `json:"userId"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

type profileOwnerResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type profileViewResponse struct {
	ID                string               `json:"_id"`
	UserID            profileOwnerResponse `json:"userId"`
	ProfilePicture    string               `json:"profilePicture"`
	Bio               string               `json:"bio"`
	ProfilePictureURL string               `json:"profilePictureUrl,omitempty"`
}

type eventResponse struct {
	ID     string `json:"_id"`
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
	AllDay bool   `json:"allDay"`
}

type documentResponse struct {
	ID        string `json:"_id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin(),
		Role:      u.Role,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}

func toAdminUserResponse(entry domain.UserWithProfile) adminUserResponse {
	resp := adminUserResponse{userResponse: toUserResponse(&entry.User), Profile: gin.H{}}
	if entry.Profile != nil {
		resp.Profile = toProfileResponse(entry.Profile)
	}
	return resp
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		ProfilePicture: p.ProfilePicture,
		Bio:            p.Bio,
	}
}

func toProfileViewResponse(v *service.ProfileView) profileViewResponse {
	return profileViewResponse{
		ID: v.Profile.ID,
		UserID: profileOwnerResponse{
			ID:       v.User.ID,
			Username: v.User.Username,
			Email:    v.User.Email,
			FullName: v.User.FullName,
		},
		ProfilePicture:    v.Profile.ProfilePicture,
		Bio:               v.Profile.Bio,
		ProfilePictureURL: v.PictureURL,
	}
}

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:     e.ID,
		UserID: e.UserID,
		Title:  e.Title,
		Start:  formatTime(e.Start),
		End:    formatTime(e.End),
		AllDay: e.AllDay,
	}
}

func toDocumentResponse(d *domain.Document) documentResponse {
	return documentResponse{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Content:   d.Content,
		CreatedAt: formatTime(d.CreatedAt),
		UpdatedAt: formatTime(d.UpdatedAt),
	}
}
