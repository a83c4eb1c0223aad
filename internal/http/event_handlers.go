package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"daybook/internal/service"
)

type eventRequest struct {
	Title  *string    `json:"title"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
	AllDay *bool      `json:"allDay"`
}

func (h *Handler) listEvents(c *gin.Context) {
	userID, _ := authenticatedUserID(c)
	events, err := h.events.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]eventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, toEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in := service.EventInput{}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Start != nil {
		in.Start = *req.Start
	}
	if req.End != nil {
		in.End = *req.End
	}
	if req.AllDay != nil {
		in.AllDay = *req.AllDay
	}

	userID, _ := authenticatedUserID(c)
	event, err := h.events.Create(c.Request.Context(), userID, in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(event))
}

func (h *Handler) updateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}

	userID, _ := authenticatedUserID(c)
	event, err := h.events.Update(c.Request.Context(), userID, c.Param("eventId"), service.EventPatch{
		Title:  req.Title,
		Start:  req.Start,
		End:    req.End,
		AllDay: req.AllDay,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *Handler) deleteEvent(c *gin.Context) {
	userID, _ := authenticatedUserID(c)
	if err := h.events.Delete(c.Request.Context(), userID, c.Param("eventId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
