package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"daybook/internal/service"
)

type saveDocumentRequest struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (h *Handler) listDocuments(c *gin.Context) {
	userID, _ := authenticatedUserID(c)
	docs, err := h.documents.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]documentResponse, 0, len(docs))
	for i := range docs {
		resp = append(resp, toDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// saveDocument creates a document when no id is given and updates the
// caller's document otherwise.
func (h *Handler) saveDocument(c *gin.Context) {
	var req saveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	userID, _ := authenticatedUserID(c)
	doc, created, err := h.documents.Save(c.Request.Context(), userID, service.SaveDocumentInput{
		ID:      req.ID,
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toDocumentResponse(doc))
}

func (h *Handler) loadDocument(c *gin.Context) {
	userID, _ := authenticatedUserID(c)
	doc, err := h.documents.Load(c.Request.Context(), userID, c.Param("docId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func (h *Handler) deleteDocument(c *gin.Context) {
	userID, _ := authenticatedUserID(c)
	if err := h.documents.Delete(c.Request.Context(), userID, c.Param("docId")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Document deleted successfully"})
}
