package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/interfaces/http/response"
)

type CountHandler struct {
	catalog CatalogService
}

func NewCountHandler(catalog CatalogService) *CountHandler {
	return &CountHandler{catalog: catalog}
}

type countRequest struct {
	Selections []entities.Selection `json:"selections"`
}

// POST /api/count
func (h *CountHandler) Count(c *gin.Context) {
	var req countRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}

	result, err := h.catalog.Count(c.Request.Context(), req.Selections)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, result)
}
