package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/interfaces/http/response"
)

type PartHandler struct {
	catalog CatalogService
}

func NewPartHandler(catalog CatalogService) *PartHandler {
	return &PartHandler{catalog: catalog}
}

type createPartRequest struct {
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

// GET /api/parts
func (h *PartHandler) ListParts(c *gin.Context) {
	parts, err := h.catalog.ListParts(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, parts)
}

// POST /api/parts
func (h *PartHandler) CreatePart(c *gin.Context) {
	var req createPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}

	part, err := h.catalog.CreatePart(c.Request.Context(), req.Name, req.Unit)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, part)
}
