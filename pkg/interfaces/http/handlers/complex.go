package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/domain/entities"
	"github.com/vsinha/partcounter/pkg/interfaces/http/response"
)

type ComplexHandler struct {
	catalog CatalogService
}

func NewComplexHandler(catalog CatalogService) *ComplexHandler {
	return &ComplexHandler{catalog: catalog}
}

type createComplexRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type assignPartRequest struct {
	PartID   *int64 `json:"part_id"`
	Quantity *int64 `json:"quantity"`
}

// GET /api/complexes
func (h *ComplexHandler) ListComplexes(c *gin.Context) {
	complexes, err := h.catalog.ListComplexes(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, complexes)
}

// POST /api/complexes
func (h *ComplexHandler) CreateComplex(c *gin.Context) {
	var req createComplexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}

	detail, err := h.catalog.CreateComplex(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, detail)
}

// GET /api/complexes/:id
func (h *ComplexHandler) GetComplex(c *gin.Context) {
	id, err := complexIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}

	detail, err := h.catalog.GetComplex(c.Request.Context(), id)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /api/complexes/:id/parts
func (h *ComplexHandler) AssignPart(c *gin.Context) {
	id, err := complexIDParam(c)
	if err != nil {
		response.RespondBadRequest(c, err)
		return
	}

	var req assignPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondBadRequest(c, err)
		return
	}
	if req.PartID == nil || req.Quantity == nil {
		response.RespondDomainError(c, entities.NewError(entities.InvalidInput, "part_id and quantity are required"))
		return
	}

	detail, err := h.catalog.AssignPart(
		c.Request.Context(),
		id,
		entities.PartID(*req.PartID),
		entities.Quantity(*req.Quantity),
	)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, detail)
}
