package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/partcounter/pkg/application/dto"
	"github.com/vsinha/partcounter/pkg/domain/entities"
)

// CatalogService is the application surface the HTTP handlers call
type CatalogService interface {
	ListParts(ctx context.Context) ([]dto.PartView, error)
	CreatePart(ctx context.Context, name string, unit *string) (*dto.PartView, error)
	ListComplexes(ctx context.Context) ([]dto.ComplexDetail, error)
	GetComplex(ctx context.Context, id entities.ComplexID) (*dto.ComplexDetail, error)
	CreateComplex(ctx context.Context, name string, description *string) (*dto.ComplexDetail, error)
	AssignPart(
		ctx context.Context,
		complexID entities.ComplexID,
		partID entities.PartID,
		quantity entities.Quantity,
	) (*dto.ComplexDetail, error)
	Count(ctx context.Context, selections []entities.Selection) (*dto.CountResult, error)
}

func complexIDParam(c *gin.Context) (entities.ComplexID, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid complex id %q", raw)
	}
	return entities.ComplexID(id), nil
}
