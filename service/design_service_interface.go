package service

import (
	"context"
	"image"

	"wear-simulator/models"
)

// DesignServiceInterface defines the contract for design session operations
type DesignServiceInterface interface {
	Create(ctx context.Context) (*models.DesignState, error)
	State(ctx context.Context, id string) (*models.DesignState, error)
	Delete(ctx context.Context, id string) error
	AddDecoration(ctx context.Context, id string, req models.AddDecorationRequest) (*models.DesignState, error)
	PointerDown(ctx context.Context, id string, req models.PointerRequest) (*models.DesignState, error)
	DragEnd(ctx context.Context, id string, req models.DragEndRequest) (*models.DesignState, error)
	TransformEnd(ctx context.Context, id string, req models.TransformEndRequest) (*models.DesignState, error)
	DeleteSelected(ctx context.Context, id string) (*models.DesignState, error)
	HandleKey(ctx context.Context, id string, req models.KeyRequest) (*models.DesignState, error)
	SetContext(ctx context.Context, id string, req models.ContextRequest) (*models.DesignState, error)
	ResizeViewport(ctx context.Context, id string, req models.ViewportRequest) (*models.DesignState, error)
	SetTint(ctx context.Context, id string, req models.TintRequest) (*models.DesignState, error)
	Preview(ctx context.Context, id string, displayScale bool) (image.Image, error)
}
