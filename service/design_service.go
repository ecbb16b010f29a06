package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"wear-simulator/models"
	"wear-simulator/placement"
	"wear-simulator/repository"
	"wear-simulator/utils"
)

var (
	// ErrInvalidRequest wraps request values the engine cannot act on
	ErrInvalidRequest = errors.New("invalid request")
	// ErrTintDisabled is returned when the placement policy has no tint overlay
	ErrTintDisabled = errors.New("tint overlay is disabled")
)

// DesignService runs design operations against sessions, resolving catalog
// references and garment images
type DesignService struct {
	sessions *SessionService
	catalog  repository.CatalogRepositoryInterface
	render   *RenderService
}

// Ensure DesignService implements DesignServiceInterface
var _ DesignServiceInterface = (*DesignService)(nil)

// NewDesignService creates a new DesignService
func NewDesignService(sessions *SessionService, catalog repository.CatalogRepositoryInterface, render *RenderService) *DesignService {
	return &DesignService{
		sessions: sessions,
		catalog:  catalog,
		render:   render,
	}
}

// Create starts a new design session
func (s *DesignService) Create(ctx context.Context) (*models.DesignState, error) {
	session, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	return s.update(ctx, session.ID, func(d *Design) error { return nil })
}

// State returns the current state of a session
func (s *DesignService) State(ctx context.Context, id string) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error { return nil })
}

// Delete drops a session
func (s *DesignService) Delete(ctx context.Context, id string) error {
	if !s.sessions.Delete(id) {
		return fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return nil
}

// AddDecoration places the catalog sticker on the active garment/view
func (s *DesignService) AddDecoration(ctx context.Context, id string, req models.AddDecorationRequest) (*models.DesignState, error) {
	entry, err := s.catalog.GetEntry(ctx, req.CatalogID)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, id, func(d *Design) error {
		d.AddDecoration(entry.URL)
		return nil
	})
}

// PointerDown selects the topmost decoration under the pointer, or clears the selection
func (s *DesignService) PointerDown(ctx context.Context, id string, req models.PointerRequest) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		p := placement.Vec2{X: req.X, Y: req.Y}
		if req.Display {
			p = placement.ToLogical(p, d.DisplayScale())
		}
		d.PointerDown(p)
		return nil
	})
}

// DragEnd commits the final position of a drag. Hidden or unknown decorations are ignored.
func (s *DesignService) DragEnd(ctx context.Context, id string, req models.DragEndRequest) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		it, ok := d.Begin(placement.InteractionDrag, req.DecorationID)
		if !ok {
			log.Printf("⚠️  DragEnd ignored for %s: not visible on %s", req.DecorationID, d.ActiveContext())
			return nil
		}
		current := it.Live()
		current.Position = placement.Vec2{X: req.X, Y: req.Y}
		it.End(current)
		return nil
	})
}

// TransformEnd commits the end of a rotate/resize gesture on the selected decoration.
// Omitted scale components keep the current scale.
func (s *DesignService) TransformEnd(ctx context.Context, id string, req models.TransformEndRequest) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		it, ok := d.Begin(placement.InteractionTransform, req.DecorationID)
		if !ok {
			log.Printf("⚠️  TransformEnd ignored for %s: not the selection", req.DecorationID)
			return nil
		}
		scale := it.Live().Scale
		if req.ScaleX != nil {
			scale.X = *req.ScaleX
		}
		if req.ScaleY != nil {
			scale.Y = *req.ScaleY
		}
		it.End(placement.TransformReport{
			Position: placement.Vec2{X: req.X, Y: req.Y},
			Rotation: req.Rotation,
			Scale:    scale,
		})
		return nil
	})
}

// DeleteSelected removes the selected decoration
func (s *DesignService) DeleteSelected(ctx context.Context, id string) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		d.Controller.DeleteSelected()
		return nil
	})
}

// HandleKey forwards a key press
func (s *DesignService) HandleKey(ctx context.Context, id string, req models.KeyRequest) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		d.Controller.HandleKey(req.Key)
		return nil
	})
}

// SetContext switches garment and/or view side. The selection is always cleared.
func (s *DesignService) SetContext(ctx context.Context, id string, req models.ContextRequest) (*models.DesignState, error) {
	var garment placement.GarmentType
	if req.GarmentType != "" {
		g, err := s.catalog.GetGarment(ctx, req.GarmentType)
		if err != nil {
			return nil, err
		}
		garment = placement.GarmentType(g.Type)
	}
	var side placement.ViewSide
	if req.ViewSide != "" {
		v, err := placement.ParseViewSide(req.ViewSide)
		if err != nil {
			return nil, err
		}
		side = v
	}

	return s.update(ctx, id, func(d *Design) error {
		next := d.ActiveContext()
		if garment != "" {
			next.GarmentType = garment
		}
		if side != "" {
			next.ViewSide = side
		}
		d.Controller.SetContext(next)
		return nil
	})
}

// ResizeViewport recomputes the display scale for the measured width
func (s *DesignService) ResizeViewport(ctx context.Context, id string, req models.ViewportRequest) (*models.DesignState, error) {
	return s.update(ctx, id, func(d *Design) error {
		d.Controller.ResizeViewport(req.Width)
		return nil
	})
}

// SetTint chooses the fabric color painted over the garment
func (s *DesignService) SetTint(ctx context.Context, id string, req models.TintRequest) (*models.DesignState, error) {
	fabric, ok := utils.MapCodeToFabricColor(req.Color)
	if !ok {
		return nil, fmt.Errorf("%w: unknown color %q", ErrInvalidRequest, req.Color)
	}
	return s.update(ctx, id, func(d *Design) error {
		if !d.Policy().TintOverlay {
			return ErrTintDisabled
		}
		d.Tint = &fabric
		return nil
	})
}

// Preview renders the visible decorations over the garment of the active context
func (s *DesignService) Preview(ctx context.Context, id string, displayScale bool) (image.Image, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var req RenderRequest
	err = session.Do(func(d *Design) error {
		req = RenderRequest{
			Canvas:      d.Canvas(),
			BaseImage:   s.baseImage(ctx, d.ActiveContext()),
			Tint:        d.Tint,
			Decorations: d.Visible(),
		}
		if displayScale {
			req.Scale = d.DisplayScale()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.render.Compose(req)
}

// update runs fn inside the session and snapshots the resulting state
func (s *DesignService) update(ctx context.Context, id string, fn func(d *Design) error) (*models.DesignState, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	var state *models.DesignState
	err = session.Do(func(d *Design) error {
		if err := fn(d); err != nil {
			return err
		}
		state = s.snapshot(ctx, session.ID, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

func (s *DesignService) snapshot(ctx context.Context, id string, d *Design) *models.DesignState {
	state := &models.DesignState{
		ID:           id,
		Policy:       d.Policy(),
		Rotatable:    d.Policy().RotateEnabled(),
		Resizable:    d.Policy().ResizeEnabled(),
		Canvas:       d.Canvas(),
		PixelsPerMm:  d.Converter().PixelsPerMillimetre(),
		DisplayScale: d.DisplayScale(),
		Context:      d.ActiveContext(),
		BaseImage:    s.baseImage(ctx, d.ActiveContext()),
		Tint:         d.Tint,
		Decorations:  d.Visible(),
		Total:        len(d.Decorations()),
	}
	if sel, ok := d.Selection(); ok {
		state.Selection = &sel
	}
	return state
}

// baseImage returns the garment image for a context, "" when none is configured
func (s *DesignService) baseImage(ctx context.Context, c placement.Context) string {
	g, err := s.catalog.GetGarment(ctx, string(c.GarmentType))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("⚠️  Failed to resolve garment %s: %v", c.GarmentType, err)
		}
		return ""
	}
	return g.Images.ForSide(string(c.ViewSide))
}
