package placement

import (
	"fmt"
	"log"
	"math"
)

// minScaledPx is the smallest on-canvas extent a free-transform resize may produce.
const minScaledPx = 5

// Settings configures a Controller. It is fixed for the life of the controller.
type Settings struct {
	Canvas Canvas
	// ReferenceWidthMm is the real-world garment width spanned by Canvas.Width.
	ReferenceWidthMm float64
	// StickerSizeMm is the physical size given to new decorations when size-locked.
	StickerSizeMm Size
	// DefaultStickerPx is the pixel size given to new decorations under free transform.
	DefaultStickerPx Size
	SafetyMargin     float64
	Policy           Policy
}

// DefaultSettings mirrors the reference garment: a 500x600 canvas spanning 500mm,
// 45x60mm stickers.
func DefaultSettings() Settings {
	return Settings{
		Canvas:           Canvas{Width: 500, Height: 600},
		ReferenceWidthMm: 500,
		StickerSizeMm:    Size{Width: 45, Height: 60},
		DefaultStickerPx: Size{Width: 100, Height: 100},
		SafetyMargin:     DefaultSafetyMargin,
		Policy:           Policy{Mode: ModeSizeLocked},
	}
}

// State is the selection state of the controller.
type State int

const (
	StateIdle State = iota
	StateEditing
)

func (s State) String() string {
	if s == StateEditing {
		return "editing"
	}
	return "idle"
}

// TransformReport is what the rendering surface reports at the end of an interaction.
type TransformReport struct {
	Position Vec2
	Rotation float64
	Scale    Vec2
}

// Controller owns the design state of one canvas: the decoration store, the active
// context, the single selection and the viewport scale. All mutations go through its
// methods; it is not safe for concurrent use.
type Controller struct {
	settings     Settings
	converter    UnitConverter
	scaler       ViewportScaler
	store        *Store
	active       Context
	selected     string
	displayScale float64
}

// NewController validates settings and returns a controller in the Idle state
// showing the initial context.
func NewController(settings Settings, initial Context) (*Controller, error) {
	if settings.Canvas.Height <= 0 || !isFinite(settings.Canvas.Height) {
		return nil, fmt.Errorf("%w: canvas height %v", ErrInvalidReference, settings.Canvas.Height)
	}
	converter, err := NewUnitConverter(settings.Canvas.Width, settings.ReferenceWidthMm)
	if err != nil {
		return nil, err
	}
	if settings.Policy.Mode == "" {
		settings.Policy.Mode = ModeSizeLocked
	}

	var initialSize Size
	switch settings.Policy.Mode {
	case ModeSizeLocked:
		initialSize = converter.SizeToPixels(settings.StickerSizeMm.Width, settings.StickerSizeMm.Height)
	case ModeFreeTransform:
		initialSize = settings.DefaultStickerPx
	default:
		return nil, fmt.Errorf("unknown placement policy %q", settings.Policy.Mode)
	}
	if initialSize.Width <= 0 || initialSize.Height <= 0 {
		return nil, fmt.Errorf("%w: sticker size %vx%v", ErrInvalidReference, initialSize.Width, initialSize.Height)
	}

	return &Controller{
		settings:     settings,
		converter:    converter,
		scaler:       NewViewportScaler(settings.Canvas.Width, settings.SafetyMargin),
		store:        NewStore(settings.Canvas, settings.Policy.Mode, initialSize),
		active:       initial,
		displayScale: 1,
	}, nil
}

// Policy returns the placement policy.
func (c *Controller) Policy() Policy { return c.settings.Policy }

// Canvas returns the logical canvas size.
func (c *Controller) Canvas() Canvas { return c.settings.Canvas }

// Converter returns the millimetre/pixel converter.
func (c *Controller) Converter() UnitConverter { return c.converter }

// ActiveContext returns the (garment type, view side) currently shown.
func (c *Controller) ActiveContext() Context { return c.active }

// DisplayScale returns the last computed display scale (1 until a viewport is reported).
func (c *Controller) DisplayScale() float64 { return c.displayScale }

// State returns Idle or Editing.
func (c *Controller) State() State {
	if c.selected == "" {
		return StateIdle
	}
	return StateEditing
}

// Selection returns the selected decoration id, if any.
func (c *Controller) Selection() (string, bool) {
	return c.selected, c.selected != ""
}

// Decorations returns every decoration in paint order, across all contexts.
func (c *Controller) Decorations() []Decoration {
	return c.store.List()
}

// Visible returns the decorations of the active context in paint order.
func (c *Controller) Visible() []Decoration {
	return Visible(c.store.List(), c.active)
}

// Decoration returns one decoration by id.
func (c *Controller) Decoration(id string) (Decoration, bool) {
	return c.store.Get(id)
}

// AddDecoration places a new decoration for assetRef on the active context.
func (c *Controller) AddDecoration(assetRef string) Decoration {
	d := c.store.Add(assetRef, c.active)
	log.Printf("🎨 Added decoration %s (%s) on %s at (%.1f, %.1f) size %.1fx%.1f",
		d.ID, assetRef, d.Context, d.Position.X, d.Position.Y, d.Size.Width, d.Size.Height)
	return d
}

// UpdateDecoration applies a patch. Unknown ids are ignored.
func (c *Controller) UpdateDecoration(id string, p Patch) {
	c.store.Update(id, p)
}

// RemoveDecoration deletes a decoration and clears the selection if it pointed at it.
func (c *Controller) RemoveDecoration(id string) {
	if !c.store.Remove(id) {
		return
	}
	if c.selected == id {
		c.selected = ""
	}
	log.Printf("🗑️  Removed decoration %s", id)
}

// Select moves to Editing(id). Only decorations visible in the active context can be
// selected; anything else leaves the state untouched and returns false.
func (c *Controller) Select(id string) bool {
	if !c.isVisible(id) {
		return false
	}
	c.selected = id
	return true
}

// ClearSelection moves to Idle.
func (c *Controller) ClearSelection() {
	c.selected = ""
}

// PointerDown handles a pointer press at a logical canvas point: a hit selects the
// topmost decoration, a miss on the background clears the selection.
func (c *Controller) PointerDown(p Vec2) (Decoration, bool) {
	d, ok := HitTest(c.Visible(), p)
	if !ok {
		c.ClearSelection()
		return Decoration{}, false
	}
	c.selected = d.ID
	return d, true
}

// DeleteSelected removes the selected decoration. It is a no-op when Idle.
func (c *Controller) DeleteSelected() bool {
	if c.selected == "" {
		return false
	}
	c.RemoveDecoration(c.selected)
	c.selected = ""
	return true
}

// HandleKey reacts to a key press. Delete and Backspace delete the selection.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case "Delete", "Backspace":
		return c.DeleteSelected()
	}
	return false
}

// SetContext switches the active garment type and view side. The selection never
// survives a switch.
func (c *Controller) SetContext(ctx Context) {
	c.ClearSelection()
	if ctx != c.active {
		log.Printf("🔄 Switched context %s -> %s", c.active, ctx)
	}
	c.active = ctx
}

// SetGarmentType switches the garment, keeping the view side.
func (c *Controller) SetGarmentType(g GarmentType) {
	c.SetContext(Context{GarmentType: g, ViewSide: c.active.ViewSide})
}

// SetViewSide switches the view side, keeping the garment.
func (c *Controller) SetViewSide(v ViewSide) {
	c.SetContext(Context{GarmentType: c.active.GarmentType, ViewSide: v})
}

// ResizeViewport recomputes the display scale for a new available width.
func (c *Controller) ResizeViewport(availableWidth float64) float64 {
	c.displayScale = c.scaler.Scale(availableWidth)
	return c.displayScale
}

// DragEnd commits the final position of a drag. Rotation and scale are untouched.
// Decorations hidden in another context cannot be dragged; the commit is dropped.
func (c *Controller) DragEnd(id string, position Vec2) {
	if !c.isVisible(id) {
		return
	}
	c.store.Update(id, Patch{Position: &position})
}

// TransformEnd commits the result of a rotate/resize gesture on the selected decoration.
// The reported scale is only kept when the policy allows resizing; otherwise it is
// discarded. Commits for anything but the selection are dropped.
func (c *Controller) TransformEnd(id string, r TransformReport) {
	if c.selected != id || !c.isVisible(id) {
		return
	}
	rotation := r.Rotation
	p := Patch{Position: &r.Position, Rotation: &rotation}
	if c.settings.Policy.ResizeEnabled() {
		if d, ok := c.store.Get(id); ok {
			scale := clampScale(r.Scale, d.Size)
			p.Scale = &scale
		}
	}
	c.store.Update(id, p)
}

// Begin starts a drag or transform interaction on a visible decoration. A transform
// requires the decoration to be selected, since the gizmo is only shown on the selection.
func (c *Controller) Begin(kind InteractionKind, id string) (*Interaction, bool) {
	d, ok := c.store.Get(id)
	if !ok || d.Context != c.active {
		return nil, false
	}
	if kind == InteractionTransform && c.selected != id {
		return nil, false
	}
	return &Interaction{
		controller: c,
		id:         id,
		kind:       kind,
		live:       TransformReport{Position: d.Position, Rotation: d.Rotation, Scale: d.Scale},
	}, true
}

func (c *Controller) isVisible(id string) bool {
	d, ok := c.store.Get(id)
	return ok && d.Context == c.active
}

func clampScale(scale Vec2, size Size) Vec2 {
	return Vec2{X: clampAxis(scale.X, size.Width), Y: clampAxis(scale.Y, size.Height)}
}

func clampAxis(s, extent float64) float64 {
	if !isFinite(s) || extent <= 0 {
		return 1
	}
	min := minScaledPx / extent
	if math.Abs(s) < min {
		if s < 0 {
			return -min
		}
		return min
	}
	return s
}
