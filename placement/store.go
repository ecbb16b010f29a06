package placement

import (
	"github.com/google/uuid"
)

// Canvas is the logical canvas size in pixels.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the canvas.
func (c Canvas) Center() Vec2 {
	return Vec2{X: c.Width / 2, Y: c.Height / 2}
}

// Store is the ordered collection of every placed decoration across all contexts.
// Slice order is paint order: later entries are drawn on top.
//
// Store is not safe for concurrent use; callers serialize access through one owner.
type Store struct {
	canvas      Canvas
	mode        Mode
	initialSize Size
	items       []Decoration
	newID       func() string
}

// NewStore returns an empty store. initialSize is the size given to new decorations.
func NewStore(canvas Canvas, mode Mode, initialSize Size) *Store {
	return &Store{
		canvas:      canvas,
		mode:        mode,
		initialSize: initialSize,
		newID: func() string {
			return "sticker-" + uuid.NewString()
		},
	}
}

// Add appends a new decoration centered on the canvas and stamped with ctx.
func (s *Store) Add(assetRef string, ctx Context) Decoration {
	d := Decoration{
		ID:       s.newID(),
		AssetRef: assetRef,
		Position: s.canvas.Center().Sub(s.initialSize.Half()),
		Size:     s.initialSize,
		Rotation: 0,
		Scale:    Vec2{X: 1, Y: 1},
		Context:  ctx,
	}
	s.items = append(s.items, d)
	return d
}

// Update applies p to the decoration with the given id in place. It reports whether
// the id was found; a missing id is not an error.
//
// In size-locked mode size and scale patches are dropped.
func (s *Store) Update(id string, p Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	d := &s.items[i]
	if p.Position != nil && p.Position.finite() {
		d.Position = *p.Position
	}
	if p.Rotation != nil {
		d.Rotation = NormalizeRotation(*p.Rotation)
	}
	if s.mode == ModeFreeTransform {
		if p.Scale != nil && p.Scale.finite() {
			d.Scale = *p.Scale
		}
		if p.Size != nil && isFinite(p.Size.Width) && isFinite(p.Size.Height) && p.Size.Width > 0 && p.Size.Height > 0 {
			d.Size = *p.Size
		}
	}
	return true
}

// Remove deletes the decoration with the given id, reporting whether it existed.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Get returns a copy of one decoration.
func (s *Store) Get(id string) (Decoration, bool) {
	i := s.index(id)
	if i < 0 {
		return Decoration{}, false
	}
	return s.items[i], true
}

// List returns a snapshot of all decorations in paint order.
func (s *Store) List() []Decoration {
	out := make([]Decoration, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of decorations across all contexts.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
