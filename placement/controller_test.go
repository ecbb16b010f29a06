package placement

import (
	"math/rand"
	"testing"
)

func newTestController(t *testing.T, mode Mode) *Controller {
	t.Helper()
	settings := DefaultSettings()
	settings.Policy.Mode = mode
	c, err := NewController(settings, hoodieFront)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return c
}

func TestNewController(t *testing.T) {
	t.Run("starts idle on the initial context", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		if c.State() != StateIdle {
			t.Errorf("State() = %v, want idle", c.State())
		}
		if c.ActiveContext() != hoodieFront {
			t.Errorf("ActiveContext() = %v, want %v", c.ActiveContext(), hoodieFront)
		}
		if c.DisplayScale() != 1 {
			t.Errorf("DisplayScale() = %v, want 1", c.DisplayScale())
		}
	})

	t.Run("rejects an invalid garment width", func(t *testing.T) {
		settings := DefaultSettings()
		settings.ReferenceWidthMm = 0
		if _, err := NewController(settings, hoodieFront); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		settings := DefaultSettings()
		settings.Policy.Mode = "stretchy"
		if _, err := NewController(settings, hoodieFront); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestController_AddDecoration_PhysicalSize(t *testing.T) {
	// 500px canvas mapped to 500mm, 45x60mm target.
	c := newTestController(t, ModeSizeLocked)
	d := c.AddDecoration("/stickers/text_00.png")

	if d.Size != (Size{Width: 45, Height: 60}) {
		t.Errorf("Size = %+v, want 45x60", d.Size)
	}
	if d.Position != (Vec2{X: 227.5, Y: 270}) {
		t.Errorf("Position = %+v, want (227.5, 270)", d.Position)
	}
	if d.Context != hoodieFront {
		t.Errorf("Context = %v, want %v", d.Context, hoodieFront)
	}
	if c.State() != StateIdle {
		t.Error("adding a decoration should not select it")
	}
}

func TestController_AddDecoration_FreeTransformDefaultSize(t *testing.T) {
	c := newTestController(t, ModeFreeTransform)
	d := c.AddDecoration("a")
	if d.Size != (Size{Width: 100, Height: 100}) {
		t.Errorf("Size = %+v, want 100x100", d.Size)
	}
	if d.Position != (Vec2{X: 200, Y: 250}) {
		t.Errorf("Position = %+v, want (200, 250)", d.Position)
	}
}

func TestController_ContextFilterScenario(t *testing.T) {
	c := newTestController(t, ModeSizeLocked)
	a := c.AddDecoration("A")
	c.SetViewSide(ViewBack)
	c.AddDecoration("B")
	c.SetViewSide(ViewFront)

	got := c.Visible()
	if len(got) != 1 || got[0].ID != a.ID {
		t.Errorf("Visible() = %v, want only A", got)
	}
	if len(c.Decorations()) != 2 {
		t.Errorf("Decorations() has %d entries, want 2", len(c.Decorations()))
	}
}

func TestController_SelectionTransitions(t *testing.T) {
	t.Run("pointer down on a decoration selects it", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		got, ok := c.PointerDown(Vec2{X: 250, Y: 300})
		if !ok || got.ID != a.ID {
			t.Fatalf("PointerDown() = %q, %v; want %q", got.ID, ok, a.ID)
		}
		if id, _ := c.Selection(); id != a.ID || c.State() != StateEditing {
			t.Errorf("Selection() = %q (%v), want Editing(%s)", id, c.State(), a.ID)
		}
	})

	t.Run("pointer down on background goes idle", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		if _, ok := c.PointerDown(Vec2{X: 5, Y: 5}); ok {
			t.Error("expected a miss")
		}
		if c.State() != StateIdle {
			t.Errorf("State() = %v, want idle", c.State())
		}
	})

	t.Run("pointer down on another decoration switches directly", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		b := c.AddDecoration("B")
		pos := Vec2{X: 10, Y: 10}
		c.DragEnd(b.ID, pos)
		c.Select(a.ID)

		got, ok := c.PointerDown(Vec2{X: 20, Y: 20})
		if !ok || got.ID != b.ID {
			t.Fatalf("PointerDown() = %q, want %q", got.ID, b.ID)
		}
		if id, _ := c.Selection(); id != b.ID {
			t.Errorf("Selection() = %q, want %q", id, b.ID)
		}
	})

	t.Run("overlapping decorations select the topmost", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		c.AddDecoration("A")
		b := c.AddDecoration("B")
		got, _ := c.PointerDown(Vec2{X: 250, Y: 300})
		if got.ID != b.ID {
			t.Errorf("PointerDown() = %q, want later-added %q", got.ID, b.ID)
		}
	})

	t.Run("decorations of other contexts cannot be selected", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.SetViewSide(ViewBack)
		if c.Select(a.ID) {
			t.Error("Select() = true for a decoration of another view")
		}
		if _, ok := c.PointerDown(Vec2{X: 250, Y: 300}); ok {
			t.Error("PointerDown() hit a decoration of another view")
		}
	})
}

func TestController_DeleteClearsSelection(t *testing.T) {
	t.Run("delete command", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		if !c.DeleteSelected() {
			t.Fatal("DeleteSelected() = false")
		}
		if c.State() != StateIdle {
			t.Errorf("State() = %v, want idle", c.State())
		}
		if _, ok := c.Decoration(a.ID); ok {
			t.Error("decoration still in store")
		}
	})

	for _, key := range []string{"Delete", "Backspace"} {
		t.Run(key+" key", func(t *testing.T) {
			c := newTestController(t, ModeSizeLocked)
			a := c.AddDecoration("A")
			c.Select(a.ID)
			if !c.HandleKey(key) {
				t.Fatalf("HandleKey(%q) = false", key)
			}
			if c.State() != StateIdle || len(c.Decorations()) != 0 {
				t.Errorf("after %s: state %v, %d decorations", key, c.State(), len(c.Decorations()))
			}
		})
	}

	t.Run("keys without a selection do nothing", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		c.AddDecoration("A")
		if c.HandleKey("Delete") {
			t.Error("HandleKey() = true while idle")
		}
		if c.HandleKey("Enter") {
			t.Error("HandleKey(Enter) = true")
		}
		if len(c.Decorations()) != 1 {
			t.Error("decoration removed without a selection")
		}
	})

	t.Run("removing the selected id directly", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		b := c.AddDecoration("B")
		c.Select(a.ID)
		c.RemoveDecoration(b.ID)
		if id, _ := c.Selection(); id != a.ID {
			t.Errorf("removing another decoration changed selection to %q", id)
		}
		c.RemoveDecoration(a.ID)
		if c.State() != StateIdle {
			t.Error("removing the selected decoration left it selected")
		}
		c.RemoveDecoration("sticker-missing")
	})
}

func TestController_ContextSwitchClearsSelection(t *testing.T) {
	switches := map[string]func(c *Controller){
		"view side":    func(c *Controller) { c.SetViewSide(ViewBack) },
		"garment type": func(c *Controller) { c.SetGarmentType("trainer") },
		"same context": func(c *Controller) { c.SetContext(hoodieFront) },
	}
	for name, switchFn := range switches {
		t.Run(name, func(t *testing.T) {
			c := newTestController(t, ModeSizeLocked)
			a := c.AddDecoration("A")
			c.Select(a.ID)
			switchFn(c)
			if c.State() != StateIdle {
				t.Errorf("State() = %v, want idle", c.State())
			}
			if _, ok := c.Decoration(a.ID); !ok {
				t.Error("decoration should survive a context switch")
			}
		})
	}
}

func TestController_DragEnd(t *testing.T) {
	c := newTestController(t, ModeFreeTransform)
	a := c.AddDecoration("A")
	rot := 30.0
	scale := Vec2{X: 2, Y: 2}
	c.UpdateDecoration(a.ID, Patch{Rotation: &rot, Scale: &scale})

	c.DragEnd(a.ID, Vec2{X: 12, Y: 34})
	got, _ := c.Decoration(a.ID)
	if got.Position != (Vec2{X: 12, Y: 34}) {
		t.Errorf("Position = %+v, want (12, 34)", got.Position)
	}
	if got.Rotation != 30 || got.Scale != scale {
		t.Errorf("drag changed rotation/scale: %v %+v", got.Rotation, got.Scale)
	}

	c.DragEnd("sticker-missing", Vec2{X: 1, Y: 1})
}

func TestController_TransformEnd(t *testing.T) {
	t.Run("size-locked discards reported scale", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		c.TransformEnd(a.ID, TransformReport{Position: Vec2{X: 200, Y: 260}, Rotation: 400, Scale: Vec2{X: 1.3, Y: 0.7}})
		got, _ := c.Decoration(a.ID)
		if got.Rotation != 40 {
			t.Errorf("Rotation = %v, want 40", got.Rotation)
		}
		if got.Scale != (Vec2{X: 1, Y: 1}) {
			t.Errorf("Scale = %+v, want (1, 1)", got.Scale)
		}
		if got.Position != (Vec2{X: 200, Y: 260}) {
			t.Errorf("Position = %+v, want (200, 260)", got.Position)
		}
	})

	t.Run("free transform keeps scale", func(t *testing.T) {
		c := newTestController(t, ModeFreeTransform)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		c.TransformEnd(a.ID, TransformReport{Position: a.Position, Rotation: 15, Scale: Vec2{X: 1.5, Y: 2}})
		got, _ := c.Decoration(a.ID)
		if got.Scale != (Vec2{X: 1.5, Y: 2}) {
			t.Errorf("Scale = %+v, want (1.5, 2)", got.Scale)
		}
		if got.Size != a.Size {
			t.Errorf("Size = %+v, want nominal %+v", got.Size, a.Size)
		}
	})

	t.Run("free transform clamps tiny scale", func(t *testing.T) {
		c := newTestController(t, ModeFreeTransform)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		c.TransformEnd(a.ID, TransformReport{Position: a.Position, Scale: Vec2{X: 0.001, Y: -0.001}})
		got, _ := c.Decoration(a.ID)
		if got.Scale != (Vec2{X: 0.05, Y: -0.05}) {
			t.Errorf("Scale = %+v, want (0.05, -0.05)", got.Scale)
		}
	})
}

func TestController_CommitsRequireTarget(t *testing.T) {
	t.Run("hidden decoration after a view switch", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.Select(a.ID)
		c.SetViewSide(ViewBack)

		c.TransformEnd(a.ID, TransformReport{Position: a.Position, Rotation: 90, Scale: a.Scale})
		c.DragEnd(a.ID, Vec2{X: 7, Y: 8})
		if got, _ := c.Decoration(a.ID); got != a {
			t.Errorf("hidden decoration changed: %+v", got)
		}
		if c.State() != StateIdle {
			t.Errorf("State() = %v, want idle", c.State())
		}
	})

	t.Run("transform on an unselected decoration", func(t *testing.T) {
		c := newTestController(t, ModeFreeTransform)
		a := c.AddDecoration("A")
		b := c.AddDecoration("B")
		c.Select(b.ID)

		c.TransformEnd(a.ID, TransformReport{Position: a.Position, Rotation: 45, Scale: Vec2{X: 2, Y: 2}})
		if got, _ := c.Decoration(a.ID); got != a {
			t.Errorf("unselected decoration changed: %+v", got)
		}

		c.ClearSelection()
		c.TransformEnd(b.ID, TransformReport{Position: b.Position, Rotation: 45, Scale: b.Scale})
		if got, _ := c.Decoration(b.ID); got.Rotation != 0 {
			t.Errorf("transform committed while idle: rotation %v", got.Rotation)
		}
	})

	t.Run("drag needs no selection", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.DragEnd(a.ID, Vec2{X: 7, Y: 8})
		if got, _ := c.Decoration(a.ID); got.Position != (Vec2{X: 7, Y: 8}) {
			t.Errorf("Position = %+v, want (7, 8)", got.Position)
		}
	})
}

func TestController_SizeLockedInvariant(t *testing.T) {
	c := newTestController(t, ModeSizeLocked)
	rng := rand.New(rand.NewSource(42))
	created := map[string]Decoration{}
	for i := 0; i < 5; i++ {
		d := c.AddDecoration("A")
		created[d.ID] = d
	}

	for i := 0; i < 300; i++ {
		visible := c.Visible()
		d := visible[rng.Intn(len(visible))]
		report := TransformReport{
			Position: Vec2{X: rng.Float64() * 500, Y: rng.Float64() * 600},
			Rotation: rng.Float64()*720 - 360,
			Scale:    Vec2{X: rng.Float64() * 3, Y: rng.Float64() * 3},
		}
		if rng.Intn(2) == 0 {
			c.DragEnd(d.ID, report.Position)
			continue
		}
		c.Select(d.ID)
		if it, ok := c.Begin(InteractionTransform, d.ID); ok {
			it.Continue(report)
			it.End(report)
		}
	}

	for _, d := range c.Decorations() {
		orig := created[d.ID]
		if d.Size != orig.Size || d.Scale != orig.Scale {
			t.Errorf("%s: size %+v scale %+v, want %+v %+v", d.ID, d.Size, d.Scale, orig.Size, orig.Scale)
		}
	}
}

func TestController_SelectThenSwitchView(t *testing.T) {
	c := newTestController(t, ModeSizeLocked)
	a := c.AddDecoration("A")
	c.Select(a.ID)
	c.SetViewSide(ViewBack)

	if _, ok := c.Selection(); ok {
		t.Error("selection survived a view switch")
	}
	if _, ok := c.Decoration(a.ID); !ok {
		t.Error("A should still exist in the store")
	}
}

func TestController_ResizeViewportKeepsCoordinates(t *testing.T) {
	c := newTestController(t, ModeSizeLocked)
	a := c.AddDecoration("A")

	for _, w := range []float64{320, 0, 1920, -5} {
		scale := c.ResizeViewport(w)
		if !(scale > 0 && scale <= 1) {
			t.Errorf("ResizeViewport(%v) = %v, outside (0, 1]", w, scale)
		}
	}
	got, _ := c.Decoration(a.ID)
	if got != a {
		t.Errorf("viewport resize changed a decoration: %+v", got)
	}
	if c.Converter().PixelsPerMillimetre() != 1 {
		t.Errorf("PixelsPerMillimetre() = %v, want 1", c.Converter().PixelsPerMillimetre())
	}
}

func TestInteraction(t *testing.T) {
	t.Run("continue is visual only", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		it, ok := c.Begin(InteractionDrag, a.ID)
		if !ok {
			t.Fatal("Begin() = false")
		}
		it.Continue(TransformReport{Position: Vec2{X: 1, Y: 2}})
		if got, _ := c.Decoration(a.ID); got.Position != a.Position {
			t.Error("Continue() reached the store")
		}
		if it.Live().Position != (Vec2{X: 1, Y: 2}) {
			t.Errorf("Live() = %+v", it.Live())
		}
		it.End(TransformReport{Position: Vec2{X: 3, Y: 4}, Rotation: 90})
		got, _ := c.Decoration(a.ID)
		if got.Position != (Vec2{X: 3, Y: 4}) || got.Rotation != 0 {
			t.Errorf("after drag End: %+v", got)
		}
		it.End(TransformReport{Position: Vec2{X: 9, Y: 9}})
		if got, _ := c.Decoration(a.ID); got.Position != (Vec2{X: 3, Y: 4}) {
			t.Error("second End() committed again")
		}
	})

	t.Run("transform requires selection", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		if _, ok := c.Begin(InteractionTransform, a.ID); ok {
			t.Error("Begin(transform) on unselected decoration = true")
		}
		c.Select(a.ID)
		if _, ok := c.Begin(InteractionTransform, a.ID); !ok {
			t.Error("Begin(transform) on selected decoration = false")
		}
	})

	t.Run("cancel commits nothing", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		it, _ := c.Begin(InteractionDrag, a.ID)
		it.Cancel()
		it.End(TransformReport{Position: Vec2{X: 5, Y: 5}})
		if got, _ := c.Decoration(a.ID); got.Position != a.Position {
			t.Error("End() after Cancel() committed")
		}
	})

	t.Run("end after delete is a no-op", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		it, _ := c.Begin(InteractionDrag, a.ID)
		c.RemoveDecoration(a.ID)
		it.End(TransformReport{Position: Vec2{X: 5, Y: 5}})
		if len(c.Decorations()) != 0 {
			t.Error("stale End() resurrected a decoration")
		}
	})

	t.Run("cannot begin on another view", func(t *testing.T) {
		c := newTestController(t, ModeSizeLocked)
		a := c.AddDecoration("A")
		c.SetViewSide(ViewBack)
		if _, ok := c.Begin(InteractionDrag, a.ID); ok {
			t.Error("Begin() on hidden decoration = true")
		}
	})
}
