package placement

// InteractionKind distinguishes a drag from a rotate/resize gesture.
type InteractionKind int

const (
	InteractionDrag InteractionKind = iota
	InteractionTransform
)

func (k InteractionKind) String() string {
	if k == InteractionTransform {
		return "transform"
	}
	return "drag"
}

// Interaction is the begin/continue/end contract offered to the transform gizmo of the
// rendering surface. Continue only records live values for display; nothing reaches
// the store until End.
type Interaction struct {
	controller *Controller
	id         string
	kind       InteractionKind
	live       TransformReport
	ended      bool
}

// ID returns the decoration being manipulated.
func (i *Interaction) ID() string { return i.id }

// Kind returns the interaction kind.
func (i *Interaction) Kind() InteractionKind { return i.kind }

// Live returns the latest values reported during the gesture.
func (i *Interaction) Live() TransformReport { return i.live }

// Continue records an intermediate value from the surface.
func (i *Interaction) Continue(r TransformReport) {
	if i.ended {
		return
	}
	i.live = r
}

// End commits the final reported values. Calling End twice is a no-op, and so is
// ending an interaction whose decoration was deleted meanwhile.
func (i *Interaction) End(r TransformReport) {
	if i.ended {
		return
	}
	i.ended = true
	i.live = r
	switch i.kind {
	case InteractionDrag:
		i.controller.DragEnd(i.id, r.Position)
	case InteractionTransform:
		i.controller.TransformEnd(i.id, r)
	}
}

// Cancel abandons the gesture without committing anything.
func (i *Interaction) Cancel() {
	i.ended = true
}
