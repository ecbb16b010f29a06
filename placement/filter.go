package placement

// Visible returns the decorations whose context equals ctx, keeping their relative
// paint order. It holds no state; call it again after every mutation.
func Visible(all []Decoration, ctx Context) []Decoration {
	out := make([]Decoration, 0, len(all))
	for _, d := range all {
		if d.Context == ctx {
			out = append(out, d)
		}
	}
	return out
}
