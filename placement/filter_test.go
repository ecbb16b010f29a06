package placement

import "testing"

func TestVisible(t *testing.T) {
	t.Run("returns only the matching context", func(t *testing.T) {
		a := Decoration{ID: "A", Context: hoodieFront}
		b := Decoration{ID: "B", Context: hoodieBack}
		got := Visible([]Decoration{a, b}, hoodieFront)
		if len(got) != 1 || got[0].ID != "A" {
			t.Errorf("Visible() = %v, want [A]", got)
		}
	})

	t.Run("keeps relative paint order", func(t *testing.T) {
		all := []Decoration{
			{ID: "1", Context: trainerBack},
			{ID: "2", Context: hoodieFront},
			{ID: "3", Context: trainerBack},
			{ID: "4", Context: hoodieBack},
			{ID: "5", Context: trainerBack},
		}
		got := Visible(all, trainerBack)
		want := []string{"1", "3", "5"}
		if len(got) != len(want) {
			t.Fatalf("Visible() has %d entries, want %d", len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Errorf("Visible()[%d] = %s, want %s", i, got[i].ID, want[i])
			}
		}
	})

	t.Run("empty result is non-nil", func(t *testing.T) {
		got := Visible(nil, hoodieFront)
		if got == nil || len(got) != 0 {
			t.Errorf("Visible(nil) = %#v, want empty slice", got)
		}
	})
}
