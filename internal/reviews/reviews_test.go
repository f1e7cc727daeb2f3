package reviews

import "testing"

func TestAddDefaults(t *testing.T) {
	l := NewList()
	r := l.Add()
	if r.Rating != 5 || r.Name != "" || r.Review != "" {
		t.Errorf("unexpected default review %+v", r)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
}

func TestMove(t *testing.T) {
	l := NewList()
	l.Replace([]Review{{Name: "a"}, {Name: "b"}, {Name: "c"}})

	l.Move(0, 1)
	got := l.Items()
	if got[0].Name != "b" || got[1].Name != "a" {
		t.Errorf("after move down: %v", got)
	}

	l.Move(2, 1) // past the end, ignored
	l.Move(0, -1)
	if l.Items()[0].Name != "b" {
		t.Errorf("out-of-range moves should be ignored: %v", l.Items())
	}
}

func TestUpdateAndDelete(t *testing.T) {
	l := NewList()
	l.Replace([]Review{{Name: "a"}, {Name: "b"}})

	l.Update(1, Review{Rating: 3, Name: "b2", Review: "ok"})
	if l.Items()[1].Name != "b2" || l.Items()[1].Rating != 3 {
		t.Errorf("update failed: %+v", l.Items()[1])
	}
	l.Update(5, Review{Name: "ghost"})

	l.Delete(0)
	if l.Len() != 1 || l.Items()[0].Name != "b2" {
		t.Errorf("delete failed: %v", l.Items())
	}
	l.Delete(9)
	if l.Len() != 1 {
		t.Errorf("out-of-range delete should be ignored")
	}
}
