package widget

import "testing"

func TestPreferredSize(t *testing.T) {
	tests := []struct {
		name  string
		w     interface{ PreferredSize() (int, int) }
		wantW int
		wantH int
	}{
		{"label", NewLabel("a", "hello"), 5, 1},
		{"empty label", NewLabel("a", ""), 1, 1},
		{"wide label", NewLabel("a", "日本"), 4, 1},
		{"button", NewButton("b", "OK"), 6, 1},
		{"frame", NewFrame("f", "Files"), 7, 2},
		{"untitled frame", NewFrame("f", ""), 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.w.PreferredSize()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("PreferredSize() = %d, %d, want %d, %d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, ok := New("button", "b", "x").(*Button); !ok {
		t.Error(`New("button") is not a *Button`)
	}
	if _, ok := New("frame", "f", "x").(*Frame); !ok {
		t.Error(`New("frame") is not a *Frame`)
	}
	if l, ok := New("label", "l", "x").(*Label); !ok || l.Name() != "l" || l.Text != "x" {
		t.Errorf(`New("label") = %#v`, l)
	}
	if b := NewButton("b", "OK"); b.Caption() != "[ OK ]" {
		t.Errorf("Caption() = %q", b.Caption())
	}
}
