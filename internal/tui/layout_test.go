package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name         string
		width        int
		height       int
		editorWidth  int
		editorHeight int
	}{
		{name: "standard", width: 80, height: 24, editorWidth: 76, editorHeight: 10},
		{name: "wide", width: 200, height: 40, editorWidth: 196, editorHeight: 26},
		{name: "cramped", width: 30, height: 10, editorWidth: minEditorWidth, editorHeight: minEditorHeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.editorWidth != tc.editorWidth {
				t.Fatalf("editor width mismatch: got %d want %d", layout.editorWidth, tc.editorWidth)
			}
			if layout.editorHeight != tc.editorHeight {
				t.Fatalf("editor height mismatch: got %d want %d", layout.editorHeight, tc.editorHeight)
			}
		})
	}
}

func TestWrapWidthFloor(t *testing.T) {
	layout := newPageLayout()
	layout.Update(40, 20)
	if got := layout.wrapWidth(30); got != 20 {
		t.Fatalf("wrap width floor mismatch: %d", got)
	}
	if got := layout.wrapWidth(-1); got != 36 {
		t.Fatalf("negative padding should be ignored, got %d", got)
	}
}
