package editor

import "testing"

func TestFromParagraphs(t *testing.T) {
	t.Parallel()

	got := FromParagraphs("First line\n\n  \nSecond line\r\n")
	want := "<p>First line</p><p>Second line</p>"
	if got != want {
		t.Fatalf("FromParagraphs() = %q, want %q", got, want)
	}
	if got := FromParagraphs(""); got != "" {
		t.Fatalf("FromParagraphs(\"\") = %q, want empty", got)
	}
}

func TestParagraphs(t *testing.T) {
	t.Parallel()

	doc := "<h1>Title</h1><p>One <strong>bold</strong> move</p><p><br></p><ul><li>item</li></ul>"
	got := Paragraphs(doc)
	want := "Title\nOne bold move\nitem"
	if got != want {
		t.Fatalf("Paragraphs() = %q, want %q", got, want)
	}
}

func TestCaptureSelectionClampsAndOrders(t *testing.T) {
	t.Parallel()

	doc := "<p>abc</p>"
	sel := CaptureSelection(doc, 6, 3, 4)
	if sel.Text != "abc" || sel.Span != (Span{Start: 3, End: 6}) || sel.Version != 4 {
		t.Fatalf("CaptureSelection reversed = %+v", sel)
	}
	if sel := CaptureSelection(doc, 5, 99, 0); sel.Text != "c</p>" {
		t.Fatalf("CaptureSelection clamped = %+v", sel)
	}
	if sel := CaptureSelection(doc, 2, 2, 0); !sel.IsEmpty() {
		t.Fatalf("collapsed range should be empty, got %+v", sel)
	}
}

func TestParagraphsRoundTripMarkupCharacters(t *testing.T) {
	t.Parallel()

	text := "use x<y and z>w here\nTom & Jerry say \"hi\""
	doc := FromParagraphs(text)
	want := "<p>use x&lt;y and z&gt;w here</p><p>Tom &amp; Jerry say \"hi\"</p>"
	if doc != want {
		t.Fatalf("FromParagraphs() = %q, want %q", doc, want)
	}
	if got := Paragraphs(doc); got != text {
		t.Fatalf("Paragraphs(FromParagraphs()) = %q, want %q", got, text)
	}
}

func TestFindTextSkipsTags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		doc  string
		text string
		want Span
		ok   bool
	}{
		{name: "tag name", doc: "<p>a paragraph</p>", text: "p", want: Span{Start: 5, End: 6}, ok: true},
		{name: "attribute", doc: `<p class="intro">intro text</p>`, text: "intro", want: Span{Start: 17, End: 22}, ok: true},
		{name: "across paragraphs", doc: "<p>one</p><p>two</p>", text: "one</p><p>two", want: Span{Start: 3, End: 16}, ok: true},
		{name: "only inside tags", doc: "<strong>bold</strong>", text: "strong", ok: false},
		{name: "escaped text", doc: "<p>x &lt; y</p>", text: "x &lt; y", want: Span{Start: 3, End: 11}, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindText(tc.doc, tc.text)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("FindText(%q, %q) = %+v, %v; want %+v, %v", tc.doc, tc.text, got, ok, tc.want, tc.ok)
			}
		})
	}
}
