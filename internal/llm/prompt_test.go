package llm

import (
	"reflect"
	"testing"
)

func TestParseTextField(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "object", raw: `{"humanizedText":" Sounds right. "}`, want: "Sounds right."},
		{name: "embedded", raw: "Sure! {\"humanizedText\":\"Sounds right.\"} Hope it helps.", want: "Sounds right."},
		{name: "fenced", raw: "```json\n{\"humanizedText\":\"Sounds right.\"}\n```", want: "Sounds right."},
		{name: "prose", raw: "Sounds right.", want: "Sounds right."},
		{name: "prose with braces", raw: "Use {curly} quotes.", want: "Use {curly} quotes."},
		{name: "wrong field", raw: `{"text":"Sounds right."}`, wantErr: true},
		{name: "broken json", raw: `{"humanizedText":`, wantErr: true},
		{name: "empty", raw: "  ", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseTextField(tc.raw, fieldHumanized)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTextField() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("parseTextField() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseReferences(t *testing.T) {
	t.Parallel()

	want := []string{"Smith (2020). On Drafting.", "Lee (2019). Revision."}
	inputs := map[string]string{
		"object": `{"references":["Smith (2020). On Drafting.","Lee  (2019). Revision."]}`,
		"array":  `Here you go: ["Smith (2020). On Drafting.", "Lee (2019). Revision."]`,
		"lines":  "1. Smith (2020). On Drafting.\n\n- Lee (2019). Revision.",
	}
	for name, raw := range inputs {
		got, err := parseReferences(raw)
		if err != nil {
			t.Fatalf("%s: parseReferences() error = %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: parseReferences() = %#v, want %#v", name, got, want)
		}
	}

	if _, err := parseReferences(`{"references":[]}`); err == nil {
		t.Fatalf("expected error for empty reference list")
	}
}

func TestParseStyleAndLanguage(t *testing.T) {
	t.Parallel()

	if got, err := ParseStyle(" casual "); err != nil || got != StyleCasual {
		t.Fatalf("ParseStyle(casual) = %q, %v", got, err)
	}
	if _, err := ParseStyle("gothic"); err == nil {
		t.Fatalf("expected error for unknown style")
	}
	if got, err := ParseLanguage("URDU"); err != nil || got != Urdu {
		t.Fatalf("ParseLanguage(URDU) = %q, %v", got, err)
	}
	if _, err := ParseLanguage("French"); err == nil {
		t.Fatalf("expected error for unsupported language")
	}
}

func TestClipTextCountsRunes(t *testing.T) {
	t.Parallel()

	if got := clipText("  héllo  ", 3); got != "hél" {
		t.Fatalf("clipText() = %q", got)
	}
}
