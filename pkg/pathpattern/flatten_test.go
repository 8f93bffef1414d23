package pathpattern

import (
	"reflect"
	"testing"
)

func collect(t *testing.T, template string) [][]Node {
	t.Helper()
	tpl, err := Parse(template)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", template, err)
	}
	var out [][]Node
	for seq := range tpl.Flatten() {
		out = append(out, seq)
	}
	return out
}

func TestFlattenOrder(t *testing.T) {
	a, b, c := Text{Value: "a"}, Text{Value: "b"}, Text{Value: "c"}

	tests := []struct {
		template string
		want     [][]Node
	}{
		{
			template: "{a}{b}",
			want:     [][]Node{{a, b}, {a}, {b}, {}},
		},
		{
			template: "{a{b}}c",
			want:     [][]Node{{a, b, c}, {a, c}, {c}},
		},
		{
			template: "abc",
			want:     [][]Node{{Text{Value: "abc"}}},
		},
		{
			template: "",
			want:     [][]Node{{}},
		},
	}

	for _, tt := range tests {
		got := collect(t, tt.template)
		if len(got) != len(tt.want) {
			t.Fatalf("Flatten(%q) produced %d sequences, want %d: %v", tt.template, len(got), len(tt.want), got)
		}
		for i := range got {
			if len(got[i]) == 0 && len(tt.want[i]) == 0 {
				continue
			}
			if !reflect.DeepEqual(got[i], tt.want[i]) {
				t.Errorf("Flatten(%q)[%d] = %v, want %v", tt.template, i, got[i], tt.want[i])
			}
		}
	}
}

func TestFlattenSequencesAreIndependent(t *testing.T) {
	// Sequences collected together must not share storage: each
	// alternative keeps its own tail.
	got := collect(t, "/x{/:a}{/:b}/end")

	want := [][]string{
		{"/x", "/", ":a", "/", ":b", "/end"},
		{"/x", "/", ":a", "/end"},
		{"/x", "/", ":b", "/end"},
		{"/x", "/end"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d sequences, want %d", len(got), len(want))
	}
	for i, seq := range got {
		if rendered := render(seq); !reflect.DeepEqual(rendered, want[i]) {
			t.Errorf("sequence %d = %v, want %v", i, rendered, want[i])
		}
	}
}

func render(seq []Node) []string {
	var out []string
	for _, n := range seq {
		switch n := n.(type) {
		case Text:
			out = append(out, n.Value)
		case Param:
			out = append(out, ":"+n.Name)
		case Wildcard:
			out = append(out, "*"+n.Name)
		}
	}
	return out
}

func TestFlattenStopsEarly(t *testing.T) {
	tpl, err := Parse("{a}{b}{c}")
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	for range tpl.Flatten() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d times, want 2", n)
	}

	// A fresh range starts over.
	total := 0
	for range tpl.Flatten() {
		total++
	}
	if total != 8 {
		t.Errorf("total sequences = %d, want 8", total)
	}
}
