package vdom

import (
	"reflect"
	"testing"
)

func TestGetAttr(t *testing.T) {
	node := Div(
		A("s", "text"),
		A("t", true),
		A("f", false),
		A("i", 42),
		A("fl", 1.5),
		A("nil", nil),
	)

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"s", "text", true},
		{"t", "true", true},
		{"f", "false", true},
		{"i", "42", true},
		{"fl", "1.5", true},
		{"nil", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := node.GetAttr(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("GetAttr(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	var nilNode *VNode
	if _, ok := nilNode.GetAttr("id"); ok {
		t.Error("GetAttr on nil node should report false")
	}
}

func TestWalkOrderAndStop(t *testing.T) {
	tree := Div(ID("1"),
		Span(ID("2"), Span(ID("3"))),
		Fragment(Span(ID("4"))),
		Span(ID("5")),
	)

	var order []string
	Walk(tree, func(n *VNode) bool {
		if id := n.ID(); id != "" {
			order = append(order, id)
		}
		return true
	})
	if want := []string{"1", "2", "3", "4", "5"}; !reflect.DeepEqual(order, want) {
		t.Errorf("walk order = %v, want %v", order, want)
	}

	var visited int
	completed := Walk(tree, func(n *VNode) bool {
		visited++
		return n.ID() != "2"
	})
	if completed {
		t.Error("Walk should report false when stopped")
	}
	if visited != 2 {
		t.Errorf("visited = %d, want 2", visited)
	}
}

func TestQueryAllExcludesRoot(t *testing.T) {
	tree := Div(Part("root"),
		Button(Part("trigger")),
		Ul(Part("list"),
			Li(Part("item")),
			Li(Text("plain")),
		),
	)

	found := QueryAll(tree, "data-part")
	var labels []string
	for _, n := range found {
		label, _ := n.GetAttr("data-part")
		labels = append(labels, label)
	}
	if want := []string{"trigger", "list", "item"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	if QueryAll(nil, "data-part") != nil {
		t.Error("QueryAll(nil) should be nil")
	}
}
