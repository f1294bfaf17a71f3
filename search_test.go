package treesearch_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/njchilds90/go-treesearch"
)

// messyJSON mixes every kind of node at several depths.
var messyJSON = []byte(`{
	"a": {
		"b": [0, 0.5, "shimi"],
		"c": [null]
	},
	"d": [
		[1, "hey"],
		["lol", "lol"]
	],
	"e": {
		"f": {"g": 2},
		"h": [3, true]
	}
}`)

func messyTree(t *testing.T) treesearch.Value {
	t.Helper()
	v, err := treesearch.Unmarshal(messyJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return v
}

func TestSearchFindsKeysAndLeaves(t *testing.T) {
	tree := messyTree(t)

	var targets []treesearch.Value
	for c := 'a'; c <= 'h'; c++ {
		targets = append(targets, treesearch.String(string(c)))
	}
	for n := int64(0); n <= 3; n++ {
		targets = append(targets, treesearch.Int(n))
	}
	targets = append(targets,
		treesearch.Bool(true),
		treesearch.Float(0.5),
		treesearch.Null(),
		treesearch.String("shimi"),
		treesearch.String("hey"),
		treesearch.String("lol"),
	)

	for _, target := range targets {
		if !treesearch.Search(tree, target) {
			t.Errorf("expected to find %s", target)
		}
	}
}

func TestSearchMisses(t *testing.T) {
	tree := messyTree(t)
	for _, target := range []treesearch.Value{
		treesearch.Bool(false),
		treesearch.Int(4),
		treesearch.Float(1.5),
		treesearch.String("i"),
		treesearch.String("Hello"),
	} {
		if treesearch.Search(tree, target) {
			t.Errorf("did not expect to find %s", target)
		}
	}
}

func TestSearchScenario(t *testing.T) {
	tree := treesearch.Object(
		treesearch.M("a", treesearch.Object(
			treesearch.M("b", treesearch.Array(treesearch.Int(0), treesearch.Float(0.5), treesearch.String("shimi"))),
		)),
	)

	tests := []struct {
		target treesearch.Value
		want   bool
	}{
		{treesearch.String("a"), true},
		{treesearch.String("b"), true},
		{treesearch.Float(0.5), true},
		{treesearch.Bool(false), false},
		{treesearch.Float(1.5), false},
	}
	for _, tc := range tests {
		if got := treesearch.Search(tree, tc.target); got != tc.want {
			t.Errorf("Search(%s) = %v, want %v", tc.target, got, tc.want)
		}
	}
}

func TestSearchTypeSensitive(t *testing.T) {
	tree := treesearch.Object(
		treesearch.M("0", treesearch.String("1")),
		treesearch.M("true", treesearch.Array(treesearch.String("null"), treesearch.Int(7))),
	)

	misses := []treesearch.Value{
		treesearch.Int(0),      // key "0"
		treesearch.Int(1),      // leaf "1"
		treesearch.Bool(true),  // key "true"
		treesearch.Null(),      // leaf "null"
		treesearch.String("7"), // leaf 7
		treesearch.Float(7),    // integer 7
	}
	for _, target := range misses {
		if treesearch.Search(tree, target) {
			t.Errorf("%s (%s) must not match", target, target.Kind())
		}
	}

	hits := []treesearch.Value{
		treesearch.String("0"),
		treesearch.String("1"),
		treesearch.String("true"),
		treesearch.String("null"),
		treesearch.Int(7),
	}
	for _, target := range hits {
		if !treesearch.Search(tree, target) {
			t.Errorf("%s (%s) must match", target, target.Kind())
		}
	}
}

func TestSearchScalarRoot(t *testing.T) {
	if !treesearch.Search(treesearch.Int(5), treesearch.Int(5)) {
		t.Error("expected scalar root to match itself")
	}
	if treesearch.Search(treesearch.Int(5), treesearch.Int(6)) {
		t.Error("expected 5 not to match 6")
	}
	if !treesearch.Search(treesearch.Null(), treesearch.Null()) {
		t.Error("expected null root to match null")
	}
}

func TestSearchEmptyContainers(t *testing.T) {
	targets := []treesearch.Value{
		treesearch.Null(), treesearch.Bool(false), treesearch.Int(0),
		treesearch.String(""), treesearch.Array(), treesearch.Object(),
	}
	for _, root := range []treesearch.Value{treesearch.Array(), treesearch.Object()} {
		for _, target := range targets {
			if treesearch.Search(root, target) {
				t.Errorf("Search(%s, %s) = true, want false", root, target)
			}
		}
	}
}

func TestSearchContainerTargetNeverMatches(t *testing.T) {
	// Only keys and scalars are compared, never whole containers.
	tree := treesearch.Array(treesearch.Array(treesearch.Int(1)))
	if treesearch.Search(tree, treesearch.Array(treesearch.Int(1))) {
		t.Error("container target must not match a container node")
	}
}

func TestSearchDeepTree(t *testing.T) {
	const depth = 200000

	leaf := treesearch.String("bottom")
	tree := leaf
	for i := 0; i < depth; i++ {
		if i%2 == 0 {
			tree = treesearch.Array(tree)
		} else {
			tree = treesearch.Object(treesearch.M(fmt.Sprintf("k%d", i), tree))
		}
	}

	if !treesearch.Search(tree, leaf) {
		t.Error("expected to find the deepest leaf")
	}
	if !treesearch.Search(tree, treesearch.String("k1")) {
		t.Error("expected to find the deepest key")
	}
	if treesearch.Search(tree, treesearch.String("top")) {
		t.Error("did not expect to find a missing value")
	}
}

func TestUnmarshalDeepDocument(t *testing.T) {
	const depth = 20000

	doc := strings.Repeat("[", depth) + `"x"` + strings.Repeat("]", depth)
	ok, err := treesearch.Contains([]byte(doc), treesearch.String("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected to find the innermost string")
	}

	v, err := treesearch.Unmarshal([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := treesearch.Stats(v).Depth; got != depth+1 {
		t.Errorf("Depth = %d, want %d", got, depth+1)
	}

	tree := treesearch.String("bottom")
	for i := 0; i < depth; i++ {
		tree = treesearch.Object(treesearch.M("k", treesearch.Array(tree)))
	}
	b, err := treesearch.Marshal(tree)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	back, err := treesearch.Unmarshal(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !treesearch.Search(back, treesearch.String("bottom")) {
		t.Error("expected to find the deepest leaf after a round trip")
	}
	if got := treesearch.Stats(back).Depth; got != 2*depth+1 {
		t.Errorf("round trip Depth = %d, want %d", got, 2*depth+1)
	}
}

func TestSearchDoesNotMutate(t *testing.T) {
	tree := messyTree(t)
	before := tree.String()
	treesearch.Search(tree, treesearch.String("nothing"))
	if after := tree.String(); after != before {
		t.Errorf("tree changed during search:\n%s\n%s", before, after)
	}
}

func TestSearchConcurrent(t *testing.T) {
	tree := messyTree(t)
	done := make(chan bool)
	for i := 0; i < 8; i++ {
		go func() {
			done <- treesearch.Search(tree, treesearch.String("g")) && !treesearch.Search(tree, treesearch.String("z"))
		}()
	}
	for i := 0; i < 8; i++ {
		if !<-done {
			t.Error("concurrent search returned a wrong result")
		}
	}
}

func TestWalkLevelOrder(t *testing.T) {
	tree := treesearch.MustParse([]byte(`{"x":[1,2],"y":{"z":3}}`))

	var depths []int
	var kinds []treesearch.Kind
	treesearch.Walk(tree, func(depth int, v *treesearch.Value) bool {
		depths = append(depths, depth)
		kinds = append(kinds, v.Kind())
		return true
	})

	wantDepths := []int{0, 1, 1, 2, 2, 2}
	if fmt.Sprint(depths) != fmt.Sprint(wantDepths) {
		t.Errorf("depths = %v, want %v", depths, wantDepths)
	}
	if kinds[0] != treesearch.KindObject || kinds[1] != treesearch.KindArray || kinds[2] != treesearch.KindObject {
		t.Errorf("unexpected kinds %v", kinds)
	}
}

func TestWalkStops(t *testing.T) {
	tree := messyTree(t)
	visited := 0
	treesearch.Walk(tree, func(depth int, v *treesearch.Value) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("expected walk to stop after 3 nodes, visited %d", visited)
	}
}

func TestStats(t *testing.T) {
	st := treesearch.Stats(messyTree(t))
	want := treesearch.TreeStats{Nodes: 21, Keys: 8, Depth: 4, MaxWidth: 11}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}

	if st := treesearch.Stats(treesearch.Int(1)); st.Nodes != 1 || st.Depth != 1 {
		t.Errorf("scalar Stats = %+v", st)
	}
}

func TestContains(t *testing.T) {
	ok, err := treesearch.Contains(messyJSON, treesearch.String("shimi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected to find shimi")
	}

	_, err = treesearch.Contains([]byte(`{bad`), treesearch.Null())
	if !treesearch.IsJSONError(err) {
		t.Errorf("expected JSON error, got %v", err)
	}
}

func BenchmarkSearchMiss(b *testing.B) {
	tree := treesearch.MustParse(messyJSON)
	target := treesearch.String("missing")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		treesearch.Search(tree, target)
	}
}
