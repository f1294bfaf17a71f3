package bench

import "github.com/njchilds90/go-treesearch"

// searchDepthFirst answers the same question as treesearch.Search with
// plain recursion. It is the baseline the level-order search is measured
// against and is bounded by the goroutine stack on deep trees.
func searchDepthFirst(node treesearch.Value, target treesearch.Value) bool {
	switch node.Kind() {
	case treesearch.KindArray:
		for _, item := range node.Items() {
			if searchDepthFirst(item, target) {
				return true
			}
		}
		return false
	case treesearch.KindObject:
		for _, m := range node.Members() {
			if target.Equal(treesearch.String(m.Key)) || searchDepthFirst(m.Value, target) {
				return true
			}
		}
		return false
	case treesearch.KindNull, treesearch.KindBool, treesearch.KindNumber, treesearch.KindString:
		return node.Equal(target)
	default:
		panic("bench: unhandled kind " + node.Kind().String())
	}
}
