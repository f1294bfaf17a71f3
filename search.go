// Package treesearch finds values inside JSON-like trees.
//
// A tree is built from Value nodes: scalars (null, bool, number, string)
// and containers (arrays and objects with ordered, unique keys). Search
// reports whether a target occurs anywhere in a tree, either as a scalar
// leaf or as an object key, walking the tree level by level with an
// explicit frontier instead of recursion.
//
// # Basic Usage
//
//	tree := treesearch.MustParse([]byte(`{"a":{"b":[0,0.5,"shimi"]}}`))
//
//	treesearch.Search(tree, treesearch.String("b")) // true, nested key
//	treesearch.Search(tree, treesearch.Float(0.5))  // true, nested leaf
//	treesearch.Search(tree, treesearch.Bool(false)) // false
//
// Keys and leaves are matched with the same type-sensitive equality, so
// the string "0" never matches the number 0.
//
// # Depth
//
// Memory used by Search grows with the widest level of the tree, not with
// its depth. Trees far deeper than the goroutine stack would allow for a
// recursive walk are searched without issue. Unmarshal and Contains keep
// open containers on a heap-allocated stack, so documents of that depth
// decode as well.
//
// # Concurrency
//
// Search only reads the tree. Any number of goroutines may search the same
// tree at once as long as nobody mutates it.
package treesearch

// Search reports whether target equals an object key or a scalar node
// anywhere in the tree rooted at root, including root itself.
//
// Nodes are visited in level order. Within a level the visiting order is
// unspecified. Search returns on the first match.
func Search(root Value, target Value) bool {
	var current []*Value
	next := []*Value{&root}

	for len(next) > 0 {
		current, next = next, current[:0]

		for len(current) > 0 {
			node := current[len(current)-1]
			current = current[:len(current)-1]

			switch node.kind {
			case KindArray:
				for i := range node.arr {
					next = append(next, &node.arr[i])
				}
			case KindObject:
				for i := range node.obj {
					if keyEquals(node.obj[i].Key, target) {
						return true
					}
					next = append(next, &node.obj[i].Value)
				}
			case KindNull, KindBool, KindNumber, KindString:
				if node.Equal(target) {
					return true
				}
			default:
				panic("treesearch: unhandled kind " + node.kind.String())
			}
		}
	}

	return false
}

// keyEquals compares an object key to target using Value equality.
func keyEquals(key string, target Value) bool {
	return target.kind == KindString && target.s == key
}

// Walk visits every node of the tree in level order, calling fn with the
// node's depth (root is 0). Returning false from fn stops the walk.
// Nodes of one level are visited in container order, before any node of
// the next level.
//
// Walk holds pointers into the tree; fn must not modify the nodes it sees.
func Walk(root Value, fn func(depth int, v *Value) bool) {
	var current []*Value
	next := []*Value{&root}

	for depth := 0; len(next) > 0; depth++ {
		current, next = next, current[:0]

		for _, node := range current {
			if !fn(depth, node) {
				return
			}
			switch node.kind {
			case KindArray:
				for i := range node.arr {
					next = append(next, &node.arr[i])
				}
			case KindObject:
				for i := range node.obj {
					next = append(next, &node.obj[i].Value)
				}
			}
		}
	}
}

// TreeStats describes the shape of a tree.
type TreeStats struct {
	// Nodes is the total number of values, containers included.
	Nodes int
	// Keys is the total number of object members.
	Keys int
	// Depth is the number of levels.
	Depth int
	// MaxWidth is the largest number of nodes found on a single level.
	MaxWidth int
}

// Stats walks the tree once and reports its shape.
func Stats(root Value) TreeStats {
	var st TreeStats
	width, level := 0, -1
	Walk(root, func(depth int, v *Value) bool {
		if depth != level {
			level, width = depth, 0
		}
		width++
		if width > st.MaxWidth {
			st.MaxWidth = width
		}
		st.Nodes++
		st.Keys += len(v.Members())
		return true
	})
	st.Depth = level + 1
	return st
}

// Contains decodes a JSON document and reports whether target occurs in it.
//
// Example:
//
//	ok, err := treesearch.Contains(data, treesearch.String("price"))
func Contains(data []byte, target Value) (bool, error) {
	root, err := Unmarshal(data)
	if err != nil {
		return false, err
	}
	return Search(root, target), nil
}
