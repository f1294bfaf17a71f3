package treesearch_test

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/njchilds90/go-treesearch"
)

func ExampleSearch() {
	tree := treesearch.MustParse([]byte(`{"a":{"b":[0,0.5,"shimi"]}}`))

	fmt.Println(treesearch.Search(tree, treesearch.String("b")))
	fmt.Println(treesearch.Search(tree, treesearch.Float(0.5)))
	fmt.Println(treesearch.Search(tree, treesearch.String("0")))
	// Output:
	// true
	// true
	// false
}

func ExampleContains() {
	data := []byte(`{"feature":{"enabled":true}}`)

	ok, err := treesearch.Contains(data, treesearch.String("enabled"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok)
	// Output:
	// true
}

func ExampleParseLiteral() {
	for _, s := range []string{"42", "'42'", "null", "price"} {
		v := treesearch.ParseLiteral(s)
		fmt.Println(v.Kind(), v)
	}
	// Output:
	// number 42
	// string "42"
	// null null
	// string "price"
}

func ExampleWalk() {
	tree := treesearch.MustParse([]byte(`{"x":[1,2],"y":{"z":3}}`))

	treesearch.Walk(tree, func(depth int, v *treesearch.Value) bool {
		if !v.IsContainer() {
			fmt.Println(depth, v)
		}
		return true
	})
	// Output:
	// 2 1
	// 2 2
	// 2 3
}

func ExampleStats() {
	st := treesearch.Stats(treesearch.MustParse([]byte(`[[1,2,3],{"k":null}]`)))
	fmt.Printf("%+v\n", st)
	// Output:
	// {Nodes:7 Keys:1 Depth:3 MaxWidth:4}
}

func ExampleValue_MarshalJSON() {
	v := treesearch.Object(
		treesearch.M("name", treesearch.String("tree")),
		treesearch.M("ratio", treesearch.Float(1)),
	)
	b, _ := json.Marshal(v)
	fmt.Println(string(b))
	// Output:
	// {"name":"tree","ratio":1.0}
}
