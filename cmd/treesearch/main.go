package main

import "github.com/njchilds90/go-treesearch/cmd/treesearch/cmd"

func main() {
	cmd.Execute()
}
