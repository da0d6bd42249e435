/*
Package dsl provides a fluent builder for constructing arbor trees in Go code.

It is handy for expected values in tests and for programs that produce trees
without going through CSV or HTML.

Example usage:

	b := dsl.New("CSV Root")
	b.Add("a").Leaves("1", "3")
	b.Add("b").Leaves("2", "4")

	root := b.Build()
	fmt.Println(root.Render())

The same tree in nested form:

	root := dsl.Tree("CSV Root",
		dsl.Tree("a", dsl.Tree("1"), dsl.Tree("3")),
		dsl.Tree("b", dsl.Tree("2"), dsl.Tree("4")),
	)
*/
package dsl
