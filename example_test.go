package arbor_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/compiler"
	"github.com/aretw0/arbor/pkg/domain"
)

// ExampleEngine_CSV groups each column's cells under its header.
func ExampleEngine_CSV() {
	engine := arbor.New()

	root, err := engine.CSV("a,b\n1,2\n3,4\n", compiler.LayoutColumns)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(engine.Render(root))
	// Output:
	// CSV Root
	// ├── a
	//     ├── 1
	//     └── 3
	// └── b
	//     ├── 2
	//     └── 4
}

// ExampleEngine_CSV_rows lists every data row under a single header node.
func ExampleEngine_CSV_rows() {
	engine := arbor.New()

	root, err := engine.CSV("name,age\nada,36\nalan,41\n", compiler.LayoutRows)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(engine.Render(root))
	// Output:
	// CSV Root
	// └── Header
	//     ├── ada | 36
	//     └── alan | 41
}

// ExampleEngine_Render_guides draws continuation lines like tree(1).
func ExampleEngine_Render_guides() {
	engine := arbor.New(arbor.WithRenderStyle(domain.StyleGuides))

	root, err := engine.CSV("a,b\n1,2\n3,4\n", compiler.LayoutColumns)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(engine.Render(root))
	// Output:
	// CSV Root
	// ├── a
	// │   ├── 1
	// │   └── 3
	// └── b
	//     ├── 2
	//     └── 4
}

// ExampleEngine_Markup converts an HTML document. The parser always
// synthesises <head> and <body>.
func ExampleEngine_Markup() {
	engine := arbor.New()

	root, err := engine.Markup(strings.NewReader("<h1>Title</h1><p>Hello <b>world</b></p>"))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(engine.Render(root))
	// Output:
	// html
	// ├── head
	// └── body
	//     ├── h1
	//         └── Title
	//     └── p
	//         ├── Hello
	//         └── b
	//             └── world
}

// ExampleEngine_Run fetches a page and writes its diagram. An in-memory
// fetcher stands in for the network.
func ExampleEngine_Run() {
	pages := memory.NewFetcher(map[string]string{
		"https://example.com/": "<html><body><ul><li>one</li><li>two</li></ul></body></html>",
	})
	engine := arbor.New(arbor.WithFetcher(pages))

	if err := engine.Run(context.Background(), "https://example.com/", os.Stdout); err != nil {
		log.Fatal(err)
	}
	// Output:
	// html
	// ├── head
	// └── body
	//     └── ul
	//         ├── li
	//             └── one
	//         └── li
	//             └── two
}
