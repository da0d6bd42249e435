/*
Package arbor builds N-ary trees from tabular text or HTML documents and renders them as tree-command style text diagrams.

# Concept

A source document is turned into a tree of labelled nodes in a single synchronous pass, then drawn with branch glyphs:

	CSV Root
	├── a
	    ├── 1
	    └── 3
	└── b
	    ├── 2
	    └── 4

CSV text is read in one of two layouts (see compiler.LayoutColumns and compiler.LayoutRows). HTML is parsed with golang.org/x/net/html; elements become nodes named after their tag and non-blank text becomes trimmed leaves.

# Usage

	engine := arbor.New(arbor.WithRenderStyle(domain.StyleGuides))

	root, err := engine.CSV(text, compiler.LayoutColumns)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(engine.Render(root))

To fetch and print a page in one call:

	if err := arbor.New().Run(ctx, "https://example.com", os.Stdout); err != nil {
		log.Fatal(err)
	}

The network is reached through a ports.Fetcher. Inject memory.NewFetcher (or any other implementation) with WithFetcher to run without it.

# Architecture

  - pkg/domain: the Node model and the renderer.
  - pkg/compiler: CSV and markup tree builders.
  - pkg/ports: Fetcher and TreeEngine interfaces.
  - pkg/adapters: in-memory fetcher, HTTP API (chi + Prometheus) and MCP server.
  - cmd/arbor: the command line tool.
*/
package arbor
