/*
Package domain contains the core tree model for arbor.

It defines the labelled N-ary Node, the child attachment and root detection
operations, and the text renderer. This package is kept pure and free of
I/O, parsing libraries and logging, following Hexagonal Architecture
principles: sources (CSV, HTML) are turned into Nodes by pkg/compiler and
delivered to users by the adapters.

# Key Entities

  - Node: a label plus an ordered list of children and a non-owning parent link.
  - Style: the prefix layout used when rendering (classic or guides).

# Rendering

The classic style, used by default, prints the root bare and prefixes every
other node with (depth-1) four-space units followed by "├── " or "└── ".
It never draws "│" continuation lines:

	CSV Root
	├── a
	    ├── 1
	    └── 3
	└── b
	    ├── 2
	    └── 4

StyleGuides renders the same tree with ancestor guides, the way tree(1) does.
*/
package domain
