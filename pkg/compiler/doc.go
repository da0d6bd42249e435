/*
Package compiler turns source documents into arbor trees.

Two sources are supported:

  - CSV text, in one of two layouts. LayoutColumns groups every column's
    cells under a node named after the header field. LayoutRows lists each
    data row, fields joined with " | ", under a single "Header" node.
  - HTML, via golang.org/x/net/html. Elements map to their tag names and
    non-blank text maps to its trimmed content; blank text is dropped.

Both builders return a fresh, independent tree on every call.
*/
package compiler
