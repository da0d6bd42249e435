/*
Package ports defines the driven ports (interfaces) for arbor.

These interfaces decouple tree construction from external implementations,
allowing the engine to read markup from HTTP, local files or memory, and to be
exposed over a CLI, an HTTP API or MCP.

# Key Interfaces

  - Fetcher: Retrieves a markup document body by URL.
  - TreeEngine: Builds and renders trees; implemented by arbor.Engine.
*/
package ports
