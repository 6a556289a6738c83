// Package graphio provides JSON import and export for workflow graphs.
//
// # Overview
//
// This package defines the canonical serialization format for workflow
// graphs. The format matches what the visual workflow editor produces and
// consumes, and is designed for:
//
//   - Exchanging workflows with the editor and external tools
//   - Caching optimization results keyed by content hash
//   - Round-trip preservation: import, optimize, export, and re-import
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {
//	      "id": "fetch",
//	      "type": "webhook-trigger",
//	      "position": {"x": 0, "y": 0},
//	      "data": {"label": "Fetch submissions"}
//	    }
//	  ],
//	  "edges": [
//	    {"source": "fetch", "target": "transform", "type": "smoothstep"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - type: Node type tag (e.g. "action", "data-transform")
//
// Optional:
//   - position: Editor canvas coordinates (rewritten by the optimizer)
//   - data: Label, description, configuration, port lists, compliance
//     metadata, and runtime status
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader. Both decode into the wire [Graph]; convert to an
// in-memory graph with [ToWorkflow], which validates node IDs and edge
// endpoints. Errors are wrapped with context about which node or edge
// caused the problem.
//
// # Export
//
// Use [FromWorkflow] to obtain the wire form of an in-memory graph, then
// [ExportJSON] to write it to a file or [WriteJSON] to write to any
// io.Writer. Node order in the output follows the graph's insertion order,
// so export is deterministic.
//
// # Hashing
//
// [Hash] computes a stable content hash of a wire graph for cache keys.
// Two graphs with the same nodes, edges, and payloads in the same order
// hash identically.
package graphio
