package graphio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/flowtune/flowtune/pkg/errors"
)

// ReadJSON decodes a JSON workflow graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays. ReadJSON
// validates the JSON structure only; convert with [ToWorkflow] to validate
// node IDs and edge endpoints. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode workflow JSON")
	}
	return g, nil
}

// WriteJSON encodes a wire graph as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode workflow JSON")
	}
	return nil
}

// ImportJSON reads a JSON file at path and returns the decoded wire graph.
// A missing file yields an error with code FILE_NOT_FOUND so callers can
// distinguish it from a malformed one.
func ImportJSON(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Graph{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ExportJSON writes a wire graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
