package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/flowtune/flowtune/pkg/errors"
	"github.com/flowtune/flowtune/pkg/pipeline"
)

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
// This is used when generating multiple files (e.g., workflow.json, workflow.svg).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes rendered artifacts to files and prints their paths.
// A single format honors the output path exactly; multiple formats share a
// base path with per-format extensions. The suffix (e.g. ".optimized") is
// inserted before the format extension on derived paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output, suffix string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + suffix + "." + formats[0]
		}
		if err := writeArtifact(artifacts[formats[0]], path); err != nil {
			return err
		}
		printFile(path)
		return nil
	}

	base := basePath(output, input)
	for _, format := range formats {
		path := fmt.Sprintf("%s%s.%s", base, suffix, format)
		if err := writeArtifact(artifacts[format], path); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func writeArtifact(data []byte, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
