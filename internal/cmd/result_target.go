package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dingolabs/dingo/internal/output"
)

// resultTarget is where a one-shot command writes its result: one named
// file, a directory that receives a file per result, or stdout when both are
// empty.
type resultTarget struct {
	file string
	dir  string
}

func addResultTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "write the result to this file instead of stdout")
	cmd.Flags().String("out-dir", "", "write the result into this directory, named after the operation and task")
	cmd.MarkFlagsMutuallyExclusive("out", "out-dir")
}

func resultTargetFrom(cmd *cobra.Command) (resultTarget, error) {
	file, err := cmd.Flags().GetString("out")
	if err != nil {
		return resultTarget{}, err
	}
	dir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return resultTarget{}, err
	}
	return resultTarget{file: strings.TrimSpace(file), dir: strings.TrimSpace(dir)}, nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9._-]+`)

// fileStem lowercases name and replaces anything unsafe in a file name.
func fileStem(name string) string {
	stem := unsafeFileChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
	if stem = strings.Trim(stem, "-."); stem == "" {
		return "result"
	}
	return stem
}

// path is the file a result named stem is written to, or "" for stdout.
func (t resultTarget) path(stem string, format output.Format) string {
	switch {
	case t.file == "-":
		return ""
	case t.file != "":
		return t.file
	case t.dir != "":
		return filepath.Join(t.dir, fileStem(stem)+"."+format.Extension())
	}
	return ""
}

// createResultFile opens the writer for path. An empty path writes to stdout
// and the returned close is a no-op.
func createResultFile(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}
