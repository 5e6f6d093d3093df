package run

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// sourcePackage holds the parsed files of the package fngen runs in.
type sourcePackage struct {
	files []*dst.File
}

var errNoGoFiles = errors.New("no Go files found in the current directory")

// parsePackage parses every non-test, non-generated .go file in the current
// directory. Previously generated files are skipped so regeneration never
// parses stale output of an earlier run.
func parsePackage(fileSys FileSystem) (*sourcePackage, error) {
	names, err := fileSys.Glob("*.go")
	if err != nil {
		return nil, fmt.Errorf("failed to list Go files: %w", err)
	}

	var files []*dst.File

	for _, name := range names {
		base := filepath.Base(name)
		if strings.HasSuffix(base, "_test.go") || strings.HasPrefix(base, "generated_") {
			continue
		}

		src, err := fileSys.ReadFile(name)
		if err != nil {
			return nil, err
		}

		file, err := decorator.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, errNoGoFiles
	}

	return &sourcePackage{files: files}, nil
}
