package run

import (
	"fmt"
	"go/format"
	"io"
	"strings"
)

// writeGeneratedFiles renders both sides of the build-tag pair, formats
// them, and writes them next to the doubled function's source.
func writeGeneratedFiles(data *templateData, kind doubleKind, fileSys FileSystem, out io.Writer) error {
	base := strings.ToLower(data.ProxyName[:len(data.ProxyName)-len("Double")])

	for _, side := range []struct {
		suffix string
		on     bool
	}{
		{suffix: "", on: true},
		{suffix: "_off", on: false},
	} {
		rendered, err := renderDouble(data, kind, side.on)
		if err != nil {
			return err
		}

		formatted, err := format.Source(rendered)
		if err != nil {
			return fmt.Errorf("generated code does not parse: %w\n%s", err, rendered)
		}

		name := fmt.Sprintf("generated_%s_double%s.go", base, side.suffix)

		if err := fileSys.WriteFile(name, formatted, writePerms); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}

		fmt.Fprintf(out, "%s written successfully.\n", name)
	}

	return nil
}

const writePerms = 0o600
