// Package run implements the main logic for the fngen tool in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
)

// Interfaces - Public

// FileSystem abstracts the file operations fngen needs, for testing.
type FileSystem interface {
	Glob(pattern string) ([]string, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Structs - Private

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Function string `arg:"positional,required" help:"name of the package-level function to double (e.g. fetchUser)"`
	Kind     string `arg:"--kind"              default:"mock"                                                      help:"double kind: mock, fake, or stub"`
	Name     string `arg:"--name"              help:"base name for generated identifiers (defaults to the function name)"`
}

// Errors

var (
	errNoGoPackage = errors.New("GOPACKAGE not set; fngen is meant to run under go generate")
	errUnknownKind = errors.New("unknown double kind")
)

// Functions - Public

// Run executes the fngen tool logic. It takes command-line arguments, an
// environment variable getter, a FileSystem for file operations, and an
// output writer for progress messages. On success it writes two generated Go
// source files into the calling package: the production passthrough proxy and
// the test_doubles scaffolding.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	kind, err := parseKind(parsed.Kind)
	if err != nil {
		return err
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		return errNoGoPackage
	}

	pkg, err := parsePackage(fileSys)
	if err != nil {
		return err
	}

	funcDecl, err := findFunction(pkg, parsed.Function)
	if err != nil {
		return err
	}

	data, err := buildTemplateData(pkg, pkgName, kind, parsed, funcDecl)
	if err != nil {
		return err
	}

	return writeGeneratedFiles(data, kind, fileSys, out)
}

// Functions - Private

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// parseKind validates the requested double kind.
func parseKind(kind string) (doubleKind, error) {
	switch doubleKind(kind) {
	case kindMock, kindFake, kindStub:
		return doubleKind(kind), nil
	default:
		return "", fmt.Errorf("%w: %q (want mock, fake, or stub)", errUnknownKind, kind)
	}
}
