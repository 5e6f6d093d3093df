//go:build targ

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/toejough/go-reorder"
	"github.com/toejough/targ"
	"github.com/toejough/targ/sh"
)

// Build builds the local fngen binary.
func Build() error {
	fmt.Println("Building fngen...")

	if err := os.MkdirAll("bin", 0o755); err != nil {
		return fmt.Errorf("failed to create bin directory: %w", err)
	}

	return sh.Run("go", "build", "-o", "bin/fngen", "./fngen")
}

// Check runs all checks & fixes on the code, in order of correctness.
func Check() error {
	fmt.Println("Checking...")

	return targ.Deps(
		Tidy,       // clean up the module dependencies
		FixImports, // fix imports before anything that parses
		Test,       // does our code work?
		ReorderDecls,
		Lint,
	)
}

// CheckForFail runs all checks on the code for determining whether any fail.
func CheckForFail() error {
	fmt.Println("Checking...")

	// Checks from fastest to slowest
	return targ.Deps(
		ReorderDeclsCheck,
		LintForFail,
		TestForFail,
	)
}

// Clean cleans up the dev env.
func Clean() {
	fmt.Println("Cleaning...")
	os.Remove("coverage.out")
}

// FixImports fixes all imports in the codebase.
func FixImports() error {
	fmt.Println("Fixing imports...")
	return sh.Run("goimports", "-w", ".")
}

// Generate regenerates all double scaffolding from the go:generate
// directives in examples/.
func Generate() error {
	fmt.Println("Generating...")
	return sh.Run("go", "generate", "./...")
}

// Lint lints the codebase.
func Lint() error {
	fmt.Println("Linting...")
	return sh.Run("golangci-lint", "run", "-c", "dev/golangci.toml", "--build-tags", "test_doubles")
}

// LintForFail lints the codebase purely to find out whether anything fails.
func LintForFail() error {
	fmt.Println("Linting to check for overall pass/fail...")

	return sh.Run(
		"golangci-lint", "run",
		"-c", "dev/golangci.toml",
		"--build-tags", "test_doubles",
		"--fix=false",
		"--max-issues-per-linter=1",
		"--max-same-issues=1",
		"--allow-parallel-runners",
	)
}

// Mutate runs the mutation tests.
func Mutate() error {
	fmt.Println("Running mutation tests...")

	if err := targ.Deps(TestForFail); err != nil {
		return err
	}

	return sh.Run(
		"go",
		"test",
		"-timeout=6000s",
		"-tags=mutation,test_doubles",
		"-ooze.v",
		"./...",
		"-run=TestMutation",
	)
}

// ReorderDecls reorders declarations in Go files per conventions.
func ReorderDecls() error {
	fmt.Println("Reordering declarations...")

	files, err := sourceFiles()
	if err != nil {
		return err
	}

	reorderedCount := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", file, err)

			continue
		}

		if string(content) != reordered {
			if err := os.WriteFile(file, []byte(reordered), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			fmt.Printf("  Reordered: %s\n", file)
			reorderedCount++
		}
	}

	fmt.Printf("Reordered %d file(s).\n", reorderedCount)

	return nil
}

// ReorderDeclsCheck checks which files need reordering without modifying
// them, printing a diff for each offender.
func ReorderDeclsCheck() error {
	fmt.Println("Checking declaration order...")

	files, err := sourceFiles()
	if err != nil {
		return err
	}

	outOfOrder := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		reordered, err := reorder.Source(string(content))
		if err != nil {
			fmt.Printf("Warning: failed to reorder %s: %v\n", file, err)

			continue
		}

		if string(content) != reordered {
			outOfOrder++
			fmt.Println(textdiff.Unified(file, file+".reordered", string(content), reordered))
		}
	}

	if outOfOrder > 0 {
		return fmt.Errorf("%d file(s) have out-of-order declarations", outOfOrder)
	}

	return nil
}

// Test runs the tests with race detection and coverage, with the double
// scaffolding compiled in.
func Test() error {
	fmt.Println("Testing...")

	return sh.Run(
		"go", "test",
		"-tags", "test_doubles",
		"-race",
		"-coverprofile=coverage.out",
		"-coverpkg=./...",
		"./...",
	)
}

// TestForFail runs the tests purely to find out whether any fail.
func TestForFail() error {
	fmt.Println("Testing to check for overall pass/fail...")

	return sh.Run("go", "test", "-tags", "test_doubles", "./...")
}

// Tidy tidies up go.mod.
func Tidy() error {
	fmt.Println("Tidying...")
	return sh.Run("go", "mod", "tidy")
}

// sourceFiles lists the Go files subject to reordering, skipping generated
// files, vendor, and hidden directories.
func sourceFiles() ([]string, error) {
	var files []string

	err := walkGoFiles(".", func(path string) {
		if strings.Contains(path, "generated_") ||
			strings.HasPrefix(path, "vendor/") ||
			strings.Contains(path, "/.") {
			return
		}

		files = append(files, path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find Go files: %w", err)
	}

	return files, nil
}

func walkGoFiles(root string, visit func(path string)) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		path := entry.Name()
		if root != "." {
			path = root + "/" + path
		}

		if entry.IsDir() {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			if err := walkGoFiles(path, visit); err != nil {
				return err
			}

			continue
		}

		if strings.HasSuffix(path, ".go") {
			visit(path)
		}
	}

	return nil
}
