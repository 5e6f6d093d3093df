package run

import (
	"errors"
	"fmt"

	"github.com/dave/dst"
)

var (
	errFunctionNotFound    = errors.New("function not found in package")
	errGenericNotSupported = errors.New("doubles for generic functions are not supported")
	errMethodNotSupported  = errors.New("doubles for methods are not supported")
)

// findFunction locates the package-level function declaration with the given
// name. Methods are rejected: doubles cover standalone functions only.
func findFunction(pkg *sourcePackage, name string) (*dst.FuncDecl, error) {
	var foundMethod bool

	for _, file := range pkg.files {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*dst.FuncDecl)
			if !ok || funcDecl.Name.Name != name {
				continue
			}

			if funcDecl.Recv != nil {
				foundMethod = true

				continue
			}

			if funcDecl.Type.TypeParams != nil && len(funcDecl.Type.TypeParams.List) > 0 {
				return nil, fmt.Errorf("%w: %s", errGenericNotSupported, name)
			}

			return funcDecl, nil
		}
	}

	if foundMethod {
		return nil, fmt.Errorf("%w: %s", errMethodNotSupported, name)
	}

	return nil, fmt.Errorf("%w: %s", errFunctionNotFound, name)
}
