package run

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/dst"
)

// doubleKind selects which facade the generated scaffolding binds to.
type doubleKind string

const (
	kindFake doubleKind = "fake"
	kindMock doubleKind = "mock"
	kindStub doubleKind = "stub"
)

var (
	errStubNeedsResult = errors.New("stubbed functions must return at least one value")
	errVariadicMock    = errors.New("variadic functions cannot be mocked; use a fake")
)

// paramData describes one parameter of the doubled function.
type paramData struct {
	Local    string // name used in the proxy signature, e.g. "id" or "a1"
	Field    string // args struct field name, e.g. "Id" or "A1"
	Type     string // rendered type, "...T" for the variadic tail
	Variadic bool
}

// resultData describes one return value of the doubled function.
type resultData struct {
	Field string // returns struct field name, "R1", "R2", ...
	Type  string
}

// templateData carries everything the templates need, precomputed as strings
// so the templates stay declarative.
type templateData struct {
	PkgName  string
	FuncName string

	ProxyName   string // <base>Double
	VarName     string // <base>Mock / <base>Fake / <base>Stub
	ArgsType    string // mock only: <base>MockArgs
	ReturnsType string // empty unless the return tuple needs a generated struct
	RType       string // the R type argument for the facade
	FuncType    string // fake only: the function type, with parameter names

	Imports []string // import paths the signature drags in

	Params  []paramData
	Results []resultData

	ParamList      string // "id int" / "a int, b int"
	CallArgs       string // "id" / "a, b" / "data..."
	ResultDecl     string // "", " uint32", " (string, error)"
	ArgsLiteral    string // "fetchUserMockArgs{Id: id}"
	InnerCall      string // "fetchUser(args.Id)"
	MultiAssign    string // "r1, r2"
	ReturnsLiteral string // "fetchUserMockReturns{R1: r1, R2: r2}"
	RetExpr        string // "ret.R1, ret.R2"
	ValueRetExpr   string // "value.R1, value.R2"

	HasResults   bool
	SingleResult bool
}

// buildTemplateData extracts the function's signature and precomputes every
// string the templates interpolate.
func buildTemplateData(
	pkg *sourcePackage,
	pkgName string,
	kind doubleKind,
	parsed cliArgs,
	funcDecl *dst.FuncDecl,
) (*templateData, error) {
	base := parsed.Name
	if base == "" {
		base = funcDecl.Name.Name
	}

	params := extractParams(funcDecl.Type)
	results := extractResults(funcDecl.Type)

	if kind == kindMock && hasVariadic(params) {
		return nil, fmt.Errorf("%w: %s", errVariadicMock, funcDecl.Name.Name)
	}

	if kind == kindStub && len(results) == 0 {
		return nil, fmt.Errorf("%w: %s", errStubNeedsResult, funcDecl.Name.Name)
	}

	data := &templateData{
		PkgName:      pkgName,
		FuncName:     funcDecl.Name.Name,
		ProxyName:    base + "Double",
		Params:       params,
		Results:      results,
		HasResults:   len(results) > 0,
		SingleResult: len(results) == 1,
	}

	data.ParamList = buildParamList(params)
	data.CallArgs = buildCallArgs(params)
	data.ResultDecl = buildResultDecl(results)
	data.Imports = collectImports(pkg, params, results)

	switch kind {
	case kindMock:
		data.VarName = base + "Mock"
		data.ArgsType = base + "MockArgs"
		data.RType = mockRType(base, results)

		if len(results) > 1 {
			data.ReturnsType = data.RType
		}

		fillMockCallStrings(data)
	case kindFake:
		data.VarName = base + "Fake"
		data.FuncType = buildFuncType(params, data.ResultDecl)
	case kindStub:
		data.VarName = base + "Stub"
		data.RType = results[0].Type

		if len(results) > 1 {
			data.ReturnsType = base + "StubReturns"
			data.RType = data.ReturnsType
		}

		data.ValueRetExpr = buildRetExpr("value", results)
	}

	return data, nil
}

// buildCallArgs renders the argument list a proxy forwards to the real
// function or an installed fake.
func buildCallArgs(params []paramData) string {
	parts := make([]string, len(params))

	for i, p := range params {
		parts[i] = p.Local
		if p.Variadic {
			parts[i] += "..."
		}
	}

	return strings.Join(parts, ", ")
}

// buildFuncType renders the fake's function type, keeping parameter names for
// readability.
func buildFuncType(params []paramData, resultDecl string) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Local + " " + p.Type
	}

	return "func(" + strings.Join(parts, ", ") + ")" + resultDecl
}

// buildParamList renders the proxy's parameter declarations, one per
// parameter.
func buildParamList(params []paramData) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Local + " " + p.Type
	}

	return strings.Join(parts, ", ")
}

// buildResultDecl renders the proxy's result declaration, including the
// leading space, so templates can interpolate it unconditionally.
func buildResultDecl(results []resultData) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0].Type
	default:
		types := make([]string, len(results))
		for i, r := range results {
			types[i] = r.Type
		}

		return " (" + strings.Join(types, ", ") + ")"
	}
}

// buildRetExpr renders "recv.R1, recv.R2" for multi-value returns.
func buildRetExpr(recv string, results []resultData) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = recv + "." + r.Field
	}

	return strings.Join(parts, ", ")
}

// selectorPattern matches "pkg." prefixes in rendered type strings.
var selectorPattern = regexp.MustCompile(`(?:^|[^\w.])([a-z][A-Za-z0-9_]*)\.`)

// collectImports maps package selectors appearing in the signature back to
// the source files' import paths, so generated files import what the
// signature needs.
func collectImports(pkg *sourcePackage, params []paramData, results []resultData) []string {
	wanted := map[string]bool{}

	for _, p := range params {
		for _, m := range selectorPattern.FindAllStringSubmatch(p.Type, -1) {
			wanted[m[1]] = true
		}
	}

	for _, r := range results {
		for _, m := range selectorPattern.FindAllStringSubmatch(r.Type, -1) {
			wanted[m[1]] = true
		}
	}

	if len(wanted) == 0 {
		return nil
	}

	paths := map[string]bool{}

	for _, file := range pkg.files {
		for _, imp := range file.Imports {
			path := strings.Trim(imp.Path.Value, `"`)

			name := path
			if idx := strings.LastIndex(path, "/"); idx >= 0 {
				name = path[idx+1:]
			}

			if imp.Name != nil {
				name = imp.Name.Name
			}

			if wanted[name] {
				paths[path] = true
			}
		}
	}

	sorted := make([]string, 0, len(paths))
	for path := range paths {
		sorted = append(sorted, path)
	}

	sort.Strings(sorted)

	return sorted
}

// extractParams flattens the parameter field list, inventing names for
// unnamed or blank parameters so the proxy can forward them.
func extractParams(funcType *dst.FuncType) []paramData {
	if funcType.Params == nil {
		return nil
	}

	var params []paramData

	for _, field := range funcType.Params.List {
		typeStr := typeString(field.Type)
		_, variadic := field.Type.(*dst.Ellipsis)

		names := field.Names
		if len(names) == 0 {
			names = []*dst.Ident{{Name: "_"}}
		}

		for _, name := range names {
			local := name.Name
			if local == "" || local == "_" {
				local = "a" + strconv.Itoa(len(params)+1)
			}

			params = append(params, paramData{
				Local:    local,
				Field:    fieldName(local, len(params)),
				Type:     typeStr,
				Variadic: variadic,
			})
		}
	}

	return params
}

// extractResults flattens the result field list into R1..Rn entries.
func extractResults(funcType *dst.FuncType) []resultData {
	if funcType.Results == nil {
		return nil
	}

	var results []resultData

	for _, typeStr := range fieldListTypes(funcType.Results.List) {
		results = append(results, resultData{
			Field: "R" + strconv.Itoa(len(results)+1),
			Type:  typeStr,
		})
	}

	return results
}

// fieldName derives an exported-looking struct field name from a parameter
// name, falling back to positional A1..An style.
func fieldName(local string, index int) string {
	if local == "" {
		return "A" + strconv.Itoa(index+1)
	}

	if strings.HasPrefix(local, "a") && isPositional(local) {
		return strings.ToUpper(local)
	}

	return strings.ToUpper(local[:1]) + local[1:]
}

// fillMockCallStrings precomputes the strings the mock proxy templates need.
func fillMockCallStrings(data *templateData) {
	ctorParts := make([]string, len(data.Params))
	callParts := make([]string, len(data.Params))

	for i, p := range data.Params {
		ctorParts[i] = p.Field + ": " + p.Local
		callParts[i] = "args." + p.Field
	}

	data.ArgsLiteral = data.ArgsType + "{" + strings.Join(ctorParts, ", ") + "}"
	data.InnerCall = data.FuncName + "(" + strings.Join(callParts, ", ") + ")"

	if len(data.Results) > 1 {
		assigns := make([]string, len(data.Results))
		literals := make([]string, len(data.Results))

		for i, r := range data.Results {
			local := "r" + strconv.Itoa(i+1)
			assigns[i] = local
			literals[i] = r.Field + ": " + local
		}

		data.MultiAssign = strings.Join(assigns, ", ")
		data.ReturnsLiteral = data.ReturnsType + "{" + strings.Join(literals, ", ") + "}"
		data.RetExpr = buildRetExpr("ret", data.Results)
	}
}

// hasVariadic reports whether any parameter is variadic.
func hasVariadic(params []paramData) bool {
	for _, p := range params {
		if p.Variadic {
			return true
		}
	}

	return false
}

// isPositional reports whether a name looks like an invented positional
// parameter name (a1, a2, ...).
func isPositional(name string) bool {
	if len(name) < 2 || name[0] != 'a' {
		return false
	}

	_, err := strconv.Atoi(name[1:])

	return err == nil
}

// mockRType picks the mock's R type argument for the given result tuple.
func mockRType(base string, results []resultData) string {
	switch len(results) {
	case 0:
		return "struct{}"
	case 1:
		return results[0].Type
	default:
		return base + "MockReturns"
	}
}
