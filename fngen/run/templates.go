package run

import (
	"bytes"
	"fmt"
	"text/template"
)

// header is shared by every generated file. The build tag pair keeps the
// double scaffolding out of production builds entirely.
const headerTemplate = `// Code generated by fngen. DO NOT EDIT.

//go:build {{if not .On}}!{{end}}test_doubles

package {{.Data.PkgName}}
`

const importsTemplate = `{{if or .On .Data.Imports}}
import (
{{- if .On}}
	"github.com/fndouble/fndouble"
{{- end}}
{{- range .Data.Imports}}
	"{{.}}"
{{- end}}
)
{{end}}`

// offTemplate is the production-side proxy. It forwards straight to the real
// function, so the doubled call site costs one direct call.
const offTemplate = `
func {{.Data.ProxyName}}({{.Data.ParamList}}){{.Data.ResultDecl}} {
	{{if .Data.HasResults}}return {{end}}{{.Data.FuncName}}({{.Data.CallArgs}})
}
`

const mockTemplate = `
// {{.Data.ArgsType}} captures the arguments of one recorded call to
// {{.Data.ProxyName}}.
type {{.Data.ArgsType}} struct {
{{- range .Data.Params}}
	{{.Field}} {{.Type}}
{{- end}}
}
{{if .Data.ReturnsType}}
// {{.Data.ReturnsType}} bundles the return values of {{.Data.FuncName}}.
type {{.Data.ReturnsType}} struct {
{{- range .Data.Results}}
	{{.Field}} {{.Type}}
{{- end}}
}
{{end}}
// {{.Data.VarName}} records and optionally replaces calls made through
// {{.Data.ProxyName}}.
var {{.Data.VarName}} = fndouble.NewFuncMock[{{.Data.ArgsType}}, {{.Data.RType}}]("{{.Data.FuncName}}")

{{if not .Data.HasResults -}}
func {{.Data.ProxyName}}({{.Data.ParamList}}) {
	{{.Data.VarName}}.Call({{.Data.ArgsLiteral}}, func(args {{.Data.ArgsType}}) struct{} {
		{{.Data.InnerCall}}

		return struct{}{}
	})
}
{{- else if .Data.SingleResult -}}
func {{.Data.ProxyName}}({{.Data.ParamList}}){{.Data.ResultDecl}} {
	return {{.Data.VarName}}.Call({{.Data.ArgsLiteral}}, func(args {{.Data.ArgsType}}) {{.Data.RType}} {
		return {{.Data.InnerCall}}
	})
}
{{- else -}}
func {{.Data.ProxyName}}({{.Data.ParamList}}){{.Data.ResultDecl}} {
	ret := {{.Data.VarName}}.Call({{.Data.ArgsLiteral}}, func(args {{.Data.ArgsType}}) {{.Data.ReturnsType}} {
		{{.Data.MultiAssign}} := {{.Data.InnerCall}}

		return {{.Data.ReturnsLiteral}}
	})

	return {{.Data.RetExpr}}
}
{{- end}}
`

const fakeTemplate = `
// {{.Data.VarName}} swaps the implementation behind {{.Data.ProxyName}}
// without recording calls.
var {{.Data.VarName}} = fndouble.NewFuncFake[{{.Data.FuncType}}]("{{.Data.FuncName}}")

func {{.Data.ProxyName}}({{.Data.ParamList}}){{.Data.ResultDecl}} {
	if impl, ok := {{.Data.VarName}}.Implementation(); ok {
{{- if .Data.HasResults}}
		return impl({{.Data.CallArgs}})
	}

	return {{.Data.FuncName}}({{.Data.CallArgs}})
{{- else}}
		impl({{.Data.CallArgs}})

		return
	}

	{{.Data.FuncName}}({{.Data.CallArgs}})
{{- end}}
}
`

const stubTemplate = `{{if .Data.ReturnsType}}
// {{.Data.ReturnsType}} bundles the return values of {{.Data.FuncName}}.
type {{.Data.ReturnsType}} struct {
{{- range .Data.Results}}
	{{.Field}} {{.Type}}
{{- end}}
}
{{end}}
// {{.Data.VarName}} returns a fixed value from {{.Data.ProxyName}} when set.
var {{.Data.VarName}} = fndouble.NewFuncStub[{{.Data.RType}}]("{{.Data.FuncName}}")

func {{.Data.ProxyName}}({{.Data.ParamList}}){{.Data.ResultDecl}} {
	if value, ok := {{.Data.VarName}}.ReturnValue(); ok {
		return {{if .Data.ReturnsType}}{{.Data.ValueRetExpr}}{{else}}value{{end}}
	}

	return {{.Data.FuncName}}({{.Data.CallArgs}})
}
`

// templateContext wraps the data with the build-tag side being rendered.
type templateContext struct {
	Data *templateData
	On   bool
}

// renderDouble assembles one generated file: header, imports, then either
// the passthrough proxy or the kind-specific scaffolding.
func renderDouble(data *templateData, kind doubleKind, on bool) ([]byte, error) {
	body := offTemplate

	if on {
		switch kind {
		case kindMock:
			body = mockTemplate
		case kindFake:
			body = fakeTemplate
		case kindStub:
			body = stubTemplate
		}
	}

	var buf bytes.Buffer

	ctx := templateContext{Data: data, On: on}

	for _, text := range []string{headerTemplate, importsTemplate, body} {
		tmpl, err := template.New("double").Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}

		if err := tmpl.Execute(&buf, ctx); err != nil {
			return nil, fmt.Errorf("rendering template: %w", err)
		}
	}

	return buf.Bytes(), nil
}
