package run

import (
	"fmt"
	"strings"

	"github.com/dave/dst"
)

// typeString renders a DST type expression back to Go source. It covers the
// expression kinds that appear in function signatures; anything else renders
// as its Go type name, which makes the resulting parse failure obvious.
//
//nolint:cyclop // Type-switch dispatcher; complexity is inherent
func typeString(expr dst.Expr) string {
	if expr == nil {
		return ""
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return typeString(typed.X) + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + typeString(typed.X)
	case *dst.ArrayType:
		if typed.Len != nil {
			return "[" + typeString(typed.Len) + "]" + typeString(typed.Elt)
		}

		return "[]" + typeString(typed.Elt)
	case *dst.MapType:
		return "map[" + typeString(typed.Key) + "]" + typeString(typed.Value)
	case *dst.ChanType:
		switch typed.Dir {
		case dst.SEND:
			return "chan<- " + typeString(typed.Value)
		case dst.RECV:
			return "<-chan " + typeString(typed.Value)
		default:
			return "chan " + typeString(typed.Value)
		}
	case *dst.InterfaceType:
		if typed.Methods == nil || len(typed.Methods.List) == 0 {
			return "interface{}"
		}

		return fmt.Sprintf("%T", expr)
	case *dst.FuncType:
		return funcTypeString(typed)
	case *dst.Ellipsis:
		return "..." + typeString(typed.Elt)
	case *dst.IndexExpr:
		return typeString(typed.X) + "[" + typeString(typed.Index) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, idx := range typed.Indices {
			indices[i] = typeString(idx)
		}

		return typeString(typed.X) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + typeString(typed.X) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// fieldListTypes expands a field list into one type string per declared name,
// so "a, b int" contributes "int" twice.
func fieldListTypes(fields []*dst.Field) []string {
	var parts []string

	for _, field := range fields {
		typeStr := typeString(field.Type)

		count := len(field.Names)
		if count == 0 {
			count = 1
		}

		for range count {
			parts = append(parts, typeStr)
		}
	}

	return parts
}

// funcTypeString renders a function type without parameter names.
func funcTypeString(funcType *dst.FuncType) string {
	var buf strings.Builder

	buf.WriteString("func")

	buf.WriteString("(")

	if funcType.Params != nil {
		buf.WriteString(strings.Join(fieldListTypes(funcType.Params.List), ", "))
	}

	buf.WriteString(")")

	if funcType.Results != nil && len(funcType.Results.List) > 0 {
		results := fieldListTypes(funcType.Results.List)
		if len(results) == 1 {
			buf.WriteString(" " + results[0])
		} else {
			buf.WriteString(" (" + strings.Join(results, ", ") + ")")
		}
	}

	return buf.String()
}
