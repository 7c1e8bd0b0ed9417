package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
// Nodes that have been resolved also carry their resolved type.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// toJSON converts node to a tree of maps and slices, shared by the JSON
// and YAML printers.
func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	var m map[string]interface{}
	switch n := node.(type) {
	case *File:
		m = map[string]interface{}{
			"type":  "File",
			"pos":   n.pos.String(),
			"name":  n.Name,
			"scope": scopeJSON(n.Body),
		}

	case *Scope:
		m = map[string]interface{}{
			"type":  "Scope",
			"pos":   n.pos.String(),
			"stmts": mapSlice(n.Stmts, func(s Stmt) interface{} { return toJSON(s) }),
		}

	case *Declaration:
		m = map[string]interface{}{
			"type":     "Declaration",
			"pos":      n.pos.String(),
			"constant": n.Constant,
			"name":     n.Name.Value,
		}
		if n.Type != nil {
			m["vartype"] = toJSON(n.Type)
		}
		if n.Value != nil {
			m["value"] = toJSON(n.Value)
		}
		if n.varType != nil {
			m["declared"] = n.varType.String()
		}

	case *IntegerLiteral:
		m = map[string]interface{}{
			"type":  "IntegerLiteral",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *FloatLiteral:
		m = map[string]interface{}{
			"type":  "FloatLiteral",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Name:
		m = map[string]interface{}{
			"type":  "Name",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *Unary:
		m = map[string]interface{}{
			"type": "Unary",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
		}

	case *Binary:
		m = map[string]interface{}{
			"type": "Binary",
			"pos":  n.pos.String(),
			"op":   n.Op.String(),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Procedure:
		m = map[string]interface{}{
			"type": "Procedure",
			"pos":  n.pos.String(),
			"args": mapSlice(n.Args, func(d *Declaration) interface{} { return toJSON(d) }),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}
		if n.Body != nil {
			m["body"] = scopeJSON(n.Body)
		}

	case *TypeName:
		m = map[string]interface{}{
			"type":  "TypeName",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *TypePointer:
		m = map[string]interface{}{
			"type": "TypePointer",
			"pos":  n.pos.String(),
			"elem": toJSON(n.Elem),
		}

	case *TypeDeref:
		m = map[string]interface{}{
			"type": "TypeDeref",
			"pos":  n.pos.String(),
			"x":    toJSON(n.X),
		}

	case *TypeInteger:
		m = map[string]interface{}{
			"type":   "TypeInteger",
			"size":   n.Size,
			"signed": n.Signed,
		}

	case *TypeFloat:
		m = map[string]interface{}{
			"type": "TypeFloat",
			"size": n.Size,
		}

	case *TypeVoid:
		m = map[string]interface{}{
			"type": "TypeVoid",
		}

	case *TypeType:
		m = map[string]interface{}{
			"type": "TypeType",
		}

	case *TypeProcedure:
		m = map[string]interface{}{
			"type": "TypeProcedure",
			"pos":  n.pos.String(),
			"args": mapSlice(n.Args, func(t Type) interface{} { return toJSON(t) }),
		}
		if n.Result != nil {
			m["result"] = toJSON(n.Result)
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}

	if t := node.Resolved(); t != nil {
		m["resolved"] = t.String()
	}
	if t := node.Denoted(); t != nil {
		m["denotes"] = t.String()
	}
	return m
}

// scopeJSON is like toJSON but maps a nil *Scope to nil.
func scopeJSON(s *Scope) interface{} {
	if s == nil {
		return nil
	}
	return toJSON(s)
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
