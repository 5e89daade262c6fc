package ast

import (
	"encoding/json"
	"fmt"
)

// DecodeProgram decodes a Program from the discriminated JSON shape an
// external AST producer emits (a "type" field on every node, per §6 of
// the specification this package implements). It is the only supported
// way to build a *Program without constructing the Go types directly.
func DecodeProgram(data []byte) (*Program, error) {
	var raw struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	stmts, err := decodeStatements(raw.Body)
	if err != nil {
		return nil, err
	}
	return &Program{Body: stmts}, nil
}

type typeTag struct {
	Type string `json:"type"`
}

func decodeStatements(raws []json.RawMessage) ([]Statement, error) {
	out := make([]Statement, 0, len(raws))
	for _, r := range raws {
		s, err := decodeStatement(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeStatement(raw json.RawMessage) (Statement, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("decode statement: %w", err)
	}

	switch tag.Type {
	case "BlockStatement":
		var v struct {
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		stmts, err := decodeStatements(v.Body)
		if err != nil {
			return nil, err
		}
		return &BlockStatement{Body: stmts}, nil

	case "EmptyStatement":
		return &EmptyStatement{}, nil

	case "ExpressionStatement":
		var v struct {
			Expression json.RawMessage `json:"expression"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		expr, err := decodeExpression(v.Expression)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{Expression: expr}, nil

	case "VariableDeclaration":
		var v struct {
			Kind         string `json:"kind"`
			Declarations []struct {
				Id   json.RawMessage `json:"id"`
				Init json.RawMessage `json:"init"`
			} `json:"declarations"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		decls := make([]*VariableDeclarator, 0, len(v.Declarations))
		for _, d := range v.Declarations {
			id, err := decodeIdentifierOnly(d.Id)
			if err != nil {
				return nil, fmt.Errorf("destructuring declarator bindings are not supported: %w", err)
			}
			var init Expression
			if len(d.Init) > 0 && string(d.Init) != "null" {
				init, err = decodeExpression(d.Init)
				if err != nil {
					return nil, err
				}
			}
			decls = append(decls, &VariableDeclarator{Id: id, Init: init})
		}
		return &VariableDeclaration{Kind: v.Kind, Declarations: decls}, nil

	case "FunctionDeclaration":
		var v struct {
			Id     json.RawMessage   `json:"id"`
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		id, err := decodeIdentifierOnly(v.Id)
		if err != nil {
			return nil, err
		}
		params, err := decodeIdentifierList(v.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body)
		if err != nil {
			return nil, err
		}
		return &FunctionDeclaration{Id: id, Params: params, Body: body}, nil

	case "IfStatement":
		var v struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpression(v.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeStatement(v.Consequent)
		if err != nil {
			return nil, err
		}
		var alt Statement
		if len(v.Alternate) > 0 && string(v.Alternate) != "null" {
			alt, err = decodeStatement(v.Alternate)
			if err != nil {
				return nil, err
			}
		}
		return &IfStatement{Test: test, Consequent: cons, Alternate: alt}, nil

	case "WhileStatement":
		var v struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpression(v.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return &WhileStatement{Test: test, Body: body}, nil

	case "DoWhileStatement":
		var v struct {
			Test json.RawMessage `json:"test"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		test, err := decodeExpression(v.Test)
		if err != nil {
			return nil, err
		}
		return &DoWhileStatement{Body: body, Test: test}, nil

	case "ForStatement":
		var v struct {
			Init   json.RawMessage `json:"init"`
			Test   json.RawMessage `json:"test"`
			Update json.RawMessage `json:"update"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		var init Node
		if len(v.Init) > 0 && string(v.Init) != "null" {
			var t typeTag
			json.Unmarshal(v.Init, &t)
			var err error
			if t.Type == "VariableDeclaration" {
				init, err = decodeStatement(v.Init)
			} else {
				init, err = decodeExpression(v.Init)
			}
			if err != nil {
				return nil, err
			}
		}
		var test, update Expression
		var err error
		if len(v.Test) > 0 && string(v.Test) != "null" {
			test, err = decodeExpression(v.Test)
			if err != nil {
				return nil, err
			}
		}
		if len(v.Update) > 0 && string(v.Update) != "null" {
			update, err = decodeExpression(v.Update)
			if err != nil {
				return nil, err
			}
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return &ForStatement{Init: init, Test: test, Update: update, Body: body}, nil

	case "ForInStatement":
		var v struct {
			Left  json.RawMessage `json:"left"`
			Right json.RawMessage `json:"right"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		var left Node
		var t typeTag
		json.Unmarshal(v.Left, &t)
		var err error
		if t.Type == "VariableDeclaration" {
			left, err = decodeStatement(v.Left)
		} else {
			left, err = decodeExpression(v.Left)
		}
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Right)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return &ForInStatement{Left: left, Right: right, Body: body}, nil

	case "BreakStatement":
		var v struct {
			Label json.RawMessage `json:"label"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		label, err := decodeOptionalLabel(v.Label)
		if err != nil {
			return nil, err
		}
		return &BreakStatement{Label: label}, nil

	case "ContinueStatement":
		var v struct {
			Label json.RawMessage `json:"label"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		label, err := decodeOptionalLabel(v.Label)
		if err != nil {
			return nil, err
		}
		return &ContinueStatement{Label: label}, nil

	case "ReturnStatement":
		var v struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		var arg Expression
		if len(v.Argument) > 0 && string(v.Argument) != "null" {
			var err error
			arg, err = decodeExpression(v.Argument)
			if err != nil {
				return nil, err
			}
		}
		return &ReturnStatement{Argument: arg}, nil

	case "SwitchStatement":
		var v struct {
			Discriminant json.RawMessage `json:"discriminant"`
			Cases        []struct {
				Test       json.RawMessage   `json:"test"`
				Consequent []json.RawMessage `json:"consequent"`
			} `json:"cases"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		disc, err := decodeExpression(v.Discriminant)
		if err != nil {
			return nil, err
		}
		cases := make([]*SwitchCase, 0, len(v.Cases))
		for _, c := range v.Cases {
			var test Expression
			if len(c.Test) > 0 && string(c.Test) != "null" {
				test, err = decodeExpression(c.Test)
				if err != nil {
					return nil, err
				}
			}
			body, err := decodeStatements(c.Consequent)
			if err != nil {
				return nil, err
			}
			cases = append(cases, &SwitchCase{Test: test, Consequent: body})
		}
		return &SwitchStatement{Discriminant: disc, Cases: cases}, nil

	case "ThrowStatement":
		var v struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(v.Argument)
		if err != nil {
			return nil, err
		}
		return &ThrowStatement{Argument: arg}, nil

	case "TryStatement":
		var v struct {
			Block     json.RawMessage `json:"block"`
			Handler   json.RawMessage `json:"handler"`
			Finalizer json.RawMessage `json:"finalizer"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		block, err := decodeBlock(v.Block)
		if err != nil {
			return nil, err
		}
		var handler *CatchClause
		if len(v.Handler) > 0 && string(v.Handler) != "null" {
			var h struct {
				Param json.RawMessage `json:"param"`
				Body  json.RawMessage `json:"body"`
			}
			if err := json.Unmarshal(v.Handler, &h); err != nil {
				return nil, err
			}
			var param *Identifier
			if len(h.Param) > 0 && string(h.Param) != "null" {
				param, err = decodeIdentifierOnly(h.Param)
				if err != nil {
					return nil, err
				}
			}
			hbody, err := decodeBlock(h.Body)
			if err != nil {
				return nil, err
			}
			handler = &CatchClause{Param: param, Body: hbody}
		}
		var finalizer *BlockStatement
		if len(v.Finalizer) > 0 && string(v.Finalizer) != "null" {
			finalizer, err = decodeBlock(v.Finalizer)
			if err != nil {
				return nil, err
			}
		}
		return &TryStatement{Block: block, Handler: handler, Finalizer: finalizer}, nil

	case "LabeledStatement":
		var v struct {
			Label json.RawMessage `json:"label"`
			Body  json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		label, err := decodeIdentifierOnly(v.Label)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return &LabeledStatement{Label: label, Body: body}, nil

	case "WithStatement":
		var v struct {
			Object json.RawMessage `json:"object"`
			Body   json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		obj, err := decodeExpression(v.Object)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(v.Body)
		if err != nil {
			return nil, err
		}
		return &WithStatement{Object: obj, Body: body}, nil

	case "Directive":
		var v struct {
			Value struct {
				Value string `json:"value"`
			} `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &Directive{Value: &DirectiveLiteral{Value: v.Value.Value}}, nil

	default:
		// Expression statements sometimes double as statements in a
		// producer's shape; fall back to treating an unrecognised
		// node as an expression wrapped for evaluation.
		if expr, exprErr := decodeExpression(raw); exprErr == nil {
			return &ExpressionStatement{Expression: expr}, nil
		}
		return nil, fmt.Errorf("unhandled node type: %s", tag.Type)
	}
}

func decodeBlock(raw json.RawMessage) (*BlockStatement, error) {
	s, err := decodeStatement(raw)
	if err != nil {
		return nil, err
	}
	block, ok := s.(*BlockStatement)
	if !ok {
		return nil, fmt.Errorf("expected BlockStatement, got %s", s.Type())
	}
	return block, nil
}

func decodeOptionalLabel(raw json.RawMessage) (*Identifier, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return decodeIdentifierOnly(raw)
}

func decodeIdentifierOnly(raw json.RawMessage) (*Identifier, error) {
	expr, err := decodeExpression(raw)
	if err != nil {
		return nil, err
	}
	id, ok := expr.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("expected Identifier, got %s", expr.Type())
	}
	return id, nil
}

func decodeIdentifierList(raws []json.RawMessage) ([]*Identifier, error) {
	out := make([]*Identifier, 0, len(raws))
	for _, r := range raws {
		id, err := decodeIdentifierOnly(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func decodeExpression(raw json.RawMessage) (Expression, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}

	switch tag.Type {
	case "Identifier":
		var v struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &Identifier{Name: v.Name}, nil

	case "ThisExpression":
		return &ThisExpression{}, nil

	case "StringLiteral":
		var v struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &StringLiteral{Value: v.Value}, nil

	case "NumericLiteral":
		var v struct {
			Value float64 `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &NumericLiteral{Value: v.Value}, nil

	case "BooleanLiteral":
		var v struct {
			Value bool `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &BooleanLiteral{Value: v.Value}, nil

	case "NullLiteral":
		return &NullLiteral{}, nil

	case "RegExpLiteral":
		var v struct {
			Pattern string `json:"pattern"`
			Flags   string `json:"flags"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return &RegExpLiteral{Pattern: v.Pattern, Flags: v.Flags}, nil

	case "ArrayExpression":
		var v struct {
			Elements []json.RawMessage `json:"elements"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		elems := make([]Expression, 0, len(v.Elements))
		for _, e := range v.Elements {
			if len(e) == 0 || string(e) == "null" {
				elems = append(elems, nil)
				continue
			}
			el, err := decodeExpression(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
		}
		return &ArrayExpression{Elements: elems}, nil

	case "ObjectExpression":
		var v struct {
			Properties []json.RawMessage `json:"properties"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		props := make([]ObjectExpressionProperty, 0, len(v.Properties))
		for _, p := range v.Properties {
			prop, err := decodeObjectProperty(p)
			if err != nil {
				return nil, err
			}
			props = append(props, prop)
		}
		return &ObjectExpression{Properties: props}, nil

	case "FunctionExpression":
		var v struct {
			Id     json.RawMessage   `json:"id"`
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		var id *Identifier
		if len(v.Id) > 0 && string(v.Id) != "null" {
			var err error
			id, err = decodeIdentifierOnly(v.Id)
			if err != nil {
				return nil, err
			}
		}
		params, err := decodeIdentifierList(v.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body)
		if err != nil {
			return nil, err
		}
		return &FunctionExpression{Id: id, Params: params, Body: body}, nil

	case "ArrowFunctionExpression":
		var v struct {
			Params []json.RawMessage `json:"params"`
			Body   json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		params, err := decodeIdentifierList(v.Params)
		if err != nil {
			return nil, err
		}
		var t typeTag
		json.Unmarshal(v.Body, &t)
		var body Node
		if t.Type == "BlockStatement" {
			body, err = decodeBlock(v.Body)
		} else {
			body, err = decodeExpression(v.Body)
		}
		if err != nil {
			return nil, err
		}
		return &ArrowFunctionExpression{Params: params, Body: body}, nil

	case "UnaryExpression":
		var v struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(v.Argument)
		if err != nil {
			return nil, err
		}
		return &UnaryExpression{Operator: v.Operator, Argument: arg}, nil

	case "UpdateExpression":
		var v struct {
			Operator string          `json:"operator"`
			Argument json.RawMessage `json:"argument"`
			Prefix   bool            `json:"prefix"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(v.Argument)
		if err != nil {
			return nil, err
		}
		return &UpdateExpression{Operator: v.Operator, Argument: arg, Prefix: v.Prefix}, nil

	case "BinaryExpression":
		var v struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		left, err := decodeExpression(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpression{Operator: v.Operator, Left: left, Right: right}, nil

	case "LogicalExpression":
		var v struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		left, err := decodeExpression(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Right)
		if err != nil {
			return nil, err
		}
		return &LogicalExpression{Operator: v.Operator, Left: left, Right: right}, nil

	case "AssignmentExpression":
		var v struct {
			Operator string          `json:"operator"`
			Left     json.RawMessage `json:"left"`
			Right    json.RawMessage `json:"right"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		left, err := decodeExpression(v.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(v.Right)
		if err != nil {
			return nil, err
		}
		return &AssignmentExpression{Operator: v.Operator, Left: left, Right: right}, nil

	case "SequenceExpression":
		var v struct {
			Expressions []json.RawMessage `json:"expressions"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		exprs := make([]Expression, 0, len(v.Expressions))
		for _, e := range v.Expressions {
			expr, err := decodeExpression(e)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
		}
		return &SequenceExpression{Expressions: exprs}, nil

	case "ConditionalExpression":
		var v struct {
			Test       json.RawMessage `json:"test"`
			Consequent json.RawMessage `json:"consequent"`
			Alternate  json.RawMessage `json:"alternate"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		test, err := decodeExpression(v.Test)
		if err != nil {
			return nil, err
		}
		cons, err := decodeExpression(v.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := decodeExpression(v.Alternate)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil

	case "MemberExpression":
		var v struct {
			Object   json.RawMessage `json:"object"`
			Property json.RawMessage `json:"property"`
			Computed bool            `json:"computed"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		obj, err := decodeExpression(v.Object)
		if err != nil {
			return nil, err
		}
		prop, err := decodeExpression(v.Property)
		if err != nil {
			return nil, err
		}
		return &MemberExpression{Object: obj, Property: prop, Computed: v.Computed}, nil

	case "CallExpression":
		var v struct {
			Callee    json.RawMessage   `json:"callee"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		callee, err := decodeExpression(v.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeArgumentList(v.Arguments)
		if err != nil {
			return nil, err
		}
		return &CallExpression{Callee: callee, Arguments: args}, nil

	case "NewExpression":
		var v struct {
			Callee    json.RawMessage   `json:"callee"`
			Arguments []json.RawMessage `json:"arguments"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		callee, err := decodeExpression(v.Callee)
		if err != nil {
			return nil, err
		}
		args, err := decodeArgumentList(v.Arguments)
		if err != nil {
			return nil, err
		}
		return &NewExpression{Callee: callee, Arguments: args}, nil

	case "SpreadElement":
		var v struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(v.Argument)
		if err != nil {
			return nil, err
		}
		return &SpreadElement{Argument: arg}, nil

	default:
		return nil, fmt.Errorf("unhandled node type: %s", tag.Type)
	}
}

func decodeArgumentList(raws []json.RawMessage) ([]Expression, error) {
	out := make([]Expression, 0, len(raws))
	for _, r := range raws {
		e, err := decodeExpression(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeObjectProperty(raw json.RawMessage) (ObjectExpressionProperty, error) {
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case "SpreadElement":
		var v struct {
			Argument json.RawMessage `json:"argument"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		arg, err := decodeExpression(v.Argument)
		if err != nil {
			return nil, err
		}
		return &SpreadElement{Argument: arg}, nil

	case "ObjectMethod":
		var v struct {
			Key      json.RawMessage   `json:"key"`
			Computed bool              `json:"computed"`
			Kind     string            `json:"kind"`
			Params   []json.RawMessage `json:"params"`
			Body     json.RawMessage   `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		key, err := decodeExpression(v.Key)
		if err != nil {
			return nil, err
		}
		params, err := decodeIdentifierList(v.Params)
		if err != nil {
			return nil, err
		}
		body, err := decodeBlock(v.Body)
		if err != nil {
			return nil, err
		}
		kind := v.Kind
		if kind == "" {
			kind = "init"
		}
		return &ObjectMethod{Key: key, Computed: v.Computed, Kind: kind, Params: params, Body: body}, nil

	default: // "ObjectProperty"
		var v struct {
			Key       json.RawMessage `json:"key"`
			Value     json.RawMessage `json:"value"`
			Computed  bool            `json:"computed"`
			Shorthand bool            `json:"shorthand"`
			Kind      string          `json:"kind"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		key, err := decodeExpression(v.Key)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(v.Value)
		if err != nil {
			return nil, err
		}
		kind := v.Kind
		if kind == "" {
			kind = "init"
		}
		return &ObjectProperty{Key: key, Value: value, Computed: v.Computed, Shorthand: v.Shorthand, Kind: kind}, nil
	}
}
