// Package ast defines the external-collaborator AST the IR generator
// (C7) consumes: statements {Function, MainFunction, VarDeclaration,
// Expression, Return, If, While, For, Block, Break, Continue} and
// expressions {Literal, Variable, Binary, Unary, Assign, Call,
// ArrayAccess, ArrayLiteral, Grouping} (spec.md §6).
package ast

import "fmt"

// Position tracks a single point in source: filename, 1-based line and
// column, and 0-based byte offset (spec.md §6: "(file_path, (line,col,offset))").
type Position struct {
	Filename string
	Line     int
	Column   int
	Offset   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Node is the interface every AST node implements: its source span and
// a textual form for diagnostics/snapshot tests.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	String() string
}

// Ident is a bare identifier occurrence with its own span.
type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

func (i Ident) NodePos() Position    { return i.Pos }
func (i Ident) NodeEndPos() Position { return i.EndPos }
func (i Ident) String() string       { return i.Value }

// TypeExpr is a type annotation as written in source: a base name plus
// optional pointer/array modifiers.
type TypeExpr struct {
	Pos      Position
	EndPos   Position
	Name     string // "i32", "bool", "string", a named type, ...
	Pointer  bool
	Array    bool
	ArraySize int // valid when Array is true
	Elem     *TypeExpr // element type when Pointer or Array is true
}

func (t *TypeExpr) NodePos() Position    { return t.Pos }
func (t *TypeExpr) NodeEndPos() Position { return t.EndPos }
func (t *TypeExpr) String() string {
	switch {
	case t.Pointer:
		return t.Elem.String() + "*"
	case t.Array:
		return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.ArraySize)
	default:
		return t.Name
	}
}

// Param is one function parameter declaration.
type Param struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Type   *TypeExpr
}

func (p Param) NodePos() Position    { return p.Pos }
func (p Param) NodeEndPos() Position { return p.EndPos }
func (p Param) String() string       { return fmt.Sprintf("%s: %s", p.Name.Value, p.Type.String()) }

// Program is the root node: a sequence of top-level function (and the
// one optional main function) declarations.
type Program struct {
	Pos       Position
	EndPos    Position
	Functions []*FunctionDecl
	Main      *MainFunctionDecl // nil if the source has no `main`
}

func (p *Program) NodePos() Position    { return p.Pos }
func (p *Program) NodeEndPos() Position { return p.EndPos }
func (p *Program) String() string {
	s := ""
	for _, f := range p.Functions {
		s += f.String() + "\n"
	}
	if p.Main != nil {
		s += p.Main.String() + "\n"
	}
	return s
}
