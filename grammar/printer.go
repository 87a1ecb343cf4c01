package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (p *Program) String() string {
	var b strings.Builder
	for _, d := range p.Declarations {
		b.WriteString(d.String())
	}
	return b.String()
}

func (d *Declaration) String() string {
	switch {
	case d.Comment != nil:
		return d.Comment.String() + "\n"
	case d.Function != nil:
		return d.Function.String() + "\n"
	case d.Main != nil:
		return d.Main.String() + "\n"
	}
	return ""
}

func (c *Comment) String() string {
	return c.Text
}

func (d *DocComment) String() string {
	return d.Text
}

func (f *Function) String() string {
	var b strings.Builder
	if f.Doc != nil {
		b.WriteString(f.Doc.String() + "\n")
	}
	b.WriteString(fmt.Sprintf("fn %s(", f.Name.Value))
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(")")
	if f.Return != nil {
		b.WriteString(fmt.Sprintf(" -> %s", f.Return.String()))
	}
	b.WriteString(" " + f.Body.String())
	return b.String()
}

func (m *MainFunction) String() string {
	var b strings.Builder
	if m.Doc != nil {
		b.WriteString(m.Doc.String() + "\n")
	}
	b.WriteString("main " + m.Body.String())
	return b.String()
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name.Value, p.Type.String())
}

func (t *Type) String() string {
	var s string
	if t.Array != nil {
		s = t.Array.String()
	} else if t.Name != nil {
		s = t.Name.Value
	}
	return s + strings.Repeat("*", len(t.Pointer))
}

func (a *ArrayType) String() string {
	return fmt.Sprintf("[%s; %s]", a.Elem.String(), a.Size)
}

func (b *Block) StringWithIndent(level int) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Stmts {
		sb.WriteString(s.StringWithIndent(level + 1))
	}
	sb.WriteString(indent(level) + "}\n")
	return sb.String()
}

func (b *Block) String() string {
	return b.StringWithIndent(0)
}

func (s *Stmt) StringWithIndent(level int) string {
	switch {
	case s.Comment != nil:
		return indent(level) + s.Comment.String() + "\n"
	case s.Let != nil:
		return indent(level) + s.Let.String() + "\n"
	case s.Return != nil:
		return indent(level) + s.Return.String() + "\n"
	case s.If != nil:
		return indent(level) + s.If.StringWithIndent(level)
	case s.While != nil:
		return indent(level) + s.While.StringWithIndent(level)
	case s.For != nil:
		return indent(level) + s.For.StringWithIndent(level)
	case s.Break != nil:
		return indent(level) + "break;\n"
	case s.Continue != nil:
		return indent(level) + "continue;\n"
	case s.Block != nil:
		return indent(level) + s.Block.StringWithIndent(level)
	case s.ExprStmt != nil:
		return indent(level) + s.ExprStmt.String() + "\n"
	}
	return ""
}

func (l *LetStmt) String() string {
	var b strings.Builder
	b.WriteString("let ")
	if l.Mut {
		b.WriteString("mut ")
	}
	b.WriteString(l.Name.Value)
	if l.Type != nil {
		b.WriteString(": " + l.Type.String())
	}
	if l.Init != nil {
		b.WriteString(" = " + l.Init.String())
	}
	b.WriteString(";")
	return b.String()
}

func (r *ReturnStmt) String() string {
	if r.Value != nil {
		return fmt.Sprintf("return %s;", r.Value.String())
	}
	return "return;"
}

func (i *IfStmt) StringWithIndent(level int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("if (%s) %s", i.Cond.String(), i.Then.StringWithIndent(level)))
	if i.Else != nil {
		b.WriteString(indent(level) + "else " + i.Else.StringWithIndent(level))
	}
	return b.String()
}

func (e *ElseClause) StringWithIndent(level int) string {
	if e.If != nil {
		return e.If.StringWithIndent(level)
	}
	return e.Block.StringWithIndent(level)
}

func (w *WhileStmt) StringWithIndent(level int) string {
	return fmt.Sprintf("while (%s) %s", w.Cond.String(), w.Body.StringWithIndent(level))
}

func (f *ForStmt) StringWithIndent(level int) string {
	var init, cond, post string
	if f.Init != nil {
		init = f.Init.String()
	}
	if f.Cond != nil {
		cond = f.Cond.String()
	}
	if f.Post != nil {
		post = f.Post.String()
	}
	return fmt.Sprintf("for (%s; %s; %s) %s", init, cond, post, f.Body.StringWithIndent(level))
}

func (f *ForInit) String() string {
	if f.Let != nil {
		return f.Let.String()
	}
	if f.Expr != nil {
		return f.Expr.String()
	}
	return ""
}

func (f *ForLet) String() string {
	var b strings.Builder
	b.WriteString("let ")
	if f.Mut {
		b.WriteString("mut ")
	}
	b.WriteString(f.Name.Value)
	if f.Type != nil {
		b.WriteString(": " + f.Type.String())
	}
	if f.Init != nil {
		b.WriteString(" = " + f.Init.String())
	}
	return b.String()
}

func (e *ExprStmt) String() string {
	return fmt.Sprintf("%s;", e.Expr.String())
}

func (e *Expr) String() string {
	s := e.Binary.String()
	if e.Assign != nil {
		s += " = " + e.Assign.String()
	}
	return s
}

func (b *BinaryExpr) String() string {
	s := b.Left.String()
	for _, op := range b.Ops {
		s += " " + op.String()
	}
	return s
}

func (b *BinOp) String() string {
	return fmt.Sprintf("%s %s", b.Operator, b.Right.String())
}

func (u *UnaryExpr) String() string {
	var b strings.Builder
	if u.Operator != nil {
		b.WriteString(*u.Operator)
	}
	b.WriteString(u.Value.String())
	return b.String()
}

func (p *PostfixExpr) String() string {
	s := p.Primary.String()
	for _, idx := range p.Index {
		s += "[" + idx.String() + "]"
	}
	return s
}

func (p *PrimaryExpr) String() string {
	switch {
	case p.Call != nil:
		return p.Call.String()
	case p.Array != nil:
		return p.Array.String()
	case p.Float != nil:
		return *p.Float
	case p.Int != nil:
		return *p.Int
	case p.Str != nil:
		return *p.Str
	case p.Char != nil:
		return *p.Char
	case p.Bool != nil:
		return *p.Bool
	case p.Null != nil:
		return *p.Null
	case p.Ident != nil:
		return p.Ident.Value
	case p.Parens != nil:
		return "(" + p.Parens.String() + ")"
	}
	return ""
}

func (c *CallExpr) String() string {
	var b strings.Builder
	b.WriteString(c.Callee.Value + "(")
	for i, arg := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

func (a *ArrayLiteralExpr) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, e := range a.Elements {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteString("]")
	return b.String()
}
