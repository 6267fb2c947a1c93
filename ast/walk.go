package ast

// Visitor's Visit method is invoked for every node encountered by Walk. If
// the returned Visitor is non-nil, Walk visits each child of the node with
// that visitor.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses an AST in depth-first order. The compiler does not use it:
// its declaration-collecting first pass iterates the top-level statements
// directly.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	v = v.Visit(node)
	if v == nil {
		return
	}
	switch n := node.(type) {
	case *Program:
		walkStmts(v, n.Statements)
	case *BlockStmt:
		walkStmts(v, n.Statements)
	case *ExprStmt:
		Walk(v, n.Expr)
	case *VarStmt:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *IfStmt:
		Walk(v, n.Condition)
		Walk(v, n.Consequence)
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}
	case *WhileStmt:
		Walk(v, n.Condition)
		Walk(v, n.Body)
	case *DoWhileStmt:
		Walk(v, n.Body)
		Walk(v, n.Condition)
	case *ForStmt:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Condition != nil {
			Walk(v, n.Condition)
		}
		if n.Step != nil {
			Walk(v, n.Step)
		}
		Walk(v, n.Body)
	case *ForeachStmt:
		Walk(v, n.Iterable)
		Walk(v, n.Body)
	case *RepeatStmt:
		Walk(v, n.Count)
		Walk(v, n.Body)
	case *SwitchStmt:
		Walk(v, n.Value)
		for _, c := range n.Cases {
			for _, val := range c.Values {
				Walk(v, val)
			}
			walkStmts(v, c.Consequence)
		}
	case *ReturnStmt:
		if n.Value != nil {
			Walk(v, n.Value)
		}
	case *PrintStmt:
		Walk(v, n.Value)
	case *WithStmt:
		Walk(v, n.Subject)
		Walk(v, n.Body)
	case *ClassDecl:
		for _, f := range n.Fields {
			if f.Value != nil {
				Walk(v, f.Value)
			}
		}
		for _, m := range n.Methods {
			Walk(v, m.Body)
		}
	case *EnumDecl:
		for _, m := range n.Members {
			if m.Value != nil {
				Walk(v, m.Value)
			}
		}
	case *NamespaceDecl:
		walkStmts(v, n.Statements)
	case *PrefixExpr:
		Walk(v, n.Right)
	case *PostfixExpr:
		Walk(v, n.Left)
	case *InfixExpr:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *TernaryExpr:
		Walk(v, n.Condition)
		Walk(v, n.Consequence)
		Walk(v, n.Alternative)
	case *AssignExpr:
		Walk(v, n.Target)
		Walk(v, n.Value)
	case *CallExpr:
		Walk(v, n.Callee)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *NewExpr:
		Walk(v, n.Class)
		for _, a := range n.Args {
			Walk(v, a)
		}
	case *MemberExpr:
		Walk(v, n.Object)
	case *IndexExpr:
		Walk(v, n.Object)
		Walk(v, n.Index)
	case *FunctionLiteral:
		Walk(v, n.Body)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			Walk(v, el)
		}
	case *MapLiteral:
		for _, p := range n.Pairs {
			Walk(v, p.Key)
			Walk(v, p.Value)
		}
	}
}

func walkStmts(v Visitor, stmts []Stmt) {
	for _, s := range stmts {
		Walk(v, s)
	}
}
