package compiler

// SymbolScope classifies where a resolved identifier lives.
type SymbolScope int

const (
	ScopeGlobal SymbolScope = iota
	ScopeLocal
	ScopeUpvalue
	ScopeModuleLocal
)

// Symbol is one resolved binding: a name plus where and at what index it
// lives.
type Symbol struct {
	Name     string
	Scope    SymbolScope
	Index    int
	IsConst  bool
}

// SymbolTable is a chain of lexical scopes, one per function body, used to
// resolve identifiers to locals/upvalues/globals/module-locals during the
// compile pass. Grounded on the teacher's Code.symbols field (a SymbolTable
// per Code block), rebuilt here as its own small type since the teacher's
// own symbol_table.go did not survive retrieval.
type SymbolTable struct {
	parent *SymbolTable
	store  map[string]*Symbol
	order  []string // per-scope declaration order, used for local slot indices

	// globalOrder/moduleOrder are only ever populated on the root table:
	// globals and module-locals are process-wide storage, not per-function
	// stack slots, so they get their own independent index spaces.
	globalOrder []string
	moduleOrder []string

	// globals is shared across the whole program: only the outermost
	// table has parent == nil and owns this map.
	globals *SymbolTable
}

func NewGlobalSymbolTable() *SymbolTable {
	t := &SymbolTable{store: map[string]*Symbol{}}
	t.globals = t
	return t
}

func (t *SymbolTable) NewChild() *SymbolTable {
	return &SymbolTable{parent: t, store: map[string]*Symbol{}, globals: t.globals}
}

// Define creates a new local/global binding in this scope.
func (t *SymbolTable) Define(name string, isConst bool) *Symbol {
	if t.parent == nil {
		sym := &Symbol{Name: name, Scope: ScopeGlobal, Index: len(t.globalOrder), IsConst: isConst}
		t.store[name] = sym
		t.globalOrder = append(t.globalOrder, name)
		return sym
	}
	sym := &Symbol{Name: name, Scope: ScopeLocal, Index: len(t.order), IsConst: isConst}
	t.store[name] = sym
	t.order = append(t.order, name)
	return sym
}

// DefineModuleLocal creates a `local var`/`local const` binding, stored in
// module-local storage rather than function-local stack slots.
func (t *SymbolTable) DefineModuleLocal(name string, isConst bool) *Symbol {
	root := t.Root()
	sym := &Symbol{Name: name, Scope: ScopeModuleLocal, Index: len(root.moduleOrder), IsConst: isConst}
	root.store[name] = sym
	root.moduleOrder = append(root.moduleOrder, name)
	return sym
}

// Root returns the outermost (module-level) table in the chain. Upvalue
// resolution itself lives in package compiler's resolveIdent, which walks
// the Code tree (not just the SymbolTable chain) so it can record capture
// chains on each intervening function's freeVars list.
func (t *SymbolTable) Root() *SymbolTable {
	cur := t
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// Count returns the number of function-local slots in this scope. The root
// table's only local slots are those compileWithStmt gives top-level
// `with (... as name)` bindings; its other bindings live in
// GlobalCount/ModuleLocalCount instead.
func (t *SymbolTable) Count() int { return len(t.order) }

func (t *SymbolTable) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

func (t *SymbolTable) GlobalCount() int { return len(t.Root().globalOrder) }
func (t *SymbolTable) ModuleLocalCount() int { return len(t.Root().moduleOrder) }

func (t *SymbolTable) GlobalNames() []string {
	root := t.Root()
	names := make([]string, len(root.globalOrder))
	copy(names, root.globalOrder)
	return names
}

func (t *SymbolTable) ModuleLocalNames() []string {
	root := t.Root()
	names := make([]string, len(root.moduleOrder))
	copy(names, root.moduleOrder)
	return names
}
