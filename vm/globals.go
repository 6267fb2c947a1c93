package vm

import (
	"github.com/hatchlang/hatch/herr"
	"github.com/hatchlang/hatch/value"
)

// getGlobal/setGlobal/defineGlobal route through the active namespace (the
// one most recently opened by Namespace and not yet closed by NamespaceEnd)
// when one is open, so a `var`/`const` declared inside `namespace X { ... }`
// becomes a field of X's Namespace object instead of a top-level global —
// matching compileNamespaceDecl, which compiles its body with ordinary
// VarStmt/ClassDecl/EnumDecl statements rather than a dedicated namespace
// member opcode.
func (vm *VM) activeNamespace() *value.Namespace {
	if len(vm.namespaceStack) == 0 {
		return nil
	}
	return vm.namespaceStack[len(vm.namespaceStack)-1]
}

func (vm *VM) getGlobal(name string) (value.Value, bool) {
	hash := value.HashIdent(name)
	if ns := vm.activeNamespace(); ns != nil {
		if v, ok := ns.Fields[hash]; ok {
			return v, true
		}
	}
	vm.global.Lock()
	defer vm.global.Unlock()
	return vm.global.get(hash)
}

func (vm *VM) setGlobal(name string, v value.Value) error {
	hash := value.HashIdent(name)
	if ns := vm.activeNamespace(); ns != nil {
		ns.Fields[hash] = v
		return nil
	}
	vm.global.Lock()
	defer vm.global.Unlock()
	return vm.global.set(hash, name, v)
}

func (vm *VM) defineGlobal(name string, v value.Value, isConst bool) {
	hash := value.HashIdent(name)
	if ns := vm.activeNamespace(); ns != nil {
		ns.Fields[hash] = v
		ns.Order = append(ns.Order, hash)
		return
	}
	vm.global.Lock()
	defer vm.global.Unlock()
	vm.global.define(hash, name, v, isConst)
}

// doUseNamespace merges a previously-bound Namespace's fields into the
// top-level global table, implementing `using namespace X`.
func (vm *VM) doUseNamespace(name string) error {
	v, ok := vm.getGlobal(name)
	if !ok {
		return herr.New(herr.NameResolution, "undefined namespace %q", name)
	}
	ns, ok := v.Obj().(*value.Namespace)
	if !ok {
		return herr.New(herr.TypeMismatch, "%q is not a namespace", name)
	}
	ns.InUse = true
	vm.global.Lock()
	defer vm.global.Unlock()
	for hash, fv := range ns.Fields {
		vm.global.values[hash] = fv
		if n, ok := vm.global.names[hash]; !ok || n == "" {
			vm.global.names[hash] = name
		}
	}
	return nil
}

// doImport binds a named import (`import foo;`) to a Module value produced
// by the ModuleLoader, matching the symbol collectDecls/defineResolved
// already pre-declared for it.
func (vm *VM) doImport(name string) error {
	if vm.loader == nil {
		return herr.New(herr.ImportFailure, "import: no module loader configured")
	}
	mod, err := vm.loader.Load(name)
	if err != nil {
		return herr.New(herr.ImportFailure, "import %q: %s", name, err)
	}
	vm.push(value.FromObj(vm.gc.Register(mod)))
	return nil
}

// doImportModule loads a module purely for its side effects (`from "path"`),
// leaving nothing useful on the stack beyond the Module value itself, which
// the ExprStmt/FromImportStmt compile path pops immediately.
func (vm *VM) doImportModule(path string) error {
	if vm.loader == nil {
		return herr.New(herr.ImportFailure, "import: no module loader configured")
	}
	mod, err := vm.loader.Load(path)
	if err != nil {
		return herr.New(herr.ImportFailure, "import %q: %s", path, err)
	}
	vm.push(value.FromObj(vm.gc.Register(mod)))
	return nil
}
