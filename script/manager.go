// Package script is the Script Manager: the process-wide owner of the
// globals/constants/classes/namespaces tables every vm.VM thread shares,
// native function/class registration, and module loading for `import`/
// `from import`. Grounded on the teacher's builtins.go registration idiom
// for native functions and wudi-hey's ClassDescriptor/MethodDescriptor
// registry for native classes (Risor has no class system of its own to
// borrow from there).
package script

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/hatchlang/hatch/value"
	"github.com/hatchlang/hatch/vm"
)

// Manager owns the shared heap tables a Script Manager exposes to every VM
// thread it spawns: globals/constants (via vm.Global) and a registry of
// native classes, plus a Tokens table used only for diagnostics
// (hash -> original identifier text, so error messages can name a symbol
// instead of printing its Murmur32 hash).
type Manager struct {
	mu sync.Mutex

	global  *vm.Global
	gc      *value.GC
	classes map[uint32]*value.Class
	tokens  map[uint32]string
	loader  *FileModuleLoader

	log zerolog.Logger
}

// New creates an empty Script Manager with its own GC heap, shared by every
// VM thread it spawns via NewThread.
func New() *Manager {
	m := &Manager{
		global:  vm.NewGlobal(),
		gc:      value.NewGC(),
		classes: map[uint32]*value.Class{},
		tokens:  map[uint32]string{},
		log:     zerolog.Nop(),
	}
	m.loader = &FileModuleLoader{manager: m}
	return m
}

// SetLogger installs the structured logger this manager (and every VM
// thread it spawns afterward via NewThread) uses, injected the same way
// vm.WithLogger is rather than reached for globally.
func (m *Manager) SetLogger(l zerolog.Logger) {
	m.log = l
}

// Lock/Unlock expose the manager's own mutex, the one RegisterClass,
// RegisterFunction, ClassByName and TokenFor take around the class and
// token tables. The VM never takes it: opcode dispatch locks only
// vm.Global's own mutex, around each global-table access.
func (m *Manager) Lock()   { m.mu.Lock() }
func (m *Manager) Unlock() { m.mu.Unlock() }

// Global returns the shared vm.Global table every spawned VM thread binds
// to, so GetGlobal/SetGlobal/DefineGlobal resolve consistently across
// threads.
func (m *Manager) Global() *vm.Global { return m.global }

// GC returns the shared heap every spawned VM thread allocates into.
func (m *Manager) GC() *value.GC { return m.gc }

// NewThread spawns a VM bound to this manager's shared Global table, heap,
// and module loader.
func (m *Manager) NewThread(options ...vm.Option) *vm.VM {
	opts := append([]vm.Option{vm.WithGC(m.gc), vm.WithModuleLoader(m.loader), vm.WithLogger(m.log)}, options...)
	return vm.New(m.global, opts...)
}

// rememberToken records name under its hash for diagnostic lookups; it is
// never consulted by ordinary execution.
func (m *Manager) rememberToken(name string) uint32 {
	hash := value.HashIdent(name)
	m.tokens[hash] = name
	return hash
}

// TokenFor resolves a previously-registered name hash back to its source
// text, used only when formatting diagnostics (§4.4's "Tokens... used only
// for diagnostics").
func (m *Manager) TokenFor(hash uint32) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.tokens[hash]
	return name, ok
}

// RegisterClass publishes a native class under name, installing it as both
// a constant and a global per §4.4 ("Registered names are published as
// both constants and globals so that import succeeds").
func (m *Manager) RegisterClass(name string, cls *value.Class) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash := m.rememberToken(name)
	cls.Name = name
	cls.Hash = hash
	m.classes[hash] = cls
	v := value.FromObj(m.gc.Register(cls))
	m.global.Lock()
	m.global.Define(hash, name, v, true)
	m.global.Unlock()
	m.log.Debug().Str("class", name).Str("debugName", cls.DebugName).Msg("registered native class")
}

// ClassByName looks up a native class previously registered through
// RegisterClass; classes declared by scripts are not in this table.
func (m *Manager) ClassByName(name string) (*value.Class, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cls, ok := m.classes[value.HashIdent(name)]
	return cls, ok
}

// RegisterFunction publishes a native function under name as a constant
// global. fn is stored as is, with no arity check added around it; each
// native function validates its own arguments.
func (m *Manager) RegisterFunction(name string, fn func(args []value.Value) value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash := m.rememberToken(name)
	native := &value.NativeFunction{Name: name, Fn: fn}
	v := value.FromObj(m.gc.Register(native))
	m.global.Lock()
	m.global.Define(hash, name, v, true)
	m.global.Unlock()
}

// ArgError formats a native function's argument-count mismatch as
// "name: expected N argument(s), got M", wrapped into a KindError Value
// since native functions return value.Value, not (value.Value, error).
func ArgError(name string, want, got int) value.Value {
	return value.Err("%s: expected %d argument(s), got %d", name, want, got)
}

// ArgRangeError is ArgError's variant for functions accepting a range of
// argument counts (e.g. a trailing optional parameter).
func ArgRangeError(name string, min, max, got int) value.Value {
	return value.Err("%s: expected %d-%d arguments, got %d", name, min, max, got)
}
