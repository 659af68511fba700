package dav

// Symbol is an entry in a scope: a name, its type, and, for functions, its
// parameter types, so call sites can check arity and argument types. Plain
// variables leave Params nil and IsFunc false.
type Symbol struct {
	Name   string
	Type   Type
	IsFunc bool
	Params []Type
}

// scope is one flat name->Symbol table, backed by a Go map. Add never
// checks for an existing entry; callers must Lookup first and raise their
// own redefinition diagnostic.
type scope struct {
	entries map[string]Symbol
}

func newScope() scope {
	return scope{entries: make(map[string]Symbol)}
}

func (s *scope) add(sym Symbol) {
	s.entries[sym.Name] = sym
}

func (s *scope) get(name string) (Symbol, bool) {
	sym, ok := s.entries[name]
	return sym, ok
}

func (s *scope) clear() {
	s.entries = make(map[string]Symbol)
}

// SymbolTable holds two scopes: global (functions and top-level variables,
// live for the whole compilation) and local (the current function's
// parameters and locals, cleared on function entry). Lookup tries local
// first, then falls back to global.
type SymbolTable struct {
	global scope
	local  scope
}

// NewSymbolTable creates an empty symbol table with the runtime helpers
// (concat, itos, ctos, strlen, strcmp, read_file, write_file) pre-inserted
// into the global scope, so user code can call them without a forward
// declaration.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{global: newScope(), local: newScope()}
	for name, sym := range runtimeHelperSymbols() {
		sym.Name = name
		sym.IsFunc = true
		st.global.add(sym)
	}
	return st
}

// AddGlobal adds or overwrites a symbol in the global scope.
func (t *SymbolTable) AddGlobal(sym Symbol) {
	t.global.add(sym)
}

// AddLocal adds or overwrites a symbol in the local scope.
func (t *SymbolTable) AddLocal(sym Symbol) {
	t.local.add(sym)
}

// LookupLocal reports whether name is present in the local scope only; used
// by declaration parsers to detect redefinition within the same scope
// without falling back to global.
func (t *SymbolTable) LookupLocal(name string) (Symbol, bool) {
	return t.local.get(name)
}

// LookupGlobal reports whether name is present in the global scope only.
func (t *SymbolTable) LookupGlobal(name string) (Symbol, bool) {
	return t.global.get(name)
}

// Lookup resolves name using the local-then-global rule.
func (t *SymbolTable) Lookup(name string) (Symbol, bool) {
	if sym, ok := t.local.get(name); ok {
		return sym, true
	}
	return t.global.get(name)
}

// ClearLocal truncates the local scope back to empty, called on function
// entry.
func (t *SymbolTable) ClearLocal() {
	t.local.clear()
}

// runtimeHelperSymbols describes the fixed C runtime surface's call shape:
// return type plus parameter types, so call sites get the same arity/type
// checking as a user-declared function.
func runtimeHelperSymbols() map[string]Symbol {
	return map[string]Symbol{
		"concat":     {Type: TypeCharPtr, Params: []Type{TypeCharPtr, TypeCharPtr}},
		"itos":       {Type: TypeCharPtr, Params: []Type{TypeInt}},
		"ctos":       {Type: TypeCharPtr, Params: []Type{TypeChar}},
		"strlen":     {Type: TypeInt, Params: []Type{TypeCharPtr}},
		"strcmp":     {Type: TypeInt, Params: []Type{TypeCharPtr, TypeCharPtr}},
		"read_file":  {Type: TypeCharPtr, Params: []Type{TypeCharPtr}},
		"write_file": {Type: TypeVoid, Params: []Type{TypeCharPtr, TypeCharPtr}},
	}
}
