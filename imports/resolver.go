// Package imports decides, for one compilation-unit run, whether each type reference
// is abbreviated to its simple name (registering an import where needed) or stays
// fully qualified.
//
// A Resolver moves through three states. While Collecting (the dry run), every
// requested name is recorded and unclaimed simple names are reserved. Resolve freezes
// the import lists. While Emitting, names seen before return the spelling decided
// earlier; unseen names go through the same rules against the frozen decisions.
package imports

import (
	"slices"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/rlch/jgen"
)

// State is the resolver's position in the two-pass protocol.
type State int

const (
	// Collecting records references during the dry run.
	Collecting State = iota
	// Resolved means the import lists are final.
	Resolved
	// Emitting serves the real pass.
	Emitting
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Resolved:
		return "resolved"
	case Emitting:
		return "emitting"
	default:
		return "unknown"
	}
}

const (
	langPackage = "java.lang"
	wildcard    = ".*"
	globalScope = ""
)

// DeclaredType describes a type declared by the compilation unit being generated.
type DeclaredType struct {
	// Name is the fully qualified name.
	Name string

	// Supertypes are the fully qualified erasures of the direct supertypes.
	Supertypes []string

	// Members are the declared nested types.
	Members []*DeclaredType

	// Fields and Methods are the simple names of the declared fields (enum constants
	// and record components included) and methods. They shadow static imports of the
	// same name inside the type body.
	Fields  []string
	Methods []string
}

// binding is a simple name visible without a single-type import.
type binding struct {
	fqn string

	// onDemand marks java.lang and wildcard imports, which types of the unit's own
	// package shadow.
	onDemand bool
}

// Resolver is the per-run import registry. It is not safe for concurrent use.
type Resolver struct {
	pkg      string
	mainType string
	env      jgen.Environment
	logger   *zap.Logger
	state    State

	// Types declared by the unit, at every depth, and their reserved simple names.
	declared map[string]*DeclaredType
	topLevel map[string]bool
	reserved map[string]bool

	imports         map[string]string  // simple name -> imported fqn
	implicit        map[string]binding // simple name -> type visible without import
	wildcards       []string           // packages imported on demand
	staticImports   map[string]string  // member name -> imported static member
	staticWildcards []string           // types whose static members are imported on demand

	importList map[string]bool
	staticList map[string]bool

	decisions       map[string]map[string]string // scope -> fqn -> spelling
	staticDecisions map[string]string

	scope    []string
	levels   map[string]map[string][]string // scope fqn -> simple name -> member fqns
	typeVars [][]string                     // type parameters in scope, per declaration
}

// NewResolver creates a resolver for a compilation unit in package pkg.
// env may be nil; logger may be nil.
func NewResolver(pkg string, env jgen.Environment, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Resolver{
		pkg:             pkg,
		env:             env,
		logger:          logger,
		declared:        make(map[string]*DeclaredType),
		topLevel:        make(map[string]bool),
		reserved:        make(map[string]bool),
		imports:         make(map[string]string),
		implicit:        make(map[string]binding),
		staticImports:   make(map[string]string),
		importList:      make(map[string]bool),
		staticList:      make(map[string]bool),
		decisions:       make(map[string]map[string]string),
		staticDecisions: make(map[string]string),
		levels:          make(map[string]map[string][]string),
	}
}

// State returns the current protocol state.
func (r *Resolver) State() State {
	return r.state
}

// SetMainType records the unit's main type. References to it are always simple.
func (r *Resolver) SetMainType(fqn string) {
	r.mainType = fqn
}

// DeclareType registers a top-level type of the unit together with its nested types.
// Their simple names are never imported.
func (r *Resolver) DeclareType(t *DeclaredType) {
	r.topLevel[t.Name] = true
	r.declare(t)
}

func (r *Resolver) declare(t *DeclaredType) {
	r.declared[t.Name] = t
	r.reserved[jgen.SimpleName(t.Name)] = true

	for _, m := range t.Members {
		r.declare(m)
	}
}

// DeclareImport adds an explicit import ("a.b.C" or "a.b.*"). Explicit imports are
// always emitted.
func (r *Resolver) DeclareImport(fqn string) {
	r.importList[fqn] = true

	if pkg, ok := strings.CutSuffix(fqn, wildcard); ok {
		r.wildcards = append(r.wildcards, pkg)

		return
	}

	simple := jgen.SimpleName(fqn)
	if bound, ok := r.imports[simple]; ok && bound != fqn {
		r.logger.Warn("declared import conflicts with an earlier import",
			zap.String("import", fqn), zap.String("existing", bound))

		return
	}

	if r.reserved[simple] {
		r.logger.Warn("declared import shadows a type declared in the unit", zap.String("import", fqn))
	}

	r.imports[simple] = fqn
}

// DeclareStaticImport adds an explicit static import ("a.b.C.m" or "a.b.C.*").
func (r *Resolver) DeclareStaticImport(member string) {
	r.staticList[member] = true

	if owner, ok := strings.CutSuffix(member, wildcard); ok {
		r.staticWildcards = append(r.staticWildcards, owner)

		return
	}

	simple := jgen.SimpleName(member)
	if bound, ok := r.staticImports[simple]; ok && bound != member {
		r.logger.Warn("declared static import conflicts with an earlier import",
			zap.String("import", member), zap.String("existing", bound))

		return
	}

	r.staticImports[simple] = member
}

// Resolve ends the collecting phase and returns the sorted import and static-import
// lists.
func (r *Resolver) Resolve() ([]string, []string) {
	if r.state == Collecting {
		r.state = Resolved
	}

	return r.Imports(), r.StaticImports()
}

// BeginEmit switches to the emitting phase.
func (r *Resolver) BeginEmit() {
	r.state = Emitting
}

// Imports returns the imports to emit, sorted.
func (r *Resolver) Imports() []string {
	return sortedKeys(r.importList)
}

// StaticImports returns the static imports to emit, sorted.
func (r *Resolver) StaticImports() []string {
	return sortedKeys(r.staticList)
}

// EnterType pushes a type body scope.
func (r *Resolver) EnterType(fqn string) {
	r.scope = append(r.scope, fqn)
}

// ExitType pops the innermost type body scope.
func (r *Resolver) ExitType() {
	if len(r.scope) > 0 {
		r.scope = r.scope[:len(r.scope)-1]
	}
}

// EnterTypeVariables pushes the type parameters a class or method declares. A type
// whose simple name equals one of them stays qualified until the matching
// ExitTypeVariables.
func (r *Resolver) EnterTypeVariables(names ...string) {
	r.typeVars = append(r.typeVars, names)
}

// ExitTypeVariables pops the innermost type parameter declaration.
func (r *Resolver) ExitTypeVariables() {
	if len(r.typeVars) > 0 {
		r.typeVars = r.typeVars[:len(r.typeVars)-1]
	}
}

func (r *Resolver) typeVariable(simple string) bool {
	for _, vars := range r.typeVars {
		if slices.Contains(vars, simple) {
			return true
		}
	}

	return false
}

// Ref returns the spelling of a reference. Generic, array, wildcard and varargs
// syntax is kept; every type name inside is resolved on its own.
func (r *Resolver) Ref(reference string) string {
	ref, err := jgen.ParseReference(reference)
	if err != nil {
		r.logger.Warn("emitting malformed reference verbatim",
			zap.String("reference", reference), zap.Error(err))

		return reference
	}

	return ref.Format(r.resolveName)
}

// RefStatic returns the spelling of a static member reference "a.b.C.member". Inside
// a type body declaring a field or method of the same name the member keeps its
// owner.
func (r *Resolver) RefStatic(member string) string {
	owner, simple := jgen.Qualifier(member), jgen.SimpleName(member)
	if owner == "" {
		return member
	}

	if r.memberInScope(simple) {
		return r.Ref(owner) + "." + simple
	}

	if d, ok := r.staticDecisions[member]; ok {
		return d
	}

	var spelling string

	switch bound, ok := r.staticImports[simple]; {
	case ok && bound == member:
		spelling = simple
	case ok:
		spelling = r.Ref(owner) + "." + simple
	default:
		r.staticImports[simple] = member
		if !slices.Contains(r.staticWildcards, owner) {
			r.staticList[member] = true
		}

		spelling = simple
	}

	r.staticDecisions[member] = spelling

	return spelling
}

func (r *Resolver) resolveName(name string) string {
	if !strings.Contains(name, ".") {
		return name
	}

	simple := jgen.SimpleName(name)
	if r.typeVariable(simple) {
		return name
	}

	if name == r.mainType {
		return simple
	}

	if scope := r.currentScope(); scope != globalScope {
		if d, ok := r.decisions[scope][name]; ok {
			return d
		}

		if spelling, ok := r.resolveInScope(name); ok {
			r.decide(scope, name, spelling)

			return spelling
		}
	}

	if d, ok := r.decisions[globalScope][name]; ok {
		return d
	}

	spelling := r.resolveGlobal(name)
	r.decide(globalScope, name, spelling)

	return spelling
}

// resolveInScope applies member-type visibility of the enclosing type bodies,
// innermost first. It reports false when no visible member shares the simple name.
func (r *Resolver) resolveInScope(name string) (string, bool) {
	simple := jgen.SimpleName(name)

	for i := len(r.scope) - 1; i >= 0; i-- {
		fqns := r.level(r.scope[i])[simple]
		if len(fqns) == 0 {
			continue
		}

		if !slices.Contains(fqns, name) {
			if r.visibleOuter(name, i) {
				return r.resolveName(jgen.Qualifier(name)) + "." + simple, true
			}

			return name, true
		}

		if len(fqns) == 1 {
			return simple, true
		}

		return r.resolveName(jgen.Qualifier(name)) + "." + simple, true
	}

	return "", false
}

// visibleOuter reports whether name is a member of a scope outside level i.
func (r *Resolver) visibleOuter(name string, i int) bool {
	simple := jgen.SimpleName(name)

	for j := i - 1; j >= 0; j-- {
		if slices.Contains(r.level(r.scope[j])[simple], name) {
			return true
		}
	}

	return false
}

func (r *Resolver) resolveGlobal(name string) string {
	simple := jgen.SimpleName(name)

	if _, ok := r.declared[name]; ok {
		if r.topLevel[name] {
			return simple
		}

		return r.resolveName(jgen.Qualifier(name)) + "." + simple
	}

	if r.reserved[simple] {
		return name
	}

	if bound, ok := r.imports[simple]; ok {
		if bound == name {
			return simple
		}

		return name
	}

	pkg, topLevel := r.packageOf(name)
	samePackage := topLevel && pkg == r.pkg

	if bound, ok := r.implicit[simple]; ok {
		switch {
		case bound.fqn == name:
			return simple
		case samePackage && bound.onDemand && r.displace(simple, name):
			return simple
		default:
			return name
		}
	}

	if r.state == Emitting {
		r.logger.Debug("reference first seen while emitting", zap.String("reference", name))
	}

	if samePackage {
		r.implicit[simple] = binding{fqn: name}

		return simple
	}

	if topLevel && (pkg == langPackage || slices.Contains(r.wildcards, pkg)) {
		if r.packageDeclares(simple) {
			return name
		}

		r.implicit[simple] = binding{fqn: name, onDemand: true}

		return simple
	}

	r.imports[simple] = name
	r.importList[name] = true

	return simple
}

// displace gives simple to a type of the unit's package, which shadows the java.lang
// or wildcard type holding it. Spellings decided so far are dropped so that the
// displaced type is qualified from now on. Once collecting has ended the decisions
// are final and the newcomer stays qualified.
func (r *Resolver) displace(simple, name string) bool {
	if r.state != Collecting {
		r.logger.Warn("type of the unit's package requested after collecting; keeping it qualified",
			zap.String("reference", name), zap.String("shadowed", r.implicit[simple].fqn))

		return false
	}

	r.implicit[simple] = binding{fqn: name}
	r.decisions = make(map[string]map[string]string)
	r.staticDecisions = make(map[string]string)

	return true
}

// packageDeclares reports whether the environment knows a type simple in the unit's
// package.
func (r *Resolver) packageDeclares(simple string) bool {
	if r.env == nil {
		return false
	}

	fqn := simple
	if r.pkg != "" {
		fqn = r.pkg + "." + simple
	}

	_, ok := r.env.Type(fqn)

	return ok
}

// memberInScope reports whether a field or method named simple is declared by an
// enclosing type body or by one of its supertypes declared in the unit.
func (r *Resolver) memberInScope(simple string) bool {
	visited := make(map[string]bool)

	for i := len(r.scope) - 1; i >= 0; i-- {
		queue := []string{r.scope[i]}

		for len(queue) > 0 {
			t := queue[0]
			queue = queue[1:]

			if visited[t] {
				continue
			}

			visited[t] = true

			d, ok := r.declared[t]
			if !ok {
				continue
			}

			if slices.Contains(d.Fields, simple) || slices.Contains(d.Methods, simple) {
				return true
			}

			queue = append(queue, d.Supertypes...)
		}
	}

	return false
}

func (r *Resolver) decide(scope, name, spelling string) {
	m, ok := r.decisions[scope]
	if !ok {
		m = make(map[string]string)
		r.decisions[scope] = m
	}

	m[name] = spelling
}

func (r *Resolver) currentScope() string {
	if len(r.scope) == 0 {
		return globalScope
	}

	return r.scope[len(r.scope)-1]
}

// level returns the simple names visible inside the body of scope: the type itself,
// its member types and the member types of all its supertypes except the root type.
func (r *Resolver) level(scope string) map[string][]string {
	if l, ok := r.levels[scope]; ok {
		return l
	}

	l := make(map[string][]string)
	add := func(fqn string) {
		simple := jgen.SimpleName(fqn)
		if !slices.Contains(l[simple], fqn) {
			l[simple] = append(l[simple], fqn)
		}
	}

	add(scope)

	visited := make(map[string]bool)
	queue := []string{scope}

	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]

		if visited[t] || t == jgen.ObjectType {
			continue
		}

		visited[t] = true

		members, supers := r.describe(t)
		for _, m := range members {
			add(m)
		}

		queue = append(queue, supers...)
	}

	r.levels[scope] = l

	return l
}

// describe returns the member types and direct supertypes of t, preferring the unit's
// own declarations over the environment.
func (r *Resolver) describe(t string) ([]string, []string) {
	if d, ok := r.declared[t]; ok {
		members := make([]string, 0, len(d.Members))
		for _, m := range d.Members {
			members = append(members, m.Name)
		}

		return members, d.Supertypes
	}

	if r.env != nil {
		if info, ok := r.env.Type(t); ok {
			return info.MemberTypes, info.Supertypes
		}
	}

	return nil, nil
}

// packageOf returns the package of a qualified name and whether the name denotes a
// top-level type. Without environment knowledge, leading lower-case segments are
// taken to be the package.
func (r *Resolver) packageOf(name string) (string, bool) {
	if r.env != nil {
		if info, ok := r.env.Type(name); ok && info.Package != "" {
			return info.Package, info.Package == jgen.Qualifier(name)
		}
	}

	parts := strings.Split(name, ".")

	i := 0
	for i < len(parts)-1 && startsLower(parts[i]) {
		i++
	}

	return strings.Join(parts[:i], "."), i == len(parts)-1
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}

	return false
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
