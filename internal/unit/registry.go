package unit

import (
	"fmt"

	"github.com/google/uuid"
)

// Catalog is an ordered, immutable name -> unit mapping: the namespace
// used for name resolution and as the default composition candidate set.
// Catalogs are snapshots; mutation happens only by pushing a new registry
// level.
type Catalog struct {
	units  []Unit
	byName map[string]Unit
}

// NewCatalog builds a catalog from the given units, registering every
// name each unit carries. A name already bound to a different unit is a
// conflict, never a silent overwrite.
func NewCatalog(units ...Unit) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]Unit)}
	for _, u := range units {
		if err := c.add(u); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(u Unit) error {
	if u == nil {
		return fmt.Errorf("%w: nil unit", ErrInvalidConstruction)
	}
	names := u.Names()
	if len(names) == 0 {
		return fmt.Errorf("%w: unit has no names to register", ErrInvalidConstruction)
	}
	for _, name := range names {
		if existing, ok := c.byName[name]; ok {
			if existing == u {
				return nil // re-registering the same instance keeps its identity
			}
			return fmt.Errorf("%w: %q", ErrNameConflict, name)
		}
	}
	c.units = append(c.units, u)
	for _, name := range names {
		c.byName[name] = u
	}
	return nil
}

func (c *Catalog) clone() *Catalog {
	out := &Catalog{
		units:  append([]Unit(nil), c.units...),
		byName: make(map[string]Unit, len(c.byName)),
	}
	for k, v := range c.byName {
		out.byName[k] = v
	}
	return out
}

// Lookup resolves a registered name.
func (c *Catalog) Lookup(name string) (Unit, bool) {
	u, ok := c.byName[name]
	return u, ok
}

// Has reports whether a name is registered.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Len returns the number of registered units (not names).
func (c *Catalog) Len() int { return len(c.units) }

// AllUnits returns every registered unit in registration order, prefix
// forms included.
func (c *Catalog) AllUnits() []Unit {
	return append([]Unit(nil), c.units...)
}

// NonPrefixUnits returns registered units excluding prefixed forms. This
// is the default candidate view for composition and equivalent-unit
// searches, where kilo- and milli- variants would only add noise.
func (c *Catalog) NonPrefixUnits() []Unit {
	out := make([]Unit, 0, len(c.units))
	for _, u := range c.units {
		if n, ok := u.(*Named); ok && n.prefix {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Names returns all registered names in registration order (a unit's
// aliases appear contiguously).
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.byName))
	for _, u := range c.units {
		out = append(out, u.Names()...)
	}
	return out
}

// Context is an explicit stack of catalogs: the registry. Enabling units
// pushes a level; exiting the returned scope pops it, restoring the prior
// catalog exactly. The stack belongs to a single logical execution
// context; units themselves are immutable and safe to share.
type Context struct {
	stack []registryLevel
}

type registryLevel struct {
	catalog *Catalog
	token   uuid.UUID
}

// NewContext creates a registry whose base level holds the given units.
func NewContext(units ...Unit) (*Context, error) {
	base, err := NewCatalog(units...)
	if err != nil {
		return nil, err
	}
	return &Context{stack: []registryLevel{{catalog: base, token: uuid.New()}}}, nil
}

// Current returns the active catalog snapshot.
func (c *Context) Current() *Catalog {
	return c.stack[len(c.stack)-1].catalog
}

// Depth returns the number of registry levels, the base level included.
func (c *Context) Depth() int { return len(c.stack) }

// Enable pushes a registry level containing the current entries plus the
// given units and returns a scope whose Exit restores the prior level.
// Re-enabling an already-registered unit yields back the same identity.
// Exit is safe to defer: it is idempotent and detects out-of-order exits.
func (c *Context) Enable(units ...Unit) (*Scope, error) {
	next := c.Current().clone()
	for _, u := range units {
		if err := next.add(u); err != nil {
			return nil, err
		}
	}
	token := uuid.New()
	c.stack = append(c.stack, registryLevel{catalog: next, token: token})
	return &Scope{ctx: c, token: token}, nil
}

// Scope represents one pushed registry level.
type Scope struct {
	ctx    *Context
	token  uuid.UUID
	exited bool
}

// Exit pops this scope's level. Calling Exit more than once is a no-op;
// exiting while an inner scope is still active is an error and leaves the
// stack untouched.
func (s *Scope) Exit() error {
	if s.exited {
		return nil
	}
	top := s.ctx.stack[len(s.ctx.stack)-1]
	if top.token != s.token {
		return fmt.Errorf("%w: scope exited out of order", ErrScopeExited)
	}
	s.ctx.stack = s.ctx.stack[:len(s.ctx.stack)-1]
	s.exited = true
	return nil
}
