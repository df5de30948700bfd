// Package parse resolves unit expressions like "100 km/s" or "kg m^2 s^-2"
// into unit values. The engine itself only consumes (name, power) pairs
// plus a scale; this layer supplies the textual front end the CLI and REPL
// need: factor products and quotients, ^ and ** powers with integer,
// fractional, and parenthesized rational exponents, prefix splitting
// against the active catalog, and a selectable policy for unknown names.
package parse

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tbuckley/quanta/internal/catalog"
	"github.com/tbuckley/quanta/internal/unit"
)

var ErrSyntax = errors.New("malformed unit expression")

// Policy selects what happens when a name resolves to nothing.
type Policy int

const (
	// Strict fails the parse with an unknown-name error.
	Strict Policy = iota
	// Warn emits a warning and substitutes an Unrecognized unit.
	Warn
	// Silent substitutes an Unrecognized unit without comment.
	Silent
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Warn:
		return "warn"
	case Silent:
		return "silent"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a config string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "":
		return Strict, nil
	case "warn":
		return Warn, nil
	case "silent":
		return Silent, nil
	}
	return Strict, fmt.Errorf("%w: unknown parse policy %q", ErrSyntax, s)
}

// Catalog is the name index a resolver consults. *unit.Catalog satisfies it.
type Catalog interface {
	Lookup(name string) (unit.Unit, bool)
	Names() []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy sets the unknown-name policy. The default is Strict.
func WithPolicy(p Policy) Option {
	return func(r *Resolver) { r.policy = p }
}

// WithWarnFunc routes Warn-policy messages. The default drops them.
func WithWarnFunc(f func(msg string)) Option {
	return func(r *Resolver) { r.warn = f }
}

// Resolver parses unit expressions against one catalog view. Prefixed
// units it synthesizes (a known prefix in front of a known name that has
// no registered prefixed form) are cached so repeated parses yield the
// same identity.
type Resolver struct {
	cat       Catalog
	policy    Policy
	warn      func(string)
	synthetic map[string]*unit.Named
}

func New(cat Catalog, opts ...Option) *Resolver {
	r := &Resolver{cat: cat, policy: Strict, synthetic: make(map[string]*unit.Named)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Parse evaluates a unit expression.
func (r *Resolver) Parse(input string) (unit.Unit, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, r: r}
	u, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.peek().text)
	}
	return u, nil
}

// Resolve looks up a single name, applying prefix splitting and the
// unknown-name policy.
func (r *Resolver) Resolve(name string) (unit.Unit, error) {
	if u, ok := r.cat.Lookup(name); ok {
		return u, nil
	}
	if u, ok := r.synthetic[name]; ok {
		return u, nil
	}
	if u, ok := r.splitPrefix(name); ok {
		r.synthetic[name] = u
		return u, nil
	}

	msg := fmt.Sprintf("unknown unit %q", name)
	if s := r.Suggest(name); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}
	switch r.policy {
	case Warn:
		if r.warn != nil {
			r.warn(msg)
		}
		fallthrough
	case Silent:
		return unit.NewUnrecognized(name), nil
	default:
		return nil, fmt.Errorf("%w: %s", unit.ErrUnknownUnit, msg)
	}
}

// splitPrefix tries every known prefix symbol, longest first, against a
// registered base name.
func (r *Resolver) splitPrefix(name string) (*unit.Named, bool) {
	prefixes := append(append([]catalog.Prefix(nil), catalog.SIPrefixes...), catalog.BinaryPrefixes...)
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i].Symbol) > len(prefixes[j].Symbol)
	})
	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(name, p.Symbol)
		if !ok || rest == "" {
			continue
		}
		base, ok := r.cat.Lookup(rest)
		if !ok {
			continue
		}
		switch base.(type) {
		case *unit.Irreducible, *unit.Named:
		default:
			continue
		}
		rep, err := unit.Scaled(complex(p.Factor, 0), base)
		if err != nil {
			continue
		}
		u, err := unit.NewPrefixUnit([]string{name}, rep)
		if err != nil {
			continue
		}
		return u, true
	}
	return nil, false
}

// Suggest returns registered names that differ from the query only by
// case or by a single edit.
func (r *Resolver) Suggest(name string) []string {
	var out []string
	lower := strings.ToLower(name)
	for _, n := range r.cat.Names() {
		if strings.ToLower(n) == lower || editDistanceOne(name, n) {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

func editDistanceOne(a, b string) bool {
	la, lb := len(a), len(b)
	if la == lb {
		diff := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diff++
			}
		}
		return diff == 1
	}
	if la > lb {
		a, b = b, a
		la, lb = lb, la
	}
	if lb-la != 1 {
		return false
	}
	for i := 0; i < la; i++ {
		if a[i] != b[i] {
			return a[i:] == b[i+1:]
		}
	}
	return true
}

type tokKind int

const (
	tokName tokKind = iota
	tokNumber
	tokMul
	tokDiv
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
}

func scan(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '*':
			if i+1 < len(input) && input[i+1] == '*' {
				toks = append(toks, token{tokPow, "**"})
				i += 2
			} else {
				toks = append(toks, token{tokMul, "*"})
				i++
			}
		case c == '/':
			toks = append(toks, token{tokDiv, "/"})
			i++
		case c == '^':
			toks = append(toks, token{tokPow, "^"})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case isNumStart(c):
			j := i + 1
			for j < len(input) && isNumPart(input, j) {
				j++
			}
			toks = append(toks, token{tokNumber, input[i:j]})
			i = j
		case isNameStart(c):
			j := i + 1
			for j < len(input) && isNamePart(input[j]) {
				j++
			}
			toks = append(toks, token{tokName, input[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("%w: stray %q", ErrSyntax, string(c))
		}
	}
	return toks, nil
}

func isNumStart(c byte) bool { return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' }

func isNumPart(s string, j int) bool {
	c := s[j]
	if c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' {
		return true
	}
	// Signs continue a number only directly after an exponent marker.
	if (c == '-' || c == '+') && (s[j-1] == 'e' || s[j-1] == 'E') {
		return true
	}
	return false
}

func isNameStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '%'
}

func isNamePart(c byte) bool {
	return isNameStart(c) || c >= '0' && c <= '9'
}

type parser struct {
	toks []token
	pos  int
	r    *Resolver
}

func (p *parser) eof() bool    { return p.pos >= len(p.toks) }
func (p *parser) peek() token  { return p.toks[p.pos] }
func (p *parser) next() token  { t := p.toks[p.pos]; p.pos++; return t }
func (p *parser) accept(k tokKind) bool {
	if !p.eof() && p.toks[p.pos].kind == k {
		p.pos++
		return true
	}
	return false
}

// expr := factor { ('*' | '/' | juxtaposition) factor }
func (p *parser) expr() (unit.Unit, error) {
	if p.eof() {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	result, err := p.factor()
	if err != nil {
		return nil, err
	}
	for !p.eof() {
		switch p.peek().kind {
		case tokMul:
			p.next()
		case tokDiv:
			p.next()
			rhs, err := p.factor()
			if err != nil {
				return nil, err
			}
			result, err = unit.Div(result, rhs)
			if err != nil {
				return nil, err
			}
			continue
		case tokName, tokNumber:
			// juxtaposition: "kg m" multiplies
		default:
			return result, nil
		}
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		result, err = unit.Mul(result, rhs)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// factor := (NUMBER | NAME) [ ('^' | '**') exponent ]
func (p *parser) factor() (unit.Unit, error) {
	if p.eof() {
		return nil, fmt.Errorf("%w: expected unit or number", ErrSyntax)
	}
	t := p.next()

	var base unit.Unit
	switch t.kind {
	case tokName:
		u, err := p.r.Resolve(t.text)
		if err != nil {
			return nil, err
		}
		base = u
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, t.text)
		}
		u, err := unit.Scaled(complex(f, 0), unit.One)
		if err != nil {
			return nil, err
		}
		base = u
	default:
		return nil, fmt.Errorf("%w: unexpected %q", ErrSyntax, t.text)
	}

	if p.eof() || p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.exponent()
	if err != nil {
		return nil, err
	}
	return unit.PowExp(base, exp)
}

// exponent := NUMBER | '(' NUMBER [ '/' NUMBER ] ')'
func (p *parser) exponent() (unit.Exponent, error) {
	if p.accept(tokLParen) {
		num, err := p.number()
		if err != nil {
			return unit.Exponent{}, err
		}
		if p.accept(tokDiv) {
			den, err := p.number()
			if err != nil {
				return unit.Exponent{}, err
			}
			if !p.accept(tokRParen) {
				return unit.Exponent{}, fmt.Errorf("%w: missing )", ErrSyntax)
			}
			return rationalExponent(num, den)
		}
		if !p.accept(tokRParen) {
			return unit.Exponent{}, fmt.Errorf("%w: missing )", ErrSyntax)
		}
		return floatExponent(num)
	}
	num, err := p.number()
	if err != nil {
		return unit.Exponent{}, err
	}
	return floatExponent(num)
}

func (p *parser) number() (string, error) {
	if p.eof() || p.peek().kind != tokNumber {
		return "", fmt.Errorf("%w: expected exponent", ErrSyntax)
	}
	return p.next().text, nil
}

func rationalExponent(num, den string) (unit.Exponent, error) {
	n, errN := strconv.ParseInt(num, 10, 64)
	d, errD := strconv.ParseInt(den, 10, 64)
	if errN == nil && errD == nil && d != 0 {
		return unit.NewRational(n, d)
	}
	fn, errN := strconv.ParseFloat(num, 64)
	fd, errD := strconv.ParseFloat(den, 64)
	if errN != nil || errD != nil || fd == 0 {
		return unit.Exponent{}, fmt.Errorf("%w: bad exponent %s/%s", ErrSyntax, num, den)
	}
	return unit.Normalize(fn / fd), nil
}

func floatExponent(num string) (unit.Exponent, error) {
	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		return unit.NewInt(n), nil
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return unit.Exponent{}, fmt.Errorf("%w: bad exponent %q", ErrSyntax, num)
	}
	return unit.Normalize(f), nil
}
