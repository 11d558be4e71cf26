// Package lua exposes terms to gopher-lua scripts.
//
// Terms map onto Lua values as follows:
//
//	nil            nil
//	true/false     boolean
//	number         number
//	string         string
//	proper list    { list = { ... }, n = <length> }
//	dotted pair    { head = ..., tail = ... }
//
// Lists carry their length in n because nil elements leave holes in the
// list table.
package lua

import (
	"math"

	"github.com/alttpo/glterm"
	"github.com/pkg/errors"
	"github.com/yuin/gopher-lua"
)

// ModuleName is the name under which Preload registers the module.
const ModuleName = "glterm"

func ToLua(L *lua.LState, t *glterm.Term) lua.LValue {
	if t == nil {
		return lua.LNil
	}

	switch t.Kind {
	case glterm.KindEmpty, glterm.KindNil:
		return lua.LNil
	case glterm.KindBoolean:
		return lua.LBool(t.Boolean)
	case glterm.KindNumber:
		return lua.LNumber(t.Number)
	case glterm.KindString:
		return lua.LString(t.Text)
	case glterm.KindCons:
		if !t.IsList() {
			tb := L.NewTable()
			tb.RawSetString("head", ToLua(L, t.Head))
			tb.RawSetString("tail", ToLua(L, t.Tail))
			return tb
		}

		items, _ := t.Slice()
		return listTable(L, items)
	}

	return lua.LNil
}

func listTable(L *lua.LState, items []*glterm.Term) *lua.LTable {
	list := L.CreateTable(len(items), 0)
	for i, item := range items {
		list.RawSetInt(i+1, ToLua(L, item))
	}
	tb := L.CreateTable(0, 2)
	tb.RawSetString("list", list)
	tb.RawSetString("n", lua.LNumber(len(items)))
	return tb
}

func FromLua(v lua.LValue) (*glterm.Term, error) {
	switch v.Type() {
	case lua.LTNil:
		return glterm.Nil(), nil
	case lua.LTBool:
		return glterm.Boolean(lua.LVAsBool(v)), nil
	case lua.LTNumber:
		f := float64(v.(lua.LNumber))
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, errors.Errorf("number %v is not an integer", f)
		}
		return glterm.Number(int64(f)), nil
	case lua.LTString:
		return glterm.String(string(v.(lua.LString))), nil
	case lua.LTTable:
		return fromTable(v.(*lua.LTable))
	}

	return nil, errors.Errorf("unsupported lua type %s", v.Type())
}

func fromTable(tb *lua.LTable) (*glterm.Term, error) {
	if list, ok := tb.RawGetString("list").(*lua.LTable); ok {
		n, err := listLen(tb, list)
		if err != nil {
			return nil, err
		}

		var items []*glterm.Term
		for i := 1; i <= n; i++ {
			item, err := FromLua(list.RawGetInt(i))
			if err != nil {
				return nil, errors.Wrapf(err, "list item %d", i)
			}
			items = append(items, item)
		}
		return glterm.List(items...), nil
	}

	head := tb.RawGetString("head")
	if head == lua.LNil {
		return nil, errors.New("table is neither a list nor a pair")
	}
	h, err := FromLua(head)
	if err != nil {
		return nil, errors.Wrap(err, "head")
	}
	t, err := FromLua(tb.RawGetString("tail"))
	if err != nil {
		return nil, errors.Wrap(err, "tail")
	}
	return glterm.Cons(h, t), nil
}

// MaxListLength bounds the n field of a list table handed to FromLua.
var MaxListLength = 1 << 20

// listLen returns the length recorded in n, or the border of list when n is
// absent. n may run past the border because nil elements are holes.
func listLen(tb, list *lua.LTable) (int, error) {
	v := tb.RawGetString("n")
	if v == lua.LNil {
		return list.Len(), nil
	}
	ln, ok := v.(lua.LNumber)
	if !ok {
		return 0, errors.Errorf("list length n is a %s, not a number", v.Type())
	}

	f := float64(ln)
	if f != math.Trunc(f) || f < 0 || f > float64(MaxListLength) {
		return 0, errors.Errorf("invalid list length n = %v", f)
	}
	return int(f), nil
}

type bridge struct {
	g *glterm.Grammar
}

func (b bridge) exports() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"parse":     b.parse,
		"parse_all": b.parseAll,
		"format":    b.format,
	}
}

// Register installs the term_parse, term_parse_all and term_format globals.
func Register(L *lua.LState, g *glterm.Grammar) {
	for name, fn := range (bridge{g: g}).exports() {
		L.SetGlobal("term_"+name, L.NewFunction(fn))
	}
}

// Preload makes the bridge available to scripts through require "glterm".
func Preload(L *lua.LState, g *glterm.Grammar) {
	b := bridge{g: g}
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(L.SetFuncs(L.NewTable(), b.exports()))
		return 1
	})
}

func errorTable(L *lua.LState, err error) *lua.LTable {
	tb := L.NewTable()
	tb.RawSetString("err", lua.LString(err.Error()))

	var pe *glterm.ParseError
	if errors.As(err, &pe) {
		tb.RawSetString("kind", lua.LString(pe.Kind.String()))
	}
	return tb
}

// parse(s) returns value, rest, err.
func (b bridge) parse(L *lua.LState) int {
	s := L.CheckString(1)

	pp, err := b.g.ParsePrefix(s)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(s))
		L.Push(errorTable(L, err))
		return 3
	}

	L.Push(ToLua(L, pp.Term))
	L.Push(lua.LString(pp.Rest))
	L.Push(lua.LNil)
	return 3
}

// parse_all(s) returns { list = ..., n = ... }, err.
func (b bridge) parseAll(L *lua.LState) int {
	s := L.CheckString(1)

	terms, err := b.g.ParseAll(s)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 2
	}

	L.Push(listTable(L, terms))
	L.Push(lua.LNil)
	return 2
}

// format(v) returns the canonical text of v, err.
func (b bridge) format(L *lua.LState) int {
	t, err := FromLua(L.CheckAny(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(errorTable(L, err))
		return 2
	}

	L.Push(lua.LString(t.String()))
	L.Push(lua.LNil)
	return 2
}
