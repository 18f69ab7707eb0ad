// Package script runs the Lua scripts attached to dice objects.
//
// Each run gets a fresh Lua state with the standard libraries and a global
// node table bound to the object being scripted:
//
//	node.id(), node.name(), node.type()
//	node.get(key [, default]), node.set(key, value), node.has(key)
//	node.addTag(tag), node.removeTag(tag), node.hasTag(tag)
//	node.position(), node.setPosition(x, y)
//	node.flip(), node.faceUp(), node.setFaceUp(b)   -- cards only
//
// Scripts are trusted; no sandboxing is applied.
package script

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/Shopify/go-lua"
	"github.com/phanxgames/dice"
	"go.uber.org/zap"
)

// Runtime executes object scripts.
type Runtime struct {
	// Dir is prepended to relative LuaScript paths.
	Dir string
}

// New creates a runtime resolving scripts against dir.
func New(dir string) *Runtime {
	return &Runtime{Dir: dir}
}

// Run executes the script named by n's LuaScript field. Objects without a
// script are skipped.
func (r *Runtime) Run(n dice.Node) error {
	o := n.Base()
	if o.LuaScript == "" {
		return nil
	}
	path := o.LuaScript
	if r.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}
	l := newState(n)
	if err := lua.DoFile(l, path); err != nil {
		return fmt.Errorf("script: run %q for %q: %w", path, o.ID, err)
	}
	dice.Logger().Debug("ran script", zap.String("object", o.ID), zap.String("script", path))
	return nil
}

// RunString executes src with n bound as the node global.
func (r *Runtime) RunString(n dice.Node, src string) error {
	l := newState(n)
	if err := lua.DoString(l, src); err != nil {
		return fmt.Errorf("script: run for %q: %w", n.Base().ID, err)
	}
	return nil
}

// RunTree runs the script of every node in n's subtree, parent first, and
// stops at the first error.
func (r *Runtime) RunTree(n dice.Node) error {
	var err error
	dice.Walk(n, func(c dice.Node) bool {
		if err != nil {
			return false
		}
		err = r.Run(c)
		return err == nil
	})
	return err
}

func newState(n dice.Node) *lua.State {
	l := lua.NewState()
	lua.OpenLibraries(l)
	bindNode(l, n)
	return l
}

// bindNode installs the node global.
func bindNode(l *lua.State, n dice.Node) {
	o := n.Base()
	funcs := []lua.RegistryFunction{
		{Name: "id", Function: func(l *lua.State) int {
			l.PushString(o.ID)
			return 1
		}},
		{Name: "name", Function: func(l *lua.State) int {
			l.PushString(o.Name)
			return 1
		}},
		{Name: "type", Function: func(l *lua.State) int {
			l.PushString(o.Type)
			return 1
		}},
		{Name: "get", Function: func(l *lua.State) int {
			key := lua.CheckString(l, 1)
			v, ok := o.RawProperty(key)
			switch {
			case ok:
				pushValue(l, v)
			case l.Top() >= 2:
				l.PushValue(2)
			default:
				l.PushNil()
			}
			return 1
		}},
		{Name: "set", Function: func(l *lua.State) int {
			key := lua.CheckString(l, 1)
			o.SetProperty(key, toValue(l, 2))
			return 0
		}},
		{Name: "has", Function: func(l *lua.State) int {
			l.PushBoolean(o.HasProperty(lua.CheckString(l, 1)))
			return 1
		}},
		{Name: "addTag", Function: func(l *lua.State) int {
			o.AddTag(lua.CheckString(l, 1))
			return 0
		}},
		{Name: "removeTag", Function: func(l *lua.State) int {
			o.RemoveTag(lua.CheckString(l, 1))
			return 0
		}},
		{Name: "hasTag", Function: func(l *lua.State) int {
			l.PushBoolean(o.HasTag(lua.CheckString(l, 1)))
			return 1
		}},
		{Name: "position", Function: func(l *lua.State) int {
			l.PushNumber(o.X)
			l.PushNumber(o.Y)
			return 2
		}},
		{Name: "setPosition", Function: func(l *lua.State) int {
			o.SetPosition(lua.CheckNumber(l, 1), lua.CheckNumber(l, 2))
			return 0
		}},
	}
	if card, ok := n.(*dice.Card); ok {
		funcs = append(funcs,
			lua.RegistryFunction{Name: "flip", Function: func(l *lua.State) int {
				card.Flip()
				return 0
			}},
			lua.RegistryFunction{Name: "faceUp", Function: func(l *lua.State) int {
				l.PushBoolean(card.FaceUp())
				return 1
			}},
			lua.RegistryFunction{Name: "setFaceUp", Function: func(l *lua.State) int {
				card.SetFaceUp(l.ToBoolean(1))
				return 0
			}},
		)
	}
	l.NewTable()
	lua.SetFunctions(l, funcs, 0)
	l.SetGlobal("node")
}

// toValue converts the Lua value at index to a property value. Integral
// numbers become int64; tables with only keys 1..n become []any and all other
// tables become map[string]any.
func toValue(l *lua.State, index int) any {
	switch l.TypeOf(index) {
	case lua.TypeBoolean:
		return l.ToBoolean(index)
	case lua.TypeNumber:
		f, _ := l.ToNumber(index)
		return numberValue(f)
	case lua.TypeString:
		s, _ := l.ToString(index)
		return s
	case lua.TypeTable:
		return tableValue(l, l.AbsIndex(index))
	default:
		return nil
	}
}

func numberValue(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int64(f)
	}
	return f
}

func tableValue(l *lua.State, index int) any {
	seq := make(map[int]any)
	obj := make(map[string]any)
	l.PushNil()
	for l.Next(index) {
		switch l.TypeOf(-2) {
		case lua.TypeNumber:
			k, _ := l.ToNumber(-2)
			if k == math.Trunc(k) && k >= 1 {
				seq[int(k)] = toValue(l, -1)
			} else {
				obj[strconv.FormatFloat(k, 'g', -1, 64)] = toValue(l, -1)
			}
		case lua.TypeString:
			k, _ := l.ToString(-2)
			obj[k] = toValue(l, -1)
		}
		l.Pop(1)
	}
	if len(obj) == 0 && len(seq) > 0 && isSequence(seq) {
		list := make([]any, len(seq))
		for k, v := range seq {
			list[k-1] = v
		}
		return list
	}
	for k, v := range seq {
		obj[strconv.Itoa(k)] = v
	}
	return obj
}

func isSequence(seq map[int]any) bool {
	for i := 1; i <= len(seq); i++ {
		if _, ok := seq[i]; !ok {
			return false
		}
	}
	return true
}

// pushValue pushes a property value onto the Lua stack.
func pushValue(l *lua.State, v any) {
	switch x := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(x)
	case int64:
		l.PushInteger(int(x))
	case float64:
		l.PushNumber(x)
	case string:
		l.PushString(x)
	case []any:
		l.CreateTable(len(x), 0)
		for i, e := range x {
			pushValue(l, e)
			l.RawSetInt(-2, i+1)
		}
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		l.CreateTable(0, len(x))
		for _, k := range keys {
			pushValue(l, x[k])
			l.SetField(-2, k)
		}
	default:
		l.PushNil()
	}
}
