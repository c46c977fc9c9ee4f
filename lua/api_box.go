package lua

import (
	"github.com/drake/dwbox/box"
	"github.com/drake/dwbox/percent"
	glua "github.com/yuin/gopher-lua"
)

const (
	boxTypeName     = "dw.box"
	percentTypeName = "dw.percent"
	widgetTypeName  = "dw.widget"
)

// registerAPIs builds the dw table.
func (e *Engine) registerAPIs() {
	e.dwTable = e.L.NewTable()
	e.L.SetGlobal("dw", e.dwTable)

	e.L.SetField(e.dwTable, "auto", glua.LNumber(box.Auto))
	e.L.SetField(e.dwTable, "horizontal", glua.LString("horizontal"))
	e.L.SetField(e.dwTable, "vertical", glua.LString("vertical"))

	// dw.hbox([pad]) / dw.vbox([pad])
	e.L.SetField(e.dwTable, "hbox", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(newBox(L, box.NewHBox(L.OptInt(1, 0))))
		return 1
	}))
	e.L.SetField(e.dwTable, "vbox", e.L.NewFunction(func(L *glua.LState) int {
		L.Push(newBox(L, box.NewVBox(L.OptInt(1, 0))))
		return 1
	}))

	// dw.label(name[, text]) / dw.button(name[, text])
	e.L.SetField(e.dwTable, "label", e.widgetFunc("label"))
	e.L.SetField(e.dwTable, "button", e.widgetFunc("button"))

	// dw.percent(name, range): percent bar usable as a packable widget
	e.L.SetField(e.dwTable, "percent", e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		if _, dup := e.widgets[name]; dup {
			L.ArgError(1, "duplicate widget "+name)
			return 0
		}
		rng := L.OptInt(2, 100)
		if rng < 0 {
			L.ArgError(2, "negative range")
			return 0
		}
		c := percent.NewControl(name, rng)
		e.widgets[name] = c
		L.Push(newPercent(L, c))
		return 1
	}))

	// dw.root(box): select the tree to lay out
	e.L.SetField(e.dwTable, "root", e.L.NewFunction(func(L *glua.LState) int {
		e.root = checkBox(L, 1)
		return 0
	}))

	// dw.size(width, height): initial window size
	e.L.SetField(e.dwTable, "size", e.L.NewFunction(func(L *glua.LState) int {
		w, h := L.CheckInt(1), L.CheckInt(2)
		if w < 0 || h < 0 {
			L.RaiseError("negative size %dx%d", w, h)
			return 0
		}
		e.width, e.height = w, h
		return 0
	}))

	// dw.print(...)
	e.L.SetField(e.dwTable, "print", e.L.NewFunction(func(L *glua.LState) int {
		top := L.GetTop()
		var s string
		for i := 1; i <= top; i++ {
			if i > 1 {
				s += "\t"
			}
			s += L.ToStringMeta(L.Get(i)).String()
		}
		e.host.Print(s)
		return 0
	}))
}

func (e *Engine) widgetFunc(kind string) *glua.LFunction {
	return e.L.NewFunction(func(L *glua.LState) int {
		name := L.CheckString(1)
		text := L.OptString(2, name)
		if _, dup := e.widgets[name]; dup {
			L.ArgError(1, "duplicate widget "+name)
			return 0
		}
		w := e.host.NewWidget(kind, name, text)
		if w == nil {
			L.RaiseError("no %s created for %q", kind, name)
			return 0
		}
		e.widgets[name] = w
		ud := L.NewUserData()
		ud.Value = w
		L.SetMetatable(ud, L.GetTypeMetatable(widgetTypeName))
		L.Push(ud)
		return 1
	})
}

// --- Box userdata ---

func registerBoxType(L *glua.LState) {
	mt := L.NewTypeMetatable(boxTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), boxMethods))
	L.SetField(mt, "__len", L.NewFunction(boxLen))

	wmt := L.NewTypeMetatable(widgetTypeName)
	L.SetField(wmt, "__index", L.SetFuncs(L.NewTable(), map[string]glua.LGFunction{
		"name": func(L *glua.LState) int {
			w, ok := L.CheckUserData(1).Value.(box.Widget)
			if !ok {
				L.ArgError(1, "widget expected")
				return 0
			}
			L.Push(glua.LString(w.Name()))
			return 1
		},
	}))
}

var boxMethods = map[string]glua.LGFunction{
	"pack_start":  boxPackStart,
	"pack_end":    boxPackEnd,
	"pack_at":     boxPackAt,
	"unpack":      boxUnpack,
	"len":         boxLen,
	"orientation": boxOrientation,
	"pad":         boxPad,
	"destroy":     boxDestroy,
}

func newBox(L *glua.LState, b *box.Box) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = b
	L.SetMetatable(ud, L.GetTypeMetatable(boxTypeName))
	return ud
}

func checkBox(L *glua.LState, n int) *box.Box {
	ud := L.CheckUserData(n)
	if b, ok := ud.Value.(*box.Box); ok {
		return b
	}
	L.ArgError(n, "box expected")
	return nil
}

// checkChild accepts a box, a widget or a percent bar.
func checkChild(L *glua.LState, n int) any {
	ud := L.CheckUserData(n)
	switch v := ud.Value.(type) {
	case *box.Box:
		return v
	case box.Widget:
		return v
	}
	L.ArgError(n, "box or widget expected")
	return nil
}

// checkHints reads width, height, hexpand, vexpand, pad starting at n.
// A nil width or height means dw.auto.
func checkHints(L *glua.LState, n int) box.Hints {
	h := box.Hints{
		Width:  L.OptInt(n, box.Auto),
		Height: L.OptInt(n+1, box.Auto),
		Pad:    L.OptInt(n+4, 0),
	}
	if L.OptBool(n+2, false) {
		h.HSize = box.Expand
	}
	if L.OptBool(n+3, false) {
		h.VSize = box.Expand
	}
	return h
}

// box:pack_start(child[, width, height, hexpand, vexpand, pad])
func boxPackStart(L *glua.LState) int {
	b := checkBox(L, 1)
	if err := b.PackStart(checkChild(L, 2), checkHints(L, 3)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// box:pack_end(child[, width, height, hexpand, vexpand, pad])
func boxPackEnd(L *glua.LState) int {
	b := checkBox(L, 1)
	if err := b.PackEnd(checkChild(L, 2), checkHints(L, 3)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// box:pack_at(index, child[, width, height, hexpand, vexpand, pad])
// Indexes are 1-based.
func boxPackAt(L *glua.LState) int {
	b := checkBox(L, 1)
	index := L.CheckInt(2) - 1
	if err := b.PackAt(index, checkChild(L, 3), checkHints(L, 4)); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// box:unpack(index) returns the removed child. Indexes are 1-based.
func boxUnpack(L *glua.LState) int {
	b := checkBox(L, 1)
	child, err := b.Unpack(L.CheckInt(2) - 1)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	switch v := child.(type) {
	case *box.Box:
		L.Push(newBox(L, v))
	case *percent.Control:
		L.Push(newPercent(L, v))
	default:
		ud := L.NewUserData()
		ud.Value = v
		L.SetMetatable(ud, L.GetTypeMetatable(widgetTypeName))
		L.Push(ud)
	}
	return 1
}

func boxLen(L *glua.LState) int {
	L.Push(glua.LNumber(checkBox(L, 1).Len()))
	return 1
}

func boxOrientation(L *glua.LState) int {
	L.Push(glua.LString(checkBox(L, 1).Orientation().String()))
	return 1
}

func boxPad(L *glua.LState) int {
	L.Push(glua.LNumber(checkBox(L, 1).Pad()))
	return 1
}

func boxDestroy(L *glua.LState) int {
	checkBox(L, 1).Destroy()
	return 0
}
