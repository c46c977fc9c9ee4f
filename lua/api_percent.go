package lua

import (
	"github.com/drake/dwbox/percent"
	glua "github.com/yuin/gopher-lua"
)

func registerPercentType(L *glua.LState) {
	mt := L.NewTypeMetatable(percentTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), map[string]glua.LGFunction{
		"name": func(L *glua.LState) int {
			L.Push(glua.LString(checkPercent(L, 1).Name()))
			return 1
		},
		// bar:pos() / bar:pos(n)
		"pos": func(L *glua.LState) int {
			c := checkPercent(L, 1)
			if L.GetTop() >= 2 {
				c.SetPos(L.CheckInt(2))
				return 0
			}
			L.Push(glua.LNumber(c.Pos()))
			return 1
		},
		// bar:range() / bar:range(n)
		"range": func(L *glua.LState) int {
			c := checkPercent(L, 1)
			if L.GetTop() >= 2 {
				rng := L.CheckInt(2)
				if rng < 0 {
					L.ArgError(2, "negative range")
					return 0
				}
				c.SetRange(rng)
				return 0
			}
			L.Push(glua.LNumber(c.Range()))
			return 1
		},
		"fraction": func(L *glua.LState) int {
			L.Push(glua.LNumber(checkPercent(L, 1).Fraction()))
			return 1
		},
	}))
}

func newPercent(L *glua.LState, c *percent.Control) *glua.LUserData {
	ud := L.NewUserData()
	ud.Value = c
	L.SetMetatable(ud, L.GetTypeMetatable(percentTypeName))
	return ud
}

func checkPercent(L *glua.LState, n int) *percent.Control {
	ud := L.CheckUserData(n)
	if c, ok := ud.Value.(*percent.Control); ok {
		return c
	}
	L.ArgError(n, "percent expected")
	return nil
}
