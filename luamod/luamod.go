// Package luamod exposes ultrafast generators to gopher-lua scripts.
//
//	local uf = require("ultrafast")
//	local json = require("json")
//	local g = uf.new(8)              -- default constants
//	local h = uf.new(8, 239, 241, 251)
//	local w = uf.wide(32, 123456789) -- wide seed, default constants
//	local p = uf.profile("sensor")   -- from the attached config
//	print(g:Next(), json.encode({h:Next()}))
//
// Lua numbers are float64, so only widths up to 32 bits are offered and
// seeds and constants must stay below 2^53.
package luamod

import (
	"math"

	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
	luar "layeh.com/gopher-luar"

	"github.com/zxfonline/ultrafast/config"
	"github.com/zxfonline/ultrafast/log"
	"github.com/zxfonline/ultrafast/random"
)

const (
	ModuleName = "ultrafast"
	// MaxWidth is the widest generator whose draws a lua number holds exactly.
	MaxWidth = 32

	generatorTypeName = "ultrafast.generator"
	maxExact          = 1 << 53
)

// Generator is the script side handle of a random.Generator.
type Generator struct {
	g random.Generator
}

var generatorMethods = map[string]lua.LGFunction{
	"Next":           generatorNext,
	"Width":          generatorWidth,
	"SeedWide":       generatorSeedWide,
	"AddEntropyWide": generatorAddEntropyWide,
	"Intn":           generatorIntn,
}

//LuaLogf 打印日志文件
func LuaLogf(format string, v ...interface{}) {
	log.Infof(format, v...)
}

// NewState creates a lua state with the safe standard libs, the json module,
// the ultrafast module and a Logf global. cfg may be nil, in which case
// profile() uses the global config.
func NewState(cfg *config.Config) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true, IncludeGoStackTrace: true})
	for _, pair := range []struct {
		n string
		f lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage}, // Must be first
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(pair.f),
			NRet:    0,
			Protect: true,
		}, lua.LString(pair.n)); err != nil {
			panic(err)
		}
	}
	luajson.Preload(L)
	Preload(L, cfg)
	L.SetGlobal("Logf", luar.New(L, LuaLogf))
	return L
}

// Preload registers the ultrafast module with L.
func Preload(L *lua.LState, cfg *config.Config) {
	mt := L.NewTypeMetatable(generatorTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), generatorMethods))
	L.PreloadModule(ModuleName, func(L *lua.LState) int {
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"new":     newGenerator,
			"wide":    newWide,
			"profile": profileLoader(cfg),
		})
		L.Push(mod)
		return 1
	})
}

func pushGenerator(L *lua.LState, g random.Generator) {
	ud := L.NewUserData()
	ud.Value = &Generator{g: g}
	L.SetMetatable(ud, L.GetTypeMetatable(generatorTypeName))
	L.Push(ud)
}

func checkGenerator(L *lua.LState) *Generator {
	ud := L.CheckUserData(1)
	if h, ok := ud.Value.(*Generator); ok {
		return h
	}
	L.ArgError(1, "generator expected")
	return nil
}

// new(width[, v1, v2, v3])
func newGenerator(L *lua.LState) int {
	pushGenerator(L, build(L, 2))
	return 1
}

// wide(width, seed[, v1, v2, v3])
func newWide(L *lua.LState) int {
	seed := checkUint(L, 2)
	g := build(L, 3)
	g.SeedWide(seed)
	pushGenerator(L, g)
	return 1
}

func profileLoader(cfg *config.Config) lua.LGFunction {
	return func(L *lua.LState) int {
		name := L.CheckString(1)
		c := cfg
		if c == nil {
			c = config.Default()
		}
		if c == nil {
			L.RaiseError("profile %q: no config loaded", name)
			return 0
		}
		g, err := c.Build(name)
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		if g.Width() > MaxWidth {
			L.RaiseError("profile %q: width %d exceeds %d bits", name, g.Width(), MaxWidth)
			return 0
		}
		pushGenerator(L, g)
		return 1
	}
}

// build reads width at 1 and optional constants from first on
func build(L *lua.LState, first int) random.Generator {
	width := L.CheckInt(1)
	if width > MaxWidth {
		L.ArgError(1, "width exceeds 32 bits")
		return nil
	}
	v1, v2, v3, err := random.DefaultConstants(width)
	if err != nil {
		L.ArgError(1, err.Error())
		return nil
	}
	if L.GetTop() >= first {
		v1 = checkUint(L, first)
		v2 = checkUint(L, first+1)
		v3 = checkUint(L, first+2)
	}
	g, err := random.NewGenerator(width, v1, v2, v3)
	if err != nil {
		L.RaiseError("%v", err)
		return nil
	}
	return g
}

func checkUint(L *lua.LState, n int) uint64 {
	v := float64(L.CheckNumber(n))
	if v < 0 || v != math.Trunc(v) || v >= maxExact {
		L.ArgError(n, "unsigned integer below 2^53 expected")
		return 0
	}
	return uint64(v)
}

func generatorNext(L *lua.LState) int {
	h := checkGenerator(L)
	L.Push(lua.LNumber(h.g.Next()))
	return 1
}

func generatorWidth(L *lua.LState) int {
	h := checkGenerator(L)
	L.Push(lua.LNumber(h.g.Width()))
	return 1
}

func generatorSeedWide(L *lua.LState) int {
	h := checkGenerator(L)
	h.g.SeedWide(checkUint(L, 2))
	return 0
}

func generatorAddEntropyWide(L *lua.LState) int {
	h := checkGenerator(L)
	h.g.AddEntropyWide(checkUint(L, 2))
	return 0
}

// Intn(n) returns a value in [0,n) from the generator's next draws.
func generatorIntn(L *lua.LState) int {
	h := checkGenerator(L)
	n := L.CheckInt(2)
	if n <= 0 {
		L.ArgError(2, "n must be positive")
		return 0
	}
	L.Push(lua.LNumber(random.Intn(random.NewRand(h.g), n)))
	return 1
}
