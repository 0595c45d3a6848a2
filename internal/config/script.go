package config

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// loadScript runs a Lua configuration script against cfg. The script
// sees a sandboxed state with an `orgfill` table exposing:
//
//	orgfill.set(path, value)  -- assign a setting by dotted path
//	orgfill.get(path)         -- read the current value, or nil
//
// io, os, debug, and package stay closed; a config script has no
// business touching the file system.
func loadScript(cfg *Config, path string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibraries(L)

	var scriptErr error
	mod := L.NewTable()
	L.SetField(mod, "set", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		val := luaToGo(L.CheckAny(2))
		if err := cfg.Set(key, val); err != nil {
			scriptErr = err
			L.RaiseError("%s", err.Error())
		}
		return 0
	}))
	L.SetField(mod, "get", L.NewFunction(func(L *lua.LState) int {
		L.Push(goToLua(L, cfg.get(L.CheckString(1))))
		return 1
	}))
	L.SetGlobal("orgfill", mod)

	if err := L.DoFile(path); err != nil {
		if scriptErr != nil {
			return fmt.Errorf("config script %s: %w", path, scriptErr)
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// openSafeLibraries opens only side-effect-free Lua standard libraries.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// get reads a setting by dotted path; unknown paths return nil.
func (c *Config) get(path string) any {
	switch path {
	case "fill.column":
		return c.Fill.Column
	case "editor.tab_width":
		return c.Editor.TabWidth
	case "editor.line_ending":
		return c.Editor.LineEnding
	case "ui.theme.foreground":
		return c.UI.Theme.Foreground
	case "ui.theme.background":
		return c.UI.Theme.Background
	case "ui.theme.status_fg":
		return c.UI.Theme.StatusFg
	case "ui.theme.status_bg":
		return c.UI.Theme.StatusBg
	case "ui.theme.error_fg":
		return c.UI.Theme.ErrorFg
	}
	return nil
}

func luaToGo(v lua.LValue) any {
	switch lv := v.(type) {
	case lua.LString:
		return string(lv)
	case lua.LNumber:
		return float64(lv)
	case lua.LBool:
		return bool(lv)
	default:
		return nil
	}
}

func goToLua(L *lua.LState, v any) lua.LValue {
	switch gv := v.(type) {
	case string:
		return lua.LString(gv)
	case int:
		return lua.LNumber(gv)
	case float64:
		return lua.LNumber(gv)
	case bool:
		return lua.LBool(gv)
	default:
		return lua.LNil
	}
}
