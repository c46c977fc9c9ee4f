// Package lua builds box trees from Lua scripts.
package lua

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/drake/dwbox/box"
	lru "github.com/hashicorp/golang-lru/v2"
	glua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// Engine wraps gopher-lua and manages the VM lifecycle.
// It is a pure mechanism: it runs layout scripts and exposes the dw API.
// It does NOT place anything; the caller resizes the resulting tree.
type Engine struct {
	L      *glua.LState
	chunks *lru.Cache[string, *glua.FunctionProto]

	// Cached table reference
	dwTable *glua.LTable

	// Host interface for creating native widgets
	host Host

	// Script results
	root          *box.Box
	widgets       map[string]box.Widget
	width, height int
}

// NewEngine creates an Engine with the given Host.
func NewEngine(host Host) *Engine {
	chunks, _ := lru.New[string, *glua.FunctionProto](32)
	return &Engine{
		chunks:  chunks,
		host:    host,
		widgets: make(map[string]box.Widget),
	}
}

// --- Lifecycle ---

// Init initializes (or re-initializes) the Lua VM with fresh state.
// Compiled chunks survive re-initialization; script results do not.
func (e *Engine) Init() error {
	if e.L != nil {
		e.L.Close()
	}

	e.L = glua.NewState()
	e.root = nil
	e.widgets = make(map[string]box.Widget)
	e.width, e.height = 0, 0

	registerBoxType(e.L)
	registerPercentType(e.L)
	e.registerAPIs()

	return nil
}

// Close cleans up the Lua state.
func (e *Engine) Close() {
	if e.L != nil {
		e.L.Close()
		e.L = nil
	}
}

// --- Execution Primitives ---

// DoString executes a raw string of Lua code.
// The name parameter is used for stack traces. Compiled code is cached by
// content, so reloading an unchanged script skips parsing.
func (e *Engine) DoString(name, code string) error {
	proto, err := e.compile(name, code)
	if err != nil {
		return err
	}
	e.L.Push(e.L.NewFunctionFromProto(proto))
	return e.L.PCall(0, 0, nil)
}

// DoFile executes a Lua file from the filesystem.
// It temporarily adjusts package.path to allow local requires.
func (e *Engine) DoFile(path string) error {
	path = expandTilde(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(absPath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)

	// Temporarily prepend script's directory to package.path
	pkg := e.L.GetGlobal("package").(*glua.LTable)
	oldPath := e.L.GetField(pkg, "path").String()
	e.L.SetField(pkg, "path", glua.LString(dir+"/?.lua;"+oldPath))

	err = e.DoString(absPath, string(code))

	// Restore original path
	e.L.SetField(pkg, "path", glua.LString(oldPath))

	return err
}

func (e *Engine) compile(name, code string) (*glua.FunctionProto, error) {
	sum := sha256.Sum256([]byte(name + "\x00" + code))
	key := hex.EncodeToString(sum[:])
	if proto, ok := e.chunks.Get(key); ok {
		return proto, nil
	}

	chunk, err := parse.Parse(strings.NewReader(code), name)
	if err != nil {
		return nil, err
	}
	proto, err := glua.Compile(chunk, name)
	if err != nil {
		return nil, err
	}
	e.chunks.Add(key, proto)
	return proto, nil
}

// --- Results ---

// Root returns the box passed to dw.root, or nil.
func (e *Engine) Root() *box.Box { return e.root }

// Widgets returns the widgets created by the script, by name.
func (e *Engine) Widgets() map[string]box.Widget { return e.widgets }

// Size returns the window size requested with dw.size, or zeros.
func (e *Engine) Size() (width, height int) { return e.width, e.height }

// CachedChunks returns the number of compiled chunks held.
func (e *Engine) CachedChunks() int { return e.chunks.Len() }

// --- Private Helpers ---

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
