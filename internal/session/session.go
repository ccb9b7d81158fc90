// Package session owns the editor state that spans documents: the set
// of open views and which one is active, foreground/background colors,
// the brush and active tool, the settings registry, key bindings, the
// color palette and the working directory. The command interpreter
// mutates a Session; the session in turn drives views and their undo
// histories.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/pxlr/pxlr/internal/binding"
	"github.com/pxlr/pxlr/internal/brush"
	"github.com/pxlr/pxlr/internal/doc"
	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/imgio"
	"github.com/pxlr/pxlr/internal/logger"
	"github.com/pxlr/pxlr/internal/palette"
	"github.com/pxlr/pxlr/internal/pixels"
	"github.com/pxlr/pxlr/internal/settings"
)

var log = logger.ComponentLogger("session")

// Session is the top-level editor state.
type Session struct {
	Settings *settings.Registry
	Bindings *binding.Table
	Palette  *palette.Palette
	Brush    *brush.Brush

	store imgio.Store

	views  []*doc.View
	index  map[uuid.UUID]int
	active int

	mode     binding.EditMode
	tool     brush.Tool
	prevTool brush.Tool

	fg, bg gfx.Rgba8
	cwd    string
	anchor gfx.Point

	// selBefore holds the selection as it was when a selection drag
	// began, so the whole drag commits as one edit at release.
	selBefore *doc.Selection

	clipboard *pixels.Buffer
	running   bool
}

// New returns a session with default state and no open views.
func New(store imgio.Store) *Session {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Session{
		Settings: settings.NewRegistry(),
		Bindings: binding.NewTable(),
		Palette:  palette.New(),
		Brush:    brush.New(),
		store:    store,
		index:    make(map[uuid.UUID]int),
		active:   -1,
		mode:     binding.ModeNormal,
		tool:     brush.ToolBrush,
		prevTool: brush.ToolBrush,
		fg:       gfx.White,
		bg:       gfx.Black,
		cwd:      cwd,
		running:  true,
	}
}

// Running reports whether the session has been asked to keep going.
// Quit commands flip it off; the outer loop polls it.
func (s *Session) Running() bool { return s.running }

// Stop ends the session unconditionally.
func (s *Session) Stop() { s.running = false }

///////////////////////////////////////////////////////////////////////////
// Modes, tools, colors
///////////////////////////////////////////////////////////////////////////

// Mode returns the current edit mode.
func (s *Session) Mode() binding.EditMode { return s.mode }

// SwitchMode changes the edit mode. Leaving visual mode drops the
// active selection, matching how the selection is a visual-mode object.
func (s *Session) SwitchMode(m binding.EditMode) {
	if s.mode == binding.ModeVisual && m != binding.ModeVisual {
		if v := s.ActiveView(); v != nil {
			v.ClearSelection()
		}
	}
	s.mode = m
}

// Tool returns the active tool.
func (s *Session) Tool() brush.Tool { return s.tool }

// UseTool switches tools, remembering the previous one so PrevTool can
// flip back (e.g. after a one-shot color sample).
func (s *Session) UseTool(t brush.Tool) {
	if t == s.tool {
		return
	}
	s.prevTool = s.tool
	s.tool = t
}

// PrevTool reverts to the tool in use before the last UseTool.
func (s *Session) PrevTool() {
	s.tool, s.prevTool = s.prevTool, s.tool
}

// FgColor returns the foreground (paint) color.
func (s *Session) FgColor() gfx.Rgba8 { return s.fg }

// BgColor returns the background color.
func (s *Session) BgColor() gfx.Rgba8 { return s.bg }

// SetFgColor sets the paint color.
func (s *Session) SetFgColor(c gfx.Rgba8) { s.fg = c }

// SetBgColor sets the background color.
func (s *Session) SetBgColor(c gfx.Rgba8) { s.bg = c }

// SwapColors exchanges foreground and background.
func (s *Session) SwapColors() {
	s.fg, s.bg = s.bg, s.fg
}

///////////////////////////////////////////////////////////////////////////
// Working directory
///////////////////////////////////////////////////////////////////////////

// Cwd returns the session working directory used to resolve relative
// paths in commands.
func (s *Session) Cwd() string { return s.cwd }

// ChangeDir sets the working directory. An empty dir resets to the
// process working directory.
func (s *Session) ChangeDir(dir string) error {
	const op = errors.Op("session.ChangeDir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.IoFailed(op, ".", err)
		}
		s.cwd = wd
		return nil
	}
	dir = s.resolve(dir)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.IoFailed(op, dir, err)
	}
	if !info.IsDir() {
		return errors.E(op, errors.KindInvalid, fmt.Sprintf("%s: not a directory", dir))
	}
	s.cwd = dir
	return nil
}

func (s *Session) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.cwd, path)
}

///////////////////////////////////////////////////////////////////////////
// Views
///////////////////////////////////////////////////////////////////////////

// Views returns the open views in creation order.
func (s *Session) Views() []*doc.View { return s.views }

// ActiveView returns the focused view, or nil when none are open.
func (s *Session) ActiveView() *doc.View {
	if s.active < 0 || s.active >= len(s.views) {
		return nil
	}
	return s.views[s.active]
}

// ViewByID looks a view up by its identifier.
func (s *Session) ViewByID(id uuid.UUID) (*doc.View, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.views[i], true
}

// Activate focuses the view with the given identifier, in constant
// time.
func (s *Session) Activate(id uuid.UUID) error {
	i, ok := s.index[id]
	if !ok {
		return errors.E(errors.Op("session.Activate"), errors.KindNotFound,
			fmt.Sprintf("no view %s", id))
	}
	s.active = i
	return nil
}

// NextView cycles focus forward, wrapping past the last view.
func (s *Session) NextView() {
	if len(s.views) == 0 {
		return
	}
	s.active = (s.active + 1) % len(s.views)
}

// PrevView cycles focus backward, wrapping past the first view.
func (s *Session) PrevView() {
	if len(s.views) == 0 {
		return
	}
	s.active = (s.active - 1 + len(s.views)) % len(s.views)
}

// Blank opens a new transparent view of the given size and focuses it.
func (s *Session) Blank(name string, w, h int) *doc.View {
	v := doc.NewView(name, w, h, 1)
	s.attach(v)
	return v
}

// Edit opens the file at path, or every supported file when path is a
// directory. The last opened view gains focus. Opening a path that is
// already open refocuses the existing view instead of duplicating it.
func (s *Session) Edit(path string) error {
	path = s.resolve(path)

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		loaded, err := s.store.LoadDirectory(path)
		if err != nil {
			return err
		}
		if len(loaded) == 0 {
			return errors.E(errors.Op("session.Edit"), errors.KindNotFound,
				fmt.Sprintf("%s: no images found", path))
		}
		for _, l := range loaded {
			if err := s.editFile(l.Path, l.Frames); err != nil {
				return err
			}
		}
		return nil
	}

	for i, v := range s.views {
		if v.Name == path {
			s.active = i
			return nil
		}
	}
	frames, err := s.store.Load(path)
	if err != nil {
		return err
	}
	return s.editFile(path, frames)
}

func (s *Session) editFile(path string, frames []*pixels.Buffer) error {
	v, err := doc.NewViewFromBuffers(path, frames)
	if err != nil {
		return err
	}
	s.attach(v)
	logger.WithView(v.ID.String()).Debug("opened",
		"path", path, "frames", len(frames), "width", v.Width(), "height", v.Height())
	return nil
}

func (s *Session) attach(v *doc.View) {
	s.index[v.ID] = len(s.views)
	s.views = append(s.views, v)
	s.active = len(s.views) - 1
}

// Quit closes the focused view. Unsaved changes block the close unless
// force is set. Closing the last view stops the session.
func (s *Session) Quit(force bool) error {
	v := s.ActiveView()
	if v == nil {
		s.running = false
		return nil
	}
	if v.Modified() && !force {
		return errors.E(errors.Op("session.Quit"), errors.KindInvalid,
			fmt.Sprintf("%s: unsaved changes (use q! to discard)", v.Name))
	}
	delete(s.index, v.ID)
	s.views = append(s.views[:s.active], s.views[s.active+1:]...)
	for i := s.active; i < len(s.views); i++ {
		s.index[s.views[i].ID] = i
	}
	if len(s.views) == 0 {
		s.active = -1
		s.running = false
		return nil
	}
	if s.active >= len(s.views) {
		s.active = len(s.views) - 1
	}
	return nil
}

// QuitAll closes every view, subject to the same modified check.
func (s *Session) QuitAll(force bool) error {
	if !force {
		for _, v := range s.views {
			if v.Modified() {
				return errors.E(errors.Op("session.QuitAll"), errors.KindInvalid,
					fmt.Sprintf("%s: unsaved changes (use qa! to discard)", v.Name))
			}
		}
	}
	s.views = nil
	s.index = make(map[uuid.UUID]int)
	s.active = -1
	s.running = false
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Saving
///////////////////////////////////////////////////////////////////////////

// Write saves the focused view. An empty path reuses the view's name;
// a non-empty path also renames the view. Layers are composited before
// encoding (one PNG frame, or an animation for .gif).
func (s *Session) Write(path string) error {
	v := s.ActiveView()
	if v == nil {
		return errors.E(errors.Op("session.Write"), errors.KindInvalid, "no view to save")
	}
	if path == "" {
		path = v.Name
	} else {
		path = s.resolve(path)
		v.Name = path
	}
	if err := s.export(v, path, 1); err != nil {
		return err
	}
	v.MarkSaved()
	log.Debug("wrote", "path", path)
	return nil
}

// Export saves the focused view scaled up by an integer factor, without
// touching its name or modified flag.
func (s *Session) Export(path string, scale int) error {
	v := s.ActiveView()
	if v == nil {
		return errors.E(errors.Op("session.Export"), errors.KindInvalid, "no view to export")
	}
	return s.export(v, s.resolve(path), scale)
}

func (s *Session) export(v *doc.View, path string, scale int) error {
	frames := make([]*pixels.Buffer, len(v.Frames()))
	for i, f := range v.Frames() {
		frames[i] = f.Composite()
	}
	delay := 160
	if val, ok := s.Settings.Get("animation/delay"); ok {
		delay = val.AsInt()
	}
	return s.store.Save(path, frames, delay, scale)
}

///////////////////////////////////////////////////////////////////////////
// Clipboard
///////////////////////////////////////////////////////////////////////////

// YankSelection copies the focused view's selection into the session
// clipboard. It reports whether anything was yanked.
func (s *Session) YankSelection() bool {
	v := s.ActiveView()
	if v == nil {
		return false
	}
	buf := v.Yank()
	if buf == nil {
		return false
	}
	s.clipboard = buf
	return true
}

// Clipboard returns the yanked buffer, or nil.
func (s *Session) Clipboard() *pixels.Buffer { return s.clipboard }

// Paste blits the clipboard onto the focused frame at p and commits the
// edit. Pasting with an empty clipboard is a no-op.
func (s *Session) Paste(p gfx.Point) {
	v := s.ActiveView()
	if v == nil || s.clipboard == nil {
		return
	}
	v.Commit(v.BlitRegion(v.FrameIndex(), p, s.clipboard, "paste"))
}

///////////////////////////////////////////////////////////////////////////
// Key events
///////////////////////////////////////////////////////////////////////////

// KeyDown resolves a key chord in the current mode to its press
// command. The caller (the interpreter's event loop) executes it.
func (s *Session) KeyDown(chord string) (string, bool) {
	b, ok := s.Bindings.Find(s.mode, chord)
	if !ok || b.Down == "" {
		return "", false
	}
	return b.Down, true
}

// KeyUp resolves a key chord to its release command, if the binding
// has one.
func (s *Session) KeyUp(chord string) (string, bool) {
	b, ok := s.Bindings.Find(s.mode, chord)
	if !ok || b.Up == "" {
		return "", false
	}
	return b.Up, true
}
