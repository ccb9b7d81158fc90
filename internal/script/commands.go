package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pxlr/pxlr/internal/binding"
	"github.com/pxlr/pxlr/internal/brush"
	"github.com/pxlr/pxlr/internal/doc"
	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/gfx"
	"github.com/pxlr/pxlr/internal/settings"
)

// commands is the dispatch table. Names follow a path convention:
// related commands share a prefix (p/ palette, f/ frames, v/ view,
// brush/ brush, selection/ selection, map/ bindings).
var commands map[string]command

func init() {
	commands = map[string]command{
		"q":      {cmdQuit, "close the active view"},
		"q!":     {cmdQuitForce, "close the active view, discarding changes"},
		"qa":     {cmdQuitAll, "close all views"},
		"qa!":    {cmdQuitAllForce, "close all views, discarding changes"},
		"w":      {cmdWrite, "save the active view, optionally to a new path"},
		"wq":     {cmdWriteQuit, "save the active view and close it"},
		"x":      {cmdWriteQuit, "save the active view and close it"},
		"e":      {cmdEdit, "open a file or directory for editing"},
		"new":    {cmdNew, "open a blank view, optionally sized <w> <h>"},
		"export": {cmdExport, "save the active view to <path>, scaled by [factor]"},

		"cd":   {cmdChangeDir, "change the working directory"},
		"echo": {cmdEcho, "print arguments, or a setting's value"},
		"help": {cmdHelp, "list commands, or describe one"},

		"set":    {cmdSet, "set <key> [value]: change a setting; no value means on"},
		"unset":  {cmdUnset, "turn a setting off"},
		"toggle": {cmdToggle, "flip a boolean setting"},
		"reset!": {cmdSettingsReset, "restore every setting to its default"},
		"source": {cmdSource, "run commands from a script file"},

		"undo": {cmdUndo, "revert the last edit of the active view"},
		"redo": {cmdRedo, "re-apply the last undone edit"},

		"fg":   {cmdFg, "set the foreground color"},
		"bg":   {cmdBg, "set the background color"},
		"swap": {cmdSwap, "swap foreground and background colors"},

		"tool":        {cmdTool, "switch to a tool by name"},
		"tool/prev":   {cmdToolPrev, "switch back to the previous tool"},
		"mode":        {cmdMode, "switch edit mode: normal, visual or command"},
		"visual":      {cmdVisual, "switch to visual mode"},
		"sampler":     {cmdSampler, "switch to the color sampler tool"},
		"sampler/off": {cmdToolPrev, "leave the sampler tool"},

		"brush":        {cmdBrush, "switch to the brush tool"},
		"brush/size":   {cmdBrushSize, "set the brush size in pixels"},
		"brush/set":    {cmdBrushSet, "activate a brush mode"},
		"brush/unset":  {cmdBrushUnset, "deactivate a brush mode"},
		"brush/toggle": {cmdBrushToggle, "flip a brush mode"},
		"brush/reset":  {cmdBrushReset, "clear all brush modes and restore size 1"},

		"p/add":    {cmdPaletteAdd, "add a color to the palette"},
		"p/clear":  {cmdPaletteClear, "remove all palette colors"},
		"p/sample": {cmdPaletteSample, "rebuild the palette from the active frame"},
		"p/sort":   {cmdPaletteSort, "sort the palette by hue"},
		"p/write":  {cmdPaletteWrite, "write the palette to <path>, one color per line"},

		"f/add":    {cmdFrameNew, "append a blank frame"},
		"f/new":    {cmdFrameNew, "append a blank frame"},
		"f/clone":  {cmdFrameClone, "append a copy of frame [i], or of the last frame"},
		"f/remove": {cmdFrameRemove, "remove the last frame"},
		"f/prev":   {cmdFramePrev, "focus the previous frame, wrapping"},
		"f/next":   {cmdFrameNext, "focus the next frame, wrapping"},
		"f/resize": {cmdFrameResize, "resize all frames to <w> <h>"},

		"slice": {cmdSlice, "recut the view into [n] frames; 1 merges"},

		"v/next":   {cmdViewNext, "focus the next view, wrapping"},
		"v/prev":   {cmdViewPrev, "focus the previous view, wrapping"},
		"v/clear":  {cmdViewClear, "fill the active frame with [color]"},
		"v/zoom":   {cmdZoom, "set the view zoom factor, or step with + / -"},
		"v/center": {cmdViewCenter, "reset the view pan offset"},
		"zoom":     {cmdZoom, "set the view zoom factor, or step with + / -"},
		"pan":      {cmdPan, "pan the view by <dx> <dy>"},

		"paint":       {cmdPaint, "paint one cell at <x> <y> with [color]"},
		"paint/p":     {cmdPaint, "paint one cell at <x> <y> with [color]"},
		"paint/color": {cmdPaint, "paint one cell at <x> <y> with <color>"},
		"paint/fg":    {cmdFg, "set the foreground color"},
		"paint/bg":    {cmdBg, "set the background color"},
		"paint/line":  {cmdPaintLine, "paint a line from <x0> <y0> to <x1> <y1>"},
		"fill":        {cmdFill, "flood-fill at <x> <y> with the foreground color"},

		"selection/move":   {cmdSelectionMove, "move the selection by <dx> <dy>"},
		"selection/resize": {cmdSelectionResize, "resize the selection by <dx> <dy>"},
		"selection/offset": {cmdSelectionOffset, "outset (+) or inset (-) the selection"},
		"selection/expand": {cmdSelectionExpand, "select the whole frame"},
		"selection/jump":   {cmdSelectionJump, "jump the selection one frame fwd or bwd"},
		"selection/yank":   {cmdSelectionYank, "copy the selection to the clipboard"},
		"selection/cut":    {cmdSelectionCut, "copy the selection, then erase it"},
		"selection/paste":  {cmdSelectionPaste, "paste the clipboard into the selection"},
		"selection/erase":  {cmdSelectionErase, "erase the selected region"},
		"selection/delete": {cmdSelectionErase, "erase the selected region"},
		"selection/fill":   {cmdSelectionFill, "fill the selection with [color]"},

		"map":        {cmdMapNormal, "bind a key in normal mode: map <key> <command>"},
		"map/normal": {cmdMapNormal, "bind a key in normal mode"},
		"map/visual": {cmdMapVisual, "bind a key in visual mode"},
		"map/all":    {cmdMapAll, "bind a key in every mode"},
		"map/clear!": {cmdMapClear, "remove all key bindings"},
		"unmap":      {cmdUnmap, "remove a normal-mode binding"},
	}
}

func (in *Interpreter) activeView() (*doc.View, error) {
	v := in.s.ActiveView()
	if v == nil {
		return nil, errors.E(errors.Op("script"), errors.KindInvalid, "no view is open")
	}
	return v, nil
}

func wantArgs(op errors.Op, args []string, n int) error {
	if len(args) != n {
		return errors.E(op, errors.KindParse,
			fmt.Sprintf("expected %d argument(s), got %d", n, len(args)))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Session lifecycle
///////////////////////////////////////////////////////////////////////////

func cmdQuit(in *Interpreter, args []string) error      { return in.s.Quit(false) }
func cmdQuitForce(in *Interpreter, args []string) error { return in.s.Quit(true) }
func cmdQuitAll(in *Interpreter, args []string) error   { return in.s.QuitAll(false) }
func cmdQuitAllForce(in *Interpreter, args []string) error {
	return in.s.QuitAll(true)
}

func cmdWrite(in *Interpreter, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return in.s.Write(path)
}

func cmdWriteQuit(in *Interpreter, args []string) error {
	if err := cmdWrite(in, args); err != nil {
		return err
	}
	return in.s.Quit(false)
}

func cmdEdit(in *Interpreter, args []string) error {
	const op = errors.Op("script.e")
	if len(args) == 0 {
		return errors.E(op, errors.KindParse, "expected a path")
	}
	for _, path := range args {
		if err := in.s.Edit(path); err != nil {
			return err
		}
	}
	return nil
}

func cmdNew(in *Interpreter, args []string) error {
	const op = errors.Op("script.new")
	w, h := 32, 32
	switch len(args) {
	case 0:
	case 2:
		var err error
		if w, err = parseInt(op, args[0]); err != nil {
			return err
		}
		if h, err = parseInt(op, args[1]); err != nil {
			return err
		}
	default:
		return errors.E(op, errors.KindParse, "expected no arguments or <w> <h>")
	}
	if w < 1 || h < 1 {
		return errors.E(op, errors.KindInvalid, "size must be positive")
	}
	in.s.Blank("untitled", w, h)
	return nil
}

func cmdExport(in *Interpreter, args []string) error {
	const op = errors.Op("script.export")
	if len(args) < 1 || len(args) > 2 {
		return errors.E(op, errors.KindParse, "expected <path> [scale]")
	}
	scale := 1
	if len(args) == 2 {
		var err error
		if scale, err = parseInt(op, args[1]); err != nil {
			return err
		}
		if scale < 1 {
			return errors.E(op, errors.KindInvalid, "scale must be positive")
		}
	}
	return in.s.Export(args[0], scale)
}

func cmdChangeDir(in *Interpreter, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}
	return in.s.ChangeDir(dir)
}

func cmdEcho(in *Interpreter, args []string) error {
	if len(args) == 1 {
		if v, ok := in.s.Settings.Get(args[0]); ok {
			in.printf("%s\n", v)
			return nil
		}
	}
	in.printf("%s\n", strings.Join(args, " "))
	return nil
}

func cmdHelp(in *Interpreter, args []string) error {
	if len(args) == 1 {
		help, ok := Help(args[0])
		if !ok {
			return errors.UnknownCommand(args[0])
		}
		in.printf("%-18s %s\n", args[0], help)
		return nil
	}
	for _, name := range Names() {
		help, _ := Help(name)
		in.printf("%-18s %s\n", name, help)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Settings
///////////////////////////////////////////////////////////////////////////

func cmdSet(in *Interpreter, args []string) error {
	const op = errors.Op("script.set")
	args = splitEquals(args)
	if len(args) == 0 {
		// Bare `set` lists every setting and its value.
		for _, key := range in.s.Settings.Keys() {
			v, _ := in.s.Settings.Get(key)
			in.printf("%-20s %s\n", key, v)
		}
		return nil
	}
	key := args[0]
	if len(args) == 1 {
		_, err := in.s.Settings.Set(key, settings.Bool(true))
		return err
	}
	v, err := settings.ParseValue(args[1:])
	if err != nil {
		return errors.E(op, err)
	}
	old, err := in.s.Settings.Set(key, v)
	if err != nil {
		return err
	}
	log.Debug("set", "key", key, "value", v.String(), "old", old.String())
	return nil
}

func cmdUnset(in *Interpreter, args []string) error {
	const op = errors.Op("script.unset")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	_, err := in.s.Settings.Set(args[0], settings.Bool(false))
	return err
}

func cmdSettingsReset(in *Interpreter, args []string) error {
	in.s.Settings.Reset()
	return nil
}

func cmdToggle(in *Interpreter, args []string) error {
	const op = errors.Op("script.toggle")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	return in.s.Settings.Toggle(args[0])
}

func cmdSource(in *Interpreter, args []string) error {
	const op = errors.Op("script.source")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	return in.Source(args[0])
}

///////////////////////////////////////////////////////////////////////////
// History
///////////////////////////////////////////////////////////////////////////

func cmdUndo(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	return v.Undo()
}

func cmdRedo(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	return v.Redo()
}

///////////////////////////////////////////////////////////////////////////
// Colors
///////////////////////////////////////////////////////////////////////////

func cmdFg(in *Interpreter, args []string) error {
	const op = errors.Op("script.fg")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	c, err := parseColor(op, args[0])
	if err != nil {
		return err
	}
	in.s.SetFgColor(c)
	in.s.Palette.Add(c)
	return nil
}

func cmdBg(in *Interpreter, args []string) error {
	const op = errors.Op("script.bg")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	c, err := parseColor(op, args[0])
	if err != nil {
		return err
	}
	in.s.SetBgColor(c)
	return nil
}

func cmdSwap(in *Interpreter, args []string) error {
	in.s.SwapColors()
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Tools, modes, brush
///////////////////////////////////////////////////////////////////////////

func cmdTool(in *Interpreter, args []string) error {
	const op = errors.Op("script.tool")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	t, err := brush.ParseTool(args[0])
	if err != nil {
		return err
	}
	in.s.UseTool(t)
	return nil
}

func cmdToolPrev(in *Interpreter, args []string) error {
	in.s.PrevTool()
	return nil
}

func cmdMode(in *Interpreter, args []string) error {
	const op = errors.Op("script.mode")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	m, err := binding.ParseMode(args[0])
	if err != nil {
		return err
	}
	in.s.SwitchMode(m)
	return nil
}

func cmdVisual(in *Interpreter, args []string) error {
	in.s.SwitchMode(binding.ModeVisual)
	return nil
}

func cmdBrush(in *Interpreter, args []string) error {
	in.s.UseTool(brush.ToolBrush)
	return nil
}

func cmdSampler(in *Interpreter, args []string) error {
	in.s.UseTool(brush.ToolSampler)
	return nil
}

func cmdBrushSize(in *Interpreter, args []string) error {
	const op = errors.Op("script.brush/size")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	switch args[0] {
	case "+":
		in.s.Brush.Size++
		return nil
	case "-":
		if in.s.Brush.Size > 1 {
			in.s.Brush.Size--
		}
		return nil
	}
	n, err := parseInt(op, args[0])
	if err != nil {
		return err
	}
	if n < 1 {
		return errors.E(op, errors.KindInvalid, "size must be positive")
	}
	in.s.Brush.Size = n
	return nil
}

func brushMode(op errors.Op, args []string) (brush.Mode, error) {
	if err := wantArgs(op, args, 1); err != nil {
		return 0, err
	}
	return brush.ParseMode(args[0])
}

func cmdBrushSet(in *Interpreter, args []string) error {
	m, err := brushMode(errors.Op("script.brush/set"), args)
	if err != nil {
		return err
	}
	in.s.Brush.Set(m)
	return nil
}

func cmdBrushUnset(in *Interpreter, args []string) error {
	m, err := brushMode(errors.Op("script.brush/unset"), args)
	if err != nil {
		return err
	}
	in.s.Brush.Unset(m)
	return nil
}

func cmdBrushToggle(in *Interpreter, args []string) error {
	m, err := brushMode(errors.Op("script.brush/toggle"), args)
	if err != nil {
		return err
	}
	in.s.Brush.Toggle(m)
	return nil
}

func cmdBrushReset(in *Interpreter, args []string) error {
	in.s.Brush.Reset()
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Palette
///////////////////////////////////////////////////////////////////////////

func cmdPaletteAdd(in *Interpreter, args []string) error {
	const op = errors.Op("script.p/add")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	c, err := parseColor(op, args[0])
	if err != nil {
		return err
	}
	in.s.Palette.Add(c)
	return nil
}

func cmdPaletteWrite(in *Interpreter, args []string) error {
	const op = errors.Op("script.p/write")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(in.s.Cwd(), path)
	}
	var b strings.Builder
	for _, c := range in.s.Palette.Colors() {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.IoFailed(op, path, err)
	}
	return nil
}

func cmdPaletteClear(in *Interpreter, args []string) error {
	in.s.Palette.Clear()
	return nil
}

func cmdPaletteSample(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	in.s.Palette.Sample(v.ActiveFrame().Composite())
	return nil
}

func cmdPaletteSort(in *Interpreter, args []string) error {
	in.s.Palette.Sort()
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Frames
///////////////////////////////////////////////////////////////////////////

func cmdFrameNew(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	v.AddFrame()
	return nil
}

func cmdFrameClone(in *Interpreter, args []string) error {
	const op = errors.Op("script.f/clone")
	v, err := in.activeView()
	if err != nil {
		return err
	}
	i := -1
	if len(args) > 0 {
		if i, err = parseInt(op, args[0]); err != nil {
			return err
		}
	}
	return v.CloneFrame(i)
}

func cmdFrameRemove(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	return v.RemoveFrame()
}

func cmdFramePrev(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	v.PrevFrame()
	return nil
}

func cmdFrameNext(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	v.NextFrame()
	return nil
}

func cmdFrameResize(in *Interpreter, args []string) error {
	const op = errors.Op("script.f/resize")
	if err := wantArgs(op, args, 2); err != nil {
		return err
	}
	v, err := in.activeView()
	if err != nil {
		return err
	}
	w, err := parseInt(op, args[0])
	if err != nil {
		return err
	}
	h, err := parseInt(op, args[1])
	if err != nil {
		return err
	}
	return v.ResizeFrames(w, h)
}

func cmdSlice(in *Interpreter, args []string) error {
	const op = errors.Op("script.slice")
	v, err := in.activeView()
	if err != nil {
		return err
	}
	n := 1
	if len(args) > 0 {
		if n, err = parseInt(op, args[0]); err != nil {
			return err
		}
	}
	return v.Slice(n)
}

///////////////////////////////////////////////////////////////////////////
// Views
///////////////////////////////////////////////////////////////////////////

func cmdViewNext(in *Interpreter, args []string) error {
	in.s.NextView()
	return nil
}

func cmdViewPrev(in *Interpreter, args []string) error {
	in.s.PrevView()
	return nil
}

func cmdViewCenter(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	v.Pan = gfx.P(0, 0)
	return nil
}

func cmdViewClear(in *Interpreter, args []string) error {
	const op = errors.Op("script.v/clear")
	v, err := in.activeView()
	if err != nil {
		return err
	}
	c := gfx.Transparent
	if len(args) > 0 {
		if c, err = parseColor(op, args[0]); err != nil {
			return err
		}
	}
	v.Commit(v.FillRegion(v.FrameIndex(), v.Bounds(), c, "clear"))
	return nil
}

func cmdZoom(in *Interpreter, args []string) error {
	const op = errors.Op("script.zoom")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	v, err := in.activeView()
	if err != nil {
		return err
	}
	switch args[0] {
	case "+":
		v.Zoom *= 2
		return nil
	case "-":
		if v.Zoom > 1 {
			v.Zoom /= 2
		}
		return nil
	}
	z, err := parseFloat(op, args[0])
	if err != nil {
		return err
	}
	if z <= 0 {
		return errors.E(op, errors.KindInvalid, "zoom must be positive")
	}
	v.Zoom = z
	return nil
}

func cmdPan(in *Interpreter, args []string) error {
	const op = errors.Op("script.pan")
	if err := wantArgs(op, args, 2); err != nil {
		return err
	}
	v, err := in.activeView()
	if err != nil {
		return err
	}
	dx, err := parseInt(op, args[0])
	if err != nil {
		return err
	}
	dy, err := parseInt(op, args[1])
	if err != nil {
		return err
	}
	v.Pan = v.Pan.Add(gfx.P(dx, dy))
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Painting
///////////////////////////////////////////////////////////////////////////

func cmdPaint(in *Interpreter, args []string) error {
	const op = errors.Op("script.paint")
	if len(args) < 2 || len(args) > 3 {
		return errors.E(op, errors.KindParse, "expected <x> <y> [color]")
	}
	v, err := in.activeView()
	if err != nil {
		return err
	}
	x, err := parseInt(op, args[0])
	if err != nil {
		return err
	}
	y, err := parseInt(op, args[1])
	if err != nil {
		return err
	}
	c := in.s.FgColor()
	if len(args) == 3 {
		if c, err = parseColor(op, args[2]); err != nil {
			return err
		}
	}
	p := gfx.P(x, y)
	if !v.Bounds().Contains(p) {
		return errors.OutOfBounds(x, y, v.Width(), v.Height())
	}
	in.s.Paint(p, c)
	return nil
}

func cmdPaintLine(in *Interpreter, args []string) error {
	const op = errors.Op("script.paint/line")
	if err := wantArgs(op, args, 4); err != nil {
		return err
	}
	if _, err := in.activeView(); err != nil {
		return err
	}
	var coords [4]int
	for i, a := range args {
		n, err := parseInt(op, a)
		if err != nil {
			return err
		}
		coords[i] = n
	}
	in.s.PaintLine(gfx.P(coords[0], coords[1]), gfx.P(coords[2], coords[3]), in.s.FgColor())
	return nil
}

func cmdFill(in *Interpreter, args []string) error {
	const op = errors.Op("script.fill")
	if err := wantArgs(op, args, 2); err != nil {
		return err
	}
	if _, err := in.activeView(); err != nil {
		return err
	}
	x, err := parseInt(op, args[0])
	if err != nil {
		return err
	}
	y, err := parseInt(op, args[1])
	if err != nil {
		return err
	}
	in.s.FloodAt(gfx.P(x, y))
	return nil
}

///////////////////////////////////////////////////////////////////////////
// Selection
///////////////////////////////////////////////////////////////////////////

func selectionDelta(op errors.Op, args []string) (int, int, error) {
	if err := wantArgs(op, args, 2); err != nil {
		return 0, 0, err
	}
	dx, err := parseInt(op, args[0])
	if err != nil {
		return 0, 0, err
	}
	dy, err := parseInt(op, args[1])
	if err != nil {
		return 0, 0, err
	}
	return dx, dy, nil
}

func (in *Interpreter) withSelection(op errors.Op, f func(v *doc.View, sel *doc.Selection)) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	sel := v.Selection()
	if sel == nil {
		return errors.E(op, errors.KindInvalid, "no active selection")
	}
	f(v, sel)
	return nil
}

func cmdSelectionMove(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/move")
	dx, dy, err := selectionDelta(op, args)
	if err != nil {
		return err
	}
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		tmp := doc.NewSelection(sel.Rect)
		tmp.Translate(dx, dy, v.Bounds())
		v.Select(tmp.Rect)
	})
}

func cmdSelectionResize(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/resize")
	dx, dy, err := selectionDelta(op, args)
	if err != nil {
		return err
	}
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		tmp := doc.NewSelection(sel.Rect)
		tmp.Resize(dx, dy, v.Bounds())
		v.Select(tmp.Rect)
	})
}

func cmdSelectionOffset(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/offset")
	dx, dy, err := selectionDelta(op, args)
	if err != nil {
		return err
	}
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		tmp := doc.NewSelection(sel.Rect)
		tmp.Offset(dx, dy, v.Bounds())
		v.Select(tmp.Rect)
	})
}

func cmdSelectionExpand(in *Interpreter, args []string) error {
	v, err := in.activeView()
	if err != nil {
		return err
	}
	v.ExpandSelection()
	return nil
}

func cmdSelectionJump(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/jump")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	var dir int
	switch args[0] {
	case "fwd":
		dir = 1
	case "bwd":
		dir = -1
	default:
		return errors.E(op, errors.KindParse, "expected fwd or bwd")
	}
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		tmp := doc.NewSelection(sel.Rect)
		tmp.Translate(dir*sel.Rect.Width(), 0, v.Bounds())
		v.Select(tmp.Rect)
	})
}

func cmdSelectionYank(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/yank")
	if !in.s.YankSelection() {
		return errors.E(op, errors.KindInvalid, "no active selection")
	}
	return nil
}

func cmdSelectionPaste(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/paste")
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		in.s.Paste(sel.Rect.Min)
	})
}

func cmdSelectionErase(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/erase")
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		v.Commit(v.FillRegion(v.FrameIndex(), sel.Rect, gfx.Transparent, "erase"))
	})
}

func cmdSelectionCut(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/cut")
	if !in.s.YankSelection() {
		return errors.E(op, errors.KindInvalid, "no active selection")
	}
	return cmdSelectionErase(in, args)
}

func cmdSelectionFill(in *Interpreter, args []string) error {
	const op = errors.Op("script.selection/fill")
	c := in.s.FgColor()
	if len(args) > 0 {
		var err error
		if c, err = parseColor(op, args[0]); err != nil {
			return err
		}
	}
	return in.withSelection(op, func(v *doc.View, sel *doc.Selection) {
		v.Commit(v.FillRegion(v.FrameIndex(), sel.Rect, c, "fill"))
	})
}

///////////////////////////////////////////////////////////////////////////
// Key bindings
///////////////////////////////////////////////////////////////////////////

func mapIn(op errors.Op, in *Interpreter, modes []binding.EditMode, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.E(op, errors.KindParse, "expected <key> <command> [release-command]")
	}
	up := ""
	if len(args) == 3 {
		up = args[2]
	}
	in.s.Bindings.Map(modes, args[0], args[1], up)
	return nil
}

func cmdMapNormal(in *Interpreter, args []string) error {
	return mapIn(errors.Op("script.map"), in, []binding.EditMode{binding.ModeNormal}, args)
}

func cmdMapVisual(in *Interpreter, args []string) error {
	return mapIn(errors.Op("script.map/visual"), in, []binding.EditMode{binding.ModeVisual}, args)
}

func cmdMapAll(in *Interpreter, args []string) error {
	return mapIn(errors.Op("script.map/all"), in, binding.AllModes, args)
}

func cmdMapClear(in *Interpreter, args []string) error {
	in.s.Bindings.Clear()
	return nil
}

func cmdUnmap(in *Interpreter, args []string) error {
	const op = errors.Op("script.unmap")
	if err := wantArgs(op, args, 1); err != nil {
		return err
	}
	in.s.Bindings.Unmap([]binding.EditMode{binding.ModeNormal}, args[0])
	return nil
}
