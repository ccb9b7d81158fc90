// Package imgio is the default file I/O collaborator: it decodes and
// encodes the image files the editing core opens and writes. The core
// consumes it through the Store interface so a different backend can be
// substituted; codec failures surface as KindIO errors without the core
// interpreting bytes itself.
package imgio

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/pxlr/pxlr/internal/errors"
	"github.com/pxlr/pxlr/internal/pixels"
)

// Store loads and saves frame sequences.
type Store interface {
	// Load decodes path into one or more frames.
	Load(path string) ([]*pixels.Buffer, error)
	// Save encodes frames to path; the format follows the extension.
	// Multi-frame saves to .gif animate with the given delay.
	Save(path string, frames []*pixels.Buffer, delayMS, scale int) error
	// LoadDirectory loads every supported image in dir, sorted by name.
	LoadDirectory(dir string) ([]Loaded, error)
}

// Loaded pairs a decoded file with its path.
type Loaded struct {
	Path   string
	Frames []*pixels.Buffer
}

// Extensions lists the file extensions the default store understands.
var Extensions = []string{".png", ".gif"}

type store struct{}

// New returns the default PNG/GIF store.
func New() Store {
	return store{}
}

func (store) Load(path string) ([]*pixels.Buffer, error) {
	const op = errors.Op("imgio.Load")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IoFailed(op, path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		g, err := gif.DecodeAll(f)
		if err != nil {
			return nil, errors.IoFailed(op, path, err)
		}
		frames := make([]*pixels.Buffer, len(g.Image))
		for i, img := range g.Image {
			frames[i] = pixels.FromImage(img)
		}
		return frames, nil
	default:
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, errors.IoFailed(op, path, err)
		}
		return []*pixels.Buffer{pixels.FromImage(img)}, nil
	}
}

func (store) Save(path string, frames []*pixels.Buffer, delayMS, scale int) error {
	const op = errors.Op("imgio.Save")

	if len(frames) == 0 {
		return errors.E(op, errors.KindInvalid, "no frames to save")
	}
	if scale < 1 {
		scale = 1
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IoFailed(op, path, err)
	}
	defer f.Close()

	if strings.ToLower(filepath.Ext(path)) == ".gif" {
		if err := encodeGIF(f, frames, delayMS, scale); err != nil {
			return errors.IoFailed(op, path, err)
		}
		return nil
	}
	if err := png.Encode(f, scaled(frames[0], scale)); err != nil {
		return errors.IoFailed(op, path, err)
	}
	return nil
}

func (s store) LoadDirectory(dir string) ([]Loaded, error) {
	const op = errors.Op("imgio.LoadDirectory")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.IoFailed(op, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		for _, known := range Extensions {
			if ext == known {
				names = append(names, e.Name())
				break
			}
		}
	}
	sort.Strings(names)

	out := make([]Loaded, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		frames, err := s.Load(path)
		if err != nil {
			return nil, err
		}
		out = append(out, Loaded{Path: path, Frames: frames})
	}
	return out, nil
}

// scaled returns the frame as an image, upscaled by an integer factor
// with nearest-neighbour sampling so pixels stay crisp.
func scaled(buf *pixels.Buffer, scale int) image.Image {
	src := buf.Image()
	if scale == 1 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, buf.Width()*scale, buf.Height()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func encodeGIF(f *os.File, frames []*pixels.Buffer, delayMS, scale int) error {
	anim := &gif.GIF{}
	for _, frame := range frames {
		img := scaled(frame, scale)
		bounds := img.Bounds()
		pal := image.NewPaletted(bounds, palettedColors(img))
		xdraw.Draw(pal, bounds, img, bounds.Min, xdraw.Src)
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, delayMS/10) // gif delay is in 1/100s
	}
	return gif.EncodeAll(f, anim)
}

// palettedColors builds a GIF palette from the distinct colors of img.
// Pixel art rarely exceeds 256 colors; when it does we fall back to the
// standard Plan 9 palette rather than quantizing ourselves.
func palettedColors(img image.Image) color.Palette {
	seen := make(map[color.NRGBA]struct{})
	var out color.Palette
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
			if len(out) > 256 {
				return palette.Plan9
			}
		}
	}
	if len(out) == 0 {
		out = color.Palette{color.NRGBA{}}
	}
	return out
}
