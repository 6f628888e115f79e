// Package imaging recompresses PNG map screenshots into smaller JPEGs.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultQuality is the JPEG quality used when none is given
const DefaultQuality = 50

// Options controls a shrink run
type Options struct {
	Factor  int    // integer divisor of both dimensions, 1 keeps the size
	Quality int    // JPEG quality 1-100
	Caption string // optional text stamped in the bottom-left corner
}

func (o Options) normalized() Options {
	if o.Factor < 1 {
		o.Factor = 1
	}
	if o.Quality < 1 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// JPEGName returns the output file name for a PNG input
func JPEGName(pngName string) string {
	base := filepath.Base(pngName)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".png") {
		return strings.TrimSuffix(base, ext) + ".jpg"
	}
	return base + ".jpg"
}

// ShrinkPNG decodes src, divides its dimensions by the factor, and writes a JPEG
// into dstDir. It returns the path of the written file.
func ShrinkPNG(src, dstDir string, opts Options) (string, error) {
	opts = opts.normalized()

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	img, err := png.Decode(in)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", src, err)
	}

	out := Resize(img, opts.Factor)
	if opts.Caption != "" {
		drawCaption(out, opts.Caption)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output folder: %w", err)
	}
	dst := filepath.Join(dstDir, JPEGName(src))
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, out, &jpeg.Options{Quality: opts.Quality}); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", dst, err)
	}
	return dst, nil
}

// Resize scales img down by an integer factor onto an opaque white canvas
func Resize(img image.Image, factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	w, h := b.Dx()/factor, b.Dy()/factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func drawCaption(img *image.RGBA, text string) {
	face := basicfont.Face7x13
	y := img.Bounds().Dy() - 6
	if y < face.Ascent {
		y = face.Ascent
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(6), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// ShrinkAll converts every .png file directly inside srcDir
func ShrinkAll(srcDir, dstDir string, opts Options) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", srcDir, err)
	}

	var written []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		dst, err := ShrinkPNG(filepath.Join(srcDir, e.Name()), dstDir, opts)
		if err != nil {
			return written, err
		}
		written = append(written, dst)
	}
	return written, nil
}
