package export

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"os"
	"sync"

	"golang.org/x/image/draw"
)

// DefaultMaxFrames bounds a recording at roughly twenty seconds of 30 fps.
const DefaultMaxFrames = 600

// GIFRecorder accumulates frames, scaled to a fixed width and dithered into
// the Plan 9 palette.
type GIFRecorder struct {
	mu        sync.Mutex
	frames    []*image.Paletted
	delays    []int
	delay     int
	width     int
	maxFrames int
}

// NewGIFRecorder records frames of the given width in pixels (zero keeps the
// source size) shown for delay hundredths of a second each.
func NewGIFRecorder(width, delay, maxFrames int) *GIFRecorder {
	if delay <= 0 {
		delay = 3
	}
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return &GIFRecorder{width: width, delay: delay, maxFrames: maxFrames}
}

// Add quantizes a copy of img and appends it.
func (r *GIFRecorder) Add(img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return ErrEmpty
	}
	dst := b.Sub(b.Min)
	if r.width > 0 && r.width != b.Dx() {
		h := b.Dy() * r.width / b.Dx()
		dst = image.Rect(0, 0, r.width, max(h, 1))
	}

	src := img
	if dst.Size() != b.Size() {
		scaled := image.NewRGBA(dst)
		draw.ApproxBiLinear.Scale(scaled, dst, img, b, draw.Src, nil)
		src = scaled
	}
	p := image.NewPaletted(dst, palette.Plan9)
	draw.FloydSteinberg.Draw(p, dst, src, src.Bounds().Min)

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) >= r.maxFrames {
		return ErrRecording
	}
	r.frames = append(r.frames, p)
	r.delays = append(r.delays, r.delay)
	return nil
}

func (r *GIFRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *GIFRecorder) Full() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames) >= r.maxFrames
}

// Encode writes the recording as a looping animation.
func (r *GIFRecorder) Encode(w io.Writer) error {
	r.mu.Lock()
	anim := gif.GIF{
		Image:     append([]*image.Paletted(nil), r.frames...),
		Delay:     append([]int(nil), r.delays...),
		LoopCount: 0,
	}
	r.mu.Unlock()
	if len(anim.Image) == 0 {
		return ErrEmpty
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gif: %w", err)
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode gif: %w", err)
	}
	return f.Close()
}

// Reset drops every recorded frame.
func (r *GIFRecorder) Reset() {
	r.mu.Lock()
	r.frames, r.delays = nil, nil
	r.mu.Unlock()
}
