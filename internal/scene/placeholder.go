package scene

import "rawframes/internal/raster"

// Placeholder renders the five buffers the renderer streams per frame.
// Only color varies; the rest are flat and exist to get shape and size right.
type Placeholder struct {
	color *Gradient
}

// NewPlaceholder returns a placeholder generator whose color buffer is the
// scrolling gradient over the same frame count.
func NewPlaceholder(w, h, frames int) *Placeholder {
	return &Placeholder{color: NewGradient(w, h, frames)}
}

func (p *Placeholder) Kind() Kind       { return KindPlaceholder }
func (p *Placeholder) Frames() int      { return p.color.frames }
func (p *Placeholder) Size() (int, int) { return p.color.Size() }

func (p *Placeholder) flat(v uint8) *raster.RGBA8 {
	w, h := p.Size()
	b := raster.NewRGBA8(w, h)
	b.Fill(v)
	return b
}

func (p *Placeholder) Render(i int) ([]Output, error) {
	if err := checkFrame(p, i); err != nil {
		return nil, err
	}
	specs, _ := Layout(KindPlaceholder, i)
	return []Output{
		{FileSpec: specs[0], RGBA: p.color.Color(i)},
		{FileSpec: specs[1], RGBA: p.flat(PlaceholderDepth)},
		{FileSpec: specs[2], RGBA: p.flat(PlaceholderNormal)},
		{FileSpec: specs[3], RGBA: p.flat(PlaceholderAlbedo)},
		{FileSpec: specs[4], RGBA: p.flat(PlaceholderMotion)},
	}, nil
}
