package raster

// DepthScale is the largest 24-bit value; z=1.0 packs to it.
const DepthScale = 1<<24 - 1

// PackDepth24 quantizes z in [0,1] to 24 bits and spreads it little-endian
// over R, G, B. The multiply happens in float32 and the result is truncated,
// not rounded, which is what the downstream loader was built against.
// Out-of-range and NaN inputs are clamped.
func PackDepth24(z float32) (r, g, b, a uint8) {
	if !(z >= 0) {
		z = 0
	} else if z > 1 {
		z = 1
	}
	zi := uint32(z * float32(DepthScale))
	return uint8(zi), uint8(zi >> 8), uint8(zi >> 16), 255
}

// UnpackDepth24 reverses PackDepth24.
func UnpackDepth24(r, g, b uint8) float64 {
	zi := uint32(b)<<16 | uint32(g)<<8 | uint32(r)
	return float64(zi) / DepthScale
}

// PackDepth converts a float depth buffer to its packed RGBA8 form.
func PackDepth(d *Depth32) *RGBA8 {
	out := NewRGBA8(d.Width, d.Height)
	for i, z := range d.Z {
		r, g, b, a := PackDepth24(z)
		j := i * 4
		out.Pix[j] = r
		out.Pix[j+1] = g
		out.Pix[j+2] = b
		out.Pix[j+3] = a
	}
	return out
}

// UnpackDepth decodes a packed buffer back to float depth. Alpha is ignored.
func UnpackDepth(p *RGBA8) *Depth32 {
	d := NewDepth32(p.Width, p.Height, 0)
	for i := range d.Z {
		j := i * 4
		d.Z[i] = float32(UnpackDepth24(p.Pix[j], p.Pix[j+1], p.Pix[j+2]))
	}
	return d
}
