package sidecar

import (
	"fmt"
	"os"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"

	"rawframes/internal/raster"
)

// WriteNPY stores d as a height×width float64 .npy array. float32 widens
// exactly, so numpy.load(...).astype("float32") equals the raw file.
func WriteNPY(path string, d *raster.Depth32) error {
	data := make([]float64, len(d.Z))
	for i, z := range d.Z {
		data[i] = float64(z)
	}
	m := mat.NewDense(d.Height, d.Width, data)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sidecar: create %s: %w", path, err)
	}
	if err := npyio.Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("sidecar: npy write %s: %w", path, err)
	}
	return f.Close()
}

// ReadNPY loads a 2-D .npy array written by WriteNPY.
func ReadNPY(path string) (*raster.Depth32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sidecar: open %s: %w", path, err)
	}
	defer f.Close()

	var m mat.Dense
	if err := npyio.Read(f, &m); err != nil {
		return nil, fmt.Errorf("sidecar: npy read %s: %w", path, err)
	}

	rows, cols := m.Dims()
	d := raster.NewDepth32(cols, rows, 0)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			d.Set(x, y, float32(m.At(y, x)))
		}
	}
	return d, nil
}
