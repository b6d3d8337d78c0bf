package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		n           int
		want        []float64
	}{
		{"empty", 0, 1, 0, nil},
		{"single", 3, 9, 1, []float64{3}},
		{"unit", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{"symmetric", -1, 1, 3, []float64{-1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Linspace(tt.start, tt.stop, tt.n))
		})
	}
}

func TestLinspaceEndpointsExact(t *testing.T) {
	v := Linspace(0.001, 1.0, 864)
	assert.Len(t, v, 864)
	assert.Equal(t, 0.001, v[0])
	assert.Equal(t, 1.0, v[863])
	for i := 1; i < len(v); i++ {
		assert.Greater(t, v[i], v[i-1])
	}
}

func TestFloat32s(t *testing.T) {
	assert.Equal(t, []float32{0.5, 2}, Float32s([]float64{0.5, 2}))
}
