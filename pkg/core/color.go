package core

import "math"

// intensity is the channel range kept before byte scaling, so 1.0 maps to 255 not 256
var intensity = Interval{Min: 0.000, Max: 0.999}

// LinearToGamma applies the gamma-2 transfer function (square root)
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// RGB8 is a quantized color ready for output
type RGB8 struct {
	R, G, B uint8
}

// ColorToRGB8 gamma-corrects a linear color, clamps each channel to [0, 0.999]
// and scales it to a byte
func ColorToRGB8(c Color) RGB8 {
	return RGB8{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
	}
}

func quantize(linear float64) uint8 {
	return uint8(255.999 * intensity.Clamp(LinearToGamma(linear)))
}
