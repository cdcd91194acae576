package meme

import "math"

func floor(f float64) int { return int(math.Floor(f)) }
func ceil(f float64) int  { return int(math.Ceil(f)) }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
