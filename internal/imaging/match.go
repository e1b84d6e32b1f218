package imaging

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ErrTemplateTooLarge is returned when the template does not fit inside the
// image it is matched against.
var ErrTemplateTooLarge = errors.New("template larger than search image")

// MatchResult is the best alignment of a template inside an image.
type MatchResult struct {
	// Confidence is the normalized correlation coefficient at the best
	// alignment, clamped to [0,1]. Anti-correlated alignments report 0.
	Confidence float64 `json:"confidence"`

	// Offset is the top-left corner of the best alignment, relative to the
	// image's own bounds.
	Offset Point `json:"offset"`
}

// Point represents a 2D point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MatchTemplate slides tmpl over every position where it fits entirely inside
// img and returns the alignment with the highest normalized correlation
// coefficient.
//
// # Algorithm
//
// For each alignment (u,v) the score is
//
//	R(u,v) = Σ T'(x,y,c)·I'(u+x,v+y,c) / sqrt(Σ T'² · Σ I'²)
//
// where T' is the template minus its per-channel mean, I' is the window
// minus its per-channel mean and the sums run over every template pixel and
// the R, G and B channels. This is the three-channel correlation-coefficient
// measure, which tolerates brightness shifts in the background behind the
// icon.
//
// A window or template with zero variance has an undefined score; such
// alignments score 0. Ties keep the first alignment in row-major order.
//
// # Errors
//
// Returns ErrTemplateTooLarge if tmpl is wider or taller than img.
func MatchTemplate(img, tmpl image.Image) (*MatchResult, error) {
	ib := img.Bounds()
	tb := tmpl.Bounds()
	iw, ih := ib.Dx(), ib.Dy()
	tw, th := tb.Dx(), tb.Dy()

	if tw == 0 || th == 0 || tw > iw || th > ih {
		return nil, ErrTemplateTooLarge
	}

	src := channels(img)
	tpl := channels(tmpl)
	n := float64(tw * th)

	// Center the template once; Σ T' = 0 per channel, so the numerator only
	// needs Σ T'·I rather than Σ T'·(I - mean(I)).
	var tMean [3]float64
	for i, v := range tpl {
		tMean[i%3] += v
	}
	for c := range tMean {
		tMean[c] /= n
	}
	var tNorm float64
	for i := range tpl {
		tpl[i] -= tMean[i%3]
		tNorm += tpl[i] * tpl[i]
	}

	best := &MatchResult{Confidence: math.Inf(-1)}

	for v := 0; v <= ih-th; v++ {
		for u := 0; u <= iw-tw; u++ {
			var cross, sq float64
			var sum [3]float64
			for y := 0; y < th; y++ {
				row := ((v+y)*iw + u) * 3
				trow := y * tw * 3
				for k := 0; k < tw*3; k++ {
					p := src[row+k]
					cross += tpl[trow+k] * p
					sq += p * p
					sum[k%3] += p
				}
			}

			wNorm := sq - (sum[0]*sum[0]+sum[1]*sum[1]+sum[2]*sum[2])/n
			score := 0.0
			if denom := math.Sqrt(tNorm * wNorm); denom > 1e-9 {
				score = cross / denom
			}

			if score > best.Confidence {
				best.Confidence = score
				best.Offset = Point{X: u, Y: v}
			}
		}
	}

	best.Confidence = math.Max(0, math.Min(1, best.Confidence))
	return best, nil
}

// channels flattens an image into row-major R, G, B samples in [0,255].
func channels(img image.Image) []float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]float64, 0, w*h*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out = append(out, float64(c.R), float64(c.G), float64(c.B))
		}
	}
	return out
}
