package dsp

import "math"

// FFT computes the in-place radix-2 discrete Fourier transform of x.
// len(x) must be a power of two.
func FFT(x []complex128) {
	transform(x, false)
}

// IFFT computes the in-place inverse transform of x, including the 1/N
// scaling. len(x) must be a power of two.
func IFFT(x []complex128) {
	transform(x, true)
	scale := 1 / float64(len(x))
	for i := range x {
		x[i] = complex(real(x[i])*scale, imag(x[i])*scale)
	}
}

func transform(x []complex128, inverse bool) {
	n := len(x)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	sign := -1.0
	if inverse {
		sign = 1.0
	}
	for length := 2; length <= n; length <<= 1 {
		angle := sign * 2 * math.Pi / float64(length)
		wl := complex(math.Cos(angle), math.Sin(angle))
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			half := length / 2
			for k := 0; k < half; k++ {
				even := x[start+k]
				odd := x[start+k+half] * w
				x[start+k] = even + odd
				x[start+k+half] = even - odd
				w *= wl
			}
		}
	}
}
