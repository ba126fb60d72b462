package chart

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the PNG dimensions in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 && height > 0 {
			r.width = width
			r.height = height
		}
	}
}

// WithLabelRotation sets the x-axis label rotation in degrees.
func WithLabelRotation(degrees float64) Option {
	return func(r *Renderer) {
		r.labelRotation = degrees
	}
}
