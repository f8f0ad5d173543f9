// Package colors implements the color models used to study perceptual
// color distance: gamma-encoded and linear sRGB, YIQ, HSV, HLS and CIE Lab
// under D65 with the ΔE76 and ΔE2000 metrics.
//
// Values are immutable and validated at construction. Conversions are
// explicit functions named after their source and target model; nothing is
// converted implicitly. Every model defines a Distance to values of the same
// model, normalized to [0,1].
package colors
