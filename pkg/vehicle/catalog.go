package vehicle

import "image/color"

// Spec describes a selectable vehicle: its display name, the speed
// multiplier it contributes to the speed model, and its body color for the
// procedural sprite.
type Spec struct {
	Name            string
	SpeedMultiplier float64
	Body            color.RGBA
}

// Catalog is the selectable vehicle roster. The index into this slice is the
// externally supplied vehicle selection.
var Catalog = []Spec{
	{Name: "Hatchback", SpeedMultiplier: 1.0, Body: color.RGBA{220, 20, 20, 255}},
	{Name: "Coupe", SpeedMultiplier: 1.1, Body: color.RGBA{30, 90, 200, 255}},
	{Name: "Roadster", SpeedMultiplier: 1.2, Body: color.RGBA{240, 180, 20, 255}},
	{Name: "Camper Van", SpeedMultiplier: 0.85, Body: color.RGBA{70, 150, 80, 255}},
	{Name: "Super GT", SpeedMultiplier: 1.35, Body: color.RGBA{140, 40, 180, 255}},
}

// Multipliers returns the per-vehicle multiplier table for the speed model.
func Multipliers() []float64 {
	out := make([]float64, len(Catalog))
	for i, s := range Catalog {
		out[i] = s.SpeedMultiplier
	}
	return out
}

// ByIndex returns the spec for a selection, falling back to the first entry
// when the index is out of range.
func ByIndex(i int) Spec {
	if i < 0 || i >= len(Catalog) {
		return Catalog[0]
	}
	return Catalog[i]
}
