package beach

import "fmt"

// SunbedCode returns the canonical code for a grid position, e.g. "R2C3".
// Rows and columns are 1-based.
func SunbedCode(row, col int) string {
	return fmt.Sprintf("R%dC%d", row, col)
}

// GenerateGrid builds a fresh rows×cols sunbed grid in row-major order.
// Every bed starts available with no price adjustment. A zero dimension
// yields an empty slice.
func GenerateGrid(rows, cols int) []Sunbed {
	beds := make([]Sunbed, 0, rows*cols)
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			beds = append(beds, Sunbed{
				Code:   SunbedCode(r, c),
				Row:    r,
				Col:    c,
				Status: SunbedAvailable,
			})
		}
	}
	return beds
}

// ResizeGrid produces the sunbed set for new dimensions, carrying over the
// status and price modifier of any existing bed whose (row, col) position
// still fits inside the new bounds. Beds outside the bounds are dropped,
// new positions start available.
func ResizeGrid(existing []Sunbed, rows, cols int) []Sunbed {
	byPos := make(map[[2]int]Sunbed, len(existing))
	for _, b := range existing {
		byPos[[2]int{b.Row, b.Col}] = b
	}
	beds := GenerateGrid(rows, cols)
	for i := range beds {
		if old, ok := byPos[[2]int{beds[i].Row, beds[i].Col}]; ok {
			beds[i].Status = old.Status
			beds[i].PriceModifier = old.PriceModifier
		}
	}
	return beds
}

// NormalizeSunbeds sanitizes a caller-supplied explicit sunbed list: beds
// with an unknown status fall back to available and a missing code is
// derived from the position.
func NormalizeSunbeds(beds []Sunbed) []Sunbed {
	out := make([]Sunbed, len(beds))
	for i, b := range beds {
		if !ValidSunbedStatus(b.Status) {
			b.Status = SunbedAvailable
		}
		if b.Code == "" {
			b.Code = SunbedCode(b.Row, b.Col)
		}
		out[i] = b
	}
	return out
}
