package core

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the vector as [x, y, z]
func (v Vec3) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{v.X, v.Y, v.Z})
}

// UnmarshalJSON decodes a vector written as [x, y, z]
func (v *Vec3) UnmarshalJSON(data []byte) error {
	var xyz []float64
	if err := json.Unmarshal(data, &xyz); err != nil {
		return fmt.Errorf("while decoding vector: %w", err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("vector needs 3 components, got %d", len(xyz))
	}
	*v = NewVec3(xyz[0], xyz[1], xyz[2])
	return nil
}
