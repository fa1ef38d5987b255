package core

import (
	"encoding/json"
	"testing"
)

func TestVec3_JSON(t *testing.T) {
	data, err := json.Marshal(NewVec3(13, 2, -0.5))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[13,2,-0.5]" {
		t.Errorf("Expected [13,2,-0.5], got %s", data)
	}

	var v Vec3
	if err := json.Unmarshal([]byte("[1, 2.5, 3]"), &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !v.Equals(NewVec3(1, 2.5, 3)) {
		t.Errorf("Expected (1, 2.5, 3), got %v", v)
	}

	for _, bad := range []string{"[1, 2]", "[1, 2, 3, 4]", `{"x": 1}`, `"up"`} {
		if err := json.Unmarshal([]byte(bad), &v); err == nil {
			t.Errorf("Expected error decoding %s", bad)
		}
	}
}
