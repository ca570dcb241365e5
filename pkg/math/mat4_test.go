package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(Vec3{5, 10, 15})
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScaleThenTranslate(t *testing.T) {
	// Translation applies first, then scale: p' = s * (p + t).
	m := Scale(2).Mul(Translate(Vec3{-1, -1, -1}))
	got := m.TransformVec3(Vec3{2, 3, 4})
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformVec3 = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/2), 1, 0.1, 100)
	if math.Abs(float64(m[0]-1)) > 1e-5 || math.Abs(float64(m[5]-1)) > 1e-5 {
		t.Errorf("90 degree FOV should give unit focal terms, got %f %f", m[0], m[5])
	}
	if m[11] != -1 {
		t.Errorf("expected m[11] = -1, got %f", m[11])
	}
}

func TestLookAtOrigin(t *testing.T) {
	view := LookAt(Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0})
	got := view.TransformVec3(Vec3{})
	if math.Abs(float64(got.Z+5)) > 1e-5 || got.X != 0 || got.Y != 0 {
		t.Errorf("origin in view space = %v, want (0, 0, -5)", got)
	}
}
