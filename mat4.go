package marks

// Mat4 is a 4x4 matrix stored in column-major order, the layout WGSL
// expects for a mat4x4<f32> uniform. Element (row, col) lives at
// index col*4+row.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Orthographic returns a right-handed orthographic projection with a
// 0..1 depth range. The view looks down -Z, so the plane z = -near
// maps to depth 0 and z = -far to depth 1.
func Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	m := Mat4{}
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = 1 / (near - far)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = near / (near - far)
	m[15] = 1
	return m
}

// Translation returns a matrix translating by (x, y, z).
func Translation(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Mul returns the matrix product a*b, so that applying the result to a
// vector is equivalent to applying b first, then a.
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 applies the matrix to a homogeneous vector.
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: a[0]*v.X + a[4]*v.Y + a[8]*v.Z + a[12]*v.W,
		Y: a[1]*v.X + a[5]*v.Y + a[9]*v.Z + a[13]*v.W,
		Z: a[2]*v.X + a[6]*v.Y + a[10]*v.Z + a[14]*v.W,
		W: a[3]*v.X + a[7]*v.Y + a[11]*v.Z + a[15]*v.W,
	}
}

// Inverse returns the inverse of the matrix and true, or the zero
// matrix and false when the matrix is singular. Uses the cofactor
// expansion from the MESA GLU implementation.
func (a Mat4) Inverse() (Mat4, bool) {
	var inv Mat4

	inv[0] = a[5]*a[10]*a[15] - a[5]*a[11]*a[14] -
		a[9]*a[6]*a[15] + a[9]*a[7]*a[14] +
		a[13]*a[6]*a[11] - a[13]*a[7]*a[10]
	inv[4] = -a[4]*a[10]*a[15] + a[4]*a[11]*a[14] +
		a[8]*a[6]*a[15] - a[8]*a[7]*a[14] -
		a[12]*a[6]*a[11] + a[12]*a[7]*a[10]
	inv[8] = a[4]*a[9]*a[15] - a[4]*a[11]*a[13] -
		a[8]*a[5]*a[15] + a[8]*a[7]*a[13] +
		a[12]*a[5]*a[11] - a[12]*a[7]*a[9]
	inv[12] = -a[4]*a[9]*a[14] + a[4]*a[10]*a[13] +
		a[8]*a[5]*a[14] - a[8]*a[6]*a[13] -
		a[12]*a[5]*a[10] + a[12]*a[6]*a[9]
	inv[1] = -a[1]*a[10]*a[15] + a[1]*a[11]*a[14] +
		a[9]*a[2]*a[15] - a[9]*a[3]*a[14] -
		a[13]*a[2]*a[11] + a[13]*a[3]*a[10]
	inv[5] = a[0]*a[10]*a[15] - a[0]*a[11]*a[14] -
		a[8]*a[2]*a[15] + a[8]*a[3]*a[14] +
		a[12]*a[2]*a[11] - a[12]*a[3]*a[10]
	inv[9] = -a[0]*a[9]*a[15] + a[0]*a[11]*a[13] +
		a[8]*a[1]*a[15] - a[8]*a[3]*a[13] -
		a[12]*a[1]*a[11] + a[12]*a[3]*a[9]
	inv[13] = a[0]*a[9]*a[14] - a[0]*a[10]*a[13] -
		a[8]*a[1]*a[14] + a[8]*a[2]*a[13] +
		a[12]*a[1]*a[10] - a[12]*a[2]*a[9]
	inv[2] = a[1]*a[6]*a[15] - a[1]*a[7]*a[14] -
		a[5]*a[2]*a[15] + a[5]*a[3]*a[14] +
		a[13]*a[2]*a[7] - a[13]*a[3]*a[6]
	inv[6] = -a[0]*a[6]*a[15] + a[0]*a[7]*a[14] +
		a[4]*a[2]*a[15] - a[4]*a[3]*a[14] -
		a[12]*a[2]*a[7] + a[12]*a[3]*a[6]
	inv[10] = a[0]*a[5]*a[15] - a[0]*a[7]*a[13] -
		a[4]*a[1]*a[15] + a[4]*a[3]*a[13] +
		a[12]*a[1]*a[7] - a[12]*a[3]*a[5]
	inv[14] = -a[0]*a[5]*a[14] + a[0]*a[6]*a[13] +
		a[4]*a[1]*a[14] - a[4]*a[2]*a[13] -
		a[12]*a[1]*a[6] + a[12]*a[2]*a[5]
	inv[3] = -a[1]*a[6]*a[11] + a[1]*a[7]*a[10] +
		a[5]*a[2]*a[11] - a[5]*a[3]*a[10] -
		a[9]*a[2]*a[7] + a[9]*a[3]*a[6]
	inv[7] = a[0]*a[6]*a[11] - a[0]*a[7]*a[10] -
		a[4]*a[2]*a[11] + a[4]*a[3]*a[10] +
		a[8]*a[2]*a[7] - a[8]*a[3]*a[6]
	inv[11] = -a[0]*a[5]*a[11] + a[0]*a[7]*a[9] +
		a[4]*a[1]*a[11] - a[4]*a[3]*a[9] -
		a[8]*a[1]*a[7] + a[8]*a[3]*a[5]
	inv[15] = a[0]*a[5]*a[10] - a[0]*a[6]*a[9] -
		a[4]*a[1]*a[10] + a[4]*a[2]*a[9] +
		a[8]*a[1]*a[6] - a[8]*a[2]*a[5]

	det := a[0]*inv[0] + a[1]*inv[4] + a[2]*inv[8] + a[3]*inv[12]
	if det == 0 {
		return Mat4{}, false
	}
	det = 1 / det
	for i := range inv {
		inv[i] *= det
	}
	return inv, true
}
