package graphics

import "github.com/chewxy/math32"

// Matrix is a 4x4 column-major matrix: element 4*col+row.
type Matrix [16]float32

func MatrixIdentity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// MatrixOrthographic maps the box [left,right]x[bottom,top]x[near,far] onto
// clip space. Passing top < bottom gives a y-down window projection.
func MatrixOrthographic(left, right, bottom, top, near, far float32) Matrix {
	lr := 1 / (left - right)
	bt := 1 / (bottom - top)
	nf := 1 / (near - far)

	var m Matrix
	m[0] = -2 * lr
	m[5] = -2 * bt
	m[10] = 2 * nf
	m[12] = (left + right) * lr
	m[13] = (top + bottom) * bt
	m[14] = (far + near) * nf
	m[15] = 1
	return m
}

// MatrixPerspective builds a projection from a vertical field of view in
// radians.
func MatrixPerspective(fovy, aspect, near, far float32) Matrix {
	f := 1 / math32.Tan(fovy/2)
	nf := 1 / (near - far)

	var m Matrix
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) * nf
	m[11] = -1
	m[14] = 2 * far * near * nf
	return m
}

// MatrixTranslate returns a translation matrix.
func MatrixTranslate(x, y, z float32) Matrix {
	m := MatrixIdentity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// MatrixScale returns a scaling matrix.
func MatrixScale(x, y, z float32) Matrix {
	m := MatrixIdentity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// MatrixLookAt returns a view matrix for a camera at eye facing target.
func MatrixLookAt(eye, target, up [3]float32) Matrix {
	f := normalize3(sub3(target, eye))
	s := normalize3(cross3(f, up))
	u := cross3(s, f)

	m := MatrixIdentity()
	m[0], m[4], m[8] = s[0], s[1], s[2]
	m[1], m[5], m[9] = u[0], u[1], u[2]
	m[2], m[6], m[10] = -f[0], -f[1], -f[2]
	m[12] = -dot3(s, eye)
	m[13] = -dot3(u, eye)
	m[14] = dot3(f, eye)
	return m
}

// Mul returns m*o, so o is applied first.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[4*k+row] * o[4*col+k]
			}
			out[4*col+row] = sum
		}
	}
	return out
}

// Transform applies m to the point (x, y, z, 1).
func (m Matrix) Transform(x, y, z float32) (float32, float32, float32, float32) {
	return m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15]
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot3(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize3(v [3]float32) [3]float32 {
	l := math32.Sqrt(dot3(v, v))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
