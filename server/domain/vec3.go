package domain

import (
	"errors"
	"math"
)

const Vec3Size = 12 // 3 * float32

// Vec3 はアリーナ内の3D座標・速度を表します。
// Zは奥行きで、プレイヤー側が0、アリーナ奥がマイナスです。
type Vec3 struct {
	X, Y, Z float32
}

var ErrInvalidVec3Data = errors.New("invalid vec3 data: expected 12 bytes")

func ParseVec3(data []byte) (*Vec3, error) {
	if len(data) < Vec3Size {
		return nil, ErrInvalidVec3Data
	}

	return &Vec3{
		X: math.Float32frombits(byteOrder.Uint32(data[0:4])),
		Y: math.Float32frombits(byteOrder.Uint32(data[4:8])),
		Z: math.Float32frombits(byteOrder.Uint32(data[8:12])),
	}, nil
}

func (v Vec3) Encode() []byte {
	buf := make([]byte, Vec3Size)
	v.EncodeTo(buf)
	return buf
}

// EncodeTo は既存バッファの先頭12バイトに書き込みます。
func (v Vec3) EncodeTo(buf []byte) {
	byteOrder.PutUint32(buf[0:4], math.Float32bits(v.X))
	byteOrder.PutUint32(buf[4:8], math.Float32bits(v.Y))
	byteOrder.PutUint32(buf[8:12], math.Float32bits(v.Z))
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Distance は2点間の直線距離を返します。
func Distance(a, b Vec3) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	dz := float64(a.Z - b.Z)
	return float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
}
