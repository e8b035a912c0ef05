package application

import "spearhunt/server/domain"

func vec3(x, y, z float32) domain.Vec3 {
	return domain.Vec3{X: x, Y: y, Z: z}
}
