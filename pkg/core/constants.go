package core

// Epsilon is the tolerance used for every floating point comparison in the engine:
// minimum accepted hit distance, parallel-ray rejection, barycentric slack, and the
// offset applied to shadow, reflected and transmitted ray origins.
const Epsilon = 1e-5

// Colors shared by the loaders and the shading engine.
var (
	Black = Vec3{0, 0, 0}
	White = Vec3{1, 1, 1}
)
