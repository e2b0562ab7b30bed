// Package components defines the ECS components for spray droplets.
package components

// Position is a droplet's location in world space.
type Position struct {
	X, Y, Z float32
}

// Velocity is a droplet's velocity in world units per second.
type Velocity struct {
	X, Y, Z float32
}

// Sprite holds a droplet's visual attributes.
type Sprite struct {
	Alpha float32
	Size  float32
	Phase float32 // random offset for the lateral drift oscillator
}

// Lifetime tracks a droplet's pool slot state.
// Slots are pre-allocated; Active toggles recycling, entities are never removed.
type Lifetime struct {
	Age    float32
	Active bool
}
