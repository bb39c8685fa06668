// Package sward procedurally places, animates, and renders fields of
// grass for 2D games built on [Ebitengine].
//
// Grass is simulated per tile: blades are grouped into fixed-size tiles,
// tile layouts are deduplicated across the field to bound memory, and
// rendered tile images are cached by layout and wind rotation so that an
// undisturbed meadow costs little more than a tilemap blit. Tiles react
// to radial bending forces, sway under a caller-supplied wind rotation
// function, cast optional ground shadows, and can catch fire. Flames
// spread to neighboring tiles over time and burned-out tiles are removed
// from the field.
//
// # Quick start
//
//	blades, err := sward.LoadBlades(assets, "grass")
//	if err != nil {
//		log.Fatal(err)
//	}
//	field := sward.NewField(blades, sward.DefaultConfig())
//	for gx := 0; gx < 40; gx++ {
//		field.Place(gx, 10, 12, []int{0, 1, 2})
//	}
//
// Then, inside the game loop:
//
//	field.ApplyForce(playerPos, 10, 25)     // bend grass around the player
//	field.UpdateRender(screen, dt, cameraOffset, breeze.Rotation)
//
// A Field is strictly single-threaded: every mutation happens inside
// UpdateRender or between frames on the same goroutine.
//
// [Ebitengine]: https://ebitengine.org
package sward
