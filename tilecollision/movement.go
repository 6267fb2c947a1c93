package tilecollision

import "math"

// CollisionBox is a hitbox extent used both to size ProcessEntityMovement's
// sensor spread and by the hitbox test family in hitbox.go.
type CollisionBox struct {
	Left, Top, Right, Bottom float64
}

// angle8 converts a byte-scale angle (0x00..0xFF) to radians, matching the
// source's Math::Cos256/Sin256 lookup (256 steps per full turn).
func angle8(a int) (cos, sin float64) {
	rad := float64(a) * (2 * math.Pi / 256)
	return math.Cos(rad), math.Sin(rad)
}

// ProcessEntityMovement dispatches entity's physics step on its OnGround
// flag: the grounded path runs ProcessPathGrip, the airborne path runs
// ProcessAirCollision, always with isUp false.
func ProcessEntityMovement(w *World, entity *Entity, outer, inner *CollisionBox, plane int, cLayers int) {
	if entity == nil || outer == nil || inner == nil || !entity.TileCollisions {
		return
	}
	if entity.OnGround {
		ProcessPathGrip(w, entity, outer, plane, cLayers)
	} else {
		ProcessAirCollision(w, entity, outer, inner, plane, cLayers, false)
	}
}

// ProcessPathGrip walks entity along its current surface by up to 4 units
// per sub-step. Each sub-step makes one CheckTileCollision probe at the
// edge of outer that faces the current mode's surface and snaps to it;
// there is no sensor spread and no front-clearance sensor. CollisionMode
// becomes RWall for angles strictly between 0x22 and 0x80 and LWall for
// angles strictly between 0x80 and 0xDE; any other angle leaves it
// unchanged, so no sub-step switches into Floor or Roof. A probe that finds
// no surface demotes the entity to airborne.
func ProcessPathGrip(w *World, entity *Entity, outer *CollisionBox, plane int, cLayers int) {
	absSpeed := math.Abs(entity.GroundVel)
	remaining := absSpeed
	for remaining > 0 {
		step := math.Min(4.0, remaining)
		remaining -= step

		cos, sin := angle8(entity.Angle)
		dx := cos * step
		dy := sin * step
		if entity.GroundVel < 0 {
			dx, dy = -dx, -dy
		}

		mode := entity.CollisionMode
		entity.X += dx
		entity.Y += dy

		var tileX, tileY float64
		switch mode {
		case ModeFloor:
			tileX, tileY = 0, outer.Bottom
		case ModeRoof:
			tileX, tileY = 0, outer.Top
		case ModeLWall:
			tileX, tileY = outer.Left, 0
		default:
			tileX, tileY = outer.Right, 0
		}

		hit := CheckTileCollision(w, entity, cLayers, mode, plane, tileX, tileY, true)
		if !hit {
			// The probe lost contact: fall back to air physics for the
			// remainder of this frame.
			entity.OnGround = false
			return
		}

		angle := w.probeAngle(entity, mode, plane, cLayers, tileX, tileY)
		entity.Angle = angle
		switch {
		case angle > 0x22 && angle < 0x80:
			entity.CollisionMode = ModeRWall
		case angle < 0xDE && angle > 0x80:
			entity.CollisionMode = ModeLWall
		default:
			// any other angle leaves CollisionMode unchanged
		}
	}
}

// probeAngle re-queries CollisionAt at the entity's freshly snapped
// position to recover the surface angle CheckTileCollision itself doesn't
// return.
func (w *World) probeAngle(entity *Entity, mode CollisionMode, plane int, cLayers int, xOffset, yOffset float64) int {
	side := SideTop
	switch mode {
	case ModeRoof:
		side = SideBottom
	case ModeLWall:
		side = SideLeft
	case ModeRWall:
		side = SideRight
	}
	angle := w.CollisionAt(int(entity.X+xOffset), int(entity.Y+yOffset), plane, side)
	if angle < 0 {
		return entity.Angle
	}
	return angle
}

// ProcessAirCollision steps the entity by up to 8 units per sub-step (2 when
// the hitbox is small), testing unidirectional sensors for each axis. A
// horizontal hit zeros X velocity and ground velocity; a downward floor hit
// grounds the entity, snaps Y, and projects horizontal speed onto the new
// surface angle (capped at ±24). A ceiling hit whose surface angle lies
// strictly between 0x60 and 0xA0 attaches the entity to the ceiling in
// ModeRoof; any other ceiling hit ends the step with the entity still
// airborne, and no ceiling hit switches to a wall mode.
func ProcessAirCollision(w *World, entity *Entity, outer, inner *CollisionBox, plane int, cLayers int, isUp bool) {
	stepSize := 8.0
	if (outer.Right - outer.Left) < 8 {
		stepSize = 2.0
	}

	vx, vy := entity.VelocityX, entity.VelocityY
	remaining := math.Max(math.Abs(vx), math.Abs(vy))
	if remaining == 0 {
		return
	}
	moveX, moveY := vx, vy

	for remaining > 0 {
		step := math.Min(stepSize, remaining)
		remaining -= step
		frac := step / math.Max(math.Abs(moveX)+math.Abs(moveY), 1e-9)
		entity.X += moveX * frac
		entity.Y += moveY * frac

		if moveX != 0 {
			side := outer.Right
			if moveX < 0 {
				side = outer.Left
			}
			mode := ModeRWall
			if moveX < 0 {
				mode = ModeLWall
			}
			if CheckTileCollision(w, entity, cLayers, mode, plane, side, 0, true) {
				entity.VelocityX = 0
				entity.GroundVel = 0
				moveX = 0
			}
		}

		if !isUp && moveY >= 0 {
			if CheckTileCollision(w, entity, cLayers, ModeFloor, plane, 0, outer.Bottom, true) {
				entity.OnGround = true
				entity.CollisionMode = ModeFloor
				angle := w.probeAngle(entity, ModeFloor, plane, cLayers, 0, outer.Bottom)
				entity.Angle = angle
				cos, _ := angle8(angle)
				proj := moveX
				if cos != 0 {
					proj = moveX / cos
				}
				entity.GroundVel = math.Max(-24, math.Min(24, proj))
				return
			}
		} else if moveY < 0 {
			if CheckTileCollision(w, entity, cLayers, ModeRoof, plane, 0, outer.Top, true) {
				angle := w.probeAngle(entity, ModeRoof, plane, cLayers, 0, outer.Top)
				if angle > 0x60 && angle < 0xA0 {
					entity.OnGround = true
					entity.CollisionMode = ModeRoof
					entity.Angle = angle
				}
				return
			}
		}
	}
}
