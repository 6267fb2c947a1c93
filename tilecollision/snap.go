package tilecollision

// Entity is the minimal position/velocity surface the snap and movement
// queries read and write. A host entity implementation embeds or adapts to
// this rather than the engine depending on any particular gameplay type.
type Entity struct {
	X, Y           float64
	VelocityX      float64
	VelocityY      float64
	GroundVel      float64
	Angle          int
	OnGround       bool
	CollisionMode  CollisionMode
	TileCollisions bool
}

// CheckTileCollision snaps entity to the first tile surface found in mode
// along the appropriate axis, scanning up to three tile positions outward
// from the entity's current cell. Returns whether a surface was found;
// writes the snapped coordinate back into entity when setPos is true.
func CheckTileCollision(w *World, entity *Entity, cLayers int, mode CollisionMode, plane int, xOffset, yOffset float64, setPos bool) bool {
	if plane < 0 || plane >= len(w.TileCfg) {
		return false
	}
	tileCfgBase := w.TileCfg[plane]

	posX := int(xOffset + entity.X)
	posY := int(yOffset + entity.Y)

	isVertical := mode == ModeFloor || mode == ModeRoof
	isPositive := mode == ModeFloor || mode == ModeLWall
	targetBit := 2
	if mode == ModeFloor {
		targetBit = 1
	}

	mainTileSize, crossTileSize := TileWidth, TileHeight
	if isVertical {
		mainTileSize, crossTileSize = TileHeight, TileWidth
	}
	step := mainTileSize
	if !isPositive {
		step = -mainTileSize
	}

	collided := false
	layerID := 1
	for _, layer := range w.Layers {
		mask := layerID
		layerID <<= 1
		if !layer.Collideable || cLayers&mask == 0 {
			continue
		}

		colX := posX - layer.OffsetX
		colY := posY - layer.OffsetY

		mainCoord, crossCoord := colX, colY
		crossMax := layer.Height * crossTileSize
		if isVertical {
			mainCoord, crossCoord = colY, colX
			crossMax = layer.Width * crossTileSize
		}

		if crossCoord >= 0 && crossCoord < crossMax {
			curTilePos := floorTo(mainCoord, mainTileSize)
			if isPositive {
				curTilePos -= mainTileSize
			} else {
				curTilePos += mainTileSize
			}
			mainMax := layer.Width * mainTileSize
			if isVertical {
				mainMax = layer.Height * mainTileSize
			}

			for i := 0; i < 3; i, curTilePos = i+1, curTilePos+step {
				if curTilePos < 0 || curTilePos >= mainMax {
					continue
				}
				tx, ty := curTilePos/TileWidth, colY/TileHeight
				if isVertical {
					tx, ty = colX/TileWidth, curTilePos/TileHeight
				}
				tile := layer.at(tx, ty)
				collBits := tile.CollisionA()
				if plane != 0 {
					collBits = tile.CollisionB()
				}
				if tile.Empty() || collBits&targetBit == 0 {
					continue
				}
				tc := &tileCfgBase[tile.ID()+tile.flipOffset(w.TileCount)]
				maskCol := modeColumn(tc, mode)
				h := maskCol[crossCoord&0xF]
				if h >= 0xFF {
					continue
				}
				snapPos := curTilePos + int(h)
				penetrating := mainCoord >= snapPos
				if !isPositive {
					penetrating = mainCoord <= snapPos
				}
				if penetrating && abs(mainCoord-snapPos) <= 14 {
					collided = true
					if isVertical {
						colY = snapPos
					} else {
						colX = snapPos
					}
					break
				}
			}
		}

		if setPos && collided {
			if isVertical {
				entity.Y = float64(colY+layer.OffsetY) - yOffset
			} else {
				entity.X = float64(colX+layer.OffsetX) - xOffset
			}
		}
		posX = layer.OffsetX + colX
		posY = layer.OffsetY + colY
	}
	return collided
}

// CheckTileGrip behaves like CheckTileCollision but only snaps when the
// distance to the surface is within tolerance — the "ground stick" used to
// keep a fast-moving entity glued to a slope instead of flying off it.
func CheckTileGrip(w *World, entity *Entity, cLayers int, mode CollisionMode, plane int, xOffset, yOffset, tolerance float64) bool {
	if plane < 0 || plane >= len(w.TileCfg) {
		return false
	}
	tileCfgBase := w.TileCfg[plane]

	posX := int(xOffset + entity.X)
	posY := int(yOffset + entity.Y)

	isVertical := mode == ModeFloor || mode == ModeRoof
	isPositive := mode == ModeFloor || mode == ModeLWall
	targetBit := 2
	if mode == ModeFloor {
		targetBit = 1
	}

	mainTileSize, crossTileSize := TileWidth, TileHeight
	if isVertical {
		mainTileSize, crossTileSize = TileHeight, TileWidth
	}
	step := mainTileSize
	if !isPositive {
		step = -mainTileSize
	}

	collided := false
	layerID := 1
	for _, layer := range w.Layers {
		mask := layerID
		layerID <<= 1
		if !layer.Collideable || cLayers&mask == 0 {
			continue
		}

		colX := posX - layer.OffsetX
		colY := posY - layer.OffsetY

		mainCoord, crossCoord := colX, colY
		crossMax := layer.Height * crossTileSize
		if isVertical {
			mainCoord, crossCoord = colY, colX
			crossMax = layer.Width * crossTileSize
		}

		if crossCoord >= 0 && crossCoord < crossMax {
			curTilePos := floorTo(mainCoord, mainTileSize)
			if isPositive {
				curTilePos -= mainTileSize
			} else {
				curTilePos += mainTileSize
			}
			mainMax := layer.Width * mainTileSize
			if isVertical {
				mainMax = layer.Height * mainTileSize
			}

			for i := 0; i < 3; i, curTilePos = i+1, curTilePos+step {
				if curTilePos < 0 || curTilePos >= mainMax {
					continue
				}
				tx, ty := curTilePos/TileWidth, colY/TileHeight
				if isVertical {
					tx, ty = colX/TileWidth, curTilePos/TileHeight
				}
				tile := layer.at(tx, ty)
				collBits := tile.CollisionA()
				if plane != 0 {
					collBits = tile.CollisionB()
				}
				if tile.Empty() || collBits&targetBit == 0 {
					continue
				}
				tc := &tileCfgBase[tile.ID()+tile.flipOffset(w.TileCount)]
				maskCol := modeColumn(tc, mode)
				h := maskCol[crossCoord&0xF]
				if h >= 0xFF {
					break
				}
				snapPos := curTilePos + int(h)
				if float64(abs(mainCoord-snapPos)) <= tolerance {
					collided = true
					if isVertical {
						colY = snapPos
					} else {
						colX = snapPos
					}
				}
				break
			}
		}

		if collided {
			if isVertical {
				entity.Y = float64(colY+layer.OffsetY) - yOffset
			} else {
				entity.X = float64(colX+layer.OffsetX) - xOffset
			}
		}
		posX = layer.OffsetX + colX
		posY = layer.OffsetY + colY
	}
	return collided
}

func modeColumn(tc *TileConfig, mode CollisionMode) []uint8 {
	switch mode {
	case ModeFloor:
		return tc.CollisionTop[:]
	case ModeRoof:
		return tc.CollisionBottom[:]
	case ModeLWall:
		return tc.CollisionLeft[:]
	default:
		return tc.CollisionRight[:]
	}
}

func floorTo(v, size int) int {
	if v >= 0 {
		return (v / size) * size
	}
	return -(((-v) + size - 1) / size) * size
}
