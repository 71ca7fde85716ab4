package system

import (
	"log/slog"

	"github.com/younwookim/arcadebody/internal/domain/entity"
	"github.com/younwookim/arcadebody/internal/infrastructure/config"
)

// LoadWorld builds a physics system and its sprites from a SimulationConfig
func LoadWorld(cfg *config.SimulationConfig, logger *slog.Logger) (*PhysicsSystem, []*entity.Sprite) {
	sys := NewPhysicsSystem(cfg.World.Bounds(), NewArcadeMotion(cfg.Physics.Gravity.Vec()), logger)
	sprites := SpawnBodies(sys, cfg.Bodies)
	return sys, sprites
}

// SpawnBodies creates one sprite and body per configured instance and adds the bodies to sys
func SpawnBodies(sys *PhysicsSystem, bodies []config.BodyConfig) []*entity.Sprite {
	var sprites []*entity.Sprite

	for _, bc := range bodies {
		for i := 0; i < bc.Instances(); i++ {
			x := bc.X + float64(i)*bc.Spacing.X
			y := bc.Y + float64(i)*bc.Spacing.Y

			sprite := entity.NewSprite(x, y, bc.Width, bc.Height)
			sprite.AnchorX, sprite.AnchorY = bc.Anchor.X, bc.Anchor.Y
			if bc.Scale != nil {
				sprite.ScaleX, sprite.ScaleY = bc.Scale.X, bc.Scale.Y
			}

			body := entity.NewBody(sprite)
			bc.Apply(body)

			sys.Add(body)
			sprites = append(sprites, sprite)
		}
	}

	return sprites
}
