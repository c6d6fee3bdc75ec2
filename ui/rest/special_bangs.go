package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kabang/kabang/commands"
)

type SpecialBangs struct {
	Registry *commands.Registry
}

func InitRestSpecialBangs(app fiber.Router, registry *commands.Registry) SpecialBangs {
	rest := SpecialBangs{Registry: registry}
	app.Get("/special-bangs", rest.List)

	return rest
}

func (handler *SpecialBangs) List(c *fiber.Ctx) error {
	return c.JSON(handler.Registry.List())
}
