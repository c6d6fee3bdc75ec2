package rest

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	domainKabang "github.com/kabang/kabang/domains/kabang"
	pkgError "github.com/kabang/kabang/pkg/error"
	"github.com/kabang/kabang/pkg/utils"
)

type Kabang struct {
	Service domainKabang.IKabangUsecase
}

func InitRestKabang(app fiber.Router, service domainKabang.IKabangUsecase) Kabang {
	rest := Kabang{Service: service}
	app.Get("/kabangs", rest.List)
	app.Post("/kabangs", rest.Create)
	app.Get("/kabangs/export/json", rest.Export)
	app.Post("/kabangs/import/json", rest.Import)
	app.Get("/kabangs/:id", rest.Get)
	app.Put("/kabangs/:id", rest.Update)
	app.Delete("/kabangs/:id", rest.Delete)

	return rest
}

func (handler *Kabang) List(c *fiber.Ctx) error {
	kabangs, err := handler.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(kabangs)
}

func (handler *Kabang) Get(c *fiber.Ctx) error {
	id := paramID(c)
	kabang, err := handler.Service.Get(c.UserContext(), id)
	utils.PanicIfNeeded(err)

	return c.JSON(kabang)
}

func (handler *Kabang) Create(c *fiber.Ctx) error {
	var request domainKabang.CreateKabangRequest
	parseBody(c, &request)

	kabang, err := handler.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(fiber.StatusCreated).JSON(kabang)
}

func (handler *Kabang) Update(c *fiber.Ctx) error {
	id := paramID(c)
	var request domainKabang.UpdateKabangRequest
	parseBody(c, &request)

	kabang, err := handler.Service.Update(c.UserContext(), id, request)
	utils.PanicIfNeeded(err)

	return c.JSON(kabang)
}

func (handler *Kabang) Delete(c *fiber.Ctx) error {
	id := paramID(c)
	_, err := handler.Service.Delete(c.UserContext(), id)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.MessageResponse{Message: "Kabang deleted successfully"})
}

func (handler *Kabang) Export(c *fiber.Ctx) error {
	bangs, err := handler.Service.Export(c.UserContext())
	utils.PanicIfNeeded(err)

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kabangs.json"`)
	return c.JSON(bangs)
}

func (handler *Kabang) Import(c *fiber.Ctx) error {
	var raw any
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		utils.PanicIfNeeded(pkgError.ValidationError("Invalid JSON body"))
	}
	if _, ok := raw.([]any); !ok {
		utils.PanicIfNeeded(pkgError.ValidationError("Body must be an array of bangs"))
	}

	var bangs []domainKabang.ExportBang
	if err := json.Unmarshal(c.Body(), &bangs); err != nil {
		utils.PanicIfNeeded(pkgError.ValidationError("Invalid bang entry: " + err.Error()))
	}

	result, err := handler.Service.Import(c.UserContext(), bangs)
	utils.PanicIfNeeded(err)

	return c.JSON(result)
}

// paramID reads the numeric :id route parameter.
func paramID(c *fiber.Ctx) int64 {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		utils.PanicIfNeeded(pkgError.ValidationError("Invalid ID format"))
	}
	return int64(id)
}

func parseBody(c *fiber.Ctx, out any) {
	if err := c.BodyParser(out); err != nil {
		utils.PanicIfNeeded(pkgError.ValidationError("Invalid JSON body"))
	}
}
