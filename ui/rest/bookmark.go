package rest

import (
	"github.com/gofiber/fiber/v2"
	domainBookmark "github.com/kabang/kabang/domains/bookmark"
	"github.com/kabang/kabang/pkg/utils"
)

type Bookmark struct {
	Service domainBookmark.IBookmarkUsecase
}

func InitRestBookmark(app fiber.Router, service domainBookmark.IBookmarkUsecase) Bookmark {
	rest := Bookmark{Service: service}
	app.Get("/bookmarks", rest.List)
	app.Post("/bookmarks", rest.Create)
	app.Get("/bookmarks/:id", rest.Get)
	app.Put("/bookmarks/:id", rest.Update)
	app.Delete("/bookmarks/:id", rest.Delete)

	return rest
}

func (handler *Bookmark) List(c *fiber.Ctx) error {
	bookmarks, err := handler.Service.List(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(bookmarks)
}

func (handler *Bookmark) Get(c *fiber.Ctx) error {
	bookmark, err := handler.Service.Get(c.UserContext(), paramID(c))
	utils.PanicIfNeeded(err)

	return c.JSON(bookmark)
}

func (handler *Bookmark) Create(c *fiber.Ctx) error {
	var request domainBookmark.CreateBookmarkRequest
	parseBody(c, &request)

	bookmark, err := handler.Service.Create(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(fiber.StatusCreated).JSON(bookmark)
}

func (handler *Bookmark) Update(c *fiber.Ctx) error {
	id := paramID(c)
	var request domainBookmark.UpdateBookmarkRequest
	parseBody(c, &request)

	bookmark, err := handler.Service.Update(c.UserContext(), id, request)
	utils.PanicIfNeeded(err)

	return c.JSON(bookmark)
}

func (handler *Bookmark) Delete(c *fiber.Ctx) error {
	_, err := handler.Service.Delete(c.UserContext(), paramID(c))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.MessageResponse{Message: "Bookmark deleted successfully"})
}
