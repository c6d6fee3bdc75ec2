package rest

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	domainCache "github.com/kabang/kabang/domains/cache"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/utils"
)

type Cache struct {
	Service domainCache.ICacheUsecase
}

func InitRestCache(app fiber.Router, service domainCache.ICacheUsecase) Cache {
	rest := Cache{Service: service}
	app.Get("/cache/stats", rest.GetStats)
	app.Post("/cache/clear", rest.Clear)
	app.Post("/cache/sync", rest.Sync)

	return rest
}

func (handler *Cache) GetStats(c *fiber.Ctx) error {
	stats, err := handler.Service.GetStats(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Cache stats retrieved",
		Results: stats,
	})
}

func (handler *Cache) Clear(c *fiber.Ctx) error {
	err := handler.Service.Clear(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Cache cleared successfully",
	})
}

func (handler *Cache) Sync(c *fiber.Ctx) error {
	outcome, err := handler.Service.Sync(c.UserContext())
	utils.PanicIfNeeded(err)

	res := utils.ResponseData{
		Status:  http.StatusOK,
		Code:    "SUCCESS",
		Message: outcome.Message,
		Results: outcome,
	}
	if outcome.Level == domainSearch.LevelError {
		res.Status = http.StatusServiceUnavailable
		res.Code = "SERVICE_UNAVAILABLE"
	}
	return c.Status(res.Status).JSON(res)
}
