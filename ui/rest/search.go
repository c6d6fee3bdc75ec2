package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/kabang/kabang/core/config"
	domainSearch "github.com/kabang/kabang/domains/search"
	"github.com/kabang/kabang/pkg/utils"
)

type Search struct {
	Service    domainSearch.ISearchUsecase
	Suggestion domainSearch.ISuggestionUsecase
	Config     config.SearchConfig
}

func InitRestSearch(app fiber.Router, service domainSearch.ISearchUsecase, suggestion domainSearch.ISuggestionUsecase, cfg config.SearchConfig) Search {
	rest := Search{Service: service, Suggestion: suggestion, Config: cfg}
	app.Get("/search", rest.Search)
	app.Get("/suggestions", rest.Suggestions)

	return rest
}

func (handler *Search) Search(c *fiber.Ctx) error {
	res, err := handler.Service.Resolve(c.UserContext(), c.Query("q"))
	utils.PanicIfNeeded(err)

	switch res.Kind {
	case domainSearch.ResolutionCommand:
		c.Set(fiber.HeaderCacheControl, "no-store")
		if res.Outcome.IsRedirect() {
			return c.Redirect(res.Outcome.Location, fiber.StatusTemporaryRedirect)
		}
		page, err := renderOutcome(*res.Outcome, handler.Config.DashboardPath)
		utils.PanicIfNeeded(err)
		c.Type("html", "utf-8")
		return c.Send(page)
	case domainSearch.ResolutionDashboard:
		c.Set(fiber.HeaderCacheControl, "no-store")
	default:
		c.Set(fiber.HeaderCacheControl, fmt.Sprintf("private, max-age=%d", handler.Config.RedirectMaxAge))
	}
	return c.Redirect(res.Location, fiber.StatusTemporaryRedirect)
}

func (handler *Search) Suggestions(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", handler.Config.SuggestionLimit)
	suggestions := handler.Suggestion.Suggest(c.UserContext(), c.Query("q"), limit)

	c.Set(fiber.HeaderCacheControl, fmt.Sprintf("private, max-age=%d", handler.Config.SuggestionMaxAge))
	return c.JSON(suggestions)
}
