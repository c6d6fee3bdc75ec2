package rest

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const dashboardPlaceholder = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Kabang Dashboard</title></head>
<body><h1>Kabang Dashboard</h1><p>No dashboard build is configured. Set APP_DASHBOARD_DIR to serve one.</p></body></html>
`

// InitRestDashboard serves the dashboard build from dir under path, falling
// back to index.html for client-side routes. Without a build directory a
// placeholder page is served.
func InitRestDashboard(app fiber.Router, path, dir string) {
	index := filepath.Join(dir, "index.html")
	if dir == "" {
		app.Get(path, servePlaceholder)
		app.Get(path+"/*", servePlaceholder)
		return
	}
	if _, err := os.Stat(index); err != nil {
		logrus.WithError(err).Warnf("[REST] Dashboard build not found in %s", dir)
	}

	app.Static(path, dir, fiber.Static{Index: "index.html"})
	app.Get(path+"/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}

func servePlaceholder(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(dashboardPlaceholder)
}
