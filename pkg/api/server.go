package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wayfarer/wayfarer/pkg/api/routes"
	"github.com/wayfarer/wayfarer/pkg/http_server"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(http_server.NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.RoutingRouter(group.Group("/routes"))
	routes.PlannerRouter(group.Group("/planner"))
	routes.RealtimeRouter(group.Group("/realtime"))
	routes.StopsRouter(group.Group("/stops"))

	return webApp.Listen(listen)
}
