package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wayfarer/wayfarer/pkg/realtime"
)

func RealtimeRouter(router fiber.Router) {
	router.Get("/delays/:tripid", getTripDelays)
	router.Get("/vehicles", getVehiclePositions)
}

func getTripDelays(c *fiber.Ctx) error {
	tripID := c.Params("tripid")

	// Absent or stale entries read as an empty map, never an error
	delays := realtime.GlobalSnapshots.GetTripDelays(tripID)

	return c.JSON(fiber.Map{
		"tripid": tripID,
		"delays": delays,
	})
}

func getVehiclePositions(c *fiber.Ctx) error {
	view := realtime.GlobalSnapshots.VehiclePositions()

	return c.JSON(fiber.Map{
		"recordedat": view.RecordedAt,
		"vehicles":   view.Positions,
	})
}
