package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/wayfarer/wayfarer/pkg/graphstore"
	"github.com/wayfarer/wayfarer/pkg/planner"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

func PlannerRouter(router fiber.Router) {
	router.Get("/", getPlannedJourney)
}

// getPlannedJourney exposes the raw RAPTOR planner for transit-only clients.
func getPlannedJourney(c *fiber.Ctx) error {
	request, err := parseRouteRequest(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	journeyPlanner := &planner.Planner{
		Store: graphstore.MongoSource{},
	}

	journey, err := journeyPlanner.FindRoute(c.UserContext(), request)
	if err != nil {
		if errors.Is(err, tdf.ErrNoRouteFound) {
			c.SendStatus(fiber.StatusNotFound)
		} else {
			c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	journeyReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, journey)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(journeyReduced)
}
