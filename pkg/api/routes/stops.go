package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/wayfarer/wayfarer/pkg/graphstore"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

func StopsRouter(router fiber.Router) {
	router.Get("/", listNearbyStops)
}

func listNearbyStops(c *fiber.Ctx) error {
	latitude, longitude, err := parseCoordinate(c.Query("near"))
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	radius, err := strconv.ParseFloat(c.Query("radius", "1000"), 64)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Parameter radius should be a number",
		})
	}

	store := graphstore.MongoSource{}

	stops, err := store.FindNearbyStops(c.UserContext(), tdf.NewLocation(latitude, longitude), radius, 25)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	stopsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stops)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(stopsReduced)
}
