package routes

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/wayfarer/wayfarer/pkg/aggregator/global"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

func RoutingRouter(router fiber.Router) {
	router.Get("/", getRoutes)
}

func getRoutes(c *fiber.Ctx) error {
	request, err := parseRouteRequest(c)
	if err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	options, err := global.GlobalAggregator.Route(c.UserContext(), request)
	if err != nil {
		if errors.Is(err, tdf.ErrInvalidRequest) {
			c.SendStatus(fiber.StatusBadRequest)
		} else {
			c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	optionsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, options)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(optionsReduced)
}

func parseRouteRequest(c *fiber.Ctx) (*tdf.RouteRequest, error) {
	originLatitude, originLongitude, err := parseCoordinate(c.Query("from"))
	if err != nil {
		return nil, err
	}

	destinationLatitude, destinationLongitude, err := parseCoordinate(c.Query("to"))
	if err != nil {
		return nil, err
	}

	maxTransfers, err := strconv.Atoi(c.Query("maxtransfers", "3"))
	if err != nil {
		return nil, errors.New("Parameter maxtransfers should be an integer")
	}

	maxWalk, err := strconv.ParseFloat(c.Query("maxwalk", "1000"), 64)
	if err != nil {
		return nil, errors.New("Parameter maxwalk should be a number")
	}

	request := &tdf.RouteRequest{
		OriginLatitude:        originLatitude,
		OriginLongitude:       originLongitude,
		DestinationLatitude:   destinationLatitude,
		DestinationLongitude:  destinationLongitude,
		MaxTransfers:          maxTransfers,
		MaxWalkDistanceMeters: maxWalk,
		Budget:                tdf.BudgetPreference(c.Query("budget", string(tdf.BudgetPreferenceBalanced))),
	}

	if modesQuery := c.Query("modes"); modesQuery != "" {
		for _, mode := range strings.Split(modesQuery, ",") {
			request.Modes = append(request.Modes, tdf.TransportMode(mode))
		}
	}

	if datetimeQuery := c.Query("datetime"); datetimeQuery != "" {
		departureTime, err := time.Parse(time.RFC3339, datetimeQuery)
		if err != nil {
			return nil, errors.New("Parameter datetime should be RFC3339 formatted")
		}
		request.DepartureTime = departureTime
	}

	return request, nil
}

func parseCoordinate(query string) (float64, float64, error) {
	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("Coordinates must be lat,lng pairs")
	}

	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, errors.New("Coordinates must be lat,lng pairs")
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, errors.New("Coordinates must be lat,lng pairs")
	}

	return latitude, longitude, nil
}
