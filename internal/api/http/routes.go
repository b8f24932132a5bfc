package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/weatherpick/weatherpick/internal/advice"
	"github.com/weatherpick/weatherpick/internal/upstream"
	"github.com/weatherpick/weatherpick/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, resolver *weather.Resolver, advisor *advice.Generator) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/now", func(c *fiber.Ctx) error {
		var (
			snapshot weather.Snapshot
			err      error
		)

		switch {
		case c.Query("region") != "":
			snapshot, err = resolver.ResolveByPlace(c.UserContext(), c.Query("region"))
		case c.Query("lon") != "" && c.Query("lat") != "":
			q, perr := parseCoordQuery(c)
			if perr != nil {
				return fiber.NewError(fiber.StatusBadRequest, perr.Error())
			}
			snapshot, err = resolver.ResolveByCoordinates(c.UserContext(), q.Lon, q.Lat)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "region or lon/lat query parameters are required")
		}

		if err != nil {
			return mapResolveError(err)
		}

		text, err := advisor.Recommend(c.UserContext(), snapshot)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to generate recommendation")
		}

		return c.JSON(fiber.Map{
			"weather":        snapshot,
			"recommendation": text,
		})
	})
}

// coordQuery holds the coordinate variant of the now endpoint.
type coordQuery struct {
	Lon float64 `validate:"gte=-180,lte=180"`
	Lat float64 `validate:"gte=-90,lte=90"`
}

func parseCoordQuery(c *fiber.Ctx) (coordQuery, error) {
	var q coordQuery

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		return q, errors.New("invalid lon query parameter")
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return q, errors.New("invalid lat query parameter")
	}
	q.Lon, q.Lat = lon, lat

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// mapResolveError translates the resolver's failure taxonomy into HTTP
// statuses. Nothing is silently downgraded to a default snapshot.
func mapResolveError(err error) error {
	switch {
	case errors.Is(err, upstream.ErrNoPlaceFound):
		return fiber.NewError(fiber.StatusNotFound, "no location found for requested place")
	case errors.Is(err, weather.ErrStaleWindow):
		return fiber.NewError(fiber.StatusBadGateway, "weather feed has no data for the current or previous window")
	case errors.Is(err, weather.ErrNoSkyData):
		return fiber.NewError(fiber.StatusBadGateway, "weather feed returned no sky condition data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve weather")
	}
}
