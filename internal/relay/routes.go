// Package relay exposes the HTTP endpoints the lookup client consumes. The
// weather and forecast routes forward the provider's JSON verbatim; the geo
// routes do the same for geocoding, so the provider credential never leaves
// the server.
package relay

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/skycastlabs/skycast/internal/upstream"
)

var validate = validator.New()

// RegisterRoutes wires the relay handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, provider *upstream.Client) {
	app.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := provider.CurrentWeather(c.Context(), q.Lat, q.Lon, q.Units)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch weather data")
		}
		return sendJSON(c, body)
	})

	app.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseCoordsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := provider.Forecast(c.Context(), q.Lat, q.Lon, q.Units)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast")
		}
		return sendJSON(c, body)
	})

	app.Get("/geo/direct", func(c *fiber.Ctx) error {
		var q directQuery
		q.Query = c.Query("q")
		q.Limit = parseLimit(c.Query("limit"), 5)
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := provider.GeocodeDirect(c.Context(), q.Query, q.Limit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to search locations")
		}
		return sendJSON(c, body)
	})

	app.Get("/geo/reverse", func(c *fiber.Ctx) error {
		var q reverseQuery
		q.Lat = c.Query("lat")
		q.Lon = c.Query("lon")
		q.Limit = parseLimit(c.Query("limit"), 1)
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		body, err := provider.GeocodeReverse(c.Context(), q.Lat, q.Lon, q.Limit)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to reverse geocode")
		}
		return sendJSON(c, body)
	})
}

// coordsQuery holds the shared lat/lon/units parameters.
type coordsQuery struct {
	Lat   string `validate:"required,latitude"`
	Lon   string `validate:"required,longitude"`
	Units string `validate:"oneof=metric imperial"`
}

func parseCoordsQuery(c *fiber.Ctx) (coordsQuery, error) {
	q := coordsQuery{
		Lat:   c.Query("lat"),
		Lon:   c.Query("lon"),
		Units: c.Query("units", "metric"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// directQuery holds forward-geocode parameters.
type directQuery struct {
	Query string `validate:"required"`
	Limit int    `validate:"gte=1,lte=10"`
}

// reverseQuery holds reverse-geocode parameters.
type reverseQuery struct {
	Lat   string `validate:"required,latitude"`
	Lon   string `validate:"required,longitude"`
	Limit int    `validate:"gte=1,lte=10"`
}

func parseLimit(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func sendJSON(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
