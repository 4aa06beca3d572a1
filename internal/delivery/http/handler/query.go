package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
)

// parseQueryIntOptional returns nil when key is absent.
func parseQueryIntOptional(c fiber.Ctx, key string) (*int, error) {
	s := c.Query(key)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseQueryBool(c fiber.Ctx, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
