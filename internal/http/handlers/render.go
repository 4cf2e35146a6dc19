package handlers

import "github.com/gofiber/fiber/v2"

// Every endpoint answers with the same envelope:
// {success, data|error, message?, count?}. Expected failures never surface
// as thrown errors past a handler.

func jsonOK(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func jsonMsg(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func jsonCount(c *fiber.Ctx, message string, count int) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "count": count})
}

func jsonFail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "error": msg})
}
