package handler

import "github.com/gofiber/fiber/v2"

// Message ends the request with the message page, nothing else is rendered.
func Message(c *fiber.Ctx, status int, title, msg string) error {
	back := c.Get(fiber.HeaderReferer)
	if back == "" {
		back = RootPath
	}

	return c.Status(status).Render(TemplateMessage, fiber.Map{
		"Title":   title,
		"Message": msg,
		"Back":    back,
	}, BaseLayout)
}

// Forbidden renders the access denied message with status 403.
func Forbidden(c *fiber.Ctx) error {
	return Message(c, fiber.StatusForbidden, "Access denied", MsgNoRights)
}

// NotFound renders the not found message with status 404.
func NotFound(c *fiber.Ctx) error {
	return Message(c, fiber.StatusNotFound, "Not found", MsgNotFound)
}

// InternalError renders the internal error message with status 500.
func InternalError(c *fiber.Ctx) error {
	return Message(c, fiber.StatusInternalServerError, "Error", MsgInternalError)
}
