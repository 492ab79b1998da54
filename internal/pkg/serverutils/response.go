package serverutils

import "github.com/gofiber/fiber/v2"

// BaseResponse is the JSON envelope every API handler returns.
type BaseResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func Success[T any](ctx *fiber.Ctx, code int, message string, data T) error {
	return ctx.Status(code).JSON(BaseResponse[T]{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Error(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).JSON(BaseResponse[any]{
		Status:  "error",
		Message: message,
	})
}
