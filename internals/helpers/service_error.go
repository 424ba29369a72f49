package helper

import "github.com/gofiber/fiber/v2"

// ServiceError membawa kode mesin yang stabil dari layer service ke controller,
// supaya caller bisa memetakan kegagalan tanpa parsing pesan.
type ServiceError struct {
	Status  int    `json:"-"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string { return e.Message }

func NewServiceError(status int, code, message string) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message}
}

func ErrNotFound(code, message string) *ServiceError {
	return NewServiceError(fiber.StatusNotFound, code, message)
}

func ErrConflict(code, message string) *ServiceError {
	return NewServiceError(fiber.StatusConflict, code, message)
}

func ErrInternal(message string) *ServiceError {
	return NewServiceError(fiber.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// JsonServiceError memetakan error dari service ke envelope JSON standar.
// Error non-ServiceError dianggap kegagalan storage (500).
func JsonServiceError(c *fiber.Ctx, err error) error {
	if se, ok := err.(*ServiceError); ok {
		return JsonErrorCode(c, se.Status, se.Code, se.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}
