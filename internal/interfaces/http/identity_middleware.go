package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farmacia-pos/internal/application/dto"
	"github.com/jhoicas/farmacia-pos/pkg/jwt"
)

// LocalCashierID key para la identidad del cajero en Fiber Locals.
const LocalCashierID = "cashier_id"

// IdentityMiddleware valida el Bearer Token JWT y extrae la identidad opaca del
// cajero a c.Locals. El núcleo no inspecciona roles ni permisos: la identidad
// solo se usa para atribución (ventas, descartes de alertas).
func IdentityMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		cashierID, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil || cashierID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCashierID, cashierID)
		return c.Next()
	}
}

// GetCashierID devuelve la identidad del cajero (después del middleware).
func GetCashierID(c *fiber.Ctx) string {
	v := c.Locals(LocalCashierID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
