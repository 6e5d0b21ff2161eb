package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/presales-crm/internal/application/dto"
	"github.com/jhoicas/presales-crm/pkg/jwt"
)

// Locals keys para la identidad del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role_type"
)

// Roles sembrados en la tabla roles; el token lleva el role_id del empleado.
const (
	RoleAdmin   = "ROLE_ADMIN"
	RoleManager = "ROLE_MANAGER"
	RoleSales   = "ROLE_SALES"
)

// AuthMiddleware valida el Bearer Token JWT y carga emp_id, username y role_type en c.Locals.
func AuthMiddleware(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c)
		if code != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		claims, err := tokens.Parse(tokenString)
		if err != nil || claims.EmpID() == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		setIdentity(c, claims)
		return c.Next()
	}
}

// OptionalAuth carga la identidad si llega un token válido; sin token (o inválido) continúa anónimo.
func OptionalAuth(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, _ := bearerToken(c)
		if code == "" {
			if claims, err := tokens.Parse(tokenString); err == nil {
				setIdentity(c, claims)
			}
		}
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Va después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado para el rol " + role})
	}
}

// bearerToken extrae el token; code != "" indica el motivo del rechazo.
func bearerToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

func setIdentity(c *fiber.Ctx, claims *jwt.Claims) {
	c.Locals(LocalUserID, claims.EmpID())
	c.Locals(LocalUsername, claims.Username)
	c.Locals(LocalRole, claims.RoleType)
}

// GetUserID devuelve el emp_id del token (vacío si la petición es anónima).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetUsername devuelve el username del token.
func GetUsername(c *fiber.Ctx) string {
	return localString(c, LocalUsername)
}

// GetRole devuelve el role_type del token.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
