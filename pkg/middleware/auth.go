package middleware

import (
	"context"
	"strings"

	"laundry-system/pkg/contextkeys"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/service"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth извлекает токен, валидирует его и кладет принципала в контекст запроса.
// Дальше ядро работает только с {BusinessID, UserID, Role, DriverID}.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err, m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrInvalidToken, m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.BusinessIDKey, claims.BusinessID)
		ctx = context.WithValue(ctx, contextkeys.RoleKey, claims.Role)
		ctx = context.WithValue(ctx, contextkeys.IsSuperAdminKey, claims.IsSuperAdmin)
		if claims.DriverID != 0 {
			ctx = context.WithValue(ctx, contextkeys.DriverIDKey, claims.DriverID)
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireDriver пропускает только запросы из приложения водителя.
func (m *AuthMiddleware) RequireDriver(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, err := utils.GetDriverIDFromCtx(c.Request().Context()); err != nil {
			m.logger.Warn("RequireDriver: запрос без привязки к водителю")
			return utils.ErrorResponse(c, apperrors.ErrForbidden, m.logger)
		}
		return next(c)
	}
}
