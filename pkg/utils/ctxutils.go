package utils

import (
	"context"

	"laundry-system/pkg/contextkeys"
	apperrors "laundry-system/pkg/errors"
)

func GetBusinessIDFromCtx(ctx context.Context) (uint64, error) {
	businessID, ok := ctx.Value(contextkeys.BusinessIDKey).(uint64)
	if !ok || businessID == 0 {
		return 0, apperrors.ErrBusinessIDNotFoundInContext
	}
	return businessID, nil
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUnauthorized
	}
	return userID, nil
}

// GetDriverIDFromCtx возвращает ID водителя для запросов из приложения водителя.
func GetDriverIDFromCtx(ctx context.Context) (uint64, error) {
	driverID, ok := ctx.Value(contextkeys.DriverIDKey).(uint64)
	if !ok || driverID == 0 {
		return 0, apperrors.ErrDriverIDNotFoundInContext
	}
	return driverID, nil
}

func GetRoleFromCtx(ctx context.Context) string {
	role, _ := ctx.Value(contextkeys.RoleKey).(string)
	return role
}
