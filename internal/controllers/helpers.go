package controllers

import (
	"net/http"
	"strconv"

	"laundry-system/internal/entities"
	apperrors "laundry-system/pkg/errors"
	"laundry-system/pkg/utils"

	"github.com/labstack/echo/v4"
)

// parseIDParam читает числовой параметр пути.
func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewHttpError(
			http.StatusBadRequest,
			"Неверный ID",
			err,
			map[string]interface{}{"param": ctx.Param(name)},
		)
	}
	return id, nil
}

// actorFromContext восстанавливает исполнителя операции из контекста запроса.
// Запрос из приложения водителя дает актора-водителя, остальные — сотрудника.
func actorFromContext(ctx echo.Context) entities.Actor {
	reqCtx := ctx.Request().Context()

	if driverID, err := utils.GetDriverIDFromCtx(reqCtx); err == nil {
		return entities.Actor{Kind: entities.ActorDriver, ID: driverID, Name: "driver"}
	}

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return entities.SystemActor()
	}
	name := utils.GetRoleFromCtx(reqCtx)
	if name == "" {
		name = "staff"
	}
	return entities.Actor{Kind: entities.ActorStaff, ID: userID, Name: name}
}
