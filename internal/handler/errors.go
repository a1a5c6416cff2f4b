package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nkor5796/ecommerce-db-project/pkg/database"
	"github.com/nkor5796/ecommerce-db-project/prometheus"
	"go.uber.org/zap"
)

// constraintResponse maps a database error to the HTTP status its constraint
// violation deserves: 409 for uniqueness conflicts and restricted deletes,
// 400 for check and not-null violations, 500 otherwise.
func constraintResponse(c echo.Context, log *zap.Logger, err error, conflictMsg, fallbackMsg string) error {
	switch {
	case database.IsUniqueViolation(err):
		log.Warn("Uniqueness violation", zap.Error(err))
		prometheus.RecordConstraintViolation("unique")
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictMsg})
	case database.IsForeignKeyViolation(err):
		log.Warn("Referential integrity violation", zap.Error(err))
		prometheus.RecordConstraintViolation("foreign_key")
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictMsg})
	case database.IsCheckViolation(err):
		log.Warn("Check constraint violation", zap.Error(err))
		prometheus.RecordConstraintViolation("check")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": conflictMsg})
	case database.IsNotNullViolation(err):
		log.Warn("Not-null constraint violation", zap.Error(err))
		prometheus.RecordConstraintViolation("not_null")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": conflictMsg})
	default:
		log.Error(fallbackMsg, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallbackMsg})
	}
}
