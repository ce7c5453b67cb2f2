package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/reimburse-desk/backend/internal/domain/entity"
	domainerror "github.com/reimburse-desk/backend/internal/domain/error"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/dto"
	"github.com/reimburse-desk/backend/internal/integration/entrypoint/middleware"
)

// tokenCodePrefix marks authentication failures, which map to 401 rather than 400.
const tokenCodePrefix = "AUTH-01"

// respondError writes the HTTP response for a use case error.
func respondError(ctx *gin.Context, err error) {
	code, ok := domainerror.CodeOf(err)
	if !ok {
		zap.L().Error("unhandled error",
			zap.String("path", ctx.FullPath()),
			zap.Error(err),
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Internal server error",
		})
		return
	}

	status := statusForKind(code.Kind())
	if strings.HasPrefix(string(code), tokenCodePrefix) {
		status = http.StatusUnauthorized
	}
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("code", string(code)),
			zap.Error(err),
		)
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: err.Error(),
		Code:  string(code),
	})
}

func statusForKind(kind domainerror.Kind) int {
	switch kind {
	case domainerror.KindValidation:
		return http.StatusBadRequest
	case domainerror.KindNotFound:
		return http.StatusNotFound
	case domainerror.KindPolicyViolation:
		return http.StatusUnprocessableEntity
	case domainerror.KindStateConflict:
		return http.StatusConflict
	case domainerror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondBadRequest writes a 400 for malformed input that never reached a use case.
func respondBadRequest(ctx *gin.Context, message string, err error) {
	response := dto.ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

// requireActor returns the authenticated caller or writes a 401.
func requireActor(ctx *gin.Context) (entity.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return entity.Actor{}, false
	}
	return actor, true
}

// pathID parses the :id path parameter or writes a 400.
func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondBadRequest(ctx, "Invalid ID format", err)
		return uuid.Nil, false
	}
	return id, true
}

// queryPage reads the page query parameter. Missing or malformed values yield 0,
// which the use cases treat as the first page.
func queryPage(ctx *gin.Context) int {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil {
		return 0
	}
	return page
}

func optionalQuery(ctx *gin.Context, key string) *string {
	value := strings.TrimSpace(ctx.Query(key))
	if value == "" {
		return nil
	}
	return &value
}
