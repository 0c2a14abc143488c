package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/smartedu/core"
	"github.com/trezcool/smartedu/core/chat"
)

const voiceNotImplementedText = "Voice processing not implemented yet"

type (
	ChatRequest struct {
		Message string `json:"message" validate:"required"`
	}

	chatApi struct {
		svc      ChatResponder
		validate *validator.Validate
		metrics  *metrics
	}
)

func (r *ChatRequest) Validate(validate *validator.Validate) error {
	r.Message = core.CleanString(r.Message)
	return validate.Struct(r)
}

func registerChatAPI(
	group *echo.Group,
	jwt echo.MiddlewareFunc,
	svc ChatResponder,
	validate *validator.Validate,
	mtr *metrics,
) {
	api := chatApi{svc: svc, validate: validate, metrics: mtr}
	g := group.Group("/chatbot", jwt, roleMiddleware(validate, chat.AllRoles...))
	g.POST("", api.send)
	g.GET("/history", api.history)
	g.POST("/voice", api.voice)
}

func (api *chatApi) send(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, token, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	resp, err := api.svc.Respond(ctx.Request().Context(), claims.Session(), token, data.Message)
	if err != nil {
		return errors.Wrap(err, "responding to chat message")
	}
	api.metrics.observe(claims.Role, resp)
	return ctx.JSON(http.StatusOK, resp)
}

// history is a placeholder until conversations are persisted.
func (api *chatApi) history(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"messages": []interface{}{}, "success": true})
}

func (api *chatApi) voice(ctx echo.Context) error {
	return ctx.JSON(http.StatusNotImplemented, echo.Map{"msg": voiceNotImplementedText, "success": false})
}
