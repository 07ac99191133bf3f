package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
)

type trainerApi struct {
	svc     trainer.Service
	userSvc user.Service
}

func registerTrainerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc trainer.Service, userSvc user.Service) {
	api := trainerApi{svc: svc, userSvc: userSvc}

	tg := g.Group("/trainers", jwt)
	tg.POST("", api.create, adminMiddleware(user.RoleManager))
	tg.GET("", api.query)
	tg.GET("/top-rated", api.topRated)
	tg.GET("/available", api.available)

	dg := tg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware(user.RoleManager))
	dg.DELETE("", api.destroy, adminMiddleware())
	dg.POST("/rate", api.rate)
}

func (api *trainerApi) create(ctx echo.Context) error {
	var data trainer.NewTrainer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTrainer")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	// a linked account must exist and carry the TRAINER role
	if data.UserID != "" {
		usr, err := api.userSvc.GetByID(ctx.Request().Context(), data.UserID)
		if err != nil {
			if errors.Cause(err) == user.ErrNotFound {
				return core.NewValidationError(nil, core.FieldError{Field: "user_id", Error: "user not found"})
			}
			return errors.Wrap(err, "finding user by ID")
		}
		if !usr.IsTrainer() {
			return core.NewValidationError(nil, core.FieldError{Field: "user_id", Error: "user is not a trainer"})
		}
	}

	trn, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating trainer")
	}
	return ctx.JSON(http.StatusCreated, trn)
}

func (api *trainerApi) query(ctx echo.Context) error {
	filter := new(trainer.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []trainer.Trainer{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	trainers, err := api.svc.Query(ctx.Request().Context(), filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying trainers")
	}
	if trainers == nil {
		trainers = []trainer.Trainer{}
	}
	return ctx.JSON(http.StatusOK, trainers)
}

func (api *trainerApi) retrieve(ctx echo.Context) error {
	trn, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, trn)
}

func (api *trainerApi) update(ctx echo.Context) error {
	var data trainer.UpdateTrainer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTrainer")
	}

	trn, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	if err = data.Validate(ctx.Request().Context(), trn, api.svc); err != nil {
		return err
	}

	trn, err = api.svc.Update(ctx.Request().Context(), trn.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating trainer")
	}
	return ctx.JSON(http.StatusOK, trn)
}

func (api *trainerApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *trainerApi) rate(ctx echo.Context) error {
	var data RateTrainerRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RateTrainerRequest")
	}

	trn, err := api.svc.Rate(ctx.Request().Context(), ctx.Param("id"), data.Rating)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, trn)
}

func (api *trainerApi) topRated(ctx echo.Context) error {
	limit := 5
	if v := ctx.QueryParam("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit parameter")
		}
		limit = parsed
	}

	trainers, err := api.svc.TopRated(ctx.Request().Context(), limit)
	if err != nil {
		return errors.Wrap(err, "querying top rated trainers")
	}
	if trainers == nil {
		trainers = []trainer.Trainer{}
	}
	return ctx.JSON(http.StatusOK, trainers)
}

func (api *trainerApi) available(ctx echo.Context) error {
	day := time.Now().Weekday()
	if v := ctx.QueryParam("day"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 || parsed > 6 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day parameter")
		}
		day = time.Weekday(parsed)
	}

	at := core.NewTimeOfDay(time.Now().Hour(), time.Now().Minute())
	if v := ctx.QueryParam("at"); v != "" {
		parsed, err := core.ParseTimeOfDay(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid at parameter")
		}
		at = parsed
	}

	trainers, err := api.svc.AvailableOn(ctx.Request().Context(), day, at)
	if err != nil {
		return errors.Wrap(err, "querying available trainers")
	}
	if trainers == nil {
		trainers = []trainer.Trainer{}
	}
	return ctx.JSON(http.StatusOK, trainers)
}

type RateTrainerRequest struct {
	Rating float64 `json:"rating"`
}
