package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/plan"
)

type planApi struct {
	svc       plan.Service
	memberSvc member.Service
	classSvc  class.Service
}

func registerPlanAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc plan.Service, memberSvc member.Service, classSvc class.Service) {
	api := planApi{svc: svc, memberSvc: memberSvc, classSvc: classSvc}

	pg := g.Group("/ai", jwt)
	pg.POST("/workout-plan", api.workoutPlan)
	pg.POST("/nutrition-plan", api.nutritionPlan)
	pg.POST("/injury-recovery", api.injuryRecovery)
	pg.POST("/comprehensive-plan", api.comprehensivePlan)
	pg.POST("/chat", api.chat)
	pg.GET("/motivation", api.motivation)
	pg.GET("/progress/:memberID", api.progressAnalysis)
	pg.GET("/recommend-classes/:memberID", api.classRecommendation)
}

func (api *planApi) workoutPlan(ctx echo.Context) error {
	var data plan.WorkoutRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to WorkoutRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.WorkoutPlan(ctx.Request().Context(), data)})
}

func (api *planApi) nutritionPlan(ctx echo.Context) error {
	var data plan.NutritionRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NutritionRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.NutritionPlan(ctx.Request().Context(), data)})
}

func (api *planApi) injuryRecovery(ctx echo.Context) error {
	var data plan.InjuryRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InjuryRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.InjuryRecovery(ctx.Request().Context(), data)})
}

func (api *planApi) comprehensivePlan(ctx echo.Context) error {
	var data plan.ComprehensiveRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ComprehensiveRequest")
	}
	if err := data.Workout.Validate(); err != nil {
		return err
	}
	if err := data.Nutrition.Validate(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.svc.Comprehensive(ctx.Request().Context(), data))
}

func (api *planApi) chat(ctx echo.Context) error {
	var data ChatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.Chat(ctx.Request().Context(), claims.Role, data.Message)})
}

func (api *planApi) motivation(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	name := claims.Username
	if name == "" {
		name = "there"
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.Motivation(ctx.Request().Context(), name)})
}

func (api *planApi) progressAnalysis(ctx echo.Context) error {
	mbr, err := api.memberSvc.GetByID(ctx.Request().Context(), ctx.Param("memberID"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.ProgressAnalysis(ctx.Request().Context(), mbr)})
}

func (api *planApi) classRecommendation(ctx echo.Context) error {
	mbr, err := api.memberSvc.GetByID(ctx.Request().Context(), ctx.Param("memberID"))
	if err != nil {
		return err
	}

	classes, err := api.classSvc.Available(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying available classes")
	}
	return ctx.JSON(http.StatusOK, PlanResponse{Reply: api.svc.ClassRecommendation(ctx.Request().Context(), mbr, classes)})
}

type (
	PlanResponse struct {
		Reply string `json:"reply"`
	}

	ChatRequest struct {
		Message string `json:"message" validate:"required"`
	}
)

func (cr *ChatRequest) Validate() error {
	cr.Message = core.CleanString(cr.Message)
	return core.Validate.Struct(cr)
}
