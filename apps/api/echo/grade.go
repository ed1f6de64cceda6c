package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"edupro/core"
	"edupro/core/grade"
	"edupro/core/user"
)

// fallbackTip is served whenever the advisory service cannot deliver.
const fallbackTip = "Hãy luôn cố gắng học tập nhé!"

type gradeApi struct {
	svc      grade.Service
	usrSvc   user.Service
	advisor  core.Advisor
	validate *validator.Validate
}

func registerGradeAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc grade.Service,
	usrSvc user.Service,
	advisor core.Advisor,
	validate *validator.Validate,
) {
	api := gradeApi{svc: svc, usrSvc: usrSvc, advisor: advisor, validate: validate}

	gg := g.Group("/grades", jwt)

	staff := roleGateMiddleware(usrSvc, user.RoleTeacher, user.RoleAdmin)
	gg.POST("", api.record, staff)
	gg.GET("", api.query, staff)
	gg.GET("/student/:id", api.queryByStudent, staff)
	gg.GET("/student/:id/progress", api.studentProgress, staff)

	student := roleGateMiddleware(usrSvc, user.RoleStudent)
	gg.POST("/me", api.recordMine, student)
	gg.GET("/me", api.mine, student)
	gg.GET("/me/tip", api.learningTip, student)
}

// Handlers

func (api *gradeApi) record(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Record(data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

// recordMine records a quiz result for the calling student; the student id
// always comes from the session, never from the payload.
func (api *gradeApi) recordMine(ctx echo.Context) error {
	var data grade.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	data.StudentID = ctxUsr.ID

	if err := data.Validate(api.validate); err != nil {
		return err
	}

	g, err := api.svc.Record(data)
	if err != nil {
		return errors.Wrap(err, "recording grade")
	}
	return ctx.JSON(http.StatusCreated, g)
}

func (api *gradeApi) query(ctx echo.Context) error {
	grades, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) queryByStudent(ctx echo.Context) error {
	grades, err := api.svc.QueryByStudentID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying grades by student")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

func (api *gradeApi) studentProgress(ctx echo.Context) error {
	p, err := api.svc.Progress(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "aggregating progress")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *gradeApi) mine(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	grades, err := api.svc.QueryByStudentID(ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying grades")
	}
	if grades == nil {
		grades = []grade.Grade{}
	}
	return ctx.JSON(http.StatusOK, grades)
}

// learningTip is best-effort: when the advisory service cannot deliver, the
// canned encouragement is served instead and the failure is invisible to the
// student.
func (api *gradeApi) learningTip(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	p, err := api.svc.Progress(ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "aggregating progress")
	}

	summary := fmt.Sprintf("%d quizzes completed, average score %.1f/10", p.GradeCount, p.AverageScore)
	tip, err := api.advisor.LearningTip(ctx.Request().Context(), summary)
	if err != nil {
		tip = fallbackTip
	}
	return ctx.JSON(http.StatusOK, TipResponse{Tip: tip})
}
