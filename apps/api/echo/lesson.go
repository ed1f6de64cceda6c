package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"edupro/core"
	"edupro/core/lesson"
	"edupro/core/user"
)

type lessonApi struct {
	svc      lesson.Service
	advisor  core.Advisor
	validate *validator.Validate
}

func registerLessonAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc lesson.Service,
	usrSvc user.Service,
	advisor core.Advisor,
	validate *validator.Validate,
) {
	api := lessonApi{svc: svc, advisor: advisor, validate: validate}

	lg := g.Group("/lessons", jwt)

	// any active role can read lessons and generate quizzes
	lg.GET("", api.query, roleGateMiddleware(usrSvc))
	lg.GET("/:id", api.retrieve, roleGateMiddleware(usrSvc))
	lg.POST("/:id/quiz", api.generateQuiz, roleGateMiddleware(usrSvc))

	// authoring is restricted to staff
	staff := roleGateMiddleware(usrSvc, user.RoleTeacher, user.RoleAdmin)
	lg.POST("", api.create, staff)
	lg.DELETE("/:id", api.destroy, staff)
}

// Handlers

func (api *lessonApi) create(ctx echo.Context) error {
	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	les, err := api.svc.Create(data, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, les)
}

func (api *lessonApi) query(ctx echo.Context) error {
	lessons, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	les, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding lesson by ID")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// generateQuiz is best-effort: an unavailable advisory service yields a null
// question list and never an error, so the client can fall back to its
// built-in quiz. Nothing is persisted either way.
func (api *lessonApi) generateQuiz(ctx echo.Context) error {
	les, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == lesson.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding lesson by ID")
	}

	questions, err := api.advisor.GenerateQuizQuestions(ctx.Request().Context(), les.Title, les.Content)
	if err != nil {
		return ctx.JSON(http.StatusOK, QuizResponse{Questions: nil})
	}
	return ctx.JSON(http.StatusOK, QuizResponse{Questions: questions})
}
