package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-rollover/core"
	"github.com/trezcool/masomo-rollover/core/class"
	"github.com/trezcool/masomo-rollover/core/session"
	"github.com/trezcool/masomo-rollover/core/student"
	"github.com/trezcool/masomo-rollover/core/transition"
)

type (
	sessionFinder interface {
		GetSession(id string) (session.Session, bool)
	}

	classFinder interface {
		GetClass(id string) (class.Class, bool)
	}

	studentMover interface {
		GetStudent(id string) (student.Student, bool)
		ApplyTransition(req transition.Request) error
	}

	transitionApi struct {
		logger     core.Logger
		sessions   sessionFinder
		classes    classFinder
		students   studentMover
		validate   *validator.Validate
		translator ut.Translator
	}
)

func registerTransitionAPI(
	g *echo.Group,
	logger core.Logger,
	sessions sessionFinder,
	classes classFinder,
	students studentMover,
	validate *validator.Validate,
	translator ut.Translator,
) {
	transition.InitValidators(validate, translator)
	api := transitionApi{
		logger:     logger,
		sessions:   sessions,
		classes:    classes,
		students:   students,
		validate:   validate,
		translator: translator,
	}
	g.POST("/students/session-transition", api.submit)
}

// submit applies a whole batch or nothing. Batches that are well-formed but do not match
// the stored data are answered with success=false and a message.
func (api *transitionApi) submit(ctx echo.Context) error {
	var data transition.Request
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to transition.Request")
	}
	if err := api.validate.Struct(data); err != nil {
		return core.TranslateValidationError(err, api.translator)
	}

	sess, ok := api.sessions.GetSession(data.SessionID)
	if !ok {
		return reject(ctx, "target session %s not found", data.SessionID)
	}
	if _, ok = api.classes.GetClass(data.SourceClassID); !ok {
		return reject(ctx, "source class %s not found", data.SourceClassID)
	}

	seen := make(map[string]bool, len(data.Updates))
	for _, upd := range data.Updates {
		if seen[upd.StudentID] {
			return reject(ctx, "student %s is listed more than once", upd.StudentID)
		}
		seen[upd.StudentID] = true

		std, ok := api.students.GetStudent(upd.StudentID)
		if !ok {
			return reject(ctx, "student %s not found", upd.StudentID)
		}
		if std.ClassID != data.SourceClassID {
			return reject(ctx, "student %s is not in class %s", upd.StudentID, data.SourceClassID)
		}
		if upd.Action == transition.KindTransfer {
			continue
		}
		if _, ok = api.classes.GetClass(upd.TargetClassID); !ok {
			return reject(ctx, "target class %s not found", upd.TargetClassID)
		}
	}

	if err := api.students.ApplyTransition(data); err != nil {
		return errors.Wrap(err, "applying session transition")
	}

	msg := fmt.Sprintf("%d student(s) moved to session %q", len(data.Updates), sess.Name)
	api.logger.Info(msg)
	return ctx.JSON(http.StatusOK, transition.Response{Success: true, Message: msg})
}

func reject(ctx echo.Context, format string, args ...interface{}) error {
	return ctx.JSON(http.StatusOK, transition.Response{Message: fmt.Sprintf(format, args...)})
}
