package generator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"study-rag/internal/models"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterStructValidation(quizQuestionValidation, models.QuizQuestion{})
	})
	return validate
}

// correct_option must name one of the options
func quizQuestionValidation(sl validator.StructLevel) {
	q := sl.Current().Interface().(models.QuizQuestion)
	if q.CorrectOption == "" {
		return
	}
	if _, ok := q.Options[q.CorrectOption]; !ok {
		sl.ReportError(q.CorrectOption, "correct_option", "CorrectOption", "in_options", "")
	}
}

func validateItem(item any) error {
	if err := getValidator().Struct(item); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}
