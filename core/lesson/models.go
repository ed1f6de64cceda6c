package lesson

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"edupro/core"
)

// Category classifies a lesson's focus area.
type Category string

const (
	CategoryVocabulary Category = "Vocabulary"
	CategoryGrammar    Category = "Grammar"
	CategoryReading    Category = "Reading"
	CategoryListening  Category = "Listening"
)

var AllCategories = []Category{CategoryVocabulary, CategoryGrammar, CategoryReading, CategoryListening}

func (c Category) Valid() bool {
	switch c {
	case CategoryVocabulary, CategoryGrammar, CategoryReading, CategoryListening:
		return true
	}
	return false
}

// Units run 1..12 over the school year.
const (
	MinUnit = 1
	MaxUnit = 12
)

type Lesson struct {
	ID        string    `json:"id"`
	Unit      int       `json:"unit"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	CreatedBy string    `json:"createdBy"` // author User.ID; not enforced on user deletion
	CreatedAt time.Time `json:"createdAt,omitempty"` // UTC
}

// NewLesson contains information needed to create a new Lesson.
// Unit and Category are optional; invalid or absent values fall back to
// Unit 1 and Vocabulary rather than failing validation.
type NewLesson struct {
	Title    string   `json:"title" validate:"required"`
	Content  string   `json:"content" validate:"required"`
	Unit     int      `json:"unit"`
	Category Category `json:"category" validate:"omitempty,category"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Content = core.CleanString(nl.Content)
	return validate.Struct(nl)
}

var (
	categoryTag  = "category"
	categoryText = "invalid category"
)

// InitValidators registers this package's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(categoryTag, categoryValidation)
	core.RegisterCustomTranslation(validate, translator, categoryTag, categoryText)
}

func categoryValidation(fl validator.FieldLevel) bool {
	return Category(fl.Field().String()).Valid()
}
