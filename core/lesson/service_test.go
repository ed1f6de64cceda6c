package lesson

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"edupro/core"
)

type fakeRepo struct {
	lessons []Lesson
}

var _ Repository = (*fakeRepo)(nil)

func (r *fakeRepo) CreateLesson(les Lesson) (Lesson, error) {
	r.lessons = append(r.lessons, les)
	return les, nil
}

func (r *fakeRepo) QueryAllLessons() ([]Lesson, error) { return r.lessons, nil }

func (r *fakeRepo) GetLessonByID(id string) (Lesson, error) {
	for _, les := range r.lessons {
		if les.ID == id {
			return les, nil
		}
	}
	return Lesson{}, ErrNotFound
}

func (r *fakeRepo) DeleteLesson(id string) error {
	for i, les := range r.lessons {
		if les.ID == id {
			r.lessons = append(r.lessons[:i], r.lessons[i+1:]...)
			return nil
		}
	}
	return nil
}

func Test_service_Create(t *testing.T) {
	tests := []struct {
		name         string
		nl           NewLesson
		wantUnit     int
		wantCategory Category
	}{
		{
			name:         "valid values kept",
			nl:           NewLesson{Title: "My House", Content: "rooms and furniture", Unit: 2, Category: CategoryGrammar},
			wantUnit:     2,
			wantCategory: CategoryGrammar,
		},
		{
			name:         "zero unit falls back to first",
			nl:           NewLesson{Title: "My New School", Content: "school things"},
			wantUnit:     MinUnit,
			wantCategory: CategoryVocabulary,
		},
		{
			name:         "out-of-range unit falls back to first",
			nl:           NewLesson{Title: "My Friends", Content: "describing people", Unit: 13},
			wantUnit:     MinUnit,
			wantCategory: CategoryVocabulary,
		},
		{
			name:         "unknown category falls back to vocabulary",
			nl:           NewLesson{Title: "My Friends", Content: "describing people", Unit: 3, Category: Category("Bogus")},
			wantUnit:     3,
			wantCategory: CategoryVocabulary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(fakeRepo)
			svc := NewService(repo)

			les, err := svc.Create(tt.nl, "author-1")
			assert.NoError(t, err)
			assert.NotEmpty(t, les.ID)
			assert.Equal(t, tt.wantUnit, les.Unit)
			assert.Equal(t, tt.wantCategory, les.Category)
			assert.Equal(t, "author-1", les.CreatedBy)
			assert.Len(t, repo.lessons, 1)
		})
	}
}

func Test_NewLesson_Validate(t *testing.T) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	tests := []struct {
		name    string
		nl      NewLesson
		wantErr bool
	}{
		{name: "ok", nl: NewLesson{Title: "My House", Content: "rooms"}},
		{name: "missing title", nl: NewLesson{Content: "rooms"}, wantErr: true},
		{name: "missing content", nl: NewLesson{Title: "My House"}, wantErr: true},
		{name: "whitespace-only title", nl: NewLesson{Title: "   ", Content: "rooms"}, wantErr: true},
		{name: "invalid category rejected at the edge", nl: NewLesson{Title: "My House", Content: "rooms", Category: Category("Bogus")}, wantErr: true},
		{name: "empty category allowed", nl: NewLesson{Title: "My House", Content: "rooms", Category: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.nl.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_service_Delete(t *testing.T) {
	repo := new(fakeRepo)
	svc := NewService(repo)

	les, err := svc.Create(NewLesson{Title: "My House", Content: "rooms"}, "author-1")
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(les.ID))
	_, err = svc.GetByID(les.ID)
	assert.Equal(t, ErrNotFound, err)

	// deleting an absent id is a no-op
	assert.NoError(t, svc.Delete(les.ID))
}
