package localdb

import (
	"edupro/core/lesson"
	"edupro/core/user"
)

// Seed data; used only when no persisted users/lessons exist.

func seedUsers() []user.User {
	return []user.User{
		{
			ID:       "1",
			Username: "admin",
			FullName: "System Administrator",
			Role:     user.RoleAdmin,
			Status:   user.StatusActive,
		},
		{
			ID:       "2",
			Username: "teacher1",
			FullName: "Mrs. Nguyen",
			Role:     user.RoleTeacher,
			Status:   user.StatusActive,
		},
		{
			ID:       "3",
			Username: "student1",
			FullName: "An Tran",
			Role:     user.RoleStudent,
			Status:   user.StatusActive,
			ClassID:  "c1",
		},
	}
}

func seedLessons() []lesson.Lesson {
	return []lesson.Lesson{
		{
			ID:        "l1",
			Unit:      1,
			Title:     "My New School",
			Content:   "Welcome to Unit 1! In this unit, we will learn about school items and subjects...",
			Category:  lesson.CategoryVocabulary,
			CreatedBy: "1",
		},
		{
			ID:        "l2",
			Unit:      2,
			Title:     "My House",
			Content:   "Unit 2 focuses on types of houses and rooms. Learn describing your dream home...",
			Category:  lesson.CategoryGrammar,
			CreatedBy: "2",
		},
	}
}
