package main

import (
	"context"
	"log"

	"medisos-be/internal/config"
	"medisos-be/internal/entity"
	"medisos-be/internal/repository/implementation"
	"medisos-be/pkg/database"

	"github.com/fatih/color"
)

var likertOptions = []string{
	"Not at all",
	"Several days",
	"More than half the days",
	"Nearly every day",
}

var questions = []entity.Question{
	{Category: "mood", Text: "Over the last two weeks, how often have you felt down, depressed, or hopeless?", Options: likertOptions},
	{Category: "mood", Text: "How often have you had little interest or pleasure in doing things?", Options: likertOptions},
	{Category: "anxiety", Text: "How often have you felt nervous, anxious, or on edge?", Options: likertOptions},
	{Category: "anxiety", Text: "How often have you been unable to stop or control worrying?", Options: likertOptions},
	{Category: "sleep", Text: "How often have you had trouble falling or staying asleep, or sleeping too much?", Options: likertOptions},
	{Category: "energy", Text: "How often have you felt tired or had little energy?", Options: likertOptions},
	{Category: "social", Text: "How connected do you feel to the people around you?", Options: nil},
	{Category: "coping", Text: "What do you usually do when you feel overwhelmed?", Options: nil},
}

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	ctx := context.Background()
	repo := implementation.NewQuestionRepository(gormDB)

	count, err := repo.Count(ctx)
	if err != nil {
		color.Red("Failed to count questions: %v", err)
		return
	}
	if count > 0 {
		color.Yellow("Question bank already seeded (%d questions), skipping.", count)
		return
	}

	for i := range questions {
		q := questions[i]
		if err := repo.Create(ctx, &q); err != nil {
			color.Red("Failed to seed question %q: %v", q.Text, err)
			return
		}
		color.Green("Seeded [%s] %s", q.Category, q.Text)
	}
	color.Cyan("Seeded %d questions.", len(questions))
}
