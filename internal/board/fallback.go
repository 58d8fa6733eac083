package board

import (
	"time"

	"taskboard/internal/models"
)

// FallbackRecords returns the fixed dataset used when the remote store
// cannot be reached during a full reload. It keeps the board renderable
// with plausible demo content instead of an empty state.
func FallbackRecords() []models.TaskRecord {
	now := time.Now().Format(time.RFC3339)
	return []models.TaskRecord{
		{
			ID:          "1",
			Title:       "Learn advanced JavaScript",
			Description: "Work through the advanced language concepts",
			Subtasks: []models.Subtask{
				{Text: "Understand closures", Completed: true},
				{Text: "Work through promises", Completed: true},
				{Text: "Understand async/await", Completed: false},
				{Text: "Learn ES6+ features", Completed: false},
			},
			Deadline:  "2024-02-15",
			Priority:  models.PriorityHigh,
			Status:    models.StatusProgress,
			CreatedAt: now,
		},
		{
			ID:          "2",
			Title:       "Prepare for the math exam",
			Description: "Review the main topics of the semester",
			Subtasks: []models.Subtask{
				{Text: "Review linear algebra", Completed: false},
				{Text: "Solve calculus problems", Completed: false},
				{Text: "Finish the practice sheets", Completed: false},
			},
			Deadline:  "2024-02-20",
			Priority:  models.PriorityMedium,
			Status:    models.StatusBacklog,
			CreatedAt: now,
		},
		{
			ID:          "3",
			Title:       "Build a portfolio project",
			Description: "Develop a web application for the portfolio",
			Subtasks: []models.Subtask{
				{Text: "Pick an idea", Completed: true},
				{Text: "Create the design", Completed: false},
				{Text: "Write the code", Completed: false},
			},
			Deadline:  "2024-03-01",
			Priority:  models.PriorityLow,
			Status:    models.StatusProgress,
			CreatedAt: now,
		},
	}
}
