package main

import (
	"log"

	"github.com/taskvault/taskvault/internal/app"
	"github.com/taskvault/taskvault/internal/config"
	"github.com/taskvault/taskvault/internal/events"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open the store and wire the services
	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	// Log state changes as they happen
	a.Bus.Subscribe(func(event any) {
		switch e := event.(type) {
		case events.SessionChanged:
			if e.Authenticated {
				log.Printf("Signed in as %s", e.User.Username)
			} else {
				log.Println("Signed out")
			}
		case events.TasksChanged:
			log.Printf("Tasks changed for %s (%d total)", e.UserID, e.TaskCount)
		case events.ThemeChanged:
			log.Printf("Theme set to %s", e.Theme)
		}
	})

	theme, err := a.Theme.Current()
	if err != nil {
		log.Fatalf("Failed to read theme: %v", err)
	}
	log.Printf("Theme: %s", theme)

	user := a.Auth.CurrentUser()
	if user == nil {
		log.Println("No active session")
		return
	}
	log.Printf("Restored session for %s", user.Username)

	tasks, err := a.TaskService(user.ID)
	if err != nil {
		log.Fatalf("Failed to load tasks: %v", err)
	}
	stats := tasks.CompletionStats()
	log.Printf("%d tasks, %d completed (%d%%)", stats.Total, stats.Completed, stats.CompletionRate)
}
