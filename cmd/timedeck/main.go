package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"timedeck/internal/config"
	"timedeck/internal/storage"
	"timedeck/internal/ui/calendar"
	"timedeck/internal/ui/clock"
	"timedeck/internal/ui/help"
	"timedeck/internal/ui/menu"
	"timedeck/internal/ui/stopwatch"
	"timedeck/internal/ui/timer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	if err := runApp(store, cfg); err != nil {
		log.Fatal(err)
	}
}

func runApp(store *storage.Storage, cfg config.Config) error {
	for {
		menuModel, err := menu.New(store, cfg)
		if err != nil {
			return err
		}

		p := tea.NewProgram(menuModel, tea.WithAltScreen())
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		menuModel = finalModel.(menu.Model)
		if menuModel.ShouldQuit() {
			fmt.Println(">>> See you around!")
			return nil
		}

		quit, err := runScreen(menuModel.GetSelected(), store, cfg)
		if err != nil {
			return err
		}
		if quit {
			fmt.Println(">>> See you around!")
			return nil
		}
	}
}

// runScreen runs the selected widget until it exits, reporting whether the
// user quit the whole app rather than returning to the menu.
func runScreen(choice menu.Choice, store *storage.Storage, cfg config.Config) (bool, error) {
	switch choice {
	case menu.OpenClock:
		model := clock.New(cfg)
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return false, err
		}
		return finalModel.(clock.Model).ShouldQuit(), nil

	case menu.OpenStopwatch:
		model := stopwatch.New()
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return false, err
		}
		return finalModel.(stopwatch.Model).ShouldQuit(), nil

	case menu.OpenTimer:
		model, err := timer.New(store, cfg)
		if err != nil {
			return false, err
		}
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return false, err
		}
		return finalModel.(timer.Model).ShouldQuit(), nil

	case menu.OpenCalendar:
		model, err := calendar.New(store)
		if err != nil {
			return false, err
		}
		finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		if err != nil {
			return false, err
		}
		return finalModel.(calendar.Model).ShouldQuit(), nil

	case menu.OpenHelp:
		model := help.New()
		if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
			return false, err
		}
		return false, nil
	}

	return false, nil
}
