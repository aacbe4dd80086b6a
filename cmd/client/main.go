package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jptuazon/pusoy-dos/internal/config"
	"github.com/jptuazon/pusoy-dos/internal/logger"
	"github.com/jptuazon/pusoy-dos/internal/ui"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "config file path")
	serverAddr := flag.String("server", "", "table server address; empty plays locally against bots")
	name := flag.String("name", "", "player name for online play")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	if err := logger.Init(); err != nil {
		log.Printf("logger init failed: %v", err)
	}
	defer logger.Close()

	var model tea.Model
	if *serverAddr == "" {
		m, err := ui.NewModel(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "deal failed: %v\n", err)
			os.Exit(1)
		}
		model = m
	} else {
		playerName := *name
		if playerName == "" {
			playerName = fmt.Sprintf("player-%d", os.Getpid())
		}
		serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
		model = ui.NewOnlineModel(cfg, serverURL, playerName)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
}
