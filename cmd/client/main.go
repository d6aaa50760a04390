package main

import (
	"log"
	"os"

	"github.com/elearnhq/termclass/internal/client/config"
	"github.com/elearnhq/termclass/internal/client/tui"
)

func main() {

	cfg := config.LoadConfig()
	app, err := tui.NewApp(cfg, os.Args[1:])

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(); err != nil {
		log.Fatalf("%v", err)
	}

}
