package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	app := cli.NewApp()
	app.Name = "vidshelf"
	app.Usage = "previews video links and keeps a personal video library"
	app.Version = "0.1.0"
	configure(app)

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to run application")
	}
}

func configure(app *cli.App) {
	serveCMD := makeServeCMD()
	migrateCMD := makeMigrateCMD()
	app.Commands = []cli.Command{serveCMD, migrateCMD}
}
