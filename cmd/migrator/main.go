package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
)

func main() {
	log := logrus.New()
	if config.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	url, err := config.DbURL()
	if err != nil {
		log.WithError(err).Fatal("failed to configure db")
	}

	version, dirty, err := database.Migrate(url)
	if err != nil {
		log.WithError(err).Fatal("failed to migrate db")
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
