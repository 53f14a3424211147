package models

import (
	"log"

	"bitbucket.org/trellisadvisory/planning_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Engagement{},
		&VisionAndGoals{},
		&StartStopKeepResponse{}, &SwotResponse{},
		&StrategyIdeation{}, &StrategyIdeationItem{},
		&FinancialDocument{}, &CustomerInsightsDocument{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
