package models

import (
	"log"

	"bitbucket.org/lcconsulting/consulting_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Client{}, &ClientContact{},
		&Contact{},
		&Report{}, &ReportItem{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
