package gcppubsub

import (
	"log"

	"logidash/config"
)

func GetGCPProjectID() string {
	projectID := config.FromEnv().GCPProjectID
	if projectID == "" {
		log.Fatal("GCP_PROJECT_ID environment variable must be set.")
	}
	return projectID
}
