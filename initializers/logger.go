package initializers

import (
	"log"
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

func InitLogger() {
	var err error
	if os.Getenv("GIN_MODE") == "release" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}
