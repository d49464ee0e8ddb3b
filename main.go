package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/barangaycms/barangay-cms-api/api/handlers"

	"go.uber.org/zap"

	"github.com/barangaycms/barangay-cms-api/config"
)

func main() {
	a := handlers.App{}
	a.Config = *config.New()

	if err := a.Initialize(); err != nil {
		log.Fatal(err)
	}

	port := os.Getenv("PORT")
	baseURL := os.Getenv("BASE_URL")
	zap.S().Infow("barangay-cms-api is up and running",
		"port", port,
		"url", baseURL,
	)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", port), a.Router))
}
