package main

import (
	"log"

	_ "currency-converter/docs"
	"currency-converter/internal/app"
)

// @title           Currency Converter API
// @version         1.0
// @description     Кэш курсов валют с проверкой свежести и конвертацией

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app, err := app.NewApp()
	if err != nil {
		log.Fatalf("Ошибка создания приложения: %v", err)
	}

	app.BuildRatesLayer()

	if err := app.Run(); err != nil {
		log.Fatalf("Ошибка при работе приложения: %v", err)
	}
}
