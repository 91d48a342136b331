package main

import "github.com/BornToCode265/ADIS/internal/app"

// @title           ADIS API
// @version         1.0
// @description     Backend for the Automated Drip Irrigation System.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	app.Run()
}
