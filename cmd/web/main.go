// @title           eHandout Books API
// @version         1.0
// @description     Account authentication and session API for the eHandout e-book marketplace.
// @contact.name    eHandout Support
// @contact.email   support@ehandout.example.com
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import "ehandout_backend/internal/app"

func main() {
	app.Run()
}
