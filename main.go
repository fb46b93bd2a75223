package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/gobudget/internal/app"
)

// @title           GoBudget API
// @version         1.0
// @description     GoBudget provides one-time code sign in and personal budget tracking APIs.
// @contact.name    Contact Support
// @contact.email   support@gobudget.local
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey  CookieAuth
// @in cookie
// @name budget_session
// @description Session cookie set by /auth/verify-otp.
func main() {
	application := app.New()    // Initialize the application
	wait := application.Start() // Start the application and wait for the termination signal
	<-wait                      // Wait for the application to receive a termination signal
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully
}
