package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/dinebite/internal/app"
)

// @title           DineBite API
// @version         1.0
// @description     DineBite account and OTP password reset APIs.
// @server          http://localhost:8080
// @securityDefinitions.apikey  BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT.
func main() {
	application := app.New()
	wait := application.Start()
	<-wait
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
}
