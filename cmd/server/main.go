package main

import (
	"flag"

	"galleria/internal/app"
)

// @title           Galleria API
// @version         1.0
// @description     Personal art collection service with OTP-verified accounts.
// @BasePath        /
func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	app.Run(*configPath)
}
