// Package main is the entry point for the rental-bff application.
//
// @title           Rental BFF API
// @version         1.0.0
// @description     Backend for the rental management frontend.
//
//	It validates forms, prices contracts, caches reads and forwards the rest to the rental GraphQL API.
//
// @termsOfService  http://swagger.io/terms/
//
// @contact.name   API Support
// @contact.email  support@example.com
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  JWTAuth
// @in                          header
// @name                        Authorization
// @description                 Session token as "JWT <token>".
//
// @tag.name        Auth
// @tag.description Sign in and out of the rental API
//
// @tag.name        Clients
// @tag.description Client records and uniqueness checks
//
// @tag.name        Catalog
// @tag.description Products, stock, offices and localities
//
// @tag.name        Orders
// @tag.description Suppliers, purchases, supplier and internal orders
//
// @tag.name        Contracts
// @tag.description Contract listing, quoting and creation
//
// @tag.name        ContractDrafts
// @tag.description Server-side contract wizard
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"context"

	_ "github.com/rentaldesk/rental-bff/docs" // swagger docs

	"github.com/rentaldesk/rental-bff/config"
	"github.com/rentaldesk/rental-bff/internal/app"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()

	application := app.InitializeApp(cfg)
	server := app.NewServer(application.Router, cfg.Server)

	err := server.Run(context.Background())
	application.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
