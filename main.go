// Package main campus library hub API.
//
// @title           Campus Library Hub API
// @version         1.0
// @description     University library catalog and borrowing service.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/nurkholifah99/campus-library-hub/app/echoServer"
	authctrl "github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/auth"
	bookctrl "github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/book"
	borrowctrl "github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/borrowing"
	searchctrl "github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/search"
	"github.com/nurkholifah99/campus-library-hub/app/echoServer/validation"
	"github.com/nurkholifah99/campus-library-hub/config"
	catalogrepo "github.com/nurkholifah99/campus-library-hub/repository/catalog"
	ledgerrepo "github.com/nurkholifah99/campus-library-hub/repository/ledger"
	studentrepo "github.com/nurkholifah99/campus-library-hub/repository/student"
	userrepo "github.com/nurkholifah99/campus-library-hub/repository/user"
	authsvc "github.com/nurkholifah99/campus-library-hub/service/auth"
	borrowsvc "github.com/nurkholifah99/campus-library-hub/service/borrowing"
	catalogsvc "github.com/nurkholifah99/campus-library-hub/service/catalog"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// stores
	books := catalogrepo.New()
	ledger := ledgerrepo.New()
	students := studentrepo.New()
	users := userrepo.New()

	// services
	as := authsvc.New(users, students, cfg.JWTSecret)
	cs := catalogsvc.New(books, ledger)
	rs := borrowsvc.New(books, ledger, students)

	if cfg.AdminPassword != "" {
		if err := as.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Error("admin bootstrap failed", "err", err)
			os.Exit(1)
		}
	}

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: cs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: rs, V: v, Log: log}
	searchC := &searchctrl.Controller{Svc: cs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Book:      bookC,
		Borrowing: borrowC,
		Search:    searchC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
