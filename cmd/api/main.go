package main

import (
	"fmt"
	"net/http"

	"github.com/Bee-255/keu-backend-go/internal/config"
	appHTTP "github.com/Bee-255/keu-backend-go/internal/handler/http"
	"github.com/Bee-255/keu-backend-go/internal/pkg/database"
	"github.com/Bee-255/keu-backend-go/internal/pkg/jwt"
	"github.com/Bee-255/keu-backend-go/internal/repository/postgresql"
	payrollService "github.com/Bee-255/keu-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	batchService := payrollService.NewBatchService(batchRepo, employeeRepo)

	payrollHandler := appHTTP.NewPayrollHandler(batchService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)

	router := appHTTP.NewRouter(cfg, jwtService, payrollHandler, employeeHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
