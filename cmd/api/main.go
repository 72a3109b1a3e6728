package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "sacco-backend/internal/adapter/http"
	"sacco-backend/internal/adapter/middleware"
	"sacco-backend/internal/adapter/repository/mysql"
	"sacco-backend/internal/config"
	"sacco-backend/internal/domain/workflow"
	"sacco-backend/internal/infrastructure/cache"
	"sacco-backend/internal/infrastructure/db"
	approvaluc "sacco-backend/internal/usecase/approval"
	"sacco-backend/internal/usecase/coverage"
	"sacco-backend/internal/usecase/loanrequest"
	penaltyuc "sacco-backend/internal/usecase/penalty"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("configuration error", "error", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		sugar.Fatalw("database connection failed", "error", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		sugar.Fatalw("redis connection failed", "error", err)
	}

	loans := mysql.NewLoanRepository(gdb)
	guarantees := mysql.NewGuaranteeRepository(gdb)
	penalties := mysql.NewPenaltyRepository(gdb)
	workflows := mysql.NewWorkflowRepository(gdb)
	facts := mysql.NewLedgerFacts(gdb)
	roles := mysql.NewRoleChecker(gdb)
	tx := mysql.NewGormUoW(gdb)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalog, err := workflow.Load(ctx, workflows)
	cancel()
	if err != nil {
		// Bad catalog data must fail at startup, not at first use.
		sugar.Fatalw("workflow catalog load failed", "error", err)
	}
	holder := workflow.NewHolder(catalog)

	calc := coverage.NewCalculator(facts, cfg.ShareValue)
	submitUC := loanrequest.NewUsecase(tx, loans, guarantees, calc, holder)
	decideUC := approvaluc.NewUsecase(tx, roles, holder)
	penaltyUC := penaltyuc.NewUsecase(penalties, facts, penaltyuc.Policy{
		Amount:     cfg.PenaltyAmount,
		DueDay:     cfg.DueDay,
		PenaltyDay: cfg.PenaltyDay,
	}, sugar)

	h := httpadp.NewHandler()
	loanH := httpadp.NewLoanHandler(submitUC)
	approvalH := httpadp.NewApprovalHandler(decideUC)
	guarantorH := httpadp.NewGuarantorHandler(submitUC)
	penaltyH := httpadp.NewPenaltyHandler(penaltyUC)
	workflowH := httpadp.NewWorkflowHandler(workflows, holder, sugar)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/loans/:loan_id", loanH.GetLoan)

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, sugar)
	mut := e.Group("", idemp)
	mut.POST("/loans", loanH.SubmitLoan)
	mut.POST("/loans/:loan_id/decision", approvalH.DecideStep)
	mut.POST("/loans/:loan_id/guarantors", guarantorH.SendRequest)
	mut.POST("/guarantor-requests/:request_id/response", guarantorH.RespondToRequest)
	mut.POST("/admin/penalties/run", penaltyH.RunSweep)
	mut.POST("/admin/penalties/:penalty_id/pay", penaltyH.MarkPaid)
	mut.POST("/admin/penalties/:penalty_id/waive", penaltyH.Waive)
	mut.POST("/admin/workflows/reload", workflowH.Reload)

	addr := ":" + cfg.AppPort
	go func() {
		sugar.Infow("listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sugar.Infow("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("shutdown error", "error", err)
	}
}
