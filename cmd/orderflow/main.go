package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	v10validator "github.com/go-playground/validator/v10"
	"github.com/ivanpodgorny/orderflow/internal/client"
	"github.com/ivanpodgorny/orderflow/internal/config"
	"github.com/ivanpodgorny/orderflow/internal/entity"
	"github.com/ivanpodgorny/orderflow/internal/handler"
	"github.com/ivanpodgorny/orderflow/internal/logger"
	"github.com/ivanpodgorny/orderflow/internal/migrations"
	"github.com/ivanpodgorny/orderflow/internal/repository"
	"github.com/ivanpodgorny/orderflow/internal/service"
	"github.com/ivanpodgorny/orderflow/internal/validator"
	"github.com/ivanpodgorny/orderflow/internal/worker"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	if err := Execute(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func Execute() error {
	cfg, err := config.NewBuilder().LoadFlags().LoadEnv().Build()
	if err != nil {
		return err
	}

	if err := logger.Initialize(cfg.LogLevel()); err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseURI())
	if err != nil {
		return err
	}

	defer func(db *sql.DB) {
		err = db.Close()
	}(db)

	if err := migrations.Up(db); err != nil {
		return err
	}

	var checker worker.FulfillmentChecker = client.NewSimulator(rand.New(rand.NewSource(time.Now().UnixNano())))
	if addr := cfg.FulfillmentSystemAddress(); addr != "" {
		checker = client.NewFulfillment(addr)
	}

	var (
		ctx, cancel = context.WithCancel(context.Background())
		r           = chi.NewRouter()
		v           = validator.New(v10validator.New())
		wg          = &sync.WaitGroup{}
		jobs        = make(chan entity.ProcessingJob, cfg.ProcessorQueueSize())
		or          = repository.NewOrder(db)
		pw          = worker.NewProcessor(ctx, or, checker, jobs, wg, cfg.ProcessorWorkersCount())
		os          = service.NewOrder(or, jobs)
		oh          = handler.NewOrder(os, v)
	)

	defer func() {
		cancel()
		wg.Wait()
		close(jobs)
	}()

	pw.Do(ctx)

	r.Use(chimiddleware.Recoverer)
	r.Use(logger.RequestLogger)

	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", oh.Create)
		r.Get("/", oh.GetAll)
		r.Get("/{id}", oh.GetByID)
		r.Get("/customer/{customerId}", oh.GetAllByCustomer)
	})

	err = http.ListenAndServe(cfg.ServerAddress(), r)

	return err
}
