package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/sajidbaba1/fithub/apps/api/echo"
	"github.com/sajidbaba1/fithub/core"
	"github.com/sajidbaba1/fithub/core/analytics"
	"github.com/sajidbaba1/fithub/core/class"
	"github.com/sajidbaba1/fithub/core/member"
	"github.com/sajidbaba1/fithub/core/plan"
	"github.com/sajidbaba1/fithub/core/report"
	"github.com/sajidbaba1/fithub/core/trainer"
	"github.com/sajidbaba1/fithub/core/user"
	aisvc "github.com/sajidbaba1/fithub/services/ai"
	emailsvc "github.com/sajidbaba1/fithub/services/email"
	logsvc "github.com/sajidbaba1/fithub/services/logger"
	"github.com/sajidbaba1/fithub/storage/database"
	sqlxrepos "github.com/sajidbaba1/fithub/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	conf := core.LoadConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("failed to close DB", err)
		}
	}()
	dbx := sqlx.NewDb(db, "postgres")

	// set up repositories
	usrRepo := sqlxrepos.NewUserRepository(dbx)
	mbrRepo := sqlxrepos.NewMemberRepository(dbx)
	trnRepo := sqlxrepos.NewTrainerRepository(dbx)
	clsRepo := sqlxrepos.NewClassRepository(dbx)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(usrRepo, mailSvc)
	mbrSvc := member.NewService(mbrRepo)
	trnSvc := trainer.NewService(trnRepo)
	clsSvc := class.NewService(clsRepo)
	anlSvc := analytics.NewService(mbrSvc, trnSvc, clsSvc, usrSvc, analytics.NewRandSampler())
	rptSvc := report.NewService(mbrSvc, clsSvc, trnSvc, anlSvc)
	planSvc := plan.NewService(aisvc.NewOpenAIGenerator(conf), logger)

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// shutdown channel; listens for interrupts and in-app shutdown signals
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:    conf.Server.Addr(),
			Logger:     logger,
			ShutdownFn: func() { shutdownChan <- syscall.SIGTERM },

			UserSvc:      usrSvc,
			MemberSvc:    mbrSvc,
			TrainerSvc:   trnSvc,
			ClassSvc:     clsSvc,
			AnalyticsSvc: anlSvc,
			ReportSvc:    rptSvc,
			PlanSvc:      planSvc,
		},
	)

	go server.Start()

	sig := <-shutdownChan
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
