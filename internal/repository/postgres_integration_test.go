package repository

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"job-connect/internal/config"
	"job-connect/internal/database"
	"job-connect/internal/database/migration"
	dbpostgres "job-connect/internal/database/postgres"
	"job-connect/internal/domain/account"
	"job-connect/internal/domain/application"
	"job-connect/internal/domain/job"
	"job-connect/internal/domain/profile"
	"job-connect/internal/domain/skill"
	"job-connect/internal/pkg/logger"
	"job-connect/migrations"

	"github.com/google/uuid"
)

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("JOBCONNECT_TEST_DB_SSL_MODE"), "disable")

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set JOBCONNECT_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}

	db, err := dbpostgres.Connect(ctx, config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}, logger.Discard())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	if err := (migration.Runner{FS: migrations.FS}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func TestIntegration_PostgresStore_ApplyFlow(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	store := NewPostgresStore(db)
	suffix := uuid.NewString()[:8]

	recruiterAcc := account.Account{ID: uuid.New(), Username: "it-recruiter-" + suffix, PasswordHash: "x", Role: account.RoleRecruiter}
	applicantAcc := account.Account{ID: uuid.New(), Username: "it-applicant-" + suffix, PasswordHash: "x", Role: account.RoleApplicant}
	sk, err := store.Skills().Create(ctx, skill.Skill{Name: "ItSkill-" + suffix})
	if err != nil {
		t.Fatalf("create skill: %v", err)
	}
	defer func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1 OR id = $2`, recruiterAcc.ID, applicantAcc.ID)
		_, _ = db.Exec(context.Background(), `DELETE FROM skills WHERE id = $1`, sk.ID)
	}()

	for _, acc := range []account.Account{recruiterAcc, applicantAcc} {
		if err := store.Accounts().Create(ctx, acc); err != nil {
			t.Fatalf("create account %s: %v", acc.Username, err)
		}
	}
	if err := store.Accounts().Create(ctx, recruiterAcc); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate account, got %v", err)
	}

	rp := profile.RecruiterProfile{ID: uuid.New(), AccountID: recruiterAcc.ID, CompanyName: "Acme"}
	ap := profile.ApplicantProfile{ID: uuid.New(), AccountID: applicantAcc.ID, Headline: "Gopher"}

	var created job.Job
	err = store.WithTx(ctx, func(tx Store) error {
		if err := tx.RecruiterProfiles().Create(ctx, rp); err != nil {
			return err
		}
		if err := tx.ApplicantProfiles().Create(ctx, ap); err != nil {
			return err
		}
		j, err := tx.Jobs().Create(ctx, job.Job{ID: uuid.New(), RecruiterID: rp.ID, Title: "Integration Engineer", Description: "d", Location: "Remote", IsActive: true})
		if err != nil {
			return err
		}
		created = j
		return tx.Jobs().ReplaceSkills(ctx, j.ID, []uuid.UUID{sk.ID})
	})
	if err != nil {
		t.Fatalf("seed tx: %v", err)
	}

	found, err := store.Jobs().Search(ctx, strings.ToUpper("itskill-"+suffix))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Fatalf("expected search by skill name to find the job, got %+v", found)
	}

	a := application.Application{ID: uuid.New(), ApplicantID: ap.ID, JobID: created.ID, ResumeRef: "applications/x.pdf", Status: application.StatusPending}
	if _, err := store.Applications().Create(ctx, a); err != nil {
		t.Fatalf("create application: %v", err)
	}
	a.ID = uuid.New()
	if _, err := store.Applications().Create(ctx, a); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for second application, got %v", err)
	}

	got, err := store.Applications().ListByRecruiter(ctx, rp.ID)
	if err != nil {
		t.Fatalf("list by recruiter: %v", err)
	}
	if len(got) != 1 || got[0].Status != application.StatusPending {
		t.Fatalf("expected one pending application, got %+v", got)
	}
}
