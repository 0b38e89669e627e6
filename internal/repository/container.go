package repository

import (
	"gorm.io/gorm"
)

//go:generate mockgen -source=form.go -destination=mock/form.go -package=mock
//go:generate mockgen -source=submission.go -destination=mock/submission.go -package=mock
//go:generate mockgen -source=user.go -destination=mock/user.go -package=mock
//go:generate mockgen -source=integration.go -destination=mock/integration.go -package=mock
//go:generate mockgen -source=audit.go -destination=mock/audit.go -package=mock

type Repos struct {
	User        UserRepo
	Audit       AuditRepo
	Form        FormRepo
	Submission  SubmissionRepo
	Integration IntegrationRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		User:        NewUserRepo(db),
		Audit:       NewAuditRepo(db),
		Form:        NewFormRepo(db),
		Submission:  NewSubmissionRepo(db),
		Integration: NewIntegrationRepo(db),
		db:          db,
	}
}

func (r *Repos) Begin() *gorm.DB {
	return r.db.Begin()
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		User:        r.User.WithTx(tx),
		Audit:       r.Audit.WithTx(tx),
		Form:        r.Form.WithTx(tx),
		Submission:  r.Submission.WithTx(tx),
		Integration: r.Integration.WithTx(tx),
		db:          tx,
	}
}

// ExecTx runs fn inside a transaction. Without a database (unit tests with
// mocked repositories) fn runs directly against r.
func (r *Repos) ExecTx(fn func(*Repos) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
