package store_test

import (
	"context"
	"errors"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jonmartinstorm/repokontekst/internal/store"
)

var _ = Describe("PostgresStore", func() {
	var (
		pg   *store.PostgresStore
		mock sqlmock.Sqlmock
	)

	BeforeEach(func() {
		db, m, err := sqlmock.New()
		Expect(err).To(BeNil())
		mock = m
		pg = &store.PostgresStore{DB: db}
		pg.SetContext(context.Background())
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.ExpectClose()
		Expect(pg.Close()).To(Succeed())
	})

	It("skal gi nil for ukjent nøkkel", func() {
		mock.ExpectQuery("SELECT value FROM kontekst_kv").
			WithArgs("jobs").
			WillReturnRows(sqlmock.NewRows([]string{"value"}))

		data, err := pg.Get("jobs")
		Expect(err).To(BeNil())
		Expect(data).To(BeNil())
	})

	It("skal lese verdien for en kjent nøkkel", func() {
		rows := sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"a":1}`))
		mock.ExpectQuery("SELECT value FROM kontekst_kv").
			WithArgs("settings").
			WillReturnRows(rows)

		data, err := pg.Get("settings")
		Expect(err).To(BeNil())
		Expect(string(data)).To(Equal(`{"a":1}`))
	})

	It("skal upserte ved Set", func() {
		mock.ExpectExec("INSERT INTO kontekst_kv").
			WithArgs("jobs", []byte(`[]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		Expect(pg.Set("jobs", []byte(`[]`))).To(Succeed())
	})

	It("skal slette ved Delete", func() {
		mock.ExpectExec("DELETE FROM kontekst_kv").
			WithArgs("jobs").
			WillReturnResult(sqlmock.NewResult(0, 1))

		Expect(pg.Delete("jobs")).To(Succeed())
	})

	It("skal pakke databasefeil som PersistenceError", func() {
		mock.ExpectExec("INSERT INTO kontekst_kv").
			WithArgs("jobs", []byte(`[]`)).
			WillReturnError(errors.New("kablene er kuttet"))

		err := pg.Set("jobs", []byte(`[]`))
		var perr *store.PersistenceError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.Op).To(Equal("skriving"))
	})
})
