package services

import (
	"database/sql"
	"errors"
	"strings"
	"testing"

	"barberbook/internal/domain"
	"barberbook/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

const testIterations = 1000

func TestHashPasswordDeterministic(t *testing.T) {
	svc := AuthService{Iterations: testIterations}

	a := svc.HashPassword("secret", "saltsaltsaltsalt")
	b := svc.HashPassword("secret", "saltsaltsaltsalt")
	if a != b {
		t.Fatalf("same password and salt must produce the same digest")
	}
	if len(a) != 64 {
		t.Fatalf("digest must be 64 hex chars, got %d", len(a))
	}
	if svc.HashPassword("other", "saltsaltsaltsalt") == a {
		t.Fatalf("different passwords must produce different digests")
	}
	if svc.HashPassword("secret", "anothersalt.....") == a {
		t.Fatalf("different salts must produce different digests")
	}
}

func TestGenerateSaltShape(t *testing.T) {
	svc := AuthService{}

	s1, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt error: %v", err)
	}
	s2, err := svc.GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt error: %v", err)
	}
	if len(s1) != saltLength || len(s2) != saltLength {
		t.Fatalf("salt length wrong: %q %q", s1, s2)
	}
	if s1 == s2 {
		t.Fatalf("two salts should not collide")
	}
	for _, r := range s1 {
		if !strings.ContainsRune(saltAlphabet, r) {
			t.Fatalf("salt char %q outside alphabet", r)
		}
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := AuthService{
		Customers:  repositories.CustomerRepository{DB: db},
		Iterations: testIterations,
	}

	salt := "abcdefghjkmnpqrs"
	digest := svc.HashPassword("secret", salt)

	customerRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(
			[]string{"id", "surname", "first_name", "email", "password_digest", "salt", "date_of_birth"},
		).AddRow(1, "Smith", "Alex", "alex@example.com", digest, salt, "01/02/1990")
	}

	mock.ExpectQuery("SELECT .* FROM customers WHERE email=").
		WithArgs("alex@example.com").
		WillReturnRows(customerRow())
	mock.ExpectQuery("SELECT .* FROM customers WHERE email=").
		WithArgs("alex@example.com").
		WillReturnRows(customerRow())

	c, ok, err := svc.Verify("Alex@Example.com", "secret")
	if err != nil || !ok {
		t.Fatalf("expected verify true, got ok=%v err=%v", ok, err)
	}
	if c.ID != 1 {
		t.Fatalf("unexpected customer: %+v", c)
	}

	_, ok, err = svc.Verify("alex@example.com", "wrong")
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if ok {
		t.Fatalf("wrong password must not verify")
	}
}

func TestVerifyUnknownEmailIsFalseNotError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM customers WHERE email=").
		WillReturnError(sql.ErrNoRows)

	svc := AuthService{Customers: repositories.CustomerRepository{DB: db}, Iterations: testIterations}
	_, ok, err := svc.Verify("ghost@example.com", "whatever")
	if err != nil {
		t.Fatalf("unknown email should not error: %v", err)
	}
	if ok {
		t.Fatalf("unknown email must not verify")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := AuthService{Iterations: testIterations}

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing surname", RegisterInput{FirstName: "A", Email: "a@b.com", Password: "pw", DateOfBirth: "01/02/1990"}},
		{"missing first name", RegisterInput{Surname: "S", Email: "a@b.com", Password: "pw", DateOfBirth: "01/02/1990"}},
		{"bad email", RegisterInput{Surname: "S", FirstName: "A", Email: "not-an-email", Password: "pw", DateOfBirth: "01/02/1990"}},
		{"missing password", RegisterInput{Surname: "S", FirstName: "A", Email: "a@b.com", DateOfBirth: "01/02/1990"}},
		{"bad birth date format", RegisterInput{Surname: "S", FirstName: "A", Email: "a@b.com", Password: "pw", DateOfBirth: "1990-02-01"}},
		{"birth day out of range", RegisterInput{Surname: "S", FirstName: "A", Email: "a@b.com", Password: "pw", DateOfBirth: "32/02/1990"}},
		{"birth month out of range", RegisterInput{Surname: "S", FirstName: "A", Email: "a@b.com", Password: "pw", DateOfBirth: "01/13/1990"}},
		{"birth year out of range", RegisterInput{Surname: "S", FirstName: "A", Email: "a@b.com", Password: "pw", DateOfBirth: "01/02/1899"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(tc.in); !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM customers WHERE email=").
		WithArgs("taken@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "surname", "first_name", "email", "password_digest", "salt", "date_of_birth"},
		).AddRow(9, "S", "A", "taken@example.com", "d", "s", "01/02/1990"))

	svc := AuthService{Customers: repositories.CustomerRepository{DB: db}, Iterations: testIterations}
	_, err = svc.Register(RegisterInput{
		Surname: "S", FirstName: "A", Email: "taken@example.com",
		Password: "pw", DateOfBirth: "01/02/1990",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegisterPersistsCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT .* FROM customers WHERE email=").
		WithArgs("new@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("INSERT INTO customers").
		WillReturnResult(sqlmock.NewResult(5, 1))

	svc := AuthService{Customers: repositories.CustomerRepository{DB: db}, Iterations: testIterations}
	id, err := svc.Register(RegisterInput{
		Surname: "Smith", FirstName: "Alex", Email: "New@Example.com",
		Password: "pw", DateOfBirth: "01/02/1990",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5, got %d", id)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangePasswordRotatesSalt(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := AuthService{Customers: repositories.CustomerRepository{DB: db}, Iterations: testIterations}
	salt := "abcdefghjkmnpqrs"
	digest := svc.HashPassword("old-pw", salt)

	mock.ExpectQuery("SELECT .* FROM customers WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "surname", "first_name", "email", "password_digest", "salt", "date_of_birth"},
		).AddRow(1, "S", "A", "a@b.com", digest, salt, "01/02/1990"))
	mock.ExpectExec("UPDATE customers SET salt=").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.ChangePassword(1, "old-pw", "new-pw"); err != nil {
		t.Fatalf("change password returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	svc := AuthService{Customers: repositories.CustomerRepository{DB: db}, Iterations: testIterations}
	salt := "abcdefghjkmnpqrs"

	mock.ExpectQuery("SELECT .* FROM customers WHERE id=").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "surname", "first_name", "email", "password_digest", "salt", "date_of_birth"},
		).AddRow(1, "S", "A", "a@b.com", svc.HashPassword("old-pw", salt), salt, "01/02/1990"))

	if err := svc.ChangePassword(1, "guess", "new-pw"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
