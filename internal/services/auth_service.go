package services

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"math/big"
	"strings"

	"barberbook/internal/domain"
	"barberbook/internal/domain/models"
	"barberbook/internal/repositories"
	"barberbook/internal/utils"

	"golang.org/x/crypto/pbkdf2"
)

// saltAlphabet avoids visually ambiguous characters (0/O, 1/l/I).
const saltAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

const saltLength = 16

const defaultKDFIterations = 120_000

// AuthService generates salts, derives password digests, and verifies login
// attempts. The customers table is the only credential store; digests are
// PBKDF2-SHA256 hex, fixed width, compared in constant time.
type AuthService struct {
	Customers  repositories.CustomerRepository
	Staff      repositories.StaffRepository
	Iterations int
	RequestID  string
}

type RegisterInput struct {
	Surname     string `json:"surname"`
	FirstName   string `json:"first_name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"date_of_birth"`
}

func (s AuthService) iterations() int {
	if s.Iterations > 0 {
		return s.Iterations
	}
	return defaultKDFIterations
}

// GenerateSalt returns a fresh random salt drawn from the unambiguous
// alphabet. Each registration and credential rotation gets its own.
func (s AuthService) GenerateSalt() (string, error) {
	out := make([]byte, saltLength)
	max := big.NewInt(int64(len(saltAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = saltAlphabet[n.Int64()]
	}
	return string(out), nil
}

// HashPassword derives the stored digest for (password, salt). Deterministic;
// the same pair always yields the same 64-char hex token.
func (s AuthService) HashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), s.iterations(), 32, sha256.New)
	return hex.EncodeToString(key)
}

// Verify recomputes the digest for the stored salt and compares in constant
// time. An unknown email verifies false without error so callers cannot
// distinguish it from a wrong password.
func (s AuthService) Verify(email, password string) (models.Customer, bool, error) {
	c, err := s.Customers.GetByEmail(normalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Customer{}, false, nil
		}
		return models.Customer{}, false, err
	}
	digest := s.HashPassword(password, c.Salt)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(c.PasswordDigest)) != 1 {
		return models.Customer{}, false, nil
	}
	return c, true, nil
}

// VerifyStaff is the staff-table membership check behind the admin surface.
func (s AuthService) VerifyStaff(email, password string) (models.Staff, bool, error) {
	st, err := s.Staff.GetByEmail(normalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			return models.Staff{}, false, nil
		}
		return models.Staff{}, false, err
	}
	digest := s.HashPassword(password, st.Salt)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(st.PasswordDigest)) != 1 {
		return models.Staff{}, false, nil
	}
	return st, true, nil
}

// Register validates the profile, derives a fresh salt and digest, and
// persists the customer. Duplicate emails surface as ErrDuplicateEmail.
func (s AuthService) Register(in RegisterInput) (int64, error) {
	in.Surname = strings.TrimSpace(in.Surname)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Email = normalizeEmail(in.Email)

	if in.Surname == "" {
		return 0, domain.ValidationError{Field: "surname", Msg: "required"}
	}
	if in.FirstName == "" {
		return 0, domain.ValidationError{Field: "first_name", Msg: "required"}
	}
	if !validEmail(in.Email) {
		return 0, domain.ValidationError{Field: "email", Msg: "not a valid email address"}
	}
	if in.Password == "" {
		return 0, domain.ValidationError{Field: "password", Msg: "required"}
	}
	if !utils.ValidBirthDate(in.DateOfBirth) {
		return 0, domain.ValidationError{Field: "date_of_birth", Msg: "must be DD/MM/YYYY"}
	}

	if _, err := s.Customers.GetByEmail(in.Email); err == nil {
		return 0, domain.ErrDuplicateEmail
	} else if !domain.IsNotFound(err) {
		return 0, err
	}

	salt, err := s.GenerateSalt()
	if err != nil {
		return 0, err
	}

	id, err := s.Customers.Create(models.Customer{
		Surname:        in.Surname,
		FirstName:      in.FirstName,
		Email:          in.Email,
		PasswordDigest: s.HashPassword(in.Password, salt),
		Salt:           salt,
		DateOfBirth:    strings.TrimSpace(in.DateOfBirth),
	})
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "auth", "register", "customer registered")
	return id, nil
}

// ChangePassword rotates the credential: verifies the current password, then
// stores a new salt and digest together.
func (s AuthService) ChangePassword(customerID int64, current, next string) error {
	if next == "" {
		return domain.ValidationError{Field: "new_password", Msg: "required"}
	}
	c, err := s.Customers.GetByID(customerID)
	if err != nil {
		return err
	}
	digest := s.HashPassword(current, c.Salt)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(c.PasswordDigest)) != 1 {
		return domain.ValidationError{Field: "current_password", Msg: "incorrect"}
	}
	salt, err := s.GenerateSalt()
	if err != nil {
		return err
	}
	if err := s.Customers.UpdateCredential(customerID, salt, s.HashPassword(next, salt)); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "change_password", "credential rotated")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validEmail does a basic structural check.
func validEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
