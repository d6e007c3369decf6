package handlers

import (
	"net/http"
	"time"

	"barberbook/internal/http/middleware"
	"barberbook/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req services.RegisterInput
	if !BindJSONOrError(c, &req) {
		return
	}

	id, err := authService(c).Register(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "registration successful",
		"customer_id": id,
	})
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	customer, ok, err := authService(c).Verify(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "email or password incorrect")
		return
	}

	token, err := issueToken(customer.ID, middleware.RoleCustomer)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"customer": customer,
	})
}

// POST /api/auth/staff-login
func StaffLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	staff, ok, err := authService(c).VerifyStaff(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !ok {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "email or password incorrect")
		return
	}

	token, err := issueToken(staff.ID, middleware.RoleStaff)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"staff": staff,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// POST /api/auth/change-password
func ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := authService(c).ChangePassword(middleware.GetUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

func issueToken(userID int64, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(cfg.JWTSecret))
}
