package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"layananwarga-backend/models"
	"layananwarga-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type LoginInput struct {
	Username string `json:"username"` // Either username or email may be supplied
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin. The 401 message is deliberately identical for
// unknown accounts and wrong passwords.
func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	loginID := strings.TrimSpace(input.Username)
	if loginID == "" {
		loginID = strings.TrimSpace(input.Email)
	}

	if loginID == "" || input.Password == "" {
		fieldErrors := make(map[string]string)
		if loginID == "" {
			fieldErrors["username"] = "Username wajib diisi"
		}
		if input.Password == "" {
			fieldErrors["password"] = "Password wajib diisi"
		}
		utils.RespondWithFieldErrors(c, http.StatusBadRequest, "Username dan password wajib diisi", fieldErrors)
		return
	}

	var admin models.Admin
	result := ac.DB.Where("(username = ? OR email = ?) AND is_active = ?", loginID, loginID, true).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondInvalidCredentials(c)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server. Silakan coba lagi.")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, admin.Password) {
		respondInvalidCredentials(c)
		return
	}

	token, err := utils.GenerateToken(admin.ID.String(), admin.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Terjadi kesalahan internal server. Silakan coba lagi.")
		return
	}

	// Update last login
	now := time.Now()
	ac.DB.Model(&admin).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login berhasil! Mengalihkan ke dashboard...",
		"token":   token,
		"data": gin.H{
			"admin": gin.H{
				"id":       admin.ID,
				"username": admin.Username,
				"email":    admin.Email,
				"role":     admin.Role,
			},
		},
	})
}

// Me returns the authenticated admin.
func (ac *AuthController) Me(c *gin.Context) {
	adminID, exists := c.Get("adminId")
	if !exists {
		utils.RespondWithError(c, http.StatusInternalServerError, "Admin ID not found in context")
		return
	}

	var admin models.Admin
	if err := ac.DB.First(&admin, "id = ?", adminID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Admin not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"admin": gin.H{
				"id":       admin.ID,
				"username": admin.Username,
				"email":    admin.Email,
				"role":     admin.Role,
			},
		},
	})
}

func respondInvalidCredentials(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": "Username atau password salah",
		"errors": gin.H{
			"general": "Username atau password salah",
		},
	})
}
