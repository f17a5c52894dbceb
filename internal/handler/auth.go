package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/middleware"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/store"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration, login and password change.
type AuthHandler struct {
	Users     *store.UserStore
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthHandler(users *store.UserStore, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

func userBody(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"name":      u.Name,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

// ---------- register ----------

type registerReq struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
}

func (r *registerReq) fieldErrors() []gin.H {
	var errs []gin.H
	r.Username = strings.TrimSpace(r.Username)
	r.Name = strings.TrimSpace(r.Name)

	switch {
	case r.Username == "":
		errs = append(errs, gin.H{"field": "username", "message": "Username harus diisi"})
	case len(r.Username) < 3:
		errs = append(errs, gin.H{"field": "username", "message": "Username minimal 3 karakter"})
	}
	switch {
	case r.Password == "":
		errs = append(errs, gin.H{"field": "password", "message": "Password harus diisi"})
	case len(r.Password) < 6:
		errs = append(errs, gin.H{"field": "password", "message": "Password minimal 6 karakter"})
	}
	if r.Email != nil && strings.TrimSpace(*r.Email) != "" {
		if err := util.ValidateEmail(util.NormalizeEmail(*r.Email)); err != nil {
			errs = append(errs, gin.H{"field": "email", "message": "Format email tidak valid"})
		}
	}
	if r.Name != "" && len([]rune(r.Name)) < 2 {
		errs = append(errs, gin.H{"field": "name", "message": "Nama minimal 2 karakter"})
	}
	return errs
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Data registrasi tidak valid")
		return
	}

	if errs := req.fieldErrors(); len(errs) > 0 {
		util.ValidationError(c, http.StatusBadRequest, "Data registrasi tidak valid", errs)
		return
	}

	// display name falls back to the username
	if req.Name == "" {
		req.Name = req.Username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat registrasi")
		return
	}

	user, err := h.Users.Create(req.Username, string(hash), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateUsername):
			util.Error(c, http.StatusBadRequest, "Username sudah digunakan")
		case errors.Is(err, store.ErrDuplicateEmail):
			util.Error(c, http.StatusBadRequest, "Email sudah terdaftar")
		case errors.Is(err, store.ErrInvalidInput):
			util.Error(c, http.StatusBadRequest, "Data registrasi tidak valid")
		default:
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat registrasi")
		}
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat registrasi")
		return
	}

	util.Success(c, http.StatusCreated, util.Response{
		"token": token,
		"user":  userBody(user),
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Data login tidak valid")
		return
	}

	user, err := h.Users.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// same message as a bad password, so usernames cannot be probed
			util.Error(c, http.StatusUnauthorized, "Username atau password salah")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat login")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, "Username atau password salah")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat login")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"token": token,
		"user":  userBody(user),
	})
}

// ---------- change password ----------

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Semua field harus diisi")
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		util.Error(c, http.StatusBadRequest, "Semua field harus diisi")
		return
	}
	if len(req.NewPassword) < 6 {
		util.Error(c, http.StatusBadRequest, "Kata sandi baru minimal 6 karakter")
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "User tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Gagal mengubah kata sandi")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		util.Error(c, http.StatusBadRequest, "Kata sandi saat ini tidak sesuai")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengubah kata sandi")
		return
	}

	if err := h.Users.SetPasswordHash(user.ID, string(hash)); err != nil {
		util.Error(c, http.StatusInternalServerError, "Gagal mengubah kata sandi")
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"message": "Kata sandi berhasil diubah",
	})
}
