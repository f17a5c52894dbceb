package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/middleware"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/store"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the current user's profile.
type ProfileHandler struct {
	Users *store.UserStore
}

func NewProfileHandler(users *store.UserStore) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

// GetProfile returns the authenticated user, password hash excluded.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "User tidak ditemukan")
		} else {
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat mengambil data profil")
		}
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"user": userBody(user),
	})
}

type updateProfileReq struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

// UpdateProfile replaces name and email of the authenticated user.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Please authenticate.")
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Nama tidak boleh kosong")
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		util.Error(c, http.StatusBadRequest, "Nama tidak boleh kosong")
		return
	}
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		if err := util.ValidateEmail(util.NormalizeEmail(*req.Email)); err != nil {
			util.Error(c, http.StatusBadRequest, "Format email tidak valid")
			return
		}
	}

	user, err := h.Users.UpdateProfile(userID, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidInput):
			util.Error(c, http.StatusBadRequest, "Nama tidak boleh kosong")
		case errors.Is(err, store.ErrDuplicateEmail):
			util.Error(c, http.StatusBadRequest, "Email sudah terdaftar")
		case errors.Is(err, store.ErrNotFound):
			util.Error(c, http.StatusNotFound, "User tidak ditemukan")
		default:
			util.Error(c, http.StatusInternalServerError, "Terjadi kesalahan saat memperbarui profil")
		}
		return
	}

	util.Success(c, http.StatusOK, util.Response{
		"message": "Profil berhasil diperbarui",
		"user":    userBody(user),
	})
}
