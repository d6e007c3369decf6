package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"barberbook/internal/domain/models"
	"barberbook/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/haircuts
func GetHaircuts(c *gin.Context) {
	haircuts, err := (repositories.HaircutRepository{}).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"haircuts": haircuts})
}

type haircutRequest struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	DurationMin int    `json:"duration_min"`
}

func (r haircutRequest) validate() (models.Haircut, bool) {
	name := strings.TrimSpace(r.Name)
	if name == "" || r.Price < 0 || r.DurationMin <= 0 {
		return models.Haircut{}, false
	}
	return models.Haircut{Name: name, Price: r.Price, DurationMin: r.DurationMin}, true
}

// POST /api/admin/haircuts
func CreateHaircut(c *gin.Context) {
	var req haircutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h, ok := req.validate()
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "name, non-negative price, and positive duration are required")
		return
	}

	id, err := (repositories.HaircutRepository{}).Create(h)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.ID = id
	c.JSON(http.StatusCreated, gin.H{"haircut": h})
}

// PUT /api/admin/haircuts/:id
func UpdateHaircut(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_haircut_id", "haircut id must be a positive integer")
		return
	}
	var req haircutRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	h, ok := req.validate()
	if !ok {
		respondError(c, http.StatusBadRequest, "validation_error", "name, non-negative price, and positive duration are required")
		return
	}
	h.ID = id

	if err := (repositories.HaircutRepository{}).Update(h); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"haircut": h})
}

// DELETE /api/admin/haircuts/:id
func DeleteHaircut(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_haircut_id", "haircut id must be a positive integer")
		return
	}
	if err := (repositories.HaircutRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "haircut deleted"})
}
