package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/models"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := uc.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the dietary profile the validator reads.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var body struct {
		FullName  *string   `json:"fullName"`
		DietType  *string   `json:"dietType"`
		Allergies *[]string `json:"allergies"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body.DietType != nil {
		switch *body.DietType {
		case models.DietVegetarian, models.DietNonVegetarian, models.DietVegan, models.DietPescatarian:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dietType"})
			return
		}
	}

	userID := c.GetUint("userID")
	var user models.User
	if err := uc.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if body.FullName != nil {
		user.FullName = *body.FullName
	}
	if body.DietType != nil {
		user.DietType = *body.DietType
	}
	if body.Allergies != nil {
		user.Allergies = *body.Allergies
	}

	if err := uc.db.WithContext(c.Request.Context()).Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
