package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"storageguard/db"
	"storageguard/globals"
	"storageguard/middleware"
	"storageguard/models"
	"storageguard/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 24 * time.Hour

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	count, err := db.FarmersCollection.CountDocuments(r.Context(), bson.M{"username": input.Username})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	farmer := models.Farmer{
		FarmerID:  uuid.NewString(),
		Username:  input.Username,
		Password:  string(hash),
		Phone:     input.Phone,
		CreatedAt: time.Now(),
	}
	if _, err := db.FarmersCollection.InsertOne(r.Context(), farmer); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "farmer_id": farmer.FarmerID})
}

func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var farmer models.Farmer
	err := db.FarmersCollection.FindOne(r.Context(), bson.M{"username": input.Username}).Decode(&farmer)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(farmer.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, err := generateAccessToken(farmer)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	refreshToken, err := generateRefreshToken()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate refresh token")
		return
	}

	_, err = db.FarmersCollection.UpdateOne(
		r.Context(),
		bson.M{"farmerid": farmer.FarmerID},
		bson.M{"$set": bson.M{
			"refresh_token": hashToken(refreshToken),
			"last_login":    time.Now(),
		}},
	)
	if err != nil {
		log.Println("login bookkeeping failed:", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":       true,
		"token":         tokenString,
		"refresh_token": refreshToken,
		"farmer_id":     farmer.FarmerID,
	})
}

func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	farmerID := utils.GetUserIDFromRequest(r)
	_, err := db.FarmersCollection.UpdateOne(
		r.Context(),
		bson.M{"farmerid": farmerID},
		bson.M{"$unset": bson.M{"refresh_token": ""}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true})
}

func generateAccessToken(farmer models.Farmer) (string, error) {
	claims := &middleware.Claims{
		Username: farmer.Username,
		UserID:   farmer.FarmerID,
		Role:     "farmer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
