package authentication

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"os"

	"flight-training-backend/config"
	"flight-training-backend/models/users"

	"github.com/gorilla/sessions"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var googleOauthConfig = &oauth2.Config{
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
	Endpoint:     google.Endpoint,
}

func init() {
	// Настройки для сессий
	config.Store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 8, // Время жизни сессии в секундах
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleGoogleLogin: начало входа через Google
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if googleOauthConfig.ClientID == "" || googleOauthConfig.ClientSecret == "" || googleOauthConfig.RedirectURL == "" {
		log.Println("Не установлены переменные окружения для Google OAuth")
		http.Error(w, "Google login is not configured", http.StatusServiceUnavailable)
		return
	}

	state := "google"
	url := googleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// HandleGoogleCallback: обмен кода на токен и вход пользователя
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := "google"
	if r.FormValue("state") != state {
		log.Println("Invalid OAuth state")
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	token, err := googleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		log.Printf("Error while exchanging code for token: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	resp, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + token.AccessToken)
	if err != nil {
		log.Printf("Error while fetching user info: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}
	defer resp.Body.Close()

	content, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading response: %s", err.Error())
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	var info googleUserInfo
	if err := json.Unmarshal(content, &info); err != nil || info.Email == "" {
		log.Printf("Error parsing user info: %v", err)
		http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
		return
	}

	// Находим или заводим пользователя. Новым через Google даем роль
	// обучаемого; координатора и тренера назначают отдельно.
	var user users.User
	err = config.DB.Where("email = ? AND provider = ?", info.Email, "google").First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = users.User{
			Name:     info.Name,
			Email:    info.Email,
			Role:     "trainee",
			Provider: "google",
		}
		if err := config.DB.Create(&user).Error; err != nil {
			log.Printf("Ошибка при создании пользователя: %v", err)
			http.Error(w, "Error creating user", http.StatusInternalServerError)
			return
		}
	} else if err != nil {
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	tokenString, err := IssueToken(&user)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	user.AccessToken = tokenString
	user.RefreshToken = token.RefreshToken
	if err := config.DB.Save(&user).Error; err != nil {
		http.Error(w, "Error updating user token", http.StatusInternalServerError)
		return
	}

	session, _ := config.Store.Get(r, "session-name")
	session.Values["user"] = user.ID
	session.Save(r, w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": tokenString})
}
