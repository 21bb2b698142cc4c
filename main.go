package main

import (
	"log"
	"net/http"
	"os"

	"flight-training-backend/config"
	"flight-training-backend/controllers/authentication"
	catalogControllers "flight-training-backend/controllers/catalog"
	"flight-training-backend/controllers/httpCors"
	"flight-training-backend/controllers/trainings"
	"flight-training-backend/models/catalog"
	"flight-training-backend/models/training"
	"flight-training-backend/models/users"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Файл .env не найден, используем переменные окружения")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // Устанавливаем порт по умолчанию
	}

	// Инициализируем базу данных
	err := config.InitDB()
	if err != nil {
		log.Fatalf("Ошибка инициализации базы данных: %v", err)
	}

	// Выполняем миграцию базы данных
	err = config.DB.AutoMigrate(
		&users.User{},
		&catalog.TrainingModule{},
		&catalog.Submodule{},
		&training.UserModule{},
		&training.SubmoduleProgress{},
		&training.Signature{},
	)
	if err != nil {
		log.Fatalf("Ошибка миграции базы данных: %v", err)
	}

	// Проверка подключения к базе данных
	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatalf("Ошибка получения подключения к базе данных: %v", err)
	}

	err = sqlDB.Ping()
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	} else {
		log.Println("Подключение к базе данных успешно")
	}

	r := mux.NewRouter()

	// Аутентификация
	r.HandleFunc("/register", authentication.Register).Methods("POST")
	r.HandleFunc("/login", authentication.Login).Methods("POST")
	r.HandleFunc("/profile", authentication.GetProfile).Methods("GET")
	r.HandleFunc("/logout", authentication.Logout).Methods("GET")
	r.HandleFunc("/login/google", authentication.HandleGoogleLogin).Methods("GET")
	r.HandleFunc("/callback/google", authentication.HandleGoogleCallback).Methods("GET")

	// Справочник программ
	r.HandleFunc("/catalog/modules", catalogControllers.ListModules).Methods("GET")
	r.HandleFunc("/catalog/modules", authentication.AuthMiddleware(catalogControllers.CreateModule)).Methods("POST")
	r.HandleFunc("/catalog/modules/{id}", catalogControllers.GetModuleByID).Methods("GET")

	// Назначения
	r.HandleFunc("/assignments", authentication.AuthMiddleware(trainings.CreateAssignment)).Methods("POST")
	r.HandleFunc("/assignments", authentication.AuthMiddleware(trainings.ListAssignments)).Methods("GET")
	r.HandleFunc("/assignments/{id}", authentication.AuthMiddleware(trainings.GetAssignment)).Methods("GET")
	r.HandleFunc("/assignments/{id}/notes", authentication.AuthMiddleware(trainings.UpdateNotes)).Methods("PUT")
	r.HandleFunc("/assignments/{id}", authentication.AuthMiddleware(trainings.DeleteAssignment)).Methods("DELETE")

	// Прогресс и подписи
	r.HandleFunc("/progress/{id}", authentication.AuthMiddleware(trainings.GetProgress)).Methods("GET")
	r.HandleFunc("/progress/{id}/ojt", authentication.AuthMiddleware(trainings.SetOJT)).Methods("PUT")
	r.HandleFunc("/progress/{id}/practical", authentication.AuthMiddleware(trainings.SetPractical)).Methods("PUT")
	r.HandleFunc("/progress/{id}/sign", authentication.AuthMiddleware(trainings.SignUnit)).Methods("POST")
	r.HandleFunc("/signatures/{id}", authentication.AuthMiddleware(trainings.UnsignUnit)).Methods("DELETE")

	// Учебные циклы
	r.HandleFunc("/cycles/archive", authentication.AuthMiddleware(trainings.ArchiveCycle)).Methods("POST")
	r.HandleFunc("/cycles/restore", authentication.AuthMiddleware(trainings.RestoreCycle)).Methods("POST")
	r.HandleFunc("/cycles/years", authentication.AuthMiddleware(trainings.ListYears)).Methods("GET")

	// Статистика
	r.HandleFunc("/stats/trainees/{id}", authentication.AuthMiddleware(trainings.TraineeStats)).Methods("GET")

	handler := httpCors.CorsSettings().Handler(r)

	// Запускаем сервер
	log.Printf("Сервер запущен на порту %s", port)
	err = http.ListenAndServe(":"+port, handler)
	if err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
