package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/config"
	dbinit "github.com/Priteshsurale/blogging-website/internal/db"
	"github.com/Priteshsurale/blogging-website/internal/handlers"
	"github.com/Priteshsurale/blogging-website/internal/images"
	"github.com/Priteshsurale/blogging-website/internal/models"
	"github.com/Priteshsurale/blogging-website/internal/store"
	"github.com/Priteshsurale/blogging-website/ui"
)

func main() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		errorLog.Fatal("Ошибка конфигурации: ", err)
	}

	db, err := dbinit.Open(cfg.DatabaseURL, !cfg.Production())
	if err != nil {
		errorLog.Fatal(err)
	}
	defer dbinit.Close(db)

	if err = dbinit.InitDatabase(db); err != nil {
		errorLog.Fatal("Ошибка при инициализации схемы: ", err)
	}
	infoLog.Println("База данных подключена")

	st := store.New(db)
	if n, err := st.Sessions.CleanupExpired(context.Background()); err != nil {
		errorLog.Printf("не удалось очистить просроченные сессии: %v", err)
	} else if n > 0 {
		infoLog.Printf("удалено просроченных сессий: %d", n)
	}

	templates, err := handlers.ParseTemplates(ui.Files)
	if err != nil {
		errorLog.Fatal(err)
	}
	for _, tmpl := range templates.Templates() {
		infoLog.Println("Загружен шаблон:", tmpl.Name())
	}

	avatars := images.NewAvatars(cfg.UploadDir)
	if err := avatars.EnsureDefault(models.DefaultImageFile); err != nil {
		errorLog.Fatal(err)
	}

	router := handlers.NewRouter(handlers.Deps{
		Store:         st,
		Templates:     templates,
		Tokens:        auth.NewTokens(cfg.SecretKey, cfg.ResetTokenTTL),
		Avatars:       avatars,
		Static:        ui.Static(),
		InfoLog:       infoLog,
		ErrorLog:      errorLog,
		SecureCookies: cfg.Production(),
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		ErrorLog:     errorLog,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	infoLog.Printf("Сервер запущен на http://localhost%s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil {
		errorLog.Fatal("Ошибка запуска сервера: ", err)
	}
}
