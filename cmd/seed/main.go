package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Priteshsurale/blogging-website/internal/auth"
	"github.com/Priteshsurale/blogging-website/internal/config"
	dbinit "github.com/Priteshsurale/blogging-website/internal/db"
	"github.com/Priteshsurale/blogging-website/internal/store"
)

// Заполняет базу демо-автором и несколькими постами для разработки
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := dbinit.Open(cfg.DatabaseURL, false)
	if err != nil {
		log.Fatal(err)
	}
	defer dbinit.Close(db)

	if err := dbinit.InitDatabase(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	st := store.New(db)

	user, err := st.Users.ByEmail(ctx, "demo@blog.com")
	if errors.Is(err, store.ErrNotFound) {
		hashed, err := auth.HashPassword("password")
		if err != nil {
			log.Fatal(err)
		}
		user, err = st.Users.Create(ctx, "demo", "demo@blog.com", hashed)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("создан пользователь demo@blog.com / password")
	} else if err != nil {
		log.Fatal(err)
	}

	page, err := st.Posts.ListByAuthor(ctx, user.ID, 1, 1)
	if err != nil {
		log.Fatal(err)
	}
	if page.Total > 0 {
		log.Printf("у пользователя уже есть посты (%d), пропускаем", page.Total)
		return
	}

	for i := 1; i <= 8; i++ {
		title := fmt.Sprintf("Blog Post %d", i)
		if _, err := st.Posts.Create(ctx, user.ID, title, fmt.Sprintf("Content of post number %d.", i)); err != nil {
			log.Fatal(err)
		}
	}
	log.Println("добавлено 8 демо-постов")
}
