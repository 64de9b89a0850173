package forms

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Errors — сообщения об ошибках по имени поля
type Errors map[string]string

// Add сохраняет только первую ошибку поля
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Users — проверки уникальности, которые нужны формам аккаунта
type Users interface {
	UsernameTaken(ctx context.Context, username string, exceptID uint) (bool, error)
	EmailTaken(ctx context.Context, email string, exceptID uint) (bool, error)
}

func required(errs Errors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "This field is required.")
		return false
	}
	return true
}

func length(errs Errors, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		errs.Add(field, fmt.Sprintf("Field must be between %d and %d characters long.", min, max))
	}
}

func email(errs Errors, field, value string) {
	if !emailRE.MatchString(value) {
		errs.Add(field, "Invalid email address.")
	}
}

func equalTo(errs Errors, field, value, other string) {
	if value != other {
		errs.Add(field, "Field must be equal to password.")
	}
}

func validateUsername(errs Errors, username string) {
	if required(errs, "Username", username) {
		length(errs, "Username", username, 2, 20)
	}
}

func validateEmail(errs Errors, value string) {
	if required(errs, "Email", value) {
		email(errs, "Email", value)
	}
}

// checkTaken добавляет ошибки для занятых имени и email;
// exceptID исключает из проверки самого пользователя
func checkTaken(ctx context.Context, users Users, errs Errors, username, emailAddr string, exceptID uint) error {
	if _, bad := errs["Username"]; !bad {
		taken, err := users.UsernameTaken(ctx, username, exceptID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("Username", "That username is taken. Please choose a different one.")
		}
	}
	if _, bad := errs["Email"]; !bad {
		taken, err := users.EmailTaken(ctx, emailAddr, exceptID)
		if err != nil {
			return err
		}
		if taken {
			errs.Add("Email", "That email is taken. Please choose a different one.")
		}
	}
	return nil
}

func trimmed(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
