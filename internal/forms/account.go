package forms

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

const MaxUploadSize = 4 << 20

type RegistrationForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	Errors          Errors
}

func NewRegistrationForm(r *http.Request) *RegistrationForm {
	return &RegistrationForm{
		Username:        trimmed(r, "username"),
		Email:           trimmed(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Errors:          Errors{},
	}
}

func (f *RegistrationForm) Validate(ctx context.Context, users Users) (bool, error) {
	validateUsername(f.Errors, f.Username)
	validateEmail(f.Errors, f.Email)
	required(f.Errors, "Password", f.Password)
	if required(f.Errors, "ConfirmPassword", f.ConfirmPassword) {
		equalTo(f.Errors, "ConfirmPassword", f.ConfirmPassword, f.Password)
	}
	if err := checkTaken(ctx, users, f.Errors, f.Username, f.Email, 0); err != nil {
		return false, err
	}
	return f.Errors.Valid(), nil
}

type LoginForm struct {
	Email    string
	Password string
	Remember bool
	Errors   Errors
}

func NewLoginForm(r *http.Request) *LoginForm {
	return &LoginForm{
		Email:    trimmed(r, "email"),
		Password: r.PostFormValue("password"),
		Remember: r.PostFormValue("remember") != "",
		Errors:   Errors{},
	}
}

func (f *LoginForm) Validate() bool {
	validateEmail(f.Errors, f.Email)
	required(f.Errors, "Password", f.Password)
	return f.Errors.Valid()
}

// UpdateAccountForm — смена имени, email и аватара.
// Picture равен nil, если файл не загружали.
type UpdateAccountForm struct {
	Username    string
	Email       string
	Picture     multipart.File
	PictureName string
	PictureSize int64
	Errors      Errors
}

// NewUpdateAccountForm разбирает multipart-запрос; вызывающий закрывает Picture
func NewUpdateAccountForm(w http.ResponseWriter, r *http.Request) (*UpdateAccountForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+1<<20)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	f := &UpdateAccountForm{
		Username: trimmed(r, "username"),
		Email:    trimmed(r, "email"),
		Errors:   Errors{},
	}
	file, header, err := r.FormFile("picture")
	switch {
	case err == nil && header.Filename != "":
		f.Picture = file
		f.PictureName = header.Filename
		f.PictureSize = header.Size
	case err == nil:
		file.Close()
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		return nil, err
	}
	return f, nil
}

func (f *UpdateAccountForm) Validate(ctx context.Context, users Users, userID uint) (bool, error) {
	validateUsername(f.Errors, f.Username)
	validateEmail(f.Errors, f.Email)
	if f.Picture != nil {
		switch strings.ToLower(filepath.Ext(f.PictureName)) {
		case ".jpg", ".jpeg", ".png":
		default:
			f.Errors.Add("Picture", "File does not have an approved extension: jpg, png")
		}
		// Лимит тела запроса чуть больше MaxUploadSize, чтобы вместить остальные поля
		if f.PictureSize > MaxUploadSize {
			f.Errors.Add("Picture", "File is too large.")
		}
	}
	if err := checkTaken(ctx, users, f.Errors, f.Username, f.Email, userID); err != nil {
		return false, err
	}
	return f.Errors.Valid(), nil
}

func (f *UpdateAccountForm) Close() {
	if f.Picture != nil {
		f.Picture.Close()
	}
}

type RequestResetForm struct {
	Email  string
	Errors Errors
}

func NewRequestResetForm(r *http.Request) *RequestResetForm {
	return &RequestResetForm{Email: trimmed(r, "email"), Errors: Errors{}}
}

// Validate требует, чтобы email принадлежал существующему аккаунту
func (f *RequestResetForm) Validate(ctx context.Context, users Users) (bool, error) {
	validateEmail(f.Errors, f.Email)
	if !f.Errors.Valid() {
		return false, nil
	}
	exists, err := users.EmailTaken(ctx, f.Email, 0)
	if err != nil {
		return false, err
	}
	if !exists {
		f.Errors.Add("Email", "There is no account with that email. You must register first.")
	}
	return f.Errors.Valid(), nil
}

type ResetPasswordForm struct {
	Password        string
	ConfirmPassword string
	Errors          Errors
}

func NewResetPasswordForm(r *http.Request) *ResetPasswordForm {
	return &ResetPasswordForm{
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
		Errors:          Errors{},
	}
}

func (f *ResetPasswordForm) Validate() bool {
	required(f.Errors, "Password", f.Password)
	if required(f.Errors, "ConfirmPassword", f.ConfirmPassword) {
		equalTo(f.Errors, "ConfirmPassword", f.ConfirmPassword, f.Password)
	}
	return f.Errors.Valid()
}
