package request

import "net/url"

type SignupRequest struct {
	Username        string `form:"username" json:"username" validate:"required,min=3,max=150,username"`
	Password        string `form:"password" json:"password" validate:"required,min=8,maxbytes=72"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm" validate:"required,eqfield=Password"`
}

func (r *SignupRequest) FromForm(values url.Values) FieldErrors {
	r.Username = formString(values, "username")
	r.Password = values.Get("password")
	r.PasswordConfirm = values.Get("password_confirm")
	return nil
}

type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=150"`
	Password string `form:"password" json:"password" validate:"required"`
	Next     string `form:"next" json:"next,omitempty"`
}

func (r *LoginRequest) FromForm(values url.Values) FieldErrors {
	r.Username = formString(values, "username")
	r.Password = values.Get("password")
	r.Next = formString(values, "next")
	return nil
}

// ClientMeta is stored on the session for auditing.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}
