package models

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

func (r LoginResponse) Validate() error {
	if err := required("login", "accessToken", r.AccessToken); err != nil {
		return err
	}
	return r.User.Validate()
}

// RefreshRequest is the body of POST /auth/refresh.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Role         Role   `json:"role"`
}

// TokenPair is returned by POST /auth/refresh. A missing refresh token means
// the server keeps the previous one valid.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (t TokenPair) Validate() error {
	return required("token pair", "accessToken", t.AccessToken)
}
