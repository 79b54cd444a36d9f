package accounts

import "time"

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Username carries no validation tag: it is applied as-is, even when empty.
type updateProfileRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword"`
}

// userResponse never carries the password hash. RegistrationDate is only set
// by the postgres-backed store.
type userResponse struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	RegistrationDate *time.Time `json:"registrationDate,omitempty"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

type listItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newUserResponse(a *Account) userResponse {
	resp := userResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
	if !a.RegisteredAt.IsZero() {
		t := a.RegisteredAt
		resp.RegistrationDate = &t
	}
	return resp
}
