package models

// Credentials is the body of the register and login routes.
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ResendCodeRequest asks the identity service to send a new verification code.
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerificationRequest carries the code mailed to a newly registered account.
type VerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  int    `json:"code" binding:"required"`
}
