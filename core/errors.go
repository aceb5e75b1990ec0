package core

import "errors"

// User errors
var (
	ErrUserExists         = errors.New("user already exists")       // 401 (kept from the original API)
	ErrUserNotFound       = errors.New("user not found")            // 404 (401 on signin)
	ErrInvalidCredentials = errors.New("invalid email or password") // 401
)

// Verification / reset code errors
var (
	ErrAlreadyVerified = errors.New("account already verified")   // 400
	ErrNotVerified     = errors.New("account not verified")       // 401
	ErrCodeNotSent     = errors.New("verification code not sent") // 400
	ErrCodeExpired     = errors.New("verification code expired")  // 400
	ErrInvalidCode     = errors.New("invalid verification code")  // 400
	ErrMailRejected    = errors.New("recipient rejected by mail transport")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")               // 404
	ErrNotPostOwner = errors.New("post belongs to another user") // 401
)

// Validation errors (client input). The error text is the user-facing
// message returned for the first violated field.
var (
	ErrEmailRequired       = errors.New("email is required")
	ErrEmailLength         = errors.New("email must be between 6 and 60 characters")
	ErrInvalidEmail        = errors.New("email must be a valid .com or .net address")
	ErrPasswordRequired    = errors.New("password is required")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters")
	ErrPasswordWeak        = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrCodeRequired        = errors.New("code is required")
	ErrInvalidCodeFormat   = errors.New("code must be a 6 digit number")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title must be at most 80 characters")
	ErrDescriptionRequired = errors.New("description is required")
	ErrDescriptionTooLong  = errors.New("description must be at most 2000 characters")
)
