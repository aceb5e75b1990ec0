package fiber

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/okondo/bulletin/core"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type codeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (a *Adapter) signup(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid request body")
	}

	user, err := a.auth.SignUp(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, core.ErrUserExists):
			return fail(c, fiber.StatusUnauthorized, "User already exists!")
		default:
			a.logError(c, "signup failed", err)
			return failInternal(c)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Your account has been created successfully",
		"result":  user,
	})
}

func (a *Adapter) signin(c fiber.Ctx) error {
	var req credentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid request body")
	}

	token, _, err := a.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusUnauthorized, "User does not exists!")
		case errors.Is(err, core.ErrInvalidCredentials):
			return fail(c, fiber.StatusUnauthorized, "Invalid password.")
		default:
			a.logError(c, "signin failed", err)
			return failInternal(c)
		}
	}

	// The token travels in the body and in a cookie named after the
	// Authorization header, carrying the same Bearer value.
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "Bearer " + token,
		Expires:  time.Now().Add(a.opts.SessionTTL),
		HTTPOnly: a.opts.SecureCookies,
		Secure:   a.opts.SecureCookies,
	})

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"message": "Logged in successfully",
	})
}

// signout clears the cookie only. The token itself stays valid until its
// natural expiry; sessions are stateless.
func (a *Adapter) signout(c fiber.Ctx) error {
	c.ClearCookie(cookieName)
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (a *Adapter) sendVerificationCode(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := a.auth.SendVerificationCode(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User does not exists!")
		case errors.Is(err, core.ErrAlreadyVerified):
			return fail(c, fiber.StatusBadRequest, "You are already verified!")
		case errors.Is(err, core.ErrMailRejected):
			return fail(c, fiber.StatusBadRequest, "Code sent failed!")
		default:
			a.logError(c, "send verification code failed", err)
			return failInternal(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Code sent successfully!",
	})
}

func (a *Adapter) verifyVerificationCode(c fiber.Ctx) error {
	var req codeRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := a.auth.VerifyVerificationCode(c.Context(), req.Email, req.Code); err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User does not exist!")
		case errors.Is(err, core.ErrAlreadyVerified):
			return fail(c, fiber.StatusBadRequest, "You are already verified!")
		case errors.Is(err, core.ErrCodeNotSent):
			return fail(c, fiber.StatusBadRequest, "Verification code not sent!")
		case errors.Is(err, core.ErrCodeExpired):
			return fail(c, fiber.StatusBadRequest, "Verification code has expired!")
		case errors.Is(err, core.ErrInvalidCode):
			return fail(c, fiber.StatusBadRequest, "Invalid verification code!")
		default:
			a.logError(c, "verify verification code failed", err)
			return failInternal(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Your account has been verified successfully!",
	})
}

func (a *Adapter) changePassword(c fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid request body")
	}

	claims := sessionClaims(c)
	if err := a.auth.ChangePassword(c.Context(), claims, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, core.ErrNotVerified):
			return fail(c, fiber.StatusUnauthorized, "You are not verified!")
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User does not exists!")
		case errors.Is(err, core.ErrInvalidCredentials):
			return fail(c, fiber.StatusUnauthorized, "Invalid password.")
		default:
			a.logError(c, "change password failed", err)
			return failInternal(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (a *Adapter) sendForgotPasswordCode(c fiber.Ctx) error {
	var req emailRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := a.auth.SendForgotPasswordCode(c.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User does not exists!")
		case errors.Is(err, core.ErrMailRejected):
			return fail(c, fiber.StatusBadRequest, "Code sent failed!")
		default:
			a.logError(c, "send forgot password code failed", err)
			return failInternal(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Code sent successfully!",
	})
}

func (a *Adapter) verifyForgotPasswordCode(c fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := a.auth.VerifyForgotPasswordCode(c.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, core.ErrUserNotFound):
			return fail(c, fiber.StatusNotFound, "User does not exist!")
		case errors.Is(err, core.ErrCodeNotSent):
			return fail(c, fiber.StatusBadRequest, "Verification code not sent!")
		case errors.Is(err, core.ErrCodeExpired):
			return fail(c, fiber.StatusBadRequest, "Verification code has expired!")
		case errors.Is(err, core.ErrInvalidCode):
			return fail(c, fiber.StatusBadRequest, "Invalid verification code!")
		default:
			a.logError(c, "verify forgot password code failed", err)
			return failInternal(c)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Your password is updated successfully!",
	})
}

func (a *Adapter) logError(c fiber.Ctx, msg string, err error) {
	a.log.ErrorContext(c.Context(), msg,
		slog.String("path", c.Path()), slog.Any("error", err))
}
