package fiber

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/okondo/bulletin/core"
	"github.com/okondo/bulletin/crypto"
)

// Options configures the HTTP adapter.
type Options struct {
	TokenSecret string
	SessionTTL  time.Duration

	// SecureCookies enables the httpOnly/secure cookie flags. Off in
	// development so the cookie works over plain http.
	SecureCookies bool

	Logger *slog.Logger
}

// Adapter registers the auth and post routes on a fiber app.
type Adapter struct {
	app   *fiber.App
	auth  *core.AuthService
	posts *core.PostService
	opts  Options
	log   *slog.Logger
}

func New(app *fiber.App, auth *core.AuthService, posts *core.PostService, opts Options) *Adapter {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = crypto.SessionTTL
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		app:   app,
		auth:  auth,
		posts: posts,
		opts:  opts,
		log:   log,
	}
}

func (a *Adapter) RegisterRoutes() {
	a.app.Get("/", a.hello)

	auth := a.app.Group("/api/auth")

	// Public routes
	auth.Post("/signup", a.signup)
	auth.Post("/signin", a.signin)
	auth.Patch("/send-forgot-password-code", a.sendForgotPasswordCode)
	auth.Patch("/verify-forgot-password-code", a.verifyForgotPasswordCode)

	// Protected routes
	auth.Post("/signout", a.requireAuth, a.signout)
	auth.Patch("/send-verification-code", a.requireAuth, a.sendVerificationCode)
	auth.Patch("/verify-verification-code", a.requireAuth, a.verifyVerificationCode)
	auth.Patch("/change-password", a.requireAuth, a.changePassword)

	posts := a.app.Group("/api/posts")

	posts.Get("/all-posts", a.listPosts)
	posts.Get("/single-post", a.singlePost)
	posts.Post("/create-post", a.requireAuth, a.createPost)
	posts.Put("/update-post", a.requireAuth, a.updatePost)
	posts.Delete("/delete-post", a.requireAuth, a.deletePost)
}

func (a *Adapter) hello(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Hello from the server"})
}
