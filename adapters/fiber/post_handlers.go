package fiber

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/okondo/bulletin/core"
)

type createPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updatePostRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// postError echoes the underlying error text on 500s, matching the
// original API's post handlers. Auth handlers deliberately do not.
func (a *Adapter) postError(c fiber.Ctx, err error) error {
	a.logError(c, "post handler failed", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": "Internal server error",
		"error":   err.Error(),
	})
}

func (a *Adapter) listPosts(c fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))

	result, err := a.posts.List(c.Context(), page)
	if err != nil {
		return a.postError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Posts fetched successfully",
		"data":       result.Posts,
		"totalPosts": result.TotalPosts,
		"totalPages": result.TotalPages,
	})
}

func (a *Adapter) singlePost(c fiber.Ctx) error {
	post, err := a.posts.Get(c.Context(), c.Query("id"))
	if err != nil {
		if errors.Is(err, core.ErrPostNotFound) {
			return fail(c, fiber.StatusNotFound, "Post not found")
		}
		return a.postError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post fetched successfully",
		"data":    post,
	})
}

func (a *Adapter) createPost(c fiber.Ctx) error {
	var req createPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid request body")
	}

	claims := sessionClaims(c)
	post, err := a.posts.Create(c.Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		if isValidationErr(err) {
			return fail(c, fiber.StatusUnauthorized, err.Error())
		}
		return a.postError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Post created successfully",
		"data":    post,
	})
}

func (a *Adapter) updatePost(c fiber.Ctx) error {
	var req updatePostRequest
	if err := c.Bind().Body(&req); err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid request body")
	}

	claims := sessionClaims(c)
	post, err := a.posts.Update(c.Context(), claims.UserID, req.ID, req.Title, req.Description)
	if err != nil {
		switch {
		case isValidationErr(err):
			return fail(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, core.ErrPostNotFound):
			return fail(c, fiber.StatusNotFound, "Post not found")
		case errors.Is(err, core.ErrNotPostOwner):
			return fail(c, fiber.StatusUnauthorized, "Unauthorized")
		default:
			return a.postError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post updated successfully",
		"data":    post,
	})
}

func (a *Adapter) deletePost(c fiber.Ctx) error {
	claims := sessionClaims(c)
	if err := a.posts.Delete(c.Context(), claims.UserID, c.Query("id")); err != nil {
		switch {
		case errors.Is(err, core.ErrPostNotFound):
			return fail(c, fiber.StatusNotFound, "Post not found")
		case errors.Is(err, core.ErrNotPostOwner):
			return fail(c, fiber.StatusUnauthorized, "Unauthorized")
		default:
			return a.postError(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Post deleted successfully",
	})
}
