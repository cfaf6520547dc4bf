package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UIDMiddleware resolves the anonymous identity for each request from the
// uid cookie, minting a fresh uuid on first contact. The uid is an opaque
// stable token, not an authenticated user; it only correlates the HTTP and
// websocket channels of one visitor.
func UIDMiddleware(onSeen func(uid string)) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		uid := ctx.Cookies("uid")
		if uid == "" {
			uid = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     "uid",
				Value:    uid,
				SameSite: "Lax",
				HTTPOnly: false, // the frontend reads it to open the websocket
			})
		}
		ctx.Locals("uid", uid)
		if onSeen != nil {
			onSeen(uid)
		}
		return ctx.Next()
	}
}

// UID returns the identity resolved by UIDMiddleware.
func UID(ctx *fiber.Ctx) string {
	uid, _ := ctx.Locals("uid").(string)
	return uid
}
