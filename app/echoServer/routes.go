package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/auth"
	"github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/book"
	"github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/borrowing"
	"github.com/nurkholifah99/campus-library-hub/app/echoServer/controller/search"
	"github.com/nurkholifah99/campus-library-hub/app/echoServer/jwtx"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Borrowing *borrowing.Controller
	Search    *search.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Catalog browsing and search stay open; the UI shows them before login.
	pub.GET("/books", c.Book.List)
	pub.GET("/books/:id", c.Book.Detail)
	pub.GET("/search", c.Search.Search)
	pub.GET("/search/suggest", c.Search.Suggest)
	pub.GET("/search/facets", c.Search.Facets)

	// Auth
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	authed.Use(extractClaims)

	// Student
	authed.POST("/borrowings", c.Borrowing.Request)
	authed.GET("/borrowings/my", c.Borrowing.MyHistory)

	// Admin (role checked in the controllers)
	authed.POST("/books", c.Book.Create)
	authed.PUT("/books/:id", c.Book.Update)
	authed.DELETE("/books/:id", c.Book.Delete)
	authed.GET("/borrowings", c.Borrowing.List)
	authed.POST("/borrowings/:id/approve", c.Borrowing.Approve)
	authed.POST("/borrowings/:id/reject", c.Borrowing.Reject)
	authed.POST("/borrowings/:id/return", c.Borrowing.Return)
	authed.GET("/admin/stats", c.Borrowing.Stats)
}

// extractClaims copies sub/role/sid out of the verified token into plain
// context keys so controllers never touch jwt types.
func extractClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var claims jwt.MapClaims
		switch tok := ctx.Get("user").(type) {
		case *jwt.Token:
			claims, _ = tok.Claims.(jwt.MapClaims)
		case jwt.MapClaims:
			claims = tok
		}
		if claims == nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		ctx.Set(jwtx.KeyUserID, int64(sub))
		if role, ok := claims["role"].(string); ok {
			ctx.Set(jwtx.KeyRole, role)
		}
		if sid, ok := claims["sid"].(string); ok {
			ctx.Set(jwtx.KeyStudentID, sid)
		}
		return next(ctx)
	}
}
