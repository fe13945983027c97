// app/echoServer/jwtx/claims.go
package jwtx

import "github.com/labstack/echo/v4"

// Context keys filled in by the claim-extraction middleware in routes.go.
const (
	KeyUserID    = "user_id"
	KeyRole      = "role"
	KeyStudentID = "student_id"
)

func UserID(c echo.Context) int64 {
	id, _ := c.Get(KeyUserID).(int64)
	return id
}

func Role(c echo.Context) string {
	role, _ := c.Get(KeyRole).(string)
	return role
}

// StudentID is empty for admin accounts; borrowing endpoints treat that as
// "no directory entry" and refuse to file requests.
func StudentID(c echo.Context) string {
	sid, _ := c.Get(KeyStudentID).(string)
	return sid
}

func IsAdmin(c echo.Context) bool { return Role(c) == "admin" }
