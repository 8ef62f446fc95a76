package middleware

import "github.com/labstack/echo/v4"

// MemberID returns the authenticated member id set by JWTAuth.
func MemberID(c echo.Context) (string, bool) {
	id, ok := c.Get(KeyMemberID).(string)
	return id, ok && id != ""
}

// currentUserID is MemberID with "anon" for unauthenticated requests, for
// use in rate limit keys and logs.
func currentUserID(c echo.Context) string {
	if id, ok := MemberID(c); ok {
		return id
	}
	return "anon"
}
