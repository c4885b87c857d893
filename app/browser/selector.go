package browser

import (
	"fmt"
	"strconv"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Selector addresses page elements.
type Selector struct {
	expr  string
	label string
}

// BySel selects elements whose data-test attribute equals id.
func BySel(id string) Selector {
	return Selector{expr: fmt.Sprintf("[data-test=%s]", strconv.Quote(id)), label: id}
}

// BySelLike selects elements whose data-test attribute contains id.
func BySelLike(id string) Selector {
	return Selector{expr: fmt.Sprintf("[data-test*=%s]", strconv.Quote(id)), label: "~" + id}
}

// CSS selects elements with a css expression.
func CSS(expr string) Selector {
	return Selector{expr: expr, label: expr}
}

// Expr returns the selector expression.
func (s Selector) Expr() string { return s.expr }

// String returns a short label for logs and failure messages.
func (s Selector) String() string { return s.label }

// Cookie is a browser cookie. Expiry is nil for session (non-persistent) cookies.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
	Expiry *time.Time
}

// makeCookie converts a playwright cookie, which marks session cookies with -1 expiry.
func makeCookie(c playwright.Cookie) Cookie {
	res := Cookie{Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path}
	if c.Expires > 0 {
		sec := int64(c.Expires)
		nsec := int64((c.Expires - float64(sec)) * float64(time.Second))
		exp := time.Unix(sec, nsec).UTC()
		res.Expiry = &exp
	}
	return res
}

func cookieState(present bool) string {
	if present {
		return "set"
	}
	return "removed"
}

// findCookie returns the cookie with the name or nil.
func findCookie(cookies []playwright.Cookie, name string) *Cookie {
	for _, c := range cookies {
		if c.Name == name {
			res := makeCookie(c)
			return &res
		}
	}
	return nil
}
