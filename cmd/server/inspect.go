package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/woniu9524/love-ludo-sub000/auth"
	"github.com/woniu9524/love-ludo-sub000/token/jwt"
)

// InspectTokenCmd prints what the freshness check sees for a token.
type InspectTokenCmd struct {
	Token     string        `arg:"" help:"Raw session token."`
	LastLogin time.Time     `help:"Recorded last login (RFC3339) to compare against."`
	Tolerance time.Duration `help:"Allowed gap between issue and last login." default:"3s" env:"SESSION_TOLERANCE"`
}

func (c *InspectTokenCmd) Run() error {
	return c.inspect(os.Stdout)
}

func (c *InspectTokenCmd) inspect(w io.Writer) error {
	issuedAt, ok := jwt.IssuedAt(c.Token)
	if !ok {
		_, err := fmt.Fprintln(w, "issued at: not present")
		return err
	}
	if _, err := fmt.Fprintf(w, "issued at: %s\n", issuedAt.Format(auth.LastLoginTimeLayout)); err != nil {
		return err
	}
	if c.LastLogin.IsZero() {
		return nil
	}

	lastLogin := c.LastLogin.UTC()
	verdict := auth.CompareLogin(&issuedAt, &lastLogin, c.Tolerance)
	_, err := fmt.Fprintf(w, "last login: %s\ndelta: %dms (tolerance %dms)\nsession: %s\n",
		lastLogin.Format(auth.LastLoginTimeLayout),
		lastLogin.UnixMilli()-issuedAt.UnixMilli(),
		c.Tolerance.Milliseconds(),
		verdict)
	return err
}
