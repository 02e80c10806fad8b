// Package navigate turns a user-typed token into the directory to switch to.
package navigate

import (
	"os"
	"path/filepath"

	"thoreinstein.com/hop/pkg/config"
)

// Request is a single resolution: a configured root and an optional token.
type Request struct {
	Root  string
	Token string
}

// Resolve always produces a path; whether it exists is for the caller that
// acts on it to find out. Precedence:
//
//  1. empty token: the root
//  2. absolute token (after ~ expansion): the token
//  3. root/token exists: root/token
//  4. otherwise: token relative to the working directory
func Resolve(req Request) string {
	if req.Token == "" {
		return filepath.Clean(req.Root)
	}

	token := req.Token
	if expanded, err := config.ExpandHome(token); err == nil {
		token = expanded
	}

	if filepath.IsAbs(token) {
		return token
	}

	underRoot := filepath.Join(req.Root, token)
	if _, err := os.Lstat(underRoot); err == nil {
		return underRoot
	}

	abs, err := filepath.Abs(token)
	if err != nil {
		return token
	}
	return abs
}
