// Package auth issues and validates JWT access tokens and hashes passwords.
package auth
