// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin API.

# Admin Keys

The admin key is a shared secret configured with ADMIN_KEY. Requests send it
in the X-Admin-Key header:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

Keys are compared as SHA-256 digests with hmac.Equal. An empty configured
key never validates.

A fresh random key can be generated with:

	key, err := auth.GenerateAdminKey()

It is URL-safe base64 without padding (192 bits of entropy).
*/
package auth
