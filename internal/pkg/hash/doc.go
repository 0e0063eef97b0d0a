// Package hash turns secrets into values safe to store.
//
// Passwords go through Bcrypt or Argon2id (salted, slow). OTP codes go through
// HMACSHA256 so a stored digest can be looked up by equality.
package hash
