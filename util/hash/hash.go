// util/hash/hash.go
package hash

import "github.com/alexedwards/argon2id"

// HashPassword returns a PHC string like `$argon2id$v=19$m=65536,t=1,p=...`
func HashPassword(plain string) (string, error) {
	return argon2id.CreateHash(plain, argon2id.DefaultParams)
}

// Check verifies a password against a stored PHC hash.
func Check(phc, plain string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plain, phc)
	return err == nil && ok
}
