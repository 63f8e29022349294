package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Derive hashes the client-reported agent string together with the network
// origin into a stable per-device value. This is a coarse heuristic, not
// cryptographic proof of device identity: clients behind a shared IP or
// proxy with identical agent strings collide, and a user can evade it by
// spoofing the agent string. Accepted limitation for single-device
// enforcement.
func Derive(userAgent, clientIP string) string {
	sum := sha256.Sum256([]byte(userAgent + clientIP))
	return hex.EncodeToString(sum[:])
}
