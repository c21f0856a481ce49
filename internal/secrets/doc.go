// Package secrets obtains the remote control API credential.
//
// The SmartThings bearer token is stored on disk as AES-GCM ciphertext
// and decrypted on demand with a key supplied via the environment. The
// token is fetched fresh on every pipeline run - no caching, no retry -
// so a rotated ciphertext file takes effect immediately.
package secrets
