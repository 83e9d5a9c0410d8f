// Package crypto exposes the primitives of the dhlink key exchange.
//
// Contents
//
//   - Modular exponentiation by square-and-multiply (ModPow)
//   - Domain parameter checks (ValidateParameters)
//   - Key-pair generation by rejection sampling (GenerateKeyPair)
//   - Shared-secret computation with peer value bounds (ComputeSharedSecret)
//   - Key derivation: SHA-256 (default) or HKDF-SHA256 (KDFByName)
//   - AES-256-CBC with PKCS#7 padding and a fresh IV per message
//     (Encrypt, Decrypt)
//   - Wire encodings for public values and parameters (EncodePublicValue,
//     ParsePublicValue, ParseInteger)
//   - Fingerprints and best-effort wiping of sensitive buffers
//
// # Notes
//
// Every function that needs randomness takes an io.Reader; nil selects the
// platform CSPRNG. Tests inject deterministic readers. None of the functions
// perform I/O beyond reading that source, and none log.
//
// CBC carries no authentication tag. A wrong key or tampered ciphertext is
// detected only through the padding check, which a random block passes about
// once in 256 tries.
package crypto
