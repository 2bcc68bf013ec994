package lwrkem

import "fmt"

// Sentinel errors for the §6 in-memory layouts and the §6 self-test
// taxonomy. UnmarshalBinary is the one place in this module allowed to
// branch on attacker-controlled length before touching secret
// arithmetic (§7: "Input-size violation ... rejected before
// cryptographic work").
var ErrShortBuffer = fmt.Errorf("lwrkem: buffer too short for this type's binary encoding")
var ErrMaskCountMismatch = fmt.Errorf("lwrkem: ciphertext mask popcount does not match cnt field")
var ErrUnknownMode = fmt.Errorf("lwrkem: unrecognized RAM mode")

// SelfTest failure taxonomy (§6: self_test's -1..-4 return codes,
// translated to sentinel errors rather than carried as an integer
// status).
var ErrSelfTestKeyGen = fmt.Errorf("lwrkem: self-test key generation failed")
var ErrSelfTestEncaps = fmt.Errorf("lwrkem: self-test encapsulation failed")
var ErrSelfTestDecaps = fmt.Errorf("lwrkem: self-test decapsulation failed")
var ErrSelfTestMismatch = fmt.Errorf("lwrkem: self-test shared secrets did not match")
