package csf

import (
	"encoding/binary"
	"fmt"

	"github.com/LeJamon/goXRPLd/internal/crypto"
	secp256k1algo "github.com/LeJamon/goXRPLd/internal/crypto/algorithms/secp256k1"
	cryptocommon "github.com/LeJamon/goXRPLd/internal/crypto/common"
)

// secp256k1Provider adapts secp256k1.SECP256K1CryptoAlgorithm to the
// crypto.SignatureProvider interface CryptoWrapper expects. XRPL validator
// keys are always secp256k1 (ED25519SignatureProvider rejects
// isValidator=true outright), so this is the only provider a validator
// needs.
type secp256k1Provider struct {
	algo secp256k1algo.SECP256K1CryptoAlgorithm
}

func (p secp256k1Provider) GenerateKeypair(seed []byte, isValidator bool) (string, string, error) {
	return p.algo.DeriveKeypair(seed, isValidator)
}

func (p secp256k1Provider) SignMessage(message, privateKeyHex string) (string, error) {
	return p.algo.Sign(message, privateKeyHex)
}

func (p secp256k1Provider) VerifySignature(message, publicKeyHex, signatureHex string) bool {
	return p.algo.Validate(message, publicKeyHex, signatureHex)
}

var validatorSigner = crypto.NewSECP256K1Wrapper(secp256k1Provider{algo: secp256k1algo.SECP256K1()})

// validatorKeypair derives a deterministic validator keypair for id, so a
// simulation reproduces the same keys across runs with the same peer IDs
// regardless of wall-clock time.
func validatorKeypair(id PeerID) (privateKey, publicKey string) {
	var idBytes [4]byte
	binary.BigEndian.PutUint32(idBytes[:], uint32(id))
	seed := cryptocommon.Sha512Half(idBytes[:])

	priv, pub, err := validatorSigner.GenerateKeypair(seed[:], true)
	if err != nil {
		// Deterministic input to a total derivation; only a programming
		// error could make this fail.
		panic(fmt.Sprintf("validator keypair derivation for peer %d: %v", id, err))
	}
	return priv, pub
}

// signValidation signs val's contents with priv and returns the signature.
func signValidation(val *Validation, priv string) (string, error) {
	return validatorSigner.SignMessage(validationSigningPayload(val), priv)
}

// verifyValidation reports whether val's signature is valid for pub.
func verifyValidation(val *Validation, pub string) bool {
	if val.Signature == "" {
		return false
	}
	return validatorSigner.VerifySignature(validationSigningPayload(val), pub, val.Signature)
}

// validationSigningPayload is the content a validation's signature covers:
// enough to bind the signature to one validator's endorsement of one
// specific ledger at one specific time.
func validationSigningPayload(val *Validation) string {
	return fmt.Sprintf("%x|%d|%d", val.LedgerID, val.Seq, val.SignTime.UnixNano())
}
