package constellation

// TransactionReference identifies the most recently accepted transaction
// for an address. Every new transaction links back to one of these, which
// forms a hash-linked chain per address.
type TransactionReference struct {
	Hash    string `json:"hash"`
	Ordinal uint64 `json:"ordinal"`
}

// TransactionValue is the payload of a currency transaction. The field
// names and their order are part of the wire contract; the node's
// deserializer rejects anything else.
type TransactionValue struct {
	Source      string               `json:"source"`
	Destination string               `json:"destination"`
	Amount      uint64               `json:"amount"`
	Fee         uint64               `json:"fee"`
	Parent      TransactionReference `json:"parent"`
	Salt        int64                `json:"salt"`
}

// SignatureProof contains the signer's public key ID and signature, both
// hex encoded.
type SignatureProof struct {
	ID        string `json:"id"`
	Signature string `json:"signature"`
}

// Signed wraps a value with one or more signature proofs, the envelope
// shape every L1 submission uses. T must marshal to a plain JSON mapping
// (a struct with json tags, or a map); the node rejects anything else.
type Signed[T any] struct {
	Value  T                `json:"value"`
	Proofs []SignatureProof `json:"proofs"`
}

// CurrencyTransaction is a signed currency transaction ready for
// submission.
type CurrencyTransaction = Signed[TransactionValue]

type TransactionStatus string

const (
	StatusWaiting    TransactionStatus = "Waiting"
	StatusInProgress TransactionStatus = "InProgress"
	StatusAccepted   TransactionStatus = "Accepted"
)

func (s TransactionStatus) Valid() bool {
	return s == StatusWaiting || s == StatusInProgress || s == StatusAccepted
}

// PendingTransaction is returned while a submitted transaction is still in
// the node's tracking pool. Once accepted and evicted, lookups report
// absence instead of a terminal status.
type PendingTransaction struct {
	Hash        string              `json:"hash"`
	Status      TransactionStatus   `json:"status"`
	Transaction CurrencyTransaction `json:"transaction"`
}

type PostTransactionResponse struct {
	Hash string `json:"hash"`
}

type PostDataResponse struct {
	Hash string `json:"hash"`
}

type EstimateFeeResponse struct {
	// Fee is the estimated fee in the smallest currency unit
	Fee uint64 `json:"fee"`
	// Address is the fee destination
	Address string `json:"address"`
}
