/*
Package constellation facilitates interaction with Constellation Network
first-layer (L1) nodes, with the intention of allowing currency transaction
submission, metagraph data submission and status queries.

This package holds the domain types and shared infrastructure; the HTTP
clients themselves live in the l1client subpackage. Signing and key
management are deliberately out of scope: the clients accept envelopes that
have already been signed elsewhere.
*/

package constellation
