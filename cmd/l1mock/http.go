package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	. "github.com/constellationnetwork/metagraph-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
)

const defaultFeeAddress = "DAG7Ghth1WhWK83SB3MtXnnHYZbCsmiRTwJrgaW1"

func NewL1MockServer(db Database, fee uint64, feeAddress string) *L1MockServer {
	return &L1MockServer{
		db:         db,
		fee:        fee,
		feeAddress: feeAddress,
	}
}

type L1MockServer struct {
	app        *fiber.App
	db         Database
	fee        uint64
	feeAddress string
}

func (s *L1MockServer) Start(listen string) (err error) {
	s.app = fiber.New(fiber.Config{
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(func(c *fiber.Ctx) error {
		rsp := c.Next()
		log.Info().Msgf("http response: [%d] %s - %s %s", c.Response().StatusCode(), c.IP(), c.Method(), c.Path())
		return rsp
	})

	s.app.Get("/transactions/last-reference/:address", s.getLastReference)
	s.app.Get("/transactions/:hash", s.getPendingTransaction)
	s.app.Post("/transactions", s.postTransaction)
	s.app.Post("/data/estimate-fee", s.postDataEstimateFee)
	s.app.Post("/data", s.postData)
	s.app.Get("/cluster/info", s.getClusterInfo)

	log.Info().Msgf("l1 mock node listening on %s", listen)

	err = errors.WithStack(s.app.Listen(listen))

	return
}

func (s *L1MockServer) Stop() (err error) {
	return errors.WithStack(s.app.Shutdown())
}

func (s *L1MockServer) errorResponse(c *fiber.Ctx, err error) error {
	statusCode := http.StatusInternalServerError

	reportedErr := err

	switch {
	case errors.Is(err, ErrTransactionNotFound):
		reportedErr = ErrTransactionNotFound
		statusCode = http.StatusNotFound
	case errors.Is(err, ErrInvalidAddress):
		reportedErr = ErrInvalidAddress
		statusCode = http.StatusBadRequest
	}

	return c.Status(statusCode).JSON(map[string]any{
		"error":   reportedErr.Error(),
		"details": fmt.Sprintf("%+v", err),
	})
}

func (s *L1MockServer) badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(map[string]any{
		"error": message,
	})
}

func (s *L1MockServer) getLastReference(c *fiber.Ctx) error {
	address := c.Params("address")
	if err := ValidateAddress(address); err != nil {
		return s.errorResponse(c, err)
	}

	ref, err := s.db.GetLastReference(address)
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(ref)
}

func (s *L1MockServer) postTransaction(c *fiber.Ctx) error {
	tx := &CurrencyTransaction{}
	if err := json.Unmarshal(c.Body(), tx); err != nil {
		return s.badRequest(c, fmt.Sprintf("malformed transaction: %v", err))
	}

	if len(tx.Proofs) == 0 {
		return s.badRequest(c, "at least one proof is required")
	}
	if err := ValidateAddress(tx.Value.Source); err != nil {
		return s.errorResponse(c, err)
	}
	if err := ValidateAddress(tx.Value.Destination); err != nil {
		return s.errorResponse(c, err)
	}

	lastRef, err := s.db.GetLastReference(tx.Value.Source)
	if err != nil {
		return s.errorResponse(c, err)
	}
	if tx.Value.Parent != lastRef {
		return s.badRequest(c, fmt.Sprintf(
			"parent reference (%s, %d) does not match last reference (%s, %d)",
			tx.Value.Parent.Hash, tx.Value.Parent.Ordinal, lastRef.Hash, lastRef.Ordinal))
	}

	hash, err := valueHash(tx.Value)
	if err != nil {
		return s.errorResponse(c, err)
	}

	err = s.db.AddPendingTransaction(PendingTransaction{
		Hash:        hash,
		Status:      StatusWaiting,
		Transaction: *tx,
	})
	if err != nil {
		return s.errorResponse(c, err)
	}

	err = s.db.SetLastReference(tx.Value.Source, TransactionReference{
		Hash:    hash,
		Ordinal: tx.Value.Parent.Ordinal + 1,
	})
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(PostTransactionResponse{Hash: hash})
}

// getPendingTransaction serves the current state, then walks the
// transaction one step through Waiting -> InProgress -> Accepted and
// evicts it after Accepted has been observed, so repeated polling
// exercises the full lifecycle including the final 404.
func (s *L1MockServer) getPendingTransaction(c *fiber.Ctx) error {
	hash := c.Params("hash")

	pending, err := s.db.GetPendingTransaction(hash)
	if err != nil {
		return s.errorResponse(c, err)
	}

	switch pending.Status {
	case StatusWaiting:
		err = s.db.SetTransactionStatus(hash, StatusInProgress)
	case StatusInProgress:
		err = s.db.SetTransactionStatus(hash, StatusAccepted)
	case StatusAccepted:
		err = s.db.EvictTransaction(hash)
	}
	if err != nil {
		return s.errorResponse(c, err)
	}

	return c.JSON(pending)
}

func (s *L1MockServer) postDataEstimateFee(c *fiber.Ctx) error {
	if _, err := parseEnvelope(c.Body()); err != nil {
		return s.badRequest(c, err.Error())
	}

	return c.JSON(EstimateFeeResponse{Fee: s.fee, Address: s.feeAddress})
}

func (s *L1MockServer) postData(c *fiber.Ctx) error {
	envelope, err := parseEnvelope(c.Body())
	if err != nil {
		return s.badRequest(c, err.Error())
	}

	sum := sha256.Sum256(envelope.Value)

	return c.JSON(PostDataResponse{Hash: hex.EncodeToString(sum[:])})
}

func (s *L1MockServer) getClusterInfo(c *fiber.Ctx) error {
	return c.JSON([]map[string]any{{
		"id":    "l1mock",
		"state": "Ready",
	}})
}

func parseEnvelope(body []byte) (envelope *Signed[json.RawMessage], err error) {
	envelope = &Signed[json.RawMessage]{}
	if err = json.Unmarshal(body, envelope); err != nil {
		err = errors.Errorf("malformed envelope: %v", err)
		return
	}
	if len(envelope.Proofs) == 0 {
		err = errors.New("at least one proof is required")
	}
	return
}

func valueHash(value TransactionValue) (hash string, err error) {
	jsn, err := json.Marshal(value)
	if err != nil {
		err = errors.WithStack(err)
		return
	}

	sum := sha256.Sum256(jsn)
	hash = hex.EncodeToString(sum[:])

	return
}
