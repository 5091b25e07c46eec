package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goodnatureofminers/complianceledger/internal/ledger/merkle"
	"github.com/goodnatureofminers/complianceledger/internal/ledger/model"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

type (
	chainResponse struct {
		Length  int    `json:"length"`
		TipHash string `json:"tip_hash"`
		TipIdx  uint64 `json:"tip_index"`
	}
	escrowResponse struct {
		BlockHeight      uint64    `json:"block_height"`
		Notary           string    `json:"notary"`
		LiquidAmount     uint64    `json:"liquid_amount"`
		EscrowAmount     uint64    `json:"escrow_amount"`
		ReleaseTimestamp time.Time `json:"release_timestamp"`
		IsSlashed        bool      `json:"is_slashed"`
	}
	errorResponse struct {
		Error string `json:"error"`
	}
)

// ExplorerHandler serves read-only chain and escrow views.
type ExplorerHandler struct {
	chain  ChainReader
	escrow EscrowReader
	logger *zap.Logger
}

// NewExplorerHandler returns an ExplorerHandler. escrow may be nil when the
// daemon runs without rewards.
func NewExplorerHandler(chain ChainReader, escrow EscrowReader, logger *zap.Logger) (*ExplorerHandler, error) {
	if chain == nil {
		return nil, errors.New("chain reader is required")
	}
	return &ExplorerHandler{chain: chain, escrow: escrow, logger: logger}, nil
}

// Register binds the explorer routes on mux.
func (h *ExplorerHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		path    string
		handler gwruntime.HandlerFunc
	}{
		{"/v1/chain", h.getChain},
		{"/v1/chain/validate", h.validateChain},
		{"/v1/blocks/{index}", h.getBlock},
		{"/v1/blocks/{index}/proofs/{position}", h.getProof},
		{"/v1/escrow/{height}", h.getEscrow},
	}
	for _, r := range routes {
		if err := mux.HandlePath(http.MethodGet, r.path, r.handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExplorerHandler) getChain(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	tip, err := h.chain.Latest()
	if err != nil {
		h.writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, chainResponse{
		Length:  h.chain.Len(),
		TipHash: tip.Hash,
		TipIdx:  tip.Header.Index,
	})
}

func (h *ExplorerHandler) validateChain(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	h.writeJSON(w, http.StatusOK, h.chain.Validate())
}

func (h *ExplorerHandler) getBlock(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	b, ok := h.lookupBlock(w, params)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *ExplorerHandler) getProof(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	b, ok := h.lookupBlock(w, params)
	if !ok {
		return
	}
	position, err := strconv.Atoi(params["position"])
	if err != nil || position < 0 || position >= len(b.Transactions) {
		h.writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	_, proofs, err := merkle.Build(b.Transactions)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, proofs[position])
}

func (h *ExplorerHandler) getEscrow(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	if h.escrow == nil {
		h.writeError(w, http.StatusNotFound, "escrow disabled")
		return
	}
	height, err := strconv.ParseUint(params["height"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid height")
		return
	}
	rec, ok := h.escrow.Record(height)
	if !ok {
		h.writeError(w, http.StatusNotFound, string(model.ReasonUnknownHeight))
		return
	}
	h.writeJSON(w, http.StatusOK, escrowResponse{
		BlockHeight:      rec.BlockHeight,
		Notary:           rec.Notary,
		LiquidAmount:     rec.LiquidAmount,
		EscrowAmount:     rec.EscrowAmount,
		ReleaseTimestamp: rec.ReleaseTimestamp,
		IsSlashed:        rec.IsSlashed,
	})
}

func (h *ExplorerHandler) lookupBlock(w http.ResponseWriter, params map[string]string) (model.Block, bool) {
	index, err := strconv.ParseUint(params["index"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid index")
		return model.Block{}, false
	}
	b, ok := h.chain.Block(index)
	if !ok {
		h.writeError(w, http.StatusNotFound, "block not found")
		return model.Block{}, false
	}
	return b, true
}

func (h *ExplorerHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *ExplorerHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response", zap.Error(err))
	}
}
