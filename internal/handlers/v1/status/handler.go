package status

import (
	"errors"
	"net/http"

	"github.com/carson-networks/fintrack-server/internal/logging"
)

type stopper interface {
	Stopped() bool
}

// Handler answers load balancer probes. It reports 503 once the operator
// has stopped accepting work.
type Handler struct {
	Operator stopper
}

func NewHandler(op stopper) Handler {
	return Handler{Operator: op}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Operator != nil && h.Operator.Stopped() {
		logData.AddData("operatorStopped", true)
		w.WriteHeader(http.StatusServiceUnavailable)
		return errors.New("status: operator stopped")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
