package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Error: message, Code: code})
}

// kindStatus maps action error kinds to HTTP statuses
var kindStatus = map[ezkey.ErrorKind]int{
	ezkey.KindUserRejected:      http.StatusForbidden,
	ezkey.KindNoWallet:          http.StatusUnauthorized,
	ezkey.KindPrecondition:      http.StatusUnprocessableEntity,
	ezkey.KindInsufficientFunds: http.StatusUnprocessableEntity,
	ezkey.KindReverted:          http.StatusUnprocessableEntity,
	ezkey.KindGas:               http.StatusUnprocessableEntity,
	ezkey.KindBusy:              http.StatusConflict,
	ezkey.KindWrongNetwork:      http.StatusConflict,
}

// writeDomainError renders err from the ezkey package. Wrong network gets the
// network status in the body so the caller can offer the switch.
func writeDomainError(w http.ResponseWriter, err error) {
	var wrong *ezkey.WrongNetworkError
	if errors.As(err, &wrong) {
		writeJSON(w, http.StatusConflict, model.WrongNetworkResponse{
			ErrorResponse: model.ErrorResponse{Error: wrong.Error(), Code: string(ezkey.KindWrongNetwork)},
			Network:       wrong.Status,
		})
		return
	}

	kind := ezkey.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := err.Error()
	var ae *ezkey.ActionError
	if errors.As(err, &ae) {
		message = ae.Message
	}
	writeError(w, status, string(kind), message)
}

// providerStatus maps wallet provider codes to HTTP statuses
func providerStatus(code int) int {
	switch code {
	case client.CodeUserRejected:
		return http.StatusForbidden
	case client.CodeUnauthorized:
		return http.StatusUnauthorized
	case client.CodeUnsupported, client.CodeUnknownChain, client.CodeInvalidParams:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
