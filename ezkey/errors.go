package ezkey

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	"github.com/ethereum/go-ethereum/rpc"
)

// ErrorKind classifies action failures
type ErrorKind string

const (
	KindUserRejected      ErrorKind = "user_rejected"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindReverted          ErrorKind = "execution_reverted"
	KindGas               ErrorKind = "gas"
	KindWrongNetwork      ErrorKind = "wrong_network"
	KindNoWallet          ErrorKind = "no_wallet"
	KindPrecondition      ErrorKind = "precondition"
	KindBusy              ErrorKind = "busy"
	KindUnknown           ErrorKind = "unknown"
)

var kindMessages = map[ErrorKind]string{
	KindUserRejected:      "Transaction cancelled by the user",
	KindInsufficientFunds: "Insufficient funds to pay the transaction fees",
	KindReverted:          "Transaction rejected by the contract. Check the conditions.",
	KindGas:               "Gas error. Try increasing the gas limit.",
	KindNoWallet:          "No wallet connected",
	KindBusy:              "action already in progress",
}

var errReceiptFailed = errors.New("transaction failed: execution reverted")

// ActionError is a classified action failure
type ActionError struct {
	Kind    ErrorKind
	Action  Action
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsActionError reports whether err is an ActionError of kind
func IsActionError(err error, kind ErrorKind) bool {
	var ae *ActionError
	return errors.As(err, &ae) && ae.Kind == kind
}

// KindOf returns the kind of err, classifying it when it is not an ActionError yet
func KindOf(err error) ErrorKind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Classify(err)
}

// Classify maps provider codes and node error messages to an ErrorKind
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var wrong *WrongNetworkError
	if errors.As(err, &wrong) {
		return KindWrongNetwork
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "insufficient funds") {
		return KindInsufficientFunds
	}
	if errors.Is(err, errReceiptFailed) || strings.Contains(msg, "execution reverted") {
		return KindReverted
	}

	var coded rpc.Error
	if errors.As(err, &coded) {
		switch coded.ErrorCode() {
		case client.CodeUserRejected:
			return KindUserRejected
		case client.CodeUnauthorized:
			return KindNoWallet
		}
	}

	if strings.Contains(msg, "gas") {
		return KindGas
	}
	return KindUnknown
}

// newActionError classifies err and rewrites known kinds to fixed text.
// Unknown errors keep their message.
func newActionError(action Action, err error) *ActionError {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae
	}

	kind := Classify(err)
	msg, ok := kindMessages[kind]
	if !ok {
		msg = err.Error()
	}
	return &ActionError{Kind: kind, Action: action, Message: msg, Err: err}
}

func preconditionError(action Action, format string, args ...any) *ActionError {
	return &ActionError{Kind: KindPrecondition, Action: action, Message: fmt.Sprintf(format, args...)}
}

// WrongNetworkError is returned while the wallet is on another chain than the required one
type WrongNetworkError struct {
	Status model.NetworkStatus
}

func (e *WrongNetworkError) Error() string {
	return fmt.Sprintf("wrong network: connected to %s, switch to %s", e.Status.Name, e.Status.RequiredName)
}

// IsWrongNetworkError checks if error is WrongNetworkError
func IsWrongNetworkError(err error) bool {
	var wrong *WrongNetworkError
	return errors.As(err, &wrong)
}
