package handler_test

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/AlexZinkM/ezkey-wallet/ezkey"
	"github.com/AlexZinkM/ezkey-wallet/ezkey/ezkeytest"
	"github.com/AlexZinkM/ezkey-wallet/internal/api"
	"github.com/AlexZinkM/ezkey-wallet/internal/client"
	"github.com/AlexZinkM/ezkey-wallet/internal/config"
	"github.com/AlexZinkM/ezkey-wallet/internal/handler"
	"github.com/AlexZinkM/ezkey-wallet/internal/model"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyRecorder struct {
	key *ecdsa.PrivateKey
}

func (k *keyRecorder) SetKey(key *ecdsa.PrivateKey) { k.key = key }
func (k *keyRecorder) HasKey() bool                 { return k.key != nil }

type server struct {
	key      *ezkeytest.Key
	token    *ezkeytest.Token
	chain    *ezkeytest.Chain
	provider *ezkeytest.Provider
	keys     *keyRecorder
	sessions *ezkey.Registry
	http     http.Handler
	path     string
}

func newServer(t *testing.T) *server {
	t.Helper()
	s := &server{
		key:      ezkeytest.NewKey(),
		token:    ezkeytest.NewToken(),
		chain:    ezkeytest.NewChain(),
		provider: ezkeytest.NewProvider(client.ChainIDPolygon),
		keys:     &keyRecorder{},
		sessions: ezkey.NewRegistry(),
		path:     filepath.Join(t.TempDir(), "wallet.cwt"),
	}
	strategies, err := ezkey.StrategiesByName([]string{ezkey.StrategyMapping, ezkey.StrategyGetter, ezkey.StrategyHolder})
	require.NoError(t, err)

	factory := func(client.Backend) (*ezkey.Contracts, error) {
		return &ezkey.Contracts{
			Key:   s.key,
			Token: s.token,
			Chain: s.chain,
			NewToken: func(ethcommon.Address) (ezkey.TokenContract, error) {
				return s.token, nil
			},
		}, nil
	}
	wallet := ezkey.NewWallet(s.provider, factory, ezkey.Options{
		Required:   client.PolygonNetwork("https://polygon-rpc.com/"),
		GasLimit:   300000,
		Strategies: strategies,
		Metadata:   &ezkeytest.Metadata{Err: errors.New("offline")},
		Prices:     ezkeytest.Prices{Rate: "0.50"},
		Now:        func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	})

	h, err := handler.NewEzKeyHandler(s.path, wallet, s.keys, s.sessions, nil)
	require.NoError(t, err)
	s.http = api.SetupRouter(h, nil)
	t.Cleanup(s.sessions.CloseAll)
	return s
}

func (s *server) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)
	return rec
}

func (s *server) connect(t *testing.T) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp model.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestNewEzKeyHandlerRequiresPath(t *testing.T) {
	_, err := handler.NewEzKeyHandler("", nil, nil, ezkey.NewRegistry(), nil)
	assert.EqualError(t, err, "EZKEY_FILE_PATH not set")
}

func TestGenerate(t *testing.T) {
	s := newServer(t)
	config.SetPassword([]byte("password"))

	rec := s.do(t, http.MethodPost, "/wallet/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, ethcommon.IsHexAddress(resp.Address))
	require.NotNil(t, s.keys.key)

	rec = s.do(t, http.MethodPost, "/wallet/generate", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/wallet/generate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/sessions", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var session model.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, ezkeytest.User.Hex(), session.Address)
	assert.True(t, session.Network.Correct)
	assert.Equal(t, 1, s.sessions.Len())

	rec = s.do(t, http.MethodGet, "/sessions/"+session.ID+"/snapshot", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var snap model.UserSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.False(t, snap.HasKey)
	assert.Equal(t, ezkey.SourceDefault, snap.BalanceSource)

	rec = s.do(t, http.MethodDelete, "/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodDelete, "/sessions/"+session.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/sessions/"+session.ID+"/snapshot", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestConnectRejected(t *testing.T) {
	s := newServer(t)
	s.provider.ConnErr = &client.ProviderError{Code: client.CodeUserRejected, Message: "User rejected the request."}

	rec := s.do(t, http.MethodPost, "/sessions", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "user_rejected", decodeError(t, rec).Code)
}

func TestWrongNetwork(t *testing.T) {
	s := newServer(t)
	s.provider.Chain = client.ChainIDEthereum
	id := s.connect(t)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/snapshot", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	var wrong model.WrongNetworkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wrong))
	assert.Equal(t, "wrong_network", wrong.Code)
	assert.Equal(t, int64(1), wrong.Network.ChainID)
	assert.True(t, wrong.Network.SwitchAvailable)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/actions/mint", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, s.key.Sent)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/network/switch", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var status model.NetworkStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Correct)

	rec = s.do(t, http.MethodGet, "/sessions/"+id+"/network", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/sessions/"+id+"/snapshot?refresh=true", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExecuteMint(t *testing.T) {
	s := newServer(t)
	s.token.Balance = ezkeytest.Ether("100")
	id := s.connect(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/actions/mint", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp model.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mint", resp.Action)
	assert.Equal(t, uint64(42), resp.Tx.BlockNumber)
	assert.True(t, strings.HasPrefix(resp.Tx.ExplorerURL, "https://polygonscan.com/tx/"))
	assert.NotNil(t, resp.Snapshot)
}

func TestExecuteErrors(t *testing.T) {
	s := newServer(t)
	s.key.GiveKey("1", "1")
	s.token.Balance = ezkeytest.Ether("100")
	id := s.connect(t)

	rec := s.do(t, http.MethodPost, "/sessions/"+id+"/actions/mint", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "precondition", decodeError(t, rec).Code)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/actions/transfer", model.ActionRequest{To: strings.ToLower(ezkeytest.User.Hex())})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "cannot transfer to your own address", decodeError(t, rec).Error)

	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/actions/stake", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.provider.RejectTx = true
	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/actions/claim", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "user_rejected", resp.Code)
	assert.Equal(t, "Transaction cancelled by the user", resp.Error)

	s.provider.RejectTx = false
	s.chain.Status = 0
	rec = s.do(t, http.MethodPost, "/sessions/"+id+"/actions/claim", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "execution_reverted", decodeError(t, rec).Code)
}

func TestEstimateAndProbe(t *testing.T) {
	s := newServer(t)
	s.key.GiveKey("2", "3")
	s.token.Balance = ezkeytest.Ether("100")
	id := s.connect(t)

	rec := s.do(t, http.MethodGet, "/sessions/"+id+"/estimate/claim", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var est model.GasEstimate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.True(t, est.Available)
	assert.Equal(t, uint64(100000), est.GasUnits)

	rec = s.do(t, http.MethodGet, "/sessions/"+id+"/estimate/transfer?to=0x1234", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &est))
	assert.False(t, est.Available)
	assert.Equal(t, "invalid destination address", est.Error)

	rec = s.do(t, http.MethodGet, "/sessions/"+id+"/balances/probe", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var probe model.BalanceProbeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &probe))
	require.Len(t, probe.Results, 3)
	assert.Equal(t, "2.0", probe.Results[0].EzPol)
}

func TestProviderRequest(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodPost, "/wallet/request", model.ProviderRequest{Method: client.MethodChainID})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.ProviderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "0x89", resp.Result)

	s.provider.SwitchErr = &client.ProviderError{Code: client.CodeUnknownChain, Message: "Unrecognized chain ID"}
	rec = s.do(t, http.MethodPost, "/wallet/request", model.ProviderRequest{Method: client.MethodSwitchChain, Params: client.SwitchChainParams(1)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var perr model.ProviderErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perr))
	assert.Equal(t, client.CodeUnknownChain, perr.Code)

	rec = s.do(t, http.MethodPost, "/wallet/request", model.ProviderRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckContract(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/contracts/"+ezkeytest.TokenAddress.Hex(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.ContractCheckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsToken)
	assert.Equal(t, "EZOCH", resp.Symbol)

	rec = s.do(t, http.MethodGet, "/contracts/nothex", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid address", resp.Error)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newServer(t)
	s.connect(t)

	rec := s.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `ezkey_http_requests_total{method="POST",route="/sessions",status="201"}`)
}
