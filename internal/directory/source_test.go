package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
	"github.com/bancoademi/transfers/pkg/retry"
)

const accountsJSON = `{
  "accounts": [
    {
      "id": "acc_001",
      "userId": "user_001",
      "accountNumber": "001234564821",
      "accountType": "SAVINGS",
      "currency": "DOP",
      "balance": "15250.75",
      "availableBalance": "15000.50",
      "nickname": "Cuenta de Ahorros",
      "status": "ACTIVE"
    }
  ]
}`

const beneficiariesJSON = `{
  "beneficiaries": [
    {
      "id": "ben_001",
      "userId": "user_001",
      "type": "CUENTA_ADEMI",
      "name": "María Pérez",
      "nickname": "Mamá",
      "accountNumber": "009876543377",
      "bankName": "Banco ADEMI"
    }
  ]
}`

func writeTempCatalogs(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	accPath := filepath.Join(dir, "accounts.json")
	benPath := filepath.Join(dir, "beneficiaries.json")
	require.NoError(t, os.WriteFile(accPath, []byte(accountsJSON), 0o644))
	require.NoError(t, os.WriteFile(benPath, []byte(beneficiariesJSON), 0o644))
	return accPath, benPath
}

func TestFileSource(t *testing.T) {
	accPath, benPath := writeTempCatalogs(t)
	src := NewFileSource(accPath, benPath)

	accounts, err := src.FetchAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc_001", accounts[0].ID)
	assert.Equal(t, "15000.5", accounts[0].AvailableBalance.String())

	bens, err := src.FetchBeneficiaries(context.Background())
	require.NoError(t, err)
	require.Len(t, bens, 1)
	assert.Equal(t, "ben_001", bens[0].ID)
	assert.Equal(t, "Banco ADEMI", bens[0].BankName)
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource("/nonexistent/accounts.json", "/nonexistent/beneficiaries.json")

	_, err := src.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrDirectoryUnavailable)

	_, err = src.FetchBeneficiaries(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrDirectoryUnavailable)
}

func TestFileSource_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	src := NewFileSource(path, path)
	_, err := src.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrDirectoryUnavailable)
}

func fastRetry(attempts uint) retry.Config {
	return retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
}

func TestHTTPSource(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(accountsJSON))
	})
	mux.HandleFunc("/beneficiaries", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(beneficiariesJSON))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/accounts", srv.URL+"/beneficiaries", srv.Client(), fastRetry(3))

	accounts, err := src.FetchAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc_001", accounts[0].ID)

	bens, err := src.FetchBeneficiaries(context.Background())
	require.NoError(t, err)
	require.Len(t, bens, 1)
}

func TestHTTPSource_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(accountsJSON))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.URL, srv.Client(), fastRetry(5))

	accounts, err := src.FetchAccounts(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_ExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, srv.URL, srv.Client(), fastRetry(2))

	_, err := src.FetchAccounts(context.Background())
	assert.ErrorIs(t, err, domainErrors.ErrDirectoryUnavailable)
}
