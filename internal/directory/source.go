package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/bancoademi/transfers/internal/domain/account"
	domainErrors "github.com/bancoademi/transfers/internal/domain/errors"
	"github.com/bancoademi/transfers/pkg/retry"
)

// Source fetches the raw account and beneficiary catalogs. Both catalogs are
// read-only snapshots; filtering and ordering are the Directory's concern.
type Source interface {
	FetchAccounts(ctx context.Context) ([]account.Account, error)
	FetchBeneficiaries(ctx context.Context) ([]account.Beneficiary, error)
}

type accountsEnvelope struct {
	Accounts []account.Account `json:"accounts"`
}

type beneficiariesEnvelope struct {
	Beneficiaries []account.Beneficiary `json:"beneficiaries"`
}

// FileSource reads the catalogs from local JSON files.
type FileSource struct {
	AccountsPath      string
	BeneficiariesPath string
}

func NewFileSource(accountsPath, beneficiariesPath string) *FileSource {
	return &FileSource{AccountsPath: accountsPath, BeneficiariesPath: beneficiariesPath}
}

func (s *FileSource) FetchAccounts(_ context.Context) ([]account.Account, error) {
	var env accountsEnvelope
	if err := readJSONFile(s.AccountsPath, &env); err != nil {
		return nil, err
	}
	return env.Accounts, nil
}

func (s *FileSource) FetchBeneficiaries(_ context.Context) ([]account.Beneficiary, error) {
	var env beneficiariesEnvelope
	if err := readJSONFile(s.BeneficiariesPath, &env); err != nil {
		return nil, err
	}
	return env.Beneficiaries, nil
}

func readJSONFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return domainErrors.NewDomainError("directory_unavailable", "open catalog "+path, domainErrors.ErrDirectoryUnavailable)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(dst); err != nil {
		return domainErrors.NewDomainError("directory_unavailable", "decode catalog "+path, domainErrors.ErrDirectoryUnavailable)
	}
	return nil
}

// HTTPSource fetches the catalogs from a remote directory service, retrying
// transient failures with exponential backoff.
type HTTPSource struct {
	AccountsURL      string
	BeneficiariesURL string
	Client           *http.Client
	Retry            retry.Config
}

func NewHTTPSource(accountsURL, beneficiariesURL string, client *http.Client, retryCfg retry.Config) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		AccountsURL:      accountsURL,
		BeneficiariesURL: beneficiariesURL,
		Client:           client,
		Retry:            retryCfg,
	}
}

func (s *HTTPSource) FetchAccounts(ctx context.Context) ([]account.Account, error) {
	env, err := fetchJSON[accountsEnvelope](ctx, s, s.AccountsURL)
	if err != nil {
		return nil, err
	}
	return env.Accounts, nil
}

func (s *HTTPSource) FetchBeneficiaries(ctx context.Context) ([]account.Beneficiary, error) {
	env, err := fetchJSON[beneficiariesEnvelope](ctx, s, s.BeneficiariesURL)
	if err != nil {
		return nil, err
	}
	return env.Beneficiaries, nil
}

func fetchJSON[T any](ctx context.Context, s *HTTPSource, url string) (T, error) {
	return retry.DoWithResult(ctx, s.Retry, func() (T, error) {
		var dst T

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return dst, err
		}
		resp, err := s.Client.Do(req)
		if err != nil {
			return dst, domainErrors.NewDomainError("directory_unavailable", "fetch "+url, domainErrors.ErrDirectoryUnavailable)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return dst, domainErrors.NewDomainError(
				"directory_unavailable",
				fmt.Sprintf("fetch %s: status %d", url, resp.StatusCode),
				domainErrors.ErrDirectoryUnavailable,
			)
		}
		if err := json.NewDecoder(resp.Body).Decode(&dst); err != nil {
			return dst, domainErrors.NewDomainError("directory_unavailable", "decode "+url, domainErrors.ErrDirectoryUnavailable)
		}
		return dst, nil
	})
}
