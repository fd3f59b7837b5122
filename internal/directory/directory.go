// Package directory adapts the external account and beneficiary catalogs for
// the transfer workflow: it fetches both, filters them to the session user's
// selectable entries and exposes ordered lists plus id lookup. A failed fetch
// degrades to empty lists; it never propagates into the workflow.
package directory

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bancoademi/transfers/internal/domain/account"
)

// Directory holds one loaded, filtered view of the catalogs for one user.
type Directory struct {
	accounts      []account.Account
	beneficiaries []account.Beneficiary
	accountsByID  map[string]account.Account
	bensByID      map[string]account.Beneficiary
	degraded      bool
}

// Loader fetches and filters catalogs from a Source.
type Loader struct {
	source Source
	logger zerolog.Logger
}

func NewLoader(source Source, logger zerolog.Logger) *Loader {
	return &Loader{source: source, logger: logger}
}

// Load fetches both catalogs concurrently and filters them to the entries the
// given user may select. On any fetch failure the returned Directory is
// complete-but-empty and flagged degraded.
func (l *Loader) Load(ctx context.Context, userID string) *Directory {
	var (
		rawAccounts []account.Account
		rawBens     []account.Beneficiary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawAccounts, err = l.source.FetchAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rawBens, err = l.source.FetchBeneficiaries(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		l.logger.Warn().Err(err).Str("user_id", userID).Msg("directory fetch failed, degrading to empty catalogs")
		return emptyDirectory(true)
	}

	d := emptyDirectory(false)
	for _, a := range rawAccounts {
		if a.SelectableBy(userID) {
			d.accounts = append(d.accounts, a)
			d.accountsByID[a.ID] = a
		}
	}
	for _, b := range rawBens {
		if b.EligibleFor(userID) {
			d.beneficiaries = append(d.beneficiaries, b)
			d.bensByID[b.ID] = b
		}
	}
	return d
}

func emptyDirectory(degraded bool) *Directory {
	return &Directory{
		accountsByID: make(map[string]account.Account),
		bensByID:     make(map[string]account.Beneficiary),
		degraded:     degraded,
	}
}

// Empty returns a loaded-but-empty directory, used before the initial fetch
// completes so the workflow can present empty lists instead of blocking.
func Empty() *Directory {
	return emptyDirectory(false)
}

// Accounts returns the user's selectable source accounts in catalog order.
func (d *Directory) Accounts() []account.Account {
	return d.accounts
}

// Beneficiaries returns the user's eligible destinations in catalog order.
func (d *Directory) Beneficiaries() []account.Beneficiary {
	return d.beneficiaries
}

// Account looks up a selectable account by id.
func (d *Directory) Account(id string) (account.Account, bool) {
	a, ok := d.accountsByID[id]
	return a, ok
}

// Beneficiary looks up an eligible beneficiary by id.
func (d *Directory) Beneficiary(id string) (account.Beneficiary, bool) {
	b, ok := d.bensByID[id]
	return b, ok
}

// Degraded reports whether the backing fetch failed and the directory is
// serving empty catalogs.
func (d *Directory) Degraded() bool {
	return d.degraded
}

// Preselect resolves an out-of-band beneficiary id (e.g. a deep link). It
// returns the id only when it names an eligible beneficiary; anything else
// is silently ignored and yields no preselection.
func (d *Directory) Preselect(beneficiaryID string) string {
	if beneficiaryID == "" {
		return ""
	}
	if _, ok := d.bensByID[beneficiaryID]; ok {
		return beneficiaryID
	}
	return ""
}
