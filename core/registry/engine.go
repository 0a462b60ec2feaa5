// Copyright (C) 2023 Wattson Exchange Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package registry

import (
	"context"
	"time"

	"code.wattson.exchange/watt/core/events"
	"code.wattson.exchange/watt/core/types"
	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

const bipsDivisor = 10000

// Oracle is the price feed, read for collateral and valuation.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/oracle_mock.go -package mocks code.wattson.exchange/watt/core/registry Oracle
type Oracle interface {
	RealTimePrice(bucket types.BucketKey) (*num.Uint, time.Time, error)
}

// StableLedger moves stable value. Both primitives signal success with a
// boolean which must be checked, never assumed.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/stable_ledger_mock.go -package mocks code.wattson.exchange/watt/core/registry StableLedger
type StableLedger interface {
	// Transfer pushes value out of the from account.
	Transfer(from, to string, amount *num.Uint) bool
	// TransferFrom pulls value the from account pre-approved.
	TransferFrom(from, to string, amount *num.Uint) bool
}

// AssetLedger holds commitment unit balances.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/asset_ledger_mock.go -package mocks code.wattson.exchange/watt/core/registry AssetLedger
type AssetLedger interface {
	BalanceOf(holder string, commitmentID uint64) uint64
	Mint(holder string, commitmentID uint64, amount uint64)
	Burn(holder string, commitmentID uint64, amount uint64) bool
	TransferFrom(from, to string, commitmentID uint64, amount uint64) bool
}

// Capabilities resolves which roles a party holds.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/capabilities_mock.go -package mocks code.wattson.exchange/watt/core/registry Capabilities
type Capabilities interface {
	IsIssuer(party string) bool
	IsBackend(party string) bool
	IsAdmin(party string) bool
}

// TimeService.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/time_service_mock.go -package mocks code.wattson.exchange/watt/core/registry TimeService
type TimeService interface {
	GetTimeNow() time.Time
}

// Broker - the event bus broker, send events here.
//
//go:generate go run github.com/golang/mock/mockgen -destination mocks/broker_mock.go -package mocks code.wattson.exchange/watt/core/registry Broker
type Broker interface {
	Send(event events.Event)
}

// commitmentState is the registry-side bookkeeping for one commitment.
// The unit conservation invariant holds at all times:
//
//	TotalMinted == TotalSupply + TotalRedeemed + TotalDestroyed + IssuerBalance
//
// where TotalSupply counts units circulating with non-issuer holders and
// IssuerBalance counts the issuer's unsold inventory. Units redeemed back
// to the issuer are retired certificates, they never re-enter inventory.
type commitmentState struct {
	commitment *types.Commitment
	// IssuerBalance mirrors the issuer's unsold units.
	issuerBalance uint64
	defaults      types.DefaultState
	// redeemedBy is the per-holder cumulative redemption counter.
	redeemedBy map[string]uint64
}

// Engine is the commitment registry. It owns commitment records,
// collateral intake, expiration detection, debt settlement and issuer
// scoring. The matching engine calls back in only to move commitment
// balances and resolve issuers.
type Engine struct {
	Config
	log *logging.Logger

	oracle       Oracle
	stable       StableLedger
	assets       AssetLedger
	capabilities Capabilities
	timeService  TimeService
	broker       Broker

	// busy is the re-entrancy guard, held for the duration of every
	// mutating entry point so a nested call made from an external transfer
	// cannot re-enter.
	busy bool

	nextID      uint64
	commitments map[uint64]*commitmentState
	byIssuer    map[string][]uint64
	// collateralRates holds per-issuer collateral rates in bips, absent
	// issuers use the configured first-time rate.
	collateralRates map[string]uint64
	// honoredCredits marks issuers that fully settled a debt run.
	honoredCredits map[string]bool
}

// New instantiates a new instance of the commitment registry.
func New(
	log *logging.Logger,
	conf Config,
	oracle Oracle,
	stable StableLedger,
	assets AssetLedger,
	capabilities Capabilities,
	timeService TimeService,
	broker Broker,
) *Engine {
	log = log.Named(namedLogger)
	log.SetLevel(conf.Level.Get())

	return &Engine{
		Config:          conf,
		log:             log,
		oracle:          oracle,
		stable:          stable,
		assets:          assets,
		capabilities:    capabilities,
		timeService:     timeService,
		broker:          broker,
		commitments:     map[uint64]*commitmentState{},
		byIssuer:        map[string][]uint64{},
		collateralRates: map[string]uint64{},
		honoredCredits:  map[string]bool{},
	}
}

// ReloadConf updates the internal configuration of the registry.
func (e *Engine) ReloadConf(cfg Config) {
	e.log.Info("reloading configuration")
	if e.log.GetLevel() != cfg.Level.Get() {
		e.log.Info("updating log level",
			logging.String("old", e.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		e.log.SetLevel(cfg.Level.Get())
	}
	e.Config = cfg
}

func (e *Engine) enter() error {
	if e.busy {
		return types.ErrReentrantCall
	}
	e.busy = true
	return nil
}

func (e *Engine) exit() {
	e.busy = false
}

// issuerBlocked reports whether any of the issuer's commitments is
// defaulted or awaiting settlement, which blocks further minting.
func (e *Engine) issuerBlocked(issuer string) error {
	for _, id := range e.byIssuer[issuer] {
		cs := e.commitments[id]
		if cs.defaults.Defaulted {
			return types.ErrIssuerInDefault
		}
		if cs.defaults.PendingSettlement {
			return types.ErrSettlementPending
		}
	}
	return nil
}

// collateralRate returns the issuer's rate in bips.
func (e *Engine) collateralRate(issuer string) uint64 {
	if r, ok := e.collateralRates[issuer]; ok {
		return r
	}
	return e.Config.FirstTimeCollateralRateBips
}

// SetCollateralRate sets a per-issuer collateral rate. Admin only, zero
// rates are rejected.
func (e *Engine) SetCollateralRate(admin, issuer string, bips uint64) error {
	if !e.capabilities.IsAdmin(admin) {
		return types.ErrUnauthorised
	}
	if bips == 0 {
		return types.ErrInvalidFeeFactor
	}
	e.collateralRates[issuer] = bips
	return nil
}

// Mint issues a new commitment. The issuer must be clear of defaults and
// pending settlements, the validity window must start in the future, and
// the collateral pull to the insurance pool must succeed, otherwise the
// whole mint aborts with no state change.
func (e *Engine) Mint(
	ctx context.Context,
	issuer string,
	amount uint64,
	embeddedValue *num.Uint,
	validFrom, validTo time.Time,
	externalRef string,
	attrs types.CommitmentAttributes,
) (uint64, error) {
	if err := e.enter(); err != nil {
		return 0, err
	}
	defer e.exit()

	if !e.capabilities.IsIssuer(issuer) {
		return 0, types.ErrUnauthorised
	}
	if err := e.issuerBlocked(issuer); err != nil {
		return 0, err
	}
	if amount == 0 || embeddedValue == nil || embeddedValue.IsZero() {
		return 0, types.ErrAmountZero
	}
	now := e.timeService.GetTimeNow()
	if !validFrom.After(now) || !validTo.After(validFrom) {
		return 0, types.ErrInvalidValidityWindow
	}

	price, _, err := e.oracle.RealTimePrice(attrs.Bucket())
	if err != nil {
		return 0, err
	}

	// collateral = amount * price * rate / 10000
	collateral := num.UintZero().Div(
		num.UintZero().Mul(
			num.UintZero().Mul(num.NewUint(amount), price),
			num.NewUint(e.collateralRate(issuer)),
		),
		num.NewUint(bipsDivisor),
	)
	if !e.stable.TransferFrom(issuer, e.Config.InsurancePool, collateral) {
		return 0, types.ErrTransferFailed
	}

	e.nextID++
	id := e.nextID
	c := &types.Commitment{
		ID:                id,
		Issuer:            issuer,
		EmbeddedValue:     embeddedValue.Clone(),
		ValidFrom:         validFrom,
		ValidTo:           validTo,
		TotalMinted:       amount,
		ExternalSupplyRef: externalRef,
		Attributes:        attrs,
	}
	e.commitments[id] = &commitmentState{
		commitment:    c,
		issuerBalance: amount,
		redeemedBy:    map[string]uint64{},
	}
	e.byIssuer[issuer] = append(e.byIssuer[issuer], id)
	e.assets.Mint(issuer, id, amount)

	e.log.Info("commitment minted",
		logging.Uint64("id", id),
		logging.String("issuer", issuer),
		logging.Uint64("amount", amount),
		logging.BigUint("collateral", collateral),
	)
	e.broker.Send(events.NewMintedEvent(ctx, c, collateral))
	return id, nil
}

// Destroy burns part of the issuer's own unsold balance.
func (e *Engine) Destroy(ctx context.Context, issuer string, id uint64, amount uint64) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	cs, ok := e.commitments[id]
	if !ok {
		return types.ErrCommitmentNotFound
	}
	if cs.commitment.Issuer != issuer {
		return types.ErrUnauthorised
	}
	if cs.defaults.Defaulted {
		return types.ErrIssuerInDefault
	}
	if cs.defaults.PendingSettlement {
		return types.ErrSettlementPending
	}
	if amount == 0 {
		return types.ErrAmountZero
	}
	if cs.issuerBalance < amount {
		return types.ErrInsufficientBalance
	}
	if !e.assets.Burn(issuer, id, amount) {
		return types.ErrTransferFailed
	}
	cs.issuerBalance -= amount
	cs.commitment.TotalDestroyed += amount

	e.broker.Send(events.NewDestroyedEvent(ctx, id, issuer, amount))
	return nil
}

// Redeem settles physical delivery: the holder hands units back to the
// issuer while the commitment is live. Redeemed units are retired, they
// never return to the issuer's unsold inventory.
func (e *Engine) Redeem(ctx context.Context, holder string, id uint64, amount uint64) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.exit()

	cs, ok := e.commitments[id]
	if !ok {
		return types.ErrCommitmentNotFound
	}
	if holder == cs.commitment.Issuer {
		return types.ErrIssuerCannotRedeem
	}
	if cs.commitment.Expired {
		return types.ErrCommitmentExpired
	}
	if amount == 0 {
		return types.ErrAmountZero
	}
	if e.assets.BalanceOf(holder, id) < amount {
		return types.ErrInsufficientBalance
	}
	if !e.assets.TransferFrom(holder, cs.commitment.Issuer, id, amount) {
		return types.ErrTransferFailed
	}
	cs.commitment.TotalSupply -= amount
	cs.commitment.TotalRedeemed += amount
	cs.redeemedBy[holder] += amount

	e.broker.Send(events.NewRedeemedEvent(ctx, id, holder, amount))
	return nil
}

// TransferCommitment moves units between parties on behalf of the
// matching engine, keeping the supply split between circulating units and
// issuer inventory correct when the issuer boundary is crossed.
func (e *Engine) TransferCommitment(from, to string, id uint64, amount uint64) bool {
	cs, ok := e.commitments[id]
	if !ok || amount == 0 {
		return false
	}
	issuer := cs.commitment.Issuer
	// The issuer's ledger balance also carries redeemed units, which are
	// retired certificates rather than sellable inventory. Only unsold
	// inventory may leave the issuer.
	if from == issuer && cs.issuerBalance < amount {
		return false
	}
	if !e.assets.TransferFrom(from, to, id, amount) {
		return false
	}
	if from == issuer {
		cs.issuerBalance -= amount
		cs.commitment.TotalSupply += amount
	}
	if to == issuer {
		cs.commitment.TotalSupply -= amount
		cs.issuerBalance += amount
	}
	return true
}

// IssuerOf resolves a commitment's issuer for promise-to-pay routing.
func (e *Engine) IssuerOf(id uint64) (string, error) {
	cs, ok := e.commitments[id]
	if !ok {
		return "", types.ErrCommitmentNotFound
	}
	return cs.commitment.Issuer, nil
}

// CurrentPrice exposes the oracle price for a bucket, the matching engine
// reaches the oracle only through the registry.
func (e *Engine) CurrentPrice(bucket types.BucketKey) (*num.Uint, error) {
	price, _, err := e.oracle.RealTimePrice(bucket)
	if err != nil {
		return nil, err
	}
	return price, nil
}

// Commitment returns a copy of the record.
func (e *Engine) Commitment(id uint64) (*types.Commitment, error) {
	cs, ok := e.commitments[id]
	if !ok {
		return nil, types.ErrCommitmentNotFound
	}
	return cs.commitment.Clone(), nil
}

// IssuerBalance returns the issuer's unsold inventory for a commitment.
func (e *Engine) IssuerBalance(id uint64) (uint64, error) {
	cs, ok := e.commitments[id]
	if !ok {
		return 0, types.ErrCommitmentNotFound
	}
	return cs.issuerBalance, nil
}

// DefaultState returns the settlement standing for a commitment.
func (e *Engine) DefaultState(id uint64) (types.DefaultState, error) {
	cs, ok := e.commitments[id]
	if !ok {
		return types.DefaultState{}, types.ErrCommitmentNotFound
	}
	return cs.defaults, nil
}

// RedeemedBy returns the cumulative amount a holder redeemed on a
// commitment.
func (e *Engine) RedeemedBy(id uint64, holder string) uint64 {
	cs, ok := e.commitments[id]
	if !ok {
		return 0
	}
	return cs.redeemedBy[holder]
}
