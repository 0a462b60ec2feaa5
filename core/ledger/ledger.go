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

// Package ledger provides the in-process account books backing the
// venue: stable value balances, per-commitment unit balances and the
// role store. External chain-backed ledgers implement the same
// interfaces.
package ledger

import (
	"sync"

	"code.wattson.exchange/watt/libs/num"
	"code.wattson.exchange/watt/logging"
)

// StableLedger keeps stable value balances per account.
type StableLedger struct {
	log *logging.Logger

	mu       sync.Mutex
	balances map[string]*num.Uint
}

func NewStableLedger(log *logging.Logger, conf Config) *StableLedger {
	l := &StableLedger{
		log:      log.Named(namedLogger),
		balances: map[string]*num.Uint{},
	}
	l.log.SetLevel(conf.Level.Get())
	return l
}

// Deposit credits an account, used to fund parties at genesis and from
// external transfers.
func (l *StableLedger) Deposit(account string, amount *num.Uint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance(account).AddSum(amount)
}

// BalanceOf returns a copy of the account's balance.
func (l *StableLedger) BalanceOf(account string) *num.Uint {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance(account).Clone()
}

// Transfer pushes value out of the from account. Returns false and moves
// nothing when the balance does not cover the amount.
func (l *StableLedger) Transfer(from, to string, amount *num.Uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

// TransferFrom pulls pre-approved value, approval handling lives with
// the caller so the in-process ledger treats both primitives the same.
func (l *StableLedger) TransferFrom(from, to string, amount *num.Uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

func (l *StableLedger) move(from, to string, amount *num.Uint) bool {
	if amount == nil || amount.IsZero() {
		return false
	}
	src := l.balance(from)
	if src.LT(amount) {
		if l.log.IsDebug() {
			l.log.Debug("transfer refused",
				logging.String("from", from),
				logging.String("to", to),
				logging.BigUint("amount", amount),
			)
		}
		return false
	}
	src.Sub(src, amount)
	l.balance(to).AddSum(amount)
	return true
}

func (l *StableLedger) balance(account string) *num.Uint {
	b, ok := l.balances[account]
	if !ok {
		b = num.UintZero()
		l.balances[account] = b
	}
	return b
}

type assetKey struct {
	holder       string
	commitmentID uint64
}

// AssetLedger keeps commitment unit balances per holder.
type AssetLedger struct {
	log *logging.Logger

	mu       sync.Mutex
	balances map[assetKey]uint64
}

func NewAssetLedger(log *logging.Logger, conf Config) *AssetLedger {
	l := &AssetLedger{
		log:      log.Named(namedLogger),
		balances: map[assetKey]uint64{},
	}
	l.log.SetLevel(conf.Level.Get())
	return l
}

func (l *AssetLedger) BalanceOf(holder string, commitmentID uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[assetKey{holder, commitmentID}]
}

func (l *AssetLedger) Mint(holder string, commitmentID uint64, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[assetKey{holder, commitmentID}] += amount
}

func (l *AssetLedger) Burn(holder string, commitmentID uint64, amount uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := assetKey{holder, commitmentID}
	if l.balances[k] < amount {
		return false
	}
	l.balances[k] -= amount
	return true
}

func (l *AssetLedger) TransferFrom(from, to string, commitmentID uint64, amount uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	src := assetKey{from, commitmentID}
	if l.balances[src] < amount {
		return false
	}
	l.balances[src] -= amount
	l.balances[assetKey{to, commitmentID}] += amount
	return true
}
