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

package types

import "github.com/pkg/errors"

// Validation faults abort the whole operation with no partial mutation.
// Callers may branch on these and retry after correcting input.
var (
	ErrReentrantCall = errors.New("re-entrant call on a guarded entry point")
	ErrUnauthorised  = errors.New("caller does not hold the required capability")

	ErrAmountZero            = errors.New("amount must be non-zero")
	ErrInvalidValidityWindow = errors.New("invalid validity window")
	ErrMismatchedLengths     = errors.New("holders and owed amounts length mismatch")

	ErrCommitmentNotFound   = errors.New("commitment not found")
	ErrCommitmentExpired    = errors.New("commitment already expired")
	ErrCommitmentNotExpired = errors.New("commitment is not expired")
	ErrIssuerInDefault      = errors.New("issuer has a defaulted commitment")
	ErrSettlementPending    = errors.New("issuer has a pending settlement")
	ErrIssuerCannotRedeem   = errors.New("issuer cannot redeem its own commitment")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrRetryBudgetExhausted = errors.New("settlement retry budget exhausted")
	ErrNothingOutstanding   = errors.New("no outstanding debt to settle")
	ErrTransferFailed       = errors.New("external transfer failed")

	ErrNoPriceFeed  = errors.New("no price feed for bucket")
	ErrInvalidPrice = errors.New("price must be non-zero")

	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderFinal     = errors.New("order is in a terminal state")
	ErrNoLiquidity    = errors.New("no resting liquidity in bucket")
	ErrInvalidSide    = errors.New("invalid order side")
	ErrInvalidExpiry  = errors.New("order expiry must be in the future")
	ErrSizeZero       = errors.New("order size must be non-zero")
	ErrEscrowTooSmall = errors.New("escrow too small to trade a single unit")

	ErrPromiseNotFound       = errors.New("promise-to-pay not found")
	ErrPromiseFulfilled      = errors.New("promise-to-pay already fulfilled")
	ErrPromiseCooldown       = errors.New("promise-to-pay still in cooldown")
	ErrPromiseAmountMismatch = errors.New("promise-to-pay must be fulfilled in full")

	ErrInvalidFeeFactor = errors.New("fee factor must be strictly positive")

	ErrNoUpkeepNeeded = errors.New("no upkeep needed")
	ErrBadUpkeepData  = errors.New("malformed upkeep payload")
)
