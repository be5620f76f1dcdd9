package protocol

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fenghaojiang/BRC20S/pkg/num"
)

// Ticker is the immutable record a successful deploy creates. Minted is the
// only field the state machine updates afterwards.
type Ticker struct {
	Tick          string
	Supply        num.Num
	LimitPerMint  num.Num
	Decimals      uint8
	Minted        num.Num
	DeployBy      string
	InscriptionID string
	DeployHeight  uint64
}

// Balance is the per (tick, address) ledger entry. Available is spendable and
// mintable-to; Transferable is locked by outstanding inscribe transfers.
type Balance struct {
	Available    num.Num
	Transferable num.Num
}

// TransferLock binds an inscribed transfer amount to its inscription until
// that inscription is observed moving. A lock that never moves persists
// indefinitely; the funds stay transferable but not spendable.
type TransferLock struct {
	InscriptionID string
	Tick          string
	Owner         string
	Amount        num.Num
	Satpoint      string
}

// State is the accumulated ledger: ticker registry, balance ledger and
// outstanding transfer locks. It is logically single-writer; the RWMutex only
// shields concurrent read-side queries from in-flight mutations.
type State struct {
	mu       sync.RWMutex
	tickers  map[string]*Ticker
	balances map[string]map[string]*Balance
	locks    map[string]*TransferLock
}

func NewState() *State {
	return &State{
		tickers:  make(map[string]*Ticker),
		balances: make(map[string]map[string]*Balance),
		locks:    make(map[string]*TransferLock),
	}
}

// Ticker returns a copy so that readers never observe in-flight Minted
// updates.
func (s *State) Ticker(tick string) (Ticker, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickers[strings.ToLower(tick)]
	if !ok {
		return Ticker{}, false
	}
	return *t, true
}

// BalanceOf returns a copy; the zero balance for unseen pairs.
func (s *State) BalanceOf(tick, address string) Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b := s.balance(strings.ToLower(tick), strings.ToLower(address)); b != nil {
		return *b
	}
	return Balance{Available: num.Zero(), Transferable: num.Zero()}
}

func (s *State) Lock(inscriptionID string) (TransferLock, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.locks[inscriptionID]
	if !ok {
		return TransferLock{}, false
	}
	return *l, true
}

// RestoreTicker, RestoreBalance and RestoreLock warm the state from durable
// storage at startup. They bypass validation; rows were validated when first
// written.
func (s *State) RestoreTicker(t *Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickers[strings.ToLower(t.Tick)] = t
}

func (s *State) RestoreBalance(tick, address string, available, transferable num.Num) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.ensureBalance(strings.ToLower(tick), strings.ToLower(address))
	b.Available = available
	b.Transferable = transferable
}

func (s *State) RestoreLock(l *TransferLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.locks[l.InscriptionID] = l
}

func (s *State) balance(tick, address string) *Balance {
	byAddr, ok := s.balances[tick]
	if !ok {
		return nil
	}
	return byAddr[address]
}

func (s *State) ensureBalance(tick, address string) *Balance {
	byAddr, ok := s.balances[tick]
	if !ok {
		byAddr = make(map[string]*Balance)
		s.balances[tick] = byAddr
	}
	b, ok := byAddr[address]
	if !ok {
		b = &Balance{Available: num.Zero(), Transferable: num.Zero()}
		byAddr[address] = b
	}
	return b
}

// Apply validates one inscription payload against the accumulated state and
// returns its receipt. Validation failures become invalid receipts and leave
// the ledger untouched; only decode failures and internal invariant
// violations are returned as errors.
func (s *State) Apply(ctx *Context, payload []byte) (*Receipt, error) {
	op, err := DecodeOperation(payload)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	receipt := &Receipt{
		Op:            op.Kind(),
		InscriptionID: ctx.InscriptionID,
		OldSatpoint:   ctx.OldSatpoint,
		NewSatpoint:   ctx.NewSatpoint,
		From:          strings.ToLower(ctx.From),
		To:            strings.ToLower(ctx.To),
	}

	switch o := op.(type) {
	case Deploy:
		receipt.Event, err = s.applyDeploy(ctx, o)
	case Mint:
		receipt.Event, err = s.applyMint(ctx, o)
	case InscribeTransfer:
		receipt.Event, err = s.applyInscribeTransfer(ctx, o)
	case Transfer:
		var old string
		receipt.Event, old, err = s.applyTransfer(ctx, o)
		if old != "" {
			receipt.OldSatpoint = old
		}
	default:
		return nil, ErrUnknownOperation
	}

	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		receipt.Err = err
	}

	return receipt, nil
}

func (s *State) applyDeploy(ctx *Context, op Deploy) (Event, error) {
	tick := strings.ToLower(op.Tick)
	if _, ok := s.tickers[tick]; ok {
		return nil, &DuplicateTickError{Tick: tick}
	}

	decN, err := num.NewFromString(op.Dec)
	if err != nil {
		return nil, err
	}
	decimals, err := decN.CheckedToUint8()
	if err != nil {
		return nil, err
	}
	if decimals > MaxDecimals {
		return nil, &DecimalsTooLargeError{Decimals: decimals}
	}

	supply, err := num.NewFromString(op.Max)
	if err != nil {
		return nil, err
	}
	if supply.IsZero() || supply.Cmp(maxSupply) > 0 {
		return nil, &InvalidSupplyError{Supply: supply}
	}
	if supply.Scale() > int32(decimals) {
		return nil, &InvalidSupplyError{Supply: supply}
	}

	limit, err := num.NewFromString(op.Lim)
	if err != nil {
		return nil, err
	}
	if limit.IsZero() || limit.Cmp(supply) > 0 {
		return nil, &InvalidAmountError{Amount: op.Lim}
	}
	if limit.Scale() > int32(decimals) {
		return nil, &InvalidAmountError{Amount: op.Lim}
	}

	s.tickers[tick] = &Ticker{
		Tick:          tick,
		Supply:        supply,
		LimitPerMint:  limit,
		Decimals:      decimals,
		Minted:        num.Zero(),
		DeployBy:      strings.ToLower(ctx.From),
		InscriptionID: ctx.InscriptionID,
		DeployHeight:  ctx.BlockHeight,
	}

	return &DeployEvent{
		Tick:         tick,
		Supply:       supply,
		LimitPerMint: limit,
		Decimals:     decimals,
	}, nil
}

func (s *State) applyMint(ctx *Context, op Mint) (Event, error) {
	tick := strings.ToLower(op.Tick)
	ticker, ok := s.tickers[tick]
	if !ok {
		return nil, &TickNotFoundError{Tick: tick}
	}
	// the pool variant pins a mint to the deploy inscription
	if op.TickID != "" && op.TickID != ticker.InscriptionID {
		return nil, &TickNotFoundError{Tick: op.TickID}
	}

	amt, err := num.NewFromString(op.Amt)
	if err != nil {
		return nil, err
	}
	if amt.IsZero() || amt.Scale() > int32(ticker.Decimals) {
		return nil, &InvalidAmountError{Amount: op.Amt}
	}
	if amt.Cmp(ticker.LimitPerMint) > 0 {
		return nil, &AmountExceedsLimitError{Amount: amt, Limit: ticker.LimitPerMint}
	}

	remaining, err := ticker.Supply.CheckedSub(ticker.Minted)
	if err != nil {
		return nil, fmt.Errorf("minted exceeds supply for %s: %w", tick, err)
	}
	if remaining.IsZero() {
		return nil, &SupplyExhaustedError{Tick: tick}
	}

	msg := ""
	if amt.Cmp(remaining) > 0 {
		// mint the remainder rather than rejecting; protocol-defined policy
		msg = fmt.Sprintf("amt has been cut off to fit the supply! origin: %s, now: %s", amt, remaining)
		amt = remaining
	}

	to := strings.ToLower(ctx.To)
	balance := s.ensureBalance(tick, to)
	available, err := balance.Available.CheckedAdd(amt)
	if err != nil {
		return nil, err
	}
	minted, err := ticker.Minted.CheckedAdd(amt)
	if err != nil {
		return nil, err
	}

	balance.Available = available
	ticker.Minted = minted

	return &MintEvent{Tick: tick, Amount: amt, Msg: msg}, nil
}

func (s *State) applyInscribeTransfer(ctx *Context, op InscribeTransfer) (Event, error) {
	tick := strings.ToLower(op.Tick)
	ticker, ok := s.tickers[tick]
	if !ok {
		return nil, &TickNotFoundError{Tick: tick}
	}

	amt, err := num.NewFromString(op.Amt)
	if err != nil {
		return nil, err
	}
	if amt.IsZero() || amt.Scale() > int32(ticker.Decimals) {
		return nil, &InvalidAmountError{Amount: op.Amt}
	}

	from := strings.ToLower(ctx.From)
	balance := s.ensureBalance(tick, from)
	available, err := balance.Available.CheckedSub(amt)
	if err != nil {
		return nil, &InsufficientBalanceError{Have: balance.Available, Need: amt}
	}
	transferable, err := balance.Transferable.CheckedAdd(amt)
	if err != nil {
		return nil, err
	}

	balance.Available = available
	balance.Transferable = transferable
	s.locks[ctx.InscriptionID] = &TransferLock{
		InscriptionID: ctx.InscriptionID,
		Tick:          tick,
		Owner:         from,
		Amount:        amt,
		Satpoint:      ctx.NewSatpoint,
	}

	return &InscribeTransferEvent{Tick: tick, Amount: amt}, nil
}

// applyTransfer consumes an outstanding lock when its inscription moves. The
// returned satpoint overrides the context's old satpoint with the location
// recorded at inscribe time.
func (s *State) applyTransfer(ctx *Context, op Transfer) (Event, string, error) {
	lock, ok := s.locks[ctx.InscriptionID]
	if !ok {
		return nil, "", &LockNotFoundError{InscriptionID: ctx.InscriptionID}
	}
	if strings.ToLower(op.Tick) != lock.Tick {
		return nil, "", &LockNotFoundError{InscriptionID: ctx.InscriptionID}
	}
	// only the current holder can move the inscription
	if strings.ToLower(ctx.From) != lock.Owner {
		return nil, "", &LockNotFoundError{InscriptionID: ctx.InscriptionID}
	}

	from := s.ensureBalance(lock.Tick, lock.Owner)
	transferable, err := from.Transferable.CheckedSub(lock.Amount)
	if err != nil {
		// lock amounts always sit inside transferable; reaching here means
		// the ledger is corrupt and processing must stop
		return nil, "", fmt.Errorf("transferable below lock amount for %s/%s: %w", lock.Tick, lock.Owner, err)
	}

	to := strings.ToLower(ctx.To)
	toBalance := s.ensureBalance(lock.Tick, to)
	available, err := toBalance.Available.CheckedAdd(lock.Amount)
	if err != nil {
		return nil, "", err
	}

	from.Transferable = transferable
	toBalance.Available = available
	delete(s.locks, ctx.InscriptionID)

	return &TransferEvent{Tick: lock.Tick, Amount: lock.Amount}, lock.Satpoint, nil
}

// isFatal separates protocol validation failures, which are recovered into
// invalid receipts, from invariant violations that must abort processing.
func isFatal(err error) bool {
	switch err.(type) {
	case *num.InvalidNumError, *num.UnderflowError, *num.OverflowError,
		*DuplicateTickError, *TickNotFoundError, *InvalidSupplyError,
		*DecimalsTooLargeError, *InvalidAmountError, *AmountExceedsLimitError,
		*SupplyExhaustedError, *InsufficientBalanceError, *LockNotFoundError:
		return false
	}
	return true
}
